package contracts

import "errors"

// ErrValidation is the root of all structural input errors: empty or
// malformed tables, unparseable dates, missing required columns. These
// always surface to the caller. Degenerate numerics (zero variance,
// zero weight) are handled by clamp/skip policies instead and never
// produce an error.
var ErrValidation = errors.New("validation error")
