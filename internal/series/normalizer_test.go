package series

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/overlaylab/georisk/internal/contracts"
	"github.com/overlaylab/georisk/pkg/logger"
)

func day(d int) contracts.Date {
	return contracts.NewDate(2024, time.January, 1).AddDays(d)
}

func TestNormalize_SortsByDate(t *testing.T) {
	n := NewNormalizer(logger.Nop())

	raw := []contracts.DailyPoint{
		{Date: day(2), Value: 30},
		{Date: day(0), Value: 10},
		{Date: day(1), Value: 20},
	}

	s, err := n.Normalize(raw)
	require.NoError(t, err)
	require.Equal(t, 3, s.Len())

	assert.Equal(t, day(0).String(), s.Points[0].Date.String())
	assert.Equal(t, 10.0, s.Points[0].Value)
	assert.Equal(t, day(2).String(), s.Points[2].Date.String())
	assert.Equal(t, 30.0, s.Points[2].Value)
}

func TestNormalize_EmptyInput(t *testing.T) {
	n := NewNormalizer(logger.Nop())

	_, err := n.Normalize(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptySeries))
	assert.True(t, errors.Is(err, contracts.ErrValidation))
}

func TestNormalize_DropsMissingPrimaryValue(t *testing.T) {
	n := NewNormalizer(logger.Nop())

	raw := []contracts.DailyPoint{
		{Date: day(0), Value: 10},
		{Date: day(1), Value: math.NaN()},
		{Date: day(2), Value: 30},
	}

	s, err := n.Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []float64{10, 30}, s.Values())
}

func TestNormalize_AllRowsMissing(t *testing.T) {
	n := NewNormalizer(logger.Nop())

	_, err := n.Normalize([]contracts.DailyPoint{
		{Date: day(0), Value: math.NaN()},
	})
	assert.True(t, errors.Is(err, ErrEmptySeries))
}

func TestNormalize_DuplicateDatesKeepFirst(t *testing.T) {
	n := NewNormalizer(logger.Nop())

	raw := []contracts.DailyPoint{
		{Date: day(0), Value: 10},
		{Date: day(0), Value: 99},
		{Date: day(1), Value: 20},
	}

	s, err := n.Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 10.0, s.Points[0].Value)
}

func TestNormalize_ComputesTrailingMeans(t *testing.T) {
	n := NewNormalizer(logger.Nop())

	raw := make([]contracts.DailyPoint, 10)
	for i := range raw {
		raw[i] = contracts.DailyPoint{Date: day(i), Value: float64((i + 1) * 10)}
	}

	s, err := n.Normalize(raw)
	require.NoError(t, err)

	// Shrinking window at the start: mean of however many rows exist.
	assert.InDelta(t, 10.0, s.Points[0].MA7, 1e-9)
	assert.InDelta(t, 15.0, s.Points[1].MA7, 1e-9)
	assert.InDelta(t, 20.0, s.Points[2].MA7, 1e-9)

	// Full 7-row window at index 7: mean of rows 1..7 -> (20+..+80)/7.
	assert.InDelta(t, 50.0, s.Points[7].MA7, 1e-9)

	// MA30 shrinks for the whole 10-row series.
	assert.InDelta(t, 55.0, s.Points[9].MA30, 1e-9)
}

func TestNormalize_UsesProvidedCompleteColumn(t *testing.T) {
	n := NewNormalizer(logger.Nop())

	provided := 123.0
	raw := []contracts.DailyPoint{
		{Date: day(0), Value: 10, MA7: &provided},
		{Date: day(1), Value: 20, MA7: &provided},
	}

	s, err := n.Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, 123.0, s.Points[0].MA7)
	assert.Equal(t, 123.0, s.Points[1].MA7)

	// MA30 was never provided, so it is computed.
	assert.InDelta(t, 10.0, s.Points[0].MA30, 1e-9)
	assert.InDelta(t, 15.0, s.Points[1].MA30, 1e-9)
}

func TestNormalize_RecomputesIncompleteColumn(t *testing.T) {
	n := NewNormalizer(logger.Nop())

	provided := 123.0
	raw := []contracts.DailyPoint{
		{Date: day(0), Value: 10, MA7: &provided},
		{Date: day(1), Value: 20}, // MA7 missing: whole column is recomputed
	}

	s, err := n.Normalize(raw)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, s.Points[0].MA7, 1e-9)
	assert.InDelta(t, 15.0, s.Points[1].MA7, 1e-9)
}
