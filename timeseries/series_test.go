package timeseries_test

import (
	"math"
	"testing"

	"github.com/castorsoft/gobsts/timeseries"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingRoundTrip(t *testing.T) {
	require.True(t, timeseries.IsMissing(timeseries.Missing()))
	require.False(t, timeseries.IsMissing(0))
	require.False(t, timeseries.IsMissing(-1.5))
}

func TestSeriesCounts(t *testing.T) {
	s := timeseries.New([]float64{1, timeseries.Missing(), 3, timeseries.Missing()})

	assert.Equal(t, 4, s.Len())
	assert.Equal(t, 2, s.NumObserved())
	assert.Equal(t, 2, s.NumMissing())
	assert.True(t, s.HasMissing())
	assert.Equal(t, []float64{1, 3}, s.Observed())
	assert.Equal(t, 1.0, s.FirstObserved())
}

func TestSeriesStatsSkipMissing(t *testing.T) {
	s := timeseries.New([]float64{2, timeseries.Missing(), 4, 6})

	assert.InDelta(t, 4.0, s.Mean(), 1e-12)
	assert.InDelta(t, 4.0, s.Variance(), 1e-12)
	assert.InDelta(t, 2.0, s.Min(), 1e-12)
	assert.InDelta(t, 6.0, s.Max(), 1e-12)
	assert.InDelta(t, 4.0, s.Median(), 1e-12)
}

func TestPadMissing(t *testing.T) {
	s := timeseries.New([]float64{1, 2, 3})
	padded := s.PadMissing(2)

	require.Equal(t, 5, padded.Len())
	assert.Equal(t, 2, padded.NumMissing())
	assert.True(t, timeseries.IsMissing(padded.Values[3]))
	assert.True(t, timeseries.IsMissing(padded.Values[4]))
	// original untouched
	assert.Equal(t, 3, s.Len())

	same := s.PadMissing(0)
	assert.Equal(t, s.Values, same.Values)
}

func TestLogTransform(t *testing.T) {
	s := timeseries.New([]float64{math.E, 0, timeseries.Missing()})
	lg := s.Log()

	assert.InDelta(t, 1.0, lg.Values[0], 1e-12)
	assert.True(t, timeseries.IsMissing(lg.Values[1]))
	assert.True(t, timeseries.IsMissing(lg.Values[2]))
}

func TestNormalizePreservesMissing(t *testing.T) {
	s := timeseries.New([]float64{1, timeseries.Missing(), 3})
	norm := s.Normalize()

	require.Equal(t, 3, norm.Len())
	assert.True(t, timeseries.IsMissing(norm.Values[1]))
	assert.InDelta(t, 0.0, (norm.Values[0]+norm.Values[2])/2, 1e-12)
}

func TestSliceAndCopy(t *testing.T) {
	s := timeseries.New([]float64{1, 2, 3, 4})

	sl := s.Slice(1, 3)
	assert.Equal(t, []float64{2, 3}, sl.Values)

	cp := s.Copy()
	cp.Values[0] = 99
	assert.Equal(t, 1.0, s.Values[0])
}
