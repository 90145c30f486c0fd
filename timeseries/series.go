// Package timeseries provides core time series data structures with
// missing-value support.
package timeseries

import (
	"errors"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Missing marks an unobserved entry in a series. Missing entries are treated
// as latent unknowns during model fitting, which is also how forecast
// positions are encoded.
func Missing() float64 {
	return math.NaN()
}

// IsMissing reports whether v marks an unobserved entry.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// Series represents a time series with timestamps and values. Values may
// contain missing entries.
type Series struct {
	Timestamps []time.Time
	Values     []float64
	Name       string
}

// New creates a new time series from values.
func New(values []float64) *Series {
	timestamps := make([]time.Time, len(values))
	base := time.Now()
	for i := range timestamps {
		timestamps[i] = base.Add(time.Duration(i) * time.Hour)
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
	}
}

// NewWithTimestamps creates a time series with explicit timestamps.
func NewWithTimestamps(timestamps []time.Time, values []float64) (*Series, error) {
	if len(timestamps) != len(values) {
		return nil, errors.New("timestamps and values must have the same length")
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
	}, nil
}

// Len returns the length of the series, missing entries included.
func (s *Series) Len() int {
	return len(s.Values)
}

// NumObserved returns the number of non-missing entries.
func (s *Series) NumObserved() int {
	n := 0
	for _, v := range s.Values {
		if !IsMissing(v) {
			n++
		}
	}
	return n
}

// NumMissing returns the number of missing entries.
func (s *Series) NumMissing() int {
	return len(s.Values) - s.NumObserved()
}

// HasMissing reports whether the series contains any missing entry.
func (s *Series) HasMissing() bool {
	return s.NumMissing() > 0
}

// Observed returns the non-missing values in order.
func (s *Series) Observed() []float64 {
	out := make([]float64, 0, len(s.Values))
	for _, v := range s.Values {
		if !IsMissing(v) {
			out = append(out, v)
		}
	}
	return out
}

// FirstObserved returns the first non-missing value, or NaN if there is none.
func (s *Series) FirstObserved() float64 {
	for _, v := range s.Values {
		if !IsMissing(v) {
			return v
		}
	}
	return math.NaN()
}

// PadMissing returns a copy of the series extended by h trailing missing
// entries. Timestamps continue at the spacing of the last interval.
func (s *Series) PadMissing(h int) *Series {
	if h < 0 {
		h = 0
	}
	out := s.Copy()
	step := time.Hour
	if n := len(out.Timestamps); n >= 2 {
		step = out.Timestamps[n-1].Sub(out.Timestamps[n-2])
	}
	for i := 0; i < h; i++ {
		out.Values = append(out.Values, Missing())
		last := time.Now()
		if n := len(out.Timestamps); n > 0 {
			last = out.Timestamps[n-1]
		}
		out.Timestamps = append(out.Timestamps, last.Add(step))
	}
	return out
}

// Mean calculates the arithmetic mean over the observed entries.
func (s *Series) Mean() float64 {
	obs := s.Observed()
	if len(obs) == 0 {
		return math.NaN()
	}
	return stat.Mean(obs, nil)
}

// Variance calculates the sample variance over the observed entries.
func (s *Series) Variance() float64 {
	obs := s.Observed()
	if len(obs) < 2 {
		return 0
	}
	return stat.Variance(obs, nil)
}

// Std calculates the sample standard deviation over the observed entries.
func (s *Series) Std() float64 {
	return math.Sqrt(s.Variance())
}

// Min returns the minimum observed value.
func (s *Series) Min() float64 {
	obs := s.Observed()
	if len(obs) == 0 {
		return math.NaN()
	}
	min := obs[0]
	for _, v := range obs[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// Max returns the maximum observed value.
func (s *Series) Max() float64 {
	obs := s.Observed()
	if len(obs) == 0 {
		return math.NaN()
	}
	max := obs[0]
	for _, v := range obs[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// Median returns the median of the observed values.
func (s *Series) Median() float64 {
	obs := s.Observed()
	if len(obs) == 0 {
		return math.NaN()
	}
	sort.Float64s(obs)
	return stat.Quantile(0.5, stat.Empirical, obs, nil)
}

// Lag returns a lagged version of the series.
func (s *Series) Lag(k int) *Series {
	if k <= 0 || k >= len(s.Values) {
		return &Series{Values: []float64{}}
	}

	result := make([]float64, len(s.Values)-k)
	copy(result, s.Values[:len(s.Values)-k])

	timestamps := make([]time.Time, len(result))
	if len(s.Timestamps) > k {
		copy(timestamps, s.Timestamps[k:])
	}

	return &Series{
		Timestamps: timestamps,
		Values:     result,
		Name:       s.Name + "_lag",
	}
}

// Slice returns a slice of the series from start to end (exclusive).
func (s *Series) Slice(start, end int) *Series {
	if start < 0 {
		start = 0
	}
	if end > len(s.Values) {
		end = len(s.Values)
	}
	if start >= end {
		return &Series{Values: []float64{}}
	}

	values := make([]float64, end-start)
	copy(values, s.Values[start:end])

	timestamps := make([]time.Time, len(values))
	if len(s.Timestamps) >= end {
		copy(timestamps, s.Timestamps[start:end])
	}

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
	}
}

// Copy creates a deep copy of the series.
func (s *Series) Copy() *Series {
	values := make([]float64, len(s.Values))
	copy(values, s.Values)

	timestamps := make([]time.Time, len(s.Timestamps))
	copy(timestamps, s.Timestamps)

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
	}
}

// Log applies natural logarithm transformation. Non-positive entries become
// missing.
func (s *Series) Log() *Series {
	result := make([]float64, len(s.Values))
	for i, v := range s.Values {
		if IsMissing(v) || v <= 0 {
			result[i] = Missing()
		} else {
			result[i] = math.Log(v)
		}
	}

	timestamps := make([]time.Time, len(s.Timestamps))
	copy(timestamps, s.Timestamps)

	return &Series{
		Timestamps: timestamps,
		Values:     result,
		Name:       s.Name + "_log",
	}
}

// Normalize standardizes the observed entries (z-score normalization).
// Missing entries stay missing.
func (s *Series) Normalize() *Series {
	mean := s.Mean()
	std := s.Std()

	if std == 0 || math.IsNaN(std) {
		return s.Copy()
	}

	result := make([]float64, len(s.Values))
	for i, v := range s.Values {
		if IsMissing(v) {
			result[i] = Missing()
		} else {
			result[i] = (v - mean) / std
		}
	}

	timestamps := make([]time.Time, len(s.Timestamps))
	copy(timestamps, s.Timestamps)

	return &Series{
		Timestamps: timestamps,
		Values:     result,
		Name:       s.Name + "_normalized",
	}
}
