package diagnostics

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// TrendResult is the outcome of the Geweke-style trend test comparing the
// means of an early and a late segment of one chain.
type TrendResult struct {
	// Z is the standardized mean difference between the early and late
	// segments.
	Z      float64
	PValue float64
	// Pass reports no detectable trend at the 5% level.
	Pass bool
	// FracEarly and FracLate are the segment fractions used.
	FracEarly, FracLate float64
}

// Geweke runs the trend test on one chain's draws, comparing the mean of
// the first fracEarly of the sequence against the mean of the last
// fracLate. Conventional fractions are 0.1 and 0.5; out-of-range values
// fall back to them.
func Geweke(draws []float64, fracEarly, fracLate float64) *TrendResult {
	if fracEarly <= 0 || fracEarly >= 1 {
		fracEarly = 0.1
	}
	if fracLate <= 0 || fracLate >= 1 {
		fracLate = 0.5
	}
	n := len(draws)
	na := int(float64(n) * fracEarly)
	nb := int(float64(n) * fracLate)
	if na < 2 || nb < 2 {
		return &TrendResult{Z: 0, PValue: 1, Pass: true, FracEarly: fracEarly, FracLate: fracLate}
	}

	a := draws[:na]
	b := draws[n-nb:]
	meanA, varA := stat.MeanVariance(a, nil)
	meanB, varB := stat.MeanVariance(b, nil)

	se := math.Sqrt(varA/float64(na) + varB/float64(nb))
	z := 0.0
	if se > 0 {
		z = (meanA - meanB) / se
	}
	p := 2 * (1 - distuv.UnitNormal.CDF(math.Abs(z)))
	return &TrendResult{
		Z:         z,
		PValue:    p,
		Pass:      math.Abs(z) < 1.96,
		FracEarly: fracEarly,
		FracLate:  fracLate,
	}
}

// StationarityResult is the outcome of the segment-means stability test.
type StationarityResult struct {
	// Statistic is the one-way F statistic across segment means.
	Statistic float64
	PValue    float64
	Segments  int
	// Pass reports mean stability at the 5% level.
	Pass bool
}

// Stationarity splits one chain's draws into the given number of segments
// and compares segment means with a one-way F test. A chain whose mean
// drifts across segments fails. Fewer than 2 segments defaults to 4.
func Stationarity(draws []float64, segments int) *StationarityResult {
	if segments < 2 {
		segments = 4
	}
	n := len(draws)
	segLen := n / segments
	if segLen < 2 {
		return &StationarityResult{Statistic: 0, PValue: 1, Segments: segments, Pass: true}
	}

	used := segments * segLen
	grand := stat.Mean(draws[:used], nil)

	var between, within float64
	for s := 0; s < segments; s++ {
		seg := draws[s*segLen : (s+1)*segLen]
		m := stat.Mean(seg, nil)
		d := m - grand
		between += float64(segLen) * d * d
		for _, v := range seg {
			e := v - m
			within += e * e
		}
	}

	dfB := float64(segments - 1)
	dfW := float64(used - segments)
	if within == 0 {
		return &StationarityResult{Statistic: 0, PValue: 1, Segments: segments, Pass: true}
	}
	f := (between / dfB) / (within / dfW)
	p := 1 - distuv.F{D1: dfB, D2: dfW}.CDF(f)
	return &StationarityResult{
		Statistic: f,
		PValue:    p,
		Segments:  segments,
		Pass:      p >= 0.05,
	}
}
