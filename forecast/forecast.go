// Package forecast extends state-space fits beyond the observed sample.
package forecast

import (
	"github.com/castorsoft/gobsts/diagnostics"
	"github.com/castorsoft/gobsts/mcmc"
	"github.com/castorsoft/gobsts/timeseries"
)

// Extend returns the series padded with h trailing missing placeholders.
// Inference over the padded series proceeds identically to an in-sample
// fit: the latent recursion propagates forward with no observation term at
// the padded positions, so their posteriors are genuine forecasts. With
// h = 0 the returned series is an unchanged copy and reproduces the
// in-sample fit.
func Extend(y *timeseries.Series, h int) (*timeseries.Series, error) {
	if h < 0 {
		return nil, &mcmc.ConfigurationError{Reason: "negative forecast horizon"}
	}
	if y.NumObserved() == 0 {
		return nil, &mcmc.DataError{Reason: "response series has no observed values"}
	}
	return y.PadMissing(h), nil
}

// Data pads the series and assembles its data dictionary in one step.
func Data(y *timeseries.Series, h int) (*mcmc.DataDict, error) {
	padded, err := Extend(y, h)
	if err != nil {
		return nil, err
	}
	return mcmc.NewData(padded), nil
}

// CheckForecastable verifies that a data dictionary carries at least h
// trailing missing response positions. It guards fits where the caller
// padded the series manually: requesting a forecast against a fully
// observed response is a data error.
func CheckForecastable(d *mcmc.DataDict, h int) error {
	if h <= 0 {
		return nil
	}
	for _, row := range d.Y {
		for t := d.N - h; t < d.N; t++ {
			if t < 0 || !timeseries.IsMissing(row[t]) {
				return &mcmc.DataError{
					Reason: "forecast requested but response has no missing values at the horizon",
				}
			}
		}
	}
	return nil
}

// Band is a per-time-step credible band of a monitored array quantity.
type Band struct {
	// Names are the element names in index order.
	Names []string
	// Mean, Lower, and Upper hold the posterior mean and central
	// credible-interval bounds per element.
	Mean, Lower, Upper []float64
	// Prob is the interval mass.
	Prob float64
}

// Width returns the credible-interval width at element index i.
func (b *Band) Width(i int) float64 {
	return b.Upper[i] - b.Lower[i]
}

// Len returns the element count.
func (b *Band) Len() int {
	return len(b.Names)
}

// FittedBand extracts the per-time-step credible band of an array quantity
// such as "fit" or "x". At forecast positions the band derives solely from
// accumulated process noise, so its width is non-decreasing in the
// horizon.
func FittedBand(fit *mcmc.FitResult, base string, prob float64) (*Band, error) {
	summaries, err := diagnostics.SummarizeElements(fit, base, prob)
	if err != nil {
		return nil, err
	}
	band := &Band{
		Names: make([]string, len(summaries)),
		Mean:  make([]float64, len(summaries)),
		Lower: make([]float64, len(summaries)),
		Upper: make([]float64, len(summaries)),
		Prob:  prob,
	}
	for i, s := range summaries {
		band.Names[i] = s.Name
		band.Mean[i] = s.Mean
		band.Lower[i] = s.Lower
		band.Upper[i] = s.Upper
	}
	return band, nil
}
