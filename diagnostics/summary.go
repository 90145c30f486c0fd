// Package diagnostics provides posterior summaries and convergence
// diagnostics for fit results.
package diagnostics

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/castorsoft/gobsts/mcmc"
	"gonum.org/v1/gonum/stat"
)

// ErrUnknownQuantity is returned when a fit result holds no draws for the
// requested name.
var ErrUnknownQuantity = errors.New("diagnostics: quantity not monitored")

// Summary holds the point estimate, credible interval, and convergence
// statistics of one posterior quantity.
type Summary struct {
	Name string
	Mean float64
	SD   float64
	// Lower and Upper bound the central credible interval of mass Prob.
	Lower, Upper float64
	Prob         float64
	// Rhat is the potential-scale-reduction statistic; values near 1
	// indicate convergence. With a single chain it is computed on split
	// halves.
	Rhat float64
	// ESS is the effective sample size of the pooled draws.
	ESS float64
}

// Width returns the credible-interval width.
func (s *Summary) Width() float64 {
	return s.Upper - s.Lower
}

// Summarize computes the summary of one monitored element. prob is the
// credible-interval mass, e.g. 0.95 for a 2.5%/97.5% interval; values
// outside (0, 1) are a configuration error.
func Summarize(fit *mcmc.FitResult, name string, prob float64) (*Summary, error) {
	if !fit.Has(name) {
		return nil, ErrUnknownQuantity
	}
	if prob <= 0 || prob >= 1 {
		return nil, &mcmc.ConfigurationError{
			Reason: fmt.Sprintf("credible-interval mass %g is not in (0, 1)", prob),
		}
	}

	pooled := fit.Pooled(name)
	sorted := make([]float64, len(pooled))
	copy(sorted, pooled)
	sort.Float64s(sorted)

	alpha := (1 - prob) / 2
	chains := chainsOf(fit, name)

	return &Summary{
		Name:  name,
		Mean:  stat.Mean(pooled, nil),
		SD:    stat.StdDev(pooled, nil),
		Lower: stat.Quantile(alpha, stat.Empirical, sorted, nil),
		Upper: stat.Quantile(1-alpha, stat.Empirical, sorted, nil),
		Prob:  prob,
		Rhat:  GelmanRubin(chains),
		ESS:   EffectiveSampleSize(chains),
	}, nil
}

// SummarizeElements computes per-element summaries of an array quantity in
// index order. Array quantities expose per-element diagnostics, never a
// single aggregate.
func SummarizeElements(fit *mcmc.FitResult, base string, prob float64) ([]*Summary, error) {
	names := fit.Elements(base)
	if len(names) == 0 {
		return nil, ErrUnknownQuantity
	}
	out := make([]*Summary, len(names))
	for i, name := range names {
		s, err := Summarize(fit, name, prob)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// chainsOf extracts the per-chain draw sequences of one element.
func chainsOf(fit *mcmc.FitResult, name string) [][]float64 {
	out := make([][]float64, fit.Chains())
	for c := range out {
		out[c] = fit.Chain(name, c)
	}
	return out
}

// GelmanRubin computes the potential-scale-reduction statistic across
// chains by comparing within-chain and between-chain variance. A single
// chain is split into halves first. Degenerate input (no variance, chains
// shorter than 2) reports 1.
func GelmanRubin(chains [][]float64) float64 {
	if len(chains) == 1 {
		half := len(chains[0]) / 2
		if half < 2 {
			return 1
		}
		chains = [][]float64{chains[0][:half], chains[0][half:]}
	}
	m := len(chains)
	if m < 2 {
		return 1
	}
	n := len(chains[0])
	for _, ch := range chains {
		if len(ch) < n {
			n = len(ch)
		}
	}
	if n < 2 {
		return 1
	}

	means := make([]float64, m)
	var w float64
	for i, ch := range chains {
		means[i] = stat.Mean(ch[:n], nil)
		w += stat.Variance(ch[:n], nil)
	}
	w /= float64(m)
	if w == 0 {
		return 1
	}
	b := float64(n) * stat.Variance(means, nil)

	nf := float64(n)
	vhat := (nf-1)/nf*w + b/nf
	return math.Sqrt(vhat / w)
}

// EffectiveSampleSize estimates the pooled effective sample size from the
// average chain autocorrelation, summed until it first turns negative.
func EffectiveSampleSize(chains [][]float64) float64 {
	total := 0
	for _, ch := range chains {
		total += len(ch)
	}
	if total == 0 {
		return 0
	}

	maxLag := len(chains[0]) / 2
	if maxLag > 200 {
		maxLag = 200
	}
	var acsum float64
	for lag := 1; lag <= maxLag; lag++ {
		var rho float64
		for _, ch := range chains {
			rho += autocorrAt(ch, lag)
		}
		rho /= float64(len(chains))
		if rho < 0 {
			break
		}
		acsum += rho
	}
	return float64(total) / (1 + 2*acsum)
}
