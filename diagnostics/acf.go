package diagnostics

import "gonum.org/v1/gonum/stat"

// Autocorr calculates the autocorrelation of one draw sequence at lags
// 0..maxLag. The lag-0 value is always 1; a constant sequence returns nil.
func Autocorr(draws []float64, maxLag int) []float64 {
	n := len(draws)
	if maxLag >= n {
		maxLag = n - 1
	}
	if maxLag < 0 {
		return nil
	}

	mean := stat.Mean(draws, nil)
	var variance float64
	for _, v := range draws {
		d := v - mean
		variance += d * d
	}
	if variance == 0 {
		return nil
	}

	acf := make([]float64, maxLag+1)
	for k := 0; k <= maxLag; k++ {
		var sum float64
		for i := k; i < n; i++ {
			sum += (draws[i] - mean) * (draws[i-k] - mean)
		}
		acf[k] = sum / variance
	}
	return acf
}

// autocorrAt returns the autocorrelation of draws at a single lag.
func autocorrAt(draws []float64, lag int) float64 {
	acf := Autocorr(draws, lag)
	if len(acf) <= lag {
		return 0
	}
	return acf[lag]
}

// AutocorrByChain computes per-chain autocorrelations of one monitored
// element at the requested lags. The result is indexed [chain][lag index].
func AutocorrByChain(fit fitSource, name string, lags []int) [][]float64 {
	out := make([][]float64, fit.Chains())
	maxLag := 0
	for _, lag := range lags {
		if lag > maxLag {
			maxLag = lag
		}
	}
	for c := range out {
		acf := Autocorr(fit.Chain(name, c), maxLag)
		row := make([]float64, len(lags))
		for i, lag := range lags {
			if lag >= 0 && lag < len(acf) {
				row[i] = acf[lag]
			}
		}
		out[c] = row
	}
	return out
}

// fitSource is the slice of the fit-result API the chain diagnostics need.
type fitSource interface {
	Chains() int
	Chain(name string, chain int) []float64
}
