package diagnostics_test

import (
	"math/rand/v2"
	"testing"

	"github.com/castorsoft/gobsts/diagnostics"
	"github.com/castorsoft/gobsts/gibbs"
	"github.com/castorsoft/gobsts/mcmc"
	"github.com/castorsoft/gobsts/model"
	"github.com/castorsoft/gobsts/timeseries"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// iidChains draws independent standard-normal sequences, one per chain.
func iidChains(m, n int, seed uint64) [][]float64 {
	rng := rand.New(rand.NewPCG(seed, 1))
	out := make([][]float64, m)
	for c := range out {
		ch := make([]float64, n)
		for k := range ch {
			ch[k] = rng.NormFloat64()
		}
		out[c] = ch
	}
	return out
}

func TestGelmanRubinWellMixed(t *testing.T) {
	chains := iidChains(3, 2000, 4)
	rhat := diagnostics.GelmanRubin(chains)
	assert.InDelta(t, 1.0, rhat, 0.05)
}

func TestGelmanRubinDetectsDisagreement(t *testing.T) {
	chains := iidChains(3, 2000, 4)
	for k := range chains[2] {
		chains[2][k] += 5
	}
	assert.Greater(t, diagnostics.GelmanRubin(chains), 1.5)
}

func TestGelmanRubinSingleChainSplitsHalves(t *testing.T) {
	chains := iidChains(1, 2000, 8)
	assert.InDelta(t, 1.0, diagnostics.GelmanRubin(chains), 0.05)

	// a drifting single chain disagrees with itself
	drift := make([]float64, 2000)
	copy(drift, chains[0])
	for k := 1000; k < 2000; k++ {
		drift[k] += 4
	}
	assert.Greater(t, diagnostics.GelmanRubin([][]float64{drift}), 1.5)
}

func TestGelmanRubinDegenerateInput(t *testing.T) {
	assert.Equal(t, 1.0, diagnostics.GelmanRubin([][]float64{{1, 1, 1, 1}, {1, 1, 1, 1}}))
	assert.Equal(t, 1.0, diagnostics.GelmanRubin([][]float64{{1, 2}}))
}

func TestEffectiveSampleSize(t *testing.T) {
	chains := iidChains(2, 1000, 12)
	ess := diagnostics.EffectiveSampleSize(chains)
	// iid draws should keep most of the nominal sample size
	assert.Greater(t, ess, 1000.0)
	assert.LessOrEqual(t, ess, 2200.0)

	// a strongly autocorrelated sequence loses most of it
	rng := rand.New(rand.NewPCG(13, 1))
	slow := make([]float64, 1000)
	for k := 1; k < len(slow); k++ {
		slow[k] = 0.95*slow[k-1] + rng.NormFloat64()*0.1
	}
	assert.Less(t, diagnostics.EffectiveSampleSize([][]float64{slow}), 300.0)
}

func TestAutocorr(t *testing.T) {
	rng := rand.New(rand.NewPCG(21, 1))
	draws := make([]float64, 500)
	for k := 1; k < len(draws); k++ {
		draws[k] = 0.8*draws[k-1] + rng.NormFloat64()
	}

	acf := diagnostics.Autocorr(draws, 10)
	require.Len(t, acf, 11)
	assert.Equal(t, 1.0, acf[0])
	assert.Greater(t, acf[1], 0.5)
	assert.Greater(t, acf[1], acf[5])

	assert.Nil(t, diagnostics.Autocorr([]float64{3, 3, 3, 3}, 2))
	assert.Nil(t, diagnostics.Autocorr(nil, 0))
}

func TestGewekeTrend(t *testing.T) {
	chains := iidChains(1, 4000, 31)
	res := diagnostics.Geweke(chains[0], 0.1, 0.5)
	assert.True(t, res.Pass)
	assert.Greater(t, res.PValue, 0.05)

	ramp := make([]float64, 4000)
	for k := range ramp {
		ramp[k] = chains[0][k] + float64(k)/400
	}
	res = diagnostics.Geweke(ramp, 0.1, 0.5)
	assert.False(t, res.Pass)
	assert.Less(t, res.PValue, 0.05)
}

func TestGewekeFallbackFractions(t *testing.T) {
	res := diagnostics.Geweke(iidChains(1, 1000, 5)[0], -1, 2)
	assert.Equal(t, 0.1, res.FracEarly)
	assert.Equal(t, 0.5, res.FracLate)
}

func TestStationarity(t *testing.T) {
	chains := iidChains(1, 4000, 44)
	res := diagnostics.Stationarity(chains[0], 4)
	assert.True(t, res.Pass)
	assert.Equal(t, 4, res.Segments)

	ramp := make([]float64, 4000)
	for k := range ramp {
		ramp[k] = chains[0][k] + float64(k)/400
	}
	res = diagnostics.Stationarity(ramp, 4)
	assert.False(t, res.Pass)
	assert.Greater(t, res.Statistic, 1.0)
}

func TestStationarityShortInput(t *testing.T) {
	res := diagnostics.Stationarity([]float64{1, 2, 3}, 4)
	assert.True(t, res.Pass)
	assert.Equal(t, 1.0, res.PValue)
}

func TestSummarizeOnFit(t *testing.T) {
	y := timeseries.New([]float64{7.4, 8.0, 12.6, 11.5, 14.3})
	spec, err := model.New(model.InterceptOnly, y.Len(), 1)
	require.NoError(t, err)

	cfg := mcmc.Config{Chains: 3, Iterations: 400, BurnIn: 100, Thin: 1, Seed: 2}
	fit, err := mcmc.Fit(gibbs.New(), spec, mcmc.NewData(y), []string{"mu", "fit"}, cfg)
	require.NoError(t, err)

	s, err := diagnostics.Summarize(fit, "mu", 0.95)
	require.NoError(t, err)
	assert.Equal(t, "mu", s.Name)
	assert.Greater(t, s.Mean, 7.4)
	assert.Less(t, s.Mean, 14.3)
	assert.Less(t, s.Lower, s.Mean)
	assert.Greater(t, s.Upper, s.Mean)
	assert.Equal(t, s.Upper-s.Lower, s.Width())
	assert.InDelta(t, 1.0, s.Rhat, 0.2)
	assert.Greater(t, s.ESS, 0.0)

	_, err = diagnostics.Summarize(fit, "tau", 0.95)
	assert.ErrorIs(t, err, diagnostics.ErrUnknownQuantity)

	var cerr *mcmc.ConfigurationError
	_, err = diagnostics.Summarize(fit, "mu", 0)
	require.ErrorAs(t, err, &cerr)
	_, err = diagnostics.Summarize(fit, "mu", 1.5)
	require.ErrorAs(t, err, &cerr)
}

func TestSummarizeElements(t *testing.T) {
	y := timeseries.New([]float64{7.4, 8.0, 12.6, 11.5, 14.3})
	spec, err := model.New(model.InterceptOnly, y.Len(), 1)
	require.NoError(t, err)

	cfg := mcmc.Config{Chains: 2, Iterations: 300, BurnIn: 100, Thin: 1, Seed: 2}
	fit, err := mcmc.Fit(gibbs.New(), spec, mcmc.NewData(y), []string{"fit"}, cfg)
	require.NoError(t, err)

	elems, err := diagnostics.SummarizeElements(fit, "fit", 0.9)
	require.NoError(t, err)
	require.Len(t, elems, 5)
	assert.Equal(t, "fit[1]", elems[0].Name)
	assert.Equal(t, "fit[5]", elems[4].Name)
	for _, s := range elems {
		assert.Equal(t, 0.9, s.Prob)
	}

	_, err = diagnostics.SummarizeElements(fit, "x", 0.9)
	assert.ErrorIs(t, err, diagnostics.ErrUnknownQuantity)
}

func TestAutocorrByChain(t *testing.T) {
	y := timeseries.New([]float64{1.2, 0.7, 1.9, 2.4, 1.1, 0.3, 1.5, 2.0})
	spec, err := model.New(model.AR1, y.Len(), 1)
	require.NoError(t, err)

	cfg := mcmc.Config{Chains: 2, Iterations: 300, BurnIn: 100, Thin: 1, Seed: 3}
	fit, err := mcmc.Fit(gibbs.New(), spec, mcmc.NewData(y), []string{"b"}, cfg)
	require.NoError(t, err)

	rows := diagnostics.AutocorrByChain(fit, "b", []int{0, 1, 5})
	require.Len(t, rows, 2)
	for _, row := range rows {
		require.Len(t, row, 3)
		assert.Equal(t, 1.0, row[0])
	}
}
