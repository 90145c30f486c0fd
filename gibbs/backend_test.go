package gibbs_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/castorsoft/gobsts/gibbs"
	"github.com/castorsoft/gobsts/mcmc"
	"github.com/castorsoft/gobsts/model"
	"github.com/castorsoft/gobsts/timeseries"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func testConfig(chains, iters, burn int) mcmc.Config {
	return mcmc.Config{Chains: chains, Iterations: iters, BurnIn: burn, Thin: 1, Seed: 7}
}

func TestInterceptEndToEnd(t *testing.T) {
	y := timeseries.New([]float64{7.4, 8.0, 12.6, 11.5, 14.3})
	spec, err := model.New(model.InterceptOnly, y.Len(), 1)
	require.NoError(t, err)

	cfg := testConfig(3, 400, 100)
	fit, err := mcmc.Fit(gibbs.New(), spec, mcmc.NewData(y), []string{"mu", "tau", "sigma2"}, cfg)
	require.NoError(t, err)

	mu := fit.Pooled("mu")
	require.Len(t, mu, 3*300)
	mean := stat.Mean(mu, nil)
	assert.Greater(t, mean, 7.4)
	assert.Less(t, mean, 14.3)

	// sigma2 is the reciprocal of tau draw by draw.
	for c := 0; c < fit.Chains(); c++ {
		tau := fit.Chain("tau", c)
		sigma2 := fit.Chain("sigma2", c)
		for k := range tau {
			assert.InEpsilon(t, 1.0, tau[k]*sigma2[k], 1e-12)
		}
	}
}

func TestSamplingIsReproducible(t *testing.T) {
	y := timeseries.New([]float64{1.2, 0.7, 1.9, 2.4, 1.1, 0.3, 1.5, 2.0})
	spec, err := model.New(model.AR1, y.Len(), 1)
	require.NoError(t, err)

	cfg := testConfig(2, 200, 50)
	a, err := mcmc.Fit(gibbs.New(), spec, mcmc.NewData(y), []string{"mu", "b"}, cfg)
	require.NoError(t, err)
	b, err := mcmc.Fit(gibbs.New(), spec, mcmc.NewData(y), []string{"mu", "b"}, cfg)
	require.NoError(t, err)

	assert.Equal(t, a.Pooled("mu"), b.Pooled("mu"))
	assert.Equal(t, a.Pooled("b"), b.Pooled("b"))
}

func TestInterceptForecastWidens(t *testing.T) {
	y := timeseries.New([]float64{7.4, 8.0, 12.6, 11.5, 14.3}).PadMissing(2)
	spec, err := model.New(model.InterceptOnly, y.Len(), 1)
	require.NoError(t, err)

	cfg := testConfig(2, 600, 200)
	fit, err := mcmc.Fit(gibbs.New(), spec, mcmc.NewData(y), []string{"fit"}, cfg)
	require.NoError(t, err)

	// observed positions report the in-sample mean, forecast positions carry
	// predictive draws, so the posterior spread grows at the horizon
	inSample := stat.StdDev(fit.Pooled("fit[5]"), nil)
	horizon1 := stat.StdDev(fit.Pooled("fit[6]"), nil)
	horizon2 := stat.StdDev(fit.Pooled("fit[7]"), nil)
	assert.Greater(t, horizon1, inSample)
	assert.Greater(t, horizon2, inSample)
}

func TestRandomWalkForecastSpreadGrows(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 1))
	n, h := 40, 6
	vals := make([]float64, n)
	vals[0] = 10
	for t := 1; t < n; t++ {
		vals[t] = vals[t-1] + rng.NormFloat64()*0.5
	}
	y := timeseries.New(vals).PadMissing(h)

	spec, err := model.New(model.RandomWalk, y.Len(), 1)
	require.NoError(t, err)

	cfg := testConfig(2, 600, 200)
	fit, err := mcmc.Fit(gibbs.New(), spec, mcmc.NewData(y), []string{"fit", "sigma2q"}, cfg)
	require.NoError(t, err)

	elems := fit.Elements("fit")
	require.Len(t, elems, n+h)
	first := stat.StdDev(fit.Pooled(elems[n]), nil)
	last := stat.StdDev(fit.Pooled(elems[n+h-1]), nil)
	assert.Greater(t, last, first, "posterior spread should grow with the horizon")

	for _, v := range fit.Pooled("sigma2q") {
		assert.Greater(t, v, 0.0)
	}
}

func TestAR1StationaryVarianceIdentity(t *testing.T) {
	y := timeseries.New([]float64{0.4, 1.1, 0.8, -0.2, 0.5, 1.3, 0.9, 0.1, 0.6, 1.0})
	spec, err := model.New(model.AR1, y.Len(), 1)
	require.NoError(t, err)

	cfg := testConfig(2, 300, 100)
	fit, err := mcmc.Fit(gibbs.New(), spec, mcmc.NewData(y),
		[]string{"b", "tau", "sigma2init"}, cfg)
	require.NoError(t, err)

	for c := 0; c < fit.Chains(); c++ {
		b := fit.Chain("b", c)
		tau := fit.Chain("tau", c)
		s2i := fit.Chain("sigma2init", c)
		for k := range b {
			require.Less(t, math.Abs(b[k]), 1.0, "AR coefficient must stay in (-1, 1)")
			want := 1 / (tau[k] * (1 - b[k]*b[k]))
			assert.InEpsilon(t, want, s2i[k], 1e-12)
		}
	}
}

func TestRegressionRecoversSlope(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 1))
	n := 50
	x := make([]float64, n)
	yv := make([]float64, n)
	for t := range x {
		x[t] = float64(t) / 10
		yv[t] = 2 + 3*x[t] + rng.NormFloat64()*0.3
	}
	data, err := mcmc.NewData(timeseries.New(yv)).WithCovariate(timeseries.New(x))
	require.NoError(t, err)

	spec, err := model.New(model.Regression, n, 1)
	require.NoError(t, err)

	cfg := testConfig(2, 500, 200)
	fit, err := mcmc.Fit(gibbs.New(), spec, data, []string{"beta0", "beta1"}, cfg)
	require.NoError(t, err)

	assert.InDelta(t, 3.0, fit.Mean("beta1"), 0.3)
	assert.InDelta(t, 2.0, fit.Mean("beta0"), 0.6)
}

func TestRegressionAR1RecoversSlope(t *testing.T) {
	rng := rand.New(rand.NewPCG(15, 1))
	n := 80
	c := make([]float64, n)
	yv := make([]float64, n)
	e := 0.0
	for t := range c {
		c[t] = float64(t) / 10
		e = 0.6*e + rng.NormFloat64()*0.5
		yv[t] = 1 + 2*c[t] + e
	}
	data, err := mcmc.NewData(timeseries.New(yv)).WithCovariate(timeseries.New(c))
	require.NoError(t, err)

	spec, err := model.New(model.RegressionAR1, n, 1)
	require.NoError(t, err)

	cfg := testConfig(2, 1500, 500)
	fit, err := mcmc.Fit(gibbs.New(), spec, data, []string{"beta1", "b", "fit"}, cfg)
	require.NoError(t, err)

	assert.InDelta(t, 2.0, fit.Mean("beta1"), 0.4)
	for _, v := range fit.Pooled("b") {
		require.Less(t, math.Abs(v), 1.0)
	}
	// each fitted value belongs to its own time step, so the posterior fit
	// climbs with the regression line
	assert.Greater(t, fit.Mean("fit[70]"), fit.Mean("fit[20]")+3)
}

func TestStateSpaceCoefficientStaysStationary(t *testing.T) {
	rng := rand.New(rand.NewPCG(23, 1))
	n := 120
	vals := make([]float64, n)
	x := 0.0
	for t := range vals {
		x = 0.7*x + rng.NormFloat64()*0.8
		vals[t] = x + rng.NormFloat64()*0.2
	}

	spec, err := model.New(model.StateSpace, n, 1)
	require.NoError(t, err)

	cfg := testConfig(2, 1500, 500)
	fit, err := mcmc.Fit(gibbs.New(), spec, mcmc.NewData(timeseries.New(vals)),
		[]string{"b", "sigma2q"}, cfg)
	require.NoError(t, err)

	for _, v := range fit.Pooled("b") {
		require.Less(t, math.Abs(v), 1.0, "transition coefficient must stay in (-1, 1)")
	}
	assert.InDelta(t, 0.7, fit.Mean("b"), 0.25)

	for _, v := range fit.Pooled("sigma2q") {
		require.Greater(t, v, 0.0)
	}
}

func TestSharedOffsetFirstSeriesPinned(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 1))
	n := 25
	base := make([]float64, n)
	base[0] = 5
	for t := 1; t < n; t++ {
		base[t] = base[t-1] + rng.NormFloat64()*0.4
	}
	a := make([]float64, n)
	b := make([]float64, n)
	for t := range base {
		a[t] = base[t] + rng.NormFloat64()*0.2
		b[t] = base[t] + 2 + rng.NormFloat64()*0.2
	}
	data, err := mcmc.NewMultiData([]*timeseries.Series{
		timeseries.New(a), timeseries.New(b),
	})
	require.NoError(t, err)

	spec, err := model.New(model.MultiShared, n, 2)
	require.NoError(t, err)

	cfg := testConfig(2, 400, 150)
	fit, err := mcmc.Fit(gibbs.New(), spec, data, []string{"a"}, cfg)
	require.NoError(t, err)

	for _, v := range fit.Pooled("a[1]") {
		assert.Zero(t, v)
	}
	// the second offset should land near the true gap of 2
	assert.InDelta(t, 2.0, fit.Mean("a[2]"), 0.5)
}

func TestIndependentSeriesGetOwnVariances(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 1))
	n := 30
	quiet := make([]float64, n)
	loud := make([]float64, n)
	quiet[0], loud[0] = 1, 1
	for t := 1; t < n; t++ {
		quiet[t] = quiet[t-1] + rng.NormFloat64()*0.1
		loud[t] = loud[t-1] + rng.NormFloat64()*2.0
	}
	data, err := mcmc.NewMultiData([]*timeseries.Series{
		timeseries.New(quiet), timeseries.New(loud),
	})
	require.NoError(t, err)

	spec, err := model.New(model.MultiIndependent, n, 2)
	require.NoError(t, err)

	cfg := testConfig(2, 400, 150)
	fit, err := mcmc.Fit(gibbs.New(), spec, data, []string{"sigma2q"}, cfg)
	require.NoError(t, err)

	assert.Less(t, fit.Mean("sigma2q[1]"), fit.Mean("sigma2q[2]"))
}

func TestCountSamplerRejectsInvalidObservations(t *testing.T) {
	cases := [][]float64{
		{3, 1, -2, 4, 0, 2},
		{3, 1, 2.5, 4, 0, 2},
	}
	for _, vals := range cases {
		y := timeseries.New(vals)
		spec, err := model.New(model.PoissonCount, y.Len(), 1)
		require.NoError(t, err)

		_, err = mcmc.Fit(gibbs.New(), spec, mcmc.NewData(y), []string{"fit"},
			testConfig(1, 50, 10))
		var nerr *mcmc.NumericalError
		require.ErrorAs(t, err, &nerr)
		assert.Equal(t, "Y", nerr.Quantity)
		assert.Equal(t, 3, nerr.Step)
	}
}

func TestPoissonFitStaysPositive(t *testing.T) {
	y := timeseries.New([]float64{4, 6, 3, 8, 5, 7, 9, 6, 4, 10, 8, 7})
	spec, err := model.New(model.PoissonCount, y.Len(), 1)
	require.NoError(t, err)

	cfg := testConfig(2, 400, 150)
	fit, err := mcmc.Fit(gibbs.New(), spec, mcmc.NewData(y), []string{"fit", "sigma2q"}, cfg)
	require.NoError(t, err)

	for _, name := range fit.Elements("fit") {
		for _, v := range fit.Pooled(name) {
			require.False(t, math.IsNaN(v))
			require.Greater(t, v, 0.0, "%s must stay on the positive rate scale", name)
		}
	}
	// the fitted rate should sit in the vicinity of the observed counts
	m := fit.Mean("fit[6]")
	assert.Greater(t, m, 1.0)
	assert.Less(t, m, 20.0)
}

func TestNegBinSizeStaysPositive(t *testing.T) {
	y := timeseries.New([]float64{2, 5, 1, 9, 4, 12, 3, 7, 6, 15, 8, 5})
	spec, err := model.New(model.NegBinCount, y.Len(), 1)
	require.NoError(t, err)

	cfg := testConfig(2, 300, 100)
	fit, err := mcmc.Fit(gibbs.New(), spec, mcmc.NewData(y), []string{"r"}, cfg)
	require.NoError(t, err)

	for _, v := range fit.Pooled("r") {
		require.Greater(t, v, 0.0)
	}
}

func TestMissingInteriorValuesAreImputed(t *testing.T) {
	m := timeseries.Missing()
	y := timeseries.New([]float64{10, 10.5, m, 11.4, 12.0, m, 12.9, 13.5})
	spec, err := model.New(model.RandomWalk, y.Len(), 1)
	require.NoError(t, err)

	cfg := testConfig(2, 400, 150)
	fit, err := mcmc.Fit(gibbs.New(), spec, mcmc.NewData(y), []string{"x"}, cfg)
	require.NoError(t, err)

	// an interior gap should be bridged by its neighbors
	imputed := fit.Mean("x[3]")
	assert.Greater(t, imputed, 9.0)
	assert.Less(t, imputed, 13.0)
}
