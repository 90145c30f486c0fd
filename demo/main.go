// Package main demonstrates Bayesian state-space time series modeling:
// fitting, convergence diagnostics, model comparison, and forecasting.
package main

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/castorsoft/gobsts/diagnostics"
	"github.com/castorsoft/gobsts/forecast"
	"github.com/castorsoft/gobsts/gibbs"
	"github.com/castorsoft/gobsts/mcmc"
	"github.com/castorsoft/gobsts/model"
	"github.com/castorsoft/gobsts/timeseries"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat/distuv"
)

func main() {
	fmt.Println(strings.Repeat("=", 72))
	fmt.Println("GoBSTS Demonstration - Bayesian State-Space Time Series")
	fmt.Println(strings.Repeat("=", 72))

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	backend := gibbs.New()
	cfg := mcmc.DefaultConfig()
	cfg.ComputeDIC = true
	cfg.Logger = logger

	interceptDemo(backend, cfg)
	forecastDemo(backend, cfg)
	countDemo(backend, cfg)
}

// interceptDemo fits the simplest possible model to a short series and
// prints the posterior summaries.
func interceptDemo(backend mcmc.Backend, cfg mcmc.Config) {
	section("Intercept-only model")

	y := timeseries.New([]float64{7.4, 8.0, 12.6, 11.5, 14.3})
	spec, err := model.New(model.InterceptOnly, y.Len(), 1)
	must(err)

	fmt.Println(spec.Render())

	fit, err := mcmc.Fit(backend, spec, mcmc.NewData(y),
		[]string{"mu", "tau", "sigma2"}, cfg)
	must(err)

	for _, name := range []string{"mu", "sigma2"} {
		s, err := diagnostics.Summarize(fit, name, 0.95)
		must(err)
		fmt.Printf("%-8s mean=%8.3f  sd=%7.3f  95%% CI [%7.3f, %7.3f]  Rhat=%.3f\n",
			s.Name, s.Mean, s.SD, s.Lower, s.Upper, s.Rhat)
	}
	if dic, ok := fit.DIC(); ok {
		fmt.Printf("DIC = %.2f\n", dic)
	}

	tr := diagnostics.Geweke(fit.Chain("mu", 0), 0.1, 0.5)
	fmt.Printf("Geweke trend test: z=%.3f pass=%v\n", tr.Z, tr.Pass)
}

// forecastDemo fits a random walk to a synthetic series and extends it six
// steps past the sample.
func forecastDemo(backend mcmc.Backend, cfg mcmc.Config) {
	section("Random-walk forecast")

	rng := rand.New(rand.NewPCG(7, 7))
	values := make([]float64, 60)
	level := 10.0
	for t := range values {
		level += rng.NormFloat64() * 0.5
		values[t] = level + rng.NormFloat64()*0.3
	}
	y := timeseries.New(values)

	const h = 6
	padded, err := forecast.Extend(y, h)
	must(err)

	spec, err := model.New(model.RandomWalk, padded.Len(), 1)
	must(err)

	fit, err := mcmc.Fit(backend, spec, mcmc.NewData(padded),
		[]string{"x", "sigma2q", "sigma2r"}, cfg)
	must(err)

	band, err := forecast.FittedBand(fit, "x", 0.95)
	must(err)

	fmt.Println("last in-sample step and forecast band:")
	for i := y.Len() - 1; i < band.Len(); i++ {
		tag := "obs"
		if i >= y.Len() {
			tag = fmt.Sprintf("h=%d", i-y.Len()+1)
		}
		fmt.Printf("  %-8s %-4s mean=%7.3f  [%7.3f, %7.3f]  width=%.3f\n",
			band.Names[i], tag, band.Mean[i], band.Lower[i], band.Upper[i], band.Width(i))
	}
}

// countDemo fits a Poisson log-intensity random walk to synthetic counts.
func countDemo(backend mcmc.Backend, cfg mcmc.Config) {
	section("Poisson count model")

	rng := rand.New(rand.NewPCG(11, 11))
	values := make([]float64, 40)
	logRate := math.Log(5)
	for t := range values {
		logRate += rng.NormFloat64() * 0.1
		values[t] = distuv.Poisson{Lambda: math.Exp(logRate), Src: rng}.Rand()
	}
	y := timeseries.New(values)

	spec, err := model.New(model.PoissonCount, y.Len(), 1)
	must(err)

	fit, err := mcmc.Fit(backend, spec, mcmc.NewData(y),
		[]string{"fit", "sigma2q"}, cfg)
	must(err)

	s, err := diagnostics.Summarize(fit, "sigma2q", 0.95)
	must(err)
	fmt.Printf("process variance: mean=%.4f  95%% CI [%.4f, %.4f]\n",
		s.Mean, s.Lower, s.Upper)

	last := fmt.Sprintf("fit[%d]", y.Len())
	fs, err := diagnostics.Summarize(fit, last, 0.95)
	must(err)
	fmt.Printf("final fitted rate: mean=%.2f (observed %.0f)\n", fs.Mean, values[len(values)-1])
}

func section(title string) {
	fmt.Println()
	fmt.Println(strings.Repeat("-", 72))
	fmt.Println(title)
	fmt.Println(strings.Repeat("-", 72))
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
