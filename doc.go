// Package gobsts provides Bayesian time series modeling with linear-Gaussian
// state-space models fitted by Markov chain Monte Carlo.
//
// GoBSTS expresses a family of univariate and multivariate time series models
// as declarative specifications (priors, a latent-state recursion, and an
// observation likelihood), hands them to a generic sampling backend, and
// returns posterior draws together with convergence diagnostics and
// probabilistic forecasts.
//
// # Features
//
//   - Declarative model specifications: intercept-only, linear regression,
//     random walk, AR(1), regression with AR(1) errors, univariate and
//     multivariate state-space models, Poisson and negative-binomial counts
//   - A generic sampling-backend interface with a built-in Gibbs sampler
//   - Missing observations treated as latent unknowns, which makes
//     forecasting a special case of fitting
//   - Posterior summaries, credible intervals, potential-scale-reduction,
//     autocorrelation, Geweke and segment-stationarity diagnostics
//   - Deviance information criterion for model comparison
//
// # Quick Start
//
// Fit an intercept-only model:
//
//	y := timeseries.New([]float64{7.4, 8.0, 12.6, 11.5, 14.3})
//	spec, _ := model.New(model.InterceptOnly, y.Len(), 1)
//	fit, _ := mcmc.Fit(gibbs.New(), spec, mcmc.NewData(y),
//		[]string{"mu", "sigma2"}, mcmc.DefaultConfig())
//	s, _ := diagnostics.Summarize(fit, "mu", 0.95)
//	fmt.Printf("mu = %.2f [%.2f, %.2f]\n", s.Mean, s.Lower, s.Upper)
//
// Forecast two steps ahead with a random walk:
//
//	padded, _ := forecast.Extend(y, 2)
//	spec, _ := model.New(model.RandomWalk, padded.Len(), 1)
//	fit, _ := mcmc.Fit(gibbs.New(), spec, mcmc.NewData(padded),
//		[]string{"x"}, mcmc.DefaultConfig())
//	band, _ := forecast.FittedBand(fit, "x", 0.95)
//
// # Packages
//
// The library is organized into the following packages:
//
//   - model: declarative model specifications and priors
//   - mcmc: fit driver, sampling configuration, fit results, error taxonomy
//   - gibbs: built-in Gibbs sampling backend
//   - diagnostics: posterior summaries and convergence diagnostics
//   - forecast: forecast-horizon padding and credible bands
//   - timeseries: series container with missing-value support
//
// # References
//
//   - West, M., & Harrison, J. (1997). Bayesian Forecasting and Dynamic Models
//   - Gelman, A., et al. (2013). Bayesian Data Analysis
package gobsts
