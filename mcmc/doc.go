// Package mcmc provides the fit driver, sampling configuration, and fit
// results for Bayesian time series models.
//
// A fit takes four inputs: a model specification (package model), a data
// dictionary, the monitored quantity names, and a Config with chain count,
// burn-in, thinning, and total iterations. The sampling engine itself sits
// behind the Backend interface; package gibbs provides the built-in
// implementation.
//
//	y := timeseries.New(values)
//	spec, _ := model.New(model.RandomWalk, y.Len(), 1)
//	cfg := mcmc.DefaultConfig()
//	cfg.ComputeDIC = true
//	fit, err := mcmc.Fit(gibbs.New(), spec, mcmc.NewData(y),
//		[]string{"x", "sigma2r"}, cfg)
//
// The retained draw count per chain is floor((Iterations-BurnIn)/Thin), and
// every monitored element carries exactly Chains*Kept pooled draws. A fit is
// synchronous and stateless with respect to other fits: it runs to
// completion or fails.
//
// # Errors
//
// Three error classes are raised fail-fast and never masked or retried:
//
//   - ConfigurationError: burn-in not below iterations, thinning below 1,
//     an unknown monitored name, or data/specification dimension mismatch.
//   - NumericalError: a backend-reported sampler failure, with the
//     offending quantity and time step when available.
//   - DataError: missing values in a covariate series, or a response with
//     no observed values.
//
// All three are concrete types usable with errors.As.
package mcmc
