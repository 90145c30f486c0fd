// Package model implements declarative Bayesian time series model
// specifications.
//
// A Spec describes a model as data: prior distributions for every free
// parameter, a latent-state recursion, and an observation likelihood. Every
// supported variant is a restriction or extension of one template,
//
//	x[t] = f(x[t-1], coefficients) + process noise
//	Y[t] ~ g(x[t]) + observation noise
//
// parameterized by the presence of an autoregressive coefficient, the
// presence of covariates, the dimensionality of state and observation, and
// the observation-noise family (Gaussian, Poisson, negative binomial).
//
// # Building a Specification
//
//	spec, err := model.New(model.StateSpace, 120, 1)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(spec.Render()) // BUGS-style text for inspection
//
// New deterministically produces an equivalent specification for a given
// shape and dimensions. Validate cross-checks the declared prior set against
// the parameters the likelihood references, so a tampered Spec fails before
// any sampling starts.
//
// Priors are vague by convention: wide Gaussians for location parameters,
// Gamma(0.001, 0.001) for precisions, and Uniform(-1, 1) for autoregressive
// coefficients. In the shared-latent multivariate shape the first series
// offset is fixed at exactly zero, resolving the identifiability between a
// shared latent level and per-series offsets.
package model
