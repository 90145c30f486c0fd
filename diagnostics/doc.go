// Package diagnostics provides posterior summaries and convergence
// diagnostics for Markov chain Monte Carlo fit results.
//
// All functions are pure with respect to the fit result: a fit is immutable
// once returned and diagnostics derive everything from its draws.
//
// # Summaries
//
// Summarize reports the posterior mean, standard deviation, and central
// credible interval of one quantity, together with the potential-scale-
// reduction statistic (Rhat) and the effective sample size:
//
//	s, err := diagnostics.Summarize(fit, "mu", 0.95)
//
// Array quantities expose per-element diagnostics through
// SummarizeElements; there is deliberately no aggregate summary of an
// array.
//
// # Convergence
//
// GelmanRubin compares within-chain to between-chain variance; values near
// 1 indicate the chains sample the same distribution. A single chain is
// diagnosed on its split halves. Geweke compares early and late segment
// means of one chain (a trend test), and Stationarity runs a one-way F
// test across segment means. Autocorr and AutocorrByChain report chain
// autocorrelation at chosen lags.
package diagnostics
