// Package gibbs implements the built-in Gibbs sampling backend for the
// mcmc.Backend contract.
//
// Every model shape gets a dedicated Gibbs kernel built from three moves:
//
//   - conjugate draws for location parameters (Normal) and precisions
//     (Gamma), including the quasi-differenced coefficient updates of the
//     AR(1)-error regression
//   - exact forward-filter backward-sampling (FFBS) of linear-Gaussian
//     latent paths, with missing observations and forecast positions
//     carrying zero observation precision
//   - Metropolis steps where conjugacy breaks: stationary AR coefficients
//     and the log-intensity path of count models
//
// Missing responses are treated as latent unknowns and either imputed
// (observation-level models) or integrated through the latent path
// (state-space models), so forecasting needs no separate code path.
//
// Chains run in parallel, each from a deterministic stream derived from the
// configured seed, so a fit is reproducible bit for bit.
package gibbs
