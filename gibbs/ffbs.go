package gibbs

import (
	"math"
	"math/rand/v2"
)

// ffbs draws one exact sample of a univariate linear-Gaussian latent path
//
//	x[1] ~ N(m1, 1/p1)
//	x[t] = phi*x[t-1] + w,   w ~ N(0, 1/tauq)
//
// conditioned on per-step pseudo observations: obsPrec[t] is the total
// observation precision at step t (0 when the step is unobserved, which is
// how missing responses and forecast positions propagate pure process
// noise) and obsVal[t] is the precision-weighted observation value. The
// draw is a Kalman forward filter followed by backward sampling, written
// into out.
func ffbs(rng *rand.Rand, phi, tauq, m1, p1 float64, obsVal, obsPrec, out []float64) {
	n := len(out)
	fm := make([]float64, n) // filtered means
	fv := make([]float64, n) // filtered variances

	pm, pv := m1, 1/p1
	for t := 0; t < n; t++ {
		if t > 0 {
			pm = phi * fm[t-1]
			pv = phi*phi*fv[t-1] + 1/tauq
		}
		if obsPrec[t] > 0 {
			prec := 1/pv + obsPrec[t]
			fm[t] = (pm/pv + obsPrec[t]*obsVal[t]) / prec
			fv[t] = 1 / prec
		} else {
			fm[t], fv[t] = pm, pv
		}
	}

	out[n-1] = fm[n-1] + rng.NormFloat64()*math.Sqrt(fv[n-1])
	for t := n - 2; t >= 0; t-- {
		// Combine the filtered state with the already-drawn successor,
		// which acts as one more observation of phi*x[t].
		prec := 1/fv[t] + phi*phi*tauq
		mean := (fm[t]/fv[t] + phi*tauq*out[t+1]) / prec
		out[t] = mean + rng.NormFloat64()/math.Sqrt(prec)
	}
}
