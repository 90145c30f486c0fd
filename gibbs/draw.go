package gibbs

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

const ln2Pi = 1.8378770664093454836

// drawNormal draws from a Normal given mean and precision.
func drawNormal(rng *rand.Rand, mean, prec float64) float64 {
	return mean + rng.NormFloat64()/math.Sqrt(prec)
}

// drawGamma draws from a Gamma given shape and rate.
func drawGamma(rng *rand.Rand, shape, rate float64) float64 {
	return distuv.Gamma{Alpha: shape, Beta: rate, Src: rng}.Rand()
}

// drawTruncNormal draws from a Normal(mean, sd) truncated to (lo, hi) by
// inverse-CDF sampling. When the untruncated mass inside the interval is
// vanishingly small the draw degenerates to the nearer bound.
func drawTruncNormal(rng *rand.Rand, mean, sd, lo, hi float64) float64 {
	n := distuv.Normal{Mu: mean, Sigma: sd}
	plo, phi := n.CDF(lo), n.CDF(hi)
	if phi-plo < 1e-12 {
		if mean <= lo {
			return math.Nextafter(lo, hi)
		}
		return math.Nextafter(hi, lo)
	}
	u := plo + rng.Float64()*(phi-plo)
	x := n.Quantile(u)
	if x <= lo {
		return math.Nextafter(lo, hi)
	}
	if x >= hi {
		return math.Nextafter(hi, lo)
	}
	return x
}

// mhStep proposes a Gaussian random-walk move from cur and accepts by the
// Metropolis rule. logp must return math.Inf(-1) outside the support.
func mhStep(rng *rand.Rand, cur, step float64, logp func(float64) float64) float64 {
	prop := cur + step*rng.NormFloat64()
	diff := logp(prop) - logp(cur)
	if diff >= 0 || rng.Float64() < math.Exp(diff) {
		return prop
	}
	return cur
}

// logNormPdf is the Normal log density in mean/precision form.
func logNormPdf(x, mean, prec float64) float64 {
	d := x - mean
	return 0.5*(math.Log(prec)-ln2Pi) - 0.5*prec*d*d
}

// logPoisPmf is the Poisson log probability mass at count y with mean lam.
func logPoisPmf(y, lam float64) float64 {
	lg, _ := math.Lgamma(y + 1)
	return y*math.Log(lam) - lam - lg
}

// logNegBinPmf is the negative-binomial log probability mass at count y
// with size r and mean m.
func logNegBinPmf(y, r, m float64) float64 {
	lgYR, _ := math.Lgamma(y + r)
	lgR, _ := math.Lgamma(r)
	lgY, _ := math.Lgamma(y + 1)
	return lgYR - lgR - lgY + r*math.Log(r/(r+m)) + y*math.Log(m/(r+m))
}
