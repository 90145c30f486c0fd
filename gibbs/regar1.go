package gibbs

import (
	"math"
	"math/rand/v2"

	"github.com/castorsoft/gobsts/mcmc"
	"github.com/castorsoft/gobsts/model"
)

// regAR1Sampler fits a linear regression with stationary AR(1) errors:
//
//	Y[t] = beta0 + beta1*c[t] + e[t]
//	e[1] ~ N(0, 1/(tau*(1-b^2)))
//	e[t] = b*e[t-1] + w,  w ~ N(0, 1/tau)
//
// Coefficients are updated on the quasi-differenced model, so they stay
// conjugate for any fixed b. The per-step fitted value is indexed by its
// own time step throughout.
type regAR1Sampler struct {
	y    []float64
	c    []float64
	miss []bool
	n    int

	beta0, beta1, b, tau float64
	fitNames             []string
}

func newRegAR1Sampler(data *mcmc.DataDict) *regAR1Sampler {
	row := data.Y[0]
	s := &regAR1Sampler{
		y:        make([]float64, len(row)),
		c:        data.C,
		miss:     make([]bool, len(row)),
		n:        len(row),
		fitNames: indexNames("fit", len(row)),
	}
	copy(s.y, row)
	for t, v := range row {
		s.miss[t] = math.IsNaN(v)
	}
	return s
}

// mean is the regression line at step t.
func (s *regAR1Sampler) mean(t int) float64 {
	return s.beta0 + s.beta1*s.c[t]
}

// resid is the current AR error at step t.
func (s *regAR1Sampler) resid(t int) float64 {
	return s.y[t] - s.mean(t)
}

func (s *regAR1Sampler) init(_ *rand.Rand) {
	var sum float64
	obs := 0
	for t, v := range s.y {
		if !s.miss[t] {
			sum += v
			obs++
		}
	}
	s.beta0 = sum / float64(obs)
	s.beta1 = 0
	s.b = 0
	s.tau = 1
	for t := range s.y {
		if s.miss[t] {
			s.y[t] = s.mean(t)
		}
	}
}

// impute redraws missing responses through their error-space conditional.
func (s *regAR1Sampler) impute(rng *rand.Rand) {
	for t := range s.y {
		if !s.miss[t] {
			continue
		}
		var sp, sw float64
		if t == 0 {
			sp += s.tau * (1 - s.b*s.b)
		} else {
			sp += s.tau
			sw += s.tau * s.b * s.resid(t-1)
		}
		if t+1 < s.n {
			sp += s.tau * s.b * s.b
			sw += s.tau * s.b * s.resid(t+1)
		}
		e := drawNormal(rng, sw/sp, sp)
		s.y[t] = s.mean(t) + e
	}
}

func (s *regAR1Sampler) sweep(rng *rand.Rand) error {
	s.impute(rng)

	// beta0 | beta1, b, tau on the quasi-differenced model.
	p1 := s.tau * (1 - s.b*s.b)
	cb := 1 - s.b
	sp := model.LocPriorPrec + p1
	sw := p1 * (s.y[0] - s.beta1*s.c[0])
	for t := 1; t < s.n; t++ {
		yd := s.y[t] - s.b*s.y[t-1]
		cd := s.c[t] - s.b*s.c[t-1]
		sp += s.tau * cb * cb
		sw += s.tau * cb * (yd - s.beta1*cd)
	}
	s.beta0 = drawNormal(rng, sw/sp, sp)

	// beta1 | beta0, b, tau.
	sp = model.LocPriorPrec + p1*s.c[0]*s.c[0]
	sw = p1 * s.c[0] * (s.y[0] - s.beta0)
	for t := 1; t < s.n; t++ {
		yd := s.y[t] - s.b*s.y[t-1]
		cd := s.c[t] - s.b*s.c[t-1]
		sp += s.tau * cd * cd
		sw += s.tau * cd * (yd - s.beta0*cb)
	}
	s.beta1 = drawNormal(rng, sw/sp, sp)

	// tau | beta0, beta1, b.
	rate := model.PrecPriorRate + (1-s.b*s.b)*sq(s.resid(0))/2
	for t := 1; t < s.n; t++ {
		rate += sq(s.resid(t)-s.b*s.resid(t-1)) / 2
	}
	s.tau = drawGamma(rng, model.PrecPriorShape+float64(s.n)/2, rate)

	// b | rest via Metropolis with the stationary initial term.
	s.b = mhStep(rng, s.b, arStepSize, func(b float64) float64 {
		if b <= model.ARPriorLower || b >= model.ARPriorUpper {
			return math.Inf(-1)
		}
		lp := 0.5*math.Log(1-b*b) - s.tau*(1-b*b)*sq(s.resid(0))/2
		for t := 1; t < s.n; t++ {
			lp -= s.tau * sq(s.resid(t)-b*s.resid(t-1)) / 2
		}
		return lp
	})
	return nil
}

func (s *regAR1Sampler) record(set func(string, float64)) {
	set("beta0", s.beta0)
	set("beta1", s.beta1)
	set("b", s.b)
	set("tau", s.tau)
	set("sigma2", 1/s.tau)
	for t, name := range s.fitNames {
		switch {
		case s.miss[t]:
			set(name, s.y[t])
		case t == 0:
			set(name, s.mean(0))
		default:
			set(name, s.mean(t)+s.b*s.resid(t-1))
		}
	}
}

func (s *regAR1Sampler) deviance() float64 {
	var ll float64
	if !s.miss[0] {
		ll += logNormPdf(s.y[0], s.mean(0), s.tau*(1-s.b*s.b))
	}
	for t := 1; t < s.n; t++ {
		if s.miss[t] {
			continue
		}
		ll += logNormPdf(s.y[t], s.mean(t)+s.b*s.resid(t-1), s.tau)
	}
	return -2 * ll
}
