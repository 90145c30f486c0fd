package gibbs

import (
	"math"
	"math/rand/v2"

	"github.com/castorsoft/gobsts/mcmc"
	"github.com/castorsoft/gobsts/model"
)

// arStepSize is the Metropolis random-walk step for autoregressive
// coefficients with a stationary initial distribution, whose conditional is
// not conjugate.
const arStepSize = 0.15

// ar1Sampler fits the stationary first-order autoregression on the
// response:
//
//	Y[1]  ~ N(mu, 1/(tau*(1-b^2)))
//	Y[t]  ~ N(mu + b*(Y[t-1]-mu), 1/tau)
//
// mu and tau are conjugate; b takes a Metropolis step because the
// stationary initial term breaks conjugacy. The reported stationary
// initial-state variance is (1/tau)/(1-b^2) for the same draw.
type ar1Sampler struct {
	y    []float64
	miss []bool
	n    int

	mu, b, tau float64
	fitNames   []string
}

func newAR1Sampler(data *mcmc.DataDict) *ar1Sampler {
	row := data.Y[0]
	s := &ar1Sampler{
		y:        make([]float64, len(row)),
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

func (s *ar1Sampler) init(_ *rand.Rand) {
	var sum float64
	obs := 0
	for t, v := range s.y {
		if !s.miss[t] {
			sum += v
			obs++
		}
	}
	s.mu = sum / float64(obs)
	s.b = 0
	s.tau = 1
	for t := range s.y {
		if s.miss[t] {
			s.y[t] = s.mu
		}
	}
}

// impute redraws each missing response from its full conditional, which
// combines the step's own recursion term with the successor's.
func (s *ar1Sampler) impute(rng *rand.Rand) {
	for t := range s.y {
		if !s.miss[t] {
			continue
		}
		var sp, sw float64
		if t == 0 {
			p := s.tau * (1 - s.b*s.b)
			sp += p
			sw += p * s.mu
		} else {
			sp += s.tau
			sw += s.tau * (s.mu + s.b*(s.y[t-1]-s.mu))
		}
		if t+1 < s.n {
			// The successor's term is Gaussian in y[t] with precision
			// tau*b^2; accumulate without dividing by b.
			sp += s.tau * s.b * s.b
			sw += s.tau*s.b*(s.y[t+1]-s.mu) + s.tau*s.b*s.b*s.mu
		}
		s.y[t] = drawNormal(rng, sw/sp, sp)
	}
}

func (s *ar1Sampler) sweep(rng *rand.Rand) error {
	s.impute(rng)

	// mu | b, tau. Every term is Gaussian and linear in mu, stationary
	// first step included.
	sp := model.LocPriorPrec
	sw := model.LocPriorPrec * model.LocPriorMean
	p1 := s.tau * (1 - s.b*s.b)
	sp += p1
	sw += p1 * s.y[0]
	cb := 1 - s.b
	for t := 1; t < s.n; t++ {
		sp += s.tau * cb * cb
		sw += s.tau * cb * (s.y[t] - s.b*s.y[t-1])
	}
	s.mu = drawNormal(rng, sw/sp, sp)

	// tau | mu, b.
	rate := model.PrecPriorRate + (1-s.b*s.b)*sq(s.y[0]-s.mu)/2
	for t := 1; t < s.n; t++ {
		rate += sq(s.y[t]-s.mu-s.b*(s.y[t-1]-s.mu)) / 2
	}
	s.tau = drawGamma(rng, model.PrecPriorShape+float64(s.n)/2, rate)

	// b | mu, tau via Metropolis.
	s.b = mhStep(rng, s.b, arStepSize, func(b float64) float64 {
		if b <= model.ARPriorLower || b >= model.ARPriorUpper {
			return math.Inf(-1)
		}
		lp := 0.5*math.Log(1-b*b) - s.tau*(1-b*b)*sq(s.y[0]-s.mu)/2
		for t := 1; t < s.n; t++ {
			lp -= s.tau * sq(s.y[t]-s.mu-b*(s.y[t-1]-s.mu)) / 2
		}
		return lp
	})
	return nil
}

func (s *ar1Sampler) record(set func(string, float64)) {
	set("mu", s.mu)
	set("b", s.b)
	set("tau", s.tau)
	set("sigma2", 1/s.tau)
	set("sigma2init", 1/(s.tau*(1-s.b*s.b)))
	for t, name := range s.fitNames {
		switch {
		case s.miss[t]:
			set(name, s.y[t])
		case t == 0:
			set(name, s.mu)
		default:
			set(name, s.mu+s.b*(s.y[t-1]-s.mu))
		}
	}
}

func (s *ar1Sampler) deviance() float64 {
	var ll float64
	if !s.miss[0] {
		ll += logNormPdf(s.y[0], s.mu, s.tau*(1-s.b*s.b))
	}
	for t := 1; t < s.n; t++ {
		if s.miss[t] {
			continue
		}
		ll += logNormPdf(s.y[t], s.mu+s.b*(s.y[t-1]-s.mu), s.tau)
	}
	return -2 * ll
}

func sq(v float64) float64 {
	return v * v
}
