package gibbs

import (
	"math"
	"math/rand/v2"

	"github.com/castorsoft/gobsts/mcmc"
	"github.com/castorsoft/gobsts/model"
)

// regressionSampler fits Y[t] ~ N(beta0 + beta1*c[t], 1/tau) with
// element-wise conjugate updates for the coefficients.
type regressionSampler struct {
	y    []float64
	c    []float64
	miss []bool
	n    int

	beta0, beta1, tau float64
	fitNames          []string
}

func newRegressionSampler(data *mcmc.DataDict) *regressionSampler {
	row := data.Y[0]
	s := &regressionSampler{
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

func (s *regressionSampler) mean(t int) float64 {
	return s.beta0 + s.beta1*s.c[t]
}

func (s *regressionSampler) init(_ *rand.Rand) {
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
	s.tau = 1
	for t := range s.y {
		if s.miss[t] {
			s.y[t] = s.mean(t)
		}
	}
}

func (s *regressionSampler) sweep(rng *rand.Rand) error {
	sd := 1 / math.Sqrt(s.tau)
	for t := range s.y {
		if s.miss[t] {
			s.y[t] = s.mean(t) + rng.NormFloat64()*sd
		}
	}

	n := float64(s.n)

	// beta0 | beta1, tau
	var sr float64
	for t, v := range s.y {
		sr += v - s.beta1*s.c[t]
	}
	prec := model.LocPriorPrec + n*s.tau
	s.beta0 = drawNormal(rng, s.tau*sr/prec, prec)

	// beta1 | beta0, tau
	var sxx, sxy float64
	for t, v := range s.y {
		sxx += s.c[t] * s.c[t]
		sxy += s.c[t] * (v - s.beta0)
	}
	prec = model.LocPriorPrec + s.tau*sxx
	s.beta1 = drawNormal(rng, s.tau*sxy/prec, prec)

	// tau | beta0, beta1
	var sse float64
	for t, v := range s.y {
		d := v - s.mean(t)
		sse += d * d
	}
	s.tau = drawGamma(rng, model.PrecPriorShape+n/2, model.PrecPriorRate+sse/2)
	return nil
}

func (s *regressionSampler) record(set func(string, float64)) {
	set("beta0", s.beta0)
	set("beta1", s.beta1)
	set("tau", s.tau)
	set("sigma2", 1/s.tau)
	for t, name := range s.fitNames {
		if s.miss[t] {
			set(name, s.y[t])
		} else {
			set(name, s.mean(t))
		}
	}
}

func (s *regressionSampler) deviance() float64 {
	var ll float64
	for t, v := range s.y {
		if s.miss[t] {
			continue
		}
		ll += logNormPdf(v, s.mean(t), s.tau)
	}
	return -2 * ll
}
