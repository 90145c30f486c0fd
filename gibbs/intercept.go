package gibbs

import (
	"math"
	"math/rand/v2"

	"github.com/castorsoft/gobsts/mcmc"
	"github.com/castorsoft/gobsts/model"
	"gonum.org/v1/gonum/floats"
)

// interceptSampler fits Y[t] ~ N(mu, 1/tau). Both conditionals are
// conjugate; missing responses are imputed from the current predictive
// distribution each sweep.
type interceptSampler struct {
	y    []float64 // working copy, missing entries hold the current imputation
	miss []bool
	n    int

	mu, tau  float64
	fitNames []string
}

func newInterceptSampler(data *mcmc.DataDict) *interceptSampler {
	row := data.Y[0]
	s := &interceptSampler{
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

func (s *interceptSampler) init(_ *rand.Rand) {
	var sum, sq float64
	obs := 0
	for t, v := range s.y {
		if s.miss[t] {
			continue
		}
		sum += v
		sq += v * v
		obs++
	}
	s.mu = sum / float64(obs)
	s.tau = 1
	if obs > 1 {
		v := (sq - sum*sum/float64(obs)) / float64(obs-1)
		if v > 0 {
			s.tau = 1 / v
		}
	}
	for t := range s.y {
		if s.miss[t] {
			s.y[t] = s.mu
		}
	}
}

func (s *interceptSampler) sweep(rng *rand.Rand) error {
	sd := 1 / math.Sqrt(s.tau)
	for t := range s.y {
		if s.miss[t] {
			s.y[t] = s.mu + rng.NormFloat64()*sd
		}
	}

	n := float64(s.n)
	prec := model.LocPriorPrec + n*s.tau
	mean := (model.LocPriorPrec*model.LocPriorMean + s.tau*floats.Sum(s.y)) / prec
	s.mu = drawNormal(rng, mean, prec)

	var sse float64
	for _, v := range s.y {
		d := v - s.mu
		sse += d * d
	}
	s.tau = drawGamma(rng, model.PrecPriorShape+n/2, model.PrecPriorRate+sse/2)
	return nil
}

func (s *interceptSampler) record(set func(string, float64)) {
	set("mu", s.mu)
	set("tau", s.tau)
	set("sigma2", 1/s.tau)
	for t, name := range s.fitNames {
		if s.miss[t] {
			set(name, s.y[t])
		} else {
			set(name, s.mu)
		}
	}
}

func (s *interceptSampler) deviance() float64 {
	var ll float64
	for t, v := range s.y {
		if s.miss[t] {
			continue
		}
		ll += logNormPdf(v, s.mu, s.tau)
	}
	return -2 * ll
}
