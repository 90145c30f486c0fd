package gibbs

import (
	"math"
	"math/rand/v2"

	"github.com/castorsoft/gobsts/mcmc"
	"github.com/castorsoft/gobsts/model"
)

// latentStepSize is the Metropolis random-walk step for single-site
// log-intensity updates under count likelihoods.
const latentStepSize = 0.4

// countSampler fits count responses over a latent random-walk
// log-intensity:
//
//	x[t] = x[t-1] + w,  w ~ N(0, 1/tauq)
//	Y[t] ~ Poisson(exp(x[t]))            (Poisson shape)
//	Y[t] ~ NegBin(r, mean exp(x[t]))     (negative-binomial shape)
//
// The log link removes conjugacy for the latent path, so each x[t] takes a
// single-site Metropolis step against its neighbor terms plus the
// observation mass. tauq stays conjugate; the negative-binomial size r is
// updated by Metropolis on the log scale.
type countSampler struct {
	y    []float64
	miss []bool
	n    int
	x0m  float64 // initial-state prior mean, log(y0+1)

	negbin bool
	x      []float64
	tauq   float64
	r      float64

	xNames, fitNames []string
}

// initCountPrec is the initial-state prior precision on the log scale.
const initCountPrec = 1e-2

func newCountSampler(data *mcmc.DataDict, negbin bool) (*countSampler, error) {
	row := data.Y[0]
	s := &countSampler{
		y:        row,
		miss:     make([]bool, len(row)),
		n:        len(row),
		x0m:      math.Log(data.Y0[0] + 1),
		negbin:   negbin,
		x:        make([]float64, len(row)),
		xNames:   indexNames("x", len(row)),
		fitNames: indexNames("fit", len(row)),
	}
	for t, v := range row {
		if math.IsNaN(v) {
			s.miss[t] = true
			continue
		}
		if v < 0 || v != math.Floor(v) {
			return nil, &mcmc.NumericalError{
				Quantity: "Y",
				Step:     t + 1,
				Reason:   "count likelihood requires non-negative integer observations",
			}
		}
	}
	return s, nil
}

func (s *countSampler) init(_ *rand.Rand) {
	s.tauq = 1
	s.r = 1
	last := s.x0m
	for t := range s.x {
		if !s.miss[t] {
			last = math.Log(s.y[t] + 0.5)
		}
		s.x[t] = last
	}
}

// obsLogProb is the observation log mass at step t for log-intensity xt,
// zero for unobserved steps.
func (s *countSampler) obsLogProb(t int, xt float64) float64 {
	if s.miss[t] {
		return 0
	}
	m := math.Exp(xt)
	if s.negbin {
		return logNegBinPmf(s.y[t], s.r, m)
	}
	return logPoisPmf(s.y[t], m)
}

func (s *countSampler) sweep(rng *rand.Rand) error {
	// Single-site Metropolis over the latent path.
	for t := 0; t < s.n; t++ {
		s.x[t] = mhStep(rng, s.x[t], latentStepSize, func(xt float64) float64 {
			var lp float64
			if t == 0 {
				lp += logNormPdf(xt, s.x0m, initCountPrec)
			} else {
				lp += logNormPdf(xt, s.x[t-1], s.tauq)
			}
			if t+1 < s.n {
				lp += logNormPdf(s.x[t+1], xt, s.tauq)
			}
			return lp + s.obsLogProb(t, xt)
		})
	}

	// tauq | x.
	var sseq float64
	for t := 1; t < s.n; t++ {
		d := s.x[t] - s.x[t-1]
		sseq += d * d
	}
	s.tauq = drawGamma(rng, model.PrecPriorShape+float64(s.n-1)/2, model.PrecPriorRate+sseq/2)

	// r | x, Y by Metropolis on log r, keeping the size positive.
	if s.negbin {
		lr := mhStep(rng, math.Log(s.r), 0.3, func(lr float64) float64 {
			r := math.Exp(lr)
			// Gamma prior plus the log-scale Jacobian.
			lp := model.SizePriorShape*lr - model.SizePriorRate*r
			for t := 0; t < s.n; t++ {
				if s.miss[t] {
					continue
				}
				lp += logNegBinPmf(s.y[t], r, math.Exp(s.x[t]))
			}
			return lp
		})
		s.r = math.Exp(lr)
	}
	return nil
}

func (s *countSampler) record(set func(string, float64)) {
	set("tauq", s.tauq)
	set("sigma2q", 1/s.tauq)
	if s.negbin {
		set("r", s.r)
	}
	for t := range s.x {
		set(s.xNames[t], s.x[t])
		set(s.fitNames[t], math.Exp(s.x[t]))
	}
}

func (s *countSampler) deviance() float64 {
	var ll float64
	for t := range s.y {
		if s.miss[t] {
			continue
		}
		ll += s.obsLogProb(t, s.x[t])
	}
	return -2 * ll
}
