package gibbs

import (
	"math"
	"math/rand/v2"

	"github.com/castorsoft/gobsts/mcmc"
	"github.com/castorsoft/gobsts/model"
)

// initStatePrec is the diffuse precision of the initial-state prior
// x[1] ~ N(y0, 1/initStatePrec).
const initStatePrec = 1e-6

// stateSampler fits the univariate linear-Gaussian state-space shapes:
//
//	x[t] = b*x[t-1] + w,  w ~ N(0, 1/tauq)
//	Y[t] ~ N(x[t], 1/taur)
//
// with b fixed at 1 for the random walk and sampled from its truncated
// normal conditional for the stationary state-space shape. The latent path
// is drawn exactly by FFBS; unobserved steps carry zero observation
// precision, so forecast positions accumulate pure process noise.
type stateSampler struct {
	y    []float64
	miss []bool
	n    int
	y0   float64

	arCoeff bool // sample b
	x       []float64
	b       float64
	tauq    float64
	taur    float64

	obsVal, obsPrec  []float64
	xNames, fitNames []string
}

func newStateSampler(data *mcmc.DataDict, arCoeff bool) *stateSampler {
	row := data.Y[0]
	n := len(row)
	s := &stateSampler{
		y:        row,
		miss:     make([]bool, n),
		n:        n,
		y0:       data.Y0[0],
		arCoeff:  arCoeff,
		x:        make([]float64, n),
		obsVal:   make([]float64, n),
		obsPrec:  make([]float64, n),
		xNames:   indexNames("x", n),
		fitNames: indexNames("fit", n),
	}
	for t, v := range row {
		s.miss[t] = math.IsNaN(v)
	}
	return s
}

func (s *stateSampler) init(_ *rand.Rand) {
	s.b = 1
	if s.arCoeff {
		s.b = 0.5
	}
	s.tauq = 1
	s.taur = 1

	last := s.y0
	for t := range s.x {
		if !s.miss[t] {
			last = s.y[t]
		}
		s.x[t] = last
	}
}

func (s *stateSampler) sweep(rng *rand.Rand) error {
	// Latent path x | b, tauq, taur, Y.
	for t := range s.obsPrec {
		if s.miss[t] {
			s.obsPrec[t] = 0
			s.obsVal[t] = 0
		} else {
			s.obsPrec[t] = s.taur
			s.obsVal[t] = s.y[t]
		}
	}
	ffbs(rng, s.b, s.tauq, s.y0, initStatePrec, s.obsVal, s.obsPrec, s.x)

	// taur | x, Y over the observed steps.
	var sse float64
	obs := 0
	for t, v := range s.y {
		if s.miss[t] {
			continue
		}
		d := v - s.x[t]
		sse += d * d
		obs++
	}
	s.taur = drawGamma(rng, model.PrecPriorShape+float64(obs)/2, model.PrecPriorRate+sse/2)

	// tauq | b, x.
	var sseq float64
	for t := 1; t < s.n; t++ {
		d := s.x[t] - s.b*s.x[t-1]
		sseq += d * d
	}
	s.tauq = drawGamma(rng, model.PrecPriorShape+float64(s.n-1)/2, model.PrecPriorRate+sseq/2)

	// b | tauq, x, truncated to the stationary region.
	if s.arCoeff {
		var sxx, sxy float64
		for t := 1; t < s.n; t++ {
			sxx += s.x[t-1] * s.x[t-1]
			sxy += s.x[t-1] * s.x[t]
		}
		if sxx > 0 {
			s.b = drawTruncNormal(rng, sxy/sxx, 1/math.Sqrt(s.tauq*sxx),
				model.ARPriorLower, model.ARPriorUpper)
		}
	}
	return nil
}

func (s *stateSampler) record(set func(string, float64)) {
	if s.arCoeff {
		set("b", s.b)
	}
	set("tauq", s.tauq)
	set("taur", s.taur)
	set("sigma2q", 1/s.tauq)
	set("sigma2r", 1/s.taur)
	for t := range s.x {
		set(s.xNames[t], s.x[t])
		set(s.fitNames[t], s.x[t])
	}
}

func (s *stateSampler) deviance() float64 {
	var ll float64
	for t, v := range s.y {
		if s.miss[t] {
			continue
		}
		ll += logNormPdf(v, s.x[t], s.taur)
	}
	return -2 * ll
}
