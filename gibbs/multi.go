package gibbs

import (
	"math"
	"math/rand/v2"

	"github.com/castorsoft/gobsts/mcmc"
	"github.com/castorsoft/gobsts/model"
	"gonum.org/v1/gonum/mat"
)

// sharedSampler fits m series that share one latent random-walk level:
//
//	x[t] = x[t-1] + w,          w ~ N(0, 1/tauq)
//	Y[i,t] ~ N(a[i] + x[t], 1/taur[i])
//
// The first offset a[1] is fixed at exactly zero and never sampled, which
// resolves the identifiability between the shared level and the offsets.
// The latent path conditional pools all observed series at each step into
// one precision-weighted pseudo observation for the FFBS pass.
type sharedSampler struct {
	y    *mat.Dense // m x n response matrix
	miss [][]bool
	m, n int
	y0   float64

	a    []float64 // a[0] == 0 always
	taur []float64
	x    []float64
	tauq float64

	obsVal, obsPrec []float64
	aNames          []string
	taurNames       []string
	sigma2rNames    []string
	xNames          []string
	fitNames        []string
}

func newSharedSampler(data *mcmc.DataDict) *sharedSampler {
	m, n := data.M, data.N
	y := mat.NewDense(m, n, nil)
	miss := make([][]bool, m)
	for i := 0; i < m; i++ {
		miss[i] = make([]bool, n)
		for t := 0; t < n; t++ {
			v := data.Y[i][t]
			y.Set(i, t, v)
			miss[i][t] = math.IsNaN(v)
		}
	}
	return &sharedSampler{
		y:            y,
		miss:         miss,
		m:            m,
		n:            n,
		y0:           data.Y0[0],
		a:            make([]float64, m),
		taur:         make([]float64, m),
		x:            make([]float64, n),
		obsVal:       make([]float64, n),
		obsPrec:      make([]float64, n),
		aNames:       indexNames("a", m),
		taurNames:    indexNames("taur", m),
		sigma2rNames: indexNames("sigma2r", m),
		xNames:       indexNames("x", n),
		fitNames:     matrixNames("fit", m, n),
	}
}

func (s *sharedSampler) init(_ *rand.Rand) {
	s.tauq = 1
	for i := 0; i < s.m; i++ {
		s.taur[i] = 1
		s.a[i] = 0
	}
	last := s.y0
	for t := 0; t < s.n; t++ {
		if !s.miss[0][t] {
			last = s.y.At(0, t)
		}
		s.x[t] = last
	}
}

func (s *sharedSampler) sweep(rng *rand.Rand) error {
	// Latent level x | a, taur, tauq pooling the observed series per step.
	for t := 0; t < s.n; t++ {
		var sp, sv float64
		for i := 0; i < s.m; i++ {
			if s.miss[i][t] {
				continue
			}
			sp += s.taur[i]
			sv += s.taur[i] * (s.y.At(i, t) - s.a[i])
		}
		s.obsPrec[t] = sp
		if sp > 0 {
			s.obsVal[t] = sv / sp
		} else {
			s.obsVal[t] = 0
		}
	}
	ffbs(rng, 1, s.tauq, s.y0, initStatePrec, s.obsVal, s.obsPrec, s.x)

	// Offsets a[i] for i >= 2; a[1] stays pinned at zero.
	for i := 1; i < s.m; i++ {
		var sw float64
		obs := 0
		for t := 0; t < s.n; t++ {
			if s.miss[i][t] {
				continue
			}
			sw += s.y.At(i, t) - s.x[t]
			obs++
		}
		prec := model.LocPriorPrec + s.taur[i]*float64(obs)
		s.a[i] = drawNormal(rng, s.taur[i]*sw/prec, prec)
	}

	// Observation precisions per series.
	for i := 0; i < s.m; i++ {
		var sse float64
		obs := 0
		for t := 0; t < s.n; t++ {
			if s.miss[i][t] {
				continue
			}
			d := s.y.At(i, t) - s.a[i] - s.x[t]
			sse += d * d
			obs++
		}
		s.taur[i] = drawGamma(rng, model.PrecPriorShape+float64(obs)/2, model.PrecPriorRate+sse/2)
	}

	// Process precision.
	var sseq float64
	for t := 1; t < s.n; t++ {
		d := s.x[t] - s.x[t-1]
		sseq += d * d
	}
	s.tauq = drawGamma(rng, model.PrecPriorShape+float64(s.n-1)/2, model.PrecPriorRate+sseq/2)
	return nil
}

func (s *sharedSampler) record(set func(string, float64)) {
	set("tauq", s.tauq)
	set("sigma2q", 1/s.tauq)
	for i := 0; i < s.m; i++ {
		set(s.aNames[i], s.a[i])
		set(s.taurNames[i], s.taur[i])
		set(s.sigma2rNames[i], 1/s.taur[i])
	}
	for t := 0; t < s.n; t++ {
		set(s.xNames[t], s.x[t])
	}
	for i := 0; i < s.m; i++ {
		for t := 0; t < s.n; t++ {
			set(s.fitNames[i*s.n+t], s.a[i]+s.x[t])
		}
	}
}

func (s *sharedSampler) deviance() float64 {
	var ll float64
	for i := 0; i < s.m; i++ {
		for t := 0; t < s.n; t++ {
			if s.miss[i][t] {
				continue
			}
			ll += logNormPdf(s.y.At(i, t), s.a[i]+s.x[t], s.taur[i])
		}
	}
	return -2 * ll
}

// independentSampler fits m series each with its own latent random walk and
// its own process and observation precisions. The series are conditionally
// independent, so each sweep runs m univariate FFBS passes.
type independentSampler struct {
	y    *mat.Dense
	miss [][]bool
	m, n int
	y0   []float64

	x    [][]float64
	tauq []float64
	taur []float64

	obsVal, obsPrec []float64
	tauqNames       []string
	taurNames       []string
	sigma2qNames    []string
	sigma2rNames    []string
	xNames          []string
	fitNames        []string
}

func newIndependentSampler(data *mcmc.DataDict) *independentSampler {
	m, n := data.M, data.N
	y := mat.NewDense(m, n, nil)
	miss := make([][]bool, m)
	x := make([][]float64, m)
	for i := 0; i < m; i++ {
		miss[i] = make([]bool, n)
		x[i] = make([]float64, n)
		for t := 0; t < n; t++ {
			v := data.Y[i][t]
			y.Set(i, t, v)
			miss[i][t] = math.IsNaN(v)
		}
	}
	y0 := make([]float64, m)
	copy(y0, data.Y0)
	return &independentSampler{
		y:            y,
		miss:         miss,
		m:            m,
		n:            n,
		y0:           y0,
		x:            x,
		tauq:         make([]float64, m),
		taur:         make([]float64, m),
		obsVal:       make([]float64, n),
		obsPrec:      make([]float64, n),
		tauqNames:    indexNames("tauq", m),
		taurNames:    indexNames("taur", m),
		sigma2qNames: indexNames("sigma2q", m),
		sigma2rNames: indexNames("sigma2r", m),
		xNames:       matrixNames("x", m, n),
		fitNames:     matrixNames("fit", m, n),
	}
}

func (s *independentSampler) init(_ *rand.Rand) {
	for i := 0; i < s.m; i++ {
		s.tauq[i] = 1
		s.taur[i] = 1
		last := s.y0[i]
		for t := 0; t < s.n; t++ {
			if !s.miss[i][t] {
				last = s.y.At(i, t)
			}
			s.x[i][t] = last
		}
	}
}

func (s *independentSampler) sweep(rng *rand.Rand) error {
	for i := 0; i < s.m; i++ {
		for t := 0; t < s.n; t++ {
			if s.miss[i][t] {
				s.obsPrec[t] = 0
				s.obsVal[t] = 0
			} else {
				s.obsPrec[t] = s.taur[i]
				s.obsVal[t] = s.y.At(i, t)
			}
		}
		ffbs(rng, 1, s.tauq[i], s.y0[i], initStatePrec, s.obsVal, s.obsPrec, s.x[i])

		var sse float64
		obs := 0
		for t := 0; t < s.n; t++ {
			if s.miss[i][t] {
				continue
			}
			d := s.y.At(i, t) - s.x[i][t]
			sse += d * d
			obs++
		}
		s.taur[i] = drawGamma(rng, model.PrecPriorShape+float64(obs)/2, model.PrecPriorRate+sse/2)

		var sseq float64
		for t := 1; t < s.n; t++ {
			d := s.x[i][t] - s.x[i][t-1]
			sseq += d * d
		}
		s.tauq[i] = drawGamma(rng, model.PrecPriorShape+float64(s.n-1)/2, model.PrecPriorRate+sseq/2)
	}
	return nil
}

func (s *independentSampler) record(set func(string, float64)) {
	for i := 0; i < s.m; i++ {
		set(s.tauqNames[i], s.tauq[i])
		set(s.taurNames[i], s.taur[i])
		set(s.sigma2qNames[i], 1/s.tauq[i])
		set(s.sigma2rNames[i], 1/s.taur[i])
		for t := 0; t < s.n; t++ {
			set(s.xNames[i*s.n+t], s.x[i][t])
			set(s.fitNames[i*s.n+t], s.x[i][t])
		}
	}
}

func (s *independentSampler) deviance() float64 {
	var ll float64
	for i := 0; i < s.m; i++ {
		for t := 0; t < s.n; t++ {
			if s.miss[i][t] {
				continue
			}
			ll += logNormPdf(s.y.At(i, t), s.x[i][t], s.taur[i])
		}
	}
	return -2 * ll
}
