// Package gibbs implements the built-in Gibbs sampling backend.
package gibbs

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/castorsoft/gobsts/mcmc"
	"github.com/castorsoft/gobsts/model"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Backend samples model posteriors by Gibbs sweeps: conjugate parameter
// updates, exact forward-filter backward-sampling of latent paths, and
// Metropolis steps for the few non-conjugate conditionals. It implements
// mcmc.Backend and holds no state of its own; every Sample call is
// independent.
type Backend struct{}

// New returns the built-in sampling backend.
func New() *Backend {
	return &Backend{}
}

// Sample runs cfg.Chains independent chains in parallel and returns
// draws[name][chain][k]. Chains derive distinct deterministic random
// streams from cfg.Seed.
func (b *Backend) Sample(spec *model.Spec, data *mcmc.DataDict, monitors []string, cfg mcmc.Config) (map[string][][]float64, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	kept := cfg.Kept()
	perChain := make([]map[string][]float64, cfg.Chains)

	var g errgroup.Group
	for c := 0; c < cfg.Chains; c++ {
		g.Go(func() error {
			smp, err := newSampler(spec, data)
			if err != nil {
				return err
			}
			rng := rand.New(rand.NewPCG(cfg.Seed, uint64(c)+1))
			start := time.Now()
			out, err := runChain(smp, rng, monitors, cfg, kept)
			if err != nil {
				return err
			}
			logger.Debug("chain complete",
				zap.Int("chain", c+1),
				zap.Int("kept", kept),
				zap.Duration("elapsed", time.Since(start)))
			perChain[c] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	draws := make(map[string][][]float64, len(monitors))
	for _, name := range monitors {
		byChain := make([][]float64, cfg.Chains)
		for c := 0; c < cfg.Chains; c++ {
			byChain[c] = perChain[c][name]
		}
		draws[name] = byChain
	}
	return draws, nil
}

// sampler is one model variant's Gibbs kernel. init sets starting values,
// sweep performs one full update of every unknown, record reports the
// current value of every monitorable quantity.
type sampler interface {
	init(rng *rand.Rand)
	sweep(rng *rand.Rand) error
	record(set func(name string, v float64))
	deviance() float64
}

func newSampler(spec *model.Spec, data *mcmc.DataDict) (sampler, error) {
	switch spec.Shape {
	case model.InterceptOnly:
		return newInterceptSampler(data), nil
	case model.Regression:
		return newRegressionSampler(data), nil
	case model.RandomWalk:
		return newStateSampler(data, false), nil
	case model.StateSpace:
		return newStateSampler(data, true), nil
	case model.AR1:
		return newAR1Sampler(data), nil
	case model.RegressionAR1:
		return newRegAR1Sampler(data), nil
	case model.MultiShared:
		return newSharedSampler(data), nil
	case model.MultiIndependent:
		return newIndependentSampler(data), nil
	case model.PoissonCount:
		return newCountSampler(data, false)
	case model.NegBinCount:
		return newCountSampler(data, true)
	}
	return nil, &mcmc.ConfigurationError{Reason: "no sampler for shape " + spec.Shape.String()}
}

func runChain(smp sampler, rng *rand.Rand, monitors []string, cfg mcmc.Config, kept int) (map[string][]float64, error) {
	idx := make(map[string]int, len(monitors))
	out := make(map[string][]float64, len(monitors))
	for i, name := range monitors {
		idx[name] = i
		out[name] = make([]float64, kept)
	}
	buf := make([]float64, len(monitors))
	set := func(name string, v float64) {
		if j, ok := idx[name]; ok {
			buf[j] = v
		}
	}
	_, wantDev := idx["deviance"]

	smp.init(rng)
	k := 0
	for i := 0; i < cfg.Iterations; i++ {
		if err := smp.sweep(rng); err != nil {
			return nil, err
		}
		if i < cfg.BurnIn || (i-cfg.BurnIn+1)%cfg.Thin != 0 || k >= kept {
			continue
		}
		smp.record(set)
		if wantDev {
			set("deviance", smp.deviance())
		}
		for j, name := range monitors {
			out[name][k] = buf[j]
		}
		k++
	}
	return out, nil
}

// indexNames expands an array quantity to its 1-based element names.
func indexNames(base string, n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("%s[%d]", base, i+1)
	}
	return names
}

// matrixNames expands a matrix quantity to "base[i,t]" names, series-major.
func matrixNames(base string, m, n int) []string {
	names := make([]string, 0, m*n)
	for i := 1; i <= m; i++ {
		for t := 1; t <= n; t++ {
			names = append(names, fmt.Sprintf("%s[%d,%d]", base, i, t))
		}
	}
	return names
}
