package mcmc

import (
	"github.com/castorsoft/gobsts/model"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"
)

// Backend is the minimal contract with a sampling engine. It receives a
// specification, a data dictionary, the monitored element names, and the
// chain configuration, and returns draws[name][chain][k] with k ordered by
// iteration. Backends raise *NumericalError for sampler failures; chains
// may run in parallel inside the backend, the driver does not coordinate
// them.
type Backend interface {
	Sample(spec *model.Spec, data *DataDict, monitors []string, cfg Config) (map[string][][]float64, error)
}

// devianceName is the monitored quantity carrying -2 log likelihood.
const devianceName = "deviance"

// Fit validates the configuration, invokes the backend, and assembles the
// fit result. Monitors name base quantities from spec.Quantities(); array
// quantities expand to per-element draws. Validation failures surface as
// *ConfigurationError or *DataError before the backend runs; backend
// failures are returned as is.
func Fit(b Backend, spec *model.Spec, data *DataDict, monitors []string, cfg Config) (*FitResult, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, &ConfigurationError{Reason: err.Error()}
	}
	if err := data.Validate(spec); err != nil {
		return nil, err
	}
	if len(monitors) == 0 {
		return nil, configErrf("no monitored quantities")
	}
	for _, name := range monitors {
		if !spec.IsQuantity(name) {
			return nil, configErrf("monitored quantity %q is not produced by the %s specification",
				name, spec.Shape)
		}
	}

	// Expand base names to element names, preserving monitor order. The
	// deviance term DIC needs is sampled alongside but only reported among
	// the names when the caller monitored it.
	var reported []string
	for _, base := range monitors {
		reported = append(reported, spec.ElementNames(base)...)
	}
	names := append([]string(nil), reported...)
	if cfg.ComputeDIC && !contains(monitors, devianceName) {
		names = append(names, devianceName)
	}

	log := cfg.log()
	log.Debug("starting fit",
		zap.Stringer("shape", spec.Shape),
		zap.Int("chains", cfg.Chains),
		zap.Int("iterations", cfg.Iterations),
		zap.Int("monitored", len(names)))

	draws, err := b.Sample(spec, data, names, cfg)
	if err != nil {
		return nil, err
	}

	kept := cfg.Kept()
	for _, name := range names {
		byChain, ok := draws[name]
		if !ok || len(byChain) != cfg.Chains {
			return nil, configErrf("backend returned no draws for %q", name)
		}
		for _, ch := range byChain {
			if len(ch) != kept {
				return nil, configErrf("backend returned %d draws for %q, expected %d",
					len(ch), name, kept)
			}
		}
	}

	fit := &FitResult{
		spec:   spec,
		chains: cfg.Chains,
		kept:   kept,
		names:  reported,
		draws:  draws,
	}

	if cfg.ComputeDIC {
		dev := fit.Pooled(devianceName)
		dbar := stat.Mean(dev, nil)
		// Half-variance form of the effective parameter count,
		// pD = var(deviance)/2.
		pd := stat.Variance(dev, nil) / 2
		fit.dic = dbar + pd
		fit.hasDIC = true
	}

	log.Debug("fit complete", zap.Int("kept", kept))
	return fit, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
