package mcmc

import (
	"github.com/castorsoft/gobsts/model"
	"gonum.org/v1/gonum/stat"
)

// FitResult holds the posterior draws of one fit, partitioned by chain.
// Array quantities are reported per element under indexed names ("x[3]",
// "fit[2,5]"). A FitResult is immutable once returned.
type FitResult struct {
	spec   *model.Spec
	chains int
	kept   int
	names  []string
	draws  map[string][][]float64 // element name -> chain -> draws
	dic    float64
	hasDIC bool
}

// Spec returns the specification the fit was produced from.
func (f *FitResult) Spec() *model.Spec {
	return f.spec
}

// Chains returns the chain count.
func (f *FitResult) Chains() int {
	return f.chains
}

// Kept returns the retained draw count per chain.
func (f *FitResult) Kept() int {
	return f.kept
}

// Names returns the monitored element names in deterministic order.
func (f *FitResult) Names() []string {
	out := make([]string, len(f.names))
	copy(out, f.names)
	return out
}

// Has reports whether draws were retained for the element name.
func (f *FitResult) Has(name string) bool {
	_, ok := f.draws[name]
	return ok
}

// Chain returns the ordered draws of one element from one chain (0-based).
func (f *FitResult) Chain(name string, chain int) []float64 {
	byChain, ok := f.draws[name]
	if !ok || chain < 0 || chain >= len(byChain) {
		return nil
	}
	out := make([]float64, len(byChain[chain]))
	copy(out, byChain[chain])
	return out
}

// Pooled returns the draws of one element flattened across chains, chain by
// chain in order. The pooled length is Chains() * Kept().
func (f *FitResult) Pooled(name string) []float64 {
	byChain, ok := f.draws[name]
	if !ok {
		return nil
	}
	out := make([]float64, 0, f.chains*f.kept)
	for _, ch := range byChain {
		out = append(out, ch...)
	}
	return out
}

// Elements returns the monitored element names of an array quantity in
// index order, or nil when base was not monitored.
func (f *FitResult) Elements(base string) []string {
	var out []string
	for _, name := range f.spec.ElementNames(base) {
		if f.Has(name) {
			out = append(out, name)
		}
	}
	return out
}

// Mean returns the pooled posterior mean of one element.
func (f *FitResult) Mean(name string) float64 {
	return stat.Mean(f.Pooled(name), nil)
}

// DIC returns the deviance information criterion and whether it was
// computed.
func (f *FitResult) DIC() (float64, bool) {
	return f.dic, f.hasDIC
}
