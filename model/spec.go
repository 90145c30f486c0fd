// Package model implements declarative Bayesian time series model
// specifications.
package model

import (
	"errors"
	"fmt"
	"sort"
)

// ErrSpec is wrapped by every specification-building or validation error.
var ErrSpec = errors.New("invalid model specification")

// Shape identifies a model variant. Every shape is a restriction or
// extension of the template
//
//	x[t] = f(x[t-1], coefficients) + process noise
//	Y[t] ~ g(x[t]) + observation noise
type Shape int

const (
	// InterceptOnly models Y[t] ~ Normal(mu, 1/tau) with no dynamics.
	InterceptOnly Shape = iota
	// Regression models Y[t] ~ Normal(beta0 + beta1*c[t], 1/tau).
	Regression
	// RandomWalk models a latent random walk observed with Gaussian noise.
	RandomWalk
	// AR1 models a stationary first-order autoregression on the response,
	// with the initial value drawn from the implied stationary distribution.
	AR1
	// RegressionAR1 models a linear regression whose errors follow a
	// stationary AR(1) process.
	RegressionAR1
	// StateSpace models a latent AR(1) state observed with Gaussian noise.
	StateSpace
	// MultiShared models m series sharing one latent random walk, each with
	// its own offset and observation precision. The first offset is fixed at
	// zero to keep the level identifiable.
	MultiShared
	// MultiIndependent models m series each with its own latent random walk
	// and observation precision.
	MultiIndependent
	// PoissonCount models counts Y[t] ~ Poisson(exp(x[t])) over a latent
	// random walk.
	PoissonCount
	// NegBinCount models overdispersed counts Y[t] ~ NegBin(r, exp(x[t]))
	// over a latent random walk.
	NegBinCount
)

var shapeNames = map[Shape]string{
	InterceptOnly:    "intercept-only",
	Regression:       "regression",
	RandomWalk:       "random-walk",
	AR1:              "ar1",
	RegressionAR1:    "regression-ar1-errors",
	StateSpace:       "state-space",
	MultiShared:      "multivariate-shared",
	MultiIndependent: "multivariate-independent",
	PoissonCount:     "poisson-count",
	NegBinCount:      "negative-binomial-count",
}

func (s Shape) String() string {
	if n, ok := shapeNames[s]; ok {
		return n
	}
	return fmt.Sprintf("shape(%d)", int(s))
}

// Family identifies a prior distribution family.
type Family int

const (
	// FamNormal is a Normal prior parameterized by mean and precision.
	FamNormal Family = iota
	// FamGamma is a Gamma prior parameterized by shape and rate.
	FamGamma
	// FamUniform is a Uniform prior parameterized by lower and upper bound.
	FamUniform
)

func (f Family) String() string {
	switch f {
	case FamNormal:
		return "dnorm"
	case FamGamma:
		return "dgamma"
	case FamUniform:
		return "dunif"
	}
	return fmt.Sprintf("family(%d)", int(f))
}

// Prior declares the prior distribution of one free parameter.
type Prior struct {
	Name   string
	Family Family
	// A and B are the family's two hyperparameters: mean/precision for
	// Normal, shape/rate for Gamma, lower/upper for Uniform.
	A, B float64
}

// Default vague hyperparameters, by convention: wide Gaussians for location
// parameters, Gamma(0.001, 0.001) for precisions, Uniform(-1, 1) for AR
// coefficients.
const (
	LocPriorMean = 0.0
	LocPriorPrec = 1.0e-6

	PrecPriorShape = 0.001
	PrecPriorRate  = 0.001

	ARPriorLower = -1.0
	ARPriorUpper = 1.0

	SizePriorShape = 0.01
	SizePriorRate  = 0.01
)

// Spec is a declarative model specification: the shape, its dimensions, and
// the prior for every free parameter. Specs are built by New and validated
// structurally; a given (shape, N, M) always produces an equivalent Spec.
type Spec struct {
	Shape Shape
	// N is the series length, forecast positions included.
	N int
	// M is the number of observation series (1 for univariate shapes).
	M int
	// Priors lists one entry per free parameter. Vector parameters use
	// indexed names ("a[2]", "taur[1]").
	Priors []Prior

	scalars []string       // monitorable scalar quantities, in order
	vectors map[string]int // monitorable array quantities -> element count
	order   []string       // deterministic order of all base quantities
}

// New builds the specification for the given shape and dimensions. Univariate
// shapes require m == 1; multivariate shapes require m >= 2.
func New(shape Shape, n, m int) (*Spec, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: series length %d, need at least 2", ErrSpec, n)
	}
	multi := shape == MultiShared || shape == MultiIndependent
	if multi && m < 2 {
		return nil, fmt.Errorf("%w: %s requires at least 2 series, got %d", ErrSpec, shape, m)
	}
	if !multi && m != 1 {
		return nil, fmt.Errorf("%w: %s is univariate, got %d series", ErrSpec, shape, m)
	}
	if _, ok := shapeNames[shape]; !ok {
		return nil, fmt.Errorf("%w: unknown shape %d", ErrSpec, int(shape))
	}

	s := &Spec{Shape: shape, N: n, M: m, vectors: map[string]int{}}
	s.build()
	return s, nil
}

func locPrior(name string) Prior {
	return Prior{Name: name, Family: FamNormal, A: LocPriorMean, B: LocPriorPrec}
}

func precPrior(name string) Prior {
	return Prior{Name: name, Family: FamGamma, A: PrecPriorShape, B: PrecPriorRate}
}

func arPrior(name string) Prior {
	return Prior{Name: name, Family: FamUniform, A: ARPriorLower, B: ARPriorUpper}
}

func (s *Spec) addScalar(names ...string) {
	s.scalars = append(s.scalars, names...)
	s.order = append(s.order, names...)
}

func (s *Spec) addVector(name string, size int) {
	s.vectors[name] = size
	s.order = append(s.order, name)
}

func (s *Spec) build() {
	n, m := s.N, s.M

	switch s.Shape {
	case InterceptOnly:
		s.Priors = []Prior{locPrior("mu"), precPrior("tau")}
		s.addScalar("mu", "tau", "sigma2")
		s.addVector("fit", n)

	case Regression:
		s.Priors = []Prior{locPrior("beta0"), locPrior("beta1"), precPrior("tau")}
		s.addScalar("beta0", "beta1", "tau", "sigma2")
		s.addVector("fit", n)

	case RandomWalk:
		s.Priors = []Prior{precPrior("tauq"), precPrior("taur")}
		s.addScalar("tauq", "taur", "sigma2q", "sigma2r")
		s.addVector("x", n)
		s.addVector("fit", n)

	case AR1:
		s.Priors = []Prior{locPrior("mu"), arPrior("b"), precPrior("tau")}
		s.addScalar("mu", "b", "tau", "sigma2", "sigma2init")
		s.addVector("fit", n)

	case RegressionAR1:
		s.Priors = []Prior{locPrior("beta0"), locPrior("beta1"), arPrior("b"), precPrior("tau")}
		s.addScalar("beta0", "beta1", "b", "tau", "sigma2")
		s.addVector("fit", n)

	case StateSpace:
		s.Priors = []Prior{arPrior("b"), precPrior("tauq"), precPrior("taur")}
		s.addScalar("b", "tauq", "taur", "sigma2q", "sigma2r")
		s.addVector("x", n)
		s.addVector("fit", n)

	case MultiShared:
		// a[1] is fixed at zero, not estimated, so it carries no prior.
		s.Priors = []Prior{precPrior("tauq")}
		for i := 2; i <= m; i++ {
			s.Priors = append(s.Priors, locPrior(fmt.Sprintf("a[%d]", i)))
		}
		for i := 1; i <= m; i++ {
			s.Priors = append(s.Priors, precPrior(fmt.Sprintf("taur[%d]", i)))
		}
		s.addScalar("tauq", "sigma2q")
		s.addVector("a", m)
		s.addVector("taur", m)
		s.addVector("sigma2r", m)
		s.addVector("x", n)
		s.addVector("fit", m*n)

	case MultiIndependent:
		for i := 1; i <= m; i++ {
			s.Priors = append(s.Priors, precPrior(fmt.Sprintf("tauq[%d]", i)))
		}
		for i := 1; i <= m; i++ {
			s.Priors = append(s.Priors, precPrior(fmt.Sprintf("taur[%d]", i)))
		}
		s.addVector("tauq", m)
		s.addVector("taur", m)
		s.addVector("sigma2q", m)
		s.addVector("sigma2r", m)
		s.addVector("x", m*n)
		s.addVector("fit", m*n)

	case PoissonCount:
		s.Priors = []Prior{precPrior("tauq")}
		s.addScalar("tauq", "sigma2q")
		s.addVector("x", n)
		s.addVector("fit", n)

	case NegBinCount:
		s.Priors = []Prior{
			precPrior("tauq"),
			{Name: "r", Family: FamGamma, A: SizePriorShape, B: SizePriorRate},
		}
		s.addScalar("tauq", "r", "sigma2q")
		s.addVector("x", n)
		s.addVector("fit", n)
	}

	// The per-iteration deviance is monitorable for every shape.
	s.addScalar("deviance")
}

// NeedsCovariate reports whether the shape's observation line references a
// covariate series.
func (s *Spec) NeedsCovariate() bool {
	return s.Shape == Regression || s.Shape == RegressionAR1
}

// CountData reports whether the response must be non-negative integers.
func (s *Spec) CountData() bool {
	return s.Shape == PoissonCount || s.Shape == NegBinCount
}

// Latent reports whether the shape carries a latent state series.
func (s *Spec) Latent() bool {
	_, ok := s.vectors["x"]
	return ok
}

// Quantities returns the monitorable base quantity names in deterministic
// order. Array quantities appear under their base name; their posterior
// draws are reported per element ("x[3]", "fit[2,5]").
func (s *Spec) Quantities() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// IsQuantity reports whether name is a monitorable base quantity.
func (s *Spec) IsQuantity(name string) bool {
	for _, q := range s.order {
		if q == name {
			return true
		}
	}
	return false
}

// VectorLen returns the element count of an array quantity, or (0, false)
// for scalar or unknown names.
func (s *Spec) VectorLen(name string) (int, bool) {
	size, ok := s.vectors[name]
	return size, ok
}

// ElementNames returns the indexed element names of base in index order.
// Scalar quantities return just the base name. Matrix quantities of the
// multivariate shapes use "base[i,t]" with 1-based indices, series-major.
func (s *Spec) ElementNames(base string) []string {
	size, ok := s.vectors[base]
	if !ok {
		if s.IsQuantity(base) {
			return []string{base}
		}
		return nil
	}
	if s.M > 1 && size == s.M*s.N {
		names := make([]string, 0, size)
		for i := 1; i <= s.M; i++ {
			for t := 1; t <= s.N; t++ {
				names = append(names, fmt.Sprintf("%s[%d,%d]", base, i, t))
			}
		}
		return names
	}
	names := make([]string, size)
	for i := range names {
		names[i] = fmt.Sprintf("%s[%d]", base, i+1)
	}
	return names
}

// Validate cross-checks the declared prior set against the parameters the
// shape's recursion and observation lines reference. A Spec built by New
// always passes; a mutated one may not.
func (s *Spec) Validate() error {
	want := referencedParams(s.Shape, s.M)
	got := make(map[string]bool, len(s.Priors))
	for _, p := range s.Priors {
		if got[p.Name] {
			return fmt.Errorf("%w: duplicate prior for %q", ErrSpec, p.Name)
		}
		got[p.Name] = true
	}
	for _, name := range want {
		if !got[name] {
			return fmt.Errorf("%w: parameter %q referenced by %s but has no prior",
				ErrSpec, name, s.Shape)
		}
		delete(got, name)
	}
	if len(got) > 0 {
		extra := make([]string, 0, len(got))
		for name := range got {
			extra = append(extra, name)
		}
		sort.Strings(extra)
		return fmt.Errorf("%w: prior for %q not referenced by %s",
			ErrSpec, extra[0], s.Shape)
	}
	return nil
}

// referencedParams lists the parameters each shape's likelihood references.
func referencedParams(shape Shape, m int) []string {
	switch shape {
	case InterceptOnly:
		return []string{"mu", "tau"}
	case Regression:
		return []string{"beta0", "beta1", "tau"}
	case RandomWalk:
		return []string{"tauq", "taur"}
	case AR1:
		return []string{"mu", "b", "tau"}
	case RegressionAR1:
		return []string{"beta0", "beta1", "b", "tau"}
	case StateSpace:
		return []string{"b", "tauq", "taur"}
	case MultiShared:
		out := []string{"tauq"}
		for i := 2; i <= m; i++ {
			out = append(out, fmt.Sprintf("a[%d]", i))
		}
		for i := 1; i <= m; i++ {
			out = append(out, fmt.Sprintf("taur[%d]", i))
		}
		return out
	case MultiIndependent:
		var out []string
		for i := 1; i <= m; i++ {
			out = append(out, fmt.Sprintf("tauq[%d]", i))
		}
		for i := 1; i <= m; i++ {
			out = append(out, fmt.Sprintf("taur[%d]", i))
		}
		return out
	case PoissonCount:
		return []string{"tauq"}
	case NegBinCount:
		return []string{"tauq", "r"}
	}
	return nil
}
