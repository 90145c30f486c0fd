package model

import (
	"fmt"
	"strings"
)

// Render produces a BUGS-style textual form of the specification. The text
// is deterministic for a given (shape, N, M) and is meant for inspection or
// pass-through to an external sampler; the in-memory Spec remains the
// authoritative form.
func (s *Spec) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s (N=%d", s.Shape, s.N)
	if s.M > 1 {
		fmt.Fprintf(&b, ", m=%d", s.M)
	}
	b.WriteString(")\nmodel {\n")

	for _, p := range s.Priors {
		fmt.Fprintf(&b, "  %s ~ %s(%g, %g)\n", p.Name, p.Family, p.A, p.B)
	}

	switch s.Shape {
	case InterceptOnly:
		b.WriteString("  for (t in 1:N) { Y[t] ~ dnorm(mu, tau) }\n")
		b.WriteString("  sigma2 <- 1 / tau\n")
	case Regression:
		b.WriteString("  for (t in 1:N) { Y[t] ~ dnorm(beta0 + beta1*c[t], tau) }\n")
		b.WriteString("  sigma2 <- 1 / tau\n")
	case RandomWalk:
		b.WriteString("  x[1] ~ dnorm(y0, 1.0E-6)\n")
		b.WriteString("  for (t in 2:N) { x[t] ~ dnorm(x[t-1], tauq) }\n")
		b.WriteString("  for (t in 1:N) { Y[t] ~ dnorm(x[t], taur) }\n")
		b.WriteString("  sigma2q <- 1 / tauq\n  sigma2r <- 1 / taur\n")
	case AR1:
		b.WriteString("  Y[1] ~ dnorm(mu, tau*(1 - b*b))\n")
		b.WriteString("  for (t in 2:N) { Y[t] ~ dnorm(mu + b*(Y[t-1] - mu), tau) }\n")
		b.WriteString("  sigma2 <- 1 / tau\n")
		b.WriteString("  sigma2init <- sigma2 / (1 - b*b)\n")
	case RegressionAR1:
		b.WriteString("  e[1] ~ dnorm(0, tau*(1 - b*b))\n")
		b.WriteString("  Y[1] <- beta0 + beta1*c[1] + e[1]\n")
		b.WriteString("  for (t in 2:N) {\n")
		b.WriteString("    Y[t] ~ dnorm(beta0 + beta1*c[t] + b*e[t-1], tau)\n")
		b.WriteString("    e[t] <- Y[t] - beta0 - beta1*c[t]\n")
		b.WriteString("  }\n")
		b.WriteString("  sigma2 <- 1 / tau\n")
	case StateSpace:
		b.WriteString("  x[1] ~ dnorm(y0, 1.0E-6)\n")
		b.WriteString("  for (t in 2:N) { x[t] ~ dnorm(b*x[t-1], tauq) }\n")
		b.WriteString("  for (t in 1:N) { Y[t] ~ dnorm(x[t], taur) }\n")
		b.WriteString("  sigma2q <- 1 / tauq\n  sigma2r <- 1 / taur\n")
	case MultiShared:
		b.WriteString("  a[1] <- 0\n")
		b.WriteString("  x[1] ~ dnorm(y0, 1.0E-6)\n")
		b.WriteString("  for (t in 2:N) { x[t] ~ dnorm(x[t-1], tauq) }\n")
		b.WriteString("  for (i in 1:m) { for (t in 1:N) { Y[i,t] ~ dnorm(a[i] + x[t], taur[i]) } }\n")
		b.WriteString("  sigma2q <- 1 / tauq\n")
		b.WriteString("  for (i in 1:m) { sigma2r[i] <- 1 / taur[i] }\n")
	case MultiIndependent:
		b.WriteString("  for (i in 1:m) {\n")
		b.WriteString("    x[i,1] ~ dnorm(y0[i], 1.0E-6)\n")
		b.WriteString("    for (t in 2:N) { x[i,t] ~ dnorm(x[i,t-1], tauq[i]) }\n")
		b.WriteString("    for (t in 1:N) { Y[i,t] ~ dnorm(x[i,t], taur[i]) }\n")
		b.WriteString("    sigma2q[i] <- 1 / tauq[i]\n")
		b.WriteString("    sigma2r[i] <- 1 / taur[i]\n")
		b.WriteString("  }\n")
	case PoissonCount:
		b.WriteString("  x[1] ~ dnorm(log(y0 + 1), 1.0E-2)\n")
		b.WriteString("  for (t in 2:N) { x[t] ~ dnorm(x[t-1], tauq) }\n")
		b.WriteString("  for (t in 1:N) { Y[t] ~ dpois(exp(x[t])) }\n")
		b.WriteString("  sigma2q <- 1 / tauq\n")
	case NegBinCount:
		b.WriteString("  x[1] ~ dnorm(log(y0 + 1), 1.0E-2)\n")
		b.WriteString("  for (t in 2:N) { x[t] ~ dnorm(x[t-1], tauq) }\n")
		b.WriteString("  for (t in 1:N) { Y[t] ~ dnegbin(r / (r + exp(x[t])), r) }\n")
		b.WriteString("  sigma2q <- 1 / tauq\n")
	}

	b.WriteString("}\n")
	return b.String()
}
