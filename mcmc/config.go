package mcmc

import "go.uber.org/zap"

// Config holds the chain and iteration configuration for one fit.
type Config struct {
	// Chains is the number of independent chains (>= 1, 3 or more
	// recommended for cross-chain convergence diagnostics).
	Chains int
	// Iterations is the total iteration count per chain.
	Iterations int
	// BurnIn is the number of discarded initial iterations per chain. Must
	// be smaller than Iterations.
	BurnIn int
	// Thin keeps every Thin-th post-burn-in draw (>= 1).
	Thin int
	// Seed seeds the backend's chain generators. Chains derive distinct
	// streams from it, so a fixed seed reproduces a fit exactly.
	Seed uint64
	// ComputeDIC requests the deviance information criterion.
	ComputeDIC bool
	// Logger receives progress output from the driver and backend. Nil
	// disables logging.
	Logger *zap.Logger
}

// DefaultConfig returns the recommended sampling configuration.
func DefaultConfig() Config {
	return Config{
		Chains:     3,
		Iterations: 10000,
		BurnIn:     5000,
		Thin:       1,
		Seed:       1,
	}
}

// Kept returns the retained draw count per chain:
// floor((Iterations - BurnIn) / Thin).
func (c Config) Kept() int {
	if c.Thin < 1 || c.BurnIn >= c.Iterations {
		return 0
	}
	return (c.Iterations - c.BurnIn) / c.Thin
}

func (c Config) validate() error {
	if c.Chains < 1 {
		return configErrf("chain count %d, need at least 1", c.Chains)
	}
	if c.Iterations < 1 {
		return configErrf("iteration count %d, need at least 1", c.Iterations)
	}
	if c.BurnIn < 0 {
		return configErrf("negative burn-in %d", c.BurnIn)
	}
	if c.BurnIn >= c.Iterations {
		return configErrf("burn-in %d is not below iteration count %d", c.BurnIn, c.Iterations)
	}
	if c.Thin < 1 {
		return configErrf("thinning interval %d, need at least 1", c.Thin)
	}
	return nil
}

// log returns the configured logger or a no-op one.
func (c Config) log() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
