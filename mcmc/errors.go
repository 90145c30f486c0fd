package mcmc

import "fmt"

// ConfigurationError reports an invalid sampling configuration or a mismatch
// between a data dictionary and a model specification: burn-in not below the
// iteration count, a non-positive thinning interval, a monitored name the
// specification does not produce, or disagreeing dimensions. Configuration
// errors are raised before any sampling starts.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "mcmc: configuration error: " + e.Reason
}

func configErrf(format string, args ...any) error {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// NumericalError reports a sampler failure surfaced from the backend, such
// as a likelihood evaluating to an invalid value. Numerical errors are never
// retried; the caller decides whether to adjust and re-invoke.
type NumericalError struct {
	// Quantity names the offending quantity when known, "" otherwise.
	Quantity string
	// Step is the 1-based time step when known, 0 otherwise.
	Step   int
	Reason string
}

func (e *NumericalError) Error() string {
	msg := "mcmc: numerical error"
	if e.Quantity != "" {
		msg += " in " + e.Quantity
	}
	if e.Step > 0 {
		msg += fmt.Sprintf(" at step %d", e.Step)
	}
	return msg + ": " + e.Reason
}

// DataError reports malformed input data: missing values in a covariate
// series, or a forecast request against a response with no missing
// positions.
type DataError struct {
	Reason string
}

func (e *DataError) Error() string {
	return "mcmc: data error: " + e.Reason
}

func dataErrf(format string, args ...any) error {
	return &DataError{Reason: fmt.Sprintf(format, args...)}
}
