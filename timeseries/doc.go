// Package timeseries provides time series data structures and utilities.
//
// The central type is Series, an ordered sequence of float64 values with
// timestamps. Unlike a plain slice, a Series may contain missing entries,
// marked with Missing(). Missing entries are first-class: summary statistics
// skip them, and model fitting treats them as latent unknowns to be inferred
// from the posterior. Appending trailing missing entries with PadMissing is
// how forecast horizons are encoded.
//
// # Basic Usage
//
// Create a series and inspect it:
//
//	s := timeseries.New([]float64{7.4, 8.0, timeseries.Missing(), 11.5})
//	s.Len()          // 4
//	s.NumObserved()  // 3
//	s.Mean()         // mean of the observed entries
//
// Pad for a two-step forecast:
//
//	padded := s.PadMissing(2)
//
// # CSV Loading
//
// LoadCSV reads a series from a CSV file. Blank cells and NA-like tokens in
// the value column are parsed as missing entries:
//
//	opts := timeseries.DefaultCSVOptions()
//	opts.ValueColumn = "count"
//	s, err := timeseries.LoadCSV("data.csv", opts)
package timeseries
