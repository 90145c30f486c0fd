package mcmc

import (
	"math"

	"github.com/castorsoft/gobsts/model"
	"github.com/castorsoft/gobsts/timeseries"
)

// DataDict is the data dictionary assembled for one fit: the response
// series, an optional covariate series, and the dimension scalars the
// specification declares. Missing response entries (NaN) are inferred as
// latent unknowns; trailing missing entries encode a forecast horizon.
type DataDict struct {
	// N is the series length, forecast positions included.
	N int
	// M is the number of response series.
	M int
	// Y holds the response values, one row per series, NaN for missing.
	Y [][]float64
	// C is the covariate series aligned 1:1 with Y, nil when unused.
	// Covariates may not contain missing values.
	C []float64
	// Y0 holds per-series prior-centering values, by convention the first
	// observed response of each series.
	Y0 []float64
}

// NewData assembles the data dictionary for a univariate response.
func NewData(y *timeseries.Series) *DataDict {
	row := make([]float64, y.Len())
	copy(row, y.Values)
	return &DataDict{
		N:  y.Len(),
		M:  1,
		Y:  [][]float64{row},
		Y0: []float64{y.FirstObserved()},
	}
}

// NewMultiData assembles the data dictionary for multiple response series of
// equal length.
func NewMultiData(series []*timeseries.Series) (*DataDict, error) {
	if len(series) == 0 {
		return nil, dataErrf("no response series")
	}
	n := series[0].Len()
	d := &DataDict{N: n, M: len(series)}
	for i, s := range series {
		if s.Len() != n {
			return nil, dataErrf("series %d has length %d, series 1 has %d", i+1, s.Len(), n)
		}
		row := make([]float64, n)
		copy(row, s.Values)
		d.Y = append(d.Y, row)
		d.Y0 = append(d.Y0, s.FirstObserved())
	}
	return d, nil
}

// WithCovariate attaches a covariate series aligned with the response.
func (d *DataDict) WithCovariate(c *timeseries.Series) (*DataDict, error) {
	if c.Len() != d.N {
		return nil, dataErrf("covariate length %d does not match response length %d", c.Len(), d.N)
	}
	if c.HasMissing() {
		return nil, dataErrf("covariate series contains missing values")
	}
	row := make([]float64, c.Len())
	copy(row, c.Values)
	d.C = row
	return d, nil
}

// NumMissing returns the number of missing response entries across all
// series.
func (d *DataDict) NumMissing() int {
	n := 0
	for _, row := range d.Y {
		for _, v := range row {
			if math.IsNaN(v) {
				n++
			}
		}
	}
	return n
}

// Validate checks the dictionary against a specification's declared
// dimensions and covariate requirements.
func (d *DataDict) Validate(spec *model.Spec) error {
	if len(d.Y) != d.M {
		return dataErrf("dictionary declares %d series but holds %d", d.M, len(d.Y))
	}
	for i, row := range d.Y {
		if len(row) != d.N {
			return dataErrf("series %d has length %d, dictionary declares %d", i+1, len(row), d.N)
		}
	}
	if d.N != spec.N {
		return configErrf("data length %d does not match specification N=%d", d.N, spec.N)
	}
	if d.M != spec.M {
		return configErrf("data has %d series, specification declares %d", d.M, spec.M)
	}
	if spec.NeedsCovariate() {
		if d.C == nil {
			return configErrf("%s requires a covariate series", spec.Shape)
		}
		if len(d.C) != d.N {
			return configErrf("covariate length %d does not match N=%d", len(d.C), d.N)
		}
		for _, v := range d.C {
			if math.IsNaN(v) {
				return dataErrf("covariate series contains missing values")
			}
		}
	} else if d.C != nil {
		return configErrf("%s does not use a covariate series", spec.Shape)
	}
	for i, v := range d.Y0 {
		if math.IsNaN(v) {
			return dataErrf("series %d has no observed values", i+1)
		}
	}
	return nil
}
