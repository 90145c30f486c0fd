package timeseries

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	DateColumn  string // Column name for dates (optional)
	ValueColumn string // Column name for values (default: "y")
	DateFormat  string // Date format (default: "2006-01-02")
	HasHeader   bool   // Whether CSV has a header row (default: true)
	Delimiter   rune   // Field delimiter (default: ',')
	SkipRows    int    // Number of rows to skip at start
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		ValueColumn: "y",
		DateFormat:  "2006-01-02",
		HasHeader:   true,
		Delimiter:   ',',
	}
}

// missingTokens are cell contents parsed as a missing observation. Empty
// cells are missing as well.
var missingTokens = map[string]bool{
	"na": true, "nan": true, "null": true, ".": true,
}

// LoadCSV loads a time series from a CSV file. Empty and NA-like cells in
// the value column become missing entries, so a file may carry forecast
// placeholders directly.
func LoadCSV(filename string, opts *CSVOptions) (*Series, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadCSVFromReader(file, opts)
}

// LoadCSVFromReader loads a time series from an io.Reader.
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) (*Series, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if opts.SkipRows > 0 {
		if opts.SkipRows >= len(records) {
			return nil, errors.New("skip rows exceeds file length")
		}
		records = records[opts.SkipRows:]
	}
	if len(records) == 0 {
		return nil, errors.New("empty CSV input")
	}

	valueIdx, dateIdx := 0, -1
	if opts.HasHeader {
		header := records[0]
		records = records[1:]
		valueIdx, dateIdx = -1, -1
		for i, col := range header {
			name := strings.TrimSpace(col)
			if name == opts.ValueColumn {
				valueIdx = i
			}
			if opts.DateColumn != "" && name == opts.DateColumn {
				dateIdx = i
			}
		}
		if valueIdx < 0 {
			return nil, errors.New("value column not found: " + opts.ValueColumn)
		}
		if opts.DateColumn != "" && dateIdx < 0 {
			return nil, errors.New("date column not found: " + opts.DateColumn)
		}
	}

	values := make([]float64, 0, len(records))
	timestamps := make([]time.Time, 0, len(records))
	for _, rec := range records {
		if valueIdx >= len(rec) {
			return nil, errors.New("row shorter than value column index")
		}
		cell := strings.TrimSpace(rec[valueIdx])
		if cell == "" || missingTokens[strings.ToLower(cell)] {
			values = append(values, Missing())
		} else {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}

		if dateIdx >= 0 && dateIdx < len(rec) {
			ts, err := time.Parse(opts.DateFormat, strings.TrimSpace(rec[dateIdx]))
			if err != nil {
				return nil, err
			}
			timestamps = append(timestamps, ts)
		}
	}

	if len(timestamps) == len(values) && len(timestamps) > 0 {
		return NewWithTimestamps(timestamps, values)
	}
	return New(values), nil
}
