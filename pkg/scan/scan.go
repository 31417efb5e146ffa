// Package scan summarises and exports SEG-Y trace and binary headers.
package scan

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"

	"github.com/natefinch/atomic"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"segysak/pkg/segy"
)

// FieldStats describes the values of one trace header field across traces,
// in the manner of a dataframe describe().
type FieldStats struct {
	Field segy.TraceField
	Count int
	Mean  float64
	Std   float64
	Min   float64
	Q25   float64
	Q50   float64
	Q75   float64
	Max   float64
}

// Name returns the conventional name of the field.
func (s FieldStats) Name() string {
	return s.Field.String()
}

// Constant reports whether every trace holds the same value.
func (s FieldStats) Constant() bool {
	return s.Min == s.Max
}

// HeaderScan computes statistics for every standard trace header field over
// the first maxTraces traces of the file at path (all traces when maxTraces
// is zero or negative).
func HeaderScan(path string, maxTraces int) ([]FieldStats, error) {
	fields := segy.TraceFields()
	headers, err := HeaderScrape(path, fields, maxTraces)
	if err != nil {
		return nil, err
	}
	if len(headers) == 0 {
		return nil, nil
	}

	values := make([]float64, len(headers))
	out := make([]FieldStats, 0, len(fields))
	for _, field := range fields {
		for i, h := range headers {
			values[i] = float64(h[field])
		}
		out = append(out, describe(field, values))
	}
	return out, nil
}

func describe(field segy.TraceField, values []float64) FieldStats {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	s := FieldStats{
		Field: field,
		Count: len(sorted),
		Mean:  stat.Mean(sorted, nil),
		Min:   floats.Min(sorted),
		Max:   floats.Max(sorted),
		Q25:   stat.Quantile(0.25, stat.Empirical, sorted, nil),
		Q50:   stat.Quantile(0.50, stat.Empirical, sorted, nil),
		Q75:   stat.Quantile(0.75, stat.Empirical, sorted, nil),
	}
	if len(sorted) > 1 {
		s.Std = stat.StdDev(sorted, nil)
	}
	return s
}

// HeaderScrape reads the given fields from the first maxTraces trace headers
// (all traces when maxTraces is zero or negative).
func HeaderScrape(path string, fields []segy.TraceField, maxTraces int) ([]segy.Header, error) {
	f, err := segy.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	n := f.Tracecount()
	if maxTraces > 0 && maxTraces < n {
		n = maxTraces
	}
	out := make([]segy.Header, n)
	for i := 0; i < n; i++ {
		h, err := f.HeaderFields(i, fields...)
		if err != nil {
			return nil, err
		}
		out[i] = h
	}
	return out, nil
}

// BinScrape returns the binary header of the file at path keyed by field name.
func BinScrape(path string) (map[string]int32, error) {
	f, err := segy.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bin, err := f.Bin()
	if err != nil {
		return nil, err
	}
	out := make(map[string]int32, len(bin))
	for field, v := range bin {
		out[field.String()] = v
	}
	return out, nil
}

// WriteCSV writes headers as CSV with one column per field, replacing path
// atomically.
func WriteCSV(path string, headers []segy.Header, fields []segy.TraceField) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	row := make([]string, len(fields))
	for i, f := range fields {
		row[i] = f.String()
	}
	if err := w.Write(row); err != nil {
		return err
	}
	for _, h := range headers {
		for i, f := range fields {
			row[i] = strconv.FormatInt(int64(h[f]), 10)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
