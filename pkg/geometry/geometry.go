// Package geometry infers the inline/crossline layout of a SEG-Y file and
// relates grid positions to world coordinates.
package geometry

import (
	"errors"
	"fmt"
	"sort"

	"segysak/pkg/segy"
)

// ErrNoTraces is returned when a file has no traces to build a geometry from.
var ErrNoTraces = errors.New("file has no traces")

// Key is a position on the inline/crossline grid.
type Key struct {
	Iline int32
	Xline int32
}

// Geometry is the inline/crossline layout of a 3D survey.
type Geometry struct {
	// Ilines and Xlines are the sorted unique line numbers.
	Ilines []int32
	Xlines []int32

	// Traces is the number of traces read.
	Traces int

	// Missing is the number of grid positions without a trace.
	Missing int

	// Duplicates counts traces sharing a grid position with an earlier
	// trace. Only the first trace at a position is indexed.
	Duplicates int

	index map[Key]int

	// per trace grid and world coordinates, in trace order
	il, xl []float64
	x, y   []float64
}

// Infer reads the trace headers of f and builds its geometry. Zero fields of
// locs fall back to the byte locations f was opened with and to the
// standard CDP-X/CDP-Y locations. Coordinates are scaled by the
// SourceGroupScalar of each trace.
func Infer(f *segy.File, locs segy.ByteLocs) (*Geometry, error) {
	if f.Tracecount() == 0 {
		return nil, ErrNoTraces
	}
	if locs.Iline == 0 {
		locs.Iline = f.Iline()
	}
	if locs.Xline == 0 {
		locs.Xline = f.Xline()
	}
	if locs.CDPX == 0 {
		locs.CDPX = segy.CDPX
	}
	if locs.CDPY == 0 {
		locs.CDPY = segy.CDPY
	}

	n := f.Tracecount()
	g := &Geometry{
		Traces: n,
		index:  make(map[Key]int, n),
		il:     make([]float64, n),
		xl:     make([]float64, n),
		x:      make([]float64, n),
		y:      make([]float64, n),
	}

	ilSet := map[int32]struct{}{}
	xlSet := map[int32]struct{}{}
	for i := 0; i < n; i++ {
		h, err := f.HeaderFields(i, locs.Iline, locs.Xline, locs.CDPX, locs.CDPY, segy.SourceGroupScalar)
		if err != nil {
			return nil, fmt.Errorf("read geometry: %w", err)
		}
		k := Key{Iline: h[locs.Iline], Xline: h[locs.Xline]}
		if _, dup := g.index[k]; dup {
			g.Duplicates++
		} else {
			g.index[k] = i
		}
		ilSet[k.Iline] = struct{}{}
		xlSet[k.Xline] = struct{}{}

		scalar := h[segy.SourceGroupScalar]
		g.il[i] = float64(k.Iline)
		g.xl[i] = float64(k.Xline)
		g.x[i] = ApplyScalar(h[locs.CDPX], scalar)
		g.y[i] = ApplyScalar(h[locs.CDPY], scalar)
	}

	g.Ilines = sortedKeys(ilSet)
	g.Xlines = sortedKeys(xlSet)
	g.Missing = len(g.Ilines)*len(g.Xlines) - len(g.index)
	return g, nil
}

// TraceIndex returns the index of the trace at (il, xl).
func (g *Geometry) TraceIndex(il, xl int32) (int, bool) {
	i, ok := g.index[Key{Iline: il, Xline: xl}]
	return i, ok
}

// Regular reports whether every grid position holds exactly one trace.
func (g *Geometry) Regular() bool {
	return g.Missing == 0 && g.Duplicates == 0
}

// Affine fits the grid-to-world transform from the trace coordinates.
func (g *Geometry) Affine() (Affine, error) {
	return FitAffine(g.il, g.xl, g.x, g.y)
}

// ApplyScalar applies a SEG-Y coordinate scalar: positive values multiply,
// negative values divide and zero leaves the value unchanged.
func ApplyScalar(v, scalar int32) float64 {
	switch {
	case scalar > 0:
		return float64(v) * float64(scalar)
	case scalar < 0:
		return float64(v) / float64(-scalar)
	}
	return float64(v)
}

func sortedKeys(set map[int32]struct{}) []int32 {
	out := make([]int32, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
