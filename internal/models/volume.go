package models

// Volume is a dense seismic cube loaded from a SEG-Y file.
type Volume struct {
	// Data holds the samples as a 1D array ordered (inline, crossline,
	// sample), with sample varying fastest.
	Data []float32

	// Ilines, Xlines are the line numbers along the first two axes.
	Ilines []int32
	Xlines []int32

	// Samples is the vertical axis in milliseconds (or metres).
	Samples []float64

	// Live marks the (inline, crossline) positions that hold a trace.
	// Positions outside an irregular footprint are zero filled and not live.
	Live []bool
}

// NewVolume allocates a zero filled volume for the given axes.
func NewVolume(ilines, xlines []int32, samples []float64) *Volume {
	return &Volume{
		Data:    make([]float32, len(ilines)*len(xlines)*len(samples)),
		Ilines:  ilines,
		Xlines:  xlines,
		Samples: samples,
		Live:    make([]bool, len(ilines)*len(xlines)),
	}
}

// Shape returns the number of inlines, crosslines and samples.
func (v *Volume) Shape() (ni, nx, ns int) {
	return len(v.Ilines), len(v.Xlines), len(v.Samples)
}

// Index returns the position of sample k at grid position (i, j) in Data.
func (v *Volume) Index(i, j, k int) int {
	_, nx, ns := v.Shape()
	return (i*nx+j)*ns + k
}

// Trace returns the samples at grid position (i, j). The slice aliases Data.
func (v *Volume) Trace(i, j int) []float32 {
	_, _, ns := v.Shape()
	start := v.Index(i, j, 0)
	return v.Data[start : start+ns]
}

// LiveCount returns the number of grid positions holding a trace.
func (v *Volume) LiveCount() int {
	n := 0
	for _, live := range v.Live {
		if live {
			n++
		}
	}
	return n
}
