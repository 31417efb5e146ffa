// Package synth builds small synthetic SEG-Y volumes with regular or skewed
// inline/crossline geometry. The files are all-zero cubes with valid
// positional headers and are mainly used as test data.
package synth

import (
	"fmt"
	"math"

	"segysak/internal/log"
	"segysak/pkg/segy"
)

// SkewedTextLine is the textual header line that marks a skewed volume.
const SkewedTextLine = 7

// SkewedText is written to SkewedTextLine of a skewed volume.
const SkewedText = "Is Skewed Test"

// CoordinateScale multiplies the inline and crossline numbers to give the
// CDP-X and CDP-Y coordinates.
const CoordinateScale = 1000

// Mesh returns the inline and crossline numbers of an n by n volume as two
// n by n grids. Row i, column j holds inline j+1 and crossline n+1+i. When
// skew is set every inline in row i is shifted by i, which shears the grid
// so that the inlines span 1..2n-1.
func Mesh(n int, skew bool) (il, xl [][]int32) {
	il = make([][]int32, n)
	xl = make([][]int32, n)
	for i := 0; i < n; i++ {
		il[i] = make([]int32, n)
		xl[i] = make([]int32, n)
		for j := 0; j < n; j++ {
			il[i][j] = int32(j + 1)
			if skew {
				il[i][j] += int32(i)
			}
			xl[i][j] = int32(n + 1 + i)
		}
	}
	return il, xl
}

// Spec returns the file spec of an n by n by n volume. The inline range is
// 2n-1 long when skewed, but only n*n traces are allocated.
func Spec(n int, skew bool) segy.Spec {
	nIlines := n
	if skew {
		nIlines = n + n - 1
	}
	return segy.Spec{
		Sorting:    segy.SortingInline,
		Format:     segy.FormatIBMFloat,
		Iline:      segy.Inline3D,
		Xline:      segy.Crossline3D,
		Samples:    arange(n),
		Ilines:     intRange(nIlines),
		Xlines:     intRange(n),
		Tracecount: n * n,
	}
}

// CreateTempSEGY writes an n by n by n all-zero SEG-Y volume to path.
// Errors from the writer are returned unchanged apart from context; nothing
// is retried. The textual header is the default one, with line 7 set to
// "Is Skewed Test" for a skewed volume.
func CreateTempSEGY(n int, path string, skew bool) error {
	if n <= 0 {
		return fmt.Errorf("%w: volume size must be positive, got %d", segy.ErrInvalidSpec, n)
	}

	if err := writeVolume(n, path, skew); err != nil {
		return err
	}

	text := segy.CreateDefaultTexthead(nil)
	if skew {
		text = segy.CreateDefaultTexthead(map[int]string{SkewedTextLine: SkewedText})
	}
	if err := segy.PutTexthead(path, text); err != nil {
		return fmt.Errorf("write textual header: %w", err)
	}

	log.WithField("path", path).WithField("skew", skew).Debugf("created %d^3 synthetic volume", n)
	return nil
}

func writeVolume(n int, path string, skew bool) (err error) {
	f, err := segy.Create(path, Spec(n, skew))
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	il, xl := Mesh(n, skew)
	trace := make([]float32, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			k := i*n + j
			h := segy.Header{
				segy.TraceOffset:      1,
				segy.Inline3D:         il[i][j],
				segy.Crossline3D:      xl[i][j],
				segy.CDPX:             il[i][j] * CoordinateScale,
				segy.CDPY:             xl[i][j] * CoordinateScale,
				segy.TraceSampleCount: int32(n),
			}
			if err := f.SetHeader(k, h); err != nil {
				return err
			}
			if err := f.SetTrace(k, trace); err != nil {
				return err
			}
		}
	}

	nn := binTraceCount(n)
	return f.UpdateBin(map[segy.BinField]int32{
		segy.SortingCode:       segy.SortingInline,
		segy.Interval:          1000,
		segy.MeasurementSystem: 1,
		segy.JobID:             1,
		segy.LineNumber:        1,
		segy.ReelNumber:        1,
		segy.Traces:            nn,
		segy.AuxTraces:         nn,
		segy.EnsembleFold:      1,
	})
}

// binTraceCount is the traces per ensemble written to the binary header.
// The field is a 2 byte word, so counts it cannot hold are written as 0
// (unknown), as segy.Create does for the trace count.
func binTraceCount(n int) int32 {
	if n*n > math.MaxInt16 {
		return 0
	}
	return int32(n * n)
}

func arange(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

func intRange(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
