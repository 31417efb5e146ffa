package segy

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallSpec() Spec {
	return Spec{
		Sorting: SortingInline,
		Format:  FormatIBMFloat,
		Samples: []float64{0, 4, 8, 12, 16},
		Ilines:  []int{10, 11, 12},
		Xlines:  []int{20, 21},
	}
}

func TestCreateAndReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "small.segy")

	f, err := Create(path, smallSpec())
	require.NoError(t, err, "Create should accept a valid spec")
	require.Equal(t, 6, f.Tracecount())

	i := 0
	for _, il := range []int32{10, 11, 12} {
		for _, xl := range []int32{20, 21} {
			require.NoError(t, f.SetHeader(i, Header{Inline3D: il, Crossline3D: xl, TraceOffset: 1}))
			require.NoError(t, f.SetTrace(i, []float32{float32(i), 1, 2, 3, -4}))
			i++
		}
	}
	require.NoError(t, f.UpdateBin(map[BinField]int32{JobID: 7, EnsembleFold: 1}))
	require.NoError(t, f.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(DataOffset+6*(TraceHeaderSize+5*4)), info.Size())

	g, err := Open(path)
	require.NoError(t, err)
	defer g.Close()

	assert.Equal(t, 6, g.Tracecount())
	assert.Equal(t, FormatIBMFloat, g.Format())
	assert.Equal(t, SortingInline, g.Sorting())
	if diff := cmp.Diff([]float64{0, 4, 8, 12, 16}, g.Samples()); diff != "" {
		t.Errorf("samples mismatch (-want +got):\n%s", diff)
	}

	h, err := g.Header(3)
	require.NoError(t, err)
	assert.Equal(t, int32(11), h[Inline3D])
	assert.Equal(t, int32(21), h[Crossline3D])
	assert.Equal(t, int32(1), h[TraceOffset])
	assert.Equal(t, int32(0), h[CDPX])

	tr, err := g.Trace(3)
	require.NoError(t, err)
	assert.Equal(t, []float32{3, 1, 2, 3, -4}, tr)

	bin, err := g.Bin()
	require.NoError(t, err)
	assert.Equal(t, int32(7), bin[JobID])
	assert.Equal(t, int32(1), bin[EnsembleFold])
	assert.Equal(t, int32(4000), bin[Interval])
	assert.Equal(t, int32(5), bin[Samples])
	assert.Equal(t, int32(0x0100), bin[SEGYRevision])
}

func TestSetHeaderMerges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "merge.segy")
	f, err := Create(path, smallSpec())
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, f.SetHeader(0, Header{Inline3D: 5, CDPX: 1000}))
	require.NoError(t, f.SetHeader(0, Header{CDPY: 2000}))

	h, err := f.HeaderFields(0, Inline3D, CDPX, CDPY)
	require.NoError(t, err)
	assert.Equal(t, Header{Inline3D: 5, CDPX: 1000, CDPY: 2000}, h)
}

func TestTwoByteFieldsAreSigned(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signed.segy")
	f, err := Create(path, smallSpec())
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, f.SetHeader(1, Header{SourceGroupScalar: -100}))
	h, err := f.Header(1)
	require.NoError(t, err)
	assert.Equal(t, int32(-100), h[SourceGroupScalar])
}

func TestTwoByteFieldRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "range.segy")
	f, err := Create(path, smallSpec())
	require.NoError(t, err)
	defer f.Close()

	assert.ErrorIs(t, f.UpdateBin(map[BinField]int32{Traces: 40000}), ErrFieldRange)
	assert.ErrorIs(t, f.SetHeader(0, Header{SourceGroupScalar: -40000, CDPX: 5}), ErrFieldRange)

	h, err := f.HeaderFields(0, CDPX)
	require.NoError(t, err)
	assert.Equal(t, int32(0), h[CDPX], "a rejected header is not written")

	require.NoError(t, f.UpdateBin(map[BinField]int32{Traces: math.MaxInt16, AuxTraces: math.MinInt16}))
	bin, err := f.Bin()
	require.NoError(t, err)
	assert.Equal(t, int32(math.MaxInt16), bin[Traces])
	assert.Equal(t, int32(math.MinInt16), bin[AuxTraces])
}

func TestOpenRejectsExtendedHeadersPastEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ext.segy")
	f, err := Create(path, smallSpec())
	require.NoError(t, err)
	require.NoError(t, f.UpdateBin(map[BinField]int32{ExtendedHeaders: 13}))
	require.NoError(t, f.Close())

	g, err := Open(path)
	if g != nil {
		t.Errorf("expected no file, got %d traces", g.Tracecount())
		g.Close()
	}
	assert.ErrorIs(t, err, ErrNotSEGY)
}

func TestLittleEndianFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "le.segy")
	spec := smallSpec()
	spec.Endian = binary.LittleEndian
	spec.Format = FormatIEEEFloat

	f, err := Create(path, spec)
	require.NoError(t, err)
	require.NoError(t, f.SetTrace(0, []float32{0.1, 0.2, 0.3, 0.4, 0.5}))
	require.NoError(t, f.Close())

	_, err = Open(path)
	assert.ErrorIs(t, err, ErrNotSEGY, "big endian decode of a little endian file should fail")

	g, err := Open(path, WithEndian(binary.LittleEndian))
	require.NoError(t, err)
	defer g.Close()
	tr, err := g.Trace(0)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3, 0.4, 0.5}, tr)
}

func TestFileErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "errors.segy")

	_, err := Create(path, Spec{Samples: nil, Ilines: []int{1}, Xlines: []int{1}})
	assert.ErrorIs(t, err, ErrInvalidSpec)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "nothing should be created for an invalid spec")

	_, err = Create(path, Spec{Samples: []float64{0}, Format: 4, Ilines: []int{1}, Xlines: []int{1}})
	assert.ErrorIs(t, err, ErrInvalidSpec)

	_, err = Create(path, Spec{Samples: []float64{0, 40}, Ilines: []int{1}, Xlines: []int{1}})
	assert.ErrorIs(t, err, ErrInvalidSpec, "40 ms interval does not fit the binary header")

	f, err := Create(path, smallSpec())
	require.NoError(t, err)
	_, err = f.Header(6)
	assert.ErrorIs(t, err, ErrTraceIndex)
	assert.Error(t, f.SetTrace(0, []float32{1}), "wrong trace length")
	assert.ErrorIs(t, f.SetHeader(0, Header{TraceField(2): 1}), ErrField)
	require.NoError(t, f.Close())
	require.NoError(t, f.Close(), "second close is a no-op")
	_, err = f.Trace(0)
	assert.ErrorIs(t, err, ErrClosed)

	ro, err := Open(path)
	require.NoError(t, err)
	defer ro.Close()
	assert.ErrorIs(t, ro.SetTrace(0, make([]float32, 5)), ErrReadOnly)

	short := filepath.Join(dir, "short.segy")
	require.NoError(t, os.WriteFile(short, []byte("not seismic"), 0644))
	_, err = Open(short)
	assert.ErrorIs(t, err, ErrNotSEGY)
}

func TestFieldTables(t *testing.T) {
	fields := TraceFields()
	assert.Equal(t, TraceSequenceLine, fields[0])
	assert.Equal(t, UnassignedInt2, fields[len(fields)-1])

	// Fields must tile the 240 byte header without overlapping.
	end := 1
	for _, f := range fields {
		assert.Equal(t, end, int(f), "field %s starts at %d", f, int(f))
		end = int(f) + f.Width()
	}
	assert.Equal(t, TraceHeaderSize+1, end)

	f, ok := TraceFieldByName("CDP_X")
	assert.True(t, ok)
	assert.Equal(t, CDPX, f)
	assert.Equal(t, "TraceField(2)", TraceField(2).String())
	assert.Equal(t, "EnsembleFold", EnsembleFold.String())
}
