package segy

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Trace sorting of a post-stack cube: which line number varies slowest.
const (
	SortingUnknown   = 0
	SortingCrossline = 1
	SortingInline    = 2
)

// Spec describes the structure of a file to create: its geometry, sample
// axis and encoding. It is the minimum needed to lay out an empty file that
// headers and traces are then written into.
type Spec struct {
	// Sorting is SortingInline or SortingCrossline.
	Sorting int

	// Format is the sample format code; FormatIBMFloat when zero.
	Format SampleFormat

	// Iline and Xline are the byte locations holding the inline and
	// crossline numbers; 189 and 193 when zero.
	Iline TraceField
	Xline TraceField

	// Samples is the vertical axis in milliseconds (or metres).
	Samples []float64

	// Ilines, Xlines and Offsets describe the survey grid.
	Ilines  []int
	Xlines  []int
	Offsets []int

	// Tracecount overrides the number of traces allocated. When zero it is
	// len(Ilines) * len(Xlines) * len(Offsets).
	Tracecount int

	// Endian is the byte order of the file; big endian when nil.
	Endian binary.ByteOrder
}

// withDefaults returns a copy of s with zero values replaced by defaults.
func (s Spec) withDefaults() Spec {
	if s.Format == 0 {
		s.Format = FormatIBMFloat
	}
	if s.Iline == 0 {
		s.Iline = Inline3D
	}
	if s.Xline == 0 {
		s.Xline = Crossline3D
	}
	if len(s.Offsets) == 0 {
		s.Offsets = []int{1}
	}
	if s.Endian == nil {
		s.Endian = binary.BigEndian
	}
	if s.Tracecount == 0 {
		s.Tracecount = len(s.Ilines) * len(s.Xlines) * len(s.Offsets)
	}
	return s
}

// Validate checks that the spec describes a file that can be created.
func (s Spec) Validate() error {
	s = s.withDefaults()
	if len(s.Samples) == 0 {
		return fmt.Errorf("%w: no samples", ErrInvalidSpec)
	}
	if len(s.Samples) > math.MaxInt16 {
		return fmt.Errorf("%w: %d samples exceeds %d", ErrInvalidSpec, len(s.Samples), math.MaxInt16)
	}
	if _, err := s.Format.Size(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSpec, err)
	}
	if !s.Iline.Valid() || !s.Xline.Valid() {
		return fmt.Errorf("%w: iline %d / xline %d are not header byte locations", ErrInvalidSpec, int(s.Iline), int(s.Xline))
	}
	if dt := s.interval(); dt <= 0 || dt > math.MaxInt16 {
		return fmt.Errorf("%w: sample interval of %d us does not fit the binary header", ErrInvalidSpec, dt)
	}
	if s.Tracecount <= 0 {
		return fmt.Errorf("%w: trace count must be positive, got %d", ErrInvalidSpec, s.Tracecount)
	}
	switch s.Sorting {
	case SortingUnknown, SortingCrossline, SortingInline:
	default:
		return fmt.Errorf("%w: sorting %d", ErrInvalidSpec, s.Sorting)
	}
	return nil
}

// interval returns the sample interval in microseconds.
func (s Spec) interval() int32 {
	if len(s.Samples) < 2 {
		return 4000
	}
	return int32(math.Round((s.Samples[1] - s.Samples[0]) * 1000))
}
