// Package segy provides a pure Go reader and writer for SEG-Y revision 1 files.
package segy

import "errors"

// Common errors
var (
	ErrNotSEGY     = errors.New("not a SEG-Y file")
	ErrClosed      = errors.New("file is closed")
	ErrReadOnly    = errors.New("file is opened read-only")
	ErrTraceIndex  = errors.New("trace index out of range")
	ErrFormat      = errors.New("unsupported sample format")
	ErrField       = errors.New("unknown header field")
	ErrFieldRange  = errors.New("header value out of range")
	ErrInvalidSpec = errors.New("invalid file spec")
	ErrTexthead    = errors.New("invalid textual header")
)

// Layout sizes of a SEG-Y file.
const (
	TextHeaderSize   = 3200
	BinaryHeaderSize = 400
	TraceHeaderSize  = 240

	// DataOffset is where the first trace header starts when no extended
	// textual headers are present.
	DataOffset = TextHeaderSize + BinaryHeaderSize
)
