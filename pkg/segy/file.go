package segy

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

// File is an open SEG-Y file.
//
// Header and trace reads use ReadAt and may be issued from several
// goroutines at once. Writes are not synchronised; a File has a single
// writer.
type File struct {
	path       string
	file       *os.File
	order      binary.ByteOrder
	format     SampleFormat
	samples    []float64
	sampleSize int
	traceSize  int64
	dataOffset int64
	tracecount int
	iline      TraceField
	xline      TraceField
	sorting    int
	writable   bool
	closed     bool
}

// Option configures how a file is opened.
type Option func(*openOptions)

type openOptions struct {
	iline    TraceField
	xline    TraceField
	order    binary.ByteOrder
	writable bool
}

// WithIline sets the byte location of the inline number.
func WithIline(f TraceField) Option {
	return func(o *openOptions) { o.iline = f }
}

// WithXline sets the byte location of the crossline number.
func WithXline(f TraceField) Option {
	return func(o *openOptions) { o.xline = f }
}

// WithEndian sets the byte order used to decode the file.
func WithEndian(order binary.ByteOrder) Option {
	return func(o *openOptions) { o.order = order }
}

// Writable opens the file for reading and writing.
func Writable() Option {
	return func(o *openOptions) { o.writable = true }
}

// Create creates a new SEG-Y file laid out as described by spec. Every trace
// is allocated and zero filled; headers and samples are then written with
// SetHeader and SetTrace. The returned file must be closed.
func Create(path string, spec Spec) (*File, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	spec = spec.withDefaults()

	sampleSize, _ := spec.Format.Size()
	traceSize := int64(TraceHeaderSize + len(spec.Samples)*sampleSize)

	osFile, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	f := &File{
		path:       path,
		file:       osFile,
		order:      spec.Endian,
		format:     spec.Format,
		samples:    append([]float64(nil), spec.Samples...),
		sampleSize: sampleSize,
		traceSize:  traceSize,
		dataOffset: DataOffset,
		tracecount: spec.Tracecount,
		iline:      spec.Iline,
		xline:      spec.Xline,
		sorting:    spec.Sorting,
		writable:   true,
	}

	if err := f.initialise(spec); err != nil {
		osFile.Close()
		os.Remove(path)
		return nil, err
	}
	return f, nil
}

// initialise sizes a freshly created file and writes its headers.
func (f *File) initialise(spec Spec) error {
	if err := f.file.Truncate(f.dataOffset + int64(f.tracecount)*f.traceSize); err != nil {
		return fmt.Errorf("allocate traces: %w", err)
	}

	if _, err := f.file.WriteAt(encodeText(""), 0); err != nil {
		return fmt.Errorf("write textual header: %w", err)
	}

	interval := spec.interval()
	ns := int32(len(spec.Samples))
	traces := int32(f.tracecount)
	if traces > math.MaxInt16 {
		traces = 0
	}
	return f.UpdateBin(map[BinField]int32{
		Interval:         interval,
		IntervalOriginal: interval,
		Samples:          ns,
		SamplesOriginal:  ns,
		Format:           int32(spec.Format),
		SortingCode:      int32(spec.Sorting),
		Traces:           traces,
		SEGYRevision:     0x0100,
		TraceFlag:        1,
	})
}

// Open opens an existing SEG-Y file. The sample count, format and trace count
// are taken from the binary header and the file size.
func Open(path string, opts ...Option) (*File, error) {
	o := openOptions{
		iline: Inline3D,
		xline: Crossline3D,
		order: binary.BigEndian,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if !o.iline.Valid() || !o.xline.Valid() {
		return nil, fmt.Errorf("%w: iline %d / xline %d", ErrField, int(o.iline), int(o.xline))
	}

	flag := os.O_RDONLY
	if o.writable {
		flag = os.O_RDWR
	}
	osFile, err := os.OpenFile(path, flag, 0)
	if err != nil {
		return nil, err
	}

	f := &File{
		path:     path,
		file:     osFile,
		order:    o.order,
		iline:    o.iline,
		xline:    o.xline,
		writable: o.writable,
	}
	if err := f.readStructure(); err != nil {
		osFile.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// readStructure derives the sample axis and trace layout from the headers.
func (f *File) readStructure() error {
	info, err := f.file.Stat()
	if err != nil {
		return err
	}
	if info.Size() < DataOffset {
		return fmt.Errorf("%w: %d bytes is shorter than the file headers", ErrNotSEGY, info.Size())
	}

	bin, err := f.Bin()
	if err != nil {
		return err
	}

	f.format = SampleFormat(bin[Format])
	f.sampleSize, err = f.format.Size()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotSEGY, err)
	}
	f.sorting = int(bin[SortingCode])

	f.dataOffset = DataOffset
	if ext := bin[ExtendedHeaders]; ext > 0 {
		f.dataOffset += int64(ext) * TextHeaderSize
	}
	if f.dataOffset > info.Size() {
		return fmt.Errorf("%w: %d extended headers run past the end of the file", ErrNotSEGY, bin[ExtendedHeaders])
	}

	var first Header
	if info.Size() >= f.dataOffset+TraceHeaderSize {
		buf := make([]byte, TraceHeaderSize)
		if _, err := f.file.ReadAt(buf, f.dataOffset); err != nil {
			return fmt.Errorf("read first trace header: %w", err)
		}
		first = decodeHeader(buf, f.order)
	}

	ns := int(bin[Samples])
	if ns <= 0 {
		ns = int(first[TraceSampleCount])
	}
	if ns <= 0 {
		return fmt.Errorf("%w: sample count is not set", ErrNotSEGY)
	}

	f.traceSize = int64(TraceHeaderSize + ns*f.sampleSize)
	data := info.Size() - f.dataOffset
	if data < 0 || data%f.traceSize != 0 {
		return fmt.Errorf("%w: %d data bytes is not a multiple of the %d byte trace size", ErrNotSEGY, data, f.traceSize)
	}
	f.tracecount = int(data / f.traceSize)

	interval := float64(bin[Interval])
	if interval <= 0 {
		interval = float64(first[TraceSampleInterval])
	}
	if interval <= 0 {
		interval = 4000
	}
	delay := float64(first[DelayRecordingTime])
	f.samples = make([]float64, ns)
	for i := range f.samples {
		f.samples[i] = delay + float64(i)*interval/1000
	}
	return nil
}

// Path returns the path the file was opened with.
func (f *File) Path() string { return f.path }

// Tracecount returns the number of traces in the file.
func (f *File) Tracecount() int { return f.tracecount }

// Format returns the sample format of the file.
func (f *File) Format() SampleFormat { return f.format }

// Sorting returns the sorting code recorded when the file was created or opened.
func (f *File) Sorting() int { return f.sorting }

// Iline returns the byte location used for inline numbers.
func (f *File) Iline() TraceField { return f.iline }

// Xline returns the byte location used for crossline numbers.
func (f *File) Xline() TraceField { return f.xline }

// ByteOrder returns the byte order of the file.
func (f *File) ByteOrder() binary.ByteOrder { return f.order }

// Samples returns a copy of the vertical sample axis.
func (f *File) Samples() []float64 {
	return append([]float64(nil), f.samples...)
}

func (f *File) check(write bool) error {
	if f.closed {
		return ErrClosed
	}
	if write && !f.writable {
		return ErrReadOnly
	}
	return nil
}

func (f *File) traceOffset(i int) (int64, error) {
	if i < 0 || i >= f.tracecount {
		return 0, fmt.Errorf("%w: %d not in [0, %d)", ErrTraceIndex, i, f.tracecount)
	}
	return f.dataOffset + int64(i)*f.traceSize, nil
}

// Header reads every standard field of trace header i.
func (f *File) Header(i int) (Header, error) {
	buf, err := f.rawHeader(i)
	if err != nil {
		return nil, err
	}
	return decodeHeader(buf, f.order), nil
}

// HeaderFields reads only the named fields of trace header i.
func (f *File) HeaderFields(i int, fields ...TraceField) (Header, error) {
	buf, err := f.rawHeader(i)
	if err != nil {
		return nil, err
	}
	h := make(Header, len(fields))
	for _, field := range fields {
		w := field.Width()
		if w == 0 {
			return nil, fmt.Errorf("%w: byte %d", ErrField, int(field))
		}
		h[field] = getWord(buf, int(field)-1, w, f.order)
	}
	return h, nil
}

func (f *File) rawHeader(i int) ([]byte, error) {
	if err := f.check(false); err != nil {
		return nil, err
	}
	off, err := f.traceOffset(i)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, TraceHeaderSize)
	if _, err := f.file.ReadAt(buf, off); err != nil {
		return nil, fmt.Errorf("read trace header %d: %w", i, err)
	}
	return buf, nil
}

// SetHeader merges the fields of h into trace header i. Fields not present
// in h keep their current value.
func (f *File) SetHeader(i int, h Header) error {
	if err := f.check(true); err != nil {
		return err
	}
	buf, err := f.rawHeader(i)
	if err != nil {
		return err
	}
	if err := encodeHeader(buf, h, f.order); err != nil {
		return err
	}
	off, _ := f.traceOffset(i)
	if _, err := f.file.WriteAt(buf, off); err != nil {
		return fmt.Errorf("write trace header %d: %w", i, err)
	}
	return nil
}

// Trace reads the samples of trace i.
func (f *File) Trace(i int) ([]float32, error) {
	out := make([]float32, len(f.samples))
	if err := f.ReadTrace(i, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ReadTrace reads the samples of trace i into out, which must hold exactly
// one trace.
func (f *File) ReadTrace(i int, out []float32) error {
	if err := f.check(false); err != nil {
		return err
	}
	off, err := f.traceOffset(i)
	if err != nil {
		return err
	}
	if len(out) != len(f.samples) {
		return fmt.Errorf("trace buffer holds %d samples, file has %d", len(out), len(f.samples))
	}
	raw := make([]byte, len(f.samples)*f.sampleSize)
	if _, err := f.file.ReadAt(raw, off+TraceHeaderSize); err != nil {
		return fmt.Errorf("read trace %d: %w", i, err)
	}
	return decodeSamples(raw, out, f.format, f.order)
}

// SetTrace writes the samples of trace i.
func (f *File) SetTrace(i int, data []float32) error {
	if err := f.check(true); err != nil {
		return err
	}
	off, err := f.traceOffset(i)
	if err != nil {
		return err
	}
	if len(data) != len(f.samples) {
		return fmt.Errorf("trace %d has %d samples, file has %d", i, len(data), len(f.samples))
	}
	raw := make([]byte, len(data)*f.sampleSize)
	if err := encodeSamples(data, raw, f.format, f.order); err != nil {
		return err
	}
	if _, err := f.file.WriteAt(raw, off+TraceHeaderSize); err != nil {
		return fmt.Errorf("write trace %d: %w", i, err)
	}
	return nil
}

// Bin reads the binary file header.
func (f *File) Bin() (BinHeader, error) {
	if err := f.check(false); err != nil {
		return nil, err
	}
	buf := make([]byte, BinaryHeaderSize)
	if _, err := f.file.ReadAt(buf, TextHeaderSize); err != nil {
		return nil, fmt.Errorf("read binary header: %w", err)
	}
	return decodeBin(buf, f.order), nil
}

// UpdateBin merges fields into the binary file header.
func (f *File) UpdateBin(fields map[BinField]int32) error {
	if err := f.check(true); err != nil {
		return err
	}
	buf := make([]byte, BinaryHeaderSize)
	if _, err := f.file.ReadAt(buf, TextHeaderSize); err != nil {
		return fmt.Errorf("read binary header: %w", err)
	}
	if err := encodeBin(buf, fields, f.order); err != nil {
		return err
	}
	if _, err := f.file.WriteAt(buf, TextHeaderSize); err != nil {
		return fmt.Errorf("write binary header: %w", err)
	}
	return nil
}

// Text returns the textual header as 40 lines joined by newlines, with
// trailing blanks removed from each line.
func (f *File) Text() (string, error) {
	if err := f.check(false); err != nil {
		return "", err
	}
	buf := make([]byte, TextHeaderSize)
	if _, err := f.file.ReadAt(buf, 0); err != nil {
		return "", fmt.Errorf("read textual header: %w", err)
	}
	return decodeText(buf), nil
}

// SetText replaces the textual header. See PutTexthead for how text is laid
// out into 80 column cards.
func (f *File) SetText(text string) error {
	if err := f.check(true); err != nil {
		return err
	}
	if _, err := f.file.WriteAt(encodeText(text), 0); err != nil {
		return fmt.Errorf("write textual header: %w", err)
	}
	return nil
}

// Close flushes and closes the file. Closing twice is a no-op.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	if f.writable {
		if err := f.file.Sync(); err != nil {
			f.file.Close()
			return err
		}
	}
	return f.file.Close()
}
