package segy

import (
	"encoding/binary"
	"fmt"
	"math"
)

// SampleFormat is the data sample format code stored at binary byte 3225.
type SampleFormat int

// Supported sample formats.
const (
	FormatIBMFloat  SampleFormat = 1
	FormatInt32     SampleFormat = 2
	FormatInt16     SampleFormat = 3
	FormatIEEEFloat SampleFormat = 5
	FormatInt8      SampleFormat = 8
)

// Size returns the number of bytes used by a single sample.
func (s SampleFormat) Size() (int, error) {
	switch s {
	case FormatIBMFloat, FormatInt32, FormatIEEEFloat:
		return 4, nil
	case FormatInt16:
		return 2, nil
	case FormatInt8:
		return 1, nil
	}
	return 0, fmt.Errorf("%w: %d", ErrFormat, int(s))
}

func (s SampleFormat) String() string {
	switch s {
	case FormatIBMFloat:
		return "4-byte IBM float"
	case FormatInt32:
		return "4-byte signed integer"
	case FormatInt16:
		return "2-byte signed integer"
	case FormatIEEEFloat:
		return "4-byte IEEE float"
	case FormatInt8:
		return "1-byte signed integer"
	}
	return fmt.Sprintf("format %d", int(s))
}

// IBMToIEEE converts an IBM System/360 single precision float to float32.
func IBMToIEEE(b uint32) float32 {
	if b&0x7fffffff == 0 {
		return 0
	}
	sign := 1.0
	if b>>31 == 1 {
		sign = -1.0
	}
	exp := int((b>>24)&0x7f) - 64
	frac := float64(b&0x00ffffff) / (1 << 24)
	return float32(sign * frac * math.Pow(16, float64(exp)))
}

// IEEEToIBM converts a float32 to IBM System/360 single precision.
// Values beyond the IBM range saturate; NaN encodes as zero.
func IEEEToIBM(f float32) uint32 {
	if f == 0 || math.IsNaN(float64(f)) {
		return 0
	}
	var sign uint32
	v := float64(f)
	if v < 0 {
		sign = 0x80000000
		v = -v
	}
	if math.IsInf(v, 0) {
		return sign | 0x7fffffff
	}

	exp := 0
	for v >= 1 {
		v /= 16
		exp++
	}
	for v < 1.0/16 {
		v *= 16
		exp--
	}

	frac := uint32(math.Round(v * (1 << 24)))
	if frac >= 1<<24 {
		frac >>= 4
		exp++
	}

	exp += 64
	switch {
	case exp > 127:
		return sign | 0x7fffffff
	case exp < 0:
		return 0
	}
	return sign | uint32(exp)<<24 | frac
}

// decodeSamples unpacks raw trace bytes into float32 samples.
func decodeSamples(raw []byte, out []float32, format SampleFormat, order binary.ByteOrder) error {
	switch format {
	case FormatIBMFloat:
		for i := range out {
			out[i] = IBMToIEEE(order.Uint32(raw[i*4:]))
		}
	case FormatIEEEFloat:
		for i := range out {
			out[i] = math.Float32frombits(order.Uint32(raw[i*4:]))
		}
	case FormatInt32:
		for i := range out {
			out[i] = float32(int32(order.Uint32(raw[i*4:])))
		}
	case FormatInt16:
		for i := range out {
			out[i] = float32(int16(order.Uint16(raw[i*2:])))
		}
	case FormatInt8:
		for i := range out {
			out[i] = float32(int8(raw[i]))
		}
	default:
		return fmt.Errorf("%w: %d", ErrFormat, int(format))
	}
	return nil
}

// encodeSamples packs float32 samples into raw trace bytes. Integer formats
// round to the nearest value and saturate at the type limits.
func encodeSamples(in []float32, raw []byte, format SampleFormat, order binary.ByteOrder) error {
	switch format {
	case FormatIBMFloat:
		for i, v := range in {
			order.PutUint32(raw[i*4:], IEEEToIBM(v))
		}
	case FormatIEEEFloat:
		for i, v := range in {
			order.PutUint32(raw[i*4:], math.Float32bits(v))
		}
	case FormatInt32:
		for i, v := range in {
			order.PutUint32(raw[i*4:], uint32(int32(clamp(v, math.MinInt32, math.MaxInt32))))
		}
	case FormatInt16:
		for i, v := range in {
			order.PutUint16(raw[i*2:], uint16(int16(clamp(v, math.MinInt16, math.MaxInt16))))
		}
	case FormatInt8:
		for i, v := range in {
			raw[i] = byte(int8(clamp(v, math.MinInt8, math.MaxInt8)))
		}
	default:
		return fmt.Errorf("%w: %d", ErrFormat, int(format))
	}
	return nil
}

func clamp(v float32, lo, hi float64) float64 {
	r := math.Round(float64(v))
	if r < lo {
		return lo
	}
	if r > hi {
		return hi
	}
	return r
}
