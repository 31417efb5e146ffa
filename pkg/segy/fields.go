package segy

import (
	"encoding/binary"
	"fmt"
	"math"
	"sort"
)

// TraceField is the 1-based byte location of a trace header word.
type TraceField int

// Standard SEG-Y revision 1 trace header fields.
const (
	TraceSequenceLine          TraceField = 1
	TraceSequenceFile          TraceField = 5
	FieldRecord                TraceField = 9
	TraceNumber                TraceField = 13
	EnergySourcePoint          TraceField = 17
	CDP                        TraceField = 21
	CDPTrace                   TraceField = 25
	TraceIdentificationCode    TraceField = 29
	NSummedTraces              TraceField = 31
	NStackedTraces             TraceField = 33
	DataUse                    TraceField = 35
	TraceOffset                TraceField = 37
	ReceiverGroupElevation     TraceField = 41
	SourceSurfaceElevation     TraceField = 45
	SourceDepth                TraceField = 49
	ReceiverDatumElevation     TraceField = 53
	SourceDatumElevation       TraceField = 57
	SourceWaterDepth           TraceField = 61
	GroupWaterDepth            TraceField = 65
	ElevationScalar            TraceField = 69
	SourceGroupScalar          TraceField = 71
	SourceX                    TraceField = 73
	SourceY                    TraceField = 77
	GroupX                     TraceField = 81
	GroupY                     TraceField = 85
	CoordinateUnits            TraceField = 89
	WeatheringVelocity         TraceField = 91
	SubWeatheringVelocity      TraceField = 93
	SourceUpholeTime           TraceField = 95
	GroupUpholeTime            TraceField = 97
	SourceStaticCorrection     TraceField = 99
	GroupStaticCorrection      TraceField = 101
	TotalStaticApplied         TraceField = 103
	LagTimeA                   TraceField = 105
	LagTimeB                   TraceField = 107
	DelayRecordingTime         TraceField = 109
	MuteTimeStart              TraceField = 111
	MuteTimeEnd                TraceField = 113
	TraceSampleCount           TraceField = 115
	TraceSampleInterval        TraceField = 117
	GainType                   TraceField = 119
	InstrumentGainConstant     TraceField = 121
	InstrumentInitialGain      TraceField = 123
	Correlated                 TraceField = 125
	SweepFrequencyStart        TraceField = 127
	SweepFrequencyEnd          TraceField = 129
	SweepLength                TraceField = 131
	SweepType                  TraceField = 133
	SweepTraceTaperLengthStart TraceField = 135
	SweepTraceTaperLengthEnd   TraceField = 137
	TaperType                  TraceField = 139
	AliasFilterFrequency       TraceField = 141
	AliasFilterSlope           TraceField = 143
	NotchFilterFrequency       TraceField = 145
	NotchFilterSlope           TraceField = 147
	LowCutFrequency            TraceField = 149
	HighCutFrequency           TraceField = 151
	LowCutSlope                TraceField = 153
	HighCutSlope               TraceField = 155
	YearDataRecorded           TraceField = 157
	DayOfYear                  TraceField = 159
	HourOfDay                  TraceField = 161
	MinuteOfHour               TraceField = 163
	SecondOfMinute             TraceField = 165
	TimeBaseCode               TraceField = 167
	TraceWeightingFactor       TraceField = 169
	GeophoneGroupNumberRoll1   TraceField = 171
	GeophoneGroupNumberFirst   TraceField = 173
	GeophoneGroupNumberLast    TraceField = 175
	GapSize                    TraceField = 177
	OverTravel                 TraceField = 179
	CDPX                       TraceField = 181
	CDPY                       TraceField = 185
	Inline3D                   TraceField = 189
	Crossline3D                TraceField = 193
	ShotPoint                  TraceField = 197
	ShotPointScalar            TraceField = 201
	TraceValueMeasurementUnit  TraceField = 203
	TransductionConstMantissa  TraceField = 205
	TransductionConstPower     TraceField = 209
	TransductionUnit           TraceField = 211
	TraceIdentifier            TraceField = 213
	ScalarTraceHeader          TraceField = 215
	SourceType                 TraceField = 217
	SourceEnergyDirMantissa    TraceField = 219
	SourceEnergyDirExponent    TraceField = 223
	SourceMeasurementMantissa  TraceField = 225
	SourceMeasurementExponent  TraceField = 229
	SourceMeasurementUnit      TraceField = 231
	UnassignedInt1             TraceField = 233
	UnassignedInt2             TraceField = 237
)

// fieldInfo describes the name and width in bytes of a header word.
type fieldInfo struct {
	name  string
	width int
}

var traceFields = map[TraceField]fieldInfo{
	TraceSequenceLine:          {"TRACE_SEQUENCE_LINE", 4},
	TraceSequenceFile:          {"TRACE_SEQUENCE_FILE", 4},
	FieldRecord:                {"FieldRecord", 4},
	TraceNumber:                {"TraceNumber", 4},
	EnergySourcePoint:          {"EnergySourcePoint", 4},
	CDP:                        {"CDP", 4},
	CDPTrace:                   {"CDP_TRACE", 4},
	TraceIdentificationCode:    {"TraceIdentificationCode", 2},
	NSummedTraces:              {"NSummedTraces", 2},
	NStackedTraces:             {"NStackedTraces", 2},
	DataUse:                    {"DataUse", 2},
	TraceOffset:                {"offset", 4},
	ReceiverGroupElevation:     {"ReceiverGroupElevation", 4},
	SourceSurfaceElevation:     {"SourceSurfaceElevation", 4},
	SourceDepth:                {"SourceDepth", 4},
	ReceiverDatumElevation:     {"ReceiverDatumElevation", 4},
	SourceDatumElevation:       {"SourceDatumElevation", 4},
	SourceWaterDepth:           {"SourceWaterDepth", 4},
	GroupWaterDepth:            {"GroupWaterDepth", 4},
	ElevationScalar:            {"ElevationScalar", 2},
	SourceGroupScalar:          {"SourceGroupScalar", 2},
	SourceX:                    {"SourceX", 4},
	SourceY:                    {"SourceY", 4},
	GroupX:                     {"GroupX", 4},
	GroupY:                     {"GroupY", 4},
	CoordinateUnits:            {"CoordinateUnits", 2},
	WeatheringVelocity:         {"WeatheringVelocity", 2},
	SubWeatheringVelocity:      {"SubWeatheringVelocity", 2},
	SourceUpholeTime:           {"SourceUpholeTime", 2},
	GroupUpholeTime:            {"GroupUpholeTime", 2},
	SourceStaticCorrection:     {"SourceStaticCorrection", 2},
	GroupStaticCorrection:      {"GroupStaticCorrection", 2},
	TotalStaticApplied:         {"TotalStaticApplied", 2},
	LagTimeA:                   {"LagTimeA", 2},
	LagTimeB:                   {"LagTimeB", 2},
	DelayRecordingTime:         {"DelayRecordingTime", 2},
	MuteTimeStart:              {"MuteTimeStart", 2},
	MuteTimeEnd:                {"MuteTimeEND", 2},
	TraceSampleCount:           {"TRACE_SAMPLE_COUNT", 2},
	TraceSampleInterval:        {"TRACE_SAMPLE_INTERVAL", 2},
	GainType:                   {"GainType", 2},
	InstrumentGainConstant:     {"InstrumentGainConstant", 2},
	InstrumentInitialGain:      {"InstrumentInitialGain", 2},
	Correlated:                 {"Correlated", 2},
	SweepFrequencyStart:        {"SweepFrequencyStart", 2},
	SweepFrequencyEnd:          {"SweepFrequencyEnd", 2},
	SweepLength:                {"SweepLength", 2},
	SweepType:                  {"SweepType", 2},
	SweepTraceTaperLengthStart: {"SweepTraceTaperLengthStart", 2},
	SweepTraceTaperLengthEnd:   {"SweepTraceTaperLengthEnd", 2},
	TaperType:                  {"TaperType", 2},
	AliasFilterFrequency:       {"AliasFilterFrequency", 2},
	AliasFilterSlope:           {"AliasFilterSlope", 2},
	NotchFilterFrequency:       {"NotchFilterFrequency", 2},
	NotchFilterSlope:           {"NotchFilterSlope", 2},
	LowCutFrequency:            {"LowCutFrequency", 2},
	HighCutFrequency:           {"HighCutFrequency", 2},
	LowCutSlope:                {"LowCutSlope", 2},
	HighCutSlope:               {"HighCutSlope", 2},
	YearDataRecorded:           {"YearDataRecorded", 2},
	DayOfYear:                  {"DayOfYear", 2},
	HourOfDay:                  {"HourOfDay", 2},
	MinuteOfHour:               {"MinuteOfHour", 2},
	SecondOfMinute:             {"SecondOfMinute", 2},
	TimeBaseCode:               {"TimeBaseCode", 2},
	TraceWeightingFactor:       {"TraceWeightingFactor", 2},
	GeophoneGroupNumberRoll1:   {"GeophoneGroupNumberRoll1", 2},
	GeophoneGroupNumberFirst:   {"GeophoneGroupNumberFirstTraceOrigField", 2},
	GeophoneGroupNumberLast:    {"GeophoneGroupNumberLastTraceOrigField", 2},
	GapSize:                    {"GapSize", 2},
	OverTravel:                 {"OverTravel", 2},
	CDPX:                       {"CDP_X", 4},
	CDPY:                       {"CDP_Y", 4},
	Inline3D:                   {"INLINE_3D", 4},
	Crossline3D:                {"CROSSLINE_3D", 4},
	ShotPoint:                  {"ShotPoint", 4},
	ShotPointScalar:            {"ShotPointScalar", 2},
	TraceValueMeasurementUnit:  {"TraceValueMeasurementUnit", 2},
	TransductionConstMantissa:  {"TransductionConstantMantissa", 4},
	TransductionConstPower:     {"TransductionConstantPower", 2},
	TransductionUnit:           {"TransductionUnit", 2},
	TraceIdentifier:            {"TraceIdentifier", 2},
	ScalarTraceHeader:          {"ScalarTraceHeader", 2},
	SourceType:                 {"SourceType", 2},
	SourceEnergyDirMantissa:    {"SourceEnergyDirectionMantissa", 4},
	SourceEnergyDirExponent:    {"SourceEnergyDirectionExponent", 2},
	SourceMeasurementMantissa:  {"SourceMeasurementMantissa", 4},
	SourceMeasurementExponent:  {"SourceMeasurementExponent", 2},
	SourceMeasurementUnit:      {"SourceMeasurementUnit", 2},
	UnassignedInt1:             {"UnassignedInt1", 4},
	UnassignedInt2:             {"UnassignedInt2", 4},
}

// String returns the conventional name of the field.
func (f TraceField) String() string {
	if info, ok := traceFields[f]; ok {
		return info.name
	}
	return fmt.Sprintf("TraceField(%d)", int(f))
}

// Width returns the size of the field in bytes, or 0 for an unknown field.
func (f TraceField) Width() int {
	return traceFields[f].width
}

// Valid reports whether f is a standard trace header byte location.
func (f TraceField) Valid() bool {
	_, ok := traceFields[f]
	return ok
}

// TraceFields returns all standard trace header fields in byte order.
func TraceFields() []TraceField {
	out := make([]TraceField, 0, len(traceFields))
	for f := range traceFields {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// TraceFieldByName looks up a trace header field by its conventional name.
func TraceFieldByName(name string) (TraceField, bool) {
	for f, info := range traceFields {
		if info.name == name {
			return f, true
		}
	}
	return 0, false
}

// BinField is the 1-based byte location (3201-3600) of a binary header word.
type BinField int

// Standard SEG-Y revision 1 binary header fields.
const (
	JobID                 BinField = 3201
	LineNumber            BinField = 3205
	ReelNumber            BinField = 3209
	Traces                BinField = 3213
	AuxTraces             BinField = 3215
	Interval              BinField = 3217
	IntervalOriginal      BinField = 3219
	Samples               BinField = 3221
	SamplesOriginal       BinField = 3223
	Format                BinField = 3225
	EnsembleFold          BinField = 3227
	SortingCode           BinField = 3229
	VerticalSum           BinField = 3231
	SweepFrequencyStartHz BinField = 3233
	SweepFrequencyEndHz   BinField = 3235
	SweepLengthMs         BinField = 3237
	Sweep                 BinField = 3239
	SweepChannel          BinField = 3241
	SweepTaperStart       BinField = 3243
	SweepTaperEnd         BinField = 3245
	Taper                 BinField = 3247
	CorrelatedTraces      BinField = 3249
	BinaryGainRecovery    BinField = 3251
	AmplitudeRecovery     BinField = 3253
	MeasurementSystem     BinField = 3255
	ImpulseSignalPolarity BinField = 3257
	VibratoryPolarity     BinField = 3259
	SEGYRevision          BinField = 3501
	TraceFlag             BinField = 3503
	ExtendedHeaders       BinField = 3505
)

var binFields = map[BinField]fieldInfo{
	JobID:                 {"JobID", 4},
	LineNumber:            {"LineNumber", 4},
	ReelNumber:            {"ReelNumber", 4},
	Traces:                {"Traces", 2},
	AuxTraces:             {"AuxTraces", 2},
	Interval:              {"Interval", 2},
	IntervalOriginal:      {"IntervalOriginal", 2},
	Samples:               {"Samples", 2},
	SamplesOriginal:       {"SamplesOriginal", 2},
	Format:                {"Format", 2},
	EnsembleFold:          {"EnsembleFold", 2},
	SortingCode:           {"SortingCode", 2},
	VerticalSum:           {"VerticalSum", 2},
	SweepFrequencyStartHz: {"SweepFrequencyStart", 2},
	SweepFrequencyEndHz:   {"SweepFrequencyEnd", 2},
	SweepLengthMs:         {"SweepLength", 2},
	Sweep:                 {"Sweep", 2},
	SweepChannel:          {"SweepChannel", 2},
	SweepTaperStart:       {"SweepTaperStart", 2},
	SweepTaperEnd:         {"SweepTaperEnd", 2},
	Taper:                 {"Taper", 2},
	CorrelatedTraces:      {"CorrelatedTraces", 2},
	BinaryGainRecovery:    {"BinaryGainRecovery", 2},
	AmplitudeRecovery:     {"AmplitudeRecovery", 2},
	MeasurementSystem:     {"MeasurementSystem", 2},
	ImpulseSignalPolarity: {"ImpulseSignalPolarity", 2},
	VibratoryPolarity:     {"VibratoryPolarity", 2},
	SEGYRevision:          {"SEGYRevision", 2},
	TraceFlag:             {"TraceFlag", 2},
	ExtendedHeaders:       {"ExtendedHeaders", 2},
}

// String returns the conventional name of the field.
func (f BinField) String() string {
	if info, ok := binFields[f]; ok {
		return info.name
	}
	return fmt.Sprintf("BinField(%d)", int(f))
}

// Width returns the size of the field in bytes, or 0 for an unknown field.
func (f BinField) Width() int {
	return binFields[f].width
}

// BinFields returns all standard binary header fields in byte order.
func BinFields() []BinField {
	out := make([]BinField, 0, len(binFields))
	for f := range binFields {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Header is a trace header record keyed by byte location.
type Header map[TraceField]int32

// BinHeader is a binary file header keyed by byte location.
type BinHeader map[BinField]int32

// getWord reads a signed 2 or 4 byte word from buf at 0-based offset off.
func getWord(buf []byte, off, width int, order binary.ByteOrder) int32 {
	switch width {
	case 2:
		return int32(int16(order.Uint16(buf[off:])))
	case 4:
		return int32(order.Uint32(buf[off:]))
	}
	return 0
}

// putWord writes a signed 2 or 4 byte word into buf at 0-based offset off.
// A value that does not fit a 2 byte word is rejected.
func putWord(buf []byte, off, width int, v int32, order binary.ByteOrder) error {
	switch width {
	case 2:
		if v < math.MinInt16 || v > math.MaxInt16 {
			return fmt.Errorf("%w: %d does not fit a 2 byte word", ErrFieldRange, v)
		}
		order.PutUint16(buf[off:], uint16(int16(v)))
	case 4:
		order.PutUint32(buf[off:], uint32(v))
	}
	return nil
}

// decodeHeader unpacks every standard field of a 240 byte trace header.
func decodeHeader(buf []byte, order binary.ByteOrder) Header {
	h := make(Header, len(traceFields))
	for f, info := range traceFields {
		h[f] = getWord(buf, int(f)-1, info.width, order)
	}
	return h
}

// encodeHeader patches the fields of h into buf.
func encodeHeader(buf []byte, h Header, order binary.ByteOrder) error {
	for f, v := range h {
		info, ok := traceFields[f]
		if !ok {
			return fmt.Errorf("%w: byte %d", ErrField, int(f))
		}
		if err := putWord(buf, int(f)-1, info.width, v, order); err != nil {
			return fmt.Errorf("byte %d (%s): %w", int(f), f, err)
		}
	}
	return nil
}

// decodeBin unpacks a 400 byte binary header.
func decodeBin(buf []byte, order binary.ByteOrder) BinHeader {
	h := make(BinHeader, len(binFields))
	for f, info := range binFields {
		h[f] = getWord(buf, int(f)-TextHeaderSize-1, info.width, order)
	}
	return h
}

// encodeBin patches the fields of h into a 400 byte binary header buffer.
func encodeBin(buf []byte, h map[BinField]int32, order binary.ByteOrder) error {
	for f, v := range h {
		info, ok := binFields[f]
		if !ok {
			return fmt.Errorf("%w: binary byte %d", ErrField, int(f))
		}
		if err := putWord(buf, int(f)-TextHeaderSize-1, info.width, v, order); err != nil {
			return fmt.Errorf("binary byte %d (%s): %w", int(f), f, err)
		}
	}
	return nil
}
