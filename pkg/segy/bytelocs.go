package segy

import (
	"fmt"
	"sort"
)

// ByteLocs names the header byte locations holding the key geometry fields.
// A zero field is not used by the layout.
type ByteLocs struct {
	Iline  TraceField `yaml:"iline"`
	Xline  TraceField `yaml:"xline"`
	CDP    TraceField `yaml:"cdp"`
	CDPX   TraceField `yaml:"cdpx"`
	CDPY   TraceField `yaml:"cdpy"`
	Offset TraceField `yaml:"offset"`
}

var wellKnownByteLocs = map[string]ByteLocs{
	"standard_3d":      {Iline: Inline3D, Xline: Crossline3D, CDPX: CDPX, CDPY: CDPY},
	"standard_3d_gath": {Iline: Inline3D, Xline: Crossline3D, CDPX: CDPX, CDPY: CDPY, Offset: TraceOffset},
	"standard_2d":      {CDP: CDP, CDPX: CDPX, CDPY: CDPY},
	"petrel_3d":        {Iline: TraceSequenceFile, Xline: CDP, CDPX: SourceX, CDPY: SourceY},
	"petrel_2d":        {CDP: CDP, CDPX: SourceX, CDPY: SourceY},
}

// WellKnownByteLocs returns the byte locations used by a common SEG-Y
// flavour such as "standard_3d" or "petrel_3d".
func WellKnownByteLocs(name string) (ByteLocs, error) {
	locs, ok := wellKnownByteLocs[name]
	if !ok {
		return ByteLocs{}, fmt.Errorf("unknown byte location preset %q, expected one of %v", name, WellKnownByteLocNames())
	}
	return locs, nil
}

// WellKnownByteLocNames lists the preset names in sorted order.
func WellKnownByteLocNames() []string {
	names := make([]string, 0, len(wellKnownByteLocs))
	for name := range wellKnownByteLocs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Options returns the open options selecting the inline and crossline byte
// locations of l. Zero fields are left at their defaults.
func (l ByteLocs) Options() []Option {
	var opts []Option
	if l.Iline != 0 {
		opts = append(opts, WithIline(l.Iline))
	}
	if l.Xline != 0 {
		opts = append(opts, WithXline(l.Xline))
	}
	return opts
}
