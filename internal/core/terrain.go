package core

import (
	"math/bits"
	"strconv"
	"strings"
)

// Flag is a single bit of a province's terrain bitfield as written in the map
// file. Terrain categories and modifiers share the same bitfield.
type Flag uint64

const (
	Plains     Flag = 0
	Small      Flag = 1 << 0
	Large      Flag = 1 << 1
	Sea        Flag = 1 << 2
	Freshwater Flag = 1 << 3
	Highlands  Flag = 1 << 4
	Swamp      Flag = 1 << 5
	Waste      Flag = 1 << 6
	Forest     Flag = 1 << 7
	Farm       Flag = 1 << 8
	NoStart    Flag = 1 << 9
	ManySites  Flag = 1 << 10
	DeepSea    Flag = 1 << 11
	Cave       Flag = 1 << 12
	Mountains  Flag = 1 << 22
	Throne     Flag = 1 << 24
	Start      Flag = 1 << 25
	NoThrone   Flag = 1 << 26
	Warmer     Flag = 1 << 29
	Colder     Flag = 1 << 30
)

var flagNames = map[Flag]string{
	Small:      "small",
	Large:      "large",
	Sea:        "sea",
	Freshwater: "freshwater",
	Highlands:  "highlands",
	Swamp:      "swamp",
	Waste:      "waste",
	Forest:     "forest",
	Farm:       "farm",
	NoStart:    "nostart",
	ManySites:  "manysites",
	DeepSea:    "deepsea",
	Cave:       "cave",
	Mountains:  "mountains",
	Throne:     "throne",
	Start:      "start",
	NoThrone:   "nothrone",
	Warmer:     "warmer",
	Colder:     "colder",
}

func (f Flag) String() string {
	if f == Plains {
		return "plains"
	}
	if name, ok := flagNames[f]; ok {
		return name
	}
	return "bit" + strconv.Itoa(bits.TrailingZeros64(uint64(f)))
}

// Mask is a set of flags. A province's terrain is a Mask; so are the required
// terrain and modifier sets of a Candidate.
type Mask uint64

// MaskOf builds a mask from individual flags.
func MaskOf(flags ...Flag) Mask {
	var m Mask
	for _, f := range flags {
		m |= Mask(f)
	}
	return m
}

func (m Mask) Has(f Flag) bool { return f != Plains && uint64(m)&uint64(f) == uint64(f) }

func (m Mask) IsEmpty() bool { return m == 0 }

func (m Mask) With(f Flag) Mask { return m | Mask(f) }

// Flags decomposes the mask into its single-bit flags, lowest bit first.
func (m Mask) Flags() []Flag {
	out := make([]Flag, 0, bits.OnesCount64(uint64(m)))
	for rest := uint64(m); rest != 0; rest &= rest - 1 {
		out = append(out, Flag(rest&-rest))
	}
	return out
}

// HasAll reports whether every flag of req is present in m.
func (m Mask) HasAll(req Mask) bool {
	for _, f := range req.Flags() {
		if !m.Has(f) {
			return false
		}
	}
	return true
}

// HasAny reports whether at least one flag of req is present in m.
// An empty req yields false.
func (m Mask) HasAny(req Mask) bool {
	for _, f := range req.Flags() {
		if m.Has(f) {
			return true
		}
	}
	return false
}

func (m Mask) String() string {
	if m == 0 {
		return "plains"
	}
	flags := m.Flags()
	names := make([]string, len(flags))
	for i, f := range flags {
		names[i] = f.String()
	}
	return strings.Join(names, "|")
}

// IsWater reports whether the mask carries either sea bit.
func (m Mask) IsWater() bool { return m.Has(Sea) || m.Has(DeepSea) }
