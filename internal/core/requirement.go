package core

import (
	"strings"

	"golang.org/x/text/cases"
)

// Special is a requirement that cannot be expressed as a bit of the province
// mask and is evaluated against the province's surroundings.
type Special int

const (
	// Inland rejects provinces bordering sea or deep sea.
	Inland Special = iota + 1
)

func (s Special) String() string {
	switch s {
	case Inland:
		return "inland"
	default:
		return "unknown"
	}
}

type tagKind int

const (
	tagNone tagKind = iota
	tagTerrain
	tagModifier
	tagSpecial
)

type tagSpec struct {
	kind    tagKind
	flag    Flag
	special Special
}

var requirementTags = map[string]tagSpec{
	"":           {kind: tagNone},
	"plains":     {kind: tagNone},
	"sea":        {kind: tagTerrain, flag: Sea},
	"freshwater": {kind: tagTerrain, flag: Freshwater},
	"highlands":  {kind: tagTerrain, flag: Highlands},
	"gorge":      {kind: tagTerrain, flag: Highlands},
	"swamp":      {kind: tagTerrain, flag: Swamp},
	"waste":      {kind: tagTerrain, flag: Waste},
	"forest":     {kind: tagTerrain, flag: Forest},
	"kelpforest": {kind: tagTerrain, flag: Forest},
	"farm":       {kind: tagTerrain, flag: Farm},
	"deepsea":    {kind: tagTerrain, flag: DeepSea},
	"cave":       {kind: tagTerrain, flag: Cave},
	"mountains":  {kind: tagTerrain, flag: Mountains},
	"small":      {kind: tagModifier, flag: Small},
	"large":      {kind: tagModifier, flag: Large},
	"nostart":    {kind: tagModifier, flag: NoStart},
	"manysites":  {kind: tagModifier, flag: ManySites},
	"throne":     {kind: tagModifier, flag: Throne},
	"start":      {kind: tagModifier, flag: Start},
	"nothrone":   {kind: tagModifier, flag: NoThrone},
	"warmer":     {kind: tagModifier, flag: Warmer},
	"colder":     {kind: tagModifier, flag: Colder},
	"inland":     {kind: tagSpecial, special: Inland},
}

// Requirement gates which provinces a name may be given to.
//
// Terrain is AND-composed: every flag must be present on the province.
// Modifiers is OR-composed: at least one flag must be present, unless the set is empty.
type Requirement struct {
	Terrain   Mask
	Modifiers Mask
	Specials  []Special
}

// ParseRequirement decodes human-readable tags. Tags are trimmed and matched
// case-insensitively. The candidate name is only used for error reporting.
func ParseRequirement(candidate string, tags []string) (Requirement, error) {
	var req Requirement
	fold := cases.Fold()
	for _, raw := range tags {
		tag := fold.String(strings.TrimSpace(raw))
		spec, ok := requirementTags[tag]
		if !ok {
			return Requirement{}, &InvalidRequirementError{Candidate: candidate, Tag: strings.TrimSpace(raw)}
		}
		switch spec.kind {
		case tagTerrain:
			req.Terrain = req.Terrain.With(spec.flag)
		case tagModifier:
			req.Modifiers = req.Modifiers.With(spec.flag)
		case tagSpecial:
			if !req.HasSpecial(spec.special) {
				req.Specials = append(req.Specials, spec.special)
			}
		}
	}
	return req, nil
}

func (r Requirement) HasSpecial(s Special) bool {
	for _, have := range r.Specials {
		if have == s {
			return true
		}
	}
	return false
}

// Satisfied evaluates the requirement against a province mask and the masks of
// its neighbours.
func (r Requirement) Satisfied(province Mask, neighbours []Mask) bool {
	if !province.HasAll(r.Terrain) {
		return false
	}
	if r.HasSpecial(Inland) {
		for _, n := range neighbours {
			if n.IsWater() {
				return false
			}
		}
	}
	if !r.Modifiers.IsEmpty() && !province.HasAny(r.Modifiers) {
		return false
	}
	return true
}

func (r Requirement) String() string {
	parts := make([]string, 0, 3)
	if !r.Terrain.IsEmpty() {
		parts = append(parts, "terrain="+r.Terrain.String())
	}
	if !r.Modifiers.IsEmpty() {
		parts = append(parts, "any="+r.Modifiers.String())
	}
	for _, s := range r.Specials {
		parts = append(parts, s.String())
	}
	if len(parts) == 0 {
		return "any province"
	}
	return strings.Join(parts, " ")
}

// Candidate is a name that may be applied to a province satisfying its
// requirement. A candidate is consumed once it has been assigned; see
// renamer.Pool for the owner that marks it used.
type Candidate struct {
	Name        string
	Requirement Requirement
	used        bool
}

// NewCandidate builds a candidate from a name and its requirement tags.
// An unrecognised tag yields an *InvalidRequirementError naming the candidate.
func NewCandidate(name string, tags []string) (*Candidate, error) {
	req, err := ParseRequirement(name, tags)
	if err != nil {
		return nil, err
	}
	return &Candidate{Name: name, Requirement: req}, nil
}

func (c *Candidate) Used() bool { return c.used }

// MarkUsed consumes the candidate. It never becomes available again.
func (c *Candidate) MarkUsed() { c.used = true }

// Applicable reports whether the candidate may name a province with the given
// terrain mask and neighbour masks. A used candidate is never applicable.
func (c *Candidate) Applicable(province Mask, neighbours []Mask) bool {
	if c.used {
		return false
	}
	return c.Requirement.Satisfied(province, neighbours)
}
