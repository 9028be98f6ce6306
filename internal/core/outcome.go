package core

// Outcome is the terminal state a province reaches during one renaming pass.
//
//	Unconsidered -> RejectedByChance
//	             -> Selected -> RejectedBySpacing
//	                         -> Eligible -> NoCandidates
//	                                     -> Renamed
type Outcome int

const (
	Unconsidered Outcome = iota
	RejectedByChance
	RejectedBySpacing
	NoCandidates
	Renamed
)

var outcomeNames = [...]string{
	Unconsidered:      "unconsidered",
	RejectedByChance:  "rejected_by_chance",
	RejectedBySpacing: "rejected_by_spacing",
	NoCandidates:      "no_candidates",
	Renamed:           "renamed",
}

func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return "unknown"
	}
	return outcomeNames[o]
}

// Terminal reports whether no further transition is possible within a pass.
func (o Outcome) Terminal() bool { return o >= RejectedByChance && o <= Renamed }

// Outcomes lists the terminal outcomes in state-machine order.
func Outcomes() []Outcome {
	return []Outcome{RejectedByChance, RejectedBySpacing, NoCandidates, Renamed}
}

func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }
