package events

import (
	"time"

	"github.com/mitchelldurbincs/ProvinceRenamer/internal/core"
)

// Event type constants
const (
	TypeRunStarted        = "run.started"
	TypeRunFinished       = "run.finished"
	TypeRejectedByChance  = "province.rejected_by_chance"
	TypeRejectedBySpacing = "province.rejected_by_spacing"
	TypeNoCandidates      = "province.no_candidates"
	TypeProvinceRenamed   = "province.renamed"
)

// TypeForOutcome maps a terminal province outcome to its event type.
func TypeForOutcome(o core.Outcome) string {
	switch o {
	case core.RejectedByChance:
		return TypeRejectedByChance
	case core.RejectedBySpacing:
		return TypeRejectedBySpacing
	case core.NoCandidates:
		return TypeNoCandidates
	case core.Renamed:
		return TypeProvinceRenamed
	default:
		return "province.unknown"
	}
}

// RunStartedEvent is published before the first province is considered
type RunStartedEvent struct {
	BaseEvent
	Provinces    int     `json:"provinces"`
	Candidates   int     `json:"candidates"`
	RenameChance float64 `json:"rename_chance"`
	MinDistance  int     `json:"min_distance"`
}

func NewRunStartedEvent(runID string, provinces, candidates int, chance float64, minDistance int) *RunStartedEvent {
	return &RunStartedEvent{
		BaseEvent:    BaseEvent{EventType: TypeRunStarted, Time: time.Now(), Run: runID},
		Provinces:    provinces,
		Candidates:   candidates,
		RenameChance: chance,
		MinDistance:  minDistance,
	}
}

// RunFinishedEvent is published once the pass is over
type RunFinishedEvent struct {
	BaseEvent
	Renamed        int           `json:"renamed"`
	CandidatesLeft int           `json:"candidates_left"`
	Duration       time.Duration `json:"duration"`
}

func NewRunFinishedEvent(runID string, renamed, left int, d time.Duration) *RunFinishedEvent {
	return &RunFinishedEvent{
		BaseEvent:      BaseEvent{EventType: TypeRunFinished, Time: time.Now(), Run: runID},
		Renamed:        renamed,
		CandidatesLeft: left,
		Duration:       d,
	}
}

// ProvinceEvent records the terminal outcome of one province.
type ProvinceEvent struct {
	BaseEvent
	Province int          `json:"province"`
	Outcome  core.Outcome `json:"outcome"`
	Terrain  core.Mask    `json:"terrain"`
	// Set for RejectedBySpacing
	ConflictWith int `json:"conflict_with,omitempty"`
	Distance     int `json:"distance,omitempty"`
	// Set for Renamed
	Name       string `json:"name,omitempty"`
	Applicable int    `json:"applicable,omitempty"`
}

func NewProvinceEvent(runID string, province int, outcome core.Outcome, terrain core.Mask) *ProvinceEvent {
	return &ProvinceEvent{
		BaseEvent: BaseEvent{EventType: TypeForOutcome(outcome), Time: time.Now(), Run: runID},
		Province:  province,
		Outcome:   outcome,
		Terrain:   terrain,
	}
}
