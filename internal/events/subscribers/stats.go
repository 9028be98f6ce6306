package subscribers

import (
	"sync"

	"github.com/mitchelldurbincs/ProvinceRenamer/internal/core"
	"github.com/mitchelldurbincs/ProvinceRenamer/internal/events"
)

// StatsSubscriber tallies province outcomes across one or more runs.
type StatsSubscriber struct {
	id     string
	mu     sync.Mutex
	counts map[core.Outcome]int
	runs   int
}

func NewStatsSubscriber(id string) *StatsSubscriber {
	return &StatsSubscriber{id: id, counts: make(map[core.Outcome]int)}
}

func (s *StatsSubscriber) ID() string { return s.id }

func (s *StatsSubscriber) InterestedIn(eventType string) bool {
	switch eventType {
	case events.TypeRunStarted,
		events.TypeRejectedByChance,
		events.TypeRejectedBySpacing,
		events.TypeNoCandidates,
		events.TypeProvinceRenamed:
		return true
	}
	return false
}

func (s *StatsSubscriber) HandleEvent(event events.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch e := event.(type) {
	case *events.RunStartedEvent:
		s.runs++
	case *events.ProvinceEvent:
		s.counts[e.Outcome]++
	}
}

// Counts returns a copy of the per-outcome tallies.
func (s *StatsSubscriber) Counts() map[core.Outcome]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[core.Outcome]int, len(s.counts))
	for k, v := range s.counts {
		out[k] = v
	}
	return out
}

func (s *StatsSubscriber) Runs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs
}
