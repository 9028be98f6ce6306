package subscribers

import (
	"encoding/json"

	"github.com/mitchelldurbincs/ProvinceRenamer/internal/events"
	"github.com/rs/zerolog"
)

// LoggerSubscriber logs events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
	devMode         bool            // If true, log full event details
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool)
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode enables or disables development mode logging
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	eventLogger := ls.logger.With().
		Str("event_type", event.Type()).
		Str("run_id", event.RunID()).
		Logger()

	level := ls.logLevel
	// Renames are the interesting part of a pass; never log them below info.
	if event.Type() == events.TypeProvinceRenamed && level < zerolog.InfoLevel {
		level = zerolog.InfoLevel
	}
	logEvent := eventLogger.WithLevel(level)

	msg := "Rename event"
	switch e := event.(type) {
	case *events.RunStartedEvent:
		logEvent.
			Int("provinces", e.Provinces).
			Int("candidates", e.Candidates).
			Float64("rename_chance", e.RenameChance).
			Int("min_distance", e.MinDistance)
		msg = "Renaming pass started"

	case *events.RunFinishedEvent:
		logEvent.
			Int("renamed", e.Renamed).
			Int("candidates_left", e.CandidatesLeft).
			Dur("duration", e.Duration)
		msg = "Renaming pass finished"

	case *events.ProvinceEvent:
		logEvent.
			Int("province", e.Province).
			Str("outcome", e.Outcome.String()).
			Str("terrain", e.Terrain.String())
		switch e.Type() {
		case events.TypeRejectedBySpacing:
			logEvent.Int("conflict_with", e.ConflictWith).Int("distance", e.Distance)
		case events.TypeProvinceRenamed:
			logEvent.Str("name", e.Name).Int("applicable", e.Applicable)
			msg = "Renaming province"
		}
	}

	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	logEvent.Msg(msg)
}
