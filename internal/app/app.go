// Package app wires the loaders, the rename engine and the writers into a
// single run driven by configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/ProvinceRenamer/internal/config"
	"github.com/mitchelldurbincs/ProvinceRenamer/internal/events"
	"github.com/mitchelldurbincs/ProvinceRenamer/internal/events/subscribers"
	"github.com/mitchelldurbincs/ProvinceRenamer/internal/mapio"
	"github.com/mitchelldurbincs/ProvinceRenamer/internal/renamer"
	"github.com/mitchelldurbincs/ProvinceRenamer/internal/report"
)

// ErrNoMap is returned when no map file is configured.
var ErrNoMap = errors.New("no map file given")

// Summary describes a completed run.
type Summary struct {
	RunID      string
	Seed       int64
	OutputPath string
	ReportPath string
	Renamed    int
	Provinces  int
}

// Runner performs renaming runs. It keeps one event bus and stats subscriber
// across runs so repeated runs in watch mode accumulate statistics.
type Runner struct {
	bus    *events.EventBus
	stats  *subscribers.StatsSubscriber
	logger zerolog.Logger
	now    func() time.Time
}

// NewRunner creates a runner whose rename events are logged at eventLevel,
// restricted to the event types in logging.Events when it is non-empty.
func NewRunner(eventLevel zerolog.Level, logging config.LoggingConfig) *Runner {
	bus := events.NewEventBus()
	logSub := subscribers.NewLoggerSubscriber("event-logger", log.Logger, eventLevel)
	logSub.SetDevMode(logging.DevMode)
	if len(logging.Events) > 0 {
		logSub.SetEventFilter(logging.Events)
	}
	stats := subscribers.NewStatsSubscriber("stats")
	bus.Subscribe(logSub)
	bus.Subscribe(stats)

	return &Runner{
		bus:    bus,
		stats:  stats,
		logger: log.With().Str("component", "app").Logger(),
		now:    time.Now,
	}
}

// Stats exposes the accumulated outcome statistics.
func (r *Runner) Stats() *subscribers.StatsSubscriber { return r.stats }

// Run reads the name list and map named in cfg, renames provinces, writes the
// edited map next to the input and, if configured, a YAML report.
func (r *Runner) Run(ctx context.Context, cfg *config.Config) (*Summary, error) {
	if cfg.Files.Map == "" {
		return nil, ErrNoMap
	}

	seed := cfg.Renamer.Seed
	if seed == 0 {
		seed = r.now().UnixNano()
	}
	opts := renamer.Options{
		RenameChance: cfg.Renamer.RenameChance,
		MinDistance:  cfg.Renamer.MinDistance,
	}

	r.logger.Info().Str("path", cfg.Files.Namelist).Msg("Reading namelist")
	candidates, err := mapio.LoadNamelist(cfg.Files.Namelist)
	if err != nil {
		return nil, err
	}

	r.logger.Info().Str("path", cfg.Files.Map).Msg("Parsing map")
	data, err := mapio.LoadMap(cfg.Files.Map)
	if err != nil {
		return nil, err
	}
	graph := data.Graph()

	r.logger.Info().
		Int("provinces", graph.Len()).
		Int("candidates", len(candidates)).
		Int64("seed", seed).
		Msg("Performing renaming")
	pool := renamer.NewPool(candidates)
	engine, err := renamer.NewEngine(graph, pool, opts, rand.New(rand.NewSource(seed)),
		renamer.WithPublisher(r.bus))
	if err != nil {
		return nil, err
	}
	res, err := engine.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("renaming: %w", err)
	}

	out := mapio.EditedPath(cfg.Files.Map, cfg.Files.OutputSuffix)
	r.logger.Info().Str("path", out).Int("renamed", len(res.Assignment)).Msg("Writing map output")
	if err := mapio.WriteMapFile(cfg.Files.Map, out, res.Assignment); err != nil {
		return nil, err
	}

	sum := &Summary{
		RunID:      res.RunID,
		Seed:       seed,
		OutputPath: out,
		Renamed:    len(res.Assignment),
		Provinces:  len(res.Order),
	}

	if cfg.Report.Path != "" {
		rep := report.Build(report.Inputs{
			Seed:     seed,
			Map:      cfg.Files.Map,
			Output:   out,
			Namelist: cfg.Files.Namelist,
			Options:  opts,
		}, res, graph, pool)
		if err := report.WriteFile(cfg.Report.Path, rep); err != nil {
			return nil, err
		}
		sum.ReportPath = cfg.Report.Path
		r.logger.Info().Str("path", cfg.Report.Path).Msg("Wrote rename report")
	}

	return sum, nil
}
