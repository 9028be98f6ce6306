package renamer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/ProvinceRenamer/internal/core"
	"github.com/mitchelldurbincs/ProvinceRenamer/internal/events"
)

const (
	DefaultRenameChance = 0.03
	DefaultMinDistance  = 2
)

// Options controls a renaming pass.
type Options struct {
	// RenameChance is the probability in [0,1] that a province is selected.
	RenameChance float64
	// MinDistance is the exclusion radius: two renamed provinces must be more
	// than MinDistance edges apart.
	MinDistance int
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{RenameChance: DefaultRenameChance, MinDistance: DefaultMinDistance}
}

// Validate checks the option ranges.
func (o Options) Validate() error {
	if math.IsNaN(o.RenameChance) || o.RenameChance < 0 || o.RenameChance > 1 {
		return fmt.Errorf("rename chance must be between 0 and 1, got %v", o.RenameChance)
	}
	if o.MinDistance < 0 {
		return fmt.Errorf("min distance must be non-negative, got %d", o.MinDistance)
	}
	return nil
}

// Graph is the read side of the province graph the engine needs.
type Graph interface {
	Provinces() []int
	Terrain(id int) core.Mask
	NeighbourTerrain(id int) []core.Mask
	Distance(a, b int) (int, error)
}

// Assignment maps a province id to its new name.
type Assignment map[int]string

// Provinces returns the renamed province ids in ascending order.
func (a Assignment) Provinces() []int {
	ids := make([]int, 0, len(a))
	for id := range a {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Result is the outcome of one pass.
type Result struct {
	RunID      string
	Assignment Assignment
	// Outcomes holds the terminal state of every province considered.
	Outcomes map[int]core.Outcome
	// Order is the sequence in which provinces were considered.
	Order []int
}

// Count returns how many provinces ended in the given outcome.
func (r *Result) Count(o core.Outcome) int {
	n := 0
	for _, have := range r.Outcomes {
		if have == o {
			n++
		}
	}
	return n
}

// Engine walks a province graph once and assigns names from a pool.
type Engine struct {
	graph     Graph
	pool      *Pool
	opts      Options
	rng       *rand.Rand
	publisher events.Publisher
	logger    zerolog.Logger
	runID     string
}

// Option configures an Engine.
type Option func(*Engine)

// WithPublisher sends province outcome events to p.
func WithPublisher(p events.Publisher) Option {
	return func(e *Engine) { e.publisher = p }
}

// WithLogger replaces the component logger.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithRunID fixes the run id stamped on events instead of a random one.
func WithRunID(id string) Option {
	return func(e *Engine) { e.runID = id }
}

// NewEngine creates an engine. A nil rng is replaced by a time-seeded source.
func NewEngine(graph Graph, pool *Pool, opts Options, rng *rand.Rand, options ...Option) (*Engine, error) {
	if graph == nil {
		return nil, errors.New("renamer: nil graph")
	}
	if pool == nil {
		return nil, errors.New("renamer: nil pool")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	e := &Engine{
		graph:     graph,
		pool:      pool,
		opts:      opts,
		rng:       rng,
		publisher: events.NopPublisher{},
		logger:    log.With().Str("component", "renamer").Logger(),
	}
	for _, o := range options {
		o(e)
	}
	if e.runID == "" {
		e.runID = uuid.NewString()
	}
	return e, nil
}

func (e *Engine) RunID() string { return e.runID }

// Pool returns the engine's candidate pool.
func (e *Engine) Pool() *Pool { return e.pool }

// Run performs a single forward pass over the graph's provinces. Earlier
// decisions are never revisited. The context is checked between provinces;
// on cancellation the partial result is returned with the context's error.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	provinces := e.graph.Provinces()
	res := &Result{
		RunID:      e.runID,
		Assignment: make(Assignment),
		Outcomes:   make(map[int]core.Outcome, len(provinces)),
		Order:      make([]int, 0, len(provinces)),
	}
	renamed := make([]int, 0)

	e.publisher.Publish(events.NewRunStartedEvent(e.runID, len(provinces), e.pool.Len(), e.opts.RenameChance, e.opts.MinDistance))

	for _, p := range provinces {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		res.Order = append(res.Order, p)

		ev := e.consider(p, renamed)
		res.Outcomes[p] = ev.Outcome
		if ev.Outcome == core.Renamed {
			res.Assignment[p] = ev.Name
			renamed = append(renamed, p)
		}
		e.publisher.Publish(ev)
	}

	e.publisher.Publish(events.NewRunFinishedEvent(e.runID, len(res.Assignment), e.pool.Len(), time.Since(start)))
	return res, nil
}

// consider moves one province from Unconsidered to a terminal outcome.
func (e *Engine) consider(p int, renamed []int) *events.ProvinceEvent {
	terrain := e.graph.Terrain(p)

	if e.rng.Float64() >= e.opts.RenameChance {
		return events.NewProvinceEvent(e.runID, p, core.RejectedByChance, terrain)
	}

	for _, other := range renamed {
		d, err := e.graph.Distance(other, p)
		switch {
		case errors.Is(err, core.ErrNoPath), errors.Is(err, core.ErrUnknownProvince):
			// Unreachable provinces are infinitely far apart.
			e.logger.Debug().Err(err).Int("province", p).Int("renamed", other).Msg("No path, not a spacing conflict")
			continue
		case err != nil:
			e.logger.Error().Err(err).Int("province", p).Int("renamed", other).Msg("Distance lookup failed")
			continue
		}
		if d <= e.opts.MinDistance {
			ev := events.NewProvinceEvent(e.runID, p, core.RejectedBySpacing, terrain)
			ev.ConflictWith = other
			ev.Distance = d
			return ev
		}
	}

	names := e.pool.Applicable(terrain, e.graph.NeighbourTerrain(p))
	if len(names) == 0 {
		return events.NewProvinceEvent(e.runID, p, core.NoCandidates, terrain)
	}

	pick := names[e.rng.Intn(len(names))]
	if !e.pool.Take(pick) {
		// Applicable only returns pooled candidates, so this means the pool
		// was modified outside the engine.
		e.logger.Error().Str("name", pick.Name).Int("province", p).Msg("Picked candidate is no longer pooled")
		return events.NewProvinceEvent(e.runID, p, core.NoCandidates, terrain)
	}

	ev := events.NewProvinceEvent(e.runID, p, core.Renamed, terrain)
	ev.Name = pick.Name
	ev.Applicable = len(names)
	return ev
}
