// Package report writes a YAML summary of a renaming run.
package report

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mitchelldurbincs/ProvinceRenamer/internal/core"
	"github.com/mitchelldurbincs/ProvinceRenamer/internal/renamer"
)

// Report is the serialised form of one run.
type Report struct {
	RunID       string         `yaml:"run_id"`
	GeneratedAt time.Time      `yaml:"generated_at"`
	Seed        int64          `yaml:"seed"`
	Map         string         `yaml:"map"`
	Output      string         `yaml:"output"`
	Namelist    string         `yaml:"namelist"`
	Options     Options        `yaml:"options"`
	Provinces   int            `yaml:"provinces"`
	Outcomes    map[string]int `yaml:"outcomes"`
	Renames     []Rename       `yaml:"renames"`
	Unused      []string       `yaml:"unused_names,omitempty"`
	Distances   int            `yaml:"cached_distances"`
}

type Options struct {
	RenameChance float64 `yaml:"rename_chance"`
	MinDistance  int     `yaml:"min_distance"`
}

type Rename struct {
	Province int    `yaml:"province"`
	Name     string `yaml:"name"`
	Terrain  string `yaml:"terrain"`
}

// Inputs describes where a run read from and wrote to.
type Inputs struct {
	Seed     int64
	Map      string
	Output   string
	Namelist string
	Options  renamer.Options
}

// Build assembles a report from an engine result.
func Build(in Inputs, res *renamer.Result, g *core.Graph, pool *renamer.Pool) *Report {
	r := &Report{
		RunID:       res.RunID,
		GeneratedAt: time.Now().UTC(),
		Seed:        in.Seed,
		Map:         in.Map,
		Output:      in.Output,
		Namelist:    in.Namelist,
		Options: Options{
			RenameChance: in.Options.RenameChance,
			MinDistance:  in.Options.MinDistance,
		},
		Provinces: len(res.Order),
		Outcomes:  make(map[string]int),
		Unused:    pool.Remaining(),
		Distances: g.Cache().Len(),
	}
	for _, o := range core.Outcomes() {
		r.Outcomes[o.String()] = res.Count(o)
	}
	for _, id := range res.Assignment.Provinces() {
		r.Renames = append(r.Renames, Rename{
			Province: id,
			Name:     res.Assignment[id],
			Terrain:  g.Terrain(id).String(),
		})
	}
	return r
}

// Write encodes the report as YAML.
func Write(w io.Writer, r *Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return enc.Close()
}

// WriteFile writes the report to path.
func WriteFile(path string, r *Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	if err := Write(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
