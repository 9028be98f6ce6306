package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/ProvinceRenamer/internal/config"
)

func TestPrompterDefaults(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("\n\n\n"), &out)

	s, err := p.String("names", "namelist.txt")
	require.NoError(t, err)
	assert.Equal(t, "namelist.txt", s)

	f, err := p.Float("chance", 0.03)
	require.NoError(t, err)
	assert.Equal(t, 0.03, f)

	n, err := p.Int("distance", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.Contains(t, out.String(), "Default: namelist.txt")
	assert.Contains(t, out.String(), "Default: 0.03")
}

func TestPrompterEmptyDefaultShownAsNone(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader(""), &out)

	s, err := p.String("map", "")
	require.NoError(t, err)
	assert.Empty(t, s)
	assert.Contains(t, out.String(), "Default: <NONE>")
}

func TestPrompterRepromptsOnBadInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ask   func(p *prompter) (interface{}, error)
		want  interface{}
		retry string
	}{
		{
			name:  "float",
			input: "lots\n0.5\n",
			ask:   func(p *prompter) (interface{}, error) { return p.Float("chance", 0.03) },
			want:  0.5,
			retry: "Could not convert input to a number",
		},
		{
			name:  "int",
			input: "2.5\nthree\n4\n",
			ask:   func(p *prompter) (interface{}, error) { return p.Int("distance", 2) },
			want:  4,
			retry: "Could not convert input to a number",
		},
		{
			name:  "invalid then end of input falls back to default",
			input: "oops",
			ask:   func(p *prompter) (interface{}, error) { return p.Int("distance", 7) },
			want:  7,
			retry: "Could not convert input to a number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := tt.ask(newPrompter(strings.NewReader(tt.input), &out))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), tt.retry)
		})
	}
}

func TestGuidedWritesConfig(t *testing.T) {
	require.NoError(t, config.Init(""))

	var out bytes.Buffer
	p := newPrompter(strings.NewReader("names.txt\n0.25\n\nworld.map\n"), &out)
	require.NoError(t, guided(p, config.Get()))

	cfg := config.Get()
	assert.Equal(t, "names.txt", cfg.Files.Namelist)
	assert.Equal(t, 0.25, cfg.Renamer.RenameChance)
	assert.Equal(t, 2, cfg.Renamer.MinDistance)
	assert.Equal(t, "world.map", cfg.Files.Map)
}

func TestGuidedRejectsOutOfRangeChance(t *testing.T) {
	require.NoError(t, config.Init(""))

	p := newPrompter(strings.NewReader("\n1.5\n\n\n"), &bytes.Buffer{})
	assert.Error(t, guided(p, config.Get()))
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"debug":   zerolog.DebugLevel,
		"INFO":    zerolog.InfoLevel,
		"warn":    zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "json")
	logger.Info().Str("path", "a.map").Msg("Parsing map")
	assert.Contains(t, buf.String(), `"message":"Parsing map"`)
	assert.Contains(t, buf.String(), `"path":"a.map"`)
}
