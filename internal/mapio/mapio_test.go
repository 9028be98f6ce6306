package mapio

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/ProvinceRenamer/internal/core"
)

const sampleMap = `-- Example map
#dom2title Test Isles
#imagefile isles.tga
#mapsize 400 300

#terrain 1 4
#terrain 2 0
#terrain 3 128
#neighbour 1 2
#neighbour 2 3
#neighbourspec 1 3 4
#neighbour 3 1
`

func TestParseMap(t *testing.T) {
	data, err := ParseMap(strings.NewReader(sampleMap), "isles.map")
	require.NoError(t, err)

	assert.Equal(t, map[int]core.Mask{1: core.MaskOf(core.Sea), 2: 0, 3: core.MaskOf(core.Forest)}, data.Terrain)
	assert.Equal(t, []core.Edge{{A: 1, B: 2}, {A: 2, B: 3}, {A: 3, B: 1}}, data.Edges)
	assert.Equal(t, 12, data.Lines)

	g := data.Graph()
	assert.Equal(t, []int{1, 2, 3}, g.Provinces())
	d, err := g.Distance(1, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, d)
}

func TestParseMapMalformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"missing argument", "#terrain 5"},
		{"non numeric id", "#terrain five 4"},
		{"negative mask", "#terrain 5 -4"},
		{"non numeric neighbour", "#neighbour 1 x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := "#terrain 1 0\n" + tt.line + "\n"
			_, err := ParseMap(strings.NewReader(input), "bad.map")
			require.Error(t, err)

			var parseErr *core.ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, 2, parseErr.Line)
			assert.Equal(t, tt.line, parseErr.Record)
			assert.Equal(t, "bad.map", parseErr.Source)
			assert.True(t, errors.Is(err, core.ErrMalformedRecord))
		})
	}
}

func TestParseMapTrailingComment(t *testing.T) {
	data, err := ParseMap(strings.NewReader("#terrain 7 2048 -- deep\n#neighbour 7 8 -- strait\n"), "")
	require.NoError(t, err)
	assert.Equal(t, core.MaskOf(core.DeepSea), data.Terrain[7])
	assert.Equal(t, []core.Edge{{A: 7, B: 8}}, data.Edges)
}

func TestParseNamelist(t *testing.T) {
	input := "Whale Road\tsea\n\nElderwood\tforest\tsmall\tlarge\r\nGreyfield\n  \nHeartmoor\tInland \tplains\n"
	candidates, err := ParseNamelist(strings.NewReader(input), "names.txt")
	require.NoError(t, err)
	require.Len(t, candidates, 4)

	assert.Equal(t, "Whale Road", candidates[0].Name)
	assert.Equal(t, core.MaskOf(core.Sea), candidates[0].Requirement.Terrain)

	assert.Equal(t, "Elderwood", candidates[1].Name)
	assert.Equal(t, core.MaskOf(core.Forest), candidates[1].Requirement.Terrain)
	assert.Equal(t, core.MaskOf(core.Small, core.Large), candidates[1].Requirement.Modifiers)

	assert.Equal(t, "Greyfield", candidates[2].Name)
	assert.Equal(t, core.Requirement{}, candidates[2].Requirement)

	assert.True(t, candidates[3].Requirement.HasSpecial(core.Inland))
}

func TestParseNamelistNormalisesNames(t *testing.T) {
	// "Å" written as A + combining ring
	candidates, err := ParseNamelist(strings.NewReader("A\u030asgard\n"), "")
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "\u00c5sgard", candidates[0].Name)
}

func TestParseNamelistErrors(t *testing.T) {
	t.Run("unknown tag", func(t *testing.T) {
		_, err := ParseNamelist(strings.NewReader("Good\tsea\nBad\tlava\n"), "names.txt")
		require.Error(t, err)

		var parseErr *core.ParseError
		require.True(t, errors.As(err, &parseErr))
		assert.Equal(t, 2, parseErr.Line)

		var reqErr *core.InvalidRequirementError
		require.True(t, errors.As(err, &reqErr))
		assert.Equal(t, "Bad", reqErr.Candidate)
		assert.Equal(t, "lava", reqErr.Tag)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := ParseNamelist(strings.NewReader("\tsea\n"), "names.txt")
		require.Error(t, err)
		assert.True(t, errors.Is(err, core.ErrMalformedRecord))
	})
}

func TestWriteMap(t *testing.T) {
	var out bytes.Buffer
	err := WriteMap(&out, strings.NewReader(sampleMap), map[int]string{3: "Elderwood", 1: "Whale Road"})
	require.NoError(t, err)

	want := strings.Replace(sampleMap, "#terrain 1 4\n",
		"#landname 1 \"Whale Road\"\n#landname 3 \"Elderwood\"\n#terrain 1 4\n", 1)
	assert.Equal(t, want, out.String())
}

func TestWriteMapPreservesBytes(t *testing.T) {
	src := "#dom2title X\r\n\t#terrain 1 0\r\n#terrain 2 4\r\nlast line without newline"

	var out bytes.Buffer
	require.NoError(t, WriteMap(&out, strings.NewReader(src), map[int]string{2: "Bay"}))
	assert.Equal(t, "#dom2title X\r\n#landname 2 \"Bay\"\r\n\t#terrain 1 0\r\n#terrain 2 4\r\nlast line without newline", out.String())

	out.Reset()
	require.NoError(t, WriteMap(&out, strings.NewReader(src), nil))
	assert.Equal(t, src, out.String(), "empty assignment copies input unchanged")
}

func TestWriteMapWithoutTerrain(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, WriteMap(&out, strings.NewReader("#dom2title X"), map[int]string{4: "Fen"}))
	assert.Equal(t, "#dom2title X\n#landname 4 \"Fen\"\n", out.String())

	out.Reset()
	require.NoError(t, WriteMap(&out, strings.NewReader("#dom2title X\n"), map[int]string{4: "Fen"}))
	assert.Equal(t, "#dom2title X\n#landname 4 \"Fen\"\n", out.String(), "no newline added when the input already ends with one")
}

func TestEditedPath(t *testing.T) {
	assert.Equal(t, "maps/world_edit.map", EditedPath("maps/world.map", "_edit"))
	assert.Equal(t, "world_renamed", EditedPath("world", "_renamed"))
}

func TestFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	mapPath := filepath.Join(dir, "isles.map")
	namesPath := filepath.Join(dir, "names.txt")
	require.NoError(t, os.WriteFile(mapPath, []byte(sampleMap), 0644))
	require.NoError(t, os.WriteFile(namesPath, []byte("Whale Road\tsea\n"), 0644))

	data, err := LoadMap(mapPath)
	require.NoError(t, err)
	assert.Len(t, data.Terrain, 3)

	names, err := LoadNamelist(namesPath)
	require.NoError(t, err)
	require.Len(t, names, 1)

	outPath := EditedPath(mapPath, "_edit")
	require.NoError(t, WriteMapFile(mapPath, outPath, map[int]string{1: "Whale Road"}))
	written, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(written), "#landname 1 \"Whale Road\"\n#terrain 1 4\n")

	assert.Error(t, WriteMapFile(mapPath, mapPath, nil), "input is never overwritten")

	_, err = LoadMap(filepath.Join(dir, "missing.map"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
