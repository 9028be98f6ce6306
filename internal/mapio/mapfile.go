// Package mapio reads and writes the line-oriented Dominions map format and
// the tab-separated name list consumed by the renamer.
package mapio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchelldurbincs/ProvinceRenamer/internal/core"
)

const (
	terrainCommand   = "#terrain"
	neighbourCommand = "#neighbour"
	landnameCommand  = "#landname"
)

// MapData is the graph-relevant content of a map file.
type MapData struct {
	Terrain map[int]core.Mask
	Edges   []core.Edge
	Lines   int
}

// Graph builds the province graph from the parsed records.
func (m *MapData) Graph() *core.Graph {
	return core.NewGraph(m.Terrain, m.Edges)
}

// ParseMap reads #terrain and #neighbour records. Every other line is
// ignored. A record whose arguments are not two non-negative integers fails
// the whole parse with a *core.ParseError.
func ParseMap(r io.Reader, source string) (*MapData, error) {
	data := &MapData{Terrain: make(map[int]core.Mask)}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	for sc.Scan() {
		data.Lines++
		line := sc.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case terrainCommand:
			id, mask, err := twoInts(fields)
			if err != nil {
				return nil, &core.ParseError{Source: source, Line: data.Lines, Record: line, Err: err}
			}
			data.Terrain[int(id)] = core.Mask(mask)
		case neighbourCommand:
			a, b, err := twoInts(fields)
			if err != nil {
				return nil, &core.ParseError{Source: source, Line: data.Lines, Record: line, Err: err}
			}
			data.Edges = append(data.Edges, core.Edge{A: int(a), B: int(b)})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", source, err)
	}
	return data, nil
}

var errArgs = errors.New("expected two non-negative integer arguments")

// twoInts parses the two arguments of a record. Anything after them is a
// trailing comment and ignored.
func twoInts(fields []string) (uint64, uint64, error) {
	if len(fields) < 3 {
		return 0, 0, errArgs
	}
	a, err := strconv.ParseUint(fields[1], 10, 63)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", errArgs, err)
	}
	b, err := strconv.ParseUint(fields[2], 10, 63)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", errArgs, err)
	}
	return a, b, nil
}

// LoadMap parses the map file at path.
func LoadMap(path string) (*MapData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening map: %w", err)
	}
	defer f.Close()
	return ParseMap(f, filepath.Base(path))
}

// EditedPath derives the output path by inserting suffix before the
// extension: "world.map" becomes "world_edit.map".
func EditedPath(path, suffix string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix + ext
}
