package mapio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/mitchelldurbincs/ProvinceRenamer/internal/core"
)

var errEmptyName = errors.New("empty name")

// ParseNamelist reads one candidate per line: the name, then any number of
// requirement tags, separated by tabs. Blank lines are skipped. Names are
// NFC-normalised so that visually identical names compare equal.
func ParseNamelist(r io.Reader, source string) ([]*core.Candidate, error) {
	var out []*core.Candidate
	sc := bufio.NewScanner(r)
	line := 0

	for sc.Scan() {
		line++
		raw := sc.Text()
		if strings.TrimSpace(raw) == "" {
			continue
		}

		parts := strings.Split(raw, "\t")
		name := norm.NFC.String(strings.TrimSpace(parts[0]))
		if name == "" {
			return nil, &core.ParseError{Source: source, Line: line, Record: raw, Err: errEmptyName}
		}

		c, err := core.NewCandidate(name, parts[1:])
		if err != nil {
			return nil, &core.ParseError{Source: source, Line: line, Record: raw, Err: err}
		}
		out = append(out, c)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", source, err)
	}
	return out, nil
}

// LoadNamelist parses the name list file at path.
func LoadNamelist(path string) ([]*core.Candidate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening namelist: %w", err)
	}
	defer f.Close()
	return ParseNamelist(f, filepath.Base(path))
}
