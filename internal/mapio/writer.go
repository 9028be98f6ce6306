package mapio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// WriteMap copies src to dst unchanged, inserting one #landname line per
// assignment as a contiguous block directly before the first #terrain record.
// Assignments are written in ascending province order. If src has no #terrain
// record the block is appended at the end, after a "\n" terminating the last
// line if src does not end with one; that is the only byte added to src.
func WriteMap(dst io.Writer, src io.Reader, assignment map[int]string) error {
	br := bufio.NewReader(src)
	bw := bufio.NewWriter(dst)
	written := len(assignment) == 0

	for {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("reading map: %w", err)
		}
		if line == "" && errors.Is(err, io.EOF) {
			break
		}

		if !written && isTerrainRecord(line) {
			if werr := writeLandnames(bw, assignment, lineEnding(line)); werr != nil {
				return werr
			}
			written = true
		}
		if _, werr := bw.WriteString(line); werr != nil {
			return fmt.Errorf("writing map: %w", werr)
		}
		if errors.Is(err, io.EOF) {
			if !written && !strings.HasSuffix(line, "\n") {
				if _, werr := bw.WriteString("\n"); werr != nil {
					return fmt.Errorf("writing map: %w", werr)
				}
			}
			break
		}
	}

	if !written {
		if err := writeLandnames(bw, assignment, "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func isTerrainRecord(line string) bool {
	fields := strings.Fields(line)
	return len(fields) > 0 && fields[0] == terrainCommand
}

func lineEnding(line string) string {
	if strings.HasSuffix(line, "\r\n") {
		return "\r\n"
	}
	return "\n"
}

// LandnameLine formats one rename record.
func LandnameLine(province int, name string) string {
	return fmt.Sprintf("%s %d \"%s\"", landnameCommand, province, name)
}

func writeLandnames(w *bufio.Writer, assignment map[int]string, eol string) error {
	ids := make([]int, 0, len(assignment))
	for id := range assignment {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if _, err := w.WriteString(LandnameLine(id, assignment[id]) + eol); err != nil {
			return fmt.Errorf("writing map: %w", err)
		}
	}
	return nil
}

// WriteMapFile merges the assignment into the map at srcPath and writes the
// result to dstPath. srcPath and dstPath must differ.
func WriteMapFile(srcPath, dstPath string, assignment map[int]string) error {
	if srcPath == dstPath {
		return fmt.Errorf("refusing to overwrite input map %s", srcPath)
	}
	in, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("opening map: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("creating output map: %w", err)
	}
	if err := WriteMap(out, in, assignment); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
