// Package counters loads performance-counter snapshots from disk.
//
// Two layouts are accepted:
//   - a single JSON document ({"metrics": {...}}), usually a .json file;
//   - a JSONL history where every line is one snapshot; the last non-empty
//     line is the current snapshot and earlier lines are ignored.
package counters

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/oxygen/api-performance-counters-ui/src/logging"
	"github.com/oxygen/api-performance-counters-ui/src/types"
)

// DefaultFile is used by the CLI and viewer when no path is given.
const DefaultFile = "performance_counters.json"

var log = logging.For("counters")

// maxLineBytes bounds a single JSONL snapshot line.
const maxLineBytes = 16 * 1024 * 1024

// Load reads the snapshot stored at path.
func Load(path string) (*types.PerformanceCounters, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if strings.EqualFold(filepath.Ext(path), ".jsonl") {
		pc, err := ReadLatest(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return pc, nil
	}
	b, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	pc, err := types.Decode(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debugf("loaded %d functions from %s", pc.Len(), path)
	return pc, nil
}

// ReadLatest scans a JSONL stream and decodes its last non-empty line.
func ReadLatest(r io.Reader) (*types.PerformanceCounters, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	var last []byte
	lines := 0
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		last = append(last[:0], line...)
		lines++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if lines == 0 {
		return nil, fmt.Errorf("%w: no snapshot lines", types.ErrInvalidPayload)
	}
	pc, err := types.Decode(last)
	if err != nil {
		return nil, err
	}
	log.Debugf("using snapshot %d of %d (%d functions)", lines, lines, pc.Len())
	return pc, nil
}

// ReadHistory decodes the last max snapshots of a JSONL stream, oldest first.
// Lines that do not decode are skipped and reported as skipped. max <= 0 keeps all.
func ReadHistory(r io.Reader, max int) (snaps []*types.PerformanceCounters, skipped int, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		pc, derr := types.Decode(line)
		if derr != nil {
			log.Warnf("line %d: %v", lineNo, derr)
			skipped++
			continue
		}
		snaps = append(snaps, pc)
		if max > 0 && len(snaps) > max {
			snaps = snaps[1:]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, skipped, err
	}
	return snaps, skipped, nil
}
