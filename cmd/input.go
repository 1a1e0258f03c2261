package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spigell/hh-matcher/internal/profile"
	"go.uber.org/zap"
)

// readRecords loads a JSON object or an array of objects. "-" reads stdin. array
// reports which of the two the input held.
func readRecords(path string, stdin io.Reader) (records []map[string]any, array bool, err error) {
	var data []byte
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(filepath.Clean(path))
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", path, err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, false, fmt.Errorf("%s is empty", path)
	}

	if data[0] == '[' {
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, true, fmt.Errorf("decoding %s: %w", path, err)
		}
		return records, true, nil
	}

	var record map[string]any
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, false, fmt.Errorf("decoding %s: %w", path, err)
	}
	return []map[string]any{record}, false, nil
}

func readRecord(path string, stdin io.Reader) (map[string]any, error) {
	records, _, err := readRecords(path, stdin)
	if err != nil {
		return nil, err
	}
	if len(records) != 1 {
		return nil, fmt.Errorf("%s holds %d records, want exactly one", path, len(records))
	}
	return records[0], nil
}

func decodeCandidates(records []map[string]any, logger *zap.Logger) []*profile.Candidate {
	out := make([]*profile.Candidate, 0, len(records))
	for i, r := range records {
		c, warnings := profile.DecodeCandidate(r)
		logDecodeWarnings(logger, "candidate", i, warnings)
		out = append(out, c)
	}
	return out
}

func decodePositions(records []map[string]any, logger *zap.Logger) []*profile.Position {
	out := make([]*profile.Position, 0, len(records))
	for i, r := range records {
		p, warnings := profile.DecodePosition(r)
		logDecodeWarnings(logger, "position", i, warnings)
		out = append(out, p)
	}
	return out
}

func logDecodeWarnings(logger *zap.Logger, kind string, index int, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	logger.Warn("record decoded with warnings",
		zap.String("kind", kind),
		zap.Int("index", index),
		zap.Strings("warnings", warnings),
	)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
