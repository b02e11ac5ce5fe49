// Package journal persists learning records as append-only JSONL logs.
// Three logs exist: gap patterns, weight suggestions, and significant
// moments. Reload reconstructs aggregate pattern state (last write wins
// per pattern type) and the set of already-suggested types; moments are
// written but never read back.
package journal

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

// #region records

// PatternRecord is one appended snapshot of a gap pattern's aggregate
// state. The log holds every update; readers keep only the latest record
// per pattern type.
type PatternRecord struct {
	Timestamp           string  `json:"timestamp"`
	PatternType         string  `json:"pattern_type"`
	Occurrences         int     `json:"occurrences"`
	Dimension           string  `json:"dimension"`
	Confidence          float64 `json:"confidence"`
	SuggestedAdjustment float64 `json:"suggested_adjustment"`
}

// SuggestionRecord is one emitted weight-adjustment suggestion.
type SuggestionRecord struct {
	Timestamp      string  `json:"timestamp"`
	PatternType    string  `json:"pattern_type"`
	Occurrences    int     `json:"occurrences"`
	Dimension      string  `json:"dimension"`
	Adjustment     float64 `json:"adjustment"`
	Ready          bool    `json:"ready"`
	Rationale      string  `json:"rationale"`
	ProposedChange string  `json:"proposed_change"`
}

// MomentRecord is one raw significant-moment observation.
type MomentRecord struct {
	Timestamp      string `json:"timestamp"`
	Context        string `json:"context"`
	RASEngagement  string `json:"ras_engagement"`
	FeltEngagement string `json:"felt_engagement"`
	GapNoticed     string `json:"gap_noticed"`
	Significance   string `json:"significance"`
}

// #endregion records

// #region journal

const (
	patternsFile    = "gap_patterns.jsonl"
	suggestionsFile = "weight_suggestions.jsonl"
	momentsFile     = "significant_moments.jsonl"
)

// Journal owns the three log files under one directory.
type Journal struct {
	dir string
}

// Open ensures the journal directory exists and returns a Journal over it.
func Open(dir string) (*Journal, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}
	return &Journal{dir: dir}, nil
}

// Dir returns the journal directory.
func (j *Journal) Dir() string {
	return j.dir
}

// AppendPattern appends a pattern snapshot, stamping it if unstamped.
func (j *Journal) AppendPattern(rec PatternRecord) error {
	if rec.Timestamp == "" {
		rec.Timestamp = stamp()
	}
	if err := j.appendLine(patternsFile, rec); err != nil {
		return fmt.Errorf("append pattern: %w", err)
	}
	return nil
}

// AppendSuggestion appends a suggestion record, stamping it if unstamped.
func (j *Journal) AppendSuggestion(rec SuggestionRecord) error {
	if rec.Timestamp == "" {
		rec.Timestamp = stamp()
	}
	if err := j.appendLine(suggestionsFile, rec); err != nil {
		return fmt.Errorf("append suggestion: %w", err)
	}
	return nil
}

// AppendMoment appends a moment record, stamping it if unstamped.
func (j *Journal) AppendMoment(rec MomentRecord) error {
	if rec.Timestamp == "" {
		rec.Timestamp = stamp()
	}
	if err := j.appendLine(momentsFile, rec); err != nil {
		return fmt.Errorf("append moment: %w", err)
	}
	return nil
}

func (j *Journal) appendLine(name string, v any) error {
	f, err := os.OpenFile(filepath.Join(j.dir, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	data, err := json.Marshal(v)
	if err != nil {
		f.Close()
		return err
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func stamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// #endregion journal

// #region load

// LoadResult is the reconstructed aggregate state after a reload.
// Malformed counts the log lines that could not be parsed; corrupt lines
// are skipped, never fatal.
type LoadResult struct {
	Patterns       map[string]PatternRecord
	SuggestedTypes map[string]bool
	Malformed      int
}

// Load reconstructs pattern aggregates and the suggested-type set from the
// logs. Missing files mean a fresh journal, not an error. Context snippets
// are not persisted, so restored patterns carry counts only.
func (j *Journal) Load() (LoadResult, error) {
	res := LoadResult{
		Patterns:       make(map[string]PatternRecord),
		SuggestedTypes: make(map[string]bool),
	}

	if err := j.scanLines(patternsFile, &res.Malformed, func(line []byte) bool {
		var rec PatternRecord
		if json.Unmarshal(line, &rec) != nil || rec.PatternType == "" {
			return false
		}
		res.Patterns[rec.PatternType] = rec
		return true
	}); err != nil {
		return res, err
	}

	if err := j.scanLines(suggestionsFile, &res.Malformed, func(line []byte) bool {
		var rec SuggestionRecord
		if json.Unmarshal(line, &rec) != nil || rec.PatternType == "" {
			return false
		}
		res.SuggestedTypes[rec.PatternType] = true
		return true
	}); err != nil {
		return res, err
	}

	if res.Malformed > 0 {
		log.Warn().
			Str("dir", j.dir).
			Int("malformed", res.Malformed).
			Msg("skipped unparseable journal lines during reload")
	}
	return res, nil
}

func (j *Journal) scanLines(name string, malformed *int, accept func([]byte) bool) error {
	f, err := os.Open(filepath.Join(j.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		if !accept(line) {
			*malformed++
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	return nil
}

// #endregion load
