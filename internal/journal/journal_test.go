package journal

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// #region append-load

func TestAppendAndLoad(t *testing.T) {
	j, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}

	records := []PatternRecord{
		{PatternType: "permission_trust_signal", Occurrences: 1, Dimension: "harmony", Confidence: 1.0 / 3, SuggestedAdjustment: 0},
		{PatternType: "visual_confirmation", Occurrences: 1, Dimension: "autonomy", Confidence: 1.0 / 3, SuggestedAdjustment: 0},
		{PatternType: "permission_trust_signal", Occurrences: 2, Dimension: "harmony", Confidence: 2.0 / 3, SuggestedAdjustment: 0.2},
	}
	for _, rec := range records {
		if err := j.AppendPattern(rec); err != nil {
			t.Fatalf("append pattern: %v", err)
		}
	}
	if err := j.AppendSuggestion(SuggestionRecord{PatternType: "permission_trust_signal", Occurrences: 2, Dimension: "harmony", Adjustment: 0.2, Ready: true}); err != nil {
		t.Fatalf("append suggestion: %v", err)
	}

	res, err := j.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Malformed != 0 {
		t.Errorf("malformed: got %d, want 0", res.Malformed)
	}
	if len(res.Patterns) != 2 {
		t.Fatalf("patterns: got %d, want 2", len(res.Patterns))
	}

	// Last write wins per pattern type.
	got := res.Patterns["permission_trust_signal"]
	if got.Occurrences != 2 {
		t.Errorf("occurrences: got %d, want 2", got.Occurrences)
	}
	if got.SuggestedAdjustment != 0.2 {
		t.Errorf("adjustment: got %v, want 0.2", got.SuggestedAdjustment)
	}
	if !res.SuggestedTypes["permission_trust_signal"] {
		t.Error("suggested type not reloaded")
	}
}

func TestLoadSkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	lines := `{"timestamp":"2026-08-20T10:00:00Z","pattern_type":"goal_satisfaction","occurrences":1,"dimension":"aspiration","confidence":0.33,"suggested_adjustment":0}
{not json at all
{"timestamp":"2026-08-20T10:01:00Z","occurrences":3}

{"timestamp":"2026-08-20T10:02:00Z","pattern_type":"goal_satisfaction","occurrences":2,"dimension":"aspiration","confidence":0.67,"suggested_adjustment":0.2}
`
	if err := os.WriteFile(filepath.Join(dir, "gap_patterns.jsonl"), []byte(lines), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	j, err := Open(dir)
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	res, err := j.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	// One unparseable line plus one missing its pattern_type; the blank
	// line is not corruption.
	if res.Malformed != 2 {
		t.Errorf("malformed: got %d, want 2", res.Malformed)
	}
	if got := res.Patterns["goal_satisfaction"].Occurrences; got != 2 {
		t.Errorf("occurrences: got %d, want 2", got)
	}
}

func TestLoadFreshJournal(t *testing.T) {
	j, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	res, err := j.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(res.Patterns) != 0 || len(res.SuggestedTypes) != 0 || res.Malformed != 0 {
		t.Errorf("fresh journal not empty: %+v", res)
	}
}

func TestMomentsAreWriteOnly(t *testing.T) {
	j, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	rec := MomentRecord{
		Context:        "Conversation: can I trust you with this?",
		RASEngagement:  "THOUGHTFUL",
		FeltEngagement: "FULL_PRESENCE",
		GapNoticed:     "computed THOUGHTFUL, but felt FULL_PRESENCE",
		Significance:   "high",
	}
	if err := j.AppendMoment(rec); err != nil {
		t.Fatalf("append moment: %v", err)
	}

	res, err := j.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(res.Patterns) != 0 || len(res.SuggestedTypes) != 0 {
		t.Errorf("moments leaked into reload: %+v", res)
	}

	data, err := os.ReadFile(filepath.Join(j.Dir(), "significant_moments.jsonl"))
	if err != nil {
		t.Fatalf("read moment log: %v", err)
	}
	var onDisk MomentRecord
	if err := json.Unmarshal(data[:len(data)-1], &onDisk); err != nil {
		t.Fatalf("unmarshal moment: %v", err)
	}
	if onDisk.Significance != "high" {
		t.Errorf("significance: got %q, want %q", onDisk.Significance, "high")
	}
}

func TestAppendStampsTimestamp(t *testing.T) {
	j, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	if err := j.AppendPattern(PatternRecord{PatternType: "movement_confidence", Occurrences: 1, Dimension: "autonomy"}); err != nil {
		t.Fatalf("append pattern: %v", err)
	}

	res, err := j.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	ts := res.Patterns["movement_confidence"].Timestamp
	if ts == "" {
		t.Fatal("timestamp not stamped")
	}
	if _, err := time.Parse(time.RFC3339, ts); err != nil {
		t.Errorf("timestamp %q not RFC3339: %v", ts, err)
	}
}

// #endregion append-load
