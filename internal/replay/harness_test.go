package replay

import (
	"path/filepath"
	"testing"

	"github.com/danielpatrickdp/living-ras/go-session/internal/archive"
	"github.com/danielpatrickdp/living-ras/go-session/internal/config"
	"github.com/danielpatrickdp/living-ras/go-session/internal/session"
)

const (
	plainMsg   = "hello there friend"
	exploreMsg = "I want to explore and discover something new together"
)

// helper: fresh session backed by a throwaway journal.
func newReplaySession(t *testing.T) *session.Session {
	t.Helper()
	s, err := session.New(config.Config{JournalDir: t.TempDir(), SuggestionThreshold: 2})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// TestRunBaselineFixture replays the committed transcript and expects every
// turn to match. This is the drift regression test: if the felt weights or
// keyword sets change, this catches it.
func TestRunBaselineFixture(t *testing.T) {
	f, err := LoadFixture(filepath.Join("testdata", "session.json"))
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}

	s := newReplaySession(t)
	results := Run(s, f)

	if len(results) != len(f.Turns) {
		t.Fatalf("expected %d results, got %d", len(f.Turns), len(results))
	}
	for _, r := range results {
		if !r.Match {
			t.Errorf("turn %d (%q): computed %s, expected %s",
				r.Turn, r.Message, r.ComputedLevel, r.ExpectedLevel)
		}
	}
	if !results[2].GapDetected {
		t.Error("expected the third turn to notice a gap")
	}

	sum := Summarize(results)
	if sum.TotalTurns != 3 || sum.Matches != 3 || sum.Divergences != 0 || sum.Gaps != 1 {
		t.Errorf("Summarize() = %+v, want 3 turns, 3 matches, 0 divergences, 1 gap", sum)
	}
}

// TestRunFlagsDivergence checks that a wrong expectation is reported as a
// divergence, that level names normalize case, and that a turn without an
// expectation counts as a match.
func TestRunFlagsDivergence(t *testing.T) {
	f := &Fixture{
		Description: "deliberate mismatch",
		Turns: []FixtureTurn{
			{Message: plainMsg, ExpectedLevel: "full_presence"},
			{Message: exploreMsg},
		},
	}

	s := newReplaySession(t)
	results := Run(s, f)

	if results[0].Match {
		t.Error("expected the first turn to diverge")
	}
	if results[0].ExpectedLevel != "FULL_PRESENCE" {
		t.Errorf("expected level = %q, want normalized FULL_PRESENCE", results[0].ExpectedLevel)
	}
	if results[0].ComputedLevel != "HELPFUL" {
		t.Errorf("computed level = %q, want HELPFUL", results[0].ComputedLevel)
	}
	if !results[1].Match {
		t.Error("a turn without an expectation should count as a match")
	}
	if results[1].ExpectedLevel != "" {
		t.Errorf("unchecked turn expected level = %q, want empty", results[1].ExpectedLevel)
	}

	sum := Summarize(results)
	if sum.Matches != 1 || sum.Divergences != 1 {
		t.Errorf("Summarize() = %+v, want 1 match and 1 divergence", sum)
	}
}

// TestReplayArchivedSession records a session into the archive, rebuilds a
// transcript from the archived rows, and replays it through a fresh session.
// The pipeline is deterministic, so every replayed turn must match.
func TestReplayArchivedSession(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "archive.db")

	rec, err := session.New(config.Config{
		JournalDir:          t.TempDir(),
		DBPath:              dbPath,
		SuggestionThreshold: 2,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	rec.ProcessTurn(session.TurnInput{Message: plainMsg})
	rec.ProcessTurn(session.TurnInput{Message: exploreMsg, Identity: "builder of quiet tools"})
	if err := rec.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	arch, err := archive.Open(dbPath)
	if err != nil {
		t.Fatalf("Open archive: %v", err)
	}
	sessions, err := arch.Sessions(1)
	if err != nil {
		t.Fatalf("Sessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected 1 archived session, got %d", len(sessions))
	}
	rows, err := arch.Turns(sessions[0].SessionID, 100)
	if err != nil {
		t.Fatalf("Turns: %v", err)
	}
	if err := arch.Close(); err != nil {
		t.Fatalf("Close archive: %v", err)
	}

	f, err := FromArchive(rows)
	if err != nil {
		t.Fatalf("FromArchive: %v", err)
	}
	if len(f.Turns) != 2 {
		t.Fatalf("expected 2 rebuilt turns, got %d", len(f.Turns))
	}
	if f.Turns[1].Identity != "builder of quiet tools" {
		t.Errorf("identity not carried from archive: %q", f.Turns[1].Identity)
	}

	fresh := newReplaySession(t)
	sum := Summarize(Run(fresh, f))
	if sum.TotalTurns != 2 || sum.Divergences != 0 {
		t.Errorf("Summarize() = %+v, want 2 turns and no divergences", sum)
	}
}
