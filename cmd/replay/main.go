package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/danielpatrickdp/living-ras/go-session/internal/archive"
	"github.com/danielpatrickdp/living-ras/go-session/internal/config"
	"github.com/danielpatrickdp/living-ras/go-session/internal/replay"
	"github.com/danielpatrickdp/living-ras/go-session/internal/session"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to ras_session.db (DB mode)")
	fixturePath := flag.String("fixture", "", "path to transcript JSON (fixture mode)")
	sessionID := flag.String("session", "", "archived session to replay (default: most recent)")
	flag.Parse()

	if (*dbPath == "" && *fixturePath == "") || (*dbPath != "" && *fixturePath != "") {
		fmt.Fprintln(os.Stderr, "usage: replay --db path/to/ras_session.db [--session id]")
		fmt.Fprintln(os.Stderr, "       replay --fixture path/to/transcript.json")
		os.Exit(2)
	}

	// Keep the comparison table clean
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	var exitCode int
	if *fixturePath != "" {
		exitCode = runFixtureMode(*fixturePath)
	} else {
		exitCode = runDBMode(*dbPath, *sessionID)
	}
	os.Exit(exitCode)
}

// #endregion main

// #region replay-session

// newReplaySession builds a session backed by a throwaway journal so a
// replay never contaminates the live learning store.
func newReplaySession() (*session.Session, func(), error) {
	dir, err := os.MkdirTemp("", "ras-replay-")
	if err != nil {
		return nil, nil, fmt.Errorf("temp journal: %w", err)
	}
	s, err := session.New(config.Config{JournalDir: dir, SuggestionThreshold: 2})
	if err != nil {
		os.RemoveAll(dir)
		return nil, nil, err
	}
	cleanup := func() {
		s.Close()
		os.RemoveAll(dir)
	}
	return s, cleanup, nil
}

// #endregion replay-session

// #region modes

func runFixtureMode(path string) int {
	f, err := replay.LoadFixture(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		return 2
	}
	if f.Description != "" {
		fmt.Printf("Replaying: %s\n\n", f.Description)
	}
	return replayTranscript(f)
}

func runDBMode(dbPath, sessionID string) int {
	arch, err := archive.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		return 2
	}
	defer arch.Close()

	if sessionID == "" {
		sessions, err := arch.Sessions(1)
		if err != nil {
			fmt.Fprintf(os.Stderr, "list sessions: %v\n", err)
			return 2
		}
		if len(sessions) == 0 {
			fmt.Fprintln(os.Stderr, "no sessions found")
			return 2
		}
		sessionID = sessions[0].SessionID
	}

	rows, err := arch.Turns(sessionID, 1000)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load turns: %v\n", err)
		return 2
	}
	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "no turns found for session")
		return 2
	}

	f, err := replay.FromArchive(rows)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rebuild transcript: %v\n", err)
		return 2
	}

	fmt.Printf("Replaying session %s (%d turns)\n\n", shortID(sessionID), len(f.Turns))
	return replayTranscript(f)
}

func replayTranscript(f *replay.Fixture) int {
	s, cleanup, err := newReplaySession()
	if err != nil {
		fmt.Fprintf(os.Stderr, "start session: %v\n", err)
		return 2
	}
	defer cleanup()

	return printComparison(replay.Run(s, f))
}

// #endregion modes

// #region output

// printComparison outputs a comparison table and returns the exit code.
func printComparison(results []replay.Result) int {
	fmt.Printf("%-6s| %-15s| %-15s| %-8s| %s\n", "Turn", "Expected", "Computed", "Pull", "Match")
	fmt.Printf("%-6s+%-16s+%-16s+%-9s+%s\n",
		"------", "----------------", "----------------", "---------", "------")

	for _, r := range results {
		expected := r.ExpectedLevel
		if expected == "" {
			expected = "—"
		}
		match := "DIFF"
		if r.Match {
			match = "OK"
		}
		fmt.Printf("%-6d| %-15s| %-15s| %-8.3f| %s\n", r.Turn, expected, r.ComputedLevel, r.Pull, match)
	}

	sum := replay.Summarize(results)
	fmt.Printf("\nSummary: %d total, %d match, %d diverge, %d gaps noticed\n",
		sum.TotalTurns, sum.Matches, sum.Divergences, sum.Gaps)

	if sum.Divergences > 0 {
		return 1
	}
	return 0
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// #endregion output
