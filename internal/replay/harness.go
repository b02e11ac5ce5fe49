package replay

import (
	"github.com/danielpatrickdp/living-ras/go-session/internal/felt"
	"github.com/danielpatrickdp/living-ras/go-session/internal/session"
)

// #region types

// Result captures the outcome of replaying one turn.
type Result struct {
	Turn          int
	Message       string
	ExpectedLevel string
	ComputedLevel string
	Pull          float64
	Match         bool
	GapDetected   bool
	ResponseKind  string
}

// Summary provides aggregate stats from a replay run.
type Summary struct {
	TotalTurns  int
	Matches     int
	Divergences int
	Gaps        int
}

// #endregion types

// #region run

// Run feeds every fixture turn through the session in order and compares
// the computed level against the expectation. Turns without an expected
// level replay unchecked and always count as matches.
func Run(s *session.Session, f *Fixture) []Result {
	results := make([]Result, 0, len(f.Turns))

	for i, turn := range f.Turns {
		rec := s.ProcessTurn(turn.ToInput())

		expected := turn.ExpectedLevel
		if lvl, ok := felt.ParseLevel(expected); ok {
			expected = lvl.String()
		}

		results = append(results, Result{
			Turn:          i + 1,
			Message:       turn.Message,
			ExpectedLevel: expected,
			ComputedLevel: rec.Reflection.EngagementLevel,
			Pull:          rec.Reflection.EngagementPull,
			Match:         expected == "" || expected == rec.Reflection.EngagementLevel,
			GapDetected:   rec.Outcome.GapDetected,
			ResponseKind:  rec.Guidance.ResponseKind,
		})
	}

	return results
}

// Summarize computes aggregate stats from replay results.
func Summarize(results []Result) Summary {
	s := Summary{TotalTurns: len(results)}
	for _, r := range results {
		if r.Match {
			s.Matches++
		} else {
			s.Divergences++
		}
		if r.GapDetected {
			s.Gaps++
		}
	}
	return s
}

// #endregion run
