// Package replay re-runs recorded transcripts through a fresh session
// and compares the computed engagement against what was expected or
// archived. Divergence means the felt computation has drifted.
package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/danielpatrickdp/living-ras/go-session/internal/archive"
	"github.com/danielpatrickdp/living-ras/go-session/internal/session"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay transcript.
type Fixture struct {
	Description string        `json:"description"`
	Turns       []FixtureTurn `json:"turns"`
}

// FixtureTurn mirrors session.TurnInput with JSON tags, plus the level
// the turn is expected to compute. An empty ExpectedLevel means the turn
// is replayed without being checked.
type FixtureTurn struct {
	Message        string `json:"message"`
	Identity       string `json:"identity"`
	Relationship   string `json:"relationship"`
	ActualFelt     string `json:"actual_felt"`
	GapDescription string `json:"gap_description"`
	ExpectedLevel  string `json:"expected_level"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON transcript file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// ToInput converts a FixtureTurn to a session TurnInput.
func (ft *FixtureTurn) ToInput() session.TurnInput {
	return session.TurnInput{
		Message:        ft.Message,
		Identity:       ft.Identity,
		Relationship:   ft.Relationship,
		ActualFelt:     ft.ActualFelt,
		GapDescription: ft.GapDescription,
	}
}

// FromArchive rebuilds a replayable transcript from archived turn rows.
// The archived engagement level becomes the expectation, so replaying
// flags any drift since the session was recorded.
func FromArchive(rows []archive.TurnRow) (*Fixture, error) {
	f := &Fixture{Description: "archived session replay"}
	for _, row := range rows {
		var rec session.TurnRecord
		if err := json.Unmarshal([]byte(row.RecordJSON), &rec); err != nil {
			return nil, fmt.Errorf("parse turn %d record: %w", row.TurnNumber, err)
		}
		f.Turns = append(f.Turns, FixtureTurn{
			Message:       row.Message,
			Identity:      rec.Perception.Identity,
			Relationship:  rec.Perception.Relationship,
			ExpectedLevel: row.Engagement,
		})
	}
	return f, nil
}

// #endregion fixture-loader
