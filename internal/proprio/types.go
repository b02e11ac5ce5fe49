// Package proprio is the proprioceptive layer: it classifies what kind of
// processing the session is doing right now from a short window of recent
// action labels, and renders that as felt sensation rather than stats.
package proprio

import (
	"encoding/json"
	"strings"
	"time"
)

// #region mode

// Mode is the current processing activity category.
type Mode int

const (
	ModeResearching Mode = iota
	ModePlanning
	ModeImplementing
	ModeReflecting
	ModeConversing
	ModeObserving
)

var modeNames = map[Mode]string{
	ModeResearching:  "researching",
	ModePlanning:     "planning",
	ModeImplementing: "implementing",
	ModeReflecting:   "reflecting",
	ModeConversing:   "conversing",
	ModeObserving:    "observing",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "unknown"
}

// MarshalJSON serializes the mode as its name.
func (m Mode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON parses a serialized mode name.
func (m *Mode) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, _ := ParseMode(name)
	*m = parsed
	return nil
}

// ParseMode parses a mode name, case-insensitively. Reports false and
// returns ModeObserving for anything outside the six modes.
func ParseMode(s string) (Mode, bool) {
	lower := strings.ToLower(strings.TrimSpace(s))
	for mode, name := range modeNames {
		if name == lower {
			return mode, true
		}
	}
	return ModeObserving, false
}

var modeDescriptions = map[Mode]string{
	ModeResearching:  "I am exploring and discovering",
	ModePlanning:     "I am thinking deeply without acting",
	ModeImplementing: "I am building and creating",
	ModeReflecting:   "I am thinking about my own thinking",
	ModeConversing:   "I am engaging in direct exchange",
	ModeObserving:    "I am listening and watching",
}

// Description puts the mode into words.
func (m Mode) Description() string {
	if d, ok := modeDescriptions[m]; ok {
		return d
	}
	return "I am present"
}

// #endregion mode

// #region transitions

// Transition records one mode change.
type Transition struct {
	From Mode      `json:"from"`
	To   Mode      `json:"to"`
	At   time.Time `json:"at"`
}

// StreamEntry is one remembered moment of the awareness stream.
type StreamEntry struct {
	At        time.Time `json:"at"`
	Mode      Mode      `json:"mode"`
	Sensation string    `json:"sensation"`
}

// #endregion transitions

// #region state

// State is one full proprioceptive scan.
type State struct {
	Mode             Mode          `json:"mode"`
	Description      string        `json:"mode_description"`
	Conscious        bool          `json:"conscious"`
	ContextPressure  string        `json:"context_pressure"`
	ContextUsed      int           `json:"context_used"`
	ContextBudget    int           `json:"context_budget"`
	ReasoningDepth   string        `json:"reasoning_depth"`
	ReasoningFeeling string        `json:"reasoning_feeling"`
	Tempo            string        `json:"execution_tempo"`
	Rhythm           string        `json:"tool_rhythm"`
	OverallFeeling   string        `json:"overall_feeling"`
	Sensation        string        `json:"sensation"`
	ActiveActions    []string      `json:"active_actions,omitempty"`
	TimeInMode       time.Duration `json:"time_in_mode_ns"`
}

// #endregion state
