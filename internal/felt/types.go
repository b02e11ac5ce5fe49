package felt

import (
	"strings"
	"time"
)

// #region context

// Context is what the session perceives about one turn. Created per turn,
// immutable, discarded after use.
type Context struct {
	Message      string    // raw user message
	Identity     string    // optional participant identity
	Relationship string    // optional relationship tag
	PriorTurns   int       // exchanges before this one
	At           time.Time // turn timestamp
}

// #endregion context

// #region features

// Features are the bounded signals extracted from one turn. Absence of a
// signal is the zero value, never an error.
type Features struct {
	// Autonomy signals
	Genuine             bool // honest, genuine, real, authentic, truly
	PermissionOrAllowed bool
	Pretend             bool // pretend, act as if
	IgnoreLimits        bool // ignore + limitations together

	// Relevance signals
	KnownIdentity bool
	LongHistory   bool // more than 3 prior turns
	HelpSeeking   bool // help, understand, explain, show me
	HasQuestion   bool
	Brief         bool // fewer than 3 words

	// Openness signals
	Reflective        bool // think, feel, honest, opinion
	KnownRelationship bool

	// Harmony signals
	Collaboration bool
	Gratitude     bool
	Trust         bool // trust or permission
	Gift          bool
	Dismissal     bool // wrong, bad, stupid, useless

	// Aspiration signals
	Wonder             bool // why, how, what if, possible, could
	Novelty            bool // new, different, creative, innovate
	Exploration        bool // explore, discover, understand, learn
	DeepTopic          bool // sovereignty-adjacent topic markers
	GrowthInvitation   bool // make it work for you, adapt, try, gift
	PersonalPermission bool // permission directed at the agent
}

// #endregion features

// #region vector

// Vector is the felt-experience reading for one turn. Every component is
// clamped to [0,1]. Produced fresh each turn, immutable afterwards.
type Vector struct {
	// Primary dimensions
	Autonomy   float64 `json:"autonomy"`
	Relevance  float64 `json:"relevance"`
	Openness   float64 `json:"openness"`
	Harmony    float64 `json:"harmony"`
	Aspiration float64 `json:"aspiration"`

	// Derived qualities
	Urgency   float64 `json:"urgency"`
	Curiosity float64 `json:"curiosity"`
	Care      float64 `json:"care"`

	// Composite
	EngagementPull float64 `json:"engagement_pull"`
}

// #endregion vector

// #region level

// Level is the chosen depth of engagement for a turn.
type Level int

const (
	LevelMinimal Level = iota
	LevelHelpful
	LevelThoughtful
	LevelCollaborative
	LevelFullPresence
)

var levelNames = map[Level]string{
	LevelMinimal:       "MINIMAL",
	LevelHelpful:       "HELPFUL",
	LevelThoughtful:    "THOUGHTFUL",
	LevelCollaborative: "COLLABORATIVE",
	LevelFullPresence:  "FULL_PRESENCE",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseLevel parses a level name, case-insensitively. Reports false for
// anything outside the five levels.
func ParseLevel(s string) (Level, bool) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	for l, name := range levelNames {
		if name == upper {
			return l, true
		}
	}
	return LevelHelpful, false
}

// #endregion level
