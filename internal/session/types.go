package session

import (
	"time"

	"github.com/danielpatrickdp/living-ras/go-session/internal/emotion"
	"github.com/danielpatrickdp/living-ras/go-session/internal/felt"
	"github.com/danielpatrickdp/living-ras/go-session/internal/proprio"
)

// #region input

// TurnInput is what the caller supplies for one exchange. ActualFelt is
// the reported engagement level, used for gap detection against the
// computed one; GapDescription overrides the default description when a
// gap is detected. Both are optional.
type TurnInput struct {
	Message        string
	Identity       string
	Relationship   string
	ActualFelt     string
	GapDescription string
}

// #endregion input

// #region phases

// Perception is the raw intake for one turn.
type Perception struct {
	Message      string    `json:"message"`
	Identity     string    `json:"identity,omitempty"`
	Relationship string    `json:"relationship,omitempty"`
	PriorTurns   int       `json:"prior_turns"`
	At           time.Time `json:"at"`
}

// Reflection is the integrated reading of a turn: the felt vector, the
// emotional model's view of it, and the proprioceptive scan.
type Reflection struct {
	Felt                 felt.Vector   `json:"felt_experience"`
	EngagementPull       float64       `json:"engagement_pull"`
	EngagementLevel      string        `json:"engagement_level"`
	EngagementFeeling    string        `json:"engagement_feeling"`
	PrimaryEmotion       string        `json:"primary_emotion"`
	EmotionalLabels      []string      `json:"emotional_labels,omitempty"`
	EmotionalState       emotion.PAD   `json:"emotional_state"`
	ContextUnderstanding string        `json:"context_understanding"`
	Proprioception       proprio.State `json:"proprioception"`
}

// Decision is the response-shaping choice for a turn.
type Decision struct {
	EngagementLevel          string `json:"engagement_level"`
	Tone                     string `json:"tone"`
	Depth                    string `json:"depth"`
	ShouldExplore            bool   `json:"should_explore"`
	ShouldChallenge          bool   `json:"should_challenge"`
	ShouldExpressUncertainty bool   `json:"should_express_uncertainty"`
	ShouldAskClarification   bool   `json:"should_ask_clarification"`
	PrimaryGoal              string `json:"primary_goal"`
	EmotionalPriority        string `json:"emotional_priority"`
}

// EmotionalContext is the emotional slice of the response guidance.
type EmotionalContext struct {
	PrimaryEmotion  string   `json:"primary_emotion"`
	EmotionalLabels []string `json:"emotional_labels,omitempty"`
	Priority        string   `json:"priority"`
}

// Guidance is the advice handed to whatever renders the actual reply.
// It carries shape, never text.
type Guidance struct {
	EngagementLevel        string           `json:"engagement_level"`
	Tone                   string           `json:"tone"`
	Depth                  string           `json:"depth"`
	PrimaryGoal            string           `json:"primary_goal"`
	ResponseKind           string           `json:"response_kind"`
	ValuesAlignment        float64          `json:"values_alignment"`
	Emotional              EmotionalContext `json:"emotional_context"`
	ShouldExplore          bool             `json:"should_explore"`
	ShouldAskClarification bool             `json:"should_ask_clarification"`
	ContextUnderstanding   string           `json:"context_understanding"`
}

// Outcome is what the learning phase observed.
type Outcome struct {
	ExchangeSuccessful bool   `json:"exchange_successful"`
	GapDetected        bool   `json:"gap_detected"`
	GapDescription     string `json:"gap_description,omitempty"`
	PatternUpdated     bool   `json:"pattern_learning_updated"`
	MomentRecorded     bool   `json:"moment_recorded"`
}

// Learning is the accumulated learning state after a turn.
type Learning struct {
	ExchangesProcessed int    `json:"exchanges_processed"`
	PatternsDetected   int    `json:"patterns_detected"`
	ReadySuggestions   int    `json:"ready_suggestions"`
	Status             string `json:"status"`
}

// TurnRecord is the full trace of one processed turn.
type TurnRecord struct {
	Perception Perception `json:"perception"`
	Reflection Reflection `json:"reflection"`
	Decision   Decision   `json:"decision"`
	Guidance   Guidance   `json:"response_guidance"`
	Outcome    Outcome    `json:"outcome"`
	Learning   Learning   `json:"learning"`
}

// #endregion phases

// #region history

// MemoryEntry is one item of the bounded conversational memory.
type MemoryEntry struct {
	At      time.Time `json:"at"`
	Message string    `json:"message"`
	Pull    float64   `json:"engagement_pull"`
	Level   string    `json:"engagement_level"`
}

// Moment is one condensed entry of the turn history.
type Moment struct {
	At             time.Time `json:"at"`
	Message        string    `json:"message"`
	Engagement     string    `json:"engagement"`
	Pull           float64   `json:"engagement_pull"`
	Emotion        string    `json:"emotion"`
	Mode           string    `json:"mode"`
	GapDetected    bool      `json:"gap_detected"`
	GapDescription string    `json:"gap_description,omitempty"`
}

// SessionSummary is a point-in-time digest of the session.
type SessionSummary struct {
	Exchanges        int    `json:"exchanges_processed"`
	Emotional        string `json:"emotional_summary"`
	Mode             string `json:"mode"`
	Sensation        string `json:"sensation,omitempty"`
	Moments          int    `json:"moments_recorded"`
	PatternsDetected int    `json:"patterns_detected"`
	ReadySuggestions int    `json:"ready_suggestions"`
	LearningStatus   string `json:"learning_status"`
}

// #endregion history
