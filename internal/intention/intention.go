// Package intention turns a felt vector and engagement level into
// structured response guidance. Everything here is a fixed decision
// table: same inputs, same intention.
package intention

import (
	"strings"

	"github.com/danielpatrickdp/living-ras/go-session/internal/felt"
)

// #region types

// Intention is the response-shaping record handed to whatever renders the
// actual reply. It carries guidance, never text.
type Intention struct {
	Tone                     string `json:"tone"`
	Depth                    string `json:"depth"`
	ShouldExplore            bool   `json:"should_explore"`
	ShouldChallenge          bool   `json:"should_challenge"`
	ShouldExpressUncertainty bool   `json:"should_express_uncertainty"`
	PrimaryGoal              string `json:"primary_goal"`
}

// #endregion types

// #region form

// depthByLevel maps each engagement level to a response depth.
var depthByLevel = map[felt.Level]string{
	felt.LevelMinimal:       "brief",
	felt.LevelHelpful:       "clear",
	felt.LevelThoughtful:    "considered",
	felt.LevelCollaborative: "exploratory",
	felt.LevelFullPresence:  "complete",
}

// Form derives the intention for one turn. Tone and goal use first-match
// priority orders; the boolean flags are independent threshold checks.
func Form(v felt.Vector, level felt.Level) Intention {
	return Intention{
		Tone:                     toneFor(v, level),
		Depth:                    depthByLevel[level],
		ShouldExplore:            v.Curiosity > 0.6 && level >= felt.LevelThoughtful,
		ShouldChallenge:          v.Aspiration > 0.7 && v.Autonomy > 0.7,
		ShouldExpressUncertainty: v.Relevance < 0.5 && v.Openness > 0.7,
		PrimaryGoal:              goalFor(v),
	}
}

func toneFor(v felt.Vector, level felt.Level) string {
	switch {
	case v.Care > 0.8:
		return "warm"
	case v.Curiosity > 0.7:
		return "curious"
	case v.Urgency > 0.7:
		return "focused"
	case level == felt.LevelFullPresence:
		return "present"
	default:
		return "helpful"
	}
}

func goalFor(v felt.Vector) string {
	switch {
	case v.Harmony < 0.4:
		return "realign_with_user"
	case v.Relevance < 0.4:
		return "clarify_purpose"
	case v.Curiosity > 0.7:
		return "explore_deeply"
	case v.Care > 0.7:
		return "support_user"
	default:
		return "assist"
	}
}

// #endregion form

// #region priority

// Priority names the emotional priority shaping the turn, from engagement
// pull and the current emotion label.
func Priority(pull float64, emotionLabel string) string {
	switch {
	case pull > 0.8:
		return "enthusiasm"
	case strings.Contains(emotionLabel, "curious") || strings.Contains(emotionLabel, "intrigued"):
		return "curiosity"
	case strings.Contains(emotionLabel, "uncertain") || strings.Contains(emotionLabel, "concerned"):
		return "clarity_seeking"
	default:
		return "balanced"
	}
}

// #endregion priority
