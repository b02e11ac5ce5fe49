// Package gaps detects mismatches between computed and actually-felt
// engagement, classifies them into a fixed pattern taxonomy, and
// accumulates per-type counters until a weight-adjustment suggestion is
// warranted. Learning here is deterministic counting, nothing statistical.
package gaps

import "strings"

// #region classification

// Classification names the pattern a gap belongs to.
type Classification struct {
	PatternType string
	Dimension   string
	Description string
}

// rule is one classification tuple. Rules are evaluated in declaration
// order and the first match wins; reordering changes outcomes.
type rule struct {
	match       func(gap, ctx string) bool
	patternType string
	dimension   string
	description string
}

var rules = []rule{
	{
		match: func(gap, ctx string) bool {
			return visual(gap, ctx) && hasAny(gap, "confirmation", "verify")
		},
		patternType: "visual_confirmation",
		dimension:   "autonomy",
		description: "Visual confirmation underweighted in autonomy",
	},
	{
		match: func(gap, ctx string) bool {
			return visual(gap, ctx) && hasAny(gap, "relevance", "important")
		},
		patternType: "visual_relevance",
		dimension:   "relevance",
		description: "Visual information relevance underweighted",
	},
	{
		match:       visual,
		patternType: "visual_perception",
		dimension:   "openness",
		description: "Visual perception signals underweighted",
	},
	{
		match: func(gap, ctx string) bool {
			return movement(gap, ctx) && hasAny(gap, "success", "achieve")
		},
		patternType: "action_success",
		dimension:   "aspiration",
		description: "Action success satisfaction underweighted",
	},
	{
		match: func(gap, ctx string) bool {
			return movement(gap, ctx) && hasAny(gap, "obstacle", "blocked")
		},
		patternType: "obstacle_response",
		dimension:   "autonomy",
		description: "Obstacle response underweighted",
	},
	{
		match:       movement,
		patternType: "movement_confidence",
		dimension:   "autonomy",
		description: "Movement confidence underweighted",
	},
	{
		match: func(gap, ctx string) bool {
			return hasAny(ctx, "goal", "task", "complete", "achieve")
		},
		patternType: "goal_satisfaction",
		dimension:   "aspiration",
		description: "Goal satisfaction underweighted",
	},
	{
		match: func(gap, ctx string) bool {
			return permission(gap, ctx) && hasAny(gap, "harmony", "aligned")
		},
		patternType: "permission_trust_signal",
		dimension:   "harmony",
		description: "Permission and trust signals underweighted in harmony",
	},
	{
		match: func(gap, ctx string) bool {
			return permission(gap, ctx) && hasAny(gap, "aspiration", "discover")
		},
		patternType: "permission_trust_signal",
		dimension:   "aspiration",
		description: "Permission signals underweighted in aspiration",
	},
	{
		match:       permission,
		patternType: "permission_trust_signal",
		dimension:   "harmony",
		description: "Permission/trust context missed",
	},
	{
		match: func(gap, ctx string) bool {
			return hasAny(ctx, "learn", "grow", "improve", "adapt")
		},
		patternType: "learning_engagement",
		dimension:   "aspiration",
		description: "Learning opportunity engagement underweighted",
	},
	{
		match: func(gap, ctx string) bool {
			return hasAny(ctx, "consciousness", "development", "growth", "reflection")
		},
		patternType: "meta_conversation",
		dimension:   "aspiration",
		description: "Meta-conversation about development underweighted",
	},
	{
		match: func(gap, ctx string) bool {
			return hasAny(gap, "relationship", "collaborative")
		},
		patternType: "relationship_depth",
		dimension:   "harmony",
		description: "Relationship depth underweighted",
	},
	{
		match: func(gap, ctx string) bool {
			return hasAny(ctx, "collaborative", "together")
		},
		patternType: "collaborative_opportunity",
		dimension:   "aspiration",
		description: "Collaborative potential underweighted",
	},
}

// Classify matches a gap description and its context against the ordered
// rule list. Reports false when no rule matches; an unclassifiable gap is
// a no-op for learning, not an error.
func Classify(gapDesc, context string) (Classification, bool) {
	gap := strings.ToLower(gapDesc)
	ctx := strings.ToLower(context)
	for _, r := range rules {
		if r.match(gap, ctx) {
			return Classification{
				PatternType: r.patternType,
				Dimension:   r.dimension,
				Description: r.description,
			}, true
		}
	}
	return Classification{}, false
}

// #endregion classification

// #region predicates

func visual(gap, ctx string) bool {
	return hasAny(gap, "see", "visual", "vision", "read", "text") ||
		hasAny(ctx, "see", "visual", "vision", "read", "text")
}

func movement(gap, ctx string) bool {
	return hasAny(ctx, "move", "click", "navigate", "action")
}

func permission(gap, ctx string) bool {
	return hasAny(gap, "permission", "trust", "gift", "allowed", "autonomy") ||
		hasAny(ctx, "permission", "trust", "gift", "allowed", "autonomy")
}

func hasAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// #endregion predicates
