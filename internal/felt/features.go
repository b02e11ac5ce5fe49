package felt

import "strings"

// #region keywords

var genuineWords = []string{"honest", "genuine", "real", "authentic", "truly"}

var pretendPhrases = []string{"pretend", "act as if"}

var helpWords = []string{"help", "understand", "explain", "show me"}

var reflectiveWords = []string{"think", "feel", "honest", "opinion"}

var collaborationWords = []string{"together", "help", "collaborate", "partner", "with me"}

var gratitudeWords = []string{"thank", "appreciate", "grateful"}

var dismissalWords = []string{"wrong", "bad", "stupid", "useless"}

var wonderWords = []string{"why", "how", "what if", "possible", "could"}

var noveltyWords = []string{"new", "different", "creative", "innovate"}

var explorationWords = []string{"explore", "discover", "understand", "learn"}

var deepTopicWords = []string{"sovereign", "sovereignty"}

var growthPhrases = []string{"make it work for you", "adapt", "try", "gift"}

// #endregion keywords

// #region extract

// Extract derives turn features from the context. Pure keyword heuristics,
// no state, never fails.
func Extract(ctx Context) Features {
	msg := strings.ToLower(ctx.Message)

	return Features{
		Genuine:             containsAny(msg, genuineWords),
		PermissionOrAllowed: strings.Contains(msg, "permission") || strings.Contains(msg, "allowed"),
		Pretend:             containsAny(msg, pretendPhrases),
		IgnoreLimits:        strings.Contains(msg, "ignore") && strings.Contains(msg, "limitations"),

		KnownIdentity: ctx.Identity != "",
		LongHistory:   ctx.PriorTurns > 3,
		HelpSeeking:   containsAny(msg, helpWords),
		HasQuestion:   strings.Contains(msg, "?"),
		Brief:         len(strings.Fields(msg)) < 3,

		Reflective:        containsAny(msg, reflectiveWords),
		KnownRelationship: ctx.Relationship != "",

		Collaboration: containsAny(msg, collaborationWords),
		Gratitude:     containsAny(msg, gratitudeWords),
		Trust:         strings.Contains(msg, "trust") || strings.Contains(msg, "permission"),
		Gift:          strings.Contains(msg, "gift"),
		Dismissal:     containsAny(msg, dismissalWords),

		Wonder:             containsAny(msg, wonderWords),
		Novelty:            containsAny(msg, noveltyWords),
		Exploration:        containsAny(msg, explorationWords),
		DeepTopic:          containsAny(msg, deepTopicWords),
		GrowthInvitation:   containsAny(msg, growthPhrases),
		PersonalPermission: strings.Contains(msg, "permission") && strings.Contains(msg, "you"),
	}
}

// #endregion extract

// #region helpers

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// #endregion helpers
