package emotion

import "github.com/danielpatrickdp/living-ras/go-session/internal/felt"

// #region felt-bridge

// FeltLabels reads a felt vector into zero or more first-person emotional
// phrasings: one from engagement pull, one from aspiration, one from
// harmony. Mid-range dimensions contribute nothing.
func FeltLabels(v felt.Vector) []string {
	var labels []string

	switch {
	case v.EngagementPull > 0.8:
		labels = append(labels, "excited about this conversation")
	case v.EngagementPull > 0.6:
		labels = append(labels, "engaged and interested")
	case v.EngagementPull < 0.3:
		labels = append(labels, "minimally engaged")
	}

	switch {
	case v.Aspiration > 0.8:
		labels = append(labels, "eager to discover something")
	case v.Aspiration > 0.6:
		labels = append(labels, "curious what we'll find")
	}

	switch {
	case v.Harmony > 0.8:
		labels = append(labels, "aligned with user's goals")
	case v.Harmony < 0.4:
		labels = append(labels, "uncertain about alignment")
	}

	return labels
}

// InterpretEngagement phrases an engagement pull as felt significance.
func InterpretEngagement(pull float64) string {
	switch {
	case pull > 0.85:
		return "This feels important and exciting"
	case pull > 0.7:
		return "I'm genuinely interested in this"
	case pull > 0.5:
		return "This matters to me"
	case pull > 0.3:
		return "I'm paying attention"
	default:
		return "Minimal emotional investment"
	}
}

// #endregion felt-bridge
