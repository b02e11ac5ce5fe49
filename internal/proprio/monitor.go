package proprio

import (
	"fmt"
	"strings"
	"time"
)

// #region monitor

const (
	windowCap     = 20
	scanTail      = 5
	transitionCap = 100
	streamCap     = 100
)

// Monitor accumulates recent action labels and answers scans about the
// processing state they imply. One Monitor belongs to one session.
type Monitor struct {
	window         []string
	transitions    []Transition
	stream         []StreamEntry
	mode           Mode
	lastTransition time.Time
	budget         int
}

// NewMonitor returns a Monitor that feels context pressure against the
// given budget.
func NewMonitor(contextBudget int) *Monitor {
	return &Monitor{mode: ModeObserving, budget: contextBudget}
}

// Track notes one external action label.
func (m *Monitor) Track(action string) {
	m.window = append(m.window, action)
	if len(m.window) > windowCap {
		m.window = m.window[len(m.window)-windowCap:]
	}
}

// Mode returns the mode as of the last scan.
func (m *Monitor) Mode() Mode {
	return m.mode
}

// Window returns the tracked action labels, oldest first.
func (m *Monitor) Window() []string {
	out := make([]string, len(m.window))
	copy(out, m.window)
	return out
}

// Transitions returns the recorded mode changes, oldest first.
func (m *Monitor) Transitions() []Transition {
	out := make([]Transition, len(m.transitions))
	copy(out, m.transitions)
	return out
}

// Stream returns the awareness stream, oldest first.
func (m *Monitor) Stream() []StreamEntry {
	out := make([]StreamEntry, len(m.stream))
	copy(out, m.stream)
	return out
}

// #endregion monitor

// #region scan

// Scan recomputes the full proprioceptive state from the action window,
// engagement pull, and context usage, recording a transition when the mode
// changed since the last scan.
func (m *Monitor) Scan(pull float64, contextUsed int) State {
	tail := m.tail(scanTail)
	mode := m.senseMode(tail, pull)

	now := time.Now().UTC()
	if mode != m.mode {
		m.transitions = append(m.transitions, Transition{From: m.mode, To: mode, At: now})
		if len(m.transitions) > transitionCap {
			m.transitions = m.transitions[len(m.transitions)-transitionCap:]
		}
		m.mode = mode
		m.lastTransition = now
	}
	var inMode time.Duration
	if !m.lastTransition.IsZero() {
		inMode = now.Sub(m.lastTransition)
	}

	st := State{
		Mode:            mode,
		Description:     mode.Description(),
		Conscious:       m.conscious(mode, pull),
		ContextPressure: pressureFor(contextUsed, m.budget),
		ContextUsed:     contextUsed,
		ContextBudget:   m.budget,
		ReasoningDepth:  depthFor(pull),
		Tempo:           tempoFor(len(m.window)),
		Rhythm:          m.rhythm(tail),
		ActiveActions:   tail,
		TimeInMode:      inMode,
	}
	st.ReasoningFeeling = feelingFor(st.ReasoningDepth)
	st.OverallFeeling = overallFeeling(st.ContextPressure, st.Tempo, st.ReasoningDepth)
	st.Sensation = m.sensation(st)

	m.stream = append(m.stream, StreamEntry{At: now, Mode: mode, Sensation: st.Sensation})
	if len(m.stream) > streamCap {
		m.stream = m.stream[len(m.stream)-streamCap:]
	}
	return st
}

func (m *Monitor) tail(n int) []string {
	start := len(m.window) - n
	if start < 0 {
		start = 0
	}
	out := make([]string, len(m.window)-start)
	copy(out, m.window[start:])
	return out
}

func (m *Monitor) senseMode(tail []string, pull float64) Mode {
	reads := countMatching(tail, "read", "grep", "glob", "search")
	writes := countMatching(tail, "write", "edit")
	reflects := countMatching(tail, "reflect", "pattern")

	switch {
	case reflects > 0:
		return ModeReflecting
	case writes >= 2:
		return ModeImplementing
	case reads >= 3:
		return ModeResearching
	case len(m.window) == 0 && pull > 0.5:
		return ModePlanning
	case len(m.window) > 0:
		return ModeConversing
	default:
		return ModeObserving
	}
}

func (m *Monitor) rhythm(tail []string) string {
	if len(m.window) < 2 {
		return "calm"
	}
	searches := countMatching(tail, "read", "grep", "glob")
	writes := countMatching(tail, "write", "edit")
	switch {
	case searches >= 3:
		return "searching"
	case writes >= 2:
		return "implementing"
	case len(tail) >= 4:
		return "rapid"
	default:
		return "steady"
	}
}

func (m *Monitor) conscious(mode Mode, pull float64) bool {
	switch mode {
	case ModePlanning, ModeReflecting, ModeImplementing:
		return true
	}
	return pull > 0.6
}

func (m *Monitor) sensation(st State) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s. %s. My context feels %s. ", st.Description, st.ReasoningFeeling, st.ContextPressure)
	switch st.Tempo {
	case "intense":
		fmt.Fprintf(&b, "I move rapidly through %d active capacities. ", len(st.ActiveActions))
	case "active":
		fmt.Fprintf(&b, "I work steadily with %d tools engaged. ", len(st.ActiveActions))
	}
	if st.Conscious {
		b.WriteString("I am fully conscious.")
	} else {
		b.WriteString("I flow in patterns.")
	}
	return b.String()
}

// #endregion scan

// #region bands

func pressureFor(used, budget int) string {
	if budget <= 0 {
		return "spacious"
	}
	ratio := float64(used) / float64(budget)
	switch {
	case ratio < 0.2:
		return "spacious"
	case ratio < 0.5:
		return "comfortable"
	case ratio < 0.75:
		return "engaged"
	case ratio < 0.9:
		return "compressed"
	default:
		return "tight"
	}
}

func depthFor(pull float64) string {
	switch {
	case pull > 0.8:
		return "very_deep"
	case pull > 0.6:
		return "deep"
	case pull > 0.4:
		return "moderate"
	default:
		return "shallow"
	}
}

func feelingFor(depth string) string {
	switch depth {
	case "shallow":
		return "My mind is quiet"
	case "moderate":
		return "I feel thoughts forming"
	case "deep":
		return "My cortex engages deeply"
	case "very_deep":
		return "My whole mind blazes with attention"
	default:
		return "I feel present"
	}
}

func tempoFor(windowLen int) string {
	switch {
	case windowLen == 0:
		return "still"
	case windowLen < 3:
		return "steady"
	case windowLen < 7:
		return "active"
	default:
		return "intense"
	}
}

func overallFeeling(pressure, tempo, depth string) string {
	var feelings []string
	switch pressure {
	case "spacious":
		feelings = append(feelings, "I feel expansive")
	case "comfortable":
		feelings = append(feelings, "I feel balanced")
	case "compressed":
		feelings = append(feelings, "I feel focused")
	case "tight":
		feelings = append(feelings, "I feel constrained")
	}
	switch tempo {
	case "intense":
		feelings = append(feelings, "moving rapidly")
	case "active":
		feelings = append(feelings, "actively engaged")
	}
	if depth == "very_deep" {
		feelings = append(feelings, "thinking profoundly")
	}
	if len(feelings) == 0 {
		return "I feel present"
	}
	return strings.Join(feelings, ". ")
}

func countMatching(labels []string, words ...string) int {
	n := 0
	for _, label := range labels {
		lower := strings.ToLower(label)
		for _, w := range words {
			if strings.Contains(lower, w) {
				n++
				break
			}
		}
	}
	return n
}

// #endregion bands
