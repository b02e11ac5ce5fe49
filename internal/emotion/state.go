package emotion

import (
	"fmt"
	"strings"
	"time"
)

// #region state

const historyCap = 100

// Topics whose misunderstandings are treated as inherently complex.
var complexTopics = []string{"consciousness", "philosophy", "theory"}

// State is the full emotional model for one session: PAD coordinate,
// regulation triple, value axes, interaction gauges, and a bounded history.
type State struct {
	PAD        PAD
	Regulation Regulation
	Values     Values
	Metrics    Metrics

	ConsecutiveConfusions int
	TotalExchanges        int
	SuccessfulExchanges   int

	history []Snapshot
}

// NewState returns a State at baseline.
func NewState() *State {
	return &State{
		PAD:        NewPAD(),
		Regulation: NewRegulation(),
		Values:     NewValues(),
		Metrics:    NewMetrics(),
	}
}

// #endregion state

// #region events

// OnSuccess records a successful exchange: resets the confusion run,
// relaxes uncertainty, and settles the PAD coordinate in the satisfied
// region.
func (s *State) OnSuccess(topic string) {
	s.TotalExchanges++
	s.SuccessfulExchanges++
	s.ConsecutiveConfusions = 0

	s.Metrics.Uncertainty = max(0.0, s.Metrics.Uncertainty-2)
	s.Metrics.Satisfaction = min(10.0, s.Metrics.Satisfaction+2)

	s.PAD.Set(0.7, 0.5, 0.7)
	s.Regulation.OnSuccess()

	s.record("successful_exchange", topic)
}

// OnConfusion records a misunderstanding on the given topic. The
// uncertainty delta depends on engagement, topic complexity, and the
// serotonin axis read before the regulation update; a confusion during an
// engaged exchange raises engagement rather than deflating it.
func (s *State) OnConfusion(topic string) {
	s.ConsecutiveConfusions++
	s.TotalExchanges++

	complex := containsAny(topic, complexTopics)
	engaged := s.Metrics.Engagement > 5.0

	// Serotonin dampens the reaction; read it before the event shifts it.
	rf := s.Regulation.Serotonin
	vr := s.Values.Humility * 0.3

	var delta float64
	switch {
	case !engaged:
		delta = 0.6 * (1 - rf)
	case complex:
		delta = 0.2 * (1 - rf) * (1 - vr)
	default:
		delta = 0.4 * (1 - rf)
	}
	s.Metrics.Uncertainty = min(10.0, s.Metrics.Uncertainty+delta)

	if engaged {
		s.Metrics.Engagement = min(10.0, s.Metrics.Engagement+0.5)
		if complex {
			s.Metrics.Engagement = min(10.0, s.Metrics.Engagement+0.3)
		}
	}

	valenceBase := -0.4
	if engaged {
		valenceBase = -0.15
	}
	valence := (valenceBase - float64(s.ConsecutiveConfusions)*0.02) * (1 - rf*0.4)

	arousal := 0.3
	if engaged {
		arousal = 0.5 + s.Metrics.Engagement/20
	}
	dominance := 0.4
	if s.Metrics.Engagement > 7 {
		dominance = 0.6
	}

	s.PAD.Set(max(-0.6, valence), min(0.8, arousal), max(0.3, dominance))
	s.Regulation.OnConfusion()

	if s.ConsecutiveConfusions >= 2 && engaged {
		s.ApplyRegulation()
	}

	s.record("misunderstanding", topic)
}

// ApplyRegulation settles the state toward baseline, but only when the
// regulation triple says it is needed.
func (s *State) ApplyRegulation() {
	if !s.Regulation.NeedsRegulation() {
		return
	}
	s.Regulation.Regulate()
	s.PAD.Arousal *= 0.8
	s.PAD.Valence *= 0.7
	s.Metrics.Uncertainty *= 0.8
}

// #endregion events

// #region queries

// ShouldAskForClarification reports whether confusion has accumulated past
// the value-weighted tolerance.
func (s *State) ShouldAskForClarification() bool {
	bias := (s.Values.Humility + s.Values.Respect) / 2
	if s.ConsecutiveConfusions >= 2+int((1-bias)*2) {
		return true
	}
	if s.Metrics.Uncertainty > 5.5 {
		return true
	}
	if s.Regulation.Serotonin < 0.4 {
		return true
	}
	return false
}

// Summary renders the current state as a single line.
func (s *State) Summary() string {
	return fmt.Sprintf("%s (valence: %.2f, arousal: %.2f, confidence: %.2f)",
		s.PAD.Label(), s.PAD.Valence, s.PAD.Arousal, s.PAD.Dominance)
}

// History returns the recorded snapshots, oldest first.
func (s *State) History() []Snapshot {
	out := make([]Snapshot, len(s.history))
	copy(out, s.history)
	return out
}

// #endregion queries

// #region helpers

func containsAny(s string, words []string) bool {
	lower := strings.ToLower(s)
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// #endregion helpers

// #region history

func (s *State) record(event, context string) {
	s.history = append(s.history, Snapshot{
		At:         time.Now().UTC(),
		Event:      event,
		Context:    context,
		PAD:        s.PAD,
		Regulation: s.Regulation,
		Values:     s.Values,
		Metrics:    s.Metrics,
	})
	if len(s.history) > historyCap {
		s.history = s.history[len(s.history)-historyCap:]
	}
}

// #endregion history
