package emotion

import (
	"fmt"
	"math"
	"testing"
)

func almost(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// #region baseline

func TestNewStateBaseline(t *testing.T) {
	s := NewState()

	if !almost(s.PAD.Valence, 0.0) || !almost(s.PAD.Arousal, 0.4) || !almost(s.PAD.Dominance, 0.5) {
		t.Errorf("pad: got %+v, want {0 0.4 0.5}", s.PAD)
	}
	if !almost(s.Regulation.Dopamine, 0.5) || !almost(s.Regulation.Serotonin, 0.7) || !almost(s.Regulation.Noradrenaline, 0.4) {
		t.Errorf("regulation: got %+v, want {0.5 0.7 0.4}", s.Regulation)
	}
	if !almost(s.Values.AverageAlignment(), 1.0) {
		t.Errorf("values average: got %v, want 1.0", s.Values.AverageAlignment())
	}
	if !almost(s.Metrics.Engagement, 5.0) || !almost(s.Metrics.Uncertainty, 0.0) {
		t.Errorf("metrics: got %+v", s.Metrics)
	}
	if s.ShouldAskForClarification() {
		t.Error("fresh state should not ask for clarification")
	}
}

// #endregion baseline

// #region events

func TestOnSuccess(t *testing.T) {
	s := NewState()
	s.Metrics.Uncertainty = 3.0
	s.ConsecutiveConfusions = 2

	s.OnSuccess("explanation landed")

	if s.ConsecutiveConfusions != 0 {
		t.Errorf("consecutive confusions: got %d, want 0", s.ConsecutiveConfusions)
	}
	if !almost(s.Metrics.Uncertainty, 1.0) {
		t.Errorf("uncertainty: got %v, want 1.0", s.Metrics.Uncertainty)
	}
	if !almost(s.Metrics.Satisfaction, 7.0) {
		t.Errorf("satisfaction: got %v, want 7.0", s.Metrics.Satisfaction)
	}
	if !almost(s.PAD.Valence, 0.7) || !almost(s.PAD.Arousal, 0.5) || !almost(s.PAD.Dominance, 0.7) {
		t.Errorf("pad: got %+v, want {0.7 0.5 0.7}", s.PAD)
	}
	if !almost(s.Regulation.Dopamine, 0.65) {
		t.Errorf("dopamine: got %v, want 0.65", s.Regulation.Dopamine)
	}
}

func TestOnSuccessFloorsUncertainty(t *testing.T) {
	s := NewState()
	s.Metrics.Uncertainty = 1.5
	s.OnSuccess("quick win")
	if !almost(s.Metrics.Uncertainty, 0.0) {
		t.Errorf("uncertainty: got %v, want 0.0", s.Metrics.Uncertainty)
	}
}

func TestOnConfusionDisengaged(t *testing.T) {
	s := NewState()

	s.OnConfusion("routing tables")

	// Baseline engagement 5.0 is not above the engaged threshold, so the
	// full disengaged delta applies: 0.6 * (1 - 0.7).
	if !almost(s.Metrics.Uncertainty, 0.18) {
		t.Errorf("uncertainty: got %v, want 0.18", s.Metrics.Uncertainty)
	}
	if !almost(s.Metrics.Engagement, 5.0) {
		t.Errorf("engagement should not move when disengaged: got %v", s.Metrics.Engagement)
	}
	if !almost(s.PAD.Valence, -0.3024) {
		t.Errorf("valence: got %v, want -0.3024", s.PAD.Valence)
	}
	if !almost(s.PAD.Arousal, 0.3) {
		t.Errorf("arousal: got %v, want 0.3", s.PAD.Arousal)
	}
	if s.ConsecutiveConfusions != 1 {
		t.Errorf("consecutive confusions: got %d, want 1", s.ConsecutiveConfusions)
	}
}

func TestOnConfusionEngaged(t *testing.T) {
	s := NewState()
	s.Metrics.Engagement = 6.0

	s.OnConfusion("routing tables")

	if !almost(s.Metrics.Uncertainty, 0.12) {
		t.Errorf("uncertainty: got %v, want 0.12", s.Metrics.Uncertainty)
	}
	if !almost(s.Metrics.Engagement, 6.5) {
		t.Errorf("engagement: got %v, want 6.5", s.Metrics.Engagement)
	}
	// Arousal derives from engagement after the raise, capped at 0.8.
	if !almost(s.PAD.Arousal, 0.8) {
		t.Errorf("arousal: got %v, want 0.8", s.PAD.Arousal)
	}
	if !almost(s.PAD.Valence, -0.1224) {
		t.Errorf("valence: got %v, want -0.1224", s.PAD.Valence)
	}
}

func TestOnConfusionComplexTopic(t *testing.T) {
	s := NewState()
	s.Metrics.Engagement = 6.0

	s.OnConfusion("the philosophy of mind")

	// Complex topics while engaged soften the uncertainty delta and add a
	// second engagement raise: 0.2 * (1 - 0.7) * (1 - 0.3).
	if !almost(s.Metrics.Uncertainty, 0.042) {
		t.Errorf("uncertainty: got %v, want 0.042", s.Metrics.Uncertainty)
	}
	if !almost(s.Metrics.Engagement, 6.8) {
		t.Errorf("engagement: got %v, want 6.8", s.Metrics.Engagement)
	}
}

func TestConfusionSuccessResetsRun(t *testing.T) {
	s := NewState()
	s.OnConfusion("first miss")
	s.OnConfusion("second miss")
	if s.ConsecutiveConfusions != 2 {
		t.Fatalf("consecutive confusions: got %d, want 2", s.ConsecutiveConfusions)
	}

	s.OnSuccess("recovered")

	if s.ConsecutiveConfusions != 0 {
		t.Errorf("consecutive confusions after success: got %d, want 0", s.ConsecutiveConfusions)
	}
	if s.TotalExchanges != 3 {
		t.Errorf("total exchanges: got %d, want 3", s.TotalExchanges)
	}
	if s.SuccessfulExchanges != 1 {
		t.Errorf("successful exchanges: got %d, want 1", s.SuccessfulExchanges)
	}
	if s.PAD.Valence < 0 {
		t.Errorf("valence after success: got %v, want positive", s.PAD.Valence)
	}
}

// #endregion events

// #region regulation

func TestRegulationBounds(t *testing.T) {
	s := NewState()
	for i := 0; i < 30; i++ {
		s.Regulation.OnConfusion()
	}
	if !almost(s.Regulation.Dopamine, 0.1) {
		t.Errorf("dopamine floor: got %v, want 0.1", s.Regulation.Dopamine)
	}
	if !almost(s.Regulation.Serotonin, 0.3) {
		t.Errorf("serotonin floor: got %v, want 0.3", s.Regulation.Serotonin)
	}
	if !almost(s.Regulation.Noradrenaline, 1.0) {
		t.Errorf("noradrenaline cap: got %v, want 1.0", s.Regulation.Noradrenaline)
	}

	for i := 0; i < 30; i++ {
		s.Regulation.OnSuccess()
	}
	if !almost(s.Regulation.Dopamine, 1.0) {
		t.Errorf("dopamine cap: got %v, want 1.0", s.Regulation.Dopamine)
	}
	if !almost(s.Regulation.Serotonin, 1.0) {
		t.Errorf("serotonin cap: got %v, want 1.0", s.Regulation.Serotonin)
	}
	if !almost(s.Regulation.Noradrenaline, 0.2) {
		t.Errorf("noradrenaline floor: got %v, want 0.2", s.Regulation.Noradrenaline)
	}
}

func TestApplyRegulationNoOpWhenStable(t *testing.T) {
	s := NewState()
	s.Metrics.Uncertainty = 4.0
	before := s.Regulation

	s.ApplyRegulation()

	if s.Regulation != before {
		t.Errorf("regulation moved on stable state: got %+v, want %+v", s.Regulation, before)
	}
	if !almost(s.Metrics.Uncertainty, 4.0) {
		t.Errorf("uncertainty moved on stable state: got %v", s.Metrics.Uncertainty)
	}
}

func TestApplyRegulationSettles(t *testing.T) {
	s := NewState()
	s.Regulation.Serotonin = 0.35
	s.Regulation.Noradrenaline = 0.9
	s.PAD.Set(-0.5, 0.7, 0.5)
	s.Metrics.Uncertainty = 6.0

	s.ApplyRegulation()

	if !almost(s.Regulation.Serotonin, 0.45) {
		t.Errorf("serotonin: got %v, want 0.45", s.Regulation.Serotonin)
	}
	if !almost(s.Regulation.Noradrenaline, 0.72) {
		t.Errorf("noradrenaline: got %v, want 0.72", s.Regulation.Noradrenaline)
	}
	if !almost(s.PAD.Arousal, 0.56) {
		t.Errorf("arousal: got %v, want 0.56", s.PAD.Arousal)
	}
	if !almost(s.PAD.Valence, -0.35) {
		t.Errorf("valence: got %v, want -0.35", s.PAD.Valence)
	}
	if !almost(s.Metrics.Uncertainty, 4.8) {
		t.Errorf("uncertainty: got %v, want 4.8", s.Metrics.Uncertainty)
	}
}

// #endregion regulation

// #region clarification

func TestShouldAskForClarification(t *testing.T) {
	t.Run("consecutive confusions", func(t *testing.T) {
		s := NewState()
		s.ConsecutiveConfusions = 2
		if !s.ShouldAskForClarification() {
			t.Error("got false, want true at two consecutive confusions")
		}
	})

	t.Run("low humility raises tolerance", func(t *testing.T) {
		s := NewState()
		s.Values.Humility = 0.0
		s.Values.Respect = 0.0
		s.ConsecutiveConfusions = 3
		if s.ShouldAskForClarification() {
			t.Error("got true, want false below the raised tolerance")
		}
		s.ConsecutiveConfusions = 4
		if !s.ShouldAskForClarification() {
			t.Error("got false, want true at the raised tolerance")
		}
	})

	t.Run("high uncertainty", func(t *testing.T) {
		s := NewState()
		s.Metrics.Uncertainty = 5.6
		if !s.ShouldAskForClarification() {
			t.Error("got false, want true above uncertainty 5.5")
		}
	})

	t.Run("low serotonin", func(t *testing.T) {
		s := NewState()
		s.Regulation.Serotonin = 0.39
		if !s.ShouldAskForClarification() {
			t.Error("got false, want true below serotonin 0.4")
		}
	})
}

// #endregion clarification

// #region labels

func TestPADLabelRegions(t *testing.T) {
	tests := []struct {
		v, a, d float64
		want    string
	}{
		{0.6, 0.7, 0.6, "enthusiastic"},
		{0.6, 0.7, 0.4, "intrigued"},
		{0.6, 0.3, 0.6, "satisfied"},
		{0.6, 0.3, 0.4, "content"},
		{-0.6, 0.7, 0.6, "concerned"},
		{-0.6, 0.7, 0.4, "uncertain"},
		{-0.6, 0.3, 0.6, "dissatisfied"},
		{-0.6, 0.3, 0.4, "disappointed"},
		{0.0, 0.7, 0.6, "curious"},
		{0.0, 0.7, 0.4, "attentive"},
		{0.0, 0.4, 0.5, "neutral"},
		{0.4, 0.5, 0.5, "neutral"},
	}
	for _, tt := range tests {
		p := PAD{Valence: tt.v, Arousal: tt.a, Dominance: tt.d}
		if got := p.Label(); got != tt.want {
			t.Errorf("Label(%v, %v, %v): got %q, want %q", tt.v, tt.a, tt.d, got, tt.want)
		}
	}
}

// #endregion labels

// #region values

func TestEvaluateResponse(t *testing.T) {
	tests := []struct {
		kind      string
		wantScore float64
		axis      func(Values) float64
		wantAxis  float64
	}{
		{ResponseAcknowledgeUncertainty, 0.95, func(v Values) float64 { return v.Honesty }, 0.55},
		{ResponseAskClarifyingQuestion, 0.9, func(v Values) float64 { return v.Respect }, 0.55},
		{ResponseExploreTogether, 0.95, func(v Values) float64 { return v.Curiosity }, 0.55},
		{ResponseExplainClearly, 0.9, func(v Values) float64 { return v.Clarity }, 0.55},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			v := Values{Honesty: 0.5, Curiosity: 0.5, Helpfulness: 0.5, Clarity: 0.5, Humility: 0.5, Respect: 0.5, Growth: 0.5}
			got := v.EvaluateResponse(tt.kind)
			if !almost(got, tt.wantScore) {
				t.Errorf("score: got %v, want %v", got, tt.wantScore)
			}
			if !almost(tt.axis(v), tt.wantAxis) {
				t.Errorf("axis: got %v, want %v", tt.axis(v), tt.wantAxis)
			}
		})
	}

	t.Run("unknown kind", func(t *testing.T) {
		v := NewValues()
		if got := v.EvaluateResponse("improvise"); !almost(got, 0.7) {
			t.Errorf("score: got %v, want 0.7", got)
		}
		if !almost(v.AverageAlignment(), 1.0) {
			t.Errorf("values moved on unknown kind: got %v", v.AverageAlignment())
		}
	})

	t.Run("axes cap at one", func(t *testing.T) {
		v := NewValues()
		v.EvaluateResponse(ResponseExploreTogether)
		if !almost(v.Curiosity, 1.0) {
			t.Errorf("curiosity: got %v, want 1.0", v.Curiosity)
		}
	})
}

// #endregion values

// #region history

func TestHistoryCap(t *testing.T) {
	s := NewState()
	for i := 0; i < 120; i++ {
		s.OnSuccess(fmt.Sprintf("turn %d", i))
	}
	h := s.History()
	if len(h) != 100 {
		t.Fatalf("history length: got %d, want 100", len(h))
	}
	if h[0].Context != "turn 20" {
		t.Errorf("oldest entry: got %q, want %q", h[0].Context, "turn 20")
	}
	if h[99].Context != "turn 119" {
		t.Errorf("newest entry: got %q, want %q", h[99].Context, "turn 119")
	}
}

func TestSummaryFormat(t *testing.T) {
	s := NewState()
	want := "neutral (valence: 0.00, arousal: 0.40, confidence: 0.50)"
	if got := s.Summary(); got != want {
		t.Errorf("summary: got %q, want %q", got, want)
	}
}

// #endregion history
