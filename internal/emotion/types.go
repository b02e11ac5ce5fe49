package emotion

import "time"

// #region pad

// PAD is the three-axis valence/arousal/dominance emotional state.
type PAD struct {
	Valence   float64 `json:"valence"`   // -1 unpleasant to +1 pleasant
	Arousal   float64 `json:"arousal"`   // 0 calm to 1 alert
	Dominance float64 `json:"dominance"` // 0 passive to 1 confident
}

// NewPAD returns the resting PAD coordinate.
func NewPAD() PAD {
	return PAD{Valence: 0.0, Arousal: 0.4, Dominance: 0.5}
}

// Set assigns the coordinate directly, clamping each axis.
func (p *PAD) Set(v, a, d float64) {
	p.Valence = clamp(v, -1, 1)
	p.Arousal = clamp(a, 0, 1)
	p.Dominance = clamp(d, 0, 1)
}

// Label maps the PAD coordinate to an emotion word via fixed region rules.
func (p PAD) Label() string {
	v, a, d := p.Valence, p.Arousal, p.Dominance
	switch {
	case v > 0.5 && a > 0.6:
		if d > 0.5 {
			return "enthusiastic"
		}
		return "intrigued"
	case v > 0.5 && a < 0.4:
		if d > 0.5 {
			return "satisfied"
		}
		return "content"
	case v < -0.5 && a > 0.6:
		if d > 0.5 {
			return "concerned"
		}
		return "uncertain"
	case v < -0.5 && a < 0.4:
		if d > 0.5 {
			return "dissatisfied"
		}
		return "disappointed"
	case v > -0.3 && v < 0.3 && a > 0.6:
		if d > 0.5 {
			return "curious"
		}
		return "attentive"
	default:
		return "neutral"
	}
}

// #endregion pad

// #region regulation

// Regulation is the neuromodulator-styled regulation triple. Each axis is
// bounded [0,1] with its own floor: dopamine 0.1, serotonin 0.3,
// noradrenaline 0.2.
type Regulation struct {
	Dopamine      float64 `json:"dopamine"`      // engagement reward
	Serotonin     float64 `json:"serotonin"`     // stability
	Noradrenaline float64 `json:"noradrenaline"` // alertness
}

// NewRegulation returns the baseline triple.
func NewRegulation() Regulation {
	return Regulation{Dopamine: 0.5, Serotonin: 0.7, Noradrenaline: 0.4}
}

// OnSuccess rewards a productive exchange.
func (r *Regulation) OnSuccess() {
	r.Dopamine = min(1.0, r.Dopamine+0.15)
	r.Serotonin = min(1.0, r.Serotonin+0.08)
	r.Noradrenaline = max(0.2, r.Noradrenaline-0.05)
}

// OnConfusion responds to conversational difficulty.
func (r *Regulation) OnConfusion() {
	r.Dopamine = max(0.1, r.Dopamine-0.08)
	r.Noradrenaline = min(1.0, r.Noradrenaline+0.12)
	r.Serotonin = max(0.3, r.Serotonin-0.03)
}

// Regulate blends the triple back toward baseline.
func (r *Regulation) Regulate() {
	r.Dopamine = r.Dopamine*0.9 + 0.5*0.1
	r.Serotonin = min(1.0, r.Serotonin+0.1)
	r.Noradrenaline = r.Noradrenaline * 0.8
}

// NeedsRegulation reports whether the triple has drifted far enough to
// warrant regulation.
func (r Regulation) NeedsRegulation() bool {
	return r.Serotonin < 0.4 || r.Noradrenaline > 0.8
}

// #endregion regulation

// #region values

// Values are the seven axes grounding conversational engagement, each [0,1].
type Values struct {
	Honesty     float64 `json:"honesty"`
	Curiosity   float64 `json:"curiosity"`
	Helpfulness float64 `json:"helpfulness"`
	Clarity     float64 `json:"clarity"`
	Humility    float64 `json:"humility"`
	Respect     float64 `json:"respect"`
	Growth      float64 `json:"growth"`
}

// NewValues returns the fully-held baseline.
func NewValues() Values {
	return Values{
		Honesty:     1.0,
		Curiosity:   1.0,
		Helpfulness: 1.0,
		Clarity:     1.0,
		Humility:    1.0,
		Respect:     1.0,
		Growth:      1.0,
	}
}

// Response kinds scored by EvaluateResponse.
const (
	ResponseAcknowledgeUncertainty = "acknowledge_uncertainty"
	ResponseAskClarifyingQuestion  = "ask_clarifying_question"
	ResponseExploreTogether        = "explore_together"
	ResponseExplainClearly         = "explain_clearly"
)

// EvaluateResponse scores how a response kind aligns with the values and
// reinforces the axes it expresses. Returns 0.7 for unrecognized kinds.
func (v *Values) EvaluateResponse(kind string) float64 {
	switch kind {
	case ResponseAcknowledgeUncertainty:
		v.Honesty = min(1.0, v.Honesty+0.05)
		v.Humility = min(1.0, v.Humility+0.05)
		return 0.95
	case ResponseAskClarifyingQuestion:
		v.Respect = min(1.0, v.Respect+0.05)
		v.Helpfulness = min(1.0, v.Helpfulness+0.03)
		return 0.9
	case ResponseExploreTogether:
		v.Curiosity = min(1.0, v.Curiosity+0.05)
		v.Growth = min(1.0, v.Growth+0.03)
		return 0.95
	case ResponseExplainClearly:
		v.Clarity = min(1.0, v.Clarity+0.05)
		v.Helpfulness = min(1.0, v.Helpfulness+0.03)
		return 0.9
	default:
		return 0.7
	}
}

// AverageAlignment is the mean of the seven axes.
func (v Values) AverageAlignment() float64 {
	return (v.Honesty + v.Curiosity + v.Helpfulness +
		v.Clarity + v.Humility + v.Respect + v.Growth) / 7
}

// #endregion values

// #region metrics

// Metrics are the coarse interaction gauges on a 0-10 scale.
type Metrics struct {
	Engagement        float64 `json:"engagement"`
	Uncertainty       float64 `json:"uncertainty"`
	ClarityConfidence float64 `json:"clarity_confidence"`
	Satisfaction      float64 `json:"satisfaction"`
}

// NewMetrics returns the neutral starting gauges.
func NewMetrics() Metrics {
	return Metrics{Engagement: 5.0, Uncertainty: 0.0, ClarityConfidence: 5.0, Satisfaction: 5.0}
}

// #endregion metrics

// #region snapshot

// Snapshot is one entry of the emotional history.
type Snapshot struct {
	At         time.Time  `json:"at"`
	Event      string     `json:"event"`
	Context    string     `json:"context"`
	PAD        PAD        `json:"pad"`
	Regulation Regulation `json:"regulation"`
	Values     Values     `json:"values"`
	Metrics    Metrics    `json:"metrics"`
}

// #endregion snapshot

// #region helpers

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// #endregion helpers
