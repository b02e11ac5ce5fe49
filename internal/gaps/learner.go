package gaps

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/danielpatrickdp/living-ras/go-session/internal/journal"
)

// #region types

const contextCap = 10

// Pattern is the accumulated state for one gap type. Occurrences only ever
// grow; the context list is session-scoped and capped.
type Pattern struct {
	Type        string
	Dimension   string
	Description string
	Occurrences int
	Contexts    []string
	Confidence  float64
	Adjustment  float64
}

// Suggestion is a weight-adjustment recommendation, emitted at most once
// per pattern type and immutable afterwards.
type Suggestion struct {
	PatternType     string
	Dimension       string
	Occurrences     int
	Adjustment      float64
	Ready           bool
	CurrentBehavior string
	ProposedChange  string
	Rationale       string
}

// Observation is what one Notice call produced.
type Observation struct {
	Classified bool
	Pattern    Pattern
	Suggestion *Suggestion
}

// Insights summarizes the learning state for a turn record.
type Insights struct {
	PatternsDetected int
	ReadySuggestions int
	Threshold        int
	Status           string
}

// Recorder receives the records a Learner wants persisted.
type Recorder interface {
	AppendPattern(journal.PatternRecord) error
	AppendSuggestion(journal.SuggestionRecord) error
	AppendMoment(journal.MomentRecord) error
}

// #endregion types

// #region learner

// Learner owns the pattern map and suggestion dedup set for one session.
type Learner struct {
	threshold   int
	rec         Recorder
	patterns    map[string]*Pattern
	suggested   map[string]bool
	suggestions []Suggestion
}

// NewLearner returns a Learner that suggests once a pattern reaches
// threshold occurrences.
func NewLearner(threshold int, rec Recorder) *Learner {
	return &Learner{
		threshold: threshold,
		rec:       rec,
		patterns:  make(map[string]*Pattern),
		suggested: make(map[string]bool),
	}
}

// Restore seeds the learner from reloaded journal state. Restored patterns
// carry counts, dimension, confidence, and adjustment but no context
// snippets; previously suggested types will not suggest again.
func (l *Learner) Restore(res journal.LoadResult) {
	for typ, rec := range res.Patterns {
		l.patterns[typ] = &Pattern{
			Type:        typ,
			Dimension:   rec.Dimension,
			Occurrences: rec.Occurrences,
			Confidence:  rec.Confidence,
			Adjustment:  rec.SuggestedAdjustment,
		}
	}
	for typ := range res.SuggestedTypes {
		l.suggested[typ] = true
	}
}

// Notice records one observed moment. The moment is always persisted; the
// pattern map is updated only when a gap description is present and a
// classification rule matches. Persistence failures are logged and
// swallowed so the turn continues at reduced fidelity.
func (l *Learner) Notice(context, computed, actual, gapDesc, significance string) Observation {
	moment := journal.MomentRecord{
		Context:        context,
		RASEngagement:  computed,
		FeltEngagement: actual,
		GapNoticed:     gapDesc,
		Significance:   significance,
	}
	if err := l.rec.AppendMoment(moment); err != nil {
		log.Warn().Err(err).Msg("moment not persisted")
	}

	if gapDesc == "" {
		return Observation{}
	}
	return l.updatePattern(gapDesc, context)
}

func (l *Learner) updatePattern(gapDesc, context string) Observation {
	cls, ok := Classify(gapDesc, context)
	if !ok {
		return Observation{}
	}

	p := l.patterns[cls.PatternType]
	if p == nil {
		p = &Pattern{
			Type:        cls.PatternType,
			Dimension:   cls.Dimension,
			Description: cls.Description,
		}
		l.patterns[cls.PatternType] = p
	}
	if p.Description == "" {
		p.Description = cls.Description
	}

	p.Occurrences++
	p.Contexts = append(p.Contexts, context)
	if len(p.Contexts) > contextCap {
		p.Contexts = p.Contexts[len(p.Contexts)-contextCap:]
	}
	p.Confidence = min(1.0, float64(p.Occurrences)/3.0)
	switch {
	case p.Occurrences >= 3:
		p.Adjustment = 0.3
	case p.Occurrences == 2:
		p.Adjustment = 0.2
	default:
		p.Adjustment = 0
	}

	if err := l.rec.AppendPattern(journal.PatternRecord{
		PatternType:         p.Type,
		Occurrences:         p.Occurrences,
		Dimension:           p.Dimension,
		Confidence:          p.Confidence,
		SuggestedAdjustment: p.Adjustment,
	}); err != nil {
		log.Warn().Err(err).Str("pattern", p.Type).Msg("pattern not persisted")
	}

	obs := Observation{Classified: true, Pattern: *p}
	if p.Occurrences >= l.threshold && !l.suggested[p.Type] {
		obs.Suggestion = l.suggest(p)
	}
	return obs
}

func (l *Learner) suggest(p *Pattern) *Suggestion {
	s := Suggestion{
		PatternType:     p.Type,
		Dimension:       p.Dimension,
		Occurrences:     p.Occurrences,
		Adjustment:      p.Adjustment,
		Ready:           p.Confidence >= 0.66,
		CurrentBehavior: fmt.Sprintf("RAS %s consistently underweights %s", p.Dimension, p.Type),
		ProposedChange:  fmt.Sprintf("Increase %s weight by +%g for %s signals", p.Dimension, p.Adjustment, p.Type),
		Rationale:       rationaleFor(p),
	}
	l.suggested[p.Type] = true
	l.suggestions = append(l.suggestions, s)

	if err := l.rec.AppendSuggestion(journal.SuggestionRecord{
		PatternType:    s.PatternType,
		Occurrences:    s.Occurrences,
		Dimension:      s.Dimension,
		Adjustment:     s.Adjustment,
		Ready:          s.Ready,
		Rationale:      s.Rationale,
		ProposedChange: s.ProposedChange,
	}); err != nil {
		log.Warn().Err(err).Str("pattern", s.PatternType).Msg("suggestion not persisted")
	}
	return &s
}

func rationaleFor(p *Pattern) string {
	shown := p.Contexts
	suffix := ""
	if len(shown) > 2 {
		shown = shown[:2]
		suffix = "..."
	}
	return fmt.Sprintf("Pattern observed %d times across contexts: %s%s",
		p.Occurrences, strings.Join(shown, ", "), suffix)
}

// #endregion learner

// #region queries

// Patterns returns the accumulated patterns ordered by type.
func (l *Learner) Patterns() []Pattern {
	types := make([]string, 0, len(l.patterns))
	for typ := range l.patterns {
		types = append(types, typ)
	}
	sort.Strings(types)

	out := make([]Pattern, 0, len(types))
	for _, typ := range types {
		out = append(out, *l.patterns[typ])
	}
	return out
}

// Suggestions returns the suggestions emitted during this session.
func (l *Learner) Suggestions() []Suggestion {
	out := make([]Suggestion, len(l.suggestions))
	copy(out, l.suggestions)
	return out
}

// Insights reports the current learning state.
func (l *Learner) Insights() Insights {
	ready := 0
	for _, s := range l.suggestions {
		if s.Ready {
			ready++
		}
	}
	status := "Accumulating experience"
	if ready > 0 {
		status = "Ready to integrate learning"
	}
	return Insights{
		PatternsDetected: len(l.patterns),
		ReadySuggestions: ready,
		Threshold:        l.threshold,
		Status:           status,
	}
}

// #endregion queries
