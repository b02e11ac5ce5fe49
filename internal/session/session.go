// Package session drives the perceive-reflect-decide-act-learn cycle.
// One Session owns the felt sense, emotional model, proprioceptive
// monitor, pattern learner, and bounded histories for one conversation.
// The cycle is fully synchronous; a single goroutine drives everything.
package session

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/danielpatrickdp/living-ras/go-session/internal/archive"
	"github.com/danielpatrickdp/living-ras/go-session/internal/config"
	"github.com/danielpatrickdp/living-ras/go-session/internal/emotion"
	"github.com/danielpatrickdp/living-ras/go-session/internal/felt"
	"github.com/danielpatrickdp/living-ras/go-session/internal/gaps"
	"github.com/danielpatrickdp/living-ras/go-session/internal/intention"
	"github.com/danielpatrickdp/living-ras/go-session/internal/journal"
	"github.com/danielpatrickdp/living-ras/go-session/internal/proprio"
)

// #region session-struct

const (
	memoryCap      = 10
	momentsCap     = 50
	contextSnippet = 100
)

// Session is the top-level coordinator. Not safe for concurrent use.
type Session struct {
	cfg      config.Config
	journal  *journal.Journal
	learner  *gaps.Learner
	emotions *emotion.State
	monitor  *proprio.Monitor

	arch          *archive.Archive // nil when archiving is disabled
	archSessionID string

	memory      []MemoryEntry
	moments     []Moment
	exchanges   int
	contextUsed int
	lastMode    proprio.Mode
	closed      bool
}

// #endregion session-struct

// #region constructor

// New opens the journal, restores accumulated patterns, and wires the
// emotional model, proprioceptive monitor, and optional archive.
// Persistence trouble degrades the session rather than failing it: a
// partial journal reload or an unavailable archive logs a warning and
// the session continues in memory.
func New(cfg config.Config) (*Session, error) {
	cfg = cfg.Validate()

	j, err := journal.Open(cfg.JournalDir)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	res, err := j.Load()
	if err != nil {
		log.Warn().Err(err).Msg("journal reload incomplete, continuing with partial state")
	}

	learner := gaps.NewLearner(cfg.SuggestionThreshold, j)
	learner.Restore(res)

	s := &Session{
		cfg:      cfg,
		journal:  j,
		learner:  learner,
		emotions: emotion.NewState(),
		monitor:  proprio.NewMonitor(cfg.ContextBudget),
	}
	s.lastMode = s.monitor.Mode()

	if cfg.DBPath != "" {
		arch, err := archive.Open(cfg.DBPath)
		if err != nil {
			log.Warn().Err(err).Str("path", cfg.DBPath).Msg("archive unavailable, session will not be archived")
		} else if id, err := arch.BeginSession(); err != nil {
			log.Warn().Err(err).Msg("archive session not started")
			arch.Close()
		} else {
			s.arch = arch
			s.archSessionID = id
		}
	}

	log.Info().
		Str("journal", cfg.JournalDir).
		Int("patterns_restored", len(res.Patterns)).
		Bool("archived", s.arch != nil).
		Msg("session started")

	return s, nil
}

// #endregion constructor

// #region process-turn

// ProcessTurn runs one full cycle over the input and returns the trace.
func (s *Session) ProcessTurn(in TurnInput) TurnRecord {
	perception := s.perceive(in)
	reflection := s.reflect(perception)
	decision := s.decide(reflection)
	guidance := s.act(reflection, decision)
	outcome, learning := s.learn(in, perception, reflection)

	rec := TurnRecord{
		Perception: perception,
		Reflection: reflection,
		Decision:   decision,
		Guidance:   guidance,
		Outcome:    outcome,
		Learning:   learning,
	}

	s.remember(perception, reflection)
	s.condense(perception, reflection, outcome)
	s.archiveTurn(rec)

	return rec
}

// #endregion process-turn

// #region perceive

// perceive captures the raw turn intake.
func (s *Session) perceive(in TurnInput) Perception {
	return Perception{
		Message:      in.Message,
		Identity:     in.Identity,
		Relationship: in.Relationship,
		PriorTurns:   len(s.memory),
		At:           time.Now().UTC(),
	}
}

// #endregion perceive

// #region reflect

// reflect integrates the felt sense, the emotional reading, and the
// proprioceptive scan into one picture of the moment.
func (s *Session) reflect(p Perception) Reflection {
	vec := felt.Sense(felt.Context{
		Message:      p.Message,
		Identity:     p.Identity,
		Relationship: p.Relationship,
		PriorTurns:   p.PriorTurns,
		At:           p.At,
	})
	level := felt.LevelFor(vec.EngagementPull)
	labels := emotion.FeltLabels(vec)
	primary := s.emotions.PAD.Label()

	s.contextUsed += len([]rune(p.Message))
	state := s.monitor.Scan(vec.EngagementPull, s.contextUsed)

	return Reflection{
		Felt:                 vec,
		EngagementPull:       vec.EngagementPull,
		EngagementLevel:      level.String(),
		EngagementFeeling:    emotion.InterpretEngagement(vec.EngagementPull),
		PrimaryEmotion:       primary,
		EmotionalLabels:      labels,
		EmotionalState:       s.emotions.PAD,
		ContextUnderstanding: understand(p.Relationship, primary, level.String(), labels),
		Proprioception:       state,
	}
}

// understand renders a compact reading of the situation for the
// guidance payload.
func understand(relationship, primaryEmotion, levelName string, labels []string) string {
	segments := make([]string, 0, 4)
	if relationship != "" {
		segments = append(segments, "Known relationship: "+relationship)
	}
	segments = append(segments, "Emotional state: "+primaryEmotion)
	segments = append(segments, "Engagement level: "+levelName)
	if len(labels) > 0 {
		segments = append(segments, "Feeling: "+strings.Join(labels, ", "))
	}
	return strings.Join(segments, " | ")
}

// #endregion reflect

// #region decide

// decide forms the response intention from the felt reading and the
// emotional model's clarification signal.
func (s *Session) decide(r Reflection) Decision {
	level := felt.LevelFor(r.EngagementPull)
	intent := intention.Form(r.Felt, level)

	return Decision{
		EngagementLevel:          level.String(),
		Tone:                     intent.Tone,
		Depth:                    intent.Depth,
		ShouldExplore:            intent.ShouldExplore,
		ShouldChallenge:          intent.ShouldChallenge,
		ShouldExpressUncertainty: intent.ShouldExpressUncertainty,
		ShouldAskClarification:   s.emotions.ShouldAskForClarification(),
		PrimaryGoal:              intent.PrimaryGoal,
		EmotionalPriority:        intention.Priority(r.EngagementPull, r.PrimaryEmotion),
	}
}

// #endregion decide

// #region act

// act renders the decision as guidance and scores the chosen response
// kind against the value axes.
func (s *Session) act(r Reflection, d Decision) Guidance {
	kind := responseKind(d)

	return Guidance{
		EngagementLevel: d.EngagementLevel,
		Tone:            d.Tone,
		Depth:           d.Depth,
		PrimaryGoal:     d.PrimaryGoal,
		ResponseKind:    kind,
		ValuesAlignment: s.emotions.Values.EvaluateResponse(kind),
		Emotional: EmotionalContext{
			PrimaryEmotion:  r.PrimaryEmotion,
			EmotionalLabels: r.EmotionalLabels,
			Priority:        d.EmotionalPriority,
		},
		ShouldExplore:          d.ShouldExplore,
		ShouldAskClarification: d.ShouldAskClarification,
		ContextUnderstanding:   r.ContextUnderstanding,
	}
}

// responseKind picks the response category in priority order: expressed
// uncertainty beats clarification, clarification beats exploration.
func responseKind(d Decision) string {
	switch {
	case d.ShouldExpressUncertainty:
		return emotion.ResponseAcknowledgeUncertainty
	case d.ShouldAskClarification:
		return emotion.ResponseAskClarifyingQuestion
	case d.ShouldExplore:
		return emotion.ResponseExploreTogether
	default:
		return emotion.ResponseExplainClearly
	}
}

// #endregion act

// #region learn

// learn compares the computed engagement with what the caller reported,
// feeds any gap to the pattern learner, and moves the emotional model.
func (s *Session) learn(in TurnInput, p Perception, r Reflection) (Outcome, Learning) {
	level := felt.LevelFor(r.EngagementPull)

	actual := in.ActualFelt
	if parsed, ok := felt.ParseLevel(actual); ok {
		actual = parsed.String()
	}

	gap := actual != "" && actual != level.String()
	gapDesc := ""
	if gap {
		gapDesc = in.GapDescription
		if gapDesc == "" {
			gapDesc = fmt.Sprintf("RAS computed %s, but felt %s", level, actual)
		}
	}

	outcome := Outcome{
		ExchangeSuccessful: !gap,
		GapDetected:        gap,
		GapDescription:     gapDesc,
	}

	if in.ActualFelt != "" {
		obs := s.learner.Notice(
			"Conversation: "+snippet(p.Message, contextSnippet),
			level.String(),
			actual,
			gapDesc,
			gradeSignificance(level, in.ActualFelt),
		)
		outcome.MomentRecorded = true
		outcome.PatternUpdated = obs.Classified
	}

	if gap {
		s.emotions.OnConfusion("conversation")
	} else {
		s.emotions.OnSuccess("conversation")
	}

	s.exchanges++

	ins := s.learner.Insights()
	return outcome, Learning{
		ExchangesProcessed: s.exchanges,
		PatternsDetected:   ins.PatternsDetected,
		ReadySuggestions:   ins.ReadySuggestions,
		Status:             ins.Status,
	}
}

// gradeSignificance rates a reported engagement against the computed
// one. Distance of two or more levels, or reported full presence, rates
// high; agreement rates low; anything unparseable stays medium.
func gradeSignificance(computed felt.Level, actualRaw string) string {
	actual, ok := felt.ParseLevel(actualRaw)
	if !ok {
		return "medium"
	}
	dist := int(actual) - int(computed)
	if dist < 0 {
		dist = -dist
	}
	switch {
	case dist == 0:
		return "low"
	case dist >= 2 || actual == felt.LevelFullPresence:
		return "high"
	default:
		return "medium"
	}
}

// #endregion learn

// #region history

// remember appends the turn to the bounded conversational memory.
func (s *Session) remember(p Perception, r Reflection) {
	s.memory = append(s.memory, MemoryEntry{
		At:      p.At,
		Message: p.Message,
		Pull:    r.EngagementPull,
		Level:   r.EngagementLevel,
	})
	if len(s.memory) > memoryCap {
		s.memory = s.memory[len(s.memory)-memoryCap:]
	}
}

// condense appends the turn's condensed trace to the moment history.
func (s *Session) condense(p Perception, r Reflection, o Outcome) {
	s.moments = append(s.moments, Moment{
		At:             p.At,
		Message:        snippet(p.Message, contextSnippet),
		Engagement:     r.EngagementLevel,
		Pull:           r.EngagementPull,
		Emotion:        r.PrimaryEmotion,
		Mode:           r.Proprioception.Mode.String(),
		GapDetected:    o.GapDetected,
		GapDescription: o.GapDescription,
	})
	if len(s.moments) > momentsCap {
		s.moments = s.moments[len(s.moments)-momentsCap:]
	}
}

// Memory returns a copy of the conversational memory.
func (s *Session) Memory() []MemoryEntry {
	out := make([]MemoryEntry, len(s.memory))
	copy(out, s.memory)
	return out
}

// Moments returns a copy of the condensed turn history.
func (s *Session) Moments() []Moment {
	out := make([]Moment, len(s.moments))
	copy(out, s.moments)
	return out
}

// #endregion history

// #region actions

// TrackAction notes a tool or capability use for proprioceptive sensing.
func (s *Session) TrackAction(label string) {
	s.monitor.Track(label)
}

// Emotions exposes the emotional model for inspection.
func (s *Session) Emotions() *emotion.State {
	return s.emotions
}

// Learner exposes the pattern learner for inspection.
func (s *Session) Learner() *gaps.Learner {
	return s.learner
}

// Monitor exposes the proprioceptive monitor for inspection.
func (s *Session) Monitor() *proprio.Monitor {
	return s.monitor
}

// #endregion actions

// #region archive

// archiveTurn writes the turn and any mode transition to the archive.
// Archive failures degrade to warnings; the cycle never depends on it.
func (s *Session) archiveTurn(rec TurnRecord) {
	if s.arch == nil {
		return
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		log.Warn().Err(err).Msg("turn record not serializable, skipping archive")
		return
	}

	row := archive.TurnRow{
		SessionID:      s.archSessionID,
		TurnNumber:     s.exchanges,
		Message:        rec.Perception.Message,
		Engagement:     rec.Reflection.EngagementLevel,
		EngagementPull: rec.Reflection.EngagementPull,
		Emotion:        rec.Reflection.PrimaryEmotion,
		Tone:           rec.Decision.Tone,
		Depth:          rec.Decision.Depth,
		PrimaryGoal:    rec.Decision.PrimaryGoal,
		GapNoticed:     rec.Outcome.GapDescription,
		RecordJSON:     string(raw),
		CreatedAt:      rec.Perception.At,
	}
	if err := s.arch.RecordTurn(row); err != nil {
		log.Warn().Err(err).Msg("turn not archived")
	}

	mode := rec.Reflection.Proprioception.Mode
	if mode != s.lastMode {
		if err := s.arch.RecordTransition(s.archSessionID, s.lastMode.String(), mode.String(), rec.Perception.At); err != nil {
			log.Warn().Err(err).Msg("mode transition not archived")
		}
	}
	s.lastMode = mode
}

// #endregion archive

// #region summary

// Summary digests the session state.
func (s *Session) Summary() SessionSummary {
	ins := s.learner.Insights()
	sum := SessionSummary{
		Exchanges:        s.exchanges,
		Emotional:        s.emotions.Summary(),
		Mode:             s.monitor.Mode().String(),
		Moments:          len(s.moments),
		PatternsDetected: ins.PatternsDetected,
		ReadySuggestions: ins.ReadySuggestions,
		LearningStatus:   ins.Status,
	}
	if stream := s.monitor.Stream(); len(stream) > 0 {
		sum.Sensation = stream[len(stream)-1].Sensation
	}
	return sum
}

// #endregion summary

// #region close

// Close consolidates the session into the journal, finalizes the
// archive record, and releases resources. Safe to call more than once.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	significant := 0
	for _, m := range s.moments {
		if m.Pull > 0.6 {
			significant++
		}
	}

	sum := s.Summary()
	moment := journal.MomentRecord{
		Context: fmt.Sprintf("Session consolidated: %d exchanges, %d of %d moments significant",
			sum.Exchanges, significant, len(s.moments)),
		RASEngagement:  sum.Mode,
		FeltEngagement: sum.Emotional,
		Significance:   "consolidation",
	}
	if err := s.journal.AppendMoment(moment); err != nil {
		log.Warn().Err(err).Msg("consolidation moment not persisted")
	}

	var closeErr error
	if s.arch != nil {
		raw, err := json.Marshal(sum)
		if err != nil {
			raw = []byte("{}")
		}
		if err := s.arch.EndSession(s.archSessionID, s.exchanges, string(raw)); err != nil {
			log.Warn().Err(err).Msg("archive session not finalized")
		}
		closeErr = s.arch.Close()
	}

	log.Info().Int("exchanges", s.exchanges).Msg("session closed")
	return closeErr
}

// #endregion close

// #region helpers

// snippet returns the first n runes of s.
func snippet(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// #endregion helpers
