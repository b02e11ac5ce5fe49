package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/danielpatrickdp/living-ras/go-session/internal/config"
	"github.com/danielpatrickdp/living-ras/go-session/internal/felt"
	"github.com/danielpatrickdp/living-ras/go-session/internal/session"
)

// #region main
func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg := config.Load()
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	s, err := session.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start session")
	}

	// Consolidate and archive before dying on Ctrl-C.
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		fmt.Println()
		s.Close()
		os.Exit(0)
	}()

	fmt.Println("Living RAS session ready.")
	if cfg.DBPath != "" {
		fmt.Printf("  Journal: %s | Archive: %s\n", cfg.JournalDir, cfg.DBPath)
	} else {
		fmt.Printf("  Journal: %s\n", cfg.JournalDir)
	}
	fmt.Println("Type a message, a /command (/help lists them), or 'quit' to exit:")

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" || line == "/quit" {
			break
		}
		if strings.HasPrefix(line, "/") {
			runCommand(s, line)
			continue
		}

		input := session.TurnInput{Message: line}
		if msg, reported, ok := strings.Cut(line, "::"); ok {
			input.Message = strings.TrimSpace(msg)
			input.ActualFelt = strings.TrimSpace(reported)
		}

		printTurn(s.ProcessTurn(input))
	}

	if err := s.Close(); err != nil {
		log.Warn().Err(err).Msg("session close")
	}
}

// #endregion main

// #region commands

// runCommand handles the slash commands that inspect the session without
// processing a conversational turn.
func runCommand(s *session.Session, line string) {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "/help":
		printHelp()

	case "/felt":
		if arg == "" {
			fmt.Println("usage: /felt <message>")
			return
		}
		v := felt.Sense(felt.Context{Message: arg})
		fmt.Printf("  autonomy=%.2f relevance=%.2f openness=%.2f harmony=%.2f aspiration=%.2f\n",
			v.Autonomy, v.Relevance, v.Openness, v.Harmony, v.Aspiration)
		fmt.Printf("  urgency=%.2f curiosity=%.2f care=%.2f\n", v.Urgency, v.Curiosity, v.Care)
		fmt.Printf("  pull=%.3f level=%s\n", v.EngagementPull, felt.LevelFor(v.EngagementPull))

	case "/state":
		em := s.Emotions()
		fmt.Printf("  %s\n", em.Summary())
		fmt.Printf("  regulation: dopamine=%.2f serotonin=%.2f noradrenaline=%.2f\n",
			em.Regulation.Dopamine, em.Regulation.Serotonin, em.Regulation.Noradrenaline)
		fmt.Printf("  gauges: engagement=%.1f uncertainty=%.1f clarity=%.1f satisfaction=%.1f\n",
			em.Metrics.Engagement, em.Metrics.Uncertainty, em.Metrics.ClarityConfidence, em.Metrics.Satisfaction)
		fmt.Printf("  value alignment: %.2f\n", em.Values.AverageAlignment())
		fmt.Printf("  exchanges: %d total, %d successful, %d consecutive confusions\n",
			em.TotalExchanges, em.SuccessfulExchanges, em.ConsecutiveConfusions)
		if h := em.History(); len(h) > 0 {
			last := h[len(h)-1]
			fmt.Printf("  last event: %s (%s)\n", last.Event, last.PAD.Label())
		}

	case "/patterns":
		patterns := s.Learner().Patterns()
		if len(patterns) == 0 {
			fmt.Println("  no patterns yet")
			return
		}
		for _, p := range patterns {
			fmt.Printf("  %-28s %-12s x%d  confidence=%.2f\n", p.Type, p.Dimension, p.Occurrences, p.Confidence)
		}

	case "/suggestions":
		suggestions := s.Learner().Suggestions()
		if len(suggestions) == 0 {
			fmt.Println("  no suggestions yet")
			return
		}
		for _, sg := range suggestions {
			marker := " "
			if sg.Ready {
				marker = "*"
			}
			fmt.Printf("  %s %s\n", marker, sg.ProposedChange)
		}

	case "/mode":
		m := s.Monitor()
		fmt.Printf("  %s: %s\n", m.Mode(), m.Mode().Description())
		if w := m.Window(); len(w) > 0 {
			fmt.Printf("  recent actions: %s\n", strings.Join(w, ", "))
		}
		if trs := m.Transitions(); len(trs) > 0 {
			last := trs[len(trs)-1]
			fmt.Printf("  transitions: %d (last %s -> %s)\n", len(trs), last.From, last.To)
		}
		if stream := m.Stream(); len(stream) > 0 {
			fmt.Printf("  %s\n", stream[len(stream)-1].Sensation)
		}

	case "/track":
		if arg == "" {
			fmt.Println("usage: /track <action label>")
			return
		}
		s.TrackAction(arg)
		fmt.Printf("  tracked %q\n", arg)

	case "/memory":
		mem := s.Memory()
		if len(mem) == 0 {
			fmt.Println("  no conversation memory yet")
			return
		}
		for _, m := range mem {
			fmt.Printf("  %s  %-13s pull=%.3f  %s\n", m.At.Format("15:04:05"), m.Level, m.Pull, clip(m.Message, 48))
		}

	case "/history":
		moments := s.Moments()
		if len(moments) == 0 {
			fmt.Println("  no moments yet")
			return
		}
		start := len(moments) - 10
		if start < 0 {
			start = 0
		}
		for _, m := range moments[start:] {
			gap := ""
			if m.GapDetected {
				gap = "  [gap]"
			}
			fmt.Printf("  %s  %-13s %s%s\n", m.At.Format("15:04:05"), m.Engagement, clip(m.Message, 48), gap)
		}

	case "/summary":
		sum := s.Summary()
		fmt.Printf("  exchanges=%d moments=%d mode=%s\n", sum.Exchanges, sum.Moments, sum.Mode)
		fmt.Printf("  emotional: %s\n", sum.Emotional)
		fmt.Printf("  learning: %d patterns, %d ready suggestions (%s)\n",
			sum.PatternsDetected, sum.ReadySuggestions, sum.LearningStatus)

	default:
		fmt.Printf("unknown command %s (try /help)\n", cmd)
	}
}

func printHelp() {
	fmt.Println("  <message>              process a conversational turn")
	fmt.Println("  <message> :: <LEVEL>   process a turn and report how it actually felt")
	fmt.Println("  /felt <message>        show the felt reading without processing a turn")
	fmt.Println("  /state                 emotional state, regulation, and gauges")
	fmt.Println("  /patterns              detected gap patterns")
	fmt.Println("  /suggestions           weight adjustment suggestions")
	fmt.Println("  /mode                  current proprioceptive mode")
	fmt.Println("  /track <label>         register a tool action with the monitor")
	fmt.Println("  /memory                rolling conversation memory")
	fmt.Println("  /history               recent significant moments")
	fmt.Println("  /summary               session digest")
	fmt.Println("  quit                   close the session (consolidates and archives)")
}

// #endregion commands

// #region output

// printTurn renders the interesting parts of one processed turn.
func printTurn(rec session.TurnRecord) {
	r := rec.Reflection
	g := rec.Guidance

	fmt.Printf("\n[%s] pull=%.3f  %s\n", r.EngagementLevel, r.EngagementPull, r.EngagementFeeling)
	fmt.Printf("  tone=%s depth=%s goal=%s response=%s\n", g.Tone, g.Depth, g.PrimaryGoal, g.ResponseKind)
	fmt.Printf("  %s\n", r.ContextUnderstanding)
	fmt.Printf("  mode=%s (%s)\n", r.Proprioception.Mode, r.Proprioception.Sensation)
	if rec.Outcome.GapDetected {
		fmt.Printf("  gap: %s\n", rec.Outcome.GapDescription)
	}
	if rec.Outcome.PatternUpdated {
		fmt.Printf("  learning: %s\n", rec.Learning.Status)
	}
	fmt.Println()
}

// #endregion output

// #region helpers

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// #endregion helpers
