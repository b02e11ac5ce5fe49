package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/living-ras/go-session/internal/archive"
	"github.com/danielpatrickdp/living-ras/go-session/internal/session"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to ras_session.db")
	last := flag.Int("last", 20, "show N most recent sessions or turns")
	sessionID := flag.String("session", "", "show single session detail")
	transitions := flag.Bool("transitions", false, "include mode transitions in session detail")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/ras_session.db [--last N] [--session id] [--transitions] [--json]")
		os.Exit(2)
	}

	arch, err := archive.Open(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer arch.Close()

	if *sessionID != "" {
		if err := runDetailMode(arch, *sessionID, *last, *transitions, *jsonOut); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	} else {
		if err := runListMode(arch, *last, *jsonOut); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
}

// #endregion main

// #region list-mode

type sessionRow struct {
	SessionID string `json:"session_id"`
	StartedAt string `json:"started_at"`
	EndedAt   string `json:"ended_at,omitempty"`
	Turns     int    `json:"turns"`
	Mode      string `json:"mode,omitempty"`
	Emotional string `json:"emotional_summary,omitempty"`
}

func runListMode(arch *archive.Archive, last int, jsonOut bool) error {
	sessions, err := arch.Sessions(last)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Fprintln(os.Stderr, "no sessions found")
		return nil
	}

	// Archive returns DESC, reverse for chronological
	rows := make([]sessionRow, len(sessions))
	for i, sr := range sessions {
		row := sessionRow{
			SessionID: sr.SessionID,
			StartedAt: sr.StartedAt.Format("2006-01-02T15:04:05Z"),
			Turns:     sr.Turns,
		}
		if !sr.EndedAt.IsZero() {
			row.EndedAt = sr.EndedAt.Format("2006-01-02T15:04:05Z")
		}
		if sum := parseSummary(sr.SummaryJSON); sum != nil {
			row.Mode = sum.Mode
			row.Emotional = sum.Emotional
		}
		rows[len(sessions)-1-i] = row
	}

	if jsonOut {
		return printJSON(rows)
	}
	return printSessionTable(rows)
}

func printSessionTable(rows []sessionRow) error {
	fmt.Printf("%-10s  %-20s  %-20s  %5s  %s\n",
		"Session", "Started", "Ended", "Turns", "Mode")
	fmt.Printf("%-10s+-%-20s+-%-20s+-%5s+-%s\n",
		"----------", "--------------------", "--------------------", "-----", "------------")

	for _, r := range rows {
		ended := "open"
		if r.EndedAt != "" {
			ended = r.EndedAt
		}
		fmt.Printf("%-10s  %-20s  %-20s  %5d  %s\n",
			shortID(r.SessionID), r.StartedAt, ended, r.Turns, r.Mode)
	}

	latest := rows[len(rows)-1]
	if latest.Emotional != "" {
		fmt.Printf("\nLatest session: %s\n", latest.Emotional)
	}
	return nil
}

// #endregion list-mode

// #region detail-mode

type turnRow struct {
	Turn       int     `json:"turn"`
	Engagement string  `json:"engagement"`
	Pull       float64 `json:"engagement_pull"`
	Emotion    string  `json:"emotion"`
	Tone       string  `json:"tone"`
	Depth      string  `json:"depth"`
	Goal       string  `json:"primary_goal"`
	Gap        string  `json:"gap_noticed,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

type transitionRow struct {
	From string `json:"from"`
	To   string `json:"to"`
	At   string `json:"at"`
}

type detailOutput struct {
	SessionID   string          `json:"session_id"`
	Turns       []turnRow       `json:"turns"`
	Transitions []transitionRow `json:"transitions,omitempty"`
}

func runDetailMode(arch *archive.Archive, sessionID string, last int, withTransitions, jsonOut bool) error {
	turns, err := arch.Turns(sessionID, last)
	if err != nil {
		return err
	}
	if len(turns) == 0 {
		fmt.Fprintln(os.Stderr, "no turns found")
		return nil
	}

	out := detailOutput{SessionID: sessionID, Turns: make([]turnRow, len(turns))}
	for i, tr := range turns {
		out.Turns[i] = turnRow{
			Turn:       tr.TurnNumber,
			Engagement: tr.Engagement,
			Pull:       tr.EngagementPull,
			Emotion:    tr.Emotion,
			Tone:       tr.Tone,
			Depth:      tr.Depth,
			Goal:       tr.PrimaryGoal,
			Gap:        tr.GapNoticed,
			CreatedAt:  tr.CreatedAt.Format("2006-01-02T15:04:05Z"),
		}
	}

	if withTransitions {
		trs, err := arch.Transitions(sessionID, last)
		if err != nil {
			return err
		}
		for _, tr := range trs {
			out.Transitions = append(out.Transitions, transitionRow{
				From: tr.FromMode,
				To:   tr.ToMode,
				At:   tr.CreatedAt.Format("2006-01-02T15:04:05Z"),
			})
		}
	}

	if jsonOut {
		return printJSON(out)
	}

	fmt.Printf("Session: %s\n\n", sessionID)
	fmt.Printf("%4s  %-13s  %6s  %-12s  %-8s  %-11s  %-17s  %s\n",
		"Turn", "Engagement", "Pull", "Emotion", "Tone", "Depth", "Goal", "Gap")
	fmt.Printf("%4s+-%-13s+-%6s+-%-12s+-%-8s+-%-11s+-%-17s+-%s\n",
		"----", "-------------", "------", "------------", "--------", "-----------", "-----------------", "--------------------")

	for _, r := range out.Turns {
		fmt.Printf("%4d  %-13s  %6.3f  %-12s  %-8s  %-11s  %-17s  %s\n",
			r.Turn, r.Engagement, r.Pull, r.Emotion, r.Tone, r.Depth, r.Goal, r.Gap)
	}

	if len(out.Transitions) > 0 {
		fmt.Printf("\nMode transitions:\n")
		for _, tr := range out.Transitions {
			fmt.Printf("  %s  %s -> %s\n", tr.At, tr.From, tr.To)
		}
	}

	return nil
}

// #endregion detail-mode

// #region output

func parseSummary(summaryJSON string) *session.SessionSummary {
	if summaryJSON == "" {
		return nil
	}
	var sum session.SessionSummary
	if err := json.Unmarshal([]byte(summaryJSON), &sum); err == nil {
		return &sum
	}
	return nil
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// #endregion output
