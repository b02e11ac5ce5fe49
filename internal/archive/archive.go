// Package archive keeps a queryable SQLite record of sessions, per-turn
// outcomes, and proprioceptive mode transitions. The JSONL journal remains
// the learning store; the archive exists for inspection after the fact.
package archive

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	session_id   TEXT PRIMARY KEY,
	started_at   TEXT NOT NULL,
	ended_at     TEXT,
	turns        INTEGER NOT NULL DEFAULT 0,
	summary_json TEXT
);

CREATE TABLE IF NOT EXISTS turns (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id      TEXT NOT NULL,
	turn_number     INTEGER NOT NULL,
	message         TEXT NOT NULL,
	engagement      TEXT NOT NULL,
	engagement_pull REAL NOT NULL,
	emotion         TEXT NOT NULL,
	tone            TEXT NOT NULL,
	depth           TEXT NOT NULL,
	primary_goal    TEXT NOT NULL,
	gap_noticed     TEXT,
	record_json     TEXT NOT NULL,
	created_at      TEXT NOT NULL,
	FOREIGN KEY (session_id) REFERENCES sessions(session_id)
);

CREATE TABLE IF NOT EXISTS mode_transitions (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id  TEXT NOT NULL,
	from_mode   TEXT NOT NULL,
	to_mode     TEXT NOT NULL,
	created_at  TEXT NOT NULL,
	FOREIGN KEY (session_id) REFERENCES sessions(session_id)
);
`
// #endregion schema

// #region types

// TurnRow is one archived turn.
type TurnRow struct {
	SessionID      string
	TurnNumber     int
	Message        string
	Engagement     string
	EngagementPull float64
	Emotion        string
	Tone           string
	Depth          string
	PrimaryGoal    string
	GapNoticed     string
	RecordJSON     string
	CreatedAt      time.Time
}

// SessionRow is one archived session.
type SessionRow struct {
	SessionID   string
	StartedAt   time.Time
	EndedAt     time.Time // zero when the session never closed cleanly
	Turns       int
	SummaryJSON string
}

// TransitionRow is one archived mode transition.
type TransitionRow struct {
	SessionID string
	FromMode  string
	ToMode    string
	CreatedAt time.Time
}

// #endregion types

// #region archive-struct
// Archive manages the session history database.
type Archive struct {
	db *sql.DB
}
// #endregion archive-struct

// #region constructor
// Open opens the SQLite database and runs migrations.
func Open(dbPath string) (*Archive, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Archive{db: db}, nil
}
// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (a *Archive) Close() error {
	return a.db.Close()
}
// #endregion close

// #region sessions

// BeginSession inserts a new session row and returns its ID.
func (a *Archive) BeginSession() (string, error) {
	id := uuid.New().String()
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := a.db.Exec(
		`INSERT INTO sessions (session_id, started_at) VALUES (?, ?)`, id, now,
	)
	if err != nil {
		return "", fmt.Errorf("begin session: %w", err)
	}
	return id, nil
}

// EndSession marks a session closed with its final turn count and summary.
func (a *Archive) EndSession(sessionID string, turns int, summaryJSON string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	var summaryPtr interface{}
	if summaryJSON != "" {
		summaryPtr = summaryJSON
	}

	res, err := a.db.Exec(
		`UPDATE sessions SET ended_at = ?, turns = ?, summary_json = ? WHERE session_id = ?`,
		now, turns, summaryPtr, sessionID,
	)
	if err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("session %s not found", sessionID)
	}
	return nil
}

// Sessions returns the most recent sessions.
func (a *Archive) Sessions(limit int) ([]SessionRow, error) {
	rows, err := a.db.Query(
		`SELECT session_id, started_at, ended_at, turns, summary_json
		 FROM sessions ORDER BY started_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRow
	for rows.Next() {
		var rec SessionRow
		var startedStr string
		var endedStr sql.NullString
		var summary sql.NullString

		if err := rows.Scan(&rec.SessionID, &startedStr, &endedStr, &rec.Turns, &summary); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		rec.StartedAt, _ = time.Parse(time.RFC3339Nano, startedStr)
		if endedStr.Valid {
			rec.EndedAt, _ = time.Parse(time.RFC3339Nano, endedStr.String)
		}
		if summary.Valid {
			rec.SummaryJSON = summary.String
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// #endregion sessions

// #region turns

// RecordTurn archives one processed turn.
func (a *Archive) RecordTurn(rec TurnRow) error {
	var gapPtr interface{}
	if rec.GapNoticed != "" {
		gapPtr = rec.GapNoticed
	}

	created := rec.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}

	_, err := a.db.Exec(
		`INSERT INTO turns (session_id, turn_number, message, engagement, engagement_pull,
		                    emotion, tone, depth, primary_goal, gap_noticed, record_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID, rec.TurnNumber, rec.Message, rec.Engagement, rec.EngagementPull,
		rec.Emotion, rec.Tone, rec.Depth, rec.PrimaryGoal, gapPtr, rec.RecordJSON,
		created.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record turn: %w", err)
	}
	return nil
}

// Turns returns a session's turns in processing order.
func (a *Archive) Turns(sessionID string, limit int) ([]TurnRow, error) {
	rows, err := a.db.Query(
		`SELECT session_id, turn_number, message, engagement, engagement_pull,
		        emotion, tone, depth, primary_goal, gap_noticed, record_json, created_at
		 FROM turns WHERE session_id = ? ORDER BY turn_number ASC LIMIT ?`,
		sessionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list turns: %w", err)
	}
	defer rows.Close()

	var out []TurnRow
	for rows.Next() {
		var rec TurnRow
		var gap sql.NullString
		var createdStr string

		if err := rows.Scan(&rec.SessionID, &rec.TurnNumber, &rec.Message, &rec.Engagement,
			&rec.EngagementPull, &rec.Emotion, &rec.Tone, &rec.Depth, &rec.PrimaryGoal,
			&gap, &rec.RecordJSON, &createdStr); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		if gap.Valid {
			rec.GapNoticed = gap.String
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// #endregion turns

// #region transitions

// RecordTransition archives one proprioceptive mode change.
func (a *Archive) RecordTransition(sessionID, fromMode, toMode string, at time.Time) error {
	if at.IsZero() {
		at = time.Now().UTC()
	}
	_, err := a.db.Exec(
		`INSERT INTO mode_transitions (session_id, from_mode, to_mode, created_at)
		 VALUES (?, ?, ?, ?)`,
		sessionID, fromMode, toMode, at.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record transition: %w", err)
	}
	return nil
}

// Transitions returns a session's mode transitions in order.
func (a *Archive) Transitions(sessionID string, limit int) ([]TransitionRow, error) {
	rows, err := a.db.Query(
		`SELECT session_id, from_mode, to_mode, created_at
		 FROM mode_transitions WHERE session_id = ? ORDER BY id ASC LIMIT ?`,
		sessionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list transitions: %w", err)
	}
	defer rows.Close()

	var out []TransitionRow
	for rows.Next() {
		var rec TransitionRow
		var createdStr string
		if err := rows.Scan(&rec.SessionID, &rec.FromMode, &rec.ToMode, &createdStr); err != nil {
			return nil, fmt.Errorf("scan transition: %w", err)
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// #endregion transitions
