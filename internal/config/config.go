package config

import (
	"os"
	"strconv"
)

// #region types

// Config holds runtime configuration for a living-RAS session.
type Config struct {
	JournalDir          string  // directory for the append-only JSONL logs
	DBPath              string  // archive database path; empty disables the archive
	SuggestionThreshold int     // occurrences before a weight suggestion is emitted
	ContextBudget       int     // rune capacity used for context-pressure sensing
	LogLevel            string  // zerolog level name
}

// #endregion types

// #region load

// Load reads configuration from environment variables with defaults.
func Load() Config {
	return Config{
		JournalDir:          envStr("RAS_JOURNAL_DIR", "ras_journal"),
		DBPath:              envStr("RAS_DB_PATH", "ras_session.db"),
		SuggestionThreshold: envInt("RAS_SUGGESTION_THRESHOLD", 2),
		ContextBudget:       envInt("RAS_CONTEXT_BUDGET", 100000),
		LogLevel:            envStr("RAS_LOG_LEVEL", "info"),
	}
}

// Validate normalizes out-of-range values. Bad input falls back to the
// default rather than failing.
func (c Config) Validate() Config {
	if c.SuggestionThreshold < 1 {
		c.SuggestionThreshold = 2
	}
	if c.ContextBudget < 1 {
		c.ContextBudget = 100000
	}
	if c.JournalDir == "" {
		c.JournalDir = "ras_journal"
	}
	return c
}

// #endregion load

// #region env-helpers

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

// #endregion env-helpers
