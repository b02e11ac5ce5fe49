package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.JournalDir != "ras_journal" {
		t.Errorf("JournalDir: got %q, want %q", cfg.JournalDir, "ras_journal")
	}
	if cfg.DBPath != "ras_session.db" {
		t.Errorf("DBPath: got %q, want %q", cfg.DBPath, "ras_session.db")
	}
	if cfg.SuggestionThreshold != 2 {
		t.Errorf("SuggestionThreshold: got %d, want 2", cfg.SuggestionThreshold)
	}
	if cfg.ContextBudget != 100000 {
		t.Errorf("ContextBudget: got %d, want 100000", cfg.ContextBudget)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("RAS_JOURNAL_DIR", "/tmp/journal")
	t.Setenv("RAS_DB_PATH", "")
	t.Setenv("RAS_SUGGESTION_THRESHOLD", "3")
	t.Setenv("RAS_LOG_LEVEL", "debug")

	cfg := Load()
	if cfg.JournalDir != "/tmp/journal" {
		t.Errorf("JournalDir: got %q, want %q", cfg.JournalDir, "/tmp/journal")
	}
	// Empty env falls back to the default; the archive is disabled by
	// setting DBPath to "" in code, not via env.
	if cfg.DBPath != "ras_session.db" {
		t.Errorf("DBPath: got %q, want %q", cfg.DBPath, "ras_session.db")
	}
	if cfg.SuggestionThreshold != 3 {
		t.Errorf("SuggestionThreshold: got %d, want 3", cfg.SuggestionThreshold)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %q, want %q", cfg.LogLevel, "debug")
	}
}

func TestValidateNormalizes(t *testing.T) {
	tests := []struct {
		name string
		in   Config
		want Config
	}{
		{
			name: "zero threshold",
			in:   Config{JournalDir: "j", SuggestionThreshold: 0, ContextBudget: 10},
			want: Config{JournalDir: "j", SuggestionThreshold: 2, ContextBudget: 10},
		},
		{
			name: "negative budget",
			in:   Config{JournalDir: "j", SuggestionThreshold: 1, ContextBudget: -5},
			want: Config{JournalDir: "j", SuggestionThreshold: 1, ContextBudget: 100000},
		},
		{
			name: "empty journal dir",
			in:   Config{JournalDir: "", SuggestionThreshold: 2, ContextBudget: 10},
			want: Config{JournalDir: "ras_journal", SuggestionThreshold: 2, ContextBudget: 10},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Validate()
			if got.SuggestionThreshold != tt.want.SuggestionThreshold {
				t.Errorf("SuggestionThreshold: got %d, want %d", got.SuggestionThreshold, tt.want.SuggestionThreshold)
			}
			if got.ContextBudget != tt.want.ContextBudget {
				t.Errorf("ContextBudget: got %d, want %d", got.ContextBudget, tt.want.ContextBudget)
			}
			if got.JournalDir != tt.want.JournalDir {
				t.Errorf("JournalDir: got %q, want %q", got.JournalDir, tt.want.JournalDir)
			}
		})
	}
}
