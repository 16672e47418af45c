package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/boletin/internal/grades"
)

// clearEnv blanks every variable Load reads so the host environment does
// not leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"BOLETIN_DB", "BOLETIN_RUBRIC", "BOLETIN_LOG_LEVEL",
		"BOLETIN_LOG_FORMAT", "BOLETIN_SCORING_FINAL_SCORE_SOURCE",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, grades.StoredFirst, cfg.Scoring.FinalScoreSource)
}

func TestLoad_ConfigFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, "boletin.yaml", `
db: /srv/boletin.db
rubric: rubric.json
log:
  level: debug
  format: json
scoring:
  final_score_source: derived
`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "/srv/boletin.db", cfg.DBPath)
	assert.Equal(t, "rubric.json", cfg.RubricPath)
	assert.Equal(t, LogConfig{Level: "debug", Format: "json"}, cfg.Log)
	assert.Equal(t, grades.AlwaysDerive, cfg.Scoring.FinalScoreSource)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, "boletin.yaml", "log:\n  level: debug\n")
	t.Setenv("BOLETIN_LOG_LEVEL", "ERROR")
	t.Setenv("BOLETIN_SCORING_FINAL_SCORE_SOURCE", "derived")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, grades.AlwaysDerive, cfg.Scoring.FinalScoreSource)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, ".env", "BOLETIN_DB=/from/dotenv.db\n")
	t.Cleanup(func() { os.Unsetenv("BOLETIN_DB") })

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "/from/dotenv.db", cfg.DBPath)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		yaml    string
		wantErr string
	}{
		{
			name:    "unknown score source",
			env:     map[string]string{"BOLETIN_SCORING_FINAL_SCORE_SOURCE": "newest"},
			wantErr: "scoring.final_score_source",
		},
		{
			name:    "unknown log format",
			env:     map[string]string{"BOLETIN_LOG_FORMAT": "xml"},
			wantErr: "log.format",
		},
		{
			name:    "malformed yaml",
			yaml:    "log: [unclosed\n",
			wantErr: "read config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			dir := t.TempDir()
			if tt.yaml != "" {
				writeFile(t, dir, "boletin.yaml", tt.yaml)
			}

			_, err := Load(dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
