// Package config loads boletin settings from defaults, an optional
// boletin.yaml, an optional .env file and BOLETIN_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/boletin/internal/grades"
)

// Config holds all boletin configuration.
type Config struct {
	// DBPath is the SQLite database file. Empty means the XDG default.
	DBPath string

	// RubricPath is a JSON rubric file. Empty means the built-in rubric.
	RubricPath string

	Log     LogConfig
	Scoring ScoringConfig
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // console or json
}

// ScoringConfig selects how evaluation final scores are resolved.
type ScoringConfig struct {
	FinalScoreSource grades.ScoreSource
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
		Scoring: ScoringConfig{
			FinalScoreSource: grades.StoredFirst,
		},
	}
}

// Load reads configuration. dirs are searched for boletin.yaml and .env;
// with no dirs the working directory and $XDG_CONFIG_HOME/boletin are used.
// Environment variables win over the file, which wins over defaults.
func Load(dirs ...string) (Config, error) {
	if len(dirs) == 0 {
		dirs = defaultDirs()
	}

	for _, dir := range dirs {
		if err := loadDotEnv(filepath.Join(dir, ".env")); err != nil {
			return Config{}, err
		}
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("BOLETIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("boletin")
	v.SetConfigType("yaml")
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		DBPath:     v.GetString("db"),
		RubricPath: v.GetString("rubric"),
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString("log.level")),
			Format: strings.ToLower(v.GetString("log.format")),
		},
	}

	src, err := grades.ParseScoreSource(v.GetString("scoring.final_score_source"))
	if err != nil {
		return Config{}, fmt.Errorf("scoring.final_score_source: %w", err)
	}
	cfg.Scoring.FinalScoreSource = src

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("db", d.DBPath)
	v.SetDefault("rubric", d.RubricPath)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("scoring.final_score_source", string(d.Scoring.FinalScoreSource))
}

func validate(cfg Config) error {
	switch cfg.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q (want console or json)", cfg.Log.Format)
	}
	return nil
}

// loadDotEnv loads path if it exists. Variables already set are kept.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func defaultDirs() []string {
	dirs := []string{"."}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		if home, err := os.UserHomeDir(); err == nil {
			configHome = filepath.Join(home, ".config")
		}
	}
	if configHome != "" {
		dirs = append(dirs, filepath.Join(configHome, "boletin"))
	}
	return dirs
}
