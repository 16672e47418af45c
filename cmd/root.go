package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/boletin/internal/config"
	"github.com/abhisek/boletin/internal/grades"
	"github.com/abhisek/boletin/internal/logger"
	"github.com/abhisek/boletin/internal/report"
	"github.com/abhisek/boletin/internal/rubric"
	"github.com/abhisek/boletin/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "boletin",
	Short: "Grade aggregation for the culinary program",
	Long: "Boletín: computes period averages, RA progress and cohort highlights " +
		"from a class snapshot of students, grades and practical-exam evaluations.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard(cmd, "")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides BOLETIN_DB env var)")
	pf.String("rubric", "", "Path to a JSON rubric file (default: built-in rubric)")
	pf.String("score-source", "", "Final score source: stored or derived")
	pf.String("log-level", "", "Log level: debug, info, warn or error")
	pf.Bool("json", false, "Write JSON instead of styled text")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(raCmd)
	rootCmd.AddCommand(highlightsCmd)
	rootCmd.AddCommand(rubricCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// env is the per-invocation state shared by subcommands.
type env struct {
	cfg     config.Config
	log     *zap.Logger
	scoring grades.Scoring
}

// loadEnv resolves configuration, flags win over config, and builds the
// logger and scoring rules.
func loadEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	flags := cmd.Flags()
	if p, _ := flags.GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if p, _ := flags.GetString("rubric"); p != "" {
		cfg.RubricPath = p
	}
	if lvl, _ := flags.GetString("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}
	if s, _ := flags.GetString("score-source"); s != "" {
		src, err := grades.ParseScoreSource(s)
		if err != nil {
			return nil, fmt.Errorf("--score-source: %w", err)
		}
		cfg.Scoring.FinalScoreSource = src
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}, cmd.ErrOrStderr())

	r := rubric.Default()
	if cfg.RubricPath != "" {
		if r, err = rubric.Load(cfg.RubricPath); err != nil {
			return nil, err
		}
		log.Debug("rubric loaded", zap.String("path", cfg.RubricPath), zap.Int("outcomes", r.Len()))
	}

	return &env{
		cfg:     cfg,
		log:     log,
		scoring: grades.Scoring{Rubric: r, Source: cfg.Scoring.FinalScoreSource},
	}, nil
}

// resolveDBPath returns the database path: --db flag or BOLETIN_DB via
// config first, then the default XDG path.
func (e *env) resolveDBPath() (string, error) {
	if e.cfg.DBPath != "" {
		return e.cfg.DBPath, store.EnsureDir(e.cfg.DBPath)
	}
	return store.DefaultDBPath()
}

func (e *env) openStore() (*store.Store, error) {
	dbPath, err := e.resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	e.log.Debug("store opened", zap.String("path", dbPath))
	return st, nil
}

func wantJSON(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

// render writes styled text, or v as JSON with --json. Styling is stripped
// when stdout is not a terminal.
func render(cmd *cobra.Command, text func() string, v any) error {
	w := cmd.OutOrStdout()
	if wantJSON(cmd) {
		return report.WriteJSON(w, v)
	}
	s := text()
	if !isTerminal(w) {
		s = report.Plain(s)
	}
	_, err := io.WriteString(w, s)
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(f.Fd())
}
