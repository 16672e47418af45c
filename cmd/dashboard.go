package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/boletin/internal/grades"
	"github.com/abhisek/boletin/internal/report"
	"github.com/abhisek/boletin/internal/snapshot"
	"github.com/abhisek/boletin/internal/store"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the cohort summary, highlights and RA progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		group, _ := cmd.Flags().GetString("group")
		return runDashboard(cmd, group)
	},
}

func init() {
	dashboardCmd.Flags().String("group", "", "Restrict to one practice group")
}

func runDashboard(cmd *cobra.Command, group string) error {
	e, snap, err := loadSnapshot(cmd, group)
	if err != nil {
		return err
	}

	doc := report.DashboardDoc{
		Summary:    grades.CohortSummary(e.scoring, snap.Students, snap.Evaluations),
		Highlights: grades.Highlights(e.scoring, snap.Students, snap.Evaluations),
		RAProgress: grades.RAProgress(e.scoring.Rubric, snap.Evaluations),
	}
	return render(cmd, func() string {
		return report.Dashboard(doc.Summary, doc.Highlights, doc.RAProgress)
	}, doc)
}

// loadSnapshot opens the store and reads the snapshot, optionally
// narrowed to a practice group.
func loadSnapshot(cmd *cobra.Command, group string) (*env, *snapshot.Snapshot, error) {
	e, err := loadEnv(cmd)
	if err != nil {
		return nil, nil, err
	}
	st, err := e.openStore()
	if err != nil {
		return nil, nil, err
	}
	defer st.Close()

	snap, err := readSnapshot(cmd, e, st, group)
	if err != nil {
		return nil, nil, err
	}
	return e, snap, nil
}

// readSnapshot loads every stored record. Evaluations of students missing
// from the roster are logged here.
func readSnapshot(cmd *cobra.Command, e *env, st *store.Store, group string) (*snapshot.Snapshot, error) {
	snap, err := st.Snapshot(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if stale := grades.StaleEvaluations(snap.Students, snap.Evaluations); len(stale) > 0 {
		e.log.Warn("evaluations reference students missing from the roster",
			zap.Int("count", len(stale)))
	}

	if group != "" {
		snap = snap.ForGroup(group)
		if len(snap.Students) == 0 {
			return nil, fmt.Errorf("no students in group %q", group)
		}
	}
	return snap, nil
}
