package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/boletin/internal/grades"
	"github.com/abhisek/boletin/internal/rubric"
	"github.com/abhisek/boletin/internal/snapshot"
)

var importCmd = &cobra.Command{
	Use:   "import <snapshot.json>",
	Short: "Replace stored records with the contents of a snapshot file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}

		path := args[0]
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open snapshot: %w", err)
		}
		defer f.Close()

		snap, err := snapshot.Decode(f)
		if err != nil {
			return err
		}
		warnSnapshot(e, snap)

		if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d students, %d evaluations (not imported)\n",
				path, len(snap.Students), len(snap.Evaluations))
			return nil
		}

		st, err := e.openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		imp, err := st.Replace(cmd.Context(), path, snap)
		if err != nil {
			return fmt.Errorf("import %s: %w", path, err)
		}
		e.log.Info("snapshot imported",
			zap.String("source", imp.Source),
			zap.Int("import_id", imp.ID),
			zap.Int("students", imp.Students),
			zap.Int("evaluations", imp.Evaluations))

		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d students and %d evaluations from %s\n",
			imp.Students, imp.Evaluations, path)
		return nil
	},
}

func init() {
	importCmd.Flags().Bool("dry-run", false, "Validate the file without importing it")
}

// warnSnapshot logs records the engine will skip: evaluations of unknown
// students and scores for criteria the rubric does not define.
func warnSnapshot(e *env, snap *snapshot.Snapshot) {
	for _, ev := range grades.StaleEvaluations(snap.Students, snap.Evaluations) {
		e.log.Warn("evaluation references a student missing from the roster",
			zap.String("evaluation", ev.ID), zap.String("student", ev.StudentID))
	}
	if n := unknownCriteria(e.scoring.Rubric, snap.Evaluations); n > 0 {
		e.log.Warn("scores for criteria outside the rubric are ignored", zap.Int("count", n))
	}
}

func unknownCriteria(r *rubric.Rubric, evaluations []grades.Evaluation) int {
	n := 0
	for _, ev := range evaluations {
		for outcomeID, criteria := range ev.Scores {
			for criterionID := range criteria {
				if !r.HasCriterion(outcomeID, criterionID) {
					n++
				}
			}
		}
	}
	return n
}
