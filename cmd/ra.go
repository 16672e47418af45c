package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/boletin/internal/grades"
	"github.com/abhisek/boletin/internal/report"
)

var raCmd = &cobra.Command{
	Use:   "ra [student-id]",
	Short: "Show learning outcome (RA) progress for the cohort or one student",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		group, _ := cmd.Flags().GetString("group")
		e, snap, err := loadSnapshot(cmd, group)
		if err != nil {
			return err
		}

		var progress []grades.OutcomeProgress
		if len(args) == 1 {
			if _, ok := snap.Students.Find(args[0]); !ok {
				return fmt.Errorf("student %q not found", args[0])
			}
			progress = grades.StudentRAProgress(e.scoring.Rubric, args[0], snap.Evaluations)
		} else {
			progress = grades.RAProgress(e.scoring.Rubric, snap.Evaluations)
		}
		return render(cmd, func() string { return report.Progress(progress) }, progress)
	},
}

func init() {
	raCmd.Flags().String("group", "", "Restrict to one practice group")
}
