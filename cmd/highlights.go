package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/boletin/internal/grades"
	"github.com/abhisek/boletin/internal/report"
)

var highlightsCmd = &cobra.Command{
	Use:   "highlights",
	Short: "List the top and bottom students by practical-exam average",
	RunE: func(cmd *cobra.Command, args []string) error {
		group, _ := cmd.Flags().GetString("group")
		e, snap, err := loadSnapshot(cmd, group)
		if err != nil {
			return err
		}
		hs := grades.Highlights(e.scoring, snap.Students, snap.Evaluations)
		return render(cmd, func() string { return report.Highlights(hs) }, hs)
	},
}

func init() {
	highlightsCmd.Flags().String("group", "", "Restrict to one practice group")
}
