package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/boletin/internal/report"
	"github.com/abhisek/boletin/internal/rubric"
)

var rubricCmd = &cobra.Command{
	Use:   "rubric",
	Short: "Inspect the evaluation rubric",
}

var rubricListCmd = &cobra.Command{
	Use:   "list",
	Short: "List learning outcomes and their criteria",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		r := e.scoring.Rubric
		return render(cmd, func() string { return report.RubricTable(r) }, r)
	},
}

var rubricValidateCmd = &cobra.Command{
	Use:   "validate <rubric.json>",
	Short: "Check a rubric file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := rubric.Load(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok, %d outcomes, total weight %.2f\n",
			args[0], r.Len(), r.TotalWeight())
		return nil
	},
}

func init() {
	rubricCmd.AddCommand(rubricListCmd)
	rubricCmd.AddCommand(rubricValidateCmd)
}
