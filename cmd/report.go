package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/boletin/internal/grades"
	"github.com/abhisek/boletin/internal/report"
	"github.com/abhisek/boletin/internal/roster"
	"github.com/abhisek/boletin/internal/snapshot"
	"github.com/abhisek/boletin/internal/store"
)

var reportCmd = &cobra.Command{
	Use:   "report [student-id]",
	Short: "Print report cards for one student, a group, or the whole roster",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		group, _ := cmd.Flags().GetString("group")
		if len(args) == 1 && group != "" {
			return fmt.Errorf("use a student ID or --group, not both")
		}

		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		st, err := e.openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		snap, err := readSnapshot(cmd, e, st, group)
		if err != nil {
			return err
		}

		students := snap.Students
		if len(args) == 1 {
			student, err := st.Student(cmd.Context(), args[0])
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("student %q not found", args[0])
			}
			if err != nil {
				return err
			}
			students = roster.Roster{student}
		}

		docs := reportCards(e.scoring, snap, students)
		if len(args) == 1 {
			return render(cmd, func() string { return renderCards(docs) }, docs[0])
		}
		return render(cmd, func() string { return renderCards(docs) }, docs)
	},
}

func init() {
	reportCmd.Flags().String("group", "", "Restrict to one practice group")
}

// reportCards builds one report card per student, in roster order.
func reportCards(sc grades.Scoring, snap *snapshot.Snapshot, students roster.Roster) []report.ReportCardDoc {
	calculated := snap.Calculated(sc)
	docs := make([]report.ReportCardDoc, 0, len(students))
	for _, s := range students {
		periods := grades.PeriodAverages(s.ID, snap.AcademicGrades, calculated)
		docs = append(docs, report.ReportCardDoc{
			Student:       s,
			PeriodAverage: periods,
			CourseAverage: grades.CourseAverage(periods),
			RAProgress:    grades.StudentRAProgress(sc.Rubric, s.ID, snap.Evaluations),
		})
	}
	return docs
}

func renderCards(docs []report.ReportCardDoc) string {
	cards := make([]string, 0, len(docs))
	for _, d := range docs {
		cards = append(cards, report.ReportCard(d.Student, d.PeriodAverage, d.CourseAverage, d.RAProgress))
	}
	return strings.Join(cards, "\n")
}
