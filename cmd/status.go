package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/boletin/internal/report"
)

type statusDoc struct {
	Counts     countsDoc  `json:"counts"`
	LastImport *importDoc `json:"last_import"`
}

type countsDoc struct {
	Students        int `json:"students"`
	AcademicGrades  int `json:"academic_grades"`
	ServiceAverages int `json:"service_averages"`
	Evaluations     int `json:"evaluations"`
	CriterionScores int `json:"criterion_scores"`
}

type importDoc struct {
	ID          int       `json:"id"`
	Source      string    `json:"source"`
	ImportedAt  time.Time `json:"imported_at"`
	Students    int       `json:"students"`
	Evaluations int       `json:"evaluations"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show stored record counts and the last import",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		st, err := e.openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		counts, err := st.Counts(ctx)
		if err != nil {
			return err
		}
		latest, err := st.Imports().Latest(ctx)
		if err != nil {
			return err
		}

		doc := statusDoc{Counts: countsDoc(counts)}
		if latest != nil {
			d := importDoc(*latest)
			doc.LastImport = &d
		}
		return render(cmd, func() string { return renderStatus(doc) }, doc)
	},
}

func renderStatus(doc statusDoc) string {
	var b strings.Builder
	b.WriteString(report.Heading.Render("Datos almacenados") + "\n")
	c := doc.Counts
	fmt.Fprintf(&b, "  Alumnos:                  %d\n", c.Students)
	fmt.Fprintf(&b, "  Notas académicas:         %d\n", c.AcademicGrades)
	fmt.Fprintf(&b, "  Medias de servicio:       %d\n", c.ServiceAverages)
	fmt.Fprintf(&b, "  Evaluaciones prácticas:   %d\n", c.Evaluations)
	fmt.Fprintf(&b, "  Puntuaciones de criterio: %d\n", c.CriterionScores)

	if doc.LastImport == nil {
		b.WriteString("  " + report.Hint.Render("Sin importaciones") + "\n")
		return b.String()
	}
	imp := doc.LastImport
	fmt.Fprintf(&b, "  Última importación:       %s (%s)\n",
		imp.Source, imp.ImportedAt.Local().Format("2006-01-02 15:04"))
	return b.String()
}
