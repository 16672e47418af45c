// Package report renders engine results for the terminal and as JSON.
// Rounding happens only here; engine values stay unrounded.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/volatiletech/null/v8"

	"github.com/abhisek/boletin/internal/grades"
	"github.com/abhisek/boletin/internal/roster"
	"github.com/abhisek/boletin/internal/rubric"
)

// NoData is shown in place of a null score.
const NoData = "—"

// barWidth is the width of RA progress bars.
const barWidth = 20

// FormatScore renders a score with two decimals, or NoData when null.
func FormatScore(v null.Float64) string {
	if !v.Valid {
		return NoData
	}
	return fmt.Sprintf("%.2f", v.Float64)
}

// styledScore colours a score by pass mark.
func styledScore(v null.Float64) string {
	switch {
	case !v.Valid:
		return Missing.Render(NoData)
	case grades.Passing(v.Float64):
		return Pass.Render(FormatScore(v))
	default:
		return Fail.Render(FormatScore(v))
	}
}

// Bar renders a 0-10 average as a horizontal bar. Null renders empty.
func Bar(avg null.Float64, width int) string {
	width = max(width, 4)
	filled := barFill(avg, width)
	empty := width - filled

	return BarFilled.Render(strings.Repeat(" ", filled)) +
		BarEmpty.Render(strings.Repeat(" ", empty))
}

func barFill(avg null.Float64, width int) int {
	if !avg.Valid {
		return 0
	}
	return max(0, min(int(float64(width)*avg.Float64/10), width))
}

// padRight pads s to width visible cells.
func padRight(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// Summary renders the cohort rollup.
func Summary(s grades.Summary) string {
	var b strings.Builder
	b.WriteString(Heading.Render("Resumen del grupo") + "\n")
	fmt.Fprintf(&b, "  Alumnos:        %d\n", s.TotalStudents)
	fmt.Fprintf(&b, "  Media general:  %s\n", styledScore(s.OverallAverage))
	fmt.Fprintf(&b, "  Aprobados:      %s\n", Pass.Render(fmt.Sprint(s.PassingStudents)))
	fmt.Fprintf(&b, "  En riesgo:      %s\n", Fail.Render(fmt.Sprint(s.AtRiskStudents)))
	return b.String()
}

// Highlights renders the top and bottom lists.
func Highlights(h grades.HighlightSet) string {
	var b strings.Builder
	b.WriteString(Heading.Render("Mejores resultados") + "\n")
	writeHighlightList(&b, h.Top)
	b.WriteString(Heading.Render("Necesitan apoyo") + "\n")
	writeHighlightList(&b, h.Bottom)
	return b.String()
}

func writeHighlightList(b *strings.Builder, list []grades.HighlightedStudent) {
	if len(list) == 0 {
		b.WriteString("  " + Hint.Render("Sin evaluaciones puntuadas") + "\n")
		return
	}
	for i, hs := range list {
		name := padRight(hs.Student.DisplayName(), 32)
		fmt.Fprintf(b, "  %d. %s %s  %s\n", i+1, name,
			styledScore(null.Float64From(hs.Average)),
			Hint.Render(fmt.Sprintf("(%d eval.)", hs.Evaluations)))
	}
}

// Progress renders one row per learning outcome with its bar.
func Progress(progress []grades.OutcomeProgress) string {
	var b strings.Builder
	b.WriteString(Heading.Render("Resultados de aprendizaje") + "\n")
	for _, p := range progress {
		label := padRight(fmt.Sprintf("%-5s %s", strings.ToUpper(p.ID), p.Name), 44)
		fmt.Fprintf(&b, "  %s %s  %s  %s\n", label, Bar(p.Average, barWidth),
			padRight(styledScore(p.Average), 5),
			Hint.Render(fmt.Sprintf("peso %.0f%%", p.Weight*100)))
	}
	return b.String()
}

// Dashboard renders the cohort summary, highlights and RA progress.
func Dashboard(summary grades.Summary, highlights grades.HighlightSet, progress []grades.OutcomeProgress) string {
	return Title.Render("Boletín de calificaciones") + "\n\n" +
		Card.Render(strings.TrimRight(Summary(summary), "\n")) + "\n\n" +
		Highlights(highlights) + "\n" +
		Progress(progress)
}

// ReportCard renders one student's period averages, course average and
// RA breakdown.
func ReportCard(student roster.Student, periods grades.PeriodScores, course null.Float64, progress []grades.OutcomeProgress) string {
	var b strings.Builder
	b.WriteString(Title.Render(student.DisplayName()))
	if student.Group != "" {
		b.WriteString("  " + Hint.Render("Grupo "+student.Group))
	}
	b.WriteString("\n\n")

	b.WriteString(Heading.Render("Medias por trimestre") + "\n")
	for _, p := range grades.TrimesterPeriods() {
		fmt.Fprintf(&b, "  %-5s %s\n", strings.ToUpper(string(p)), styledScore(periods.Get(p)))
	}
	fmt.Fprintf(&b, "  %-5s %s\n\n", "Curso", styledScore(course))

	b.WriteString(Progress(progress))
	return b.String()
}

// RubricTable lists outcomes and their criteria.
func RubricTable(r *rubric.Rubric) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-8s  %-52s  %6s\n", "ID", "Resultado / criterio", "Peso")
	b.WriteString(strings.Repeat("─", 70) + "\n")
	for _, o := range r.Outcomes() {
		fmt.Fprintf(&b, "%-8s  %-52s  %5.0f%%\n", o.ID, truncate(o.Name, 52), o.Weight*100)
		for _, c := range o.Criteria {
			fmt.Fprintf(&b, "  %-6s  %s\n", c.ID, Hint.Render(truncate(c.Name, 60)))
		}
	}
	fmt.Fprintf(&b, "\n%d resultados de aprendizaje\n", r.Len())
	return b.String()
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// Plain strips styling from s, for output that is not a terminal.
func Plain(s string) string {
	return ansi.Strip(s)
}

// DashboardDoc is the JSON form of the dashboard.
type DashboardDoc struct {
	Summary    grades.Summary           `json:"summary"`
	Highlights grades.HighlightSet      `json:"highlights"`
	RAProgress []grades.OutcomeProgress `json:"ra_progress"`
}

// ReportCardDoc is the JSON form of a report card.
type ReportCardDoc struct {
	Student       roster.Student           `json:"student"`
	PeriodAverage grades.PeriodScores      `json:"period_averages"`
	CourseAverage null.Float64             `json:"course_average"`
	RAProgress    []grades.OutcomeProgress `json:"ra_progress"`
}

// WriteJSON writes v as indented JSON. Null scores stay null.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
