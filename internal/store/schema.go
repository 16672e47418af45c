package store

import (
	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// studentsColumns holds the columns for the "students" table.
	studentsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "position", Type: field.TypeInt},
		{Name: "first_name", Type: field.TypeString},
		{Name: "last_name", Type: field.TypeString},
		{Name: "second_last_name", Type: field.TypeString},
		{Name: "practice_group", Type: field.TypeString},
		{Name: "subgroup", Type: field.TypeString},
		{Name: "email", Type: field.TypeString},
		{Name: "phone", Type: field.TypeString},
	}
	// studentsTable holds the schema information for the "students" table.
	studentsTable = &schema.Table{
		Name:       "students",
		Columns:    studentsColumns,
		PrimaryKey: []*schema.Column{studentsColumns[0]},
	}

	// academicGradesColumns holds the columns for the "academic_grades" table.
	academicGradesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "student_id", Type: field.TypeString},
		{Name: "period", Type: field.TypeString},
		{Name: "instrument", Type: field.TypeString},
		{Name: "score", Type: field.TypeFloat64, Nullable: true},
	}
	// academicGradesTable holds the schema information for the "academic_grades" table.
	academicGradesTable = &schema.Table{
		Name:       "academic_grades",
		Columns:    academicGradesColumns,
		PrimaryKey: []*schema.Column{academicGradesColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "academicgrade_student_id_period_instrument",
				Unique:  true,
				Columns: []*schema.Column{academicGradesColumns[1], academicGradesColumns[2], academicGradesColumns[3]},
			},
		},
	}

	// serviceAveragesColumns holds the columns for the "service_averages" table.
	serviceAveragesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "student_id", Type: field.TypeString},
		{Name: "period", Type: field.TypeString},
		{Name: "average", Type: field.TypeFloat64, Nullable: true},
	}
	// serviceAveragesTable holds the schema information for the "service_averages" table.
	serviceAveragesTable = &schema.Table{
		Name:       "service_averages",
		Columns:    serviceAveragesColumns,
		PrimaryKey: []*schema.Column{serviceAveragesColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "serviceaverage_student_id_period",
				Unique:  true,
				Columns: []*schema.Column{serviceAveragesColumns[1], serviceAveragesColumns[2]},
			},
		},
	}

	// examEvaluationsColumns holds the columns for the "exam_evaluations" table.
	examEvaluationsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "position", Type: field.TypeInt},
		{Name: "student_id", Type: field.TypeString},
		{Name: "period", Type: field.TypeString},
		{Name: "final_score", Type: field.TypeFloat64, Nullable: true},
	}
	// examEvaluationsTable holds the schema information for the "exam_evaluations" table.
	examEvaluationsTable = &schema.Table{
		Name:       "exam_evaluations",
		Columns:    examEvaluationsColumns,
		PrimaryKey: []*schema.Column{examEvaluationsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "examevaluation_student_id",
				Unique:  false,
				Columns: []*schema.Column{examEvaluationsColumns[2]},
			},
		},
	}

	// criterionScoresColumns holds the columns for the "criterion_scores" table.
	criterionScoresColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "outcome_id", Type: field.TypeString},
		{Name: "criterion_id", Type: field.TypeString},
		{Name: "score", Type: field.TypeFloat64, Nullable: true},
		{Name: "notes", Type: field.TypeString},
		{Name: "evaluation_id", Type: field.TypeString},
	}
	// criterionScoresTable holds the schema information for the "criterion_scores" table.
	criterionScoresTable = &schema.Table{
		Name:       "criterion_scores",
		Columns:    criterionScoresColumns,
		PrimaryKey: []*schema.Column{criterionScoresColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "criterion_scores_exam_evaluations_scores",
				Columns:    []*schema.Column{criterionScoresColumns[5]},
				RefColumns: []*schema.Column{examEvaluationsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
	}

	// importsColumns holds the columns for the "imports" table.
	importsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "source", Type: field.TypeString},
		{Name: "imported_at", Type: field.TypeInt64},
		{Name: "students", Type: field.TypeInt},
		{Name: "evaluations", Type: field.TypeInt},
	}
	// importsTable holds the schema information for the "imports" table.
	importsTable = &schema.Table{
		Name:       "imports",
		Columns:    importsColumns,
		PrimaryKey: []*schema.Column{importsColumns[0]},
	}

	// tables holds all the tables in the schema.
	tables = []*schema.Table{
		studentsTable,
		academicGradesTable,
		serviceAveragesTable,
		examEvaluationsTable,
		criterionScoresTable,
		importsTable,
	}

	// recordTables are cleared by Reset and Replace, children first.
	recordTables = []*schema.Table{
		criterionScoresTable,
		examEvaluationsTable,
		serviceAveragesTable,
		academicGradesTable,
		studentsTable,
	}
)

func init() {
	criterionScoresTable.ForeignKeys[0].RefTable = examEvaluationsTable
}

// builder returns a SQL builder for the SQLite dialect.
func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// columnNames returns the names of cols, skipping auto-increment keys.
func columnNames(cols []*schema.Column) []string {
	names := make([]string, 0, len(cols))
	for _, c := range cols {
		if c.Increment {
			continue
		}
		names = append(names, c.Name)
	}
	return names
}
