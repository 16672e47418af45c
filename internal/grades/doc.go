// Package grades is the grade aggregation engine.
//
// It combines partially-missing per-student inputs (instrument grades,
// service-evaluation averages and rubric-scored practical exams) into
// trimester averages, learning-outcome progress and cohort summaries.
//
// Every function is a pure computation over values passed in by the caller:
// nothing is cached, nothing is logged, and inputs are never modified, so
// calculators may run concurrently over the same snapshot. A missing or null
// score is always excluded from an average and never counted as zero; an
// average with no contributing values is null.
package grades
