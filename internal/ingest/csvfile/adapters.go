package csvfile

import (
	"strconv"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/heuristics"
	"github.com/claude/liftlog/internal/reconcile"
)

// rowAdapter maps one dialect's column layout onto canonical rows.
// The detector picks the variant once per file; there is no per-row
// dispatch.
type rowAdapter interface {
	extract(headers []string, rows [][]string) []reconcile.Row
}

func adapterFor(d Dialect) rowAdapter {
	switch d {
	case DialectHevy:
		return hevyAdapter{}
	case DialectStrong:
		return strongAdapter{}
	default:
		return genericAdapter{}
	}
}

// headerIndex returns the position of the first exactly-matching header
// name, or the positional fallback when none matches.
func headerIndex(headers []string, fallback int, names ...string) int {
	for _, name := range names {
		for i, h := range headers {
			if h == name {
				return i
			}
		}
	}
	return fallback
}

// headerIndexFold is headerIndex with case-insensitive matching.
func headerIndexFold(headers []string, fallback int, names ...string) int {
	for _, name := range names {
		for i, h := range headers {
			if strings.EqualFold(h, name) {
				return i
			}
		}
	}
	return fallback
}

// headerIndexContains returns the first header containing the fragment
// (case-insensitive), or the positional fallback.
func headerIndexContains(headers []string, fragment string, fallback int) int {
	for i, h := range headers {
		if strings.Contains(strings.ToLower(h), fragment) {
			return i
		}
	}
	return fallback
}

func maxIndex(idx ...int) int {
	m := idx[0]
	for _, i := range idx[1:] {
		if i > m {
			m = i
		}
	}
	return m
}

// parseFloat returns 0 for missing or unparseable numbers — a malformed
// numeric field never fails the row.
func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

func parseInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// hevyAdapter handles Hevy app exports. Weights are kilograms; headers use
// snake_case with capitalized fallbacks seen in older exports.
type hevyAdapter struct{}

func (hevyAdapter) extract(headers []string, rows [][]string) []reconcile.Row {
	titleIdx := headerIndex(headers, 0, "title")
	startIdx := headerIndex(headers, 1, "start_time")
	exerciseIdx := headerIndex(headers, 4, "exercise_title", "Exercise Name")
	weightIdx := headerIndex(headers, 6, "weight_kg", "Weight")
	repsIdx := headerIndex(headers, 7, "reps", "Reps")
	need := maxIndex(titleIdx, startIdx, exerciseIdx, weightIdx, repsIdx)

	var out []reconcile.Row
	for _, row := range rows {
		if len(row) <= need {
			continue
		}
		startRaw := row[startIdx]
		date, err := time.Parse(time.RFC3339, startRaw)
		if err != nil {
			date = time.Now()
		}
		out = append(out, reconcile.Row{
			Title:        row[titleIdx],
			StartRaw:     startRaw,
			Date:         date,
			ExerciseName: row[exerciseIdx],
			WeightLb:     heuristics.PoundsFromKilograms(parseFloat(row[weightIdx])),
			Reps:         parseInt(row[repsIdx]),
		})
	}
	return out
}

// strongAdapter handles Strong app exports. Weights are already pounds;
// the date column is "yyyy-MM-dd HH:mm:ss".
type strongAdapter struct{}

const strongDateLayout = "2006-01-02 15:04:05"

func (strongAdapter) extract(headers []string, rows [][]string) []reconcile.Row {
	dateIdx := headerIndexFold(headers, 0, "date")
	titleIdx := headerIndexFold(headers, 1, "workout name")
	exerciseIdx := headerIndexFold(headers, 2, "exercise name")
	weightIdx := headerIndexFold(headers, 4, "weight")
	repsIdx := headerIndexFold(headers, 5, "reps")
	need := maxIndex(dateIdx, titleIdx, exerciseIdx, weightIdx, repsIdx)

	var out []reconcile.Row
	for _, row := range rows {
		if len(row) <= need {
			continue
		}
		startRaw := row[dateIdx]
		date, err := time.Parse(strongDateLayout, startRaw)
		if err != nil {
			date = time.Now()
		}
		out = append(out, reconcile.Row{
			Title:        row[titleIdx],
			StartRaw:     startRaw,
			Date:         date,
			ExerciseName: row[exerciseIdx],
			WeightLb:     parseFloat(row[weightIdx]),
			Reps:         parseInt(row[repsIdx]),
		})
	}
	return out
}

// genericAdapter guesses columns by name fragments for unknown exports.
// Rows group by the raw date string; the workout gets a fallback name.
type genericAdapter struct{}

func (genericAdapter) extract(headers []string, rows [][]string) []reconcile.Row {
	dateIdx := headerIndexContains(headers, "date", 0)
	exerciseIdx := headerIndexContains(headers, "exercise", 1)
	weightIdx := headerIndexContains(headers, "weight", 2)
	repsIdx := headerIndexContains(headers, "rep", 3)
	need := maxIndex(dateIdx, exerciseIdx, weightIdx, repsIdx)

	var out []reconcile.Row
	for _, row := range rows {
		if len(row) <= need {
			continue
		}
		out = append(out, reconcile.Row{
			StartRaw:     row[dateIdx],
			ExerciseName: row[exerciseIdx],
			WeightLb:     parseFloat(row[weightIdx]),
			Reps:         parseInt(row[repsIdx]),
		})
	}
	return out
}
