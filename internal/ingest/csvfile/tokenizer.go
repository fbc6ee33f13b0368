// Package csvfile ingests workout CSV exports. The dialect (Hevy, Strong,
// or generic) is detected from the header row and dispatched to the
// matching column adapter.
package csvfile

import "strings"

// Tokenize splits raw CSV text into rows of trimmed fields.
//
// A double quote toggles quoted mode and is never preserved; commas and
// newlines inside quotes are literal. Rows whose fields are all empty are
// dropped, and the final field/row is flushed without a trailing newline.
// Malformed quoting never errors — it degrades to best-effort field
// boundaries, which the exporting apps require in practice.
func Tokenize(content string) [][]string {
	var rows [][]string
	var row []string
	var field strings.Builder
	inQuotes := false

	flushField := func() {
		row = append(row, strings.TrimSpace(field.String()))
		field.Reset()
	}
	flushRow := func() {
		flushField()
		if !allEmpty(row) {
			rows = append(rows, row)
		}
		row = nil
	}

	for _, r := range content {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			flushField()
		case r == '\n' && !inQuotes:
			flushRow()
		default:
			field.WriteRune(r)
		}
	}

	if field.Len() > 0 || len(row) > 0 {
		flushRow()
	}
	return rows
}

func allEmpty(fields []string) bool {
	for _, f := range fields {
		if f != "" {
			return false
		}
	}
	return true
}
