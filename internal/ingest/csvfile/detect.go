package csvfile

import "strings"

// Dialect identifies one of the recognized CSV column layouts.
type Dialect int

const (
	DialectHevy Dialect = iota
	DialectStrong
	DialectGeneric
)

func (d Dialect) String() string {
	switch d {
	case DialectHevy:
		return "hevy"
	case DialectStrong:
		return "strong"
	default:
		return "generic"
	}
}

// DetectDialect classifies a header row. Checks run in a fixed order —
// Hevy, then Strong, then generic — so headers carrying markers of more
// than one dialect always resolve to Hevy.
func DetectDialect(headers []string) Dialect {
	lower := make([]string, len(headers))
	for i, h := range headers {
		lower[i] = strings.ToLower(h)
	}

	if contains(lower, "exercise_template_id") || contains(lower, "superset_id") {
		return DialectHevy
	}
	if contains(lower, "workout name") && contains(lower, "set order") {
		return DialectStrong
	}
	return DialectGeneric
}

func contains(headers []string, name string) bool {
	for _, h := range headers {
		if h == name {
			return true
		}
	}
	return false
}
