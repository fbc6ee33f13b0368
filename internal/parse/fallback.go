package parse

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// fallbackPatterns are tried in order against each lowercased segment;
// first match wins. Group layout differs per pattern, see segmentSets.
var fallbackPatterns = []*regexp.Regexp{
	// "bench 135x10"
	regexp.MustCompile(`(?i)^(.+?)\s+(\d+)\s*x\s*(\d+)$`),
	// "bench 135 for 10"
	regexp.MustCompile(`(?i)^(.+?)\s+(\d+)\s+for\s+(\d+)$`),
	// "bench 3x10 at 135"
	regexp.MustCompile(`(?i)^(.+?)\s+(\d+)\s*x\s*(\d+)\s+at\s+(\d+)$`),
}

// Fallback is the deterministic parser used when no model credential is
// configured. It splits the input on commas, semicolons, and newlines
// and matches each segment against a small set of shapes.
//
// Historically a matched segment emits a single set of 10 reps at
// bodyweight, discarding the captured weight and rep values. That
// behavior is kept as the default because existing consumers see it;
// PropagateCaptures switches to honoring the captures.
type Fallback struct {
	PropagateCaptures bool
}

// Parse never fails; unmatched segments become set-less exercises named
// after the whole segment.
func (f Fallback) Parse(text string) *ParsedWorkout {
	pw := &ParsedWorkout{}

	for _, part := range strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	}) {
		segment := strings.ToLower(strings.TrimSpace(part))
		if segment == "" {
			continue
		}
		pw.Exercises = append(pw.Exercises, f.parseSegment(segment))
	}

	return pw
}

func (f Fallback) parseSegment(segment string) ParsedExercise {
	for i, pattern := range fallbackPatterns {
		m := pattern.FindStringSubmatch(segment)
		if m == nil {
			continue
		}
		return ParsedExercise{
			Name: capitalize(strings.TrimSpace(m[1])),
			Sets: f.segmentSets(i, m),
		}
	}

	// No shape matched; the whole segment is the exercise name.
	return ParsedExercise{Name: capitalize(segment)}
}

// segmentSets builds the sets for a matched segment. The default path
// ignores the captures entirely and emits one working set of 10 reps at
// bodyweight.
func (f Fallback) segmentSets(pattern int, m []string) []ParsedSet {
	if !f.PropagateCaptures {
		return []ParsedSet{{Weight: nil, Reps: 10, SetType: "working"}}
	}

	switch pattern {
	case 0, 1: // "<name> <weight>x<reps>" and "<name> <weight> for <reps>"
		w, _ := strconv.ParseFloat(m[2], 64)
		reps, _ := strconv.Atoi(m[3])
		return []ParsedSet{{Weight: &w, Reps: reps, SetType: "working"}}
	case 2: // "<name> <sets>x<reps> at <weight>"
		count, _ := strconv.Atoi(m[2])
		reps, _ := strconv.Atoi(m[3])
		w, _ := strconv.ParseFloat(m[4], 64)
		sets := make([]ParsedSet, 0, count)
		for range count {
			weight := w
			sets = append(sets, ParsedSet{Weight: &weight, Reps: reps, SetType: "working"})
		}
		return sets
	}
	return nil
}

// capitalize upper-cases the first rune of each word.
func capitalize(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
