// Package ingest defines the shared result type returned by every import
// source. One provider per origin lives in a subpackage.
package ingest

// Result summarizes one import run.
type Result struct {
	WorkoutsImported  int      `json:"workouts_imported"`
	ExercisesImported int      `json:"exercises_imported"`
	Errors            []string `json:"errors,omitempty"`
}

// Success reports whether the run completed without per-item errors.
// Partial imports with a non-empty error list are not a success, no
// matter how many items went through.
func (r *Result) Success() bool {
	return len(r.Errors) == 0
}
