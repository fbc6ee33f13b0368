package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/claude/liftlog/internal/ingest"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/store"
)

// Engine owns the store's write side. Concurrent imports extract in
// parallel, but every write phase (batch insert + save) passes through
// one mutex, so the store never sees interleaved partial aggregates.
type Engine struct {
	store store.Store
	log   *slog.Logger

	writeMu sync.Mutex
}

// NewEngine creates a merge engine around the given store.
func NewEngine(st store.Store, log *slog.Logger) *Engine {
	return &Engine{store: st, log: log}
}

// Merge submits extracted aggregates to the store in one batch followed by
// one save, and returns the run summary. convErrs carries per-workout
// conversion errors collected during extraction; they ride into the
// summary without stopping the rest of the batch.
func (e *Engine) Merge(ctx context.Context, workouts []*models.Workout, convErrs []string) (*ingest.Result, error) {
	result := &ingest.Result{Errors: convErrs}

	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	for _, w := range workouts {
		if err := e.store.InsertWorkout(ctx, w); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("failed to import workout: %s", w.Name))
			e.log.Warn("insert failed", "workout", w.Name, "error", err)
			continue
		}
		result.WorkoutsImported++
		result.ExercisesImported += len(w.Exercises)
	}

	if err := e.store.Save(ctx); err != nil {
		return result, fmt.Errorf("saving batch: %w", err)
	}

	e.log.Info("merge complete",
		"workouts", result.WorkoutsImported,
		"exercises", result.ExercisesImported,
		"errors", len(result.Errors),
	)
	return result, nil
}

// MergeRows groups flat rows by identity key and merges the resulting
// aggregates. This is the path CSV-shaped sources take.
func (e *Engine) MergeRows(ctx context.Context, rows []Row) (*ingest.Result, error) {
	return e.Merge(ctx, GroupRows(rows), nil)
}
