// Package store persists canonical workout aggregates. Writers buffer
// inserts and make them durable with one Save call, mirroring how the
// import pipeline hands over complete aggregates in a single batch.
package store

import (
	"context"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

// Store is the object store the reconciliation engine writes to.
// InsertWorkout stages an aggregate; Save flushes everything staged since
// the last Save in one batch. Implementations must tolerate Save with
// nothing staged.
type Store interface {
	InsertWorkout(ctx context.Context, w *models.Workout) error
	DeleteWorkout(ctx context.Context, id uuid.UUID) error
	Save(ctx context.Context) error

	QueryWorkouts(ctx context.Context, start, end time.Time) ([]*models.Workout, error)
	GetWorkout(ctx context.Context, id uuid.UUID) (*models.Workout, error)
}
