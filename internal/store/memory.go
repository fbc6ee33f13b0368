package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

// Memory is an in-process Store used by tests and credential-free runs.
type Memory struct {
	mu       sync.Mutex
	pending  []*models.Workout
	workouts map[uuid.UUID]*models.Workout

	// SaveCalls counts Save invocations, for batch-boundary assertions.
	SaveCalls int
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{workouts: map[uuid.UUID]*models.Workout{}}
}

// InsertWorkout stages a workout for the next Save.
func (m *Memory) InsertWorkout(_ context.Context, w *models.Workout) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = append(m.pending, w)
	return nil
}

// DeleteWorkout removes a workout and, by ownership, its exercises and sets.
func (m *Memory) DeleteWorkout(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.workouts[id]; !ok {
		return fmt.Errorf("workout %s not found", id)
	}
	delete(m.workouts, id)
	return nil
}

// Save commits everything staged since the last Save.
func (m *Memory) Save(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range m.pending {
		m.workouts[w.ID] = w
	}
	m.pending = nil
	m.SaveCalls++
	return nil
}

// QueryWorkouts returns saved workouts with Date in [start, end), newest first.
func (m *Memory) QueryWorkouts(_ context.Context, start, end time.Time) ([]*models.Workout, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Workout
	for _, w := range m.workouts {
		if !w.Date.Before(start) && w.Date.Before(end) {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

// GetWorkout returns a saved workout by ID.
func (m *Memory) GetWorkout(_ context.Context, id uuid.UUID) (*models.Workout, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.workouts[id]
	if !ok {
		return nil, fmt.Errorf("workout %s not found", id)
	}
	return w, nil
}

// Count returns the number of saved (not pending) workouts.
func (m *Memory) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.workouts)
}
