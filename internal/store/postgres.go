package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres is the durable Store backed by a pgx connection pool.
// Inserts are buffered in memory and flushed in one transaction on Save,
// so a cancelled import never leaves a partial aggregate behind.
type Postgres struct {
	pool *pgxpool.Pool

	mu      sync.Mutex
	pending []*models.Workout
}

// NewPostgres connects a pool and verifies it with a ping.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("creating pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// Close closes the connection pool.
func (p *Postgres) Close() {
	p.pool.Close()
}

// RunMigrations applies all pending migrations from the given directory.
func RunMigrations(dsn, migrationsPath string) error {
	m, err := migrate.New("file://"+migrationsPath, dsn)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// InsertWorkout stages a complete aggregate for the next Save.
func (p *Postgres) InsertWorkout(_ context.Context, w *models.Workout) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = append(p.pending, w)
	return nil
}

// DeleteWorkout removes a workout; exercises and sets go with it via
// ON DELETE CASCADE.
func (p *Postgres) DeleteWorkout(ctx context.Context, id uuid.UUID) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM workouts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting workout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("workout %s not found", id)
	}
	return nil
}

// Save flushes all staged aggregates in one transaction.
func (p *Postgres) Save(ctx context.Context) error {
	p.mu.Lock()
	batch := p.pending
	p.pending = nil
	p.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := insertBatch(ctx, tx, batch); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing batch: %w", err)
	}
	return nil
}

func insertBatch(ctx context.Context, tx pgx.Tx, batch []*models.Workout) error {
	// Workouts
	wq := `INSERT INTO workouts (id, name, date, start_time, end_time, notes) VALUES `
	wArgs := make([]any, 0, len(batch)*6)
	wVals := make([]string, 0, len(batch))
	for i, w := range batch {
		base := i * 6
		wVals = append(wVals, fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6))
		wArgs = append(wArgs, w.ID, w.Name, w.Date, w.StartTime, w.EndTime, w.Notes)
	}
	if _, err := tx.Exec(ctx, wq+strings.Join(wVals, ",")+" ON CONFLICT DO NOTHING", wArgs...); err != nil {
		return fmt.Errorf("inserting workouts: %w", err)
	}

	// Exercises
	var eArgs []any
	var eVals []string
	for _, w := range batch {
		for _, ex := range w.Exercises {
			base := len(eArgs)
			eVals = append(eVals, fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6, base+7))
			eArgs = append(eArgs, ex.ID, w.ID, ex.Name, string(ex.PrimaryMuscle),
				string(ex.Equipment), ex.Order, ex.Notes)
		}
	}
	if len(eVals) > 0 {
		eq := `INSERT INTO exercises (id, workout_id, name, primary_muscle, equipment, ord, notes) VALUES `
		if _, err := tx.Exec(ctx, eq+strings.Join(eVals, ",")+" ON CONFLICT DO NOTHING", eArgs...); err != nil {
			return fmt.Errorf("inserting exercises: %w", err)
		}
	}

	// Sets
	var sArgs []any
	var sVals []string
	for _, w := range batch {
		for _, ex := range w.Exercises {
			for _, s := range ex.Sets {
				base := len(sArgs)
				sVals = append(sVals, fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
					base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9, base+10))
				sArgs = append(sArgs, ex.ID, s.Order, s.WeightLb, s.Reps, string(s.Type),
					s.IsCompleted, s.RPE, s.DurationSec, s.DistanceM, s.Calories)
			}
		}
	}
	if len(sVals) > 0 {
		sq := `INSERT INTO workout_sets (exercise_id, ord, weight_lb, reps, set_type,
			is_completed, rpe, duration_sec, distance_m, calories) VALUES `
		if _, err := tx.Exec(ctx, sq+strings.Join(sVals, ",")+" ON CONFLICT DO NOTHING", sArgs...); err != nil {
			return fmt.Errorf("inserting sets: %w", err)
		}
	}

	return nil
}

// QueryWorkouts returns workouts with Date in [start, end), newest first,
// with exercises and sets reassembled.
func (p *Postgres) QueryWorkouts(ctx context.Context, start, end time.Time) ([]*models.Workout, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, name, date, start_time, end_time, notes
		 FROM workouts
		 WHERE date >= $1 AND date < $2
		 ORDER BY date DESC`, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	defer rows.Close()

	var workouts []*models.Workout
	byID := map[uuid.UUID]*models.Workout{}
	for rows.Next() {
		w := &models.Workout{}
		if err := rows.Scan(&w.ID, &w.Name, &w.Date, &w.StartTime, &w.EndTime, &w.Notes); err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		workouts = append(workouts, w)
		byID[w.ID] = w
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(workouts) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(workouts))
	for _, w := range workouts {
		ids = append(ids, w.ID)
	}
	if err := p.loadExercises(ctx, ids, byID); err != nil {
		return nil, err
	}
	return workouts, nil
}

// GetWorkout returns one workout by ID with exercises and sets.
func (p *Postgres) GetWorkout(ctx context.Context, id uuid.UUID) (*models.Workout, error) {
	w := &models.Workout{}
	err := p.pool.QueryRow(ctx,
		`SELECT id, name, date, start_time, end_time, notes FROM workouts WHERE id = $1`, id).
		Scan(&w.ID, &w.Name, &w.Date, &w.StartTime, &w.EndTime, &w.Notes)
	if err != nil {
		return nil, fmt.Errorf("workout %s: %w", id, err)
	}
	if err := p.loadExercises(ctx, []uuid.UUID{id}, map[uuid.UUID]*models.Workout{id: w}); err != nil {
		return nil, err
	}
	return w, nil
}

func (p *Postgres) loadExercises(ctx context.Context, workoutIDs []uuid.UUID, byID map[uuid.UUID]*models.Workout) error {
	rows, err := p.pool.Query(ctx,
		`SELECT e.id, e.workout_id, e.name, e.primary_muscle, e.equipment, e.ord, e.notes
		 FROM exercises e
		 WHERE e.workout_id = ANY($1)
		 ORDER BY e.ord ASC`, workoutIDs)
	if err != nil {
		return fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	exByID := map[uuid.UUID]*models.Exercise{}
	var exIDs []uuid.UUID
	for rows.Next() {
		ex := &models.Exercise{}
		var workoutID uuid.UUID
		var muscle, equipment string
		if err := rows.Scan(&ex.ID, &workoutID, &ex.Name, &muscle, &equipment, &ex.Order, &ex.Notes); err != nil {
			return fmt.Errorf("scanning exercise: %w", err)
		}
		ex.PrimaryMuscle = models.MuscleGroup(muscle)
		ex.Equipment = models.Equipment(equipment)
		if w, ok := byID[workoutID]; ok {
			w.Exercises = append(w.Exercises, ex)
		}
		exByID[ex.ID] = ex
		exIDs = append(exIDs, ex.ID)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(exIDs) == 0 {
		return nil
	}

	setRows, err := p.pool.Query(ctx,
		`SELECT exercise_id, ord, weight_lb, reps, set_type, is_completed,
		        rpe, duration_sec, distance_m, calories
		 FROM workout_sets
		 WHERE exercise_id = ANY($1)
		 ORDER BY ord ASC`, exIDs)
	if err != nil {
		return fmt.Errorf("querying sets: %w", err)
	}
	defer setRows.Close()

	for setRows.Next() {
		s := &models.WorkoutSet{}
		var exID uuid.UUID
		var setType string
		if err := setRows.Scan(&exID, &s.Order, &s.WeightLb, &s.Reps, &setType,
			&s.IsCompleted, &s.RPE, &s.DurationSec, &s.DistanceM, &s.Calories); err != nil {
			return fmt.Errorf("scanning set: %w", err)
		}
		s.Type = models.SetType(setType)
		if ex, ok := exByID[exID]; ok {
			ex.Sets = append(ex.Sets, s)
		}
	}
	if err := setRows.Err(); err != nil {
		return err
	}

	// Exercise order within each workout is already sorted by the query;
	// keep it stable even when ANY() interleaves workouts.
	for _, w := range byID {
		sort.Slice(w.Exercises, func(i, j int) bool { return w.Exercises[i].Order < w.Exercises[j].Order })
	}
	return nil
}
