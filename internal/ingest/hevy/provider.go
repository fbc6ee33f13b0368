package hevy

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/claude/liftlog/internal/heuristics"
	"github.com/claude/liftlog/internal/ingest"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/reconcile"
)

// Hevy timestamps are ISO-8601 with fractional seconds.
const hevyTimeLayout = "2006-01-02T15:04:05.999999999Z07:00"

// Provider drives the paginated fetch and converts Hevy workouts into
// canonical aggregates.
type Provider struct {
	engine *reconcile.Engine
	log    *slog.Logger
}

// NewProvider creates a Hevy ingest provider.
func NewProvider(engine *reconcile.Engine, log *slog.Logger) *Provider {
	return &Provider{engine: engine, log: log}
}

// Ingest fetches all pages with the given client, converts each workout,
// and merges the batch. Per-workout conversion failures go into the
// summary's error list; the rest of the batch continues.
func (p *Provider) Ingest(ctx context.Context, client *Client) (*ingest.Result, error) {
	raw, err := client.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching workouts: %w", err)
	}
	p.log.Info("hevy fetch complete", "workouts", len(raw))

	workouts := make([]*models.Workout, 0, len(raw))
	var convErrs []string
	for _, hw := range raw {
		w, err := Convert(hw)
		if err != nil {
			convErrs = append(convErrs, fmt.Sprintf("failed to import workout: %s", hw.Title))
			continue
		}
		workouts = append(workouts, w)
	}

	return p.engine.Merge(ctx, workouts, convErrs)
}

// Convert maps one Hevy API workout onto the canonical aggregate.
// Weights convert kg→lb; a "warmup" set type maps to warmup and anything
// else to working; cardio duration/distance ride on the set.
func Convert(hw models.HevyWorkout) (*models.Workout, error) {
	start, err := time.Parse(hevyTimeLayout, hw.StartTime)
	if err != nil {
		return nil, fmt.Errorf("parsing start time %q: %w", hw.StartTime, err)
	}

	w := models.NewWorkout(hw.Title, start)
	w.Notes = hw.Description
	w.StartTime = &start
	if end, err := time.Parse(hevyTimeLayout, hw.EndTime); err == nil {
		w.EndTime = &end
	}

	for _, he := range hw.Exercises {
		ex := models.NewExercise(he.Title, heuristics.GuessMuscleGroup(he.Title), models.EquipmentBarbell, 0)
		ex.Notes = he.Notes

		for _, hs := range he.Sets {
			setType := models.SetWorking
			if hs.Type == "warmup" {
				setType = models.SetWarmup
			}

			var weightLb float64
			if hs.WeightKg != nil {
				weightLb = heuristics.PoundsFromKilograms(*hs.WeightKg)
			}
			reps := 0
			if hs.Reps != nil {
				reps = *hs.Reps
			}

			set := &models.WorkoutSet{
				WeightLb:    weightLb,
				Reps:        reps,
				Type:        setType,
				IsCompleted: true,
			}
			if hs.DurationSeconds != nil {
				d := float64(*hs.DurationSeconds)
				set.DurationSec = &d
			}
			if hs.DistanceMeters != nil {
				m := float64(*hs.DistanceMeters)
				set.DistanceM = &m
			}
			ex.AddSet(set)
		}
		w.AddExercise(ex)
	}

	return w, nil
}
