// Package health imports activity samples exported from a health platform.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/claude/liftlog/internal/ingest"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/reconcile"
)

// Provider converts health activity samples into workouts. Each sample
// becomes one workout with a single synthesized exercise carrying the
// sample's duration, distance, and calories.
type Provider struct {
	engine *reconcile.Engine
	log    *slog.Logger
}

// NewProvider creates a health sample ingest provider.
func NewProvider(engine *reconcile.Engine, log *slog.Logger) *Provider {
	return &Provider{engine: engine, log: log}
}

// Ingest reads a JSON array of samples and merges the converted workouts.
func (p *Provider) Ingest(ctx context.Context, r io.Reader) (*ingest.Result, error) {
	var samples []models.HealthSample
	if err := json.NewDecoder(r).Decode(&samples); err != nil {
		return nil, fmt.Errorf("decoding health samples: %w", err)
	}
	p.log.Info("health export decoded", "samples", len(samples))
	return p.IngestSamples(ctx, samples)
}

// IngestSamples merges already-decoded samples.
func (p *Provider) IngestSamples(ctx context.Context, samples []models.HealthSample) (*ingest.Result, error) {
	workouts := make([]*models.Workout, 0, len(samples))
	var convErrs []string
	for _, s := range samples {
		w, err := Convert(s)
		if err != nil {
			convErrs = append(convErrs, fmt.Sprintf("failed to import workout: %s", s.ActivityType))
			continue
		}
		workouts = append(workouts, w)
	}
	return p.engine.Merge(ctx, workouts, convErrs)
}

// Convert maps one sample onto a workout with a single exercise and set.
// Samples carry no per-set detail, so the set records only the sample's
// duration, distance, and energy.
func Convert(s models.HealthSample) (*models.Workout, error) {
	if s.Start.IsZero() {
		return nil, fmt.Errorf("sample %q has no start time", s.ActivityType)
	}

	name := models.ActivityName(s.ActivityType)
	w := models.NewWorkout(name, s.Start)
	w.Notes = "Imported from Apple Health"
	start := s.Start
	w.StartTime = &start
	if !s.End.IsZero() {
		end := s.End
		w.EndTime = &end
	}

	ex := models.NewExercise(name, models.ActivityMuscleGroup(s.ActivityType), models.EquipmentOther, 0)
	set := &models.WorkoutSet{
		Type:        models.SetWorking,
		IsCompleted: true,
	}
	if !s.End.IsZero() && s.End.After(s.Start) {
		d := s.End.Sub(s.Start).Seconds()
		set.DurationSec = &d
	}
	if s.DistanceM != nil {
		m := *s.DistanceM
		set.DistanceM = &m
	}
	if s.EnergyBurnedKc != nil {
		kc := *s.EnergyBurnedKc
		set.Calories = &kc
	}
	ex.AddSet(set)
	w.AddExercise(ex)

	return w, nil
}
