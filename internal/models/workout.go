package models

import (
	"time"

	"github.com/google/uuid"
)

// MuscleGroup is the closed set of muscle categories an exercise can target.
type MuscleGroup string

const (
	MuscleChest      MuscleGroup = "chest"
	MuscleBack       MuscleGroup = "back"
	MuscleShoulders  MuscleGroup = "shoulders"
	MuscleBiceps     MuscleGroup = "biceps"
	MuscleTriceps    MuscleGroup = "triceps"
	MuscleForearms   MuscleGroup = "forearms"
	MuscleQuadriceps MuscleGroup = "quadriceps"
	MuscleHamstrings MuscleGroup = "hamstrings"
	MuscleGlutes     MuscleGroup = "glutes"
	MuscleCalves     MuscleGroup = "calves"
	MuscleCore       MuscleGroup = "core"
	MuscleFullBody   MuscleGroup = "full_body"
	MuscleCardio     MuscleGroup = "cardio"
	MuscleOther      MuscleGroup = "other"
)

// Equipment is the closed set of equipment types.
type Equipment string

const (
	EquipmentBarbell    Equipment = "barbell"
	EquipmentDumbbell   Equipment = "dumbbell"
	EquipmentMachine    Equipment = "machine"
	EquipmentCable      Equipment = "cable"
	EquipmentBodyweight Equipment = "bodyweight"
	EquipmentKettlebell Equipment = "kettlebell"
	EquipmentOther      Equipment = "other"
)

// SetType classifies a set within an exercise.
type SetType string

const (
	SetWorking SetType = "working"
	SetWarmup  SetType = "warmup"
	SetDropset SetType = "dropset"
	SetFailure SetType = "failure"
	SetAMRAP   SetType = "amrap"
)

// ParseSetType maps a source string to a SetType, defaulting to working.
func ParseSetType(s string) SetType {
	switch SetType(s) {
	case SetWarmup, SetDropset, SetFailure, SetAMRAP:
		return SetType(s)
	default:
		return SetWorking
	}
}

// Workout is the canonical aggregate all import sources converge on.
// A workout exclusively owns its exercises; exercises own their sets.
type Workout struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Date      time.Time   `json:"date"`
	StartTime *time.Time  `json:"start_time,omitempty"`
	EndTime   *time.Time  `json:"end_time,omitempty"`
	Notes     string      `json:"notes,omitempty"`
	Exercises []*Exercise `json:"exercises"`
}

// Exercise is a single movement performed within a workout.
type Exercise struct {
	ID            uuid.UUID     `json:"id"`
	Name          string        `json:"name"`
	PrimaryMuscle MuscleGroup   `json:"primary_muscle"`
	Equipment     Equipment     `json:"equipment"`
	Order         int           `json:"order"`
	Notes         string        `json:"notes,omitempty"`
	Sets          []*WorkoutSet `json:"sets"`
}

// WorkoutSet is one set of an exercise. WeightLb of 0 denotes bodyweight.
type WorkoutSet struct {
	Order       int      `json:"order"`
	WeightLb    float64  `json:"weight_lb"`
	Reps        int      `json:"reps"`
	Type        SetType  `json:"set_type"`
	IsCompleted bool     `json:"is_completed"`
	RPE         *float64 `json:"rpe,omitempty"`
	DurationSec *float64 `json:"duration_sec,omitempty"`
	DistanceM   *float64 `json:"distance_m,omitempty"`
	Calories    *float64 `json:"calories,omitempty"`
	Notes       string   `json:"notes,omitempty"`
}

// NewWorkout creates a workout with a fresh ID. An empty name gets a
// time-of-day default ("Morning Workout" etc.).
func NewWorkout(name string, date time.Time) *Workout {
	if name == "" {
		name = DefaultName(date)
	}
	return &Workout{
		ID:   uuid.New(),
		Name: name,
		Date: date,
	}
}

// AddExercise appends an exercise, assigning the next order index.
func (w *Workout) AddExercise(ex *Exercise) {
	ex.Order = len(w.Exercises)
	w.Exercises = append(w.Exercises, ex)
}

// FindExercise returns the exercise with the exact given name, or nil.
// Name matching is deliberately exact — case and whitespace differences
// produce distinct exercises.
func (w *Workout) FindExercise(name string) *Exercise {
	for _, ex := range w.Exercises {
		if ex.Name == name {
			return ex
		}
	}
	return nil
}

// TotalSets counts sets across all exercises.
func (w *Workout) TotalSets() int {
	n := 0
	for _, ex := range w.Exercises {
		n += len(ex.Sets)
	}
	return n
}

// Volume is the total tonnage (weight × reps) of the workout in pounds.
func (w *Workout) Volume() float64 {
	var v float64
	for _, ex := range w.Exercises {
		v += ex.Volume()
	}
	return v
}

// Duration returns end − start when both are set.
func (w *Workout) Duration() (time.Duration, bool) {
	if w.StartTime == nil || w.EndTime == nil {
		return 0, false
	}
	return w.EndTime.Sub(*w.StartTime), true
}

// NewExercise creates an exercise with a fresh ID.
func NewExercise(name string, muscle MuscleGroup, equipment Equipment, order int) *Exercise {
	return &Exercise{
		ID:            uuid.New(),
		Name:          name,
		PrimaryMuscle: muscle,
		Equipment:     equipment,
		Order:         order,
	}
}

// AddSet appends a set, assigning the next order index.
func (e *Exercise) AddSet(s *WorkoutSet) {
	s.Order = len(e.Sets)
	e.Sets = append(e.Sets, s)
}

// Volume is the exercise tonnage in pounds.
func (e *Exercise) Volume() float64 {
	var v float64
	for _, s := range e.Sets {
		v += s.Volume()
	}
	return v
}

// Volume is weight × reps. Bodyweight sets contribute zero.
func (s *WorkoutSet) Volume() float64 {
	return s.WeightLb * float64(s.Reps)
}

// DefaultName names a workout by the time of day it took place.
func DefaultName(date time.Time) string {
	switch h := date.Hour(); {
	case h >= 5 && h < 12:
		return "Morning Workout"
	case h >= 12 && h < 17:
		return "Afternoon Workout"
	case h >= 17 && h < 21:
		return "Evening Workout"
	default:
		return "Night Workout"
	}
}
