package models

import (
	"testing"
	"time"
)

// TestAddExerciseOrdering verifies exercises get sequential 0-based order
// indices as they are appended.
func TestAddExerciseOrdering(t *testing.T) {
	w := NewWorkout("Leg Day", time.Date(2026, 2, 20, 18, 0, 0, 0, time.UTC))
	w.AddExercise(NewExercise("Squat", MuscleQuadriceps, EquipmentBarbell, 0))
	w.AddExercise(NewExercise("Leg Press", MuscleQuadriceps, EquipmentMachine, 0))

	if w.Exercises[0].Order != 0 || w.Exercises[1].Order != 1 {
		t.Errorf("orders = %d,%d, want 0,1", w.Exercises[0].Order, w.Exercises[1].Order)
	}
}

// TestFindExerciseExactMatch verifies lookup is exact-string only —
// case and whitespace variants are distinct exercises.
func TestFindExerciseExactMatch(t *testing.T) {
	w := NewWorkout("Push", time.Now())
	w.AddExercise(NewExercise("Bench Press", MuscleChest, EquipmentBarbell, 0))

	if w.FindExercise("Bench Press") == nil {
		t.Error("exact match not found")
	}
	if w.FindExercise("bench press") != nil {
		t.Error("case variant matched, want distinct")
	}
	if w.FindExercise("Bench Press ") != nil {
		t.Error("whitespace variant matched, want distinct")
	}
}

// TestVolume verifies tonnage accumulation and that bodyweight sets
// (weight 0) contribute nothing.
func TestVolume(t *testing.T) {
	ex := NewExercise("Squat", MuscleQuadriceps, EquipmentBarbell, 0)
	ex.AddSet(&WorkoutSet{WeightLb: 225, Reps: 5})
	ex.AddSet(&WorkoutSet{WeightLb: 0, Reps: 10}) // bodyweight

	if got := ex.Volume(); got != 1125 {
		t.Errorf("Volume() = %v, want 1125", got)
	}
	if ex.Sets[1].Order != 1 {
		t.Errorf("set order = %d, want 1", ex.Sets[1].Order)
	}
}

// TestDefaultName covers the time-of-day naming buckets.
func TestDefaultName(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{6, "Morning Workout"},
		{13, "Afternoon Workout"},
		{18, "Evening Workout"},
		{23, "Night Workout"},
		{3, "Night Workout"},
	}
	for _, tt := range tests {
		d := time.Date(2026, 2, 20, tt.hour, 0, 0, 0, time.UTC)
		if got := DefaultName(d); got != tt.want {
			t.Errorf("DefaultName(hour=%d) = %q, want %q", tt.hour, got, tt.want)
		}
	}
}

// TestNewWorkoutEmptyName verifies the default name kicks in for empty names.
func TestNewWorkoutEmptyName(t *testing.T) {
	w := NewWorkout("", time.Date(2026, 2, 20, 9, 0, 0, 0, time.UTC))
	if w.Name != "Morning Workout" {
		t.Errorf("Name = %q, want Morning Workout", w.Name)
	}
	if w.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("ID not assigned")
	}
}

// TestParseSetType verifies unknown strings default to working.
func TestParseSetType(t *testing.T) {
	if got := ParseSetType("warmup"); got != SetWarmup {
		t.Errorf("ParseSetType(warmup) = %q", got)
	}
	if got := ParseSetType("normal"); got != SetWorking {
		t.Errorf("ParseSetType(normal) = %q, want working", got)
	}
	if got := ParseSetType(""); got != SetWorking {
		t.Errorf("ParseSetType(empty) = %q, want working", got)
	}
}

// TestDuration verifies Duration requires both endpoints.
func TestDuration(t *testing.T) {
	w := NewWorkout("X", time.Now())
	if _, ok := w.Duration(); ok {
		t.Error("Duration ok with no endpoints")
	}
	start := time.Date(2026, 2, 20, 10, 0, 0, 0, time.UTC)
	end := start.Add(45 * time.Minute)
	w.StartTime, w.EndTime = &start, &end
	d, ok := w.Duration()
	if !ok || d != 45*time.Minute {
		t.Errorf("Duration = %v,%v, want 45m,true", d, ok)
	}
}

// TestActivityLookups verifies the health activity name and muscle tables.
func TestActivityLookups(t *testing.T) {
	if got := ActivityName("running"); got != "Running" {
		t.Errorf("ActivityName(running) = %q", got)
	}
	if got := ActivityName("underwater_basket_weaving"); got != "Workout" {
		t.Errorf("ActivityName(unknown) = %q, want Workout", got)
	}
	if got := ActivityMuscleGroup("traditional_strength_training"); got != MuscleFullBody {
		t.Errorf("muscle(strength) = %q, want full_body", got)
	}
	if got := ActivityMuscleGroup("rowing"); got != MuscleCardio {
		t.Errorf("muscle(rowing) = %q, want cardio", got)
	}
	if got := ActivityMuscleGroup("yoga"); got != MuscleCore {
		t.Errorf("muscle(yoga) = %q, want core", got)
	}
	if got := ActivityMuscleGroup("walking"); got != MuscleOther {
		t.Errorf("muscle(walking) = %q, want other", got)
	}
}
