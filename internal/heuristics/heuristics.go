// Package heuristics holds the pure functions shared by all import
// sources: mass unit conversion and keyword-based muscle group inference.
package heuristics

import (
	"strings"

	"github.com/claude/liftlog/internal/models"
)

// PoundsPerKilogram is the fixed conversion factor. No rounding is applied
// until presentation.
const PoundsPerKilogram = 2.20462

// PoundsFromKilograms converts a mass in kilograms to pounds.
func PoundsFromKilograms(kg float64) float64 {
	return kg * PoundsPerKilogram
}

// KilogramsFromPounds converts a mass in pounds to kilograms.
func KilogramsFromPounds(lb float64) float64 {
	return lb / PoundsPerKilogram
}

// muscleKeywords is an ordered cascade: the first group with a matching
// keyword wins. Order matters for overlapping keywords — "press" appears
// under both chest ("push") territory and shoulders, and chest runs first.
var muscleKeywords = []struct {
	group    models.MuscleGroup
	keywords []string
}{
	{models.MuscleChest, []string{"bench", "chest", "fly", "push"}},
	{models.MuscleBack, []string{"row", "pull", "lat", "back"}},
	{models.MuscleShoulders, []string{"shoulder", "press", "lateral", "delt"}},
	{models.MuscleBiceps, []string{"bicep", "curl"}},
	{models.MuscleTriceps, []string{"tricep", "pushdown", "skull"}},
	{models.MuscleQuadriceps, []string{"squat", "leg press", "quad", "lunge"}},
	{models.MuscleHamstrings, []string{"deadlift", "hamstring", "rdl"}},
	{models.MuscleCalves, []string{"calf", "calves"}},
	{models.MuscleGlutes, []string{"glute", "hip thrust"}},
	{models.MuscleCore, []string{"ab", "crunch", "plank", "core"}},
	{models.MuscleCardio, []string{"run", "bike", "cardio", "stair", "treadmill"}},
}

// GuessMuscleGroup infers the primary muscle group from an exercise name.
// Unmatched names return MuscleOther.
func GuessMuscleGroup(name string) models.MuscleGroup {
	lower := strings.ToLower(name)
	for _, mk := range muscleKeywords {
		for _, kw := range mk.keywords {
			if strings.Contains(lower, kw) {
				return mk.group
			}
		}
	}
	return models.MuscleOther
}
