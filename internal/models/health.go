package models

import "time"

// HealthSample is one activity sample from a health platform export.
// The pipeline only reads finished samples; authorization and capture
// belong to the exporting side.
type HealthSample struct {
	ActivityType   string    `json:"activity_type"`
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	EnergyBurnedKc *float64  `json:"energy_burned_kcal,omitempty"`
	DistanceM      *float64  `json:"distance_m,omitempty"`
}

// activityNames maps health-platform activity type identifiers to
// display names. Unknown types fall through to "Workout".
var activityNames = map[string]string{
	"traditional_strength_training":    "Strength Training",
	"functional_strength_training":     "Functional Training",
	"running":                          "Running",
	"cycling":                          "Cycling",
	"rowing":                           "Rowing",
	"stair_climbing":                   "Stair Climbing",
	"high_intensity_interval_training": "HIIT",
	"cross_training":                   "Cross Training",
	"mixed_cardio":                     "Cardio",
	"walking":                          "Walking",
	"swimming":                         "Swimming",
	"yoga":                             "Yoga",
	"pilates":                          "Pilates",
	"elliptical":                       "Elliptical",
}

// ActivityName returns the display name for a health activity type.
func ActivityName(activityType string) string {
	if name, ok := activityNames[activityType]; ok {
		return name
	}
	return "Workout"
}

// ActivityMuscleGroup maps an activity type to the muscle group recorded
// on the synthesized exercise.
func ActivityMuscleGroup(activityType string) MuscleGroup {
	switch activityType {
	case "traditional_strength_training", "functional_strength_training":
		return MuscleFullBody
	case "running", "cycling", "rowing", "stair_climbing", "swimming",
		"elliptical", "mixed_cardio":
		return MuscleCardio
	case "yoga", "pilates":
		return MuscleCore
	default:
		return MuscleOther
	}
}
