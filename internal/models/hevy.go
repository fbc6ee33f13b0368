package models

// Wire shapes for the Hevy REST API (GET /v1/workouts?page=N&pageSize=10).

// HevyPage is one page of the paginated workouts listing.
type HevyPage struct {
	Page      int           `json:"page"`
	PageCount int           `json:"page_count"`
	Workouts  []HevyWorkout `json:"workouts"`
}

// HevyWorkout is a workout as returned by the Hevy API.
type HevyWorkout struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	StartTime   string         `json:"start_time"`
	EndTime     string         `json:"end_time"`
	Exercises   []HevyExercise `json:"exercises"`
}

// HevyExercise is an exercise entry within a Hevy workout.
type HevyExercise struct {
	Index int       `json:"index"`
	Title string    `json:"title"`
	Notes string    `json:"notes,omitempty"`
	Sets  []HevySet `json:"sets"`
}

// HevySet is a single set. Weight is kilograms; optional fields are
// pointers so absent and zero are distinguishable.
type HevySet struct {
	Index           int      `json:"index"`
	Type            string   `json:"type"`
	WeightKg        *float64 `json:"weight_kg,omitempty"`
	Reps            *int     `json:"reps,omitempty"`
	DistanceMeters  *int     `json:"distance_meters,omitempty"`
	DurationSeconds *int     `json:"duration_seconds,omitempty"`
}
