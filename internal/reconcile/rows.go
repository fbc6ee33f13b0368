// Package reconcile merges extracted workout data into the object store.
// CSV-shaped sources emit flat Rows which are grouped into aggregates by
// identity key; API and health sources hand over complete aggregates.
package reconcile

import (
	"time"

	"github.com/claude/liftlog/internal/models"
)

// Row is one flat record emitted by a CSV adapter. StartRaw is the
// unparsed start-time string — the identity key uses it verbatim, before
// any date parsing, so two rows merge only when the source text matches.
type Row struct {
	Title    string
	StartRaw string
	Date     time.Time

	ExerciseName string
	Muscle       models.MuscleGroup
	Equipment    models.Equipment
	WeightLb     float64
	Reps         int
	Type         models.SetType
}

// Key returns the row's identity key. Rows without a title (the generic
// dialect) key on the raw date string alone.
func (r Row) Key() string {
	if r.Title == "" {
		return r.StartRaw
	}
	return r.Title + "_" + r.StartRaw
}

// GroupRows folds rows into workouts. The first row for a key creates the
// workout; within a workout, rows with the exact same exercise name append
// sets to one exercise, in row order. No name fuzzing: case or whitespace
// differences produce distinct exercises.
func GroupRows(rows []Row) []*models.Workout {
	byKey := map[string]*models.Workout{}
	var order []string

	for _, r := range rows {
		key := r.Key()
		w, ok := byKey[key]
		if !ok {
			name := r.Title
			if name == "" {
				name = "Imported Workout"
			}
			date := r.Date
			if date.IsZero() {
				date = time.Now()
			}
			w = models.NewWorkout(name, date)
			byKey[key] = w
			order = append(order, key)
		}

		ex := w.FindExercise(r.ExerciseName)
		if ex == nil {
			muscle := r.Muscle
			if muscle == "" {
				muscle = models.MuscleOther
			}
			equipment := r.Equipment
			if equipment == "" {
				equipment = models.EquipmentBarbell
			}
			ex = models.NewExercise(r.ExerciseName, muscle, equipment, 0)
			w.AddExercise(ex)
		}

		setType := r.Type
		if setType == "" {
			setType = models.SetWorking
		}
		ex.AddSet(&models.WorkoutSet{
			WeightLb:    r.WeightLb,
			Reps:        r.Reps,
			Type:        setType,
			IsCompleted: true,
		})
	}

	out := make([]*models.Workout, 0, len(order))
	for _, key := range order {
		out = append(out, byKey[key])
	}
	return out
}
