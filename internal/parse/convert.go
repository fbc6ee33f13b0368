package parse

import (
	"time"

	"github.com/claude/liftlog/internal/heuristics"
	"github.com/claude/liftlog/internal/models"
)

// ToWorkout converts parsed output into the canonical aggregate. A nil
// set weight means bodyweight and becomes 0 lb.
func ToWorkout(pw *ParsedWorkout, date time.Time) *models.Workout {
	w := models.NewWorkout(pw.WorkoutName, date)
	w.Notes = pw.Notes

	for _, pe := range pw.Exercises {
		ex := models.NewExercise(pe.Name, heuristics.GuessMuscleGroup(pe.Name), models.EquipmentBarbell, 0)
		ex.Notes = pe.Notes
		for _, ps := range pe.Sets {
			var weight float64
			if ps.Weight != nil {
				weight = *ps.Weight
			}
			ex.AddSet(&models.WorkoutSet{
				WeightLb:    weight,
				Reps:        ps.Reps,
				Type:        models.ParseSetType(ps.SetType),
				IsCompleted: true,
			})
		}
		w.AddExercise(ex)
	}

	return w
}
