package parse

import "fmt"

// promptTemplate instructs the model to return only JSON in the parsed
// workout shape. The worked examples pin the set-expansion and
// bodyweight conventions.
const promptTemplate = `Parse this gym workout description into structured data. Return ONLY valid JSON.

Output format:
{
  "exercises": [
    {
      "name": "Exercise Name",
      "sets": [
        {"weight": 135, "reps": 10, "setType": "warmup"},
        {"weight": 185, "reps": 8, "setType": "working"}
      ],
      "notes": "optional notes"
    }
  ],
  "workoutName": "optional workout name",
  "notes": "optional overall notes"
}

Rules:
- weight is in lbs, null for bodyweight exercises
- setType can be: "warmup", "working", "dropset", "failure", "amrap"
- Recognize common exercise names and normalize them
- "3x10" means 3 sets of 10 reps at same weight
- "135x10" or "135 for 10" means 135 lbs for 10 reps
- "BW" or "bodyweight" means weight is null

Examples:

Input: "bench press 135x10, 185x8, 205x6"
Output: {"exercises":[{"name":"Bench Press","sets":[{"weight":135,"reps":10,"setType":"working"},{"weight":185,"reps":8,"setType":"working"},{"weight":205,"reps":6,"setType":"working"}]}]}

Input: "squats: warmup 135x10, then 225 for 5x3"
Output: {"exercises":[{"name":"Barbell Squat","sets":[{"weight":135,"reps":10,"setType":"warmup"},{"weight":225,"reps":5,"setType":"working"},{"weight":225,"reps":5,"setType":"working"},{"weight":225,"reps":5,"setType":"working"}]}]}

Input: "pull-ups 3x8, dips 3x10 bodyweight"
Output: {"exercises":[{"name":"Pull-ups","sets":[{"weight":null,"reps":8,"setType":"working"},{"weight":null,"reps":8,"setType":"working"},{"weight":null,"reps":8,"setType":"working"}]},{"name":"Dips","sets":[{"weight":null,"reps":10,"setType":"working"},{"weight":null,"reps":10,"setType":"working"},{"weight":null,"reps":10,"setType":"working"}]}]}

Now parse:
%s`

func buildPrompt(input string) string {
	return fmt.Sprintf(promptTemplate, input)
}
