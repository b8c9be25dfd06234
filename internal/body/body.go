package body

// Record is one day of the gym log.
type Record struct {
	WorkoutDone bool `json:"workoutDone"`
}

// Workouts counts the days in [from, to] with a completed workout.
// Both bounds are ISO dates, which compare correctly as strings.
func Workouts(records map[string]Record, from, to string) int {
	n := 0
	for date, r := range records {
		if r.WorkoutDone && date >= from && date <= to {
			n++
		}
	}
	return n
}
