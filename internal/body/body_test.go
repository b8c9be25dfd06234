package body

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkouts(t *testing.T) {
	records := map[string]Record{
		"2024-01-01": {WorkoutDone: true},
		"2024-01-03": {WorkoutDone: false},
		"2024-01-07": {WorkoutDone: true},
		"2024-01-08": {WorkoutDone: true},
	}
	assert.Equal(t, 2, Workouts(records, "2024-01-01", "2024-01-07"))
	assert.Equal(t, 0, Workouts(records, "2024-02-01", "2024-02-29"))
}

func TestRecordWireShape(t *testing.T) {
	data, err := json.Marshal(Record{WorkoutDone: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"workoutDone":true}`, string(data))
}
