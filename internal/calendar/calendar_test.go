package calendar

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mizman/internal/body"
	"mizman/internal/spirit"
)

func TestSpiritProjection(t *testing.T) {
	partial, err := spirit.NewRecord(spirit.Muslim, "Fajr", "Dhuhr", "Asr")
	require.NoError(t, err)
	complete, err := spirit.NewRecord(spirit.Muslim, "Fajr", "Dhuhr", "Asr", "Maghrib", "Isha")
	require.NoError(t, err)
	empty, err := spirit.NewRecord(spirit.Christian)
	require.NoError(t, err)

	records := map[string]spirit.Record{
		"2024-01-01": partial,
		"2024-01-03": empty,
	}
	got := Project(records, SpiritMarker)
	assert.Equal(t, map[string]Marker{"2024-01-01": Partial}, got)
	_, has := got["2024-01-02"]
	assert.False(t, has)
	_, has = got["2024-01-03"]
	assert.False(t, has, "zero done is omitted, not none")

	records["2024-01-01"] = complete
	assert.Equal(t, map[string]Marker{"2024-01-01": Complete}, Project(records, SpiritMarker))
}

func TestSpiritProjectionUsesRecordTradition(t *testing.T) {
	hindu, err := spirit.NewRecord(spirit.Hinduism, "Puja", "Meditation", "Shlokas", "Bhajan", "Aarti")
	require.NoError(t, err)
	christian, err := spirit.NewRecord(spirit.Christian, "Meditation")
	require.NoError(t, err)

	got := Project(map[string]spirit.Record{
		"2024-03-01": hindu,
		"2024-03-02": christian,
		"2024-03-03": {Tradition: "Stoic", Done: [5]bool{true, true, true, true, true}},
	}, SpiritMarker)

	assert.Equal(t, map[string]Marker{
		"2024-03-01": Complete,
		"2024-03-02": Partial,
	}, got)
}

func TestBodyProjection(t *testing.T) {
	got := Project(map[string]body.Record{
		"2024-01-01": {WorkoutDone: true},
		"2024-01-02": {WorkoutDone: false},
	}, BodyMarker)
	assert.Equal(t, map[string]Marker{"2024-01-01": Complete}, got)
}

func TestProjectIsIdempotent(t *testing.T) {
	r, err := spirit.NewRecord(spirit.Muslim, "Isha")
	require.NoError(t, err)
	records := map[string]spirit.Record{"2024-05-05": r, "2024-05-06": r}

	first := Project(records, SpiritMarker)
	second := Project(records, SpiritMarker)
	assert.Equal(t, first, second)
	assert.Len(t, records, 2)
}

func TestMonth(t *testing.T) {
	markers := map[string]Marker{
		"2024-01-31": Complete,
		"2024-02-01": Partial,
		"2024-02-29": Complete,
		"2024-12-01": Complete,
	}
	assert.Equal(t, map[string]Marker{
		"2024-02-01": Partial,
		"2024-02-29": Complete,
	}, Month(markers, "2024-02"))
}

func TestMarkerJSON(t *testing.T) {
	data, err := json.Marshal(map[string]Marker{"2024-01-01": Partial})
	require.NoError(t, err)
	assert.JSONEq(t, `{"2024-01-01":"partial"}`, string(data))

	var m Marker
	require.NoError(t, json.Unmarshal([]byte(`"complete"`), &m))
	assert.Equal(t, Complete, m)
	assert.Error(t, json.Unmarshal([]byte(`"done"`), &m))
}
