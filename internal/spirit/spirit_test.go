package spirit

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord(t *testing.T) {
	r, err := NewRecord(Muslim, "fajr", "Asr", " Isha ")
	require.NoError(t, err)

	done, total := r.Count()
	assert.Equal(t, 3, done)
	assert.Equal(t, 5, total)
	assert.Equal(t, []string{"Fajr", "Asr", "Isha"}, r.DoneActivities())

	_, err = NewRecord(Muslim, "Puja")
	assert.ErrorIs(t, err, ErrUnknownActivity)

	_, err = NewRecord("Jedi")
	assert.ErrorIs(t, err, ErrUnknownTradition)
}

func TestEveryTraditionHasFiveActivities(t *testing.T) {
	for _, tr := range Traditions {
		assert.Len(t, tr.Activities(), ActivityCount, tr)
	}
	assert.Nil(t, Tradition("Jedi").Activities())
}

func TestParseTradition(t *testing.T) {
	tr, err := ParseTradition("christian")
	require.NoError(t, err)
	assert.Equal(t, Christian, tr)

	_, err = ParseTradition("stoic")
	assert.ErrorIs(t, err, ErrUnknownTradition)
}

func TestRecordWireShape(t *testing.T) {
	r, err := NewRecord(Hinduism, "Puja", "Aarti")
	require.NoError(t, err)

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Puja":true,"Meditation":false,"Shlokas":false,"Bhajan":false,"Aarti":true,"tradition":"Hinduism"}`, string(data))

	var back Record
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, r, back)
}

func TestRecordDecodesLegacyShapes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Record
	}{
		{
			name: "religion tag",
			in:   `{"Morning Prayer":true,"Meditation":true,"religion":"Christian"}`,
			want: Record{Tradition: Christian, Done: [5]bool{true, false, false, false, true}},
		},
		{
			name: "untagged defaults to Muslim",
			in:   `{"Fajr":true,"Dhuhr":true}`,
			want: Record{Tradition: Muslim, Done: [5]bool{true, true}},
		},
		{
			name: "foreign activity ignored",
			in:   `{"Puja":true,"Fajr":true,"tradition":"Muslim"}`,
			want: Record{Tradition: Muslim, Done: [5]bool{true}},
		},
		{
			name: "non-boolean values count as not done",
			in:   `{"Fajr":1,"Dhuhr":"yes","Asr":null,"Maghrib":true,"tradition":"Muslim"}`,
			want: Record{Tradition: Muslim, Done: [5]bool{false, false, false, true, false}},
		},
		{
			name: "unknown tradition keeps tag",
			in:   `{"Fajr":true,"tradition":"Stoic"}`,
			want: Record{Tradition: "Stoic"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Record
			require.NoError(t, json.Unmarshal([]byte(tt.in), &got))
			assert.Equal(t, tt.want, got)
		})
	}

	var unknown Record
	require.NoError(t, json.Unmarshal([]byte(`{"Fajr":true,"tradition":"Stoic"}`), &unknown))
	done, total := unknown.Count()
	assert.Zero(t, done)
	assert.Zero(t, total)
}

func TestRecordMapSurvivesBadCell(t *testing.T) {
	var history map[string]Record
	require.NoError(t, json.Unmarshal([]byte(`{
		"2024-01-01": {"Fajr": 1, "Isha": true},
		"2024-01-02": {"Fajr": true, "Dhuhr": true, "Asr": true, "Maghrib": true, "Isha": true}
	}`), &history))

	require.Len(t, history, 2)
	done, _ := history["2024-01-01"].Count()
	assert.Equal(t, 1, done)
	done, _ = history["2024-01-02"].Count()
	assert.Equal(t, 5, done)
}
