package mind

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mizman/internal/records"
	"mizman/internal/storage"
)

var t0 = time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

func stored(t *testing.T, kv storage.KV, key string) string {
	t.Helper()
	v, ok, err := kv.Get(context.Background(), key)
	require.NoError(t, err)
	require.True(t, ok, key)
	return v
}

func TestFirstLoadStartsStreakNow(t *testing.T) {
	kv := storage.NewMemoryStore()
	tr := NewTracker(kv)
	tr.Load(context.Background(), t0)

	assert.Equal(t, 0, tr.current(t0))
	assert.Equal(t, strconv.FormatInt(t0.UnixMilli(), 10), stored(t, kv, records.StreakStartKey))
}

func TestCurrentFloorsWholeDays(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	start := t0.Add(-(3*day + 2*time.Hour))
	require.NoError(t, kv.Set(ctx, records.StreakStartKey, strconv.FormatInt(start.UnixMilli(), 10)))

	tr := NewTracker(kv)
	tr.Load(ctx, t0)
	assert.Equal(t, 3, tr.current(t0))
	assert.Equal(t, 3, tr.current(t0.Add(21*time.Hour)))
	assert.Equal(t, 4, tr.current(t0.Add(22*time.Hour)))
}

func TestCurrentIsMonotonic(t *testing.T) {
	tr := NewTracker(storage.NewMemoryStore())
	tr.Load(context.Background(), t0)

	prev := -1
	for h := 0; h < 24*10; h += 5 {
		c := tr.current(t0.Add(time.Duration(h) * time.Hour))
		assert.GreaterOrEqual(t, c, prev)
		prev = c
	}
	assert.Equal(t, 0, tr.current(t0.Add(-time.Hour)), "never negative")
}

func TestCorruptStartRestarts(t *testing.T) {
	ctx := context.Background()
	for _, raw := range []string{"yesterday", "", "-5"} {
		kv := storage.NewMemoryStore()
		require.NoError(t, kv.Set(ctx, records.StreakStartKey, raw))
		tr := NewTracker(kv)
		tr.Load(ctx, t0)
		assert.Equal(t, 0, tr.current(t0), raw)
		assert.Equal(t, t0.UnixMilli(), tr.StartedAt().UnixMilli(), raw)
	}
}

func TestFutureStartIsClamped(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	require.NoError(t, kv.Set(ctx, records.StreakStartKey, strconv.FormatInt(t0.Add(48*time.Hour).UnixMilli(), 10)))

	tr := NewTracker(kv)
	tr.Load(ctx, t0)
	assert.Equal(t, t0.UnixMilli(), tr.StartedAt().UnixMilli())
	assert.Equal(t, strconv.FormatInt(t0.UnixMilli(), 10), stored(t, kv, records.StreakStartKey))
}

func TestResetNeedsConfirmation(t *testing.T) {
	ctx := context.Background()
	tr := NewTracker(storage.NewMemoryStore())
	tr.Load(ctx, t0)

	later := t0.Add(5 * day)
	assert.ErrorIs(t, tr.Reset(ctx, later, NotConfirmed), ErrResetNotConfirmed)
	assert.Equal(t, 5, tr.current(later))

	require.NoError(t, tr.Reset(ctx, later, Confirmed))
	assert.Equal(t, 0, tr.current(later))
}

func TestLongestRatchet(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	tr := NewTracker(kv)
	tr.Load(ctx, t0)

	maxSeen := 0
	now := t0
	observe := func() {
		c, l := tr.Observe(ctx, now)
		if c > maxSeen {
			maxSeen = c
		}
		assert.Equal(t, maxSeen, l)
		assert.GreaterOrEqual(t, l, c)
	}

	now = now.Add(4 * day)
	observe()
	require.NoError(t, tr.Reset(ctx, now, Confirmed))
	observe()

	now = now.Add(2 * day)
	observe()
	assert.Equal(t, 4, tr.Longest())

	// a streak that ends unobserved is still counted by Reset
	now = now.Add(5 * day)
	require.NoError(t, tr.Reset(ctx, now, Confirmed))
	assert.Equal(t, 7, tr.Longest())
	assert.Equal(t, "7", stored(t, kv, records.LongestStreakKey))

	reloaded := NewTracker(kv)
	reloaded.Load(ctx, now)
	assert.Equal(t, 7, reloaded.Longest())
	assert.Equal(t, 0, reloaded.current(now))
}

func TestObserveRaisesStoredLongest(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	start := t0.Add(-5 * day)
	require.NoError(t, kv.Set(ctx, records.StreakStartKey, strconv.FormatInt(start.UnixMilli(), 10)))
	require.NoError(t, kv.Set(ctx, records.LongestStreakKey, "2"))

	tr := NewTracker(kv)
	tr.Load(ctx, t0)
	assert.Equal(t, 2, tr.Longest())

	c, l := tr.Observe(ctx, t0)
	assert.Equal(t, 5, c)
	assert.Equal(t, 5, l)
	assert.Equal(t, "5", stored(t, kv, records.LongestStreakKey))
}

func TestScreenTimeGeneratesAndPersists(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	st := NewScreenTime(kv, rand.New(rand.NewPCG(1, 2)))

	first := st.Load(ctx)
	for _, h := range first.Hours {
		assert.GreaterOrEqual(t, h, 1.0)
		assert.Less(t, h, 7.0)
	}
	assert.Equal(t, first, st.Load(ctx), "stored samples are reused")

	synced := st.Sync(ctx)
	assert.NotEqual(t, first, synced)
	assert.Equal(t, synced, st.Load(ctx))
}

func TestScreenTimeReplacesBadData(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"short", `[1,2,3]`},
		{"negative", `[-1,2,3,4,5,6,7]`},
		{"huge", `[1e18,2,3,4,5,6,7]`},
		{"over a day", `[1,2,3,4,5,6,24.5]`},
		{"not numbers", `["a","b"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			kv := storage.NewMemoryStore()
			require.NoError(t, kv.Set(ctx, records.ScreenTimeDataKey, tt.raw))

			s := NewScreenTime(kv, rand.New(rand.NewPCG(3, 4))).Load(ctx)
			for _, h := range s.Hours {
				assert.GreaterOrEqual(t, h, 1.0)
				assert.Less(t, h, 7.0)
			}
			assert.NotEqual(t, tt.raw, stored(t, kv, records.ScreenTimeDataKey), "regenerated week is saved")
		})
	}
}

func TestSamplesAcceptFullRange(t *testing.T) {
	var s Samples
	require.NoError(t, json.Unmarshal([]byte(`[0,24,0.5,1,2,3,4]`), &s))
	assert.Equal(t, 24.0, s.Hours[1])
}

func TestSamplesAverage(t *testing.T) {
	s := Samples{Hours: [7]float64{1, 2, 3, 4, 5, 6, 7}}
	assert.InDelta(t, 4.0, s.Average(), 1e-9)
}
