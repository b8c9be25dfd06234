package mind

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"mizman/internal/records"
	"mizman/internal/storage"
)

const day = 24 * time.Hour

// Confirmation gates the destructive reset. Front-ends only pass Confirmed
// after the user explicitly agreed.
type Confirmation bool

const (
	NotConfirmed Confirmation = false
	Confirmed    Confirmation = true
)

var ErrResetNotConfirmed = errors.New("streak reset needs explicit confirmation")

// Tracker holds the streak start and the longest streak seen so far.
type Tracker struct {
	kv storage.KV

	mu      sync.Mutex
	startMs int64
	longest int
}

func NewTracker(kv storage.KV) *Tracker {
	return &Tracker{kv: kv}
}

// Load reads persisted state. A missing, corrupt or negative start timestamp
// restarts the streak at now; a start in the future is clamped to now.
func (t *Tracker) Load(ctx context.Context, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	nowMs := now.UnixMilli()
	start, ok := records.LoadInt(ctx, t.kv, records.StreakStartKey)
	switch {
	case !ok || start < 0:
		log.Printf("🧠 Starting a new streak at %s", now.UTC().Format(time.RFC3339))
		start = nowMs
		records.SaveIntOrLog(ctx, t.kv, records.StreakStartKey, start)
	case start > nowMs:
		log.Printf("⚠️ Streak start is in the future, clamping to now")
		start = nowMs
		records.SaveIntOrLog(ctx, t.kv, records.StreakStartKey, start)
	}
	t.startMs = start

	longest, ok := records.LoadInt(ctx, t.kv, records.LongestStreakKey)
	if !ok || longest < 0 {
		longest = 0
	}
	t.longest = int(longest)
}

// current is the number of whole days since the streak started. It does not
// ratchet the longest streak; callers outside tests go through Observe.
func (t *Tracker) current(now time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.currentLocked(now)
}

func (t *Tracker) currentLocked(now time.Time) int {
	elapsed := now.UnixMilli() - t.startMs
	if elapsed <= 0 {
		return 0
	}
	return int(elapsed / day.Milliseconds())
}

func (t *Tracker) Longest() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.longest
}

func (t *Tracker) StartedAt() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return time.UnixMilli(t.startMs)
}

// Observe computes the current streak and ratchets the longest one.
func (t *Tracker) Observe(ctx context.Context, now time.Time) (current, longest int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.observeLocked(ctx, now)
}

func (t *Tracker) observeLocked(ctx context.Context, now time.Time) (int, int) {
	current := t.currentLocked(now)
	if current > t.longest {
		t.longest = current
		records.SaveIntOrLog(ctx, t.kv, records.LongestStreakKey, int64(current))
	}
	return current, t.longest
}

// Reset restarts the streak at now. The streak being discarded is observed
// first so the longest streak keeps it.
func (t *Tracker) Reset(ctx context.Context, now time.Time, c Confirmation) error {
	if c != Confirmed {
		return ErrResetNotConfirmed
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	t.observeLocked(ctx, now)
	t.startMs = now.UnixMilli()
	records.SaveIntOrLog(ctx, t.kv, records.StreakStartKey, t.startMs)
	log.Printf("🔄 Streak reset, longest so far: %d days", t.longest)
	return nil
}
