package mind

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand/v2"

	"mizman/internal/records"
	"mizman/internal/storage"
)

const (
	SampleDays  = 7
	MaxDayHours = 24
)

var WeekLabels = [SampleDays]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Samples is a week of screen-time hours, stored as a bare JSON array.
type Samples struct {
	Hours [SampleDays]float64
}

func (s Samples) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Hours)
}

func (s *Samples) UnmarshalJSON(data []byte) error {
	var hours []float64
	if err := json.Unmarshal(data, &hours); err != nil {
		return err
	}
	if len(hours) != SampleDays {
		return fmt.Errorf("screen time needs %d samples, got %d", SampleDays, len(hours))
	}
	for i, h := range hours {
		if math.IsNaN(h) || h < 0 || h > MaxDayHours {
			return fmt.Errorf("screen time sample %d out of range: %v", i, h)
		}
	}
	copy(s.Hours[:], hours)
	return nil
}

func (s Samples) Average() float64 {
	var sum float64
	for _, h := range s.Hours {
		sum += h
	}
	return sum / SampleDays
}

// ScreenTime owns the samples. There is no device integration yet, so
// samples are drawn between 1 and 7 hours, the same stand-in the app used.
type ScreenTime struct {
	kv  storage.KV
	rng *rand.Rand
}

func NewScreenTime(kv storage.KV, rng *rand.Rand) *ScreenTime {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &ScreenTime{kv: kv, rng: rng}
}

// Load returns stored samples, generating and persisting a week when none
// are stored or the stored value is unusable.
func (st *ScreenTime) Load(ctx context.Context) Samples {
	if s, ok := records.LoadJSON[Samples](ctx, st.kv, records.ScreenTimeDataKey); ok {
		return s
	}
	return st.Sync(ctx)
}

// Sync replaces the stored week with fresh samples.
func (st *ScreenTime) Sync(ctx context.Context) Samples {
	var s Samples
	for i := range s.Hours {
		s.Hours[i] = st.rng.Float64()*6 + 1
	}
	records.SaveJSONOrLog(ctx, st.kv, records.ScreenTimeDataKey, s)
	return s
}
