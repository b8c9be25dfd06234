package services

import (
	"context"
	"sync"
	"time"

	"mizman/internal/mind"
)

type StreakView struct {
	Current   int       `json:"currentStreakDays"`
	Longest   int       `json:"longestStreakDays"`
	StartedAt time.Time `json:"startedAt"`
}

type ScreenTimeView struct {
	Labels  []string  `json:"labels"`
	Hours   []float64 `json:"hours"`
	Average float64   `json:"average"`
}

type MindService struct {
	tracker    *mind.Tracker
	screenTime *mind.ScreenTime
	clock      func() time.Time
	loadOnce   sync.Once
}

func NewMindService(tracker *mind.Tracker, screenTime *mind.ScreenTime, clock func() time.Time) *MindService {
	return &MindService{tracker: tracker, screenTime: screenTime, clock: clock}
}

func (ms *MindService) ensureLoaded(ctx context.Context) {
	ms.loadOnce.Do(func() { ms.tracker.Load(ctx, ms.clock()) })
}

// Streak observes the streak now, ratcheting the longest streak.
func (ms *MindService) Streak(ctx context.Context) StreakView {
	ms.ensureLoaded(ctx)
	current, longest := ms.tracker.Observe(ctx, ms.clock())
	return StreakView{Current: current, Longest: longest, StartedAt: ms.tracker.StartedAt().UTC()}
}

func (ms *MindService) Reset(ctx context.Context, c mind.Confirmation) (StreakView, error) {
	ms.ensureLoaded(ctx)
	if err := ms.tracker.Reset(ctx, ms.clock(), c); err != nil {
		return StreakView{}, err
	}
	return ms.Streak(ctx), nil
}

func (ms *MindService) ScreenTime(ctx context.Context) ScreenTimeView {
	return screenTimeView(ms.screenTime.Load(ctx))
}

func (ms *MindService) SyncScreenTime(ctx context.Context) ScreenTimeView {
	return screenTimeView(ms.screenTime.Sync(ctx))
}

func screenTimeView(s mind.Samples) ScreenTimeView {
	return ScreenTimeView{
		Labels:  mind.WeekLabels[:],
		Hours:   s.Hours[:],
		Average: s.Average(),
	}
}
