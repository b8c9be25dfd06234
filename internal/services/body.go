package services

import (
	"context"
	"sync"

	"mizman/internal/body"
	"mizman/internal/calendar"
	"mizman/internal/records"
	"mizman/internal/storage"
)

type BodyService struct {
	store *records.Store[body.Record]
	mu    sync.Mutex
}

func NewBodyService(kv storage.KV) *BodyService {
	return &BodyService{store: records.New[body.Record](kv, records.GymDataKey)}
}

func (bs *BodyService) Records(ctx context.Context) map[string]body.Record {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	return bs.store.Load(ctx)
}

func (bs *BodyService) Day(ctx context.Context, date string) (body.Record, bool) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	return bs.store.Get(ctx, date)
}

func (bs *BodyService) Save(ctx context.Context, date string, workoutDone bool) (map[string]calendar.Marker, error) {
	bs.mu.Lock()
	snapshot, err := bs.store.Upsert(ctx, date, body.Record{WorkoutDone: workoutDone})
	bs.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return calendar.Project(snapshot, calendar.BodyMarker), nil
}

func (bs *BodyService) Markers(ctx context.Context) map[string]calendar.Marker {
	return calendar.Project(bs.Records(ctx), calendar.BodyMarker)
}

func (bs *BodyService) MonthMarkers(ctx context.Context, month string) map[string]calendar.Marker {
	return calendar.Month(bs.Markers(ctx), month)
}

func (bs *BodyService) WorkoutsBetween(ctx context.Context, from, to string) int {
	return body.Workouts(bs.Records(ctx), from, to)
}
