package services

import (
	"context"
	"sync"

	"mizman/internal/calendar"
	"mizman/internal/records"
	"mizman/internal/settings"
	"mizman/internal/spirit"
	"mizman/internal/storage"
)

type SpiritService struct {
	store    *records.Store[spirit.Record]
	settings *settings.Service
	mu       sync.Mutex
}

func NewSpiritService(kv storage.KV, prefs *settings.Service) *SpiritService {
	return &SpiritService{
		store:    records.New[spirit.Record](kv, records.PrayerDataKey),
		settings: prefs,
	}
}

func (ss *SpiritService) Records(ctx context.Context) map[string]spirit.Record {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return ss.store.Load(ctx)
}

// Day returns the stored record for date, or an empty one under the
// preferred tradition when the day was never edited.
func (ss *SpiritService) Day(ctx context.Context, date string) (spirit.Record, bool) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if r, ok := ss.store.Get(ctx, date); ok {
		return r, true
	}
	return spirit.Record{Tradition: ss.settings.Current().Tradition}, false
}

// Save replaces the day's record and returns the recomputed markers.
// Saving under another tradition makes it the preferred one.
func (ss *SpiritService) Save(ctx context.Context, date string, rec spirit.Record) (map[string]calendar.Marker, error) {
	if !rec.Tradition.Valid() {
		return nil, spirit.ErrUnknownTradition
	}
	ss.mu.Lock()
	snapshot, err := ss.store.Upsert(ctx, date, rec)
	ss.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if _, err := ss.settings.SetTradition(ctx, rec.Tradition); err != nil {
		return nil, err
	}
	return calendar.Project(snapshot, calendar.SpiritMarker), nil
}

func (ss *SpiritService) Markers(ctx context.Context) map[string]calendar.Marker {
	return calendar.Project(ss.Records(ctx), calendar.SpiritMarker)
}

func (ss *SpiritService) MonthMarkers(ctx context.Context, month string) map[string]calendar.Marker {
	return calendar.Month(ss.Markers(ctx), month)
}

// DoneBetween counts done activities over the given dates.
func (ss *SpiritService) DoneBetween(ctx context.Context, dates []string) (done, total int) {
	all := ss.Records(ctx)
	for _, date := range dates {
		total += spirit.ActivityCount
		if r, ok := all[date]; ok {
			d, _ := r.Count()
			done += d
		}
	}
	return done, total
}
