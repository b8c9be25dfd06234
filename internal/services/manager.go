package services

import (
	"math/rand/v2"
	"time"

	"mizman/internal/mind"
	"mizman/internal/settings"
	"mizman/internal/storage"
	"mizman/internal/wealth"
)

type Options struct {
	Location *time.Location
	Clock    func() time.Time
	Rates    wealth.RateTable
	Rand     *rand.Rand
}

type ServiceManager struct {
	Settings     *settings.Service
	Spirit       *SpiritService
	Body         *BodyService
	Mind         *MindService
	Wealth       *WealthService
	Analytics    *AnalyticsService
	Notification *NotificationService

	clock    func() time.Time
	location *time.Location
}

func NewServiceManager(kv storage.KV, opts Options) *ServiceManager {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	prefs := settings.NewService(kv)
	sm := &ServiceManager{
		Settings:     prefs,
		Spirit:       NewSpiritService(kv, prefs),
		Body:         NewBodyService(kv),
		Mind:         NewMindService(mind.NewTracker(kv), mind.NewScreenTime(kv, opts.Rand), opts.Clock),
		Wealth:       NewWealthService(kv, prefs, opts.Rates),
		Notification: nil,
		clock:        opts.Clock,
		location:     opts.Location,
	}
	sm.Analytics = NewAnalyticsService(sm)
	return sm
}

func (sm *ServiceManager) SetNotificationSender(sender NotificationSender) {
	sm.Notification = NewNotificationService(sender, sm)
}

func (sm *ServiceManager) Now() time.Time { return sm.clock() }

func (sm *ServiceManager) Location() *time.Location { return sm.location }
