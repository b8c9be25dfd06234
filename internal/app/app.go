package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"mizman/internal/config"
	"mizman/internal/database"
	"mizman/internal/httpapi"
	"mizman/internal/services"
	"mizman/internal/storage"
	"mizman/internal/telegram"
	"mizman/internal/utils"

	"github.com/robfig/cron/v3"
)

// streakCron observes the streak just after midnight so the longest streak
// advances even on days nobody opens the app.
const streakCron = "5 0 * * *"

type Application struct {
	config     *config.Config
	kv         storage.KV
	bot        *telegram.Bot
	services   *services.ServiceManager
	server     *http.Server
	cron       *cron.Cron
	cancelFunc context.CancelFunc
	ctx        context.Context
}

// logSender stands in for the bot when no token is configured.
type logSender struct{}

func (logSender) SendMessage(text string) error {
	log.Printf("📨 %s", text)
	return nil
}

func New(cfg *config.Config) (*Application, error) {
	kv, err := storage.NewByEngine(cfg.Database.Engine, cfg.Database.Path, database.Open)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	loc := utils.LoadLocation(cfg.Timezone)
	serviceManager := services.NewServiceManager(kv, services.Options{Location: loc})
	ctx, cancel := context.WithCancel(context.Background())
	serviceManager.Settings.Load(ctx)

	var bot *telegram.Bot
	if cfg.BotEnabled() {
		bot, err = telegram.NewBot(cfg.Telegram.Token, cfg.Telegram.ChatID, serviceManager)
		if err != nil {
			cancel()
			closeStore(kv)
			return nil, err
		}
		serviceManager.SetNotificationSender(bot)
	} else {
		log.Println("⚠️ TG_TOKEN not set, Telegram bot disabled")
		serviceManager.SetNotificationSender(logSender{})
	}

	app := &Application{
		config:   cfg,
		kv:       kv,
		bot:      bot,
		services: serviceManager,
		server: &http.Server{
			Addr:              ":" + cfg.Server.Port,
			Handler:           httpapi.NewRouter(httpapi.NewHandler(serviceManager)),
			ReadHeaderTimeout: 10 * time.Second,
		},
		cron:       cron.New(cron.WithLocation(loc)),
		cancelFunc: cancel,
		ctx:        ctx,
	}

	if err := app.setupCronJobs(); err != nil {
		cancel()
		closeStore(kv)
		return nil, err
	}

	return app, nil
}

func (a *Application) Start() error {
	log.Println("🚀 Starting MizMan...")

	if a.bot != nil {
		go a.bot.Start(a.ctx)
	}

	go func() {
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("❌ HTTP server: %v", err)
		}
	}()

	go a.watchSettings()

	a.cron.Start()

	// first observation on boot
	streak := a.services.Mind.Streak(a.ctx)

	if a.bot != nil {
		log.Printf("✅ Started. Bot: @%s", a.bot.GetUsername())
	} else {
		log.Println("✅ Started without bot")
	}
	log.Printf("🌐 API on port %s, streak %d days (best %d)", a.config.Server.Port, streak.Current, streak.Longest)

	return nil
}

func (a *Application) Stop() error {
	log.Println("🛑 Stopping MizMan...")

	a.cancelFunc()
	<-a.cron.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️ HTTP shutdown: %v", err)
	}

	closeStore(a.kv)

	log.Println("✅ Stopped")
	return nil
}

func (a *Application) setupCronJobs() error {
	if _, err := a.cron.AddFunc(a.config.ReminderCron, func() {
		a.services.Notification.SendDailyReminder(a.ctx)
	}); err != nil {
		return fmt.Errorf("reminder schedule %q: %w", a.config.ReminderCron, err)
	}

	if _, err := a.cron.AddFunc(streakCron, func() {
		view := a.services.Mind.Streak(a.ctx)
		log.Printf("🧠 Streak observed: %d days (best %d)", view.Current, view.Longest)
	}); err != nil {
		return fmt.Errorf("streak schedule: %w", err)
	}

	return nil
}

// watchSettings logs preference changes until shutdown.
func (a *Application) watchSettings() {
	updates, cancel := a.services.Settings.Subscribe()
	defer cancel()
	for {
		select {
		case <-a.ctx.Done():
			return
		case snap, ok := <-updates:
			if !ok {
				return
			}
			log.Printf("⚙️ Settings: %s/%s, theme %s, tradition %s", snap.Nationality, snap.Currency, snap.Theme, snap.Tradition)
		}
	}
}

func closeStore(kv storage.KV) {
	if c, ok := kv.(io.Closer); ok {
		if err := c.Close(); err != nil {
			log.Printf("⚠️ Close store: %v", err)
		}
	}
}
