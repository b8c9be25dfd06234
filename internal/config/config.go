package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Telegram struct {
		Token  string `yaml:"token"`
		ChatID int64  `yaml:"chat_id"`
	} `yaml:"telegram"`
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		Path   string `yaml:"path"`
		Engine string `yaml:"engine"`
	} `yaml:"database"`
	Timezone     string `yaml:"timezone"`
	ReminderCron string `yaml:"reminder_cron"`
}

// BotEnabled is false when no Telegram token is configured.
func (c *Config) BotEnabled() bool {
	return c.Telegram.Token != ""
}

// Load reads .env (if present), then the YAML file named by MIZMAN_CONFIG
// (if set), then environment variables, later sources winning.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("⚠️ .env not loaded: %v", err)
	}

	cfg := defaults()

	if path := os.Getenv("MIZMAN_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.Telegram.Token = getEnv("TG_TOKEN", cfg.Telegram.Token)
	if chatIDStr := os.Getenv("TG_CHAT_ID"); chatIDStr != "" {
		chatID, err := strconv.ParseInt(chatIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TG_CHAT_ID: %w", err)
		}
		cfg.Telegram.ChatID = chatID
	}
	cfg.Server.Port = getEnv("PORT", cfg.Server.Port)
	cfg.Database.Path = getEnv("DB_PATH", cfg.Database.Path)
	cfg.Database.Engine = getEnv("STORE_ENGINE", cfg.Database.Engine)
	cfg.Timezone = getEnv("TIMEZONE", cfg.Timezone)
	cfg.ReminderCron = getEnv("REMINDER_CRON", cfg.ReminderCron)

	if cfg.BotEnabled() && cfg.Telegram.ChatID == 0 {
		return nil, errors.New("TG_CHAT_ID is required when TG_TOKEN is set")
	}

	log.Printf("✅ Config loaded: port=%s, store=%s:%s, tz=%s", cfg.Server.Port, cfg.Database.Engine, cfg.Database.Path, cfg.Timezone)

	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.Server.Port = "8080"
	cfg.Database.Path = "/data/mizman.db"
	cfg.Database.Engine = "sqlite"
	cfg.Timezone = "UTC"
	cfg.ReminderCron = "0 18 * * *"
	return cfg
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
