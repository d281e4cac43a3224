// Package config reads the bot settings from the environment and an optional .env file.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"twitch_discord_bot/internal/models"
)

const (
	DefaultCheckInterval = 60 * time.Second
	MaxCheckInterval     = 24 * time.Hour
	defaultTemplateDir   = "./templates"
	defaultLogLevel      = "info"
)

type Config struct {
	DiscordToken string

	TwitchClientID     string
	TwitchClientSecret string

	DiscordChannelID   string
	TwitchUsernames    []string
	CheckInterval      time.Duration
	NotificationRoleID string

	// nil when BROADCAST_ALLOWED_USER_IDS is unset
	BroadcastAllowedUsers *[]string
	BroadcastTemplateDir  string

	DebugAddr string
	DBConn    string
	LogLevel  string
}

// Load reads .env when present and then the process environment.
func Load() (*Config, error) {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "godotenv.Load")
	}

	return FromEnv(), nil
}

// Reload re-reads .env overriding values already present in the environment.
func Reload() (*Config, error) {
	err := godotenv.Overload()
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "godotenv.Overload")
	}

	return FromEnv(), nil
}

func FromEnv() *Config {
	cfg := &Config{
		DiscordToken:         os.Getenv("DISCORD_BOT_TOKEN"),
		TwitchClientID:       os.Getenv("TWITCH_CLIENT_ID"),
		TwitchClientSecret:   os.Getenv("TWITCH_CLIENT_SECRET"),
		DiscordChannelID:     strings.TrimSpace(os.Getenv("TWITCH_DISCORD_CHANNEL_ID")),
		TwitchUsernames:      splitList(os.Getenv("TWITCH_USERNAMES")),
		CheckInterval:        parseInterval(os.Getenv("TWITCH_CHECK_INTERVAL")),
		NotificationRoleID:   strings.TrimSpace(os.Getenv("NOTIFICATION_ROLE_ID")),
		BroadcastTemplateDir: os.Getenv("BROADCAST_TEMPLATE_DIR"),
		DebugAddr:            os.Getenv("DEBUG_ADDR"),
		DBConn:               os.Getenv("DB_CONN"),
		LogLevel:             os.Getenv("LOG_LEVEL"),
	}

	if cfg.BroadcastTemplateDir == "" {
		cfg.BroadcastTemplateDir = defaultTemplateDir
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}

	if raw, ok := os.LookupEnv("BROADCAST_ALLOWED_USER_IDS"); ok {
		allowed := []string{}
		for _, id := range splitList(raw) {
			if isDigits(id) {
				allowed = append(allowed, id)
			}
		}
		cfg.BroadcastAllowedUsers = &allowed
	}

	return cfg
}

// ValidateTwitchNotification reports every setting the stream notifier needs but does not have.
func (c *Config) ValidateTwitchNotification() error {
	var missing []string

	if c.TwitchClientID == "" {
		missing = append(missing, "TWITCH_CLIENT_ID")
	}
	if c.TwitchClientSecret == "" {
		missing = append(missing, "TWITCH_CLIENT_SECRET")
	}
	if c.DiscordChannelID == "" {
		missing = append(missing, "TWITCH_DISCORD_CHANNEL_ID")
	}
	if len(c.TwitchUsernames) == 0 {
		missing = append(missing, "TWITCH_USERNAMES")
	}

	if len(missing) > 0 {
		return &models.ConfigurationError{Missing: missing}
	}

	return nil
}

func (c *Config) BroadcastPermission() models.BroadcastPermission {
	switch {
	case c.BroadcastAllowedUsers == nil:
		return models.BroadcastAdminsOnly
	case len(*c.BroadcastAllowedUsers) == 0:
		return models.BroadcastNobody
	default:
		return models.BroadcastAllowList
	}
}

// Summary reports the active settings without exposing secrets.
func (c *Config) Summary(notificationsEnabled bool) models.ReloadSummary {
	summary := models.ReloadSummary{
		TwitchClientIDSet:     c.TwitchClientID != "",
		TwitchClientSecretSet: c.TwitchClientSecret != "",
		ChannelID:             c.DiscordChannelID,
		WatchedStreamers:      len(c.TwitchUsernames),
		CheckIntervalSeconds:  int(c.CheckInterval / time.Second),
		NotificationRoleID:    c.NotificationRoleID,
		BroadcastPermission:   c.BroadcastPermission(),
		NotificationsEnabled:  notificationsEnabled,
	}

	if c.BroadcastAllowedUsers != nil {
		summary.BroadcastAllowedUsers = len(*c.BroadcastAllowedUsers)
	}

	return summary
}

func (c *Config) ParsedLogLevel() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

func splitList(raw string) []string {
	items := []string{}
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

func parseInterval(raw string) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" || !isDigits(raw) {
		return DefaultCheckInterval
	}

	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds < 1 || seconds > int(MaxCheckInterval/time.Second) {
		logrus.Warnf("TWITCH_CHECK_INTERVAL %q is out of range, using %s", raw, DefaultCheckInterval)
		return DefaultCheckInterval
	}

	return time.Duration(seconds) * time.Second
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
