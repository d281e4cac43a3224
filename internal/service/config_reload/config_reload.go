package config_reload

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"twitch_discord_bot/internal/config"
	"twitch_discord_bot/internal/models"
)

type Task interface {
	Initialize(ctx context.Context) bool
	Start(ctx context.Context)
	Stop()
	Running() bool
}

// TaskBuilder wires a fresh notification task for cfg.
type TaskBuilder func(cfg *config.Config) (Task, error)

// ConfigReloadService owns the active configuration and the notification task built from it.
type ConfigReloadService struct {
	// process context, the task loop lives as long as it does
	ctx   context.Context
	load  func() (*config.Config, error)
	build TaskBuilder

	// serializes Activate, Reload and Shutdown
	reloadMu sync.Mutex

	mu   sync.Mutex
	cfg  *config.Config
	task Task
}

func NewConfigReloadService(ctx context.Context, cfg *config.Config, build TaskBuilder) *ConfigReloadService {
	return &ConfigReloadService{
		ctx:   ctx,
		load:  config.Reload,
		build: build,
		cfg:   cfg,
	}
}

// Activate starts the notification task for the current configuration.
func (s *ConfigReloadService) Activate(ctx context.Context) models.ReloadSummary {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	cfg := s.Current()
	task := s.activate(ctx, cfg)
	s.setTask(task)

	return cfg.Summary(task != nil)
}

// Reload re-reads the configuration, replaces the running task and reports what is now active.
// The discord bot token is not reloaded.
func (s *ConfigReloadService) Reload(ctx context.Context) (data *models.ReloadSummary, err error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	cfg, err := s.load()
	if err != nil {
		return nil, errors.Wrap(err, "config.Reload")
	}

	s.mu.Lock()
	old := s.task
	s.task = nil
	if s.cfg != nil {
		cfg.DiscordToken = s.cfg.DiscordToken
	}
	s.cfg = cfg
	s.mu.Unlock()

	// waits for an in-flight tick, readers of Task() see nil meanwhile
	if old != nil {
		old.Stop()
	}

	logrus.SetLevel(cfg.ParsedLogLevel())

	task := s.activate(ctx, cfg)
	s.setTask(task)

	enabled := task != nil
	summary := cfg.Summary(enabled)

	logrus.WithFields(logrus.Fields{
		"watched_streamers": summary.WatchedStreamers,
		"channel_id":        summary.ChannelID,
		"enabled":           enabled,
	}).Info("configuration reloaded")

	return &summary, nil
}

// activate returns the started task, or nil when notifications stay disabled.
func (s *ConfigReloadService) activate(ctx context.Context, cfg *config.Config) Task {
	if err := cfg.ValidateTwitchNotification(); err != nil {
		logrus.Warnf("twitch notification disabled: %v", err)
		return nil
	}

	task, err := s.build(cfg)
	if err != nil {
		logrus.Errorf("could not build twitch notification task: %v", err)
		return nil
	}

	if !task.Initialize(ctx) {
		logrus.Error("twitch notification initialization failed, feature disabled")
		return nil
	}

	task.Start(s.ctx)

	return task
}

func (s *ConfigReloadService) setTask(task Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.task = task
}

func (s *ConfigReloadService) Current() *config.Config {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cfg
}

// Task returns the running notification task or nil.
func (s *ConfigReloadService) Task() Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.task
}

func (s *ConfigReloadService) Shutdown() {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	s.mu.Lock()
	task := s.task
	s.task = nil
	s.mu.Unlock()

	if task != nil {
		task.Stop()
	}
}
