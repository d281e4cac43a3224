package config_reload

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twitch_discord_bot/internal/config"
	"twitch_discord_bot/internal/models"
)

type fakeTask struct {
	initOK  bool
	started bool
	stopped bool
}

func (f *fakeTask) Initialize(ctx context.Context) bool { return f.initOK }
func (f *fakeTask) Start(ctx context.Context) { f.started = true }
func (f *fakeTask) Stop() { f.stopped = true }
func (f *fakeTask) Running() bool { return f.started && !f.stopped }

func validConfig() *config.Config {
	return &config.Config{
		DiscordToken:       "discord",
		TwitchClientID:     "id",
		TwitchClientSecret: "secret",
		DiscordChannelID:   "123",
		TwitchUsernames:    []string{"alice", "bob"},
		CheckInterval:      30 * time.Second,
		LogLevel:           "info",
	}
}

func TestActivate(t *testing.T) {
	task := &fakeTask{initOK: true}
	var built *config.Config
	s := NewConfigReloadService(context.Background(), validConfig(), func(cfg *config.Config) (Task, error) {
		built = cfg
		return task, nil
	})

	summary := s.Activate(context.Background())

	assert.True(t, summary.NotificationsEnabled)
	assert.Equal(t, 2, summary.WatchedStreamers)
	assert.Equal(t, 30, summary.CheckIntervalSeconds)
	assert.Equal(t, models.BroadcastAdminsOnly, summary.BroadcastPermission)
	assert.True(t, task.started)
	assert.Equal(t, Task(task), s.Task())
	assert.Equal(t, "alice", built.TwitchUsernames[0])
}

func TestActivateInvalidConfig(t *testing.T) {
	cfg := validConfig()
	cfg.TwitchUsernames = nil
	s := NewConfigReloadService(context.Background(), cfg, func(cfg *config.Config) (Task, error) {
		t.Fatal("builder must not be called")
		return nil, nil
	})

	summary := s.Activate(context.Background())
	assert.False(t, summary.NotificationsEnabled)
	assert.Nil(t, s.Task())
}

func TestActivateInitializeFails(t *testing.T) {
	task := &fakeTask{initOK: false}
	s := NewConfigReloadService(context.Background(), validConfig(), func(cfg *config.Config) (Task, error) {
		return task, nil
	})

	assert.False(t, s.Activate(context.Background()).NotificationsEnabled)
	assert.False(t, task.started)
	assert.Nil(t, s.Task())
}

func TestReloadReplacesTask(t *testing.T) {
	first := &fakeTask{initOK: true}
	second := &fakeTask{initOK: true}
	tasks := []*fakeTask{first, second}

	s := NewConfigReloadService(context.Background(), validConfig(), func(cfg *config.Config) (Task, error) {
		task := tasks[0]
		tasks = tasks[1:]
		return task, nil
	})
	s.Activate(context.Background())

	reloaded := validConfig()
	reloaded.DiscordToken = "other"
	reloaded.TwitchUsernames = []string{"carol"}
	allowed := []string{}
	reloaded.BroadcastAllowedUsers = &allowed
	s.load = func() (*config.Config, error) { return reloaded, nil }

	summary, err := s.Reload(context.Background())
	require.NoError(t, err)

	assert.True(t, first.stopped)
	assert.True(t, second.started)
	assert.Equal(t, Task(second), s.Task())
	assert.Equal(t, 1, summary.WatchedStreamers)
	assert.Equal(t, models.BroadcastNobody, summary.BroadcastPermission)
	assert.Equal(t, "discord", s.Current().DiscordToken)
}

func TestReloadToInvalidConfigStopsTask(t *testing.T) {
	task := &fakeTask{initOK: true}
	s := NewConfigReloadService(context.Background(), validConfig(), func(cfg *config.Config) (Task, error) {
		return task, nil
	})
	s.Activate(context.Background())

	broken := validConfig()
	broken.TwitchClientSecret = ""
	s.load = func() (*config.Config, error) { return broken, nil }

	summary, err := s.Reload(context.Background())
	require.NoError(t, err)
	assert.False(t, summary.NotificationsEnabled)
	assert.False(t, summary.TwitchClientSecretSet)
	assert.True(t, task.stopped)
	assert.Nil(t, s.Task())
}

func TestReloadLoadError(t *testing.T) {
	task := &fakeTask{initOK: true}
	s := NewConfigReloadService(context.Background(), validConfig(), func(cfg *config.Config) (Task, error) {
		return task, nil
	})
	s.Activate(context.Background())
	s.load = func() (*config.Config, error) { return nil, errors.New("bad .env") }

	_, err := s.Reload(context.Background())
	require.Error(t, err)
	assert.False(t, task.stopped)
	assert.Equal(t, Task(task), s.Task())
}

func TestShutdown(t *testing.T) {
	task := &fakeTask{initOK: true}
	s := NewConfigReloadService(context.Background(), validConfig(), func(cfg *config.Config) (Task, error) {
		return task, nil
	})
	s.Activate(context.Background())

	s.Shutdown()
	s.Shutdown()
	assert.True(t, task.stopped)
	assert.Nil(t, s.Task())
}

type slowStopTask struct {
	fakeTask
	stopping chan struct{}
	release  chan struct{}
}

func (f *slowStopTask) Stop() {
	close(f.stopping)
	<-f.release
	f.stopped = true
}

func TestReloadDoesNotBlockReadersWhileStopping(t *testing.T) {
	old := &slowStopTask{
		fakeTask: fakeTask{initOK: true},
		stopping: make(chan struct{}),
		release:  make(chan struct{}),
	}
	next := &fakeTask{initOK: true}
	tasks := []Task{old, next}

	s := NewConfigReloadService(context.Background(), validConfig(), func(cfg *config.Config) (Task, error) {
		task := tasks[0]
		tasks = tasks[1:]
		return task, nil
	})
	s.Activate(context.Background())
	s.load = func() (*config.Config, error) { return validConfig(), nil }

	reloaded := make(chan error, 1)
	go func() {
		_, err := s.Reload(context.Background())
		reloaded <- err
	}()

	<-old.stopping

	readers := make(chan Task, 1)
	go func() {
		s.Current()
		readers <- s.Task()
	}()

	select {
	case task := <-readers:
		assert.Nil(t, task)
	case <-time.After(time.Second):
		t.Fatal("Task() blocked while the previous task was stopping")
	}

	close(old.release)
	require.NoError(t, <-reloaded)
	assert.True(t, old.stopped)
	assert.Equal(t, Task(next), s.Task())
}
