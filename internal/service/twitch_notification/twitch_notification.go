package twitch_notification

import (
	"context"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"twitch_discord_bot/internal/config"
	"twitch_discord_bot/internal/metrics"
	"twitch_discord_bot/internal/models"
)

const (
	twitchNotificationBGSync = "twitchNotification_BGSync"
)

type StreamMonitor interface {
	Initialize(ctx context.Context) bool
	Check(ctx context.Context) []models.TransitionEvent
}

type NotificationDispatcher interface {
	Send(ctx context.Context, event models.TransitionEvent) models.DispatchOutcome
}

// TwitchNotificationTask runs the check-and-dispatch tick on a fixed interval.
// Ticks run one after another on a single goroutine.
type TwitchNotificationTask struct {
	monitor    StreamMonitor
	dispatcher NotificationDispatcher
	interval   time.Duration

	mu          sync.Mutex
	initialized bool
	running     bool
	stop        chan struct{}
	done        chan struct{}
}

func NewTwitchNotificationTask(monitor StreamMonitor, dispatcher NotificationDispatcher, interval time.Duration) *TwitchNotificationTask {
	// time.NewTicker panics on a non-positive interval
	if interval <= 0 {
		logrus.Warnf("invalid check interval %s, using %s", interval, config.DefaultCheckInterval)
		interval = config.DefaultCheckInterval
	}

	return &TwitchNotificationTask{
		monitor:    monitor,
		dispatcher: dispatcher,
		interval:   interval,
	}
}

func (t *TwitchNotificationTask) Initialize(ctx context.Context) bool {
	ok := t.monitor.Initialize(ctx)

	t.mu.Lock()
	t.initialized = ok
	t.mu.Unlock()

	return ok
}

// Start launches the loop. It does nothing when the task is not initialized or already running.
// ctx is the process context: cancelling it ends the loop and interrupts retry sleeps.
func (t *TwitchNotificationTask) Start(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized {
		logrus.Warn("twitch notification task is not initialized, not starting")
		return
	}
	if t.running {
		return
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	t.stop, t.done, t.running = stop, done, true

	go func() {
		defer close(done)
		t.SyncBg(ctx, stop, t.interval)

		t.mu.Lock()
		if t.done == done {
			t.running = false
		}
		t.mu.Unlock()
	}()

	logrus.Infof("stream monitoring started (interval: %s)", t.interval)
}

// Stop prevents future ticks and waits for the loop to exit. An in-flight tick is allowed to finish.
func (t *TwitchNotificationTask) Stop() {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return
	}
	close(t.stop)
	done := t.done
	t.running = false
	t.mu.Unlock()

	<-done
	logrus.Info("stream monitoring stopped")
}

func (t *TwitchNotificationTask) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.running
}

func (t *TwitchNotificationTask) SyncBg(ctx context.Context, stop <-chan struct{}, syncInterval time.Duration) {
	t.runTick(ctx)

	ticker := time.NewTicker(syncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logrus.Infof("stoping bg %s process", twitchNotificationBGSync)
			return
		case <-stop:
			logrus.Infof("stoping bg %s process", twitchNotificationBGSync)
			return
		case <-ticker.C:
			t.runTick(ctx)
		}
	}
}

func (t *TwitchNotificationTask) runTick(ctx context.Context) {
	log := logrus.WithField("tick_id", uuid.NewString())
	metrics.Inc(metrics.Ticks)

	defer func() {
		if r := recover(); r != nil {
			metrics.Inc(metrics.TickPanics)
			log.Errorf("stream check tick panicked: %v\n%s", r, debug.Stack())
		}
	}()

	log.Debugf("started bg %s process", twitchNotificationBGSync)

	events := t.monitor.Check(ctx)
	for _, event := range events {
		t.dispatcher.Send(ctx, event)
	}

	if len(events) > 0 {
		log.Infof("stream check complited, %d notifications processed", len(events))
	}
}
