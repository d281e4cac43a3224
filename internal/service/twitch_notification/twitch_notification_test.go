package twitch_notification

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twitch_discord_bot/internal/config"
	"twitch_discord_bot/internal/models"
)

type fakeMonitor struct {
	ready   bool
	checkFn func(n int) []models.TransitionEvent

	mu     sync.Mutex
	checks int
}

func (f *fakeMonitor) Initialize(ctx context.Context) bool { return f.ready }

func (f *fakeMonitor) Check(ctx context.Context) []models.TransitionEvent {
	f.mu.Lock()
	f.checks++
	n := f.checks
	f.mu.Unlock()

	if f.checkFn != nil {
		return f.checkFn(n)
	}
	return nil
}

func (f *fakeMonitor) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.checks
}

type fakeDispatcher struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeDispatcher) Send(ctx context.Context, event models.TransitionEvent) models.DispatchOutcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, event.Record.UserLogin)
	return models.OutcomeDelivered
}

func (f *fakeDispatcher) logins() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

func events(logins ...string) []models.TransitionEvent {
	out := make([]models.TransitionEvent, 0, len(logins))
	for _, login := range logins {
		out = append(out, models.TransitionEvent{Record: models.StreamRecord{UserLogin: login}})
	}
	return out
}

func TestStartWithoutInitialize(t *testing.T) {
	monitor := &fakeMonitor{ready: false}
	task := NewTwitchNotificationTask(monitor, &fakeDispatcher{}, 10*time.Millisecond)

	assert.False(t, task.Initialize(context.Background()))
	task.Start(context.Background())
	assert.False(t, task.Running())

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 0, monitor.count())
}

func TestStopIdempotent(t *testing.T) {
	task := NewTwitchNotificationTask(&fakeMonitor{ready: true}, &fakeDispatcher{}, 10*time.Millisecond)

	task.Stop()

	require.True(t, task.Initialize(context.Background()))
	task.Start(context.Background())
	assert.True(t, task.Running())

	task.Stop()
	task.Stop()
	assert.False(t, task.Running())
}

func TestNonPositiveIntervalFallsBack(t *testing.T) {
	monitor := &fakeMonitor{ready: true}
	task := NewTwitchNotificationTask(monitor, &fakeDispatcher{}, -time.Second)
	assert.Equal(t, config.DefaultCheckInterval, task.interval)

	require.True(t, task.Initialize(context.Background()))
	require.NotPanics(t, func() { task.Start(context.Background()) })
	defer task.Stop()

	assert.Eventually(t, func() bool { return monitor.count() == 1 }, time.Second, 5*time.Millisecond)
	assert.True(t, task.Running())
}

func TestFirstTickImmediate(t *testing.T) {
	monitor := &fakeMonitor{ready: true}
	task := NewTwitchNotificationTask(monitor, &fakeDispatcher{}, time.Hour)
	require.True(t, task.Initialize(context.Background()))

	task.Start(context.Background())
	defer task.Stop()

	assert.Eventually(t, func() bool { return monitor.count() == 1 }, time.Second, 5*time.Millisecond)
}

func TestDispatchOrder(t *testing.T) {
	monitor := &fakeMonitor{ready: true, checkFn: func(n int) []models.TransitionEvent {
		if n == 1 {
			return events("c", "a", "b")
		}
		return nil
	}}
	dispatcher := &fakeDispatcher{}
	task := NewTwitchNotificationTask(monitor, dispatcher, time.Hour)
	require.True(t, task.Initialize(context.Background()))

	task.Start(context.Background())
	defer task.Stop()

	assert.Eventually(t, func() bool { return len(dispatcher.logins()) == 3 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"c", "a", "b"}, dispatcher.logins())
}

func TestTickPanicDoesNotStopLoop(t *testing.T) {
	monitor := &fakeMonitor{ready: true, checkFn: func(n int) []models.TransitionEvent {
		if n == 2 {
			panic("boom")
		}
		return events("tick")
	}}
	dispatcher := &fakeDispatcher{}
	task := NewTwitchNotificationTask(monitor, dispatcher, 10*time.Millisecond)
	require.True(t, task.Initialize(context.Background()))

	task.Start(context.Background())
	defer task.Stop()

	assert.Eventually(t, func() bool { return len(dispatcher.logins()) >= 3 }, 2*time.Second, 5*time.Millisecond)
	assert.True(t, task.Running())
	assert.GreaterOrEqual(t, monitor.count(), 4)
}

func TestTicksDoNotOverlap(t *testing.T) {
	var inFlight, maxInFlight int32
	monitor := &fakeMonitor{ready: true, checkFn: func(n int) []models.TransitionEvent {
		cur := atomic.AddInt32(&inFlight, 1)
		for {
			peak := atomic.LoadInt32(&maxInFlight)
			if cur <= peak || atomic.CompareAndSwapInt32(&maxInFlight, peak, cur) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return nil
	}}
	task := NewTwitchNotificationTask(monitor, &fakeDispatcher{}, time.Millisecond)
	require.True(t, task.Initialize(context.Background()))

	task.Start(context.Background())
	assert.Eventually(t, func() bool { return monitor.count() >= 3 }, 2*time.Second, 5*time.Millisecond)
	task.Stop()

	assert.Equal(t, int32(1), atomic.LoadInt32(&maxInFlight))
}

func TestStopWaitsForInFlightTick(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	monitor := &fakeMonitor{ready: true, checkFn: func(n int) []models.TransitionEvent {
		if n == 1 {
			close(started)
			<-release
			return events("late")
		}
		return nil
	}}
	dispatcher := &fakeDispatcher{}
	task := NewTwitchNotificationTask(monitor, dispatcher, time.Hour)
	require.True(t, task.Initialize(context.Background()))
	task.Start(context.Background())

	<-started
	stopped := make(chan struct{})
	go func() {
		task.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("stop returned before the tick finished")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	<-stopped
	assert.Equal(t, []string{"late"}, dispatcher.logins())
	assert.Equal(t, 1, monitor.count())
}

func TestContextCancelEndsLoop(t *testing.T) {
	task := NewTwitchNotificationTask(&fakeMonitor{ready: true}, &fakeDispatcher{}, 5*time.Millisecond)
	require.True(t, task.Initialize(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	task.Start(ctx)
	cancel()

	assert.Eventually(t, func() bool { return !task.Running() }, time.Second, 5*time.Millisecond)
	task.Stop()
}
