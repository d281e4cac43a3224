// Package presence tracks which watched streamers are live and reports the ones that just went live.
package presence

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"twitch_discord_bot/internal/metrics"
	"twitch_discord_bot/internal/models"
)

type PresenceClient interface {
	Authenticate(ctx context.Context) error
	ResolveIDs(ctx context.Context, logins []string) (map[string]string, error)
	FetchLive(ctx context.Context, ids []string) *models.LiveFetchResult
}

// Monitor owns the watch set, the resolved streamer ids and the live set.
// The live set only changes inside Check and is always replaced whole.
type Monitor struct {
	client   PresenceClient
	watchSet []string

	mu      sync.RWMutex
	ready   bool
	ids     map[string]string // login -> id
	logins  map[string]string // id -> login
	idOrder []string
	live    map[string]struct{}

	now func() time.Time
}

func NewMonitor(client PresenceClient, watchSet []string) *Monitor {
	return &Monitor{
		client:   client,
		watchSet: append([]string(nil), watchSet...),
		live:     map[string]struct{}{},
		now:      time.Now,
	}
}

// Initialize authenticates and resolves the watch set.
// It reports false when nothing can be monitored; a ready monitor stays ready.
func (m *Monitor) Initialize(ctx context.Context) bool {
	if m.Ready() {
		return true
	}

	if len(m.watchSet) == 0 {
		logrus.Error("twitch watch set is empty")
		return false
	}

	if err := m.client.Authenticate(ctx); err != nil {
		logrus.Errorf("twitch authentication failed: %v", err)
		return false
	}

	ids, err := m.client.ResolveIDs(ctx, m.watchSet)
	if err != nil {
		logrus.Errorf("twitch user id resolve error: %v", err)
		return false
	}

	if len(ids) == 0 {
		logrus.Error("none of the watched twitch users were found")
		return false
	}

	resolved := make(map[string]bool, len(ids))
	for login := range ids {
		resolved[strings.ToLower(login)] = true
	}
	for _, login := range m.watchSet {
		if !resolved[strings.ToLower(login)] {
			logrus.WithField("streamer", login).Warn("twitch user not found")
		}
	}

	logins := make(map[string]string, len(ids))
	order := make([]string, 0, len(ids))
	for login, id := range ids {
		logins[id] = login
		order = append(order, id)
	}
	sort.Strings(order)

	m.mu.Lock()
	m.ids = ids
	m.logins = logins
	m.idOrder = order
	m.ready = true
	m.mu.Unlock()

	metrics.Set(metrics.WatchedStreamers, len(ids))
	logrus.Infof("twitch user ids resolved: %d of %d", len(ids), len(m.watchSet))

	return true
}

// Check fetches the live streams and returns the ones that were not live on the previous tick,
// in platform order. A failed fetch leaves the live set as it was and returns nothing.
func (m *Monitor) Check(ctx context.Context) []models.TransitionEvent {
	m.mu.RLock()
	ready := m.ready
	ids := m.idOrder
	m.mu.RUnlock()

	if !ready {
		return nil
	}

	result := m.client.FetchLive(ctx, ids)

	if result.Unauthorized {
		logrus.Warn("twitch api answered 401, requesting a new app token")
		metrics.Inc(metrics.Reauthentications)

		if err := m.client.Authenticate(ctx); err != nil {
			logrus.Errorf("twitch re-authentication failed: %v", err)
		} else {
			logrus.Info("twitch app token refreshed")
		}
		return nil
	}

	if result.AllFailed() {
		logrus.Error("twitch stream check failed for every batch, keeping previous live set")
		return nil
	}

	m.mu.RLock()
	previous := m.live
	m.mu.RUnlock()

	newLive := make(map[string]struct{}, len(result.Records))
	var transitions []models.TransitionEvent
	detectedAt := m.now()

	for _, record := range result.Records {
		login := strings.ToLower(record.UserLogin)
		if _, seen := newLive[login]; seen {
			continue
		}
		newLive[login] = struct{}{}

		if _, wasLive := previous[login]; !wasLive {
			transitions = append(transitions, models.TransitionEvent{Record: record, DetectedAt: detectedAt})
			metrics.Inc(metrics.Transitions)
		}
	}

	// streamers whose batch failed keep their previous state
	for _, id := range result.FailedIDs {
		login := strings.ToLower(m.logins[id])
		if _, wasLive := previous[login]; wasLive && login != "" {
			newLive[login] = struct{}{}
		}
	}

	m.mu.Lock()
	m.live = newLive
	m.mu.Unlock()

	metrics.Set(metrics.LiveStreamers, len(newLive))

	return transitions
}

func (m *Monitor) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.ready
}

// LiveSet returns the logins believed live, sorted.
func (m *Monitor) LiveSet() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	live := make([]string, 0, len(m.live))
	for login := range m.live {
		live = append(live, login)
	}
	sort.Strings(live)

	return live
}

// Streamers returns a copy of the resolved login -> id mapping.
func (m *Monitor) Streamers() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	streamers := make(map[string]string, len(m.ids))
	for login, id := range m.ids {
		streamers[login] = id
	}

	return streamers
}
