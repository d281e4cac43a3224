// Package metrics holds the prometheus collectors of the notifier.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	once sync.Once

	Ticks              prometheus.Counter
	TickPanics         prometheus.Counter
	Transitions        prometheus.Counter
	FetchBatchFailures prometheus.Counter
	Reauthentications  prometheus.Counter

	DispatchOutcomes  *prometheus.CounterVec
	BroadcastMessages *prometheus.CounterVec

	LiveStreamers    prometheus.Gauge
	WatchedStreamers prometheus.Gauge
)

// Init registers the collectors once.
func Init() {
	once.Do(func() {
		Ticks = promauto.NewCounter(prometheus.CounterOpts{Name: "twitch_notifier_ticks_total", Help: "Number of presence check ticks"})
		TickPanics = promauto.NewCounter(prometheus.CounterOpts{Name: "twitch_notifier_tick_panics_total", Help: "Number of ticks that panicked"})
		Transitions = promauto.NewCounter(prometheus.CounterOpts{Name: "twitch_notifier_transitions_total", Help: "Number of offline to live transitions detected"})
		FetchBatchFailures = promauto.NewCounter(prometheus.CounterOpts{Name: "twitch_notifier_fetch_batch_failures_total", Help: "Number of failed stream fetch batches"})
		Reauthentications = promauto.NewCounter(prometheus.CounterOpts{Name: "twitch_notifier_reauth_total", Help: "Number of re-authentications after 401"})
		DispatchOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{Name: "twitch_notifier_dispatch_outcomes_total", Help: "Notification dispatch outcomes"}, []string{"outcome"})
		BroadcastMessages = promauto.NewCounterVec(prometheus.CounterOpts{Name: "twitch_notifier_broadcast_messages_total", Help: "Broadcast direct messages by result"}, []string{"result"})
		LiveStreamers = promauto.NewGauge(prometheus.GaugeOpts{Name: "twitch_notifier_live_streamers", Help: "Watched streamers currently live"})
		WatchedStreamers = promauto.NewGauge(prometheus.GaugeOpts{Name: "twitch_notifier_watched_streamers", Help: "Watched streamers with a resolved id"})
	})
}

func Inc(c prometheus.Counter) {
	if c != nil {
		c.Inc()
	}
}

func IncLabel(v *prometheus.CounterVec, label string) {
	if v != nil {
		v.WithLabelValues(label).Inc()
	}
}

func Set(g prometheus.Gauge, n int) {
	if g != nil {
		g.Set(float64(n))
	}
}
