package models

import "time"

// TransitionEvent is a stream whose login was not live on the previous tick.
type TransitionEvent struct {
	Record     StreamRecord
	DetectedAt time.Time
}

type DispatchOutcome string

const (
	OutcomeDelivered             DispatchOutcome = "delivered"
	OutcomeSkippedNoDestination  DispatchOutcome = "skipped-no-destination"
	OutcomeSkippedNoPermission   DispatchOutcome = "skipped-no-permission"
	OutcomeAbandonedAfterRetries DispatchOutcome = "abandoned-after-retries"
	OutcomeFailed                DispatchOutcome = "failed"
)

// Notification is the chat message sent for a transition.
type Notification struct {
	Content string
	Embed   *StreamEmbed
}

type StreamEmbed struct {
	Title       string
	Description string
	URL         string
	Color       int
	Fields      []EmbedField
	ImageURL    string
	Footer      string
	Timestamp   time.Time
}

type EmbedField struct {
	Name   string
	Value  string
	Inline bool
}
