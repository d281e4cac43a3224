package models

import "time"

type StreamType string

var StreamLive StreamType = "live"

// Helix accepts at most this many user ids or logins per request.
const HelixBatchSize = 100

type Streams struct {
	StreamInfo []Stream   `json:"data"`
	Pagination Pagination `json:"pagination"`
}

type Stream struct {
	StreamId     string     `json:"id"`            // 	Stream ID
	UserId       string     `json:"user_id"`       // ID of the user who is streaming
	UserLogin    string     `json:"user_login"`    // Login of the user who is streaming
	UserName     string     `json:"user_name"`     // Display name corresponding to user_id
	GameId       string     `json:"game_id"`       // ID of the game being played on the stream
	GameName     string     `json:"game_name"`     // Name of the game being played
	StreamType   StreamType `json:"type"`          // Stream type: "live" or "" (in case of error)
	Title        string     `json:"title"`         // Stream title
	ViewerCount  uint64     `json:"viewer_count"`  // Number of viewers watching the stream at the time of the query
	StartedAt    time.Time  `json:"started_at"`    // UTC timestamp
	Lang         string     `json:"language"`      // Stream language
	ThumbnailUrl string     `json:"thumbnail_url"` // Thumbnail URL of the stream. Replace {width} and {height} with any values to get that size image
	Tags         []string   `json:"tags"`          // Shows tags that apply to the stream
	IsMature     bool       `json:"is_mature"`     // Contains mature content that may be inappropriate for younger audiences
}

type Pagination struct {
	Cursor string `json:"cursor"`
}

// StreamRecord is the validated part of a Stream the notifier works with.
// UserName falls back to UserLogin; Title, GameName and ThumbnailURL may be empty.
type StreamRecord struct {
	StreamID     string    `json:"stream_id"`
	UserID       string    `json:"user_id"`
	UserLogin    string    `json:"user_login"`
	UserName     string    `json:"user_name"`
	Title        string    `json:"title"`
	GameName     string    `json:"game_name"`
	ViewerCount  uint64    `json:"viewer_count"`
	ThumbnailURL string    `json:"thumbnail_url"`
	StartedAt    time.Time `json:"started_at"`
}

// ToRecord validates the stream and reports false when it has no login.
func (s Stream) ToRecord() (StreamRecord, bool) {
	if s.UserLogin == "" {
		return StreamRecord{}, false
	}

	name := s.UserName
	if name == "" {
		name = s.UserLogin
	}

	return StreamRecord{
		StreamID:     s.StreamId,
		UserID:       s.UserId,
		UserLogin:    s.UserLogin,
		UserName:     name,
		Title:        s.Title,
		GameName:     s.GameName,
		ViewerCount:  s.ViewerCount,
		ThumbnailURL: s.ThumbnailUrl,
		StartedAt:    s.StartedAt,
	}, true
}

// LiveFetchResult is the outcome of one presence fetch over every watched id.
type LiveFetchResult struct {
	Records       []StreamRecord
	FailedIDs     []string // ids whose batch failed
	Unauthorized  bool     // at least one batch was answered with 401
	Batches       int
	FailedBatches int
}

// AllFailed reports whether no batch succeeded.
func (r *LiveFetchResult) AllFailed() bool {
	return r.Batches > 0 && r.FailedBatches == r.Batches
}
