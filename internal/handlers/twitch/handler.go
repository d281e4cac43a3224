package twitch_handler

import (
	"context"

	"twitch_discord_bot/internal/models"
)

type PresenceStatus interface {
	Ready() bool
	LiveSet() []string
	Streamers() map[string]string
}

type TwitchLookup interface {
	GetUser(ctx context.Context, id string) (*models.TwitchUserInfo, error)
	GetActiveStreamInfoByUser(ctx context.Context, id string) (*models.StreamRecord, error)
}

type ConfigReloader interface {
	Reload(ctx context.Context) (*models.ReloadSummary, error)
}

type TwitchHandler struct {
	// both return nil while stream monitoring is disabled
	presence func() PresenceStatus
	lookup   func() TwitchLookup

	reloader ConfigReloader
}

func NewTwitchHandler(presence func() PresenceStatus, lookup func() TwitchLookup, reloader ConfigReloader) *TwitchHandler {
	return &TwitchHandler{
		presence: presence,
		lookup:   lookup,
		reloader: reloader,
	}
}

func (twh *TwitchHandler) currentPresence() PresenceStatus {
	if twh.presence == nil {
		return nil
	}
	return twh.presence()
}

func (twh *TwitchHandler) currentLookup() TwitchLookup {
	if twh.lookup == nil {
		return nil
	}
	return twh.lookup()
}
