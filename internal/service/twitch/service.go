package twitch_service

import (
	"context"

	"twitch_discord_bot/internal/models"
)

type TwitchLookupClient interface {
	GetUserInfo(ctx context.Context, ids []string) (*models.GetUserInfoResponse, error)
	GetActiveStreamInfoByUsers(ctx context.Context, ids []string) (*models.Streams, error)
}

// TwitchService answers single user and stream lookups for the debug server.
type TwitchService struct {
	twitchClient TwitchLookupClient
}

func NewService(twitchClient TwitchLookupClient) *TwitchService {
	return &TwitchService{
		twitchClient: twitchClient,
	}
}
