package twitch_service

import (
	"context"
	"strings"

	"twitch_discord_bot/internal/models"

	"github.com/pkg/errors"
)

func (tws *TwitchService) GetActiveStreamInfoByUser(ctx context.Context, id string) (*models.StreamRecord, error) {
	usersStruct := []string{id}

	streamInfo, err := tws.twitchClient.GetActiveStreamInfoByUsers(ctx, usersStruct)
	if err != nil {
		return nil, err
	}

	if streamInfo == nil {
		return nil, errors.New("empty response struct")
	}

	if len(streamInfo.StreamInfo) < 1 {
		return nil, errors.Wrapf(models.ErrStreamNotLive, "user %s", id)
	}

	stream := streamInfo.StreamInfo[0]
	if stream.UserId != id && !strings.EqualFold(stream.UserLogin, id) {
		return nil, errors.Errorf("invalid response data, give %s, got id %s, login %s, name %s",
			id, stream.UserId, stream.UserLogin, stream.UserName)
	}

	record, ok := stream.ToRecord()
	if !ok {
		return nil, errors.Errorf("stream of %s has no user login", id)
	}

	return &record, nil
}
