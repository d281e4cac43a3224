package twitch_service

import (
	"context"
	"strings"

	"twitch_discord_bot/internal/models"

	"github.com/pkg/errors"
)

func (tws *TwitchService) GetUser(ctx context.Context, id string) (*models.TwitchUserInfo, error) {

	usersStruct := []string{id}

	userInfo, err := tws.twitchClient.GetUserInfo(ctx, usersStruct)
	if err != nil {
		return nil, err
	}

	if userInfo == nil {
		return nil, errors.New("empty response stuct")
	}

	if len(userInfo.Data) < 1 {
		return nil, errors.Wrapf(models.ErrUserNotFound, "twitch user %s", id)
	}

	user := userInfo.Data[0]
	if user.UserID != id && !strings.EqualFold(user.Login, id) {
		return nil, errors.Errorf("invalid reponse data, give %s, got id %s, login %s, name %s",
			id, user.UserID, user.Login, user.DisplayName)
	}

	return &user, nil

}
