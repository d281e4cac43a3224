package twitch_client

import (
	"context"
	"net/url"
	"regexp"

	"twitch_discord_bot/internal/models"

	"github.com/pkg/errors"
)

var digitCheck = regexp.MustCompile(`^[0-9]+$`) // check if have only digits

// GetUserInfo looks up at most 100 users by id or login.
// Unknown users are simply missing from the response.
func (twc *TwitchClient) GetUserInfo(ctx context.Context, ids []string) (data *models.GetUserInfoResponse, err error) {

	query := url.Values{}
	for _, id := range ids {
		if digitCheck.MatchString(id) {
			query.Add("id", id)
			continue
		}
		query.Add("login", id)
	}

	var usersInfo models.GetUserInfoResponse
	err = twc.get(ctx, "/helix/users", query, &usersInfo)
	if err != nil {
		return nil, err
	}

	data = &usersInfo

	return
}

// ResolveIDs maps each login known to Twitch to its user id.
func (twc *TwitchClient) ResolveIDs(ctx context.Context, logins []string) (map[string]string, error) {
	ids := make(map[string]string, len(logins))

	for _, batch := range chunk(logins, models.HelixBatchSize) {
		query := url.Values{}
		for _, login := range batch {
			query.Add("login", login)
		}

		var usersInfo models.GetUserInfoResponse
		err := twc.get(ctx, "/helix/users", query, &usersInfo)
		if err != nil {
			return nil, errors.Wrap(err, "get users")
		}

		for _, user := range usersInfo.Data {
			if user.Login == "" || user.UserID == "" {
				continue
			}
			ids[user.Login] = user.UserID
		}
	}

	return ids, nil
}
