// Package broadcast sends one message to many users by direct message.
package broadcast

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"twitch_discord_bot/internal/metrics"
	"twitch_discord_bot/internal/models"
)

type DirectMessenger interface {
	SendDirectMessage(ctx context.Context, userID, content string) (string, error)
}

type BroadcastService struct {
	messenger DirectMessenger
	limiter   *rate.Limiter
}

func NewBroadcastService(messenger DirectMessenger) *BroadcastService {
	return &BroadcastService{
		messenger: messenger,
		limiter:   rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// Send delivers message to every user in order. One user failing never stops the batch;
// a cancelled context marks the remaining users as failed.
func (bs *BroadcastService) Send(ctx context.Context, userIDs []string, message string) *models.BroadcastResult {
	result := &models.BroadcastResult{}

	for i, userID := range userIDs {
		if err := bs.limiter.Wait(ctx); err != nil {
			logrus.Warnf("broadcast interrupted: %v", err)
			for _, rest := range userIDs[i:] {
				result.Failed = append(result.Failed, models.BroadcastRecipient{UserID: rest})
				metrics.IncLabel(metrics.BroadcastMessages, "failed")
			}
			break
		}

		log := logrus.WithField("user_id", userID)
		username, err := bs.messenger.SendDirectMessage(ctx, userID, message)
		recipient := models.BroadcastRecipient{UserID: userID, Username: username}

		switch {
		case err == nil:
			result.Success = append(result.Success, recipient)
			metrics.IncLabel(metrics.BroadcastMessages, "success")
			log.WithField("username", username).Info("direct message sent")

		case errors.Is(err, models.ErrDeliveryForbidden):
			result.Skipped = append(result.Skipped, recipient)
			metrics.IncLabel(metrics.BroadcastMessages, "skipped")
			log.Warn("direct message skipped, dms are closed")

		case errors.Is(err, models.ErrUserNotFound):
			result.Failed = append(result.Failed, recipient)
			metrics.IncLabel(metrics.BroadcastMessages, "failed")
			log.Warn("user not found")

		default:
			result.Failed = append(result.Failed, recipient)
			metrics.IncLabel(metrics.BroadcastMessages, "failed")
			log.Errorf("direct message error: %v", err)
		}
	}

	logrus.Infof("broadcast finished: %d sent, %d skipped, %d failed", len(result.Success), len(result.Skipped), len(result.Failed))

	return result
}
