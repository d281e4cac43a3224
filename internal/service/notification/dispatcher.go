// Package notification delivers stream transitions to the configured chat channel.
package notification

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"twitch_discord_bot/internal/metrics"
	"twitch_discord_bot/internal/models"
	"twitch_discord_bot/internal/utils/formater"
)

const (
	defaultMaxAttempts = 3
	defaultBaseDelay   = 2 * time.Second
)

type ChatGateway interface {
	ChannelName(channelID string) (string, bool)
	CanSendMessages(channelID string) (bool, error)
	SendNotification(ctx context.Context, channelID string, notification models.Notification) error
}

type Dispatcher struct {
	gateway   ChatGateway
	channelID string
	roleID    string

	maxAttempts int
	baseDelay   time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
}

func NewDispatcher(gateway ChatGateway, channelID, roleID string) *Dispatcher {
	return &Dispatcher{
		gateway:     gateway,
		channelID:   channelID,
		roleID:      roleID,
		maxAttempts: defaultMaxAttempts,
		baseDelay:   defaultBaseDelay,
		sleep:       sleepContext,
	}
}

// Send delivers one transition. Every path ends in a logged outcome, nothing is returned as an error.
func (d *Dispatcher) Send(ctx context.Context, event models.TransitionEvent) (outcome models.DispatchOutcome) {
	log := logrus.WithFields(logrus.Fields{
		"streamer":   event.Record.UserLogin,
		"channel_id": d.channelID,
	})

	defer func() {
		metrics.IncLabel(metrics.DispatchOutcomes, string(outcome))
		log.WithField("outcome", outcome).Info("notification dispatch finished")
	}()

	channelName, ok := d.gateway.ChannelName(d.channelID)
	if !ok {
		log.Errorf("discord channel %s not found", d.channelID)
		log.Info("check that the channel id is correct and that the bot was invited to the server and can view the channel")
		return models.OutcomeSkippedNoDestination
	}
	log = log.WithField("channel", channelName)

	canSend, err := d.gateway.CanSendMessages(d.channelID)
	if err != nil {
		log.Warnf("could not check channel permissions, trying to send anyway: %v", err)
	} else if !canSend {
		log.Errorf("bot has no permission to send messages in channel '%s'", channelName)
		log.Info("grant the bot the \"Send Messages\" permission in the server settings")
		return models.OutcomeSkippedNoPermission
	}

	notification := models.Notification{
		Content: formater.MentionPrefix(d.roleID),
		Embed:   formater.BuildStreamEmbed(event.Record, event.DetectedAt),
	}

	for attempt := 0; attempt < d.maxAttempts; attempt++ {
		err := d.gateway.SendNotification(ctx, d.channelID, notification)
		switch {
		case err == nil:
			log.Infof("discord notification sent: %s", event.Record.UserName)
			return models.OutcomeDelivered

		case errors.Is(err, models.ErrDeliveryForbidden):
			log.Errorf("discord notification error (forbidden): %v", err)
			log.Info("check the following:")
			log.Infof("  1. channel id (%s) is correct", d.channelID)
			log.Info("  2. the bot can access the channel")
			log.Info("  3. the bot has \"Send Messages\", \"Embed Links\" and \"Mention Everyone\" permissions")
			log.Info("  4. the bot is invited to the server")
			return models.OutcomeSkippedNoPermission

		case errors.Is(err, models.ErrDeliveryUnavailable):
			log.Warnf("discord notification error (attempt %d/%d): %v", attempt+1, d.maxAttempts, err)
			if attempt == d.maxAttempts-1 {
				log.Error("discord notification failed: max retries reached")
				return models.OutcomeAbandonedAfterRetries
			}

			delay := d.baseDelay * time.Duration(1<<attempt)
			log.Infof("retrying in %s", delay)
			if err := d.sleep(ctx, delay); err != nil {
				log.Warnf("retry interrupted: %v", err)
				return models.OutcomeAbandonedAfterRetries
			}

		default:
			log.Errorf("discord notification error: %v", err)
			return models.OutcomeFailed
		}
	}

	return models.OutcomeAbandonedAfterRetries
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
