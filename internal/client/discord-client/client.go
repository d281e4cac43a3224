package discord_client

import (
	"context"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"twitch_discord_bot/internal/models"
)

type DiscordClient struct {
	session *discordgo.Session
}

func NewDiscordClient(token string) (*DiscordClient, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, errors.Wrap(err, "discordgo.New")
	}

	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers

	return &DiscordClient{session: session}, nil
}

func (dc *DiscordClient) Session() *discordgo.Session {
	return dc.session
}

func (dc *DiscordClient) Open() error {
	if err := dc.session.Open(); err != nil {
		return errors.Wrap(err, "session.Open")
	}

	logrus.Infof("logged in to discord as %s", dc.session.State.User.Username)

	return nil
}

func (dc *DiscordClient) Close() error {
	return dc.session.Close()
}

// ChannelName looks the channel up in the state cache first and falls back to the REST api.
func (dc *DiscordClient) ChannelName(channelID string) (string, bool) {
	if channelID == "" {
		return "", false
	}

	if channel, err := dc.session.State.Channel(channelID); err == nil {
		return channel.Name, true
	}

	channel, err := dc.session.Channel(channelID)
	if err != nil {
		logrus.WithField("channel_id", channelID).Debugf("channel lookup failed: %v", err)
		return "", false
	}

	return channel.Name, true
}

func (dc *DiscordClient) CanSendMessages(channelID string) (bool, error) {
	if dc.session.State.User == nil {
		return false, errors.New("discord session is not ready")
	}

	permissions, err := dc.session.State.UserChannelPermissions(dc.session.State.User.ID, channelID)
	if err != nil {
		return false, errors.Wrap(err, "UserChannelPermissions")
	}

	return permissions&discordgo.PermissionSendMessages != 0, nil
}

func (dc *DiscordClient) SendNotification(ctx context.Context, channelID string, notification models.Notification) error {
	_, err := dc.session.ChannelMessageSendComplex(channelID, toMessageSend(notification), discordgo.WithContext(ctx))
	if err != nil {
		return classifyDeliveryError(err)
	}

	return nil
}

// SendDirectMessage opens a DM channel with the user and sends content to it.
// It returns the username of the recipient.
func (dc *DiscordClient) SendDirectMessage(ctx context.Context, userID, content string) (username string, err error) {
	user, err := dc.session.User(userID, discordgo.WithContext(ctx))
	if err != nil {
		if isStatus(err, http.StatusNotFound) {
			return "", errors.Wrapf(models.ErrUserNotFound, "user %s", userID)
		}
		return "", errors.Wrap(err, "User")
	}
	username = user.Username
	if user.Discriminator != "" && user.Discriminator != "0" {
		username = user.Username + "#" + user.Discriminator
	}

	channel, err := dc.session.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		return username, classifyDeliveryError(err)
	}

	_, err = dc.session.ChannelMessageSend(channel.ID, content, discordgo.WithContext(ctx))
	if err != nil {
		return username, classifyDeliveryError(err)
	}

	return username, nil
}

func classifyDeliveryError(err error) error {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return err
	}

	if restErr.Message != nil && restErr.Message.Code == discordgo.ErrCodeCannotSendMessagesToThisUser {
		return errors.Wrap(models.ErrDeliveryForbidden, err.Error())
	}

	if restErr.Response == nil {
		return err
	}

	switch restErr.Response.StatusCode {
	case http.StatusForbidden:
		return errors.Wrap(models.ErrDeliveryForbidden, err.Error())
	case http.StatusServiceUnavailable:
		return errors.Wrap(models.ErrDeliveryUnavailable, err.Error())
	case http.StatusNotFound:
		if restErr.Message != nil && restErr.Message.Code == discordgo.ErrCodeUnknownUser {
			return errors.Wrap(models.ErrUserNotFound, err.Error())
		}
	}

	return err
}

func isStatus(err error, status int) bool {
	var restErr *discordgo.RESTError
	return errors.As(err, &restErr) && restErr.Response != nil && restErr.Response.StatusCode == status
}
