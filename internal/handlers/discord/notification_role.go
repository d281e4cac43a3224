package discord_handler

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"twitch_discord_bot/internal/models"
)

const (
	roleNotConfiguredResponse = "No notification role is configured. Please contact a server administrator."
	roleNotFoundResponse      = "The notification role was not found. Please contact a server administrator."
	roleForbiddenResponse     = "The bot lacks the Manage Roles permission. Please contact a server administrator."
	guildOnlyResponse         = "This can only be used inside a server."
)

// NotificationRole posts the public message with the notification on/off buttons.
func (dh *DiscordHandler) NotificationRole(i *discordgo.Interaction) {
	roleID, ok := dh.notificationRole(i)
	if !ok {
		return
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  interactionUserID(i),
		"guild_id": i.GuildID,
		"role_id":  roleID,
	}).Info("notification role buttons posted")

	err := dh.responder.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{notificationRoleEmbed()},
			Components: notificationRoleButtons(),
		},
	})
	if err != nil {
		logrus.Errorf("interaction respond error: %v", err)
	}
}

// ToggleNotificationRole grants or revokes the notification role for the member who pressed a button.
func (dh *DiscordHandler) ToggleNotificationRole(i *discordgo.Interaction, enable bool) {
	roleID, ok := dh.notificationRole(i)
	if !ok {
		return
	}

	userID := interactionUserID(i)
	log := logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"role_id": roleID,
		"enable":  enable,
	})

	hasRole := i.Member != nil && contains(i.Member.Roles, roleID)
	if enable && hasRole {
		dh.replyEphemeral(i, "", roleErrorEmbed("You already have the notification role."))
		return
	}
	if !enable && !hasRole {
		dh.replyEphemeral(i, "", roleErrorEmbed("Notifications are already off."))
		return
	}

	var err error
	if enable {
		err = dh.roles.AddMemberRole(i.GuildID, userID, roleID)
	} else {
		err = dh.roles.RemoveMemberRole(i.GuildID, userID, roleID)
	}

	switch {
	case err == nil:
		log.Info("notification role updated")
		dh.replyEphemeral(i, "", roleSuccessEmbed(enable))
	case errors.Is(err, models.ErrRoleForbidden):
		log.Errorf("missing permission to manage notification role: %v", err)
		dh.replyEphemeral(i, "", roleErrorEmbed(roleForbiddenResponse))
	case errors.Is(err, models.ErrRoleNotFound):
		log.Errorf("notification role disappeared: %v", err)
		dh.replyEphemeral(i, "", roleErrorEmbed(roleNotFoundResponse))
	default:
		log.Errorf("notification role update error: %v", err)
		dh.replyEphemeral(i, "", roleErrorEmbed(fmt.Sprintf("An error occurred: %v", err)))
	}
}

// notificationRole replies with an error and returns false when the role cannot be used here.
func (dh *DiscordHandler) notificationRole(i *discordgo.Interaction) (string, bool) {
	if i.GuildID == "" || i.Member == nil {
		dh.replyEphemeral(i, "", roleErrorEmbed(guildOnlyResponse))
		return "", false
	}

	roleID := dh.reloader.Current().NotificationRoleID
	if roleID == "" {
		logrus.Error("NOTIFICATION_ROLE_ID is not set")
		dh.replyEphemeral(i, "", roleErrorEmbed(roleNotConfiguredResponse))
		return "", false
	}

	exists, err := dh.roles.RoleExists(i.GuildID, roleID)
	if err != nil {
		logrus.WithField("role_id", roleID).Errorf("notification role lookup error: %v", err)
		dh.replyEphemeral(i, "", roleErrorEmbed(fmt.Sprintf("An error occurred: %v", err)))
		return "", false
	}
	if !exists {
		logrus.WithField("role_id", roleID).Error("notification role not found")
		dh.replyEphemeral(i, "", roleErrorEmbed(roleNotFoundResponse))
		return "", false
	}

	return roleID, true
}

func notificationRoleEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🔔 Stream notifications",
		Description: "Use the buttons below to turn stream notifications on or off.",
		Color:       colorBlurple,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Notify ON", Value: "You get the notification role and are pinged when a stream starts."},
			{Name: "Notify OFF", Value: "The notification role is removed and you are no longer pinged."},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "You can press the buttons as often as you like."},
	}
}

func notificationRoleButtons() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{Label: "🔔 Notify ON", Style: discordgo.SuccessButton, CustomID: notificationRoleEnableID},
				discordgo.Button{Label: "🔕 Notify OFF", Style: discordgo.DangerButton, CustomID: notificationRoleDisableID},
			},
		},
	}
}

func roleSuccessEmbed(enabled bool) *discordgo.MessageEmbed {
	if enabled {
		return &discordgo.MessageEmbed{
			Title:       "✅ Notifications turned on",
			Description: "The notification role was added.",
			Color:       colorGreen,
		}
	}
	return &discordgo.MessageEmbed{
		Title:       "✅ Notifications turned off",
		Description: "The notification role was removed.",
		Color:       colorRed,
	}
}

func roleErrorEmbed(message string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "❌ Something went wrong",
		Description: message,
		Color:       colorRed,
	}
}

func contains(items []string, item string) bool {
	for _, it := range items {
		if it == item {
			return true
		}
	}
	return false
}
