package discord_handler

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"

	"twitch_discord_bot/internal/models"
)

const adminOnlyResponse = "❌ This command is for administrators only."

func (dh *DiscordHandler) ConfigReload(i *discordgo.Interaction) {
	if !isAdmin(i) {
		dh.replyEphemeral(i, adminOnlyResponse)
		return
	}

	if !dh.deferEphemeral(i) {
		return
	}

	logrus.WithField("user_id", interactionUserID(i)).Info("config reload requested")

	summary, err := dh.reloader.Reload(dh.ctx)
	if err != nil {
		logrus.Errorf("config reload error: %v", err)
		dh.followup(i, "", &discordgo.MessageEmbed{
			Title:       "Config reload failed",
			Description: fmt.Sprintf("❌ An error occurred while reloading the configuration.\n\n%v", err),
			Color:       colorRed,
		})
		return
	}

	dh.followup(i, "", reloadSummaryEmbed(summary))
}

func reloadSummaryEmbed(summary *models.ReloadSummary) *discordgo.MessageEmbed {
	notifications := "disabled"
	if summary.NotificationsEnabled {
		notifications = "enabled"
	}

	roleID := summary.NotificationRoleID
	if roleID == "" {
		roleID = "not set (@everyone)"
	}

	broadcastUsers := string(summary.BroadcastPermission)
	if summary.BroadcastPermission == models.BroadcastAllowList {
		broadcastUsers = fmt.Sprintf("%s (%d users)", broadcastUsers, summary.BroadcastAllowedUsers)
	}

	return &discordgo.MessageEmbed{
		Title:       "Config reloaded",
		Description: "Environment reloaded.\n\n**Note**: a changed bot token requires a restart.",
		Color:       colorGreen,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Twitch API", Value: fmt.Sprintf("Client ID: %s, Client Secret: %s", setOrMissing(summary.TwitchClientIDSet), setOrMissing(summary.TwitchClientSecretSet))},
			{Name: "Channel", Value: valueOr(summary.ChannelID, "not set"), Inline: true},
			{Name: "Watched streamers", Value: fmt.Sprintf("%d", summary.WatchedStreamers), Inline: true},
			{Name: "Check interval", Value: fmt.Sprintf("%ds", summary.CheckIntervalSeconds), Inline: true},
			{Name: "Notification role", Value: roleID, Inline: true},
			{Name: "Broadcast permission", Value: broadcastUsers, Inline: true},
			{Name: "Stream notifications", Value: notifications, Inline: true},
		},
	}
}

func setOrMissing(set bool) string {
	if set {
		return "set"
	}
	return "missing"
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
