package discord_handler

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"twitch_discord_bot/internal/models"
	"twitch_discord_bot/internal/service/broadcast"
)

const (
	previewLimit       = 1000
	successListLimit   = 20
	otherListLimit     = 10
	notAllowedResponse = "❌ You are not allowed to use this command."
)

func (dh *DiscordHandler) Broadcast(i *discordgo.Interaction, data discordgo.ApplicationCommandInteractionData) {
	cfg := dh.reloader.Current()
	if !broadcast.IsAllowed(interactionUserID(i), isAdmin(i), cfg.BroadcastAllowedUsers) {
		dh.replyEphemeral(i, notAllowedResponse)
		return
	}

	if !dh.deferEphemeral(i) {
		return
	}

	userIDs, err := broadcast.ParseUserIDs(optionString(data, "user_ids"))
	if err != nil {
		dh.followup(i, fmt.Sprintf("❌ Invalid user ids: %v", err))
		return
	}

	templateName := optionString(data, "template_name")
	if templateName == "" {
		templateName = defaultTemplate
	}

	tpl, err := dh.templates.Load(templateName)
	if err != nil {
		if errors.Is(err, models.ErrTemplateNotFound) {
			dh.followup(i, fmt.Sprintf("❌ Template '%s' not found.\n\nAvailable templates:\n%s", templateName, dh.templateList()))
			return
		}
		logrus.Errorf("template load error: %v", err)
		dh.followup(i, fmt.Sprintf("❌ An error occurred: %v", err))
		return
	}

	message := broadcast.FormatMessage(tpl, broadcast.ParseVariables(optionString(data, "variables")))

	dh.followup(i, "", &discordgo.MessageEmbed{
		Title:       "Broadcast confirmation",
		Description: fmt.Sprintf("Sending the message below to **%d** users.", len(userIDs)),
		Color:       colorOrange,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Template", Value: tpl.Name},
			{Name: "Recipients", Value: fmt.Sprintf("%d", len(userIDs)), Inline: true},
			{Name: "Message preview", Value: truncate(message, previewLimit)},
		},
	})

	logrus.WithFields(logrus.Fields{
		"user_count": len(userIDs),
		"template":   templateName,
	}).Info("broadcast started")

	result := dh.broadcaster.Send(dh.ctx, userIDs, message)

	dh.followup(i, "", broadcastResultEmbed(result))
}

func broadcastResultEmbed(result *models.BroadcastResult) *discordgo.MessageEmbed {
	color := colorGreen
	if len(result.Failed) > 0 {
		color = colorOrange
	}

	embed := &discordgo.MessageEmbed{
		Title: "Broadcast finished",
		Color: color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "✅ Sent", Value: fmt.Sprintf("%d", len(result.Success)), Inline: true},
			{Name: "⏭️ Skipped", Value: fmt.Sprintf("%d", len(result.Skipped)), Inline: true},
			{Name: "❌ Failed", Value: fmt.Sprintf("%d", len(result.Failed)), Inline: true},
		},
	}

	if len(result.Success) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "✅ Delivered to", Value: recipientList(result.Success, successListLimit)})
	}
	if len(result.Skipped) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "⏭️ Skipped (DMs closed)", Value: recipientList(result.Skipped, otherListLimit)})
	}
	if len(result.Failed) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "❌ Not delivered", Value: recipientList(result.Failed, otherListLimit)})
	}

	return embed
}

func recipientList(recipients []models.BroadcastRecipient, limit int) string {
	lines := []string{}
	for idx, r := range recipients {
		if idx == limit {
			lines = append(lines, fmt.Sprintf("... and %d more", len(recipients)-limit))
			break
		}

		name := r.Username
		if name == "" {
			name = "unknown user"
		}
		lines = append(lines, fmt.Sprintf("• %s (`%s`)", name, r.UserID))
	}

	return truncate(strings.Join(lines, "\n"), fieldValueLimit)
}

func (dh *DiscordHandler) templateList() string {
	names, err := dh.templates.List()
	if err != nil || len(names) == 0 {
		return "none"
	}

	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("- `%s`", name))
	}
	return strings.Join(lines, "\n")
}
