package discord_client

import (
	"time"

	"github.com/bwmarrin/discordgo"

	"twitch_discord_bot/internal/models"
)

func toMessageSend(notification models.Notification) *discordgo.MessageSend {
	msg := &discordgo.MessageSend{
		Content: notification.Content,
		AllowedMentions: &discordgo.MessageAllowedMentions{
			Parse: []discordgo.AllowedMentionType{
				discordgo.AllowedMentionTypeEveryone,
				discordgo.AllowedMentionTypeRoles,
			},
		},
	}

	if notification.Embed != nil {
		msg.Embeds = []*discordgo.MessageEmbed{toMessageEmbed(notification.Embed)}
	}

	return msg
}

func toMessageEmbed(embed *models.StreamEmbed) *discordgo.MessageEmbed {
	messageEmbed := &discordgo.MessageEmbed{
		Type:        discordgo.EmbedTypeRich,
		Title:       embed.Title,
		Description: embed.Description,
		URL:         embed.URL,
		Color:       embed.Color,
	}

	for _, field := range embed.Fields {
		messageEmbed.Fields = append(messageEmbed.Fields, &discordgo.MessageEmbedField{
			Name:   field.Name,
			Value:  field.Value,
			Inline: field.Inline,
		})
	}

	if embed.ImageURL != "" {
		messageEmbed.Image = &discordgo.MessageEmbedImage{URL: embed.ImageURL}
	}

	if embed.Footer != "" {
		messageEmbed.Footer = &discordgo.MessageEmbedFooter{Text: embed.Footer}
	}

	if !embed.Timestamp.IsZero() {
		messageEmbed.Timestamp = embed.Timestamp.Format(time.RFC3339)
	}

	return messageEmbed
}
