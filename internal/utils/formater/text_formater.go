package formater

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"twitch_discord_bot/internal/models"
)

const (
	TwitchPurple    = 0x9146FF
	embedFooter     = "Twitch stream notification bot"
	thumbnailWidth  = "320"
	thumbnailHeight = "180"
	defaultTitle    = "No title"
	defaultGame     = "Unknown"
)

var tagRe = regexp.MustCompile(`@[^\s.,!?]+`)

// clear all @ symbols in tag subtrings so discord doesn't ping anybody
func ClearTags(text string) string {
	matches := tagRe.FindAllString(text, -1)
	for _, match := range matches {
		text = strings.ReplaceAll(text, match, match[1:])
	}

	return text
}

func ChannelURL(login string) string {
	return fmt.Sprintf("%s/%s", models.TwitchWWWSchemeHost, login)
}

// MentionPrefix is the content placed before the stream embed.
func MentionPrefix(roleID string) string {
	if roleID == "" {
		return "@everyone"
	}

	return fmt.Sprintf("<@&%s>", roleID)
}

func BuildStreamEmbed(record models.StreamRecord, now time.Time) *models.StreamEmbed {
	title := record.Title
	if strings.TrimSpace(title) == "" {
		title = defaultTitle
	}

	game := record.GameName
	if strings.TrimSpace(game) == "" {
		game = defaultGame
	}

	embed := &models.StreamEmbed{
		Title:       "🔴 Stream started!",
		Description: fmt.Sprintf("**%s** has started streaming!", record.UserName),
		URL:         ChannelURL(record.UserLogin),
		Color:       TwitchPurple,
		Fields: []models.EmbedField{
			{Name: "Stream title", Value: ClearTags(title)},
			{Name: "Game / Category", Value: game, Inline: true},
			{Name: "Viewers", Value: fmt.Sprintf("%d", record.ViewerCount), Inline: true},
		},
		Footer:    embedFooter,
		Timestamp: now,
	}

	if !record.StartedAt.IsZero() {
		embed.Fields = append(embed.Fields, models.EmbedField{
			Name:   "Uptime",
			Value:  CreateStreamDuration(record.StartedAt, now),
			Inline: true,
		})
	}

	if record.ThumbnailURL != "" {
		thumbnail := strings.ReplaceAll(record.ThumbnailURL, "{width}", thumbnailWidth)
		embed.ImageURL = strings.ReplaceAll(thumbnail, "{height}", thumbnailHeight)
	}

	return embed
}
