package discord_handler

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
)

func (dh *DiscordHandler) BroadcastTemplates(i *discordgo.Interaction) {
	names, err := dh.templates.List()
	if err != nil {
		logrus.Errorf("template list error: %v", err)
		dh.replyEphemeral(i, fmt.Sprintf("❌ An error occurred: %v", err))
		return
	}

	footer := &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Template directory: %s", dh.reloader.Current().BroadcastTemplateDir)}

	if len(names) == 0 {
		dh.replyEphemeral(i, "", &discordgo.MessageEmbed{
			Title:       "Templates",
			Description: "No templates available.",
			Color:       colorOrange,
			Footer:      footer,
		})
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:  "Available templates",
		Color:  colorBlue,
		Footer: footer,
	}

	for _, name := range names {
		tpl, err := dh.templates.Load(name)
		if err != nil {
			logrus.WithField("template", name).Warnf("skipping template: %v", err)
			continue
		}

		description := tpl.Description
		if description == "" {
			description = "No description"
		}

		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("`%s` - %s", name, tpl.Name),
			Value: truncate(description, fieldValueLimit),
		})
	}

	dh.replyEphemeral(i, "", embed)
}
