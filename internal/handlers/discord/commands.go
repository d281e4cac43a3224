package discord_handler

import "github.com/bwmarrin/discordgo"

const (
	broadcastCommand          = "broadcast"
	broadcastTemplatesCommand = "broadcast_templates"
	configReloadCommand       = "config_reload"
	notificationRoleCommand   = "notification_role"

	notificationRoleEnableID  = "notification_role:enable"
	notificationRoleDisableID = "notification_role:disable"

	defaultTemplate = "default"
)

func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        broadcastCommand,
			Description: "Send a direct message to several users",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "user_ids",
					Description: "Comma separated user ids",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "template_name",
					Description: "Template to use (default: default)",
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "variables",
					Description: "Template variables as key:value,key2:value2",
				},
			},
		},
		{
			Name:        broadcastTemplatesCommand,
			Description: "List the available broadcast templates",
		},
		{
			Name:        configReloadCommand,
			Description: "Reload the bot configuration from the environment",
		},
		{
			Name:        notificationRoleCommand,
			Description: "Post the buttons to turn stream notifications on or off",
		},
	}
}
