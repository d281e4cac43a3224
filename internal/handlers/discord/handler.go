package discord_handler

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"

	"twitch_discord_bot/internal/config"
	"twitch_discord_bot/internal/models"
)

const (
	colorGreen   = 0x2ECC71
	colorOrange  = 0xE67E22
	colorRed     = 0xE74C3C
	colorBlue    = 0x3498DB
	colorBlurple = 0x5865F2

	fieldValueLimit = 1024
)

// Responder is the part of *discordgo.Session used to answer interactions.
type Responder interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type Broadcaster interface {
	Send(ctx context.Context, userIDs []string, message string) *models.BroadcastResult
}

type TemplateStore interface {
	List() ([]string, error)
	Load(name string) (*models.BroadcastTemplate, error)
}

type ConfigReloader interface {
	Reload(ctx context.Context) (*models.ReloadSummary, error)
	Current() *config.Config
}

// RoleManager grants and revokes guild roles for the notification role buttons.
type RoleManager interface {
	RoleExists(guildID, roleID string) (bool, error)
	AddMemberRole(guildID, userID, roleID string) error
	RemoveMemberRole(guildID, userID, roleID string) error
}

type DiscordHandler struct {
	ctx         context.Context
	responder   Responder
	broadcaster Broadcaster
	templates   TemplateStore
	reloader    ConfigReloader
	roles       RoleManager
}

func NewDiscordHandler(ctx context.Context, responder Responder, broadcaster Broadcaster, templates TemplateStore, reloader ConfigReloader, roles RoleManager) *DiscordHandler {
	return &DiscordHandler{
		ctx:         ctx,
		responder:   responder,
		broadcaster: broadcaster,
		templates:   templates,
		reloader:    reloader,
		roles:       roles,
	}
}

// Register installs the slash commands once the session is ready and routes their interactions.
func (dh *DiscordHandler) Register(session *discordgo.Session) {
	session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		registered, err := s.ApplicationCommandBulkOverwrite(r.User.ID, "", Commands())
		if err != nil {
			logrus.Errorf("could not register slash commands: %v", err)
			return
		}
		logrus.Infof("registered %d slash commands", len(registered))
	})

	session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		dh.HandleInteraction(i.Interaction)
	})
}

func (dh *DiscordHandler) HandleInteraction(i *discordgo.Interaction) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		dh.handleCommand(i)
	case discordgo.InteractionMessageComponent:
		dh.handleComponent(i)
	}
}

func (dh *DiscordHandler) handleCommand(i *discordgo.Interaction) {

	data := i.ApplicationCommandData()
	logrus.WithFields(logrus.Fields{
		"command": data.Name,
		"user_id": interactionUserID(i),
	}).Info("slash command received")

	switch data.Name {
	case broadcastCommand:
		dh.Broadcast(i, data)
	case broadcastTemplatesCommand:
		dh.BroadcastTemplates(i)
	case configReloadCommand:
		dh.ConfigReload(i)
	case notificationRoleCommand:
		dh.NotificationRole(i)
	}
}

// buttons stay usable on old messages since only the custom id is matched
func (dh *DiscordHandler) handleComponent(i *discordgo.Interaction) {
	data := i.MessageComponentData()

	switch data.CustomID {
	case notificationRoleEnableID:
		dh.ToggleNotificationRole(i, true)
	case notificationRoleDisableID:
		dh.ToggleNotificationRole(i, false)
	}
}

func (dh *DiscordHandler) replyEphemeral(i *discordgo.Interaction, content string, embeds ...*discordgo.MessageEmbed) {
	err := dh.responder.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Embeds:  embeds,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		logrus.Errorf("interaction respond error: %v", err)
	}
}

func (dh *DiscordHandler) deferEphemeral(i *discordgo.Interaction) bool {
	err := dh.responder.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		logrus.Errorf("interaction defer error: %v", err)
		return false
	}
	return true
}

func (dh *DiscordHandler) followup(i *discordgo.Interaction, content string, embeds ...*discordgo.MessageEmbed) {
	_, err := dh.responder.FollowupMessageCreate(i, true, &discordgo.WebhookParams{
		Content: content,
		Embeds:  embeds,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		logrus.Errorf("interaction followup error: %v", err)
	}
}

func interactionUserID(i *discordgo.Interaction) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func isAdmin(i *discordgo.Interaction) bool {
	return i.Member != nil && i.Member.Permissions&discordgo.PermissionAdministrator != 0
}

func optionString(data discordgo.ApplicationCommandInteractionData, name string) string {
	for _, opt := range data.Options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionString {
			return opt.StringValue()
		}
	}
	return ""
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit-3]) + "..."
}
