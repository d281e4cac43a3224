package discord_client

import (
	"net/http"

	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"

	"twitch_discord_bot/internal/models"
)

// RoleExists looks the role up in the state cache first and falls back to the REST api.
func (dc *DiscordClient) RoleExists(guildID, roleID string) (bool, error) {
	if _, err := dc.session.State.Role(guildID, roleID); err == nil {
		return true, nil
	}

	roles, err := dc.session.GuildRoles(guildID)
	if err != nil {
		return false, errors.Wrap(classifyRoleError(err), "GuildRoles")
	}

	for _, role := range roles {
		if role.ID == roleID {
			return true, nil
		}
	}

	return false, nil
}

func (dc *DiscordClient) AddMemberRole(guildID, userID, roleID string) error {
	if err := dc.session.GuildMemberRoleAdd(guildID, userID, roleID); err != nil {
		return errors.Wrap(classifyRoleError(err), "GuildMemberRoleAdd")
	}
	return nil
}

func (dc *DiscordClient) RemoveMemberRole(guildID, userID, roleID string) error {
	if err := dc.session.GuildMemberRoleRemove(guildID, userID, roleID); err != nil {
		return errors.Wrap(classifyRoleError(err), "GuildMemberRoleRemove")
	}
	return nil
}

func classifyRoleError(err error) error {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return err
	}

	if restErr.Message != nil && restErr.Message.Code == discordgo.ErrCodeUnknownRole {
		return errors.Wrap(models.ErrRoleNotFound, err.Error())
	}

	if isStatus(err, http.StatusForbidden) {
		return errors.Wrap(models.ErrRoleForbidden, err.Error())
	}

	return err
}
