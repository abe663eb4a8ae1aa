package main

import (
	"errors"
	"fmt"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/porter/pkg/dataaccess"
	"github.com/Jacobbrewer1/porter/pkg/perms"
)

// setupCmdController configures ticketing for the guild.
func setupCmdController(a IApp, i *discordgo.InteractionCreate) error {
	ok, err := requireAuth(a, i, perms.AdminOrStaff)
	if err != nil || !ok {
		return err
	}

	opts := commandOptions(i)
	category := opts[categoryOptName].ChannelValue(a.Session())
	staffRole := opts[staffRoleOptName].RoleValue(a.Session(), i.GuildID)
	logChannel := opts[logChannelOptName].ChannelValue(a.Session())

	if category.Type != discordgo.ChannelTypeGuildCategory {
		return respondEphemeral(a, i, "You must provide a category for ticket channels.")
	}
	if logChannel.Type != discordgo.ChannelTypeGuildText {
		return respondEphemeral(a, i, "You must provide a text channel for the ticket log.")
	}

	gd := a.GuildDal()
	gd.Ensure(i.GuildID)
	gd.SetCategory(i.GuildID, category.ID)
	gd.SetStaffRole(i.GuildID, staffRole.ID)
	gd.SetLogChannel(i.GuildID, logChannel.ID)

	return respondEphemeral(a, i, fmt.Sprintf("Ticketing is set up. Tickets open under <#%s>, handled by <@&%s>, logged to <#%s>.",
		category.ID, staffRole.ID, logChannel.ID))
}

// panelCmdController sends the open-ticket panel to the current channel.
func panelCmdController(a IApp, i *discordgo.InteractionCreate) error {
	ok, err := requireAuth(a, i, perms.AdminOrStaff)
	if err != nil || !ok {
		return err
	}

	a.GuildDal().Ensure(i.GuildID)

	if _, err := sendPanelMessage(a, i.GuildID, i.ChannelID); err != nil {
		return fmt.Errorf("error sending panel: %w", err)
	}

	return respondEphemeral(a, i, "Panel sent.")
}

// buttonCmdController adds or removes a custom ticket button and refreshes
// the recorded panel in place.
func buttonCmdController(a IApp, i *discordgo.InteractionCreate) error {
	ok, err := requireAuth(a, i, perms.AdminOrStaff)
	if err != nil || !ok {
		return err
	}

	sub := i.ApplicationCommandData().Options[0]
	label := sub.Options[0].StringValue()

	switch sub.Name {
	case addSubCmdName:
		if err := a.GuildDal().AddCustomButton(i.GuildID, label); err != nil {
			if errors.Is(err, dataaccess.ErrDuplicateLabel) {
				// Soft no-op; the existing button stays where it was.
				return respondEphemeral(a, i, fmt.Sprintf("A `%s` button already exists.", label))
			}
			return fmt.Errorf("error adding custom button: %w", err)
		}
	case removeSubCmdName:
		if err := a.GuildDal().RemoveCustomButton(i.GuildID, label); err != nil {
			if errors.Is(err, dataaccess.ErrLabelNotFound) {
				return respondEphemeral(a, i, fmt.Sprintf("There is no `%s` button.", label))
			}
			return fmt.Errorf("error removing custom button: %w", err)
		}
	default:
		return fmt.Errorf("unhandled sub command %s", sub.Name)
	}

	refreshed, err := refreshPanel(a, i.GuildID)
	if err != nil {
		// The label change is saved; only the in-place refresh failed.
		return respondEphemeral(a, i, "Button saved, but the panel could not be refreshed. Send a new one with /panel.")
	}
	if !refreshed {
		return respondEphemeral(a, i, "Button saved. Send a panel with /panel to show it.")
	}
	return respondEphemeral(a, i, "Button saved and panel refreshed.")
}

// resyncCmdController re-registers the guild's slash commands.
func resyncCmdController(a IApp, i *discordgo.InteractionCreate) error {
	ok, err := requireAuth(a, i, perms.AdminOnly)
	if err != nil || !ok {
		return err
	}

	if err := a.RegisterGuildCommands(i.GuildID); err != nil {
		return fmt.Errorf("error re-registering commands: %w", err)
	}
	return respondEphemeral(a, i, "Slash commands re-registered.")
}
