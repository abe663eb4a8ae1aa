package main

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/porter/pkg/dataaccess"
	"github.com/Jacobbrewer1/porter/pkg/entities"
	"github.com/Jacobbrewer1/porter/pkg/logging"
	"github.com/Jacobbrewer1/porter/pkg/perms"
)

// closeDeleteDelay is how long after closing a ticket its channel is deleted.
const closeDeleteDelay = 5 * time.Second

// ticketButtonHandler opens a ticket for a panel button press.
func ticketButtonHandler(a IApp, i *discordgo.InteractionCreate, customID string) error {
	ticketType, ok := buttonTicketType(a, customID)
	if !ok {
		// Stale button on an old panel render.
		return respondEphemeral(a, i, "That button is no longer available. Ask staff to refresh the panel.")
	}

	// Acknowledge now; channel creation can be slow.
	if err := deferEphemeral(a, i); err != nil {
		return fmt.Errorf("error acknowledging interaction: %w", err)
	}

	ticket, err := a.TicketDal().Allocate(i.GuildID, i.Member.User.ID, i.Member.Roles, ticketType, func(t *entities.Ticket) (string, error) {
		return createTicketChannel(a, i, t)
	})
	if err != nil {
		blErr := new(dataaccess.BlacklistedError)
		switch {
		case errors.Is(err, dataaccess.ErrNotConfigured):
			return followupEphemeral(a, i, "Ticketing has not been set up for this server yet.")
		case errors.As(err, &blErr):
			return followupEphemeral(a, i, "You are blacklisted from opening tickets on this server.")
		}
		return fmt.Errorf("error allocating ticket: %w", err)
	}

	// The welcome message is best-effort; the ticket exists either way.
	go func() {
		welcome := fmt.Sprintf("\U0001F3AB **Ticket #%d (%s)**\nHello <@%s>! Describe your request and a staff member will be with you shortly.",
			ticket.ID, ticket.Type, ticket.UserID)
		if _, err := a.Session().ChannelMessageSend(ticket.ChannelID, welcome); err != nil {
			a.Log().Error("Error sending ticket welcome message", slog.String(logging.KeyError, err.Error()))
		}
	}()

	logTicketEvent(a, i.GuildID, fmt.Sprintf("\U0001F7E2 Ticket #%d (%s) opened by <@%s>", ticket.ID, ticket.Type, ticket.UserID))

	return followupEphemeral(a, i, fmt.Sprintf("Ticket #%d (%s) created: <#%s>", ticket.ID, ticket.Type, ticket.ChannelID))
}

// createTicketChannel creates the private channel for a ticket. Only the
// requester and the staff role can see it.
func createTicketChannel(a IApp, i *discordgo.InteractionCreate, ticket *entities.Ticket) (string, error) {
	conf := a.GuildDal().Get(i.GuildID)

	overwrites := []*discordgo.PermissionOverwrite{
		// Deny @everyone from seeing the ticket.
		{
			ID:   i.GuildID,
			Type: discordgo.PermissionOverwriteTypeRole,
			Deny: discordgo.PermissionAll,
		},
		// The creator of the ticket can see the ticket.
		{
			ID:    i.Member.User.ID,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: discordgo.PermissionAllText,
			Deny:  discordgo.PermissionMentionEveryone,
		},
	}
	if conf.StaffRoleID != "" {
		overwrites = append(overwrites, &discordgo.PermissionOverwrite{
			ID:    conf.StaffRoleID,
			Type:  discordgo.PermissionOverwriteTypeRole,
			Allow: discordgo.PermissionAllText,
			Deny:  discordgo.PermissionMentionEveryone,
		})
	}

	channel, err := a.Session().GuildChannelCreateComplex(i.GuildID, discordgo.GuildChannelCreateData{
		Name:                 ticket.Name(),
		Type:                 discordgo.ChannelTypeGuildText,
		Topic:                fmt.Sprintf("Ticket #%d opened by %s", ticket.ID, i.Member.User.Username),
		ParentID:             conf.TicketCategoryID,
		PermissionOverwrites: overwrites,
	})
	if err != nil {
		return "", fmt.Errorf("error creating channel: %w", err)
	}
	return channel.ID, nil
}

// closeCmdController closes the ticket in the current channel. The channel is
// deleted shortly afterwards; deletion is detached and best-effort.
func closeCmdController(a IApp, i *discordgo.InteractionCreate) error {
	ok, err := requireAuth(a, i, perms.AdminOrStaffOrOwner)
	if err != nil || !ok {
		return err
	}

	if a.TicketDal().Find(i.ChannelID) == nil {
		return respondEphemeral(a, i, "This channel is not a ticket.")
	}

	// Capture the transcript while the channel history is still reachable.
	transcript, err := generateTranscript(a, i.ChannelID)
	if err != nil {
		a.Log().Error("Error generating transcript", slog.String(logging.KeyError, err.Error()))
		transcript = nil
	}

	ticket, err := a.TicketDal().Close(i.ChannelID)
	if err != nil {
		if errors.Is(err, dataaccess.ErrNotATicket) {
			return respondEphemeral(a, i, "This channel is not a ticket.")
		}
		return fmt.Errorf("error closing ticket: %w", err)
	}

	if err := respondEphemeral(a, i, fmt.Sprintf("Ticket #%d closed. This channel will be deleted shortly.", ticket.ID)); err != nil {
		a.Log().Error("Error responding to interaction", slog.String(logging.KeyError, err.Error()))
	}

	logTicketEvent(a, ticket.GuildID, fmt.Sprintf("\U0001F534 Ticket #%d closed by <@%s>", ticket.ID, i.Member.User.ID))

	go func() {
		if transcript != nil {
			sendTranscript(a, ticket, transcript)
		}

		// Channel deletion is a detached side effect; the ticket is already
		// closed whether or not it succeeds.
		time.Sleep(closeDeleteDelay)
		if _, err := a.Session().ChannelDelete(ticket.ChannelID); err != nil {
			a.Log().Error("Error deleting ticket channel", slog.String(logging.KeyError, err.Error()))
		}
	}()
	return nil
}

// renameCmdController renames the ticket in the current channel.
func renameCmdController(a IApp, i *discordgo.InteractionCreate) error {
	ok, err := requireAuth(a, i, perms.AdminOrStaffOrOwner)
	if err != nil || !ok {
		return err
	}

	opts := commandOptions(i)
	newName := opts[nameOptName].StringValue()

	ticket, err := a.TicketDal().Rename(i.ChannelID, newName)
	if err != nil {
		if errors.Is(err, dataaccess.ErrNotATicket) {
			return respondEphemeral(a, i, "This channel is not a ticket.")
		}
		return fmt.Errorf("error renaming ticket: %w", err)
	}

	if _, err := a.Session().ChannelEditComplex(i.ChannelID, &discordgo.ChannelEdit{
		Name: ticket.Name(),
	}); err != nil {
		return fmt.Errorf("error editing channel: %w", err)
	}

	return respondEphemeral(a, i, fmt.Sprintf("Ticket renamed to `%s`.", ticket.Name()))
}

// addMemberCmdController adds a member to the ticket in the current channel.
func addMemberCmdController(a IApp, i *discordgo.InteractionCreate) error {
	ok, err := requireAuth(a, i, perms.AdminOrStaffOrOwner)
	if err != nil || !ok {
		return err
	}

	if a.TicketDal().Find(i.ChannelID) == nil {
		return respondEphemeral(a, i, "This channel is not a ticket.")
	}

	opts := commandOptions(i)
	member := opts[memberOptName].UserValue(a.Session())

	if err := a.Session().ChannelPermissionSet(i.ChannelID, member.ID, discordgo.PermissionOverwriteTypeMember,
		discordgo.PermissionAllText, discordgo.PermissionMentionEveryone); err != nil {
		return fmt.Errorf("error setting channel permissions: %w", err)
	}

	return respondEphemeral(a, i, fmt.Sprintf("Added <@%s> to the ticket.", member.ID))
}
