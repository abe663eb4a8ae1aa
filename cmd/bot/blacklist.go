package main

import (
	"errors"
	"fmt"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/porter/pkg/dataaccess"
	"github.com/Jacobbrewer1/porter/pkg/perms"
)

// blacklistCmdController blacklists a user or role from opening tickets.
func blacklistCmdController(a IApp, i *discordgo.InteractionCreate) error {
	ok, err := requireAuth(a, i, perms.AdminOrStaff)
	if err != nil || !ok {
		return err
	}

	opts := commandOptions(i)

	reason := ""
	if opt, hasReason := opts[reasonOptName]; hasReason {
		reason = opt.StringValue()
	}

	switch {
	case opts[memberOptName] != nil:
		member := opts[memberOptName].UserValue(a.Session())
		if err := a.BlacklistDal().AddUser(i.GuildID, member.ID, reason); err != nil {
			if errors.Is(err, dataaccess.ErrAlreadyBlacklisted) {
				return respondEphemeral(a, i, fmt.Sprintf("<@%s> is already blacklisted.", member.ID))
			}
			return fmt.Errorf("error blacklisting user: %w", err)
		}
		logTicketEvent(a, i.GuildID, fmt.Sprintf("⛔ <@%s> blacklisted by <@%s>", member.ID, i.Member.User.ID))
		return respondEphemeral(a, i, fmt.Sprintf("<@%s> has been blacklisted.", member.ID))

	case opts[roleOptName] != nil:
		role := opts[roleOptName].RoleValue(a.Session(), i.GuildID)
		if err := a.BlacklistDal().AddRole(i.GuildID, role.ID, reason); err != nil {
			if errors.Is(err, dataaccess.ErrAlreadyBlacklisted) {
				return respondEphemeral(a, i, fmt.Sprintf("<@&%s> is already blacklisted.", role.ID))
			}
			return fmt.Errorf("error blacklisting role: %w", err)
		}
		logTicketEvent(a, i.GuildID, fmt.Sprintf("⛔ <@&%s> blacklisted by <@%s>", role.ID, i.Member.User.ID))
		return respondEphemeral(a, i, fmt.Sprintf("<@&%s> has been blacklisted.", role.ID))
	}

	return respondEphemeral(a, i, "Provide a user or a role to blacklist.")
}

// unblacklistCmdController removes a user or role from the blacklist.
func unblacklistCmdController(a IApp, i *discordgo.InteractionCreate) error {
	ok, err := requireAuth(a, i, perms.AdminOrStaff)
	if err != nil || !ok {
		return err
	}

	opts := commandOptions(i)

	switch {
	case opts[memberOptName] != nil:
		member := opts[memberOptName].UserValue(a.Session())
		if err := a.BlacklistDal().RemoveUser(i.GuildID, member.ID); err != nil {
			if errors.Is(err, dataaccess.ErrNotBlacklisted) {
				return respondEphemeral(a, i, fmt.Sprintf("<@%s> is not blacklisted.", member.ID))
			}
			return fmt.Errorf("error unblacklisting user: %w", err)
		}
		return respondEphemeral(a, i, fmt.Sprintf("<@%s> has been removed from the blacklist.", member.ID))

	case opts[roleOptName] != nil:
		role := opts[roleOptName].RoleValue(a.Session(), i.GuildID)
		if err := a.BlacklistDal().RemoveRole(i.GuildID, role.ID); err != nil {
			if errors.Is(err, dataaccess.ErrNotBlacklisted) {
				return respondEphemeral(a, i, fmt.Sprintf("<@&%s> is not blacklisted.", role.ID))
			}
			return fmt.Errorf("error unblacklisting role: %w", err)
		}
		return respondEphemeral(a, i, fmt.Sprintf("<@&%s> has been removed from the blacklist.", role.ID))
	}

	return respondEphemeral(a, i, "Provide a user or a role to remove from the blacklist.")
}
