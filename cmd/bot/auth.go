package main

import (
	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/porter/pkg/perms"
)

// authorize evaluates the policy for the interaction's actor. The ticket
// owner, if the interaction happened inside a tracked ticket channel, is
// resolved from the registry.
func authorize(a IApp, i *discordgo.InteractionCreate, policy perms.Policy) perms.Decision {
	conf := a.GuildDal().Get(i.GuildID)

	req := perms.Request{
		Permissions: i.Member.Permissions,
		UserID:      i.Member.User.ID,
		RoleIDs:     i.Member.Roles,
		StaffRoleID: conf.StaffRoleID,
	}

	if ticket := a.TicketDal().Find(i.ChannelID); ticket != nil {
		req.TicketOwnerID = ticket.UserID
	}

	return perms.Authorize(policy, req)
}

// requireAuth runs the policy check and responds with the denial reason when
// the actor is not allowed. It reports whether the caller should proceed.
func requireAuth(a IApp, i *discordgo.InteractionCreate, policy perms.Policy) (bool, error) {
	decision := authorize(a, i, policy)
	if decision.Allowed {
		return true, nil
	}
	return false, respondEphemeral(a, i, decision.Reason)
}
