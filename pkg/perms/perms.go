// Package perms decides whether an actor may perform a privileged ticket
// action. Decisions are pure: the caller resolves the actor's permissions
// and roles from the platform and decides how to report a denial.
package perms

import "github.com/Jacobbrewer1/discordgo"

// Policy is the level of access an operation requires.
type Policy int

const (
	// AdminOnly allows only actors with the administrator permission.
	AdminOnly Policy = iota

	// AdminOrStaff also allows holders of the configured staff role.
	AdminOrStaff

	// AdminOrStaffOrOwner also allows the owner of the ticket bound to the
	// current channel.
	AdminOrStaffOrOwner
)

// Request carries everything a decision needs.
type Request struct {
	// Permissions are the actor's platform permissions in the channel.
	Permissions int64

	// UserID is the actor's user ID.
	UserID string

	// RoleIDs are the actor's role IDs.
	RoleIDs []string

	// StaffRoleID is the guild's configured staff role. Empty means no staff
	// role has been set up.
	StaffRoleID string

	// TicketOwnerID is the owner of the ticket in the current channel. Empty
	// means the channel is not a ticket.
	TicketOwnerID string
}

// Decision is the outcome of an authorization check. Reason is a user-facing
// message and is only set on denial.
type Decision struct {
	Allowed bool
	Reason  string
}

// allow is the affirmative decision.
var allow = Decision{Allowed: true}

// Authorize evaluates the policy against the request.
func Authorize(p Policy, req Request) Decision {
	if req.Permissions&discordgo.PermissionAdministrator == discordgo.PermissionAdministrator {
		return allow
	}

	switch p {
	case AdminOnly:
		return Decision{Reason: "You must be an administrator to use this command."}

	case AdminOrStaff:
		if isStaff(req) {
			return allow
		}
		return Decision{Reason: "You must be an administrator or hold the staff role to use this command."}

	case AdminOrStaffOrOwner:
		if isStaff(req) {
			return allow
		}
		if req.TicketOwnerID != "" && req.UserID == req.TicketOwnerID {
			return allow
		}
		return Decision{Reason: "Only staff or the ticket owner can use this command."}
	}

	return Decision{Reason: "You do not have permission to use this command."}
}

func isStaff(req Request) bool {
	if req.StaffRoleID == "" {
		return false
	}
	for _, id := range req.RoleIDs {
		if id == req.StaffRoleID {
			return true
		}
	}
	return false
}
