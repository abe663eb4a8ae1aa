package perms

import (
	"testing"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/stretchr/testify/require"
)

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name    string
		policy  Policy
		req     Request
		allowed bool
	}{
		{
			name:    "admin passes admin only",
			policy:  AdminOnly,
			req:     Request{Permissions: discordgo.PermissionAdministrator, UserID: "1"},
			allowed: true,
		},
		{
			name:    "staff denied admin only",
			policy:  AdminOnly,
			req:     Request{UserID: "1", RoleIDs: []string{"staff"}, StaffRoleID: "staff"},
			allowed: false,
		},
		{
			name:    "staff passes admin or staff",
			policy:  AdminOrStaff,
			req:     Request{UserID: "1", RoleIDs: []string{"member", "staff"}, StaffRoleID: "staff"},
			allowed: true,
		},
		{
			name:    "member denied admin or staff",
			policy:  AdminOrStaff,
			req:     Request{UserID: "1", RoleIDs: []string{"member"}, StaffRoleID: "staff"},
			allowed: false,
		},
		{
			name:    "unconfigured staff role never matches",
			policy:  AdminOrStaff,
			req:     Request{UserID: "1", RoleIDs: []string{""}},
			allowed: false,
		},
		{
			name:    "owner passes owner policy",
			policy:  AdminOrStaffOrOwner,
			req:     Request{UserID: "42", TicketOwnerID: "42"},
			allowed: true,
		},
		{
			name:    "non owner denied owner policy",
			policy:  AdminOrStaffOrOwner,
			req:     Request{UserID: "7", TicketOwnerID: "42", StaffRoleID: "staff"},
			allowed: false,
		},
		{
			name:    "no ticket in channel denies owner policy",
			policy:  AdminOrStaffOrOwner,
			req:     Request{UserID: "7"},
			allowed: false,
		},
		{
			name:    "admin passes owner policy without owning",
			policy:  AdminOrStaffOrOwner,
			req:     Request{Permissions: discordgo.PermissionAdministrator, UserID: "7", TicketOwnerID: "42"},
			allowed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Authorize(tt.policy, tt.req)
			require.Equal(t, tt.allowed, got.Allowed)
			if !tt.allowed {
				// A denial always carries a user-facing reason.
				require.NotEmpty(t, got.Reason)
			}
		})
	}
}
