package dataaccess

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlacklistDal_Users(t *testing.T) {
	l := setupStores(t)
	dal := NewBlacklistDal(l)

	require.Equal(t, BlacklistKindNone, dal.Check("g1", "42", nil))

	require.NoError(t, dal.AddUser("g1", "42", "spam"))
	require.Equal(t, BlacklistKindUser, dal.Check("g1", "42", nil))

	// Adding the same user again is reported, not silently accepted.
	require.ErrorIs(t, dal.AddUser("g1", "42", "spam again"), ErrAlreadyBlacklisted)

	require.NoError(t, dal.RemoveUser("g1", "42"))
	require.Equal(t, BlacklistKindNone, dal.Check("g1", "42", nil))

	require.ErrorIs(t, dal.RemoveUser("g1", "42"), ErrNotBlacklisted)
}

func TestBlacklistDal_Roles(t *testing.T) {
	l := setupStores(t)
	dal := NewBlacklistDal(l)

	require.NoError(t, dal.AddRole("g1", "muted", ""))

	// Any actor holding the role is blocked.
	require.Equal(t, BlacklistKindRole, dal.Check("g1", "7", []string{"member", "muted"}))
	require.Equal(t, BlacklistKindNone, dal.Check("g1", "7", []string{"member"}))

	require.ErrorIs(t, dal.AddRole("g1", "muted", ""), ErrAlreadyBlacklisted)
	require.NoError(t, dal.RemoveRole("g1", "muted"))
	require.ErrorIs(t, dal.RemoveRole("g1", "muted"), ErrNotBlacklisted)
}

func TestBlacklistDal_UserMatchWinsOverRole(t *testing.T) {
	l := setupStores(t)
	dal := NewBlacklistDal(l)

	require.NoError(t, dal.AddUser("g1", "42", ""))
	require.NoError(t, dal.AddRole("g1", "muted", ""))

	require.Equal(t, BlacklistKindUser, dal.Check("g1", "42", []string{"muted"}))
}

func TestBlacklistDal_GuildScoped(t *testing.T) {
	l := setupStores(t)
	dal := NewBlacklistDal(l)

	require.NoError(t, dal.AddUser("g1", "42", ""))

	// A blacklist entry in one guild does not leak into another.
	require.Equal(t, BlacklistKindNone, dal.Check("g2", "42", nil))
}
