package dataaccess

import (
	"testing"

	"github.com/Jacobbrewer1/porter/pkg/entities"
	"github.com/stretchr/testify/require"
)

func TestGuildDal_Ensure(t *testing.T) {
	l := setupStores(t)
	dal := NewGuildDal(l)

	require.True(t, dal.Ensure("g1"), "first touch should create the config")
	require.False(t, dal.Ensure("g1"), "second touch should be a no-op")

	conf := dal.Get("g1")
	require.NotNil(t, conf)
	require.Empty(t, conf.TicketCategoryID)
	require.Empty(t, conf.StaffRoleID)
	require.Empty(t, conf.LogChannelID)
	require.Empty(t, conf.CustomButtons)
	require.Nil(t, conf.PanelMessage)
}

func TestGuildDal_GetAutoCreates(t *testing.T) {
	l := setupStores(t)
	dal := NewGuildDal(l)

	conf := dal.Get("never-seen")
	require.NotNil(t, conf)
	require.True(t, ConfigStore.Dirty(), "auto-creation should mark the store dirty")
}

func TestGuildDal_Setters(t *testing.T) {
	l := setupStores(t)
	dal := NewGuildDal(l)

	dal.SetCategory("g1", "cat-1")
	dal.SetStaffRole("g1", "role-1")
	dal.SetLogChannel("g1", "chan-1")
	dal.SetPanelMessage("g1", &entities.PanelMessage{ChannelID: "chan-2", MessageID: "msg-1"})

	conf := dal.Get("g1")
	require.Equal(t, "cat-1", conf.TicketCategoryID)
	require.Equal(t, "role-1", conf.StaffRoleID)
	require.Equal(t, "chan-1", conf.LogChannelID)
	require.Equal(t, &entities.PanelMessage{ChannelID: "chan-2", MessageID: "msg-1"}, conf.PanelMessage)
}

func TestGuildDal_CustomButtons(t *testing.T) {
	l := setupStores(t)
	dal := NewGuildDal(l)

	require.NoError(t, dal.AddCustomButton("g1", "Refunds"))
	require.NoError(t, dal.AddCustomButton("g1", "Partnership"))

	// Duplicate labels are rejected and leave the set unchanged.
	err := dal.AddCustomButton("g1", "Refunds")
	require.ErrorIs(t, err, ErrDuplicateLabel)
	require.Equal(t, []string{"Refunds", "Partnership"}, dal.Get("g1").CustomButtons)

	require.NoError(t, dal.RemoveCustomButton("g1", "Refunds"))
	require.Equal(t, []string{"Partnership"}, dal.Get("g1").CustomButtons)

	err = dal.RemoveCustomButton("g1", "Refunds")
	require.ErrorIs(t, err, ErrLabelNotFound)
}

func TestGuildDal_PersistsAcrossReload(t *testing.T) {
	l := setupStores(t)
	dal := NewGuildDal(l)

	dal.SetCategory("g1", "cat-1")
	require.NoError(t, dal.AddCustomButton("g1", "Refunds"))
	require.NoError(t, ConfigStore.Flush())

	// Reload from disk into a fresh registry.
	ConfigStore.Load()
	fresh := NewGuildDal(l)

	conf := fresh.Get("g1")
	require.Equal(t, "cat-1", conf.TicketCategoryID)
	require.Equal(t, []string{"Refunds"}, conf.CustomButtons)
}
