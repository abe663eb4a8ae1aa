package main

import (
	"testing"
	"time"

	"github.com/Jacobbrewer1/porter/pkg/dataaccess"
	"github.com/Jacobbrewer1/porter/pkg/logging"
	"github.com/stretchr/testify/require"
)

// stubApp satisfies IApp for handlers that only touch the registries.
type stubApp struct {
	IApp
	guilds dataaccess.GuildDal
}

func (s *stubApp) GuildDal() dataaccess.GuildDal {
	return s.guilds
}

func newStubApp(t *testing.T) *stubApp {
	t.Helper()

	l, err := logging.CommonLogger(logging.NewConfig(`tests`))
	require.NoError(t, err, "Failed to create logger")

	dataaccess.Open(l, t.TempDir(), time.Hour)
	t.Cleanup(func() {
		dataaccess.ConfigStore = nil
		dataaccess.TicketStore = nil
		dataaccess.BlacklistStore = nil
	})

	return &stubApp{guilds: dataaccess.NewGuildDal(l)}
}

func TestButtonTicketType_Standard(t *testing.T) {
	a := newStubApp(t)

	typ, ok := buttonTicketType(a, stdButtonID("g1", 0))
	require.True(t, ok)
	require.Equal(t, standardButtons[0].Type, typ)

	_, ok = buttonTicketType(a, stdButtonID("g1", len(standardButtons)))
	require.False(t, ok)

	_, ok = buttonTicketType(a, "garbage")
	require.False(t, ok)
}

func TestButtonTicketType_CustomSurvivesRemoval(t *testing.T) {
	a := newStubApp(t)

	require.NoError(t, a.guilds.AddCustomButton("g1", "Refunds"))
	require.NoError(t, a.guilds.AddCustomButton("g1", "Partner_Program"))

	id := cusButtonID("g1", "Partner_Program")

	// Removing an earlier label must not change which type this button
	// opens, even on a panel render that was never refreshed.
	require.NoError(t, a.guilds.RemoveCustomButton("g1", "Refunds"))

	typ, ok := buttonTicketType(a, id)
	require.True(t, ok)
	require.Equal(t, "Partner_Program", typ)

	// A removed label's own button is stale and is rejected.
	_, ok = buttonTicketType(a, cusButtonID("g1", "Refunds"))
	require.False(t, ok)
}
