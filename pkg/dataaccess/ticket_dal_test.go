package dataaccess

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/Jacobbrewer1/porter/pkg/entities"
	"github.com/stretchr/testify/require"
)

func newTicketDal(t *testing.T) (TicketDal, GuildDal, BlacklistDal) {
	t.Helper()
	l := setupStores(t)
	guilds := NewGuildDal(l)
	blacklist := NewBlacklistDal(l)
	return NewTicketDal(l, guilds, blacklist), guilds, blacklist
}

// staticChannel returns a creator that always succeeds with the given ID.
func staticChannel(id string) ChannelCreator {
	return func(*entities.Ticket) (string, error) {
		return id, nil
	}
}

func TestTicketDal_AllocateRequiresSetup(t *testing.T) {
	dal, guilds, _ := newTicketDal(t)

	_, err := dal.Allocate("g1", "42", nil, "Support", staticChannel("c1"))
	require.ErrorIs(t, err, ErrNotConfigured)

	guilds.Ensure("g1")
	guilds.SetCategory("g1", "cat-1")
	guilds.SetStaffRole("g1", "staff")

	ticket, err := dal.Allocate("g1", "42", nil, "Support", staticChannel("c1"))
	require.NoError(t, err)
	require.Equal(t, 1, ticket.ID)
	require.Equal(t, "c1", ticket.ChannelID)
	require.Equal(t, "42", ticket.UserID)
	require.Equal(t, "Support", ticket.Type)

	second, err := dal.Allocate("g1", "43", nil, "Support", staticChannel("c2"))
	require.NoError(t, err)
	require.Equal(t, 2, second.ID)
}

func TestTicketDal_AllocateBlacklisted(t *testing.T) {
	dal, guilds, blacklist := newTicketDal(t)
	guilds.SetCategory("g1", "cat-1")

	require.NoError(t, blacklist.AddUser("g1", "42", "spam"))

	_, err := dal.Allocate("g1", "42", nil, "Support", staticChannel("c1"))
	blErr := new(BlacklistedError)
	require.ErrorAs(t, err, &blErr)
	require.Equal(t, BlacklistKindUser, blErr.Kind)

	require.NoError(t, blacklist.AddRole("g1", "muted", ""))
	_, err = dal.Allocate("g1", "7", []string{"muted"}, "Support", staticChannel("c2"))
	require.ErrorAs(t, err, &blErr)
	require.Equal(t, BlacklistKindRole, blErr.Kind)
}

func TestTicketDal_FailedChannelCreateKeepsIDs(t *testing.T) {
	dal, guilds, _ := newTicketDal(t)
	guilds.SetCategory("g1", "cat-1")

	_, err := dal.Allocate("g1", "42", nil, "Support", func(*entities.Ticket) (string, error) {
		return "", errors.New("boom")
	})
	require.Error(t, err)

	// The failed allocation must not burn an ID.
	ticket, err := dal.Allocate("g1", "42", nil, "Support", staticChannel("c1"))
	require.NoError(t, err)
	require.Equal(t, 1, ticket.ID)
}

func TestTicketDal_AllocateConcurrent(t *testing.T) {
	dal, guilds, _ := newTicketDal(t)
	guilds.SetCategory("g1", "cat-1")

	const n = 64

	ids := make([]int, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			ticket, err := dal.Allocate("g1", fmt.Sprintf("user-%d", i), nil, "Support", staticChannel(fmt.Sprintf("chan-%d", i)))
			if err != nil {
				errs[i] = err
				return
			}
			ids[i] = ticket.ID
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
	}

	// IDs must be 1..n with no duplicates and no gaps.
	sort.Ints(ids)
	for i, id := range ids {
		require.Equal(t, i+1, id)
	}
	require.Equal(t, n, dal.Count("g1"))
}

func TestTicketDal_SlowCreateDoesNotBlockOtherGuilds(t *testing.T) {
	dal, guilds, _ := newTicketDal(t)
	guilds.SetCategory("g1", "cat-1")
	guilds.SetCategory("g2", "cat-2")

	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})

	var slowErr error
	go func() {
		defer close(done)
		_, slowErr = dal.Allocate("g1", "42", nil, "Support", func(*entities.Ticket) (string, error) {
			close(entered)
			<-release
			return "c1", nil
		})
	}()
	<-entered

	// While g1's channel create is in flight, lookups and other guilds'
	// allocations still go through.
	require.Nil(t, dal.Find("nope"))
	require.Zero(t, dal.Count("g2"))

	other, err := dal.Allocate("g2", "7", nil, "Support", staticChannel("c2"))
	require.NoError(t, err)
	require.Equal(t, 1, other.ID)

	close(release)
	<-done
	require.NoError(t, slowErr)
	require.NotNil(t, dal.Find("c1"))
}

func TestTicketDal_CloseAndFind(t *testing.T) {
	dal, guilds, _ := newTicketDal(t)
	guilds.SetCategory("g1", "cat-1")

	ticket, err := dal.Allocate("g1", "42", nil, "Support", staticChannel("c1"))
	require.NoError(t, err)
	require.Equal(t, ticket, dal.Find("c1"))

	closed, err := dal.Close("c1")
	require.NoError(t, err)
	require.Equal(t, ticket.ID, closed.ID)
	require.Nil(t, dal.Find("c1"))

	// Closing is one-way.
	_, err = dal.Close("c1")
	require.ErrorIs(t, err, ErrNotATicket)
}

func TestTicketDal_CloseUntrackedMutatesNothing(t *testing.T) {
	dal, guilds, _ := newTicketDal(t)
	guilds.SetCategory("g1", "cat-1")

	_, err := dal.Allocate("g1", "42", nil, "Support", staticChannel("c1"))
	require.NoError(t, err)

	_, err = dal.Close("not-a-ticket")
	require.ErrorIs(t, err, ErrNotATicket)
	require.Equal(t, 1, dal.Count("g1"))
	require.NotNil(t, dal.Find("c1"))
}

func TestTicketDal_Rename(t *testing.T) {
	dal, guilds, _ := newTicketDal(t)
	guilds.SetCategory("g1", "cat-1")

	ticket, err := dal.Allocate("g1", "42", nil, "Bug Report", staticChannel("c1"))
	require.NoError(t, err)
	require.Equal(t, "ticket-1-bug-report", ticket.Name())

	renamed, err := dal.Rename("c1", "Billing Issue!")
	require.NoError(t, err)
	require.Equal(t, "billing-issue", renamed.CustomName)
	require.Equal(t, "ticket-1-billing-issue", renamed.Name())

	_, err = dal.Rename("nope", "x")
	require.ErrorIs(t, err, ErrNotATicket)
}

func TestTicketDal_CountersAreGuildScoped(t *testing.T) {
	dal, guilds, _ := newTicketDal(t)
	guilds.SetCategory("g1", "cat-1")
	guilds.SetCategory("g2", "cat-2")

	t1, err := dal.Allocate("g1", "42", nil, "Support", staticChannel("c1"))
	require.NoError(t, err)
	t2, err := dal.Allocate("g2", "42", nil, "Support", staticChannel("c2"))
	require.NoError(t, err)

	require.Equal(t, 1, t1.ID)
	require.Equal(t, 1, t2.ID)
}

func TestTicketDal_IDsNotReusedAfterClose(t *testing.T) {
	dal, guilds, _ := newTicketDal(t)
	guilds.SetCategory("g1", "cat-1")

	first, err := dal.Allocate("g1", "42", nil, "Support", staticChannel("c1"))
	require.NoError(t, err)
	_, err = dal.Close("c1")
	require.NoError(t, err)

	second, err := dal.Allocate("g1", "42", nil, "Support", staticChannel("c2"))
	require.NoError(t, err)
	require.Equal(t, first.ID+1, second.ID)
}
