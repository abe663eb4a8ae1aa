package dataaccess

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/Jacobbrewer1/porter/pkg/custom"
	"github.com/Jacobbrewer1/porter/pkg/dataaccess/monitoring"
	"github.com/Jacobbrewer1/porter/pkg/entities"
	"github.com/Jacobbrewer1/porter/pkg/logging"
	"github.com/Jacobbrewer1/porter/pkg/store"
	"github.com/prometheus/client_golang/prometheus"
)

const ticketDalName = "ticket_dal"

// ChannelCreator creates the channel for a newly allocated ticket and returns
// its ID. It is a slow network call and runs without the document lock; the
// per-guild allocation lock keeps the counter read and the commit one logical
// unit, so if it fails the counter is not consumed and no ID is lost.
type ChannelCreator func(t *entities.Ticket) (channelID string, err error)

// TicketDal is the registry of open tickets. Tickets are keyed by their
// channel ID; IDs are guild-scoped, strictly increasing and never reused.
type TicketDal interface {
	// Allocate opens a ticket for the user. It fails with ErrNotConfigured if
	// the guild has no ticket category and with BlacklistedError if the owner
	// is blacklisted. Allocation is serialized per guild: no two calls
	// observe the same counter value, and one guild's slow channel create
	// does not block the others.
	Allocate(guildID, userID string, roleIDs []string, ticketType string, create ChannelCreator) (*entities.Ticket, error)

	// Close removes the ticket tracked for the channel and returns it.
	// Closing is one-way; an untracked channel fails with ErrNotATicket.
	Close(channelID string) (*entities.Ticket, error)

	// Rename sets the ticket's custom name, sanitized to a channel-safe slug,
	// and returns the updated ticket.
	Rename(channelID, name string) (*entities.Ticket, error)

	// Find returns the ticket tracked for the channel, or nil.
	Find(channelID string) *entities.Ticket

	// Count returns the number of open tickets for the guild.
	Count(guildID string) int
}

type ticketDal struct {
	// l is the logger.
	l *slog.Logger

	// store is the durable store that owns the on-disk copy. Its document
	// lock guards every read and mutation.
	store *store.Store[entities.TicketsDocument]

	// guilds is the configuration registry, consulted before allocation.
	guilds GuildDal

	// blacklist is the blacklist registry, consulted before allocation.
	blacklist BlacklistDal

	// allocMu guards allocMus.
	allocMu sync.Mutex

	// allocMus serializes allocation per guild.
	allocMus map[string]*sync.Mutex
}

// NewTicketDal creates a new ticket registry.
func NewTicketDal(l *slog.Logger, guilds GuildDal, blacklist BlacklistDal) TicketDal {
	dl := l.With(slog.String(logging.KeyDal, ticketDalName))

	if TicketStore == nil {
		dl.Warn("Ticket store is nil, this can cause a panic. Proceeding...")
	}

	return &ticketDal{
		l:         dl,
		store:     TicketStore,
		guilds:    guilds,
		blacklist: blacklist,
		allocMus:  make(map[string]*sync.Mutex),
	}
}

// guildAllocMu returns the allocation lock for the guild, creating it on
// first use.
func (d *ticketDal) guildAllocMu(guildID string) *sync.Mutex {
	d.allocMu.Lock()
	defer d.allocMu.Unlock()

	mu, ok := d.allocMus[guildID]
	if !ok {
		mu = new(sync.Mutex)
		d.allocMus[guildID] = mu
	}
	return mu
}

// guildLocked returns the ticket registry for the guild, creating an empty
// one if absent. The caller holds the store's document lock.
func (d *ticketDal) guildLocked(guildID string) *entities.GuildTickets {
	doc := d.store.Data()
	gt, ok := doc.Guilds[guildID]
	if !ok {
		gt = entities.NewGuildTickets()
		doc.Guilds[guildID] = gt
	}
	return gt
}

func (d *ticketDal) Allocate(guildID, userID string, roleIDs []string, ticketType string, create ChannelCreator) (*entities.Ticket, error) {
	defer d.observe("allocate")()

	// One in-flight allocation per guild.
	mu := d.guildAllocMu(guildID)
	mu.Lock()
	defer mu.Unlock()

	conf := d.guilds.Get(guildID)
	if conf.TicketCategoryID == "" {
		return nil, ErrNotConfigured
	}

	if kind := d.blacklist.Check(guildID, userID, roleIDs); kind != BlacklistKindNone {
		return nil, &BlacklistedError{Kind: kind}
	}

	d.store.Lock()
	nextID := d.guildLocked(guildID).LastID + 1
	d.store.Unlock()

	ticket := &entities.Ticket{
		ID:        nextID,
		GuildID:   guildID,
		UserID:    userID,
		Type:      ticketType,
		CreatedAt: custom.Now(),
	}

	channelID, err := create(ticket)
	if err != nil {
		// The counter was not advanced; the ID will be handed out again.
		return nil, fmt.Errorf("error creating ticket channel: %w", err)
	}
	ticket.ChannelID = channelID

	d.store.Lock()
	gt := d.guildLocked(guildID)
	gt.LastID = ticket.ID
	gt.Tickets[channelID] = ticket
	d.store.Unlock()

	d.store.MarkDirty()
	return ticket, nil
}

func (d *ticketDal) Close(channelID string) (*entities.Ticket, error) {
	defer d.observe("close")()
	d.store.Lock()
	defer d.store.Unlock()

	ticket := d.findLocked(channelID)
	if ticket == nil {
		return nil, fmt.Errorf("channel %s: %w", channelID, ErrNotATicket)
	}

	delete(d.store.Data().Guilds[ticket.GuildID].Tickets, channelID)
	d.store.MarkDirty()
	return ticket, nil
}

func (d *ticketDal) Rename(channelID, name string) (*entities.Ticket, error) {
	defer d.observe("rename")()
	d.store.Lock()
	defer d.store.Unlock()

	ticket := d.findLocked(channelID)
	if ticket == nil {
		return nil, fmt.Errorf("channel %s: %w", channelID, ErrNotATicket)
	}

	ticket.CustomName = entities.Slug(name)
	d.store.MarkDirty()
	return ticket, nil
}

func (d *ticketDal) Find(channelID string) *entities.Ticket {
	defer d.observe("find")()
	d.store.Lock()
	defer d.store.Unlock()

	return d.findLocked(channelID)
}

func (d *ticketDal) Count(guildID string) int {
	defer d.observe("count")()
	d.store.Lock()
	defer d.store.Unlock()

	return len(d.guildLocked(guildID).Tickets)
}

// findLocked looks the channel up across guilds. The caller holds the store's
// document lock.
func (d *ticketDal) findLocked(channelID string) *entities.Ticket {
	for _, gt := range d.store.Data().Guilds {
		if t, ok := gt.Tickets[channelID]; ok {
			return t
		}
	}
	return nil
}

// observe starts the prometheus metrics for an operation and returns the
// function that records the latency.
func (d *ticketDal) observe(operation string) func() {
	monitoring.StoreTotalRequests.WithLabelValues(ticketDalName, operation, ticketStoreName).Inc()
	t := prometheus.NewTimer(monitoring.StoreLatency.WithLabelValues(ticketDalName, operation, ticketStoreName))
	return func() {
		t.ObserveDuration()
	}
}
