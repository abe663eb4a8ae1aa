package dataaccess

import (
	"fmt"
	"log/slog"

	"github.com/Jacobbrewer1/porter/pkg/dataaccess/monitoring"
	"github.com/Jacobbrewer1/porter/pkg/entities"
	"github.com/Jacobbrewer1/porter/pkg/logging"
	"github.com/Jacobbrewer1/porter/pkg/store"
	"github.com/prometheus/client_golang/prometheus"
)

const blacklistDalName = "blacklist_dal"

// BlacklistDal is the registry of blacklisted users and roles per guild.
type BlacklistDal interface {
	// AddUser blacklists a user. Adding a user that is already blacklisted
	// returns ErrAlreadyBlacklisted.
	AddUser(guildID, userID, reason string) error

	// AddRole blacklists a role. Adding a role that is already blacklisted
	// returns ErrAlreadyBlacklisted.
	AddRole(guildID, roleID, reason string) error

	// RemoveUser removes a user from the blacklist. Removing a user that is
	// not blacklisted returns ErrNotBlacklisted.
	RemoveUser(guildID, userID string) error

	// RemoveRole removes a role from the blacklist. Removing a role that is
	// not blacklisted returns ErrNotBlacklisted.
	RemoveRole(guildID, roleID string) error

	// Check reports how an actor matches the blacklist. A user match wins
	// over a role match.
	Check(guildID, userID string, roleIDs []string) BlacklistKind
}

type blacklistDal struct {
	// l is the logger.
	l *slog.Logger

	// store is the durable store that owns the on-disk copy. Its document
	// lock guards every read and mutation.
	store *store.Store[entities.BlacklistDocument]
}

// NewBlacklistDal creates a new blacklist registry.
func NewBlacklistDal(l *slog.Logger) BlacklistDal {
	dl := l.With(slog.String(logging.KeyDal, blacklistDalName))

	if BlacklistStore == nil {
		dl.Warn("Blacklist store is nil, this can cause a panic. Proceeding...")
	}

	return &blacklistDal{
		l:     dl,
		store: BlacklistStore,
	}
}

// guildLocked returns the blacklist for the guild, creating an empty one if
// absent. The caller holds the store's document lock. Creation alone does not
// mark the store dirty; an empty blacklist is equivalent to no blacklist.
func (b *blacklistDal) guildLocked(guildID string) *entities.GuildBlacklist {
	doc := b.store.Data()
	bl, ok := doc.Guilds[guildID]
	if !ok {
		bl = entities.NewGuildBlacklist()
		doc.Guilds[guildID] = bl
	}
	return bl
}

func contains(entries []entities.BlacklistEntry, id string) bool {
	for _, e := range entries {
		if e.ID == id {
			return true
		}
	}
	return false
}

func remove(entries []entities.BlacklistEntry, id string) ([]entities.BlacklistEntry, bool) {
	for idx, e := range entries {
		if e.ID == id {
			return append(entries[:idx], entries[idx+1:]...), true
		}
	}
	return entries, false
}

func (b *blacklistDal) AddUser(guildID, userID, reason string) error {
	defer b.observe("add_user")()
	b.store.Lock()
	defer b.store.Unlock()

	bl := b.guildLocked(guildID)
	if contains(bl.Users, userID) {
		return fmt.Errorf("user %s: %w", userID, ErrAlreadyBlacklisted)
	}

	bl.Users = append(bl.Users, entities.BlacklistEntry{ID: userID, Reason: reason})
	b.store.MarkDirty()
	return nil
}

func (b *blacklistDal) AddRole(guildID, roleID, reason string) error {
	defer b.observe("add_role")()
	b.store.Lock()
	defer b.store.Unlock()

	bl := b.guildLocked(guildID)
	if contains(bl.Roles, roleID) {
		return fmt.Errorf("role %s: %w", roleID, ErrAlreadyBlacklisted)
	}

	bl.Roles = append(bl.Roles, entities.BlacklistEntry{ID: roleID, Reason: reason})
	b.store.MarkDirty()
	return nil
}

func (b *blacklistDal) RemoveUser(guildID, userID string) error {
	defer b.observe("remove_user")()
	b.store.Lock()
	defer b.store.Unlock()

	bl := b.guildLocked(guildID)
	users, ok := remove(bl.Users, userID)
	if !ok {
		return fmt.Errorf("user %s: %w", userID, ErrNotBlacklisted)
	}

	bl.Users = users
	b.store.MarkDirty()
	return nil
}

func (b *blacklistDal) RemoveRole(guildID, roleID string) error {
	defer b.observe("remove_role")()
	b.store.Lock()
	defer b.store.Unlock()

	bl := b.guildLocked(guildID)
	roles, ok := remove(bl.Roles, roleID)
	if !ok {
		return fmt.Errorf("role %s: %w", roleID, ErrNotBlacklisted)
	}

	bl.Roles = roles
	b.store.MarkDirty()
	return nil
}

func (b *blacklistDal) Check(guildID, userID string, roleIDs []string) BlacklistKind {
	defer b.observe("check")()
	b.store.Lock()
	defer b.store.Unlock()

	bl := b.guildLocked(guildID)
	if contains(bl.Users, userID) {
		return BlacklistKindUser
	}

	for _, roleID := range roleIDs {
		if contains(bl.Roles, roleID) {
			return BlacklistKindRole
		}
	}
	return BlacklistKindNone
}

// observe starts the prometheus metrics for an operation and returns the
// function that records the latency.
func (b *blacklistDal) observe(operation string) func() {
	monitoring.StoreTotalRequests.WithLabelValues(blacklistDalName, operation, blacklistStoreName).Inc()
	t := prometheus.NewTimer(monitoring.StoreLatency.WithLabelValues(blacklistDalName, operation, blacklistStoreName))
	return func() {
		t.ObserveDuration()
	}
}
