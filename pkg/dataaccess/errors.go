package dataaccess

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured is returned when a guild has not completed ticket setup.
	ErrNotConfigured = errors.New("ticketing is not configured for this guild")

	// ErrNotATicket is returned when an operation targets a channel that is
	// not a tracked ticket.
	ErrNotATicket = errors.New("channel is not a tracked ticket")

	// ErrDuplicateLabel is returned when a custom button label already exists.
	// It is a soft no-op; the label set is unchanged.
	ErrDuplicateLabel = errors.New("custom button label already exists")

	// ErrLabelNotFound is returned when a custom button label does not exist.
	ErrLabelNotFound = errors.New("custom button label not found")

	// ErrAlreadyBlacklisted is returned when the subject is already on the
	// blacklist. The blacklist is unchanged.
	ErrAlreadyBlacklisted = errors.New("subject is already blacklisted")

	// ErrNotBlacklisted is returned when the subject is not on the blacklist.
	ErrNotBlacklisted = errors.New("subject is not blacklisted")
)

// BlacklistKind is the way an actor matched the blacklist.
type BlacklistKind string

const (
	// BlacklistKindNone means the actor is not blacklisted.
	BlacklistKindNone BlacklistKind = ""

	// BlacklistKindUser means the actor's user ID is blacklisted.
	BlacklistKindUser BlacklistKind = "user"

	// BlacklistKindRole means the actor holds a blacklisted role.
	BlacklistKindRole BlacklistKind = "role"
)

// BlacklistedError is returned when a blacklisted actor attempts to open a
// ticket. Kind reports whether the user or one of their roles matched.
type BlacklistedError struct {
	Kind BlacklistKind
}

func (e *BlacklistedError) Error() string {
	return fmt.Sprintf("actor is blacklisted as %s", e.Kind)
}
