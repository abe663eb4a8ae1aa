package entities

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Jacobbrewer1/porter/pkg/custom"
)

// slugPattern matches every character that is not safe in a channel name.
var slugPattern = regexp.MustCompile(`[^a-z0-9-]`)

// Slug sanitizes a label into a channel-safe slug. The label is lowercased,
// spaces become hyphens and any remaining unsafe characters are stripped.
func Slug(label string) string {
	s := strings.ToLower(strings.TrimSpace(label))
	s = strings.ReplaceAll(s, " ", "-")
	s = slugPattern.ReplaceAllString(s, "")
	s = strings.Trim(s, "-")
	return s
}

// Ticket is a single support ticket, backed by one channel.
type Ticket struct {
	// ID is the number of the ticket. IDs are scoped to the guild and are
	// never reused, so the ticket name stays stable for its lifetime.
	ID int `json:"id"`

	// GuildID is the ID of the guild that the ticket is in.
	GuildID string `json:"guild_id"`

	// ChannelID is the ID of the channel that the ticket is in.
	ChannelID string `json:"channel_id"`

	// UserID is the ID of the user that opened the ticket.
	UserID string `json:"user_id"`

	// Type is the ticket type label chosen at creation.
	Type string `json:"type"`

	// CustomName is the renamed label, if the ticket has been renamed.
	CustomName string `json:"custom_name,omitempty"`

	// CreatedAt is the time that the ticket was opened.
	CreatedAt custom.Datetime `json:"created_at"`
}

// Name returns the channel name for the ticket. For example, ticket 3 of type
// "Bug Report" is named "ticket-3-bug-report".
func (t *Ticket) Name() string {
	label := t.Type
	if t.CustomName != "" {
		label = t.CustomName
	}
	return fmt.Sprintf("ticket-%d-%s", t.ID, Slug(label))
}

// GuildTickets holds the open tickets and the ID counter for one guild.
type GuildTickets struct {
	// LastID is the last allocated ticket ID. It only ever increases.
	LastID int `json:"last_id"`

	// Tickets maps a channel ID to its open ticket.
	Tickets map[string]*Ticket `json:"tickets"`
}

// NewGuildTickets returns an empty ticket registry for a guild.
func NewGuildTickets() *GuildTickets {
	return &GuildTickets{
		Tickets: make(map[string]*Ticket),
	}
}

// TicketsDocument is the on-disk document holding every guild's tickets.
type TicketsDocument struct {
	// Guilds maps a guild ID to its tickets.
	Guilds map[string]*GuildTickets `json:"guilds"`
}

// NewTicketsDocument returns an empty tickets document.
func NewTicketsDocument() *TicketsDocument {
	return &TicketsDocument{
		Guilds: make(map[string]*GuildTickets),
	}
}
