package entities

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "lowercases",
			in:   "Bug Report",
			want: "bug-report",
		},
		{
			name: "strips punctuation",
			in:   "What?! A *weird* name",
			want: "what-a-weird-name",
		},
		{
			name: "trims hyphens",
			in:   "  --edges--  ",
			want: "edges",
		},
		{
			name: "empty",
			in:   "!!!",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Slug(tt.in))
		})
	}
}

func TestTicket_Name(t *testing.T) {
	ticket := &Ticket{
		ID:   7,
		Type: "Bug Report",
	}
	require.Equal(t, "ticket-7-bug-report", ticket.Name())

	// A custom name set by a rename wins over the ticket type.
	ticket.CustomName = "billing-issue"
	require.Equal(t, "ticket-7-billing-issue", ticket.Name())
}
