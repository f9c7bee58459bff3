package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets. A claim is an
// annotation on an open ticket, not a distinct state; a closed ticket's
// channel no longer exists.
type TicketStatus string

const (
	TicketStatusOpen   TicketStatus = "OPEN"
	TicketStatusClosed TicketStatus = "CLOSED"
)

// Ticket is a private support channel between an opener and staff. It has no
// existence before its channel is created and none after deletion; the only
// durable record of a closed ticket is its transcript artifact.
type Ticket struct {
	ChannelID     string
	GuildID       string
	Name          string
	OpenerID      string
	OpenerName    string
	SupportRoleID string
	ClaimedBy     string
	Status        TicketStatus
	CreatedAt     time.Time
}
