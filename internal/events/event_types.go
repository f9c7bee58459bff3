package events

import (
	"time"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketOpened        EventType = "ticket_opened"
	EventTicketClaimed       EventType = "ticket_claimed"
	EventTicketMemberAdded   EventType = "ticket_member_added"
	EventTicketMemberRemoved EventType = "ticket_member_removed"
	EventTicketClosed        EventType = "ticket_closed"
	EventAnnouncementPosted  EventType = "announcement_posted"
)

// Event represents a domain event emitted by bot services. ChannelID carries
// the ticket channel for ticket events and the target channel for
// announcement events.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ChannelID string      `json:"channel_id"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketOpenedPayload payload.
type TicketOpenedPayload struct {
	TicketName    string `json:"ticket_name"`
	OpenerID      string `json:"opener_id"`
	SupportRoleID string `json:"support_role_id,omitempty"`
	ReasonPreview string `json:"reason_preview"`
}

// TicketClaimedPayload payload.
type TicketClaimedPayload struct {
	TicketName string `json:"ticket_name"`
}

// TicketMemberPayload payload for member add/remove.
type TicketMemberPayload struct {
	TicketName string `json:"ticket_name"`
	TargetID   string `json:"target_id"`
}

// TicketClosedPayload payload.
type TicketClosedPayload struct {
	TicketName     string `json:"ticket_name"`
	Reason         string `json:"reason,omitempty"`
	TranscriptPath string `json:"transcript_path"`
	ArchiveSent    bool   `json:"archive_sent"`
}

// AnnouncementPostedPayload payload.
type AnnouncementPostedPayload struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}
