// Package platform defines the narrow surface the bot consumes from the chat
// platform: channel management, messaging, and history reads. The ticket core
// depends only on these interfaces; the discord package provides the real
// implementation.
package platform

import (
	"context"
	"io"
	"time"
)

// Permission bits follow the platform's wire values so overwrites pass
// through the adapter unchanged.
const (
	PermManageChannels     int64 = 1 << 4
	PermViewChannel        int64 = 1 << 10
	PermSendMessages       int64 = 1 << 11
	PermManageMessages     int64 = 1 << 13
	PermEmbedLinks         int64 = 1 << 14
	PermAttachFiles        int64 = 1 << 15
	PermReadMessageHistory int64 = 1 << 16
)

// PrincipalKind distinguishes overwrite targets.
type PrincipalKind int

const (
	PrincipalRole PrincipalKind = iota
	PrincipalMember
)

// Overwrite is a per-principal permission bundle applied to one channel,
// overriding guild-level defaults.
type Overwrite struct {
	PrincipalID string
	Kind        PrincipalKind
	Allow       int64
	Deny        int64
}

// User identifies a platform user.
type User struct {
	ID       string
	Username string
}

// Mention renders the user as a ping.
func (u User) Mention() string {
	return "<@" + u.ID + ">"
}

// Role identifies a guild role.
type Role struct {
	ID   string
	Name string
}

// Mention renders the role as a ping.
func (r Role) Mention() string {
	return "<@&" + r.ID + ">"
}

// Channel describes a text channel.
type Channel struct {
	ID        string
	GuildID   string
	GuildName string
	Name      string
	CreatedAt time.Time
}

// Mention renders the channel as a clickable reference.
func (c Channel) Mention() string {
	return "<#" + c.ID + ">"
}

// EmbedBlock is one embedded-content block carried by a message.
type EmbedBlock struct {
	Title       string
	Description string
}

// Attachment references an uploaded file.
type Attachment struct {
	URL string
}

// Message is one entry of a channel's history.
type Message struct {
	ID          string
	Author      User
	Timestamp   time.Time
	Content     string
	Embeds      []EmbedBlock
	Attachments []Attachment
}

// Embed is an outbound styled message block.
type Embed struct {
	Title        string
	Description  string
	URL          string
	Color        int
	Timestamp    time.Time
	AuthorName   string
	AuthorIcon   string
	FooterText   string
	ImageURL     string
	ThumbnailURL string
}

// LinkButton is an outbound URL button.
type LinkButton struct {
	Label string
	URL   string
}

// FileUpload attaches a local file to an outbound message.
type FileUpload struct {
	Name   string
	Reader io.Reader
}

// OutboundMessage bundles everything a single send can carry.
type OutboundMessage struct {
	Content string
	Embed   *Embed
	Buttons []LinkButton
	File    *FileUpload
}

// Identity exposes the bot's own platform identity, the service principal.
// Resolved lazily since the identity is only known once the gateway
// connection is up.
type Identity interface {
	Self() User
}

// ChannelManager creates, mutates, and deletes channels.
type ChannelManager interface {
	// CreateTextChannel creates a text channel under parentID (empty for no
	// parent) with the given overwrites and audit reason.
	CreateTextChannel(ctx context.Context, guildID, name, parentID string, overwrites []Overwrite, auditReason string) (*Channel, error)

	// DeleteChannel removes the channel with an audit reason.
	DeleteChannel(ctx context.Context, channelID, auditReason string) error

	// SetMemberOverwrite grants a per-user overwrite on one channel.
	SetMemberOverwrite(ctx context.Context, channelID, userID string, allow, deny int64) error

	// ClearOverwrite removes a user's explicit overwrite, reverting the user
	// to role defaults rather than an explicit deny.
	ClearOverwrite(ctx context.Context, channelID, userID string) error

	// Channel resolves a channel by id, nil when it does not exist.
	Channel(ctx context.Context, channelID string) (*Channel, error)

	// Role resolves a guild role by id, nil when it does not exist.
	Role(ctx context.Context, guildID, roleID string) (*Role, error)
}

// Messenger delivers messages to channels.
type Messenger interface {
	SendMessage(ctx context.Context, channelID string, msg OutboundMessage) error
}

// HistoryReader pulls one page of a channel's history at a time. Messages are
// returned oldest first; afterID is the last message id of the previous page,
// empty for the first page. An empty result ends iteration.
type HistoryReader interface {
	MessagesAfter(ctx context.Context, channelID, afterID string, limit int) ([]Message, error)
}
