// Package discord implements the platform collaborator interfaces on top of
// the Discord gateway and wires slash commands and component handlers to the
// bot's services.
package discord

import (
	"context"
	"sort"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"github.com/rustytiger/tigerbot/internal/platform"
)

// Adapter fulfils platform.ChannelManager, platform.Messenger, and
// platform.HistoryReader against a live session.
type Adapter struct {
	session *discordgo.Session
}

// NewAdapter wraps a session.
func NewAdapter(session *discordgo.Session) *Adapter {
	return &Adapter{session: session}
}

// Self returns the bot's own platform identity. Valid once the gateway
// connection is open.
func (a *Adapter) Self() platform.User {
	user := a.session.State.User
	if user == nil {
		return platform.User{}
	}
	return platform.User{ID: user.ID, Username: user.Username}
}

// CreateTextChannel creates a private text channel with the given overwrites.
func (a *Adapter) CreateTextChannel(ctx context.Context, guildID, name, parentID string, overwrites []platform.Overwrite, auditReason string) (*platform.Channel, error) {
	data := discordgo.GuildChannelCreateData{
		Name:                 name,
		Type:                 discordgo.ChannelTypeGuildText,
		ParentID:             parentID,
		PermissionOverwrites: toPermissionOverwrites(overwrites),
	}
	ch, err := a.session.GuildChannelCreateComplex(guildID, data,
		discordgo.WithContext(ctx), discordgo.WithAuditLogReason(auditReason))
	if err != nil {
		return nil, err
	}
	return a.toChannel(ch), nil
}

// DeleteChannel removes the channel.
func (a *Adapter) DeleteChannel(ctx context.Context, channelID, auditReason string) error {
	_, err := a.session.ChannelDelete(channelID,
		discordgo.WithContext(ctx), discordgo.WithAuditLogReason(auditReason))
	return err
}

// SetMemberOverwrite grants a per-user overwrite on one channel.
func (a *Adapter) SetMemberOverwrite(ctx context.Context, channelID, userID string, allow, deny int64) error {
	return a.session.ChannelPermissionSet(channelID, userID,
		discordgo.PermissionOverwriteTypeMember, allow, deny, discordgo.WithContext(ctx))
}

// ClearOverwrite removes a user's explicit overwrite.
func (a *Adapter) ClearOverwrite(ctx context.Context, channelID, userID string) error {
	return a.session.ChannelPermissionDelete(channelID, userID, discordgo.WithContext(ctx))
}

// Channel resolves a channel by id; nil without error when it is unknown.
func (a *Adapter) Channel(ctx context.Context, channelID string) (*platform.Channel, error) {
	ch, err := a.session.State.Channel(channelID)
	if err != nil {
		ch, err = a.session.Channel(channelID, discordgo.WithContext(ctx))
		if err != nil {
			return nil, nil
		}
	}
	return a.toChannel(ch), nil
}

// Role resolves a guild role by id; nil without error when it is unknown.
func (a *Adapter) Role(ctx context.Context, guildID, roleID string) (*platform.Role, error) {
	role, err := a.session.State.Role(guildID, roleID)
	if err == nil {
		return &platform.Role{ID: role.ID, Name: role.Name}, nil
	}
	roles, err := a.session.GuildRoles(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	for _, r := range roles {
		if r.ID == roleID {
			return &platform.Role{ID: r.ID, Name: r.Name}, nil
		}
	}
	return nil, nil
}

// SendMessage delivers one outbound message to a channel.
func (a *Adapter) SendMessage(ctx context.Context, channelID string, msg platform.OutboundMessage) error {
	data := &discordgo.MessageSend{Content: msg.Content}
	if msg.Embed != nil {
		data.Embeds = []*discordgo.MessageEmbed{toMessageEmbed(msg.Embed)}
	}
	if len(msg.Buttons) > 0 {
		data.Components = []discordgo.MessageComponent{linkButtonRow(msg.Buttons)}
	}
	if msg.File != nil {
		data.Files = []*discordgo.File{{
			Name:        msg.File.Name,
			ContentType: "text/plain",
			Reader:      msg.File.Reader,
		}}
	}
	_, err := a.session.ChannelMessageSendComplex(channelID, data, discordgo.WithContext(ctx))
	return err
}

// MessagesAfter fetches one page of channel history oldest first.
func (a *Adapter) MessagesAfter(ctx context.Context, channelID, afterID string, limit int) ([]platform.Message, error) {
	// Without an after cursor the API serves the newest page. Page from the
	// zero snowflake so the first request starts at the channel's oldest
	// message.
	if afterID == "" {
		afterID = "0"
	}
	msgs, err := a.session.ChannelMessages(channelID, limit, "", afterID, "", discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	// The API does not guarantee page order; sort by snowflake ascending.
	sort.Slice(msgs, func(i, j int) bool {
		return snowflake(msgs[i].ID) < snowflake(msgs[j].ID)
	})

	page := make([]platform.Message, 0, len(msgs))
	for _, m := range msgs {
		page = append(page, toMessage(m))
	}
	return page, nil
}

func (a *Adapter) toChannel(ch *discordgo.Channel) *platform.Channel {
	created, _ := discordgo.SnowflakeTimestamp(ch.ID)
	out := &platform.Channel{
		ID:        ch.ID,
		GuildID:   ch.GuildID,
		Name:      ch.Name,
		CreatedAt: created,
	}
	if guild, err := a.session.State.Guild(ch.GuildID); err == nil {
		out.GuildName = guild.Name
	} else if guild, err := a.session.Guild(ch.GuildID); err == nil {
		out.GuildName = guild.Name
	}
	return out
}

func toMessage(m *discordgo.Message) platform.Message {
	msg := platform.Message{
		ID:        m.ID,
		Timestamp: m.Timestamp,
		Content:   m.Content,
	}
	if m.Author != nil {
		msg.Author = platform.User{ID: m.Author.ID, Username: m.Author.Username}
	}
	for _, e := range m.Embeds {
		msg.Embeds = append(msg.Embeds, platform.EmbedBlock{
			Title:       e.Title,
			Description: e.Description,
		})
	}
	for _, att := range m.Attachments {
		msg.Attachments = append(msg.Attachments, platform.Attachment{URL: att.URL})
	}
	return msg
}

func toPermissionOverwrites(overwrites []platform.Overwrite) []*discordgo.PermissionOverwrite {
	out := make([]*discordgo.PermissionOverwrite, 0, len(overwrites))
	for _, ow := range overwrites {
		kind := discordgo.PermissionOverwriteTypeRole
		if ow.Kind == platform.PrincipalMember {
			kind = discordgo.PermissionOverwriteTypeMember
		}
		out = append(out, &discordgo.PermissionOverwrite{
			ID:    ow.PrincipalID,
			Type:  kind,
			Allow: ow.Allow,
			Deny:  ow.Deny,
		})
	}
	return out
}

func toMessageEmbed(emb *platform.Embed) *discordgo.MessageEmbed {
	out := &discordgo.MessageEmbed{
		Title:       emb.Title,
		Description: emb.Description,
		URL:         emb.URL,
		Color:       emb.Color,
	}
	if !emb.Timestamp.IsZero() {
		out.Timestamp = emb.Timestamp.Format("2006-01-02T15:04:05Z07:00")
	}
	if emb.AuthorName != "" {
		out.Author = &discordgo.MessageEmbedAuthor{Name: emb.AuthorName, IconURL: emb.AuthorIcon}
	}
	if emb.FooterText != "" {
		out.Footer = &discordgo.MessageEmbedFooter{Text: emb.FooterText}
	}
	if emb.ImageURL != "" {
		out.Image = &discordgo.MessageEmbedImage{URL: emb.ImageURL}
	}
	if emb.ThumbnailURL != "" {
		out.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: emb.ThumbnailURL}
	}
	return out
}

func linkButtonRow(buttons []platform.LinkButton) discordgo.ActionsRow {
	row := discordgo.ActionsRow{}
	for _, b := range buttons {
		row.Components = append(row.Components, discordgo.Button{
			Label: b.Label,
			Style: discordgo.LinkButton,
			URL:   b.URL,
		})
	}
	return row
}

func snowflake(id string) uint64 {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// ensure the adapter satisfies the collaborator contracts.
var (
	_ platform.ChannelManager = (*Adapter)(nil)
	_ platform.Messenger      = (*Adapter)(nil)
	_ platform.HistoryReader  = (*Adapter)(nil)
	_ platform.Identity       = (*Adapter)(nil)
)
