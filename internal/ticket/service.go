// Package ticket owns the lifecycle of a support ticket channel: creation,
// claim, membership edits, and closure with transcript capture.
package ticket

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rustytiger/tigerbot/internal/access"
	"github.com/rustytiger/tigerbot/internal/announce"
	"github.com/rustytiger/tigerbot/internal/config"
	"github.com/rustytiger/tigerbot/internal/domain"
	"github.com/rustytiger/tigerbot/internal/events"
	"github.com/rustytiger/tigerbot/internal/platform"
	"github.com/rustytiger/tigerbot/internal/transcript"
	apperrors "github.com/rustytiger/tigerbot/pkg/util/errorutil"
)

// Service coordinates ticket workflows against the platform collaborator.
type Service struct {
	channels   platform.ChannelManager
	messenger  platform.Messenger
	recorder   *transcript.Recorder
	dispatcher events.Dispatcher
	logger     *zap.Logger
	settings   config.Settings
	identity   platform.Identity
	closing    *closeLease
}

// Dependencies bundles collaborators for the ticket service.
type Dependencies struct {
	Channels   platform.ChannelManager
	Messenger  platform.Messenger
	Recorder   *transcript.Recorder
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Settings   config.Settings
	Identity   platform.Identity
}

// NewService constructs the service. Identity resolves the bot's own
// platform identity, always granted management rights on channels it
// creates.
func NewService(deps Dependencies) *Service {
	return &Service{
		channels:   deps.Channels,
		messenger:  deps.Messenger,
		recorder:   deps.Recorder,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		settings:   deps.Settings,
		identity:   deps.Identity,
		closing:    newCloseLease(),
	}
}

// CloseResult reports the outcome of a successful Close.
type CloseResult struct {
	Artifact        *transcript.Artifact
	ArchiveNotified bool
}

// Open creates a private ticket channel for the opener, posts the intro
// message, and returns the new ticket. seq disambiguates the channel name and
// is taken from the triggering interaction's sequence number. Creation
// failures are reported to the invoker, never retried.
func (s *Service) Open(ctx context.Context, opener platform.User, guildID, reason string, seq uint64) (*domain.Ticket, error) {
	if guildID == "" {
		return nil, apperrors.NewGuildContextMissing()
	}
	tcfg := s.settings.Tickets

	// Missing or unresolvable category degrades to a channel without parent.
	parentID := ""
	if tcfg.CategoryID != "" {
		if parent, err := s.channels.Channel(ctx, tcfg.CategoryID); err == nil && parent != nil {
			parentID = parent.ID
		}
	}

	// Unresolvable support role degrades to a ticket private between opener
	// and bot.
	var supportRole *platform.Role
	if tcfg.SupportRoleID != "" {
		if role, err := s.channels.Role(ctx, guildID, tcfg.SupportRoleID); err == nil && role != nil {
			supportRole = role
		}
	}

	name := ChannelName(tcfg.Prefix(), opener.Username, seq)
	overwrites := access.ComputeOverwrites(opener, supportRole, s.identity.Self(), guildID)
	auditReason := fmt.Sprintf("Ticket opened by %s (%s)", opener.Username, opener.ID)

	channel, err := s.channels.CreateTextChannel(ctx, guildID, name, parentID, overwrites, auditReason)
	if err != nil {
		return nil, apperrors.NewChannelCreateFailed(err)
	}

	intro := announce.BrandEmbed(
		fmt.Sprintf("**Ticket opened by %s**\n\n**Reason:**\n%s", opener.Mention(), reason),
		announce.EmbedOptions{Title: "🎟️ New Ticket", Color: "orange"},
		s.settings.Brand,
	)
	if err := s.messenger.SendMessage(ctx, channel.ID, platform.OutboundMessage{Embed: intro}); err != nil {
		s.logger.Warn("intro embed delivery failed", zap.String("channel_id", channel.ID), zap.Error(err))
	}
	mentions := opener.Mention()
	if supportRole != nil {
		mentions += " " + supportRole.Mention()
	}
	if err := s.messenger.SendMessage(ctx, channel.ID, platform.OutboundMessage{Content: mentions}); err != nil {
		s.logger.Warn("mention delivery failed", zap.String("channel_id", channel.ID), zap.Error(err))
	}

	ticket := &domain.Ticket{
		ChannelID:  channel.ID,
		GuildID:    guildID,
		Name:       name,
		OpenerID:   opener.ID,
		OpenerName: opener.Username,
		Status:     domain.TicketStatusOpen,
		CreatedAt:  channel.CreatedAt,
	}
	if supportRole != nil {
		ticket.SupportRoleID = supportRole.ID
	}

	s.publish(ctx, events.Event{
		Type:      events.EventTicketOpened,
		ChannelID: channel.ID,
		ActorID:   opener.ID,
		Payload: events.TicketOpenedPayload{
			TicketName:    name,
			OpenerID:      opener.ID,
			SupportRoleID: ticket.SupportRoleID,
			ReasonPreview: preview(reason, 120),
		},
	})
	return ticket, nil
}

// Claim posts a visible claim notice in the ticket channel. Claiming changes
// no access rules and re-claiming just posts another notice.
func (s *Service) Claim(ctx context.Context, actor platform.User, channel *platform.Channel) error {
	if err := s.guard(channel); err != nil {
		return err
	}
	notice := fmt.Sprintf("🛠️ Ticket claimed by %s.", actor.Mention())
	if err := s.messenger.SendMessage(ctx, channel.ID, platform.OutboundMessage{Content: notice}); err != nil {
		return apperrors.NewInternalError(err)
	}
	s.publish(ctx, events.Event{
		Type:      events.EventTicketClaimed,
		ChannelID: channel.ID,
		ActorID:   actor.ID,
		Payload:   events.TicketClaimedPayload{TicketName: channel.Name},
	})
	return nil
}

// AddMember grants the target user the opener permission bundle on the
// ticket channel.
func (s *Service) AddMember(ctx context.Context, actor platform.User, channel *platform.Channel, target platform.User) error {
	if err := s.guard(channel); err != nil {
		return err
	}
	if err := s.channels.SetMemberOverwrite(ctx, channel.ID, target.ID, access.OpenerBundle, 0); err != nil {
		return apperrors.NewPermissionDenied("Could not add that user to the ticket.")
	}
	s.publish(ctx, events.Event{
		Type:      events.EventTicketMemberAdded,
		ChannelID: channel.ID,
		ActorID:   actor.ID,
		Payload:   events.TicketMemberPayload{TicketName: channel.Name, TargetID: target.ID},
	})
	return nil
}

// RemoveMember clears the target user's explicit overwrite, reverting the
// user to role defaults rather than an explicit deny.
func (s *Service) RemoveMember(ctx context.Context, actor platform.User, channel *platform.Channel, target platform.User) error {
	if err := s.guard(channel); err != nil {
		return err
	}
	if err := s.channels.ClearOverwrite(ctx, channel.ID, target.ID); err != nil {
		return apperrors.NewPermissionDenied("Could not remove that user from the ticket.")
	}
	s.publish(ctx, events.Event{
		Type:      events.EventTicketMemberRemoved,
		ChannelID: channel.ID,
		ActorID:   actor.ID,
		Payload:   events.TicketMemberPayload{TicketName: channel.Name, TargetID: target.ID},
	})
	return nil
}

// Close records the channel's full history, delivers the transcript to the
// archive channel and the ticket channel (each best-effort), then deletes
// the channel. Transcript recording happens before any delivery or deletion;
// a recorder failure aborts the close with the channel intact. Concurrent
// closes on the same channel are rejected.
func (s *Service) Close(ctx context.Context, actor platform.User, channel *platform.Channel, reason string) (*CloseResult, error) {
	if err := s.guard(channel); err != nil {
		return nil, err
	}
	if !s.closing.Acquire(channel.ID) {
		return nil, apperrors.NewTicketBusy()
	}
	defer s.closing.Release(channel.ID)

	artifact, err := s.recorder.Record(ctx, channel)
	if err != nil {
		return nil, apperrors.NewRecorderError(err)
	}

	text := fmt.Sprintf("Ticket **#%s** closed by %s.\n", channel.Name, actor.Mention())
	if reason != "" {
		text += "**Reason:** " + reason
	}
	closeEmbed := announce.BrandEmbed(text,
		announce.EmbedOptions{Title: "✅ Ticket Closed", Color: "green"},
		s.settings.Brand,
	)

	result := &CloseResult{Artifact: artifact}

	// Archive delivery and the final in-channel post are independent
	// best-effort steps; the close proceeds to deletion regardless.
	if archiveID := s.settings.Tickets.TranscriptsChannelID; archiveID != "" {
		if err := s.deliverTranscript(ctx, archiveID, closeEmbed, artifact); err != nil {
			s.logger.Warn("transcript archive delivery failed",
				zap.String("channel_id", archiveID), zap.Error(err))
		} else {
			result.ArchiveNotified = true
		}
	}
	if err := s.deliverTranscript(ctx, channel.ID, closeEmbed, artifact); err != nil {
		s.logger.Warn("final transcript post failed",
			zap.String("channel_id", channel.ID), zap.Error(err))
	}

	auditReason := reason
	if auditReason == "" {
		auditReason = "Ticket closed"
	}
	if err := s.channels.DeleteChannel(ctx, channel.ID, auditReason); err != nil {
		// Transcript exists but the channel survived. Left for an operator;
		// no automatic retry.
		s.logger.Error("channel deletion failed",
			zap.String("channel_id", channel.ID), zap.Error(err))
		return result, apperrors.NewChannelDeleteFailed(err)
	}

	s.publish(ctx, events.Event{
		Type:      events.EventTicketClosed,
		ChannelID: channel.ID,
		ActorID:   actor.ID,
		Payload: events.TicketClosedPayload{
			TicketName:     channel.Name,
			Reason:         reason,
			TranscriptPath: artifact.Path,
			ArchiveSent:    result.ArchiveNotified,
		},
	})
	return result, nil
}

func (s *Service) deliverTranscript(ctx context.Context, channelID string, embed *platform.Embed, artifact *transcript.Artifact) error {
	data, err := os.ReadFile(artifact.Path)
	if err != nil {
		return err
	}
	return s.messenger.SendMessage(ctx, channelID, platform.OutboundMessage{
		Embed: embed,
		File: &platform.FileUpload{
			Name:   artifact.Name,
			Reader: bytes.NewReader(data),
		},
	})
}

func (s *Service) guard(channel *platform.Channel) error {
	if channel == nil || !IsTicketChannel(channel.Name, s.settings.Tickets.Prefix()) {
		return apperrors.NewNotATicketChannel()
	}
	return nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}

func preview(body string, max int) string {
	runes := []rune(body)
	if len(runes) <= max {
		return body
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
