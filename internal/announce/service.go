package announce

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rustytiger/tigerbot/internal/config"
	"github.com/rustytiger/tigerbot/internal/events"
	"github.com/rustytiger/tigerbot/internal/platform"
)

// Service posts branded announcements to channels.
type Service struct {
	messenger  platform.Messenger
	dispatcher events.Dispatcher
	logger     *zap.Logger
	settings   config.Settings
}

// NewService constructs the service.
func NewService(messenger platform.Messenger, dispatcher events.Dispatcher, logger *zap.Logger, settings config.Settings) *Service {
	return &Service{
		messenger:  messenger,
		dispatcher: dispatcher,
		logger:     logger,
		settings:   settings,
	}
}

// Post sends one announcement to a single channel, optionally pinging a role.
func (s *Service) Post(ctx context.Context, channelID, text, pingRoleID, buttonsJSON string, opts EmbedOptions) error {
	emb := BrandEmbed(NormalizeMultiline(text), opts, s.settings.Brand)

	msg := platform.OutboundMessage{
		Embed:   emb,
		Buttons: ParseLinkButtons(buttonsJSON, s.settings.Brand),
	}
	if pingRoleID != "" {
		msg.Content = platform.Role{ID: pingRoleID}.Mention()
	}

	if err := s.messenger.SendMessage(ctx, channelID, msg); err != nil {
		return err
	}
	s.publish(ctx, channelID, 1, 0)
	return nil
}

// Broadcast sends one announcement to every configured announcement channel
// and returns the sent/failed tally. Individual delivery failures are logged
// and counted, never fatal.
func (s *Service) Broadcast(ctx context.Context, text, buttonsJSON string, opts EmbedOptions) (sent, failed int) {
	emb := BrandEmbed(NormalizeMultiline(text), opts, s.settings.Brand)
	msg := platform.OutboundMessage{
		Embed:   emb,
		Buttons: ParseLinkButtons(buttonsJSON, s.settings.Brand),
	}

	for _, channelID := range s.settings.AnnouncementChannelIDs {
		if err := s.messenger.SendMessage(ctx, channelID, msg); err != nil {
			s.logger.Warn("announcement delivery failed",
				zap.String("channel_id", channelID), zap.Error(err))
			failed++
			continue
		}
		sent++
	}
	s.publish(ctx, "", sent, failed)
	return sent, failed
}

// HasBroadcastTargets reports whether any announcement channels are
// configured.
func (s *Service) HasBroadcastTargets() bool {
	return len(s.settings.AnnouncementChannelIDs) > 0
}

func (s *Service) publish(ctx context.Context, channelID string, sent, failed int) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventAnnouncementPosted,
		ChannelID: channelID,
		Timestamp: time.Now(),
		Payload: events.AnnouncementPostedPayload{
			Sent:   sent,
			Failed: failed,
		},
	})
}
