// Package service hosts cross-cutting services that sit behind the event
// dispatcher.
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/rustytiger/tigerbot/internal/events"
)

// AuditService writes an operator-facing audit trail for ticket and
// announcement events. Side-channel failures in the core (archive delivery,
// deletion) are silent to the invoker, so this trail is where an operator
// sees them alongside the successes.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventTicketOpened, a.handleEvent)
	a.dispatcher.Subscribe(events.EventTicketClaimed, a.handleEvent)
	a.dispatcher.Subscribe(events.EventTicketMemberAdded, a.handleEvent)
	a.dispatcher.Subscribe(events.EventTicketMemberRemoved, a.handleEvent)
	a.dispatcher.Subscribe(events.EventTicketClosed, a.handleEvent)
	a.dispatcher.Subscribe(events.EventAnnouncementPosted, a.handleEvent)
}

func (a *AuditService) handleEvent(ctx context.Context, event events.Event) error {
	a.logger.Info("audit",
		zap.String("event", string(event.Type)),
		zap.String("event_id", event.ID),
		zap.String("channel_id", event.ChannelID),
		zap.String("actor_id", event.ActorID),
		zap.Any("payload", event.Payload))
	return nil
}
