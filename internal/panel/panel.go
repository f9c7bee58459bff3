// Package panel presents the persistent "open ticket" control and turns
// activations into ticket opens.
package panel

import (
	"context"
	"strings"

	"github.com/rustytiger/tigerbot/internal/announce"
	"github.com/rustytiger/tigerbot/internal/config"
	"github.com/rustytiger/tigerbot/internal/domain"
	"github.com/rustytiger/tigerbot/internal/platform"
	apperrors "github.com/rustytiger/tigerbot/pkg/util/errorutil"
)

// Stable trigger identifiers. The open button and reason modal are re-bound
// to these IDs on every process start, so panels posted by earlier runs keep
// working.
const (
	OpenButtonID  = "ticket_open_button"
	ReasonModalID = "ticket_reason_modal"
	ReasonInputID = "ticket_reason"
)

// MaxReasonLength caps the free-text reason collected by the modal.
const MaxReasonLength = 1000

// Lifecycle is the slice of the ticket service the panel invokes.
type Lifecycle interface {
	Open(ctx context.Context, opener platform.User, guildID, reason string, seq uint64) (*domain.Ticket, error)
}

// Dispatcher is the stateless bridge from the panel control to the ticket
// lifecycle. All required context (acting user, guild) arrives with the
// activation itself.
type Dispatcher struct {
	lifecycle Lifecycle
	settings  config.Settings
}

// NewDispatcher constructs the dispatcher.
func NewDispatcher(lifecycle Lifecycle, settings config.Settings) *Dispatcher {
	return &Dispatcher{lifecycle: lifecycle, settings: settings}
}

// Message composes the panel message posted by ticket_setup: a branded embed
// plus the open button.
func (d *Dispatcher) Message() platform.OutboundMessage {
	tcfg := d.settings.Tickets

	description := tcfg.PanelDescription
	if description == "" {
		description = "Click below to open a ticket."
	}
	title := tcfg.PanelTitle
	if title == "" {
		title = "Need Help?"
	}

	emb := announce.BrandEmbed(
		announce.NormalizeMultiline(description),
		announce.EmbedOptions{Title: title, Color: "orange"},
		d.settings.Brand,
	)
	return platform.OutboundMessage{Embed: emb}
}

// ButtonLabel is the label of the open control.
func (d *Dispatcher) ButtonLabel() string {
	if label := d.settings.Tickets.ButtonLabel; label != "" {
		return label
	}
	return "🎟️ Open Ticket"
}

// HandleOpen validates the collected reason and opens a ticket for the
// acting user. A user may open any number of simultaneous tickets; opens are
// not deduplicated.
func (d *Dispatcher) HandleOpen(ctx context.Context, opener platform.User, guildID, reason string, seq uint64) (*domain.Ticket, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperrors.NewDomainError(apperrors.CodeInternalError, "A brief description is required.", nil)
	}
	if len(reason) > MaxReasonLength {
		reason = reason[:MaxReasonLength]
	}
	return d.lifecycle.Open(ctx, opener, guildID, reason, seq)
}
