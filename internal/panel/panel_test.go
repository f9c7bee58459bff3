package panel

import (
	"context"
	"strings"
	"testing"

	"github.com/rustytiger/tigerbot/internal/config"
	"github.com/rustytiger/tigerbot/internal/domain"
	"github.com/rustytiger/tigerbot/internal/platform"
)

type fakeLifecycle struct {
	opened []string
	err    error
}

func (f *fakeLifecycle) Open(ctx context.Context, opener platform.User, guildID, reason string, seq uint64) (*domain.Ticket, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.opened = append(f.opened, reason)
	return &domain.Ticket{ChannelID: "555", GuildID: guildID, OpenerID: opener.ID}, nil
}

func TestHandleOpen(t *testing.T) {
	lc := &fakeLifecycle{}
	d := NewDispatcher(lc, config.DefaultSettings())

	tk, err := d.HandleOpen(context.Background(), platform.User{ID: "100"}, "1", "  billing issue  ", 1)
	if err != nil {
		t.Fatalf("HandleOpen: %v", err)
	}
	if tk.ChannelID != "555" {
		t.Errorf("channel = %q", tk.ChannelID)
	}
	if len(lc.opened) != 1 || lc.opened[0] != "billing issue" {
		t.Errorf("reason = %v, want trimmed", lc.opened)
	}
}

func TestHandleOpen_EmptyReason(t *testing.T) {
	lc := &fakeLifecycle{}
	d := NewDispatcher(lc, config.DefaultSettings())

	_, err := d.HandleOpen(context.Background(), platform.User{ID: "100"}, "1", "   ", 1)
	if err == nil {
		t.Fatal("expected error for blank reason")
	}
	if len(lc.opened) != 0 {
		t.Errorf("lifecycle invoked %d times, want 0", len(lc.opened))
	}
}

func TestHandleOpen_TruncatesLongReason(t *testing.T) {
	lc := &fakeLifecycle{}
	d := NewDispatcher(lc, config.DefaultSettings())

	long := strings.Repeat("x", MaxReasonLength+500)
	if _, err := d.HandleOpen(context.Background(), platform.User{ID: "100"}, "1", long, 1); err != nil {
		t.Fatalf("HandleOpen: %v", err)
	}
	if got := len(lc.opened[0]); got != MaxReasonLength {
		t.Errorf("reason length = %d, want %d", got, MaxReasonLength)
	}
}

func TestMessage_Defaults(t *testing.T) {
	d := NewDispatcher(&fakeLifecycle{}, config.Settings{})

	msg := d.Message()
	if msg.Embed == nil {
		t.Fatal("no embed")
	}
	if msg.Embed.Title != "Need Help?" {
		t.Errorf("title = %q", msg.Embed.Title)
	}
	if msg.Embed.Description != "Click below to open a ticket." {
		t.Errorf("description = %q", msg.Embed.Description)
	}
	if msg.Embed.Color != 0xD97706 {
		t.Errorf("color = %#x", msg.Embed.Color)
	}
}

func TestMessage_Configured(t *testing.T) {
	settings := config.Settings{
		Tickets: config.TicketsConfig{
			PanelTitle:       "Support Desk",
			PanelDescription: `Need a hand?\nOpen a ticket.`,
		},
	}
	d := NewDispatcher(&fakeLifecycle{}, settings)

	msg := d.Message()
	if msg.Embed.Title != "Support Desk" {
		t.Errorf("title = %q", msg.Embed.Title)
	}
	if msg.Embed.Description != "Need a hand?\nOpen a ticket." {
		t.Errorf("description = %q", msg.Embed.Description)
	}
}

func TestButtonLabel(t *testing.T) {
	d := NewDispatcher(&fakeLifecycle{}, config.Settings{})
	if got := d.ButtonLabel(); got != "🎟️ Open Ticket" {
		t.Errorf("default label = %q", got)
	}

	d = NewDispatcher(&fakeLifecycle{}, config.Settings{
		Tickets: config.TicketsConfig{ButtonLabel: "Get Help"},
	})
	if got := d.ButtonLabel(); got != "Get Help" {
		t.Errorf("configured label = %q", got)
	}
}
