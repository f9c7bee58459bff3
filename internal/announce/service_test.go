package announce

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/rustytiger/tigerbot/internal/config"
	"github.com/rustytiger/tigerbot/internal/platform"
)

type fakeMessenger struct {
	sent      map[string]platform.OutboundMessage
	failFor   map[string]error
	sendOrder []string
}

func newFakeMessenger() *fakeMessenger {
	return &fakeMessenger{
		sent:    make(map[string]platform.OutboundMessage),
		failFor: make(map[string]error),
	}
}

func (f *fakeMessenger) SendMessage(ctx context.Context, channelID string, msg platform.OutboundMessage) error {
	f.sendOrder = append(f.sendOrder, channelID)
	if err := f.failFor[channelID]; err != nil {
		return err
	}
	f.sent[channelID] = msg
	return nil
}

func testAnnounceSettings() config.Settings {
	return config.Settings{
		Brand: config.BrandConfig{
			Name:       "Rusty Tiger",
			Color:      "#d97706",
			FooterText: "Stay Rusty.",
		},
		AnnouncementChannelIDs: []string{"100", "200", "300"},
	}
}

func TestPost(t *testing.T) {
	m := newFakeMessenger()
	svc := NewService(m, nil, zap.NewNop(), testAnnounceSettings())

	err := svc.Post(context.Background(), "42", `hello\nworld`, "role9", "", EmbedOptions{})
	if err != nil {
		t.Fatalf("Post: %v", err)
	}

	msg, ok := m.sent["42"]
	if !ok {
		t.Fatal("nothing sent to channel 42")
	}
	if msg.Embed == nil || msg.Embed.Description != "hello\nworld" {
		t.Errorf("embed = %+v", msg.Embed)
	}
	if msg.Content != "<@&role9>" {
		t.Errorf("content = %q, want role mention", msg.Content)
	}
}

func TestPost_NoPing(t *testing.T) {
	m := newFakeMessenger()
	svc := NewService(m, nil, zap.NewNop(), testAnnounceSettings())

	if err := svc.Post(context.Background(), "42", "hi", "", "", EmbedOptions{}); err != nil {
		t.Fatalf("Post: %v", err)
	}
	if got := m.sent["42"].Content; got != "" {
		t.Errorf("content = %q, want empty", got)
	}
}

func TestPost_SendFailure(t *testing.T) {
	m := newFakeMessenger()
	m.failFor["42"] = errors.New("boom")
	svc := NewService(m, nil, zap.NewNop(), testAnnounceSettings())

	if err := svc.Post(context.Background(), "42", "hi", "", "", EmbedOptions{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestBroadcast(t *testing.T) {
	m := newFakeMessenger()
	m.failFor["200"] = errors.New("missing access")
	svc := NewService(m, nil, zap.NewNop(), testAnnounceSettings())

	sent, failed := svc.Broadcast(context.Background(), "heads up", "", EmbedOptions{})
	if sent != 2 || failed != 1 {
		t.Fatalf("sent=%d failed=%d, want 2/1", sent, failed)
	}
	if got := strings.Join(m.sendOrder, ","); got != "100,200,300" {
		t.Errorf("send order = %q", got)
	}
	if _, ok := m.sent["200"]; ok {
		t.Error("failed channel recorded a delivery")
	}
}

func TestBroadcast_NoTargets(t *testing.T) {
	settings := testAnnounceSettings()
	settings.AnnouncementChannelIDs = nil
	svc := NewService(newFakeMessenger(), nil, zap.NewNop(), settings)

	if svc.HasBroadcastTargets() {
		t.Error("HasBroadcastTargets = true with no channels")
	}
	sent, failed := svc.Broadcast(context.Background(), "hi", "", EmbedOptions{})
	if sent != 0 || failed != 0 {
		t.Errorf("sent=%d failed=%d, want 0/0", sent, failed)
	}
}
