package discord

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/rustytiger/tigerbot/internal/config"
	"github.com/rustytiger/tigerbot/internal/observability"
	"github.com/rustytiger/tigerbot/internal/ticket"
)

// gatewaylessServer answers the REST calls a command handler makes without a
// live gateway: channel lookups miss, acknowledgements and followups succeed.
func gatewaylessServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/channels/"):
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"Unknown Channel","code":10003}`))
		case r.Method == http.MethodPost && strings.HasPrefix(r.URL.Path, "/interactions/"):
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodPost && strings.HasPrefix(r.URL.Path, "/webhooks/"):
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id":"1"}`))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
}

func newTestHandler(t *testing.T, srv *httptest.Server) (*Handler, *discordgo.Session, *observability.Metrics) {
	t.Helper()
	session, err := discordgo.New("Bot test-token")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	session.Client = srv.Client()

	origChannel := discordgo.EndpointChannel
	origResponse := discordgo.EndpointInteractionResponse
	origWebhook := discordgo.EndpointWebhookToken
	discordgo.EndpointChannel = func(cID string) string {
		return srv.URL + "/channels/" + cID
	}
	discordgo.EndpointInteractionResponse = func(iID, iToken string) string {
		return srv.URL + "/interactions/" + iID + "/" + iToken + "/callback"
	}
	discordgo.EndpointWebhookToken = func(wID, token string) string {
		return srv.URL + "/webhooks/" + wID + "/" + token
	}
	t.Cleanup(func() {
		discordgo.EndpointChannel = origChannel
		discordgo.EndpointInteractionResponse = origResponse
		discordgo.EndpointWebhookToken = origWebhook
	})

	settings := config.DefaultSettings()
	metrics := observability.NewMetrics()
	tickets := ticket.NewService(ticket.Dependencies{
		Logger:   zap.NewNop(),
		Settings: settings,
	})
	handler := NewHandler(HandlerDependencies{
		Adapter:  NewAdapter(session),
		Tickets:  tickets,
		Settings: settings,
		Logger:   zap.NewNop(),
		Metrics:  metrics,
	})
	return handler, session, metrics
}

func closeInteraction() *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ID:        "9001",
		AppID:     "app",
		Type:      discordgo.InteractionApplicationCommand,
		Data:      discordgo.ApplicationCommandInteractionData{ID: "cmd1", Name: "ticket_close"},
		GuildID:   "1",
		ChannelID: "123",
		Token:     "tok",
		Member:    &discordgo.Member{User: &discordgo.User{ID: "400", Username: "staff1"}},
	}}
}

func TestTicketCloseFailureRecordsErrorOutcome(t *testing.T) {
	srv := gatewaylessServer(t)
	defer srv.Close()
	handler, session, metrics := newTestHandler(t, srv)

	// Channel 123 is not a ticket channel, so the close is rejected after the
	// acknowledgement and surfaces as a followup.
	handler.handleCommand(context.Background(), session, closeInteraction())

	interactions, errs := metrics.Snapshot()
	if interactions["ticket_close|error"] != 1 {
		t.Errorf("ticket_close|error = %d, want 1", interactions["ticket_close|error"])
	}
	if interactions["ticket_close|ok"] != 0 {
		t.Errorf("ticket_close|ok = %d, want 0", interactions["ticket_close|ok"])
	}
	if errs["ticket_close|NOT_A_TICKET_CHANNEL"] != 1 {
		t.Errorf("ticket_close|NOT_A_TICKET_CHANNEL = %d, want 1", errs["ticket_close|NOT_A_TICKET_CHANNEL"])
	}
}
