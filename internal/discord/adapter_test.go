package discord

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/rustytiger/tigerbot/internal/platform"
	"github.com/rustytiger/tigerbot/internal/transcript"
)

type apiAuthor struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type apiMessage struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Author    apiAuthor `json:"author"`
	Timestamp string    `json:"timestamp"`
}

// historyServer serves the messages endpoint with the API's cursor rules: no
// after parameter returns the newest page in descending order, an after
// parameter returns the messages immediately following it in ascending order.
func historyServer(t *testing.T, total int) *httptest.Server {
	t.Helper()
	msg := func(id int) apiMessage {
		return apiMessage{
			ID:        strconv.Itoa(id),
			Content:   fmt.Sprintf("message %d", id),
			Author:    apiAuthor{ID: "100", Username: "alice"},
			Timestamp: time.Date(2025, 3, 2, 9, 30, 0, 0, time.UTC).Add(time.Duration(id) * time.Second).Format(time.RFC3339),
		}
	}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit := 50
		if v := r.URL.Query().Get("limit"); v != "" {
			limit, _ = strconv.Atoi(v)
		}

		var page []apiMessage
		if afterRaw := r.URL.Query().Get("after"); afterRaw != "" {
			after, _ := strconv.Atoi(afterRaw)
			for id := after + 1; id <= total && len(page) < limit; id++ {
				page = append(page, msg(id))
			}
		} else {
			for id := total; id >= 1 && len(page) < limit; id-- {
				page = append(page, msg(id))
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(page); err != nil {
			t.Errorf("encode page: %v", err)
		}
	}))
}

func newTestAdapter(t *testing.T, srv *httptest.Server) *Adapter {
	t.Helper()
	session, err := discordgo.New("Bot test-token")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	session.Client = srv.Client()

	orig := discordgo.EndpointChannelMessages
	discordgo.EndpointChannelMessages = func(cID string) string {
		return srv.URL + "/channels/" + cID + "/messages"
	}
	t.Cleanup(func() { discordgo.EndpointChannelMessages = orig })

	return NewAdapter(session)
}

func TestMessagesAfter_FirstPageStartsAtOldest(t *testing.T) {
	srv := historyServer(t, 150)
	defer srv.Close()
	adapter := newTestAdapter(t, srv)

	page, err := adapter.MessagesAfter(context.Background(), "555", "", 100)
	if err != nil {
		t.Fatalf("MessagesAfter: %v", err)
	}
	if len(page) != 100 {
		t.Fatalf("got %d messages, want 100", len(page))
	}
	if page[0].ID != "1" || page[99].ID != "100" {
		t.Errorf("first page spans %s..%s, want 1..100", page[0].ID, page[len(page)-1].ID)
	}
}

func TestMessagesAfter_CursorResumesAscending(t *testing.T) {
	srv := historyServer(t, 150)
	defer srv.Close()
	adapter := newTestAdapter(t, srv)

	page, err := adapter.MessagesAfter(context.Background(), "555", "100", 100)
	if err != nil {
		t.Fatalf("MessagesAfter: %v", err)
	}
	if len(page) != 50 {
		t.Fatalf("got %d messages, want 50", len(page))
	}
	if page[0].ID != "101" || page[49].ID != "150" {
		t.Errorf("page spans %s..%s, want 101..150", page[0].ID, page[len(page)-1].ID)
	}
}

func TestRecordOverAdapterCapturesFullHistory(t *testing.T) {
	srv := historyServer(t, 150)
	defer srv.Close()
	adapter := newTestAdapter(t, srv)

	store, err := transcript.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	recorder := transcript.NewRecorder(adapter, store)

	channel := &platform.Channel{
		ID:        "555",
		GuildID:   "1",
		GuildName: "Rusty Tiger",
		Name:      "ticket-alice-0001",
		CreatedAt: time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC),
	}
	artifact, err := recorder.Record(context.Background(), channel)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	// 3 header lines plus one line per message.
	if artifact.Lines != 153 {
		t.Fatalf("transcript has %d lines, want 153", artifact.Lines)
	}
}
