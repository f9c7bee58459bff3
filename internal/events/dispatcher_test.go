package events

import (
	"context"
	"errors"
	"testing"
)

func TestPublishInvokesSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []string
	d.Subscribe(EventTicketOpened, func(ctx context.Context, e Event) error {
		got = append(got, "a:"+e.ChannelID)
		return nil
	})
	d.Subscribe(EventTicketOpened, func(ctx context.Context, e Event) error {
		got = append(got, "b:"+e.ChannelID)
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventTicketOpened, ChannelID: "555"}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(got) != 2 || got[0] != "a:555" || got[1] != "b:555" {
		t.Errorf("handlers = %v", got)
	}
}

func TestPublishIgnoresOtherTypes(t *testing.T) {
	d := NewInMemoryDispatcher()

	called := false
	d.Subscribe(EventTicketClosed, func(ctx context.Context, e Event) error {
		called = true
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventTicketOpened}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if called {
		t.Error("handler invoked for a different event type")
	}
}

func TestFailingHandlerDoesNotStopOthers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var reached bool
	d.Subscribe(EventTicketClaimed, func(ctx context.Context, e Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventTicketClaimed, func(ctx context.Context, e Event) error {
		reached = true
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventTicketClaimed}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if !reached {
		t.Error("second handler not invoked after first failed")
	}
}
