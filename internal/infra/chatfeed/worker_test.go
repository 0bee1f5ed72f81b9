package chatfeed

import (
	"context"
	"testing"
	"time"

	"signal_go/internal/domain"
	"signal_go/internal/infra"
)

func testWorker(inbox chan domain.Message) *Worker {
	cfg := &infra.Config{}
	cfg.Telegram.WSURL = "wss://localhost/feed"
	cfg.Telegram.Group = "signals"
	cfg.Telegram.Session = "test"
	return NewWorker(cfg, inbox)
}

func TestHandleMessage_Delivers(t *testing.T) {
	inbox := make(chan domain.Message, 1)
	w := testWorker(inbox)

	w.handleMessage(context.Background(), []byte(`{"id":280,"message":"BUY DIRETTA A MERCATO CAD/CHF","reply_to_msg_id":279}`))

	select {
	case msg := <-inbox:
		if msg.ID != 280 || msg.ReplyTo != 279 {
			t.Errorf("unexpected message: %+v", msg)
		}
	default:
		t.Fatal("message not delivered")
	}
}

func TestHandleMessage_DropsMalformedFrames(t *testing.T) {
	inbox := make(chan domain.Message, 1)
	w := testWorker(inbox)

	w.handleMessage(context.Background(), []byte(`not json`))
	w.handleMessage(context.Background(), []byte(`{"message":"no id"}`))

	if len(inbox) != 0 {
		t.Errorf("expected empty inbox, got %d messages", len(inbox))
	}
}

func TestHandleMessage_CancellationUnblocksFullInbox(t *testing.T) {
	// Unbuffered inbox with no consumer: the send can never complete.
	inbox := make(chan domain.Message)
	w := testWorker(inbox)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		w.handleMessage(ctx, []byte(`{"id":1,"message":"x"}`))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handleMessage blocked despite cancelled context")
	}
}
