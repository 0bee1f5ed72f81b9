// Package chatfeed is the boundary to the chat gateway that authenticates
// against Telegram and relays group messages: a websocket stream for live
// listening and a REST endpoint for fetching single messages by id.
package chatfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"signal_go/internal/domain"
	"signal_go/internal/infra"

	"github.com/gorilla/websocket"
)

const (
	maxRetries  = 10
	readTimeout = 90 * time.Second
)

// frame is the wire shape of one relayed message.
type frame struct {
	ID      int64  `json:"id"`
	Text    string `json:"message"`
	ReplyTo int64  `json:"reply_to_msg_id"`
}

// Worker maintains the live websocket subscription to the signal group.
// Messages are delivered, in order, to the inbox channel.
type Worker struct {
	wsURL   string
	group   string
	session string
	inbox   chan<- domain.Message
	conn    *websocket.Conn
	mu      sync.RWMutex
	writeMu sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewWorker creates a live feed worker for the configured group.
func NewWorker(cfg *infra.Config, inbox chan<- domain.Message) *Worker {
	return &Worker{
		wsURL:   cfg.Telegram.WSURL,
		group:   cfg.Telegram.Group,
		session: cfg.Telegram.Session,
		inbox:   inbox,
	}
}

// Connect starts the connection loop in the background.
func (w *Worker) Connect(ctx context.Context) error {
	ctx, w.cancel = context.WithCancel(ctx)
	w.wg.Add(1)
	go w.connectionLoop(ctx)
	return nil
}

func (w *Worker) connectionLoop(ctx context.Context) {
	defer w.wg.Done()
	retryCount := 0
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := w.connect(ctx); err != nil {
			slog.Warn("feed connection failed", slog.Any("error", err), slog.Int("retry", retryCount))
			delay := infra.CalculateBackoff(retryCount)
			retryCount++
			if retryCount > maxRetries {
				retryCount = 0
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
				continue
			}
		} else {
			retryCount = 0
			w.readLoop(ctx)
		}
	}
}

func (w *Worker) connect(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	header := make(http.Header)
	header.Add("X-Session", w.session)

	conn, _, err := dialer.DialContext(ctx, w.wsURL, header)
	if err != nil {
		return domain.NewFeedError("dial", err)
	}

	w.mu.Lock()
	w.conn = conn
	w.mu.Unlock()

	if err := w.subscribe(); err != nil {
		w.closeConnection()
		return err
	}

	slog.Info("feed connected", slog.String("group", w.group))
	return nil
}

func (w *Worker) subscribe() error {
	msg := map[string]any{"subscribe": w.group}
	b, _ := json.Marshal(msg)
	return w.threadSafeWrite(websocket.TextMessage, b)
}

func (w *Worker) threadSafeWrite(msgType int, data []byte) error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.conn == nil {
		return fmt.Errorf("no conn")
	}
	return w.conn.WriteMessage(msgType, data)
}

func (w *Worker) readLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		w.mu.RLock()
		if w.conn == nil {
			w.mu.RUnlock()
			return
		}
		w.conn.SetReadDeadline(time.Now().Add(readTimeout))
		w.mu.RUnlock()

		_, msg, err := w.conn.ReadMessage()
		if err != nil {
			w.closeConnection()
			return
		}
		w.handleMessage(ctx, msg)
	}
}

func (w *Worker) handleMessage(ctx context.Context, msg []byte) {
	var f frame
	if json.Unmarshal(msg, &f) != nil || f.ID == 0 {
		return
	}

	// Blocking send: the engine must see every message, in order.
	// Cancellation still unblocks it so shutdown never hangs on a full inbox.
	select {
	case w.inbox <- domain.Message{ID: f.ID, Text: f.Text, ReplyTo: f.ReplyTo}:
	case <-ctx.Done():
	}
}

func (w *Worker) closeConnection() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.conn != nil {
		w.conn.Close()
		w.conn = nil
	}
}

// Disconnect stops the worker and waits for the loop to exit.
func (w *Worker) Disconnect() {
	if w.cancel != nil {
		w.cancel()
	}
	w.closeConnection()
	w.wg.Wait()
}
