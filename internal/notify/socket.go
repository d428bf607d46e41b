// Package notify delivers user-facing events to the notifications service
// over a websocket and queues seeded updates for the import service. Both
// channels are fire-and-forget: a lost message must never fail the ingestion
// step that produced it.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	wsMethodSetNotification = "setNotification"

	notificationRejectUpdate  = "rejectUpdate"
	notificationStatusChange  = "restaurantStatus"
	notificationObjectCreated = "objectCreated"
)

type notificationMessage struct {
	Method  string              `json:"method"`
	Payload notificationPayload `json:"payload"`
}

type notificationPayload struct {
	ID   string `json:"id"`
	Data any    `json:"data"`
}

// SocketNotifier pushes notifications over a websocket. The connection is
// dialed lazily and redialed once after a write failure; a message that still
// cannot be written is dropped with a warning.
type SocketNotifier struct {
	logger *zap.Logger
	url    string
	apiKey string

	mu   sync.Mutex
	conn *websocket.Conn
}

func NewSocketNotifier(logger *zap.Logger, url, apiKey string) (*SocketNotifier, error) {
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if url == "" {
		return nil, errors.New("url is required")
	}
	return &SocketNotifier{
		logger: logger.Named("notifier"),
		url:    url,
		apiKey: apiKey,
	}, nil
}

func (n *SocketNotifier) RejectUpdate(ctx context.Context, account, permlink, fieldName string) {
	n.send(ctx, notificationRejectUpdate, map[string]string{
		"creator":         account,
		"author_permlink": permlink,
		"fieldName":       fieldName,
	})
}

func (n *SocketNotifier) StatusChange(ctx context.Context, permlink, status string) {
	n.send(ctx, notificationStatusChange, map[string]string{
		"author_permlink": permlink,
		"newStatus":       status,
	})
}

func (n *SocketNotifier) ObjectCreated(ctx context.Context, creator, permlink, importID string) {
	if importID == "" {
		return
	}
	n.send(ctx, notificationObjectCreated, map[string]string{
		"user":            creator,
		"author_permlink": permlink,
		"importId":        importID,
	})
}

func (n *SocketNotifier) send(ctx context.Context, id string, data any) {
	message, err := json.Marshal(notificationMessage{
		Method:  wsMethodSetNotification,
		Payload: notificationPayload{ID: id, Data: data},
	})
	if err != nil {
		n.logger.Warn("notification not encodable", zap.String("id", id), zap.Error(err))
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if err := n.write(ctx, message); err != nil {
		// The connection may be stale; one redial covers that.
		n.closeLocked()
		if err := n.write(ctx, message); err != nil {
			n.logger.Warn("notification dropped", zap.String("id", id), zap.Error(err))
		}
	}
}

func (n *SocketNotifier) write(ctx context.Context, message []byte) error {
	if n.conn == nil {
		header := http.Header{}
		if n.apiKey != "" {
			header.Set("API_KEY", n.apiKey)
		}
		conn, resp, err := websocket.DefaultDialer.DialContext(ctx, n.url, header)
		if err != nil {
			return err
		}
		if resp != nil {
			_ = resp.Body.Close()
		}
		n.conn = conn
		n.logger.Info("notification socket connected", zap.String("url", n.url))
	}
	return n.conn.WriteMessage(websocket.TextMessage, message)
}

func (n *SocketNotifier) closeLocked() {
	if n.conn == nil {
		return
	}
	_ = n.conn.Close()
	n.conn = nil
}

func (n *SocketNotifier) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closeLocked()
	return nil
}
