package notify

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"multicleaner/internal/core/domain/model/kernel"
	"multicleaner/internal/core/domain/model/notice"

	"github.com/gorilla/websocket"
	"github.com/puzpuzpuz/xsync/v4"
)

const socketWriteTimeout = 5 * time.Second

// SocketEvent is the frame pushed to live clients.
type SocketEvent struct {
	Kind           string            `json:"kind"`
	Title          string            `json:"title"`
	Body           string            `json:"body"`
	Data           map[string]string `json:"data,omitempty"`
	ActionRequired bool              `json:"actionRequired"`
	ExpiresAt      *time.Time        `json:"expiresAt,omitempty"`
}

type socketClient struct {
	userID kernel.UUID
	conn   *websocket.Conn
	mu     sync.Mutex
}

func (c *socketClient) write(ev SocketEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(socketWriteTimeout)); err != nil {
		return err
	}
	return c.conn.WriteJSON(ev)
}

// SocketHub keeps the open websocket connections per user and pushes messages to
// every connection of the recipient. A user who is offline simply gets nothing.
type SocketHub struct {
	upgrader websocket.Upgrader
	clients  *xsync.Map[uint64, *socketClient]
	nextID   atomic.Uint64
	logger   *slog.Logger
}

func NewSocketHub(logger *slog.Logger) *SocketHub {
	return &SocketHub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: xsync.NewMap[uint64, *socketClient](),
		logger:  logger.With("component", "socket_hub"),
	}
}

// Serve upgrades the request and holds the connection until the client goes away.
// Inbound frames are read and dropped so that close frames are processed.
func (h *SocketHub) Serve(w http.ResponseWriter, r *http.Request, userID kernel.UUID) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	id := h.nextID.Add(1)
	h.clients.Store(id, &socketClient{userID: userID, conn: conn})
	h.logger.InfoContext(r.Context(), "client connected", "user_id", userID.String())

	defer func() {
		h.clients.Delete(id)
		_ = conn.Close()
		h.logger.InfoContext(r.Context(), "client disconnected", "user_id", userID.String())
	}()

	for {
		if _, _, err = conn.ReadMessage(); err != nil {
			return nil
		}
	}
}

func (h *SocketHub) Send(ctx context.Context, msg notice.Message) error {
	ev := SocketEvent{
		Kind:           msg.Kind.String(),
		Title:          msg.Title,
		Body:           msg.Body,
		Data:           msg.Data,
		ActionRequired: msg.ActionRequired,
		ExpiresAt:      msg.ExpiresAt,
	}

	h.clients.Range(func(id uint64, c *socketClient) bool {
		if !c.userID.IsEqual(msg.Recipient) {
			return true
		}
		if err := c.write(ev); err != nil {
			h.logger.WarnContext(ctx, "dropping socket client", "user_id", c.userID.String(), "error", err)
			h.clients.Delete(id)
			_ = c.conn.Close()
		}
		return true
	})
	return nil
}

// Connections reports how many sockets are open.
func (h *SocketHub) Connections() int {
	return h.clients.Size()
}
