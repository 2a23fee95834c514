package orderControllers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/junaidrashid-git/charm-studio-api/models"
)

const (
	writeWait  = 10 * time.Second
	clientSend = 16
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type wsClient struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans newly placed orders out to connected admin dashboards.
// Slow clients drop messages rather than block checkout.
type Hub struct {
	mu      sync.Mutex
	clients map[*wsClient]struct{}
	closed  bool
	logger  *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{clients: make(map[*wsClient]struct{}), logger: logger}
}

type orderEvent struct {
	Type  string       `json:"type"`
	Order models.Order `json:"order"`
}

// Publish implements checkout.Notifier.
func (h *Hub) Publish(order models.Order) {
	h.broadcast(orderEvent{Type: "order_placed", Order: order})
}

// PublishStatus announces a status change.
func (h *Hub) PublishStatus(order models.Order) {
	h.broadcast(orderEvent{Type: "order_status", Order: order})
}

func (h *Hub) broadcast(ev orderEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.logger.Error("marshal order event failed", zap.Error(err))
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for cl := range h.clients {
		select {
		case cl.send <- data:
		default:
			h.logger.Warn("dropping order event for slow client", zap.String("order_ref", ev.Order.OrderRef))
		}
	}
}

// Clients is the number of connected dashboards.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client. Later connections are refused.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for cl := range h.clients {
		delete(h.clients, cl)
		close(cl.send)
		cl.conn.Close()
	}
}

// GET /admin/orders/ws
func (h *Hub) OrderWebSocketHandler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	cl := &wsClient{conn: conn, send: make(chan []byte, clientSend)}
	if !h.add(cl) {
		conn.Close()
		return
	}
	go cl.writeLoop()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.remove(cl)
}

func (h *Hub) add(cl *wsClient) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[cl] = struct{}{}
	return true
}

func (h *Hub) remove(cl *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[cl]; !ok {
		return
	}
	delete(h.clients, cl)
	close(cl.send)
	cl.conn.Close()
}

func (cl *wsClient) writeLoop() {
	for msg := range cl.send {
		_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := cl.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			cl.conn.Close()
			for range cl.send {
			}
			return
		}
	}
}
