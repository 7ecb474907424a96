package notify

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"culinary-be/internal/logger"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	SessionQueryParam = "session_id"
	SessionHeader     = "X-Session-ID"

	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	sendBuffer = 64
)

// Hub pushes notifications to the websocket clients of each session.
type Hub struct {
	mu       sync.RWMutex
	clients  map[string]map[*client]struct{}
	upgrader websocket.Upgrader
}

type client struct {
	hub       *Hub
	sessionID string
	conn      *websocket.Conn
	send      chan []byte
}

// NewHub accepts upgrades from allowedOrigin, from any origin when it is "*",
// and from clients that send no Origin header.
func NewHub(allowedOrigin string) *Hub {
	return &Hub{
		clients: make(map[string]map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowedOrigin == "*" || origin == allowedOrigin
			},
		},
	}
}

// For returns a Notifier bound to one session.
func (h *Hub) For(sessionID string) Notifier {
	return NotifierFunc(func(n Notification) { h.Publish(sessionID, n) })
}

// Publish sends n to every client of the session. Slow clients drop messages.
func (h *Hub) Publish(sessionID string, n Notification) {
	data, err := json.Marshal(n)
	if err != nil {
		logger.L().Error("marshal notification failed", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients[sessionID] {
		select {
		case c.send <- data:
		default:
			logger.L().Warn("websocket buffer full, dropping notification",
				zap.String("component", "notify"),
				zap.String("session_id", sessionID),
			)
		}
	}
}

func (h *Hub) ClientCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionID])
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sid, set := range h.clients {
		for c := range set {
			close(c.send)
		}
		delete(h.clients, sid)
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logger.FromCtx(r.Context()).With(zap.String("component", "notify"))

	sessionID := r.URL.Query().Get(SessionQueryParam)
	if sessionID == "" {
		sessionID = r.Header.Get(SessionHeader)
	}
	if sessionID == "" {
		http.Error(w, "session_id is required", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &client{
		hub:       h,
		sessionID: sessionID,
		conn:      conn,
		send:      make(chan []byte, sendBuffer),
	}
	h.register(c)
	log.Info("websocket client connected", zap.String("session_id", sessionID))

	go c.writePump()
	go c.readPump()
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.clients[c.sessionID]
	if !ok {
		set = make(map[*client]struct{})
		h.clients[c.sessionID] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.clients[c.sessionID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	close(c.send)
	if len(set) == 0 {
		delete(h.clients, c.sessionID)
	}
}

// readPump only services control frames; clients never send notifications.
func (c *client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.L().Warn("websocket read error", zap.Error(err))
			}
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
