package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/conneroisu/pagekit/internal/logging"
	"github.com/conneroisu/pagekit/internal/validation"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

var (
	// Time allowed for the peer to answer a ping.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
)

// Client is one connected live-reload browser.
type Client struct {
	conn *websocket.Conn
	send chan []byte
	hub  *Hub
}

// Hub fans reload messages out to connected clients.
type Hub struct {
	clients      map[*Client]struct{}
	clientsMutex sync.RWMutex
	broadcast    chan []byte
	register     chan *Client
	unregister   chan *Client
	done         chan struct{}
	doneOnce     sync.Once
	logger       logging.Logger
}

// NewHub creates a hub; call Run to start it.
func NewHub(logger logging.Logger) *Hub {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Hub{
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// ClientCount returns the number of registered clients.
func (h *Hub) ClientCount() int {
	h.clientsMutex.RLock()
	defer h.clientsMutex.RUnlock()
	return len(h.clients)
}

// Broadcast queues message for every client. When the queue is full the
// message is dropped; a later change triggers another reload anyway.
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		h.logger.Debug(context.Background(), "broadcast queue full, dropping message")
	}
}

// Run processes registrations and broadcasts until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.doneOnce.Do(func() { close(h.done) })
			h.CloseAll()
			return

		case client := <-h.register:
			h.clientsMutex.Lock()
			h.clients[client] = struct{}{}
			count := len(h.clients)
			h.clientsMutex.Unlock()
			h.logger.Debug(ctx, "client connected", "clients", count)

		case client := <-h.unregister:
			h.remove(client)

		case message := <-h.broadcast:
			var failed []*Client
			h.clientsMutex.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					failed = append(failed, client)
				}
			}
			h.clientsMutex.RUnlock()

			for _, client := range failed {
				h.remove(client)
			}
		}
	}
}

// CloseAll disconnects every client.
func (h *Hub) CloseAll() {
	h.clientsMutex.Lock()
	defer h.clientsMutex.Unlock()

	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
}

func (h *Hub) remove(client *Client) {
	h.clientsMutex.Lock()
	defer h.clientsMutex.Unlock()

	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)
	h.logger.Debug(context.Background(), "client disconnected", "clients", len(h.clients))
}

func (s *PageServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if err := validation.ValidateOrigin(r.Header.Get("Origin"), r.Host); err != nil {
		s.logger.Warn(r.Context(), err, "websocket origin rejected", "origin", r.Header.Get("Origin"))
		http.Error(w, "Origin not allowed", http.StatusForbidden)
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.logger.Warn(r.Context(), err, "websocket upgrade failed")
		return
	}

	client := &Client{
		conn: conn,
		send: make(chan []byte, 16),
		hub:  s.hub,
	}

	go client.writePump()
	go client.readPump()

	select {
	case s.hub.register <- client:
	case <-s.hub.done:
		close(client.send)
	}
}

// readPump discards client messages and detects disconnects. Browsers never
// send on this connection, so reads only end on close or hub shutdown;
// liveness is checked by the pings in writePump.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	c.conn.SetReadLimit(maxMessageSize)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-c.hub.done:
			cancel()
		case <-ctx.Done():
		}
	}()

	for {
		if _, _, err := c.conn.Read(ctx); err != nil {
			status := websocket.CloseStatus(err)
			if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway {
				c.hub.logger.Debug(context.Background(), "websocket read ended", "error", err.Error())
			}
			return
		}
	}
}

// writePump sends queued messages and periodic pings.
func (c *Client) writePump() {
	pingTimeout := pongWait
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}
			ctx, cancel := context.WithTimeout(context.Background(), writeWait)
			err := c.conn.Write(ctx, websocket.MessageText, message)
			cancel()
			if err != nil {
				return
			}

		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
			err := c.conn.Ping(ctx)
			cancel()
			if err != nil {
				return
			}
		}
	}
}
