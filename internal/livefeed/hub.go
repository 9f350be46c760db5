package livefeed

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chibox/chibox-server/internal/metrics"
)

// Message is one live feed entry as sent over the socket
type Message struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Text      string      `json:"text,omitempty"`
	Timestamp int64       `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

// Client is a registered feed consumer
type Client struct {
	ID   string
	Send chan Message
}

// Hub fans messages out to every connected client
type Hub struct {
	clients    map[string]*Client
	broadcast  chan Message
	register   chan *Client
	unregister chan string
	shutdown   chan struct{}
	mu         sync.RWMutex
	wg         sync.WaitGroup
	stopOnce   sync.Once
	now        func() time.Time
}

// NewHub creates a hub; call Start before use
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		broadcast:  make(chan Message, BroadcastBufferSize),
		register:   make(chan *Client, ControlBufferSize),
		unregister: make(chan string, ControlBufferSize),
		shutdown:   make(chan struct{}),
		now:        time.Now,
	}
}

// Start runs the broadcast loop
func (h *Hub) Start() {
	h.wg.Add(1)
	go h.run()
}

// Stop ends the loop and closes every client queue
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.shutdown)
		h.wg.Wait()

		h.mu.Lock()
		for id, c := range h.clients {
			close(c.Send)
			delete(h.clients, id)
		}
		h.mu.Unlock()
		metrics.LiveFeedClients.Set(0)
	})
}

func (h *Hub) run() {
	defer h.wg.Done()

	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c.ID] = c
			n := len(h.clients)
			h.mu.Unlock()
			metrics.LiveFeedClients.Set(float64(n))

		case id := <-h.unregister:
			h.mu.Lock()
			if c, ok := h.clients[id]; ok {
				close(c.Send)
				delete(h.clients, id)
			}
			n := len(h.clients)
			h.mu.Unlock()
			metrics.LiveFeedClients.Set(float64(n))

		case msg := <-h.broadcast:
			h.mu.RLock()
			for _, c := range h.clients {
				select {
				case c.Send <- msg:
				default:
				}
			}
			h.mu.RUnlock()

		case <-h.shutdown:
			return
		}
	}
}

// Register adds a client and returns it
func (h *Hub) Register() *Client {
	c := &Client{
		ID:   uuid.New().String(),
		Send: make(chan Message, ClientBufferSize),
	}
	select {
	case h.register <- c:
	case <-h.shutdown:
		close(c.Send)
	}
	return c
}

// Unregister removes a client; its Send channel is closed by the hub
func (h *Hub) Unregister(id string) {
	select {
	case h.unregister <- id:
	case <-h.shutdown:
	}
}

// Broadcast queues a message for all clients without blocking
func (h *Hub) Broadcast(msgType, text string, data interface{}) {
	msg := Message{
		ID:        uuid.New().String(),
		Type:      msgType,
		Text:      text,
		Timestamp: h.now().Unix(),
		Data:      data,
	}

	select {
	case h.broadcast <- msg:
	default:
		slog.Warn(LogMsgBroadcastDropped, "type", msgType)
	}
}

// ClientCount returns the number of registered clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
