package websocket

import (
	"encoding/json"
	"sync"

	"github.com/ikkim/jewel-storefront/internal/events"
	"github.com/ikkim/jewel-storefront/pkg/logger"
)

// Event types pushed to views
const (
	EventStorageUpdate = "storage_update"
	EventSlide         = "slide"
)

// Event is the JSON frame sent to views
type Event struct {
	Type  string `json:"type"`
	Key   string `json:"key,omitempty"`
	Index *int   `json:"index,omitempty"`
}

// BroadcastMessage is a frame addressed to one session, or to every
// session when SessionID is empty
type BroadcastMessage struct {
	SessionID string
	Message   []byte
}

// Hub tracks open views per session. The client map is owned by Run.
type Hub struct {
	broker events.Broker

	// session id -> open views
	clients map[string][]*Client

	// one broker subscription per session with open views
	subscriptions map[string]*events.Subscription

	register   chan *Client
	unregister chan *Client
	broadcast  chan *BroadcastMessage
	quit       chan struct{}

	mu sync.RWMutex
}

func NewHub(broker events.Broker) *Hub {
	return &Hub{
		broker:        broker,
		clients:       make(map[string][]*Client),
		subscriptions: make(map[string]*events.Subscription),
		register:      make(chan *Client, 256),
		unregister:    make(chan *Client, 256),
		broadcast:     make(chan *BroadcastMessage, 1024),
		quit:          make(chan struct{}),
	}
}

// Run processes registrations and broadcasts until Stop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)

		case client := <-h.unregister:
			h.removeClient(client)

		case message := <-h.broadcast:
			h.deliver(message)

		case <-h.quit:
			h.shutdown()
			return
		}
	}
}

// Stop ends Run, closing every client and subscription
func (h *Hub) Stop() {
	close(h.quit)
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client.SessionID] = append(h.clients[client.SessionID], client)
	views := len(h.clients[client.SessionID])
	_, subscribed := h.subscriptions[client.SessionID]
	h.mu.Unlock()

	if !subscribed {
		h.subscribe(client.SessionID)
	}

	logger.Info("WebSocket client registered", map[string]interface{}{
		"session_id": client.SessionID,
		"views":      views,
	})
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	clientList, ok := h.clients[client.SessionID]
	if !ok {
		h.mu.Unlock()
		return
	}

	found := false
	remaining := make([]*Client, 0, len(clientList))
	for _, c := range clientList {
		if c == client {
			found = true
			continue
		}
		remaining = append(remaining, c)
	}
	if !found {
		h.mu.Unlock()
		return
	}

	var sub *events.Subscription
	if len(remaining) == 0 {
		delete(h.clients, client.SessionID)
		sub = h.subscriptions[client.SessionID]
		delete(h.subscriptions, client.SessionID)
	} else {
		h.clients[client.SessionID] = remaining
	}
	close(client.Send)
	h.mu.Unlock()

	if sub != nil {
		sub.Close()
	}

	logger.Info("WebSocket client unregistered", map[string]interface{}{
		"session_id": client.SessionID,
		"views":      len(remaining),
	})
}

func (h *Hub) deliver(message *BroadcastMessage) {
	h.mu.RLock()
	var targets []*Client
	if message.SessionID == "" {
		for _, clientList := range h.clients {
			targets = append(targets, clientList...)
		}
	} else {
		targets = append(targets, h.clients[message.SessionID]...)
	}
	h.mu.RUnlock()

	for _, client := range targets {
		select {
		case client.Send <- message.Message:
		default:
			// slow view: drop it asynchronously
			go h.Unregister(client)
			logger.Warn("Client send buffer full, disconnecting", map[string]interface{}{
				"session_id": client.SessionID,
			})
		}
	}
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, sub := range h.subscriptions {
		sub.Close()
	}
	for _, clientList := range h.clients {
		for _, client := range clientList {
			close(client.Send)
		}
	}
	h.clients = make(map[string][]*Client)
	h.subscriptions = make(map[string]*events.Subscription)
}

// subscribe forwards the session's store notifications to its views
func (h *Hub) subscribe(sessionID string) {
	sub, err := h.broker.Subscribe(sessionID)
	if err != nil {
		logger.Error("Failed to subscribe to session notifications", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return
	}

	h.mu.Lock()
	h.subscriptions[sessionID] = sub
	h.mu.Unlock()

	go func() {
		for n := range sub.C {
			h.SendToSession(n.SessionID, Event{Type: EventStorageUpdate, Key: n.Key})
		}
	}()
}

// SendToSession queues an event for every open view of a session
func (h *Hub) SendToSession(sessionID string, event Event) error {
	return h.enqueue(sessionID, event)
}

// SendToAll queues an event for every open view
func (h *Hub) SendToAll(event Event) error {
	return h.enqueue("", event)
}

func (h *Hub) enqueue(sessionID string, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal event", err)
		return err
	}

	select {
	case h.broadcast <- &BroadcastMessage{SessionID: sessionID, Message: data}:
	default:
		// dropping is fine: views re-read on the next event
		logger.Warn("Broadcast channel full, event dropped", map[string]interface{}{
			"session_id": sessionID,
			"type":       event.Type,
		})
	}
	return nil
}

// Register adds a client. False once the hub has stopped; the caller owns
// the connection then.
func (h *Hub) Register(client *Client) bool {
	select {
	case <-h.quit:
		return false
	default:
	}

	select {
	case h.register <- client:
		return true
	case <-h.quit:
		return false
	}
}

// Unregister removes a client
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.quit:
	}
}

// ViewCount reports the open views of a session
func (h *Hub) ViewCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionID])
}
