package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/dom/hero-companion/internal/service"
)

const snapshotTimeout = 5 * time.Second

// EventSource supplies the live event data pushed to clients
type EventSource interface {
	EventBoard(ctx context.Context) ([]service.EventView, error)
	ResetCountdown() string
}

type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	stop       chan struct{}
	stopOnce   sync.Once
	done       chan struct{} // closed when Run() exits
	stopped    bool
	source     EventSource
	mu         sync.RWMutex
}

func NewHub(source EventSource) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 16),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
		source:     source,
	}
}

func (h *Hub) Run() {
	defer close(h.done) // Signal that Run() has exited

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			h.stopped = true
			for client := range h.clients {
				client.Close()
			}
			h.clients = make(map[*Client]bool)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if !h.stopped {
				h.clients[client] = true
			}
			h.mu.Unlock()

			// New clients get the current state right away
			go h.sync(client)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Close()
			}
			h.mu.Unlock()

		case data := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				if !client.trySend(data) {
					// Slow consumer, drop it
					delete(h.clients, client)
					client.Close()
				}
			}
			h.mu.Unlock()
		}
	}
}

// Stop gracefully shuts down the hub and closes every client.
// It blocks until Run has exited.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.stop) })
	<-h.done // Wait for Run() to finish
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast sends msg to every connected client
func (h *Hub) Broadcast(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("ERROR [hub.Broadcast] failed to marshal message: %v", err)
		return
	}
	select {
	case h.broadcast <- data:
	case <-h.done:
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// sync pushes the reset countdown and event states to one client
func (h *Hub) sync(client *Client) {
	countdown, states, err := buildSnapshot(h.source)
	if err != nil {
		log.Printf("ERROR [hub.sync] failed to load events: %v", err)
		client.sendError("EVENTS_UNAVAILABLE", "Failed to load events")
		return
	}
	client.Send(countdown)
	client.Send(states)
}

func buildSnapshot(source EventSource) (*Message, *Message, error) {
	ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
	defer cancel()

	events, err := source.EventBoard(ctx)
	if err != nil {
		return nil, nil, err
	}

	countdown, err := NewMessage(MessageTypeResetCountdown, ResetCountdownPayload{
		TimeUntilReset: source.ResetCountdown(),
	})
	if err != nil {
		return nil, nil, err
	}
	states, err := NewMessage(MessageTypeEventStates, EventStatesPayload{Events: events})
	if err != nil {
		return nil, nil, err
	}
	return countdown, states, nil
}
