package websocket

import (
	"bytes"
	"encoding/json"
	"log"
	"sync"
	"time"
)

// EventClock broadcasts the reset countdown on every tick and the event
// states whenever they change.
type EventClock struct {
	hub        *Hub
	source     EventSource
	interval   time.Duration
	tickerStop chan struct{}
	lastStates []byte

	mu sync.Mutex
}

// NewEventClock creates a clock that ticks every interval once started.
func NewEventClock(hub *Hub, source EventSource, interval time.Duration) *EventClock {
	return &EventClock{
		hub:      hub,
		source:   source,
		interval: interval,
	}
}

// Start begins ticking. Calling Start on a running clock does nothing.
func (ec *EventClock) Start() {
	ec.mu.Lock()
	defer ec.mu.Unlock()

	if ec.tickerStop != nil {
		return
	}
	ec.tickerStop = make(chan struct{})
	go ec.runTicker(ec.tickerStop)
}

// Stop halts the ticker.
func (ec *EventClock) Stop() {
	ec.mu.Lock()
	defer ec.mu.Unlock()

	if ec.tickerStop != nil {
		close(ec.tickerStop)
		ec.tickerStop = nil
	}
}

func (ec *EventClock) runTicker(stop chan struct{}) {
	ticker := time.NewTicker(ec.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			ec.Tick()
		}
	}
}

// Tick performs one broadcast round.
func (ec *EventClock) Tick() {
	if ec.hub.ClientCount() == 0 {
		return
	}

	countdown, states, err := buildSnapshot(ec.source)
	if err != nil {
		log.Printf("ERROR [eventClock.Tick] failed to load events: %v", err)
		return
	}
	ec.hub.Broadcast(countdown)

	if ec.statesChanged(states.Payload) {
		ec.hub.Broadcast(states)
	}
}

func (ec *EventClock) statesChanged(payload json.RawMessage) bool {
	ec.mu.Lock()
	defer ec.mu.Unlock()

	if bytes.Equal(ec.lastStates, payload) {
		return false
	}
	ec.lastStates = append(ec.lastStates[:0], payload...)
	return true
}
