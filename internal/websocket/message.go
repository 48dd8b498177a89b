package websocket

import (
	"encoding/json"
	"time"

	"github.com/dom/hero-companion/internal/service"
)

type MessageType string

const (
	// Client to Server
	MessageTypeSyncState MessageType = "SYNC_STATE"

	// Server to Client
	MessageTypeResetCountdown MessageType = "RESET_COUNTDOWN"
	MessageTypeEventStates    MessageType = "EVENT_STATES"
	MessageTypeError          MessageType = "ERROR"
)

type Message struct {
	Type      MessageType     `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp"`
	Seq       int             `json:"seq,omitempty"`
}

func NewMessage(msgType MessageType, payload interface{}) (*Message, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      msgType,
		Payload:   payloadBytes,
		Timestamp: time.Now().UnixMilli(),
	}, nil
}

// Server to Client payloads

type ResetCountdownPayload struct {
	TimeUntilReset string `json:"timeUntilReset"`
}

type EventStatesPayload struct {
	Events []service.EventView `json:"events"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
