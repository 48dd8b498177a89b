package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/dom/hero-companion/internal/service"
	"github.com/go-chi/chi/v5"
)

type EventHandler struct {
	advisorService *service.AdvisorService
}

func NewEventHandler(advisorService *service.AdvisorService) *EventHandler {
	return &EventHandler{advisorService: advisorService}
}

type EventsResponse struct {
	Events         []service.EventView `json:"events"`
	TimeUntilReset string              `json:"timeUntilReset"`
}

type ResetResponse struct {
	TimeUntilReset string `json:"timeUntilReset"`
}

// GetAll returns every catalog event with its live state, soonest first
func (h *EventHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	events, err := h.advisorService.EventBoard(r.Context())
	if err != nil {
		log.Printf("ERROR [event.GetAll]: %v", err)
		http.Error(w, "Failed to get events", http.StatusInternalServerError)
		return
	}

	resp := EventsResponse{
		Events:         events,
		TimeUntilReset: h.advisorService.ResetCountdown(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	event, err := h.advisorService.Event(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			http.Error(w, "Event not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR [event.Get] eventID=%s: %v", id, err)
		http.Error(w, "Failed to get event", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(event)
}

func (h *EventHandler) Reset(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ResetResponse{TimeUntilReset: h.advisorService.ResetCountdown()})
}
