package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/dom/hero-companion/internal/api/middleware"
	"github.com/dom/hero-companion/internal/engine"
	"github.com/dom/hero-companion/internal/service"
)

const (
	defaultUpgradeLimit   = 5
	defaultSimulationDays = 30
)

type AdvisorHandler struct {
	advisorService *service.AdvisorService
}

func NewAdvisorHandler(advisorService *service.AdvisorService) *AdvisorHandler {
	return &AdvisorHandler{advisorService: advisorService}
}

type UpgradesResponse struct {
	Recommendations []engine.UpgradeRecommendation `json:"recommendations"`
}

type StrategiesResponse struct {
	Strategies []engine.EventStrategy `json:"strategies"`
}

func (h *AdvisorHandler) Influence(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	summary, err := h.advisorService.Influence(r.Context(), userID)
	if err != nil {
		log.Printf("ERROR [advisor.Influence] userID=%s: %v", userID, err)
		http.Error(w, "Failed to compute influence", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}

func (h *AdvisorHandler) Upgrades(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	limit, err := queryInt(r, "limit", defaultUpgradeLimit)
	if err != nil {
		http.Error(w, "Invalid limit", http.StatusBadRequest)
		return
	}

	recs, err := h.advisorService.Upgrades(r.Context(), userID, limit)
	if err != nil {
		log.Printf("ERROR [advisor.Upgrades] userID=%s: %v", userID, err)
		http.Error(w, "Failed to compute recommendations", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(UpgradesResponse{Recommendations: recs})
}

func (h *AdvisorHandler) Resources(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	plan, err := h.advisorService.Resources(r.Context(), userID)
	if err != nil {
		log.Printf("ERROR [advisor.Resources] userID=%s: %v", userID, err)
		http.Error(w, "Failed to build resource plan", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(plan)
}

func (h *AdvisorHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	days, err := queryInt(r, "days", defaultSimulationDays)
	if err != nil {
		http.Error(w, "Invalid days", http.StatusBadRequest)
		return
	}

	result, err := h.advisorService.Simulate(r.Context(), userID, days, r.URL.Query().Get("profile"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidSpendProfile) {
			http.Error(w, "Invalid spend profile", http.StatusBadRequest)
			return
		}
		log.Printf("ERROR [advisor.Simulate] userID=%s days=%d: %v", userID, days, err)
		http.Error(w, "Failed to run simulation", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (h *AdvisorHandler) Events(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	strategies, err := h.advisorService.EventStrategies(r.Context(), userID)
	if err != nil {
		log.Printf("ERROR [advisor.Events] userID=%s: %v", userID, err)
		http.Error(w, "Failed to build event strategies", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(StrategiesResponse{Strategies: strategies})
}
