package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/dom/hero-companion/internal/domain"
	"github.com/dom/hero-companion/internal/service"
	"github.com/go-chi/chi/v5"
)

type HeroHandler struct {
	catalogService *service.CatalogService
}

func NewHeroHandler(catalogService *service.CatalogService) *HeroHandler {
	return &HeroHandler{catalogService: catalogService}
}

type HeroesResponse struct {
	Heroes  []domain.Hero `json:"heroes"`
	Version string        `json:"version"`
}

func (h *HeroHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	heroes, err := h.catalogService.GetHeroes(r.Context())
	if err != nil {
		log.Printf("ERROR [hero.GetAll]: %v", err)
		http.Error(w, "Failed to get heroes", http.StatusInternalServerError)
		return
	}

	faction := domain.Faction(r.URL.Query().Get("faction"))
	if faction != "" {
		if !faction.IsValid() {
			http.Error(w, "Invalid faction", http.StatusBadRequest)
			return
		}
		filtered := make([]domain.Hero, 0, len(heroes))
		for _, hero := range heroes {
			if hero.Faction == faction {
				filtered = append(filtered, hero)
			}
		}
		heroes = filtered
	}

	resp := HeroesResponse{
		Heroes:  heroes,
		Version: h.catalogService.Version(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *HeroHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	hero, err := h.catalogService.GetHero(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrHeroNotFound) {
			http.Error(w, "Hero not found", http.StatusNotFound)
			return
		}
		log.Printf("ERROR [hero.Get] heroID=%s: %v", id, err)
		http.Error(w, "Failed to get hero", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(hero)
}

// Sync reloads the embedded catalog bundle into the database
func (h *HeroHandler) Sync(w http.ResponseWriter, r *http.Request) {
	result, err := h.catalogService.SyncFromBundle(r.Context())
	if err != nil {
		log.Printf("ERROR [hero.Sync]: %v", err)
		http.Error(w, "Failed to sync catalog", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
