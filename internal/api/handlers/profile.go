package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/dom/hero-companion/internal/api/middleware"
	"github.com/dom/hero-companion/internal/domain"
	"github.com/dom/hero-companion/internal/service"
	"github.com/go-chi/chi/v5"
)

type ProfileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// SaveProfileRequest replaces the stored user data when Version is current
type SaveProfileRequest struct {
	Version int              `json:"version"`
	Data    *domain.UserData `json:"data"`
}

type SnapshotRequest struct {
	Note string `json:"note"`
}

type SnapshotsResponse struct {
	Snapshots []domain.SnapshotRecord `json:"snapshots"`
}

// writeProfileError maps profile service errors to HTTP statuses
func writeProfileError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrVersionConflict):
		http.Error(w, "Profile was modified, reload and retry", http.StatusConflict)
	case errors.Is(err, domain.ErrHeroAlreadyOwned):
		http.Error(w, "Hero already recruited", http.StatusConflict)
	case errors.Is(err, domain.ErrHeroNotInCatalog):
		http.Error(w, "Hero not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrHeroNotOwned):
		http.Error(w, "Hero not in roster", http.StatusNotFound)
	case errors.Is(err, domain.ErrTooManyHeroes),
		errors.Is(err, domain.ErrInvalidRelicSlot),
		errors.Is(err, domain.ErrInvalidFaction),
		errors.Is(err, domain.ErrInvalidLevel),
		errors.Is(err, domain.ErrInvalidStars):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Printf("ERROR [profile.%s]: %v", op, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	profile, err := h.profileService.GetProfile(r.Context(), userID)
	if err != nil {
		writeProfileError(w, "GetProfile", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}

func (h *ProfileHandler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req SaveProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Data == nil {
		http.Error(w, "Data is required", http.StatusBadRequest)
		return
	}

	profile, err := h.profileService.SaveUserData(r.Context(), userID, req.Version, *req.Data)
	if err != nil {
		writeProfileError(w, "SaveProfile", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}

func (h *ProfileHandler) RecruitHero(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	heroID := chi.URLParam(r, "heroId")
	profile, err := h.profileService.RecruitHero(r.Context(), userID, heroID)
	if err != nil {
		writeProfileError(w, "RecruitHero", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(profile)
}

func (h *ProfileHandler) UnrecruitHero(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	heroID := chi.URLParam(r, "heroId")
	profile, err := h.profileService.UnrecruitHero(r.Context(), userID, heroID)
	if err != nil {
		writeProfileError(w, "UnrecruitHero", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}

func (h *ProfileHandler) UpdateHero(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req service.HeroProgressInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	heroID := chi.URLParam(r, "heroId")
	profile, err := h.profileService.UpdateHeroProgress(r.Context(), userID, heroID, req)
	if err != nil {
		writeProfileError(w, "UpdateHero", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}

func (h *ProfileHandler) RecordSnapshot(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	// The body is optional
	var req SnapshotRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}

	record, err := h.profileService.RecordSnapshot(r.Context(), userID, req.Note)
	if err != nil {
		writeProfileError(w, "RecordSnapshot", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(record)
}

func (h *ProfileHandler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		http.Error(w, "Invalid limit", http.StatusBadRequest)
		return
	}

	records, err := h.profileService.ListSnapshots(r.Context(), userID, limit)
	if err != nil {
		writeProfileError(w, "ListSnapshots", err)
		return
	}
	if records == nil {
		records = []domain.SnapshotRecord{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SnapshotsResponse{Snapshots: records})
}

// queryInt reads an optional integer query parameter
func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
