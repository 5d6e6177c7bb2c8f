package handler

import (
	"adventcal/internal/model"
	"adventcal/internal/service"
	"adventcal/internal/store"
	"encoding/json"
	"net/http"
)

// PlayerHandler handles profile endpoints of the session player
type PlayerHandler struct {
	actions *service.Actions
	store   *store.Store
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(actions *service.Actions, st *store.Store) *PlayerHandler {
	return &PlayerHandler{actions: actions, store: st}
}

// Me handles GET /v1/players/me
func (h *PlayerHandler) Me(w http.ResponseWriter, r *http.Request) {
	player := h.store.Snapshot().SessionPlayer
	if player == nil {
		writeError(w, http.StatusUnauthorized, "no active session")
		return
	}
	writeJSON(w, http.StatusOK, player)
}

// UpdateProfile handles PATCH /v1/players/me
func (h *PlayerHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req model.PlayerPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	player, err := h.actions.UpdateProfile(r.Context(), req)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, player)
}
