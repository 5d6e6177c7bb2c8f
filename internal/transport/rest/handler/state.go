package handler

import (
	"adventcal/internal/service"
	"adventcal/internal/store"
	"net/http"
)

// StateHandler exposes the application state
type StateHandler struct {
	actions *service.Actions
	store   *store.Store
}

// NewStateHandler creates a new state handler
func NewStateHandler(actions *service.Actions, st *store.Store) *StateHandler {
	return &StateHandler{actions: actions, store: st}
}

// Get handles GET /v1/state
func (h *StateHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Snapshot())
}

// Reload handles POST /v1/reload
func (h *StateHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.actions.LoadInitialData(r.Context()); err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.store.Snapshot())
}
