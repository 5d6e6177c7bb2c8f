package handler

import (
	"adventcal/internal/service"
	"adventcal/internal/store"
	"errors"
	"net/http"
)

// LeaderboardHandler drives the full leaderboard view
type LeaderboardHandler struct {
	actions *service.Actions
	store   *store.Store
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(actions *service.Actions, st *store.Store) *LeaderboardHandler {
	return &LeaderboardHandler{actions: actions, store: st}
}

type modalResponse struct {
	Entries    interface{}           `json:"entries"`
	Pagination store.ModalPagination `json:"pagination"`
}

func (h *LeaderboardHandler) writeModal(w http.ResponseWriter) {
	s := h.store.Snapshot()
	writeJSON(w, http.StatusOK, modalResponse{Entries: s.ModalLeaderboard, Pagination: s.ModalPagination})
}

// Open handles POST /v1/leaderboard/modal
func (h *LeaderboardHandler) Open(w http.ResponseWriter, r *http.Request) {
	if err := h.actions.OpenLeaderboardModal(r.Context()); err != nil && !errors.Is(err, service.ErrNoMatch) {
		writeFailure(w, err)
		return
	}
	h.writeModal(w)
}

// More handles POST /v1/leaderboard/modal/more
func (h *LeaderboardHandler) More(w http.ResponseWriter, r *http.Request) {
	err := h.actions.LoadMoreLeaderboard(r.Context())
	if err != nil && !errors.Is(err, service.ErrNoMatch) && !errors.Is(err, service.ErrCapacityReached) {
		writeFailure(w, err)
		return
	}
	h.writeModal(w)
}

// Close handles DELETE /v1/leaderboard/modal
func (h *LeaderboardHandler) Close(w http.ResponseWriter, r *http.Request) {
	h.actions.CloseLeaderboardModal()
	w.WriteHeader(http.StatusNoContent)
}

// Refresh handles POST /v1/leaderboard/refresh
func (h *LeaderboardHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.actions.RefreshLeaderboard(r.Context()); err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.store.Snapshot().LeaderboardTop)
}
