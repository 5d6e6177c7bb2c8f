package handler

import (
	"adventcal/internal/service"
	"adventcal/internal/store"
	"net/http"

	"github.com/gorilla/mux"
)

// RewardHandler handles the reward shop
type RewardHandler struct {
	actions *service.Actions
	store   *store.Store
}

// NewRewardHandler creates a new reward handler
func NewRewardHandler(actions *service.Actions, st *store.Store) *RewardHandler {
	return &RewardHandler{actions: actions, store: st}
}

// List handles GET /v1/rewards
func (h *RewardHandler) List(w http.ResponseWriter, r *http.Request) {
	if err := h.actions.RefreshRewards(r.Context()); err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.store.Snapshot().Rewards)
}

// Purchase handles POST /v1/rewards/{rewardId}/purchase
func (h *RewardHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	result, err := h.actions.PurchaseReward(r.Context(), mux.Vars(r)["rewardId"])
	if result != nil && !result.Success {
		writeJSON(w, http.StatusConflict, result)
		return
	}
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
