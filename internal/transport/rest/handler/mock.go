package handler

import (
	"adventcal/internal/gateway"
	"adventcal/internal/service"
	"adventcal/internal/store"
	"net/http"

	"github.com/gorilla/mux"
)

// ClientSwitcher lists and selects the client themes of the mock gateway
type ClientSwitcher interface {
	Clients() []gateway.ClientSummary
	SetClient(clientID string) error
}

// MockHandler exposes the mock gateway's client switcher
type MockHandler struct {
	switcher ClientSwitcher
	actions  *service.Actions
	store    *store.Store
}

// NewMockHandler creates a new mock handler
func NewMockHandler(switcher ClientSwitcher, actions *service.Actions, st *store.Store) *MockHandler {
	return &MockHandler{switcher: switcher, actions: actions, store: st}
}

// Clients handles GET /v1/mock/clients
func (h *MockHandler) Clients(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.switcher.Clients())
}

// SwitchClient handles PUT /v1/mock/clients/{clientId}. The state is
// reloaded so the new theme takes effect.
func (h *MockHandler) SwitchClient(w http.ResponseWriter, r *http.Request) {
	if err := h.switcher.SetClient(mux.Vars(r)["clientId"]); err != nil {
		writeFailure(w, err)
		return
	}
	if err := h.actions.LoadInitialData(r.Context()); err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.store.Snapshot().ClientConfig)
}
