package handler

import (
	"adventcal/internal/model"
	"adventcal/internal/service"
	"encoding/json"
	"net/http"
	"strings"
)

// SessionHandler handles player creation, sign-in and sign-out
type SessionHandler struct {
	actions *service.Actions
	authSvc *service.AuthService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(actions *service.Actions, authSvc *service.AuthService) *SessionHandler {
	return &SessionHandler{actions: actions, authSvc: authSvc}
}

// Create handles POST /v1/players
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.PlayerPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		writeError(w, http.StatusBadRequest, "name and email are required")
		return
	}

	player, err := h.actions.CreatePlayer(r.Context(), req)
	if err != nil {
		writeFailure(w, err)
		return
	}
	h.respondWithSession(w, http.StatusCreated, player)
}

// SignIn handles POST /v1/session/signin
func (h *SessionHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req model.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.PlayerID) == "" {
		writeError(w, http.StatusBadRequest, "playerId is required")
		return
	}

	player, err := h.actions.SignIn(r.Context(), req.PlayerID)
	if err != nil {
		writeFailure(w, err)
		return
	}
	h.respondWithSession(w, http.StatusOK, player)
}

// Logout handles POST /v1/session/logout
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.actions.Logout(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "signed_out"})
}

func (h *SessionHandler) respondWithSession(w http.ResponseWriter, status int, player *model.PlayerRecord) {
	token, err := h.authSvc.GeneratePlayerToken(player.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	writeJSON(w, status, &model.SessionResponse{Token: token, Player: player})
}

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
