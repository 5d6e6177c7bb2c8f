package handler

import (
	"adventcal/internal/repository"
	"net/http"
	"strconv"
)

// EventHandler reads the local analytics journal
type EventHandler struct {
	events repository.EventRepo
}

// NewEventHandler creates a new event handler
func NewEventHandler(events repository.EventRepo) *EventHandler {
	return &EventHandler{events: events}
}

// Recent handles GET /v1/events?limit=
func (h *EventHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	events, err := h.events.ListRecent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read events")
		return
	}
	undelivered, err := h.events.CountUndelivered(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read events")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"events":      events,
		"undelivered": undelivered,
	})
}
