package handler

import (
	"adventcal/internal/model"
	"adventcal/internal/service"
	"adventcal/internal/transport/rest/middleware"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// CalendarHandler handles calendar days and their tasks
type CalendarHandler struct {
	actions *service.Actions
}

// NewCalendarHandler creates a new calendar handler
func NewCalendarHandler(actions *service.Actions) *CalendarHandler {
	return &CalendarHandler{actions: actions}
}

// OpenDay handles POST /v1/calendar/{day}/open
func (h *CalendarHandler) OpenDay(w http.ResponseWriter, r *http.Request) {
	day, err := strconv.Atoi(mux.Vars(r)["day"])
	if err != nil || day < 1 {
		writeError(w, http.StatusBadRequest, "invalid day")
		return
	}

	task, err := h.actions.OpenDay(r.Context(), day)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// CloseTask handles DELETE /v1/tasks/active
func (h *CalendarHandler) CloseTask(w http.ResponseWriter, r *http.Request) {
	h.actions.CloseTask()
	w.WriteHeader(http.StatusNoContent)
}

// CompleteTask handles POST /v1/tasks/{taskId}/complete
func (h *CalendarHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskId"]

	var submission model.Submission
	if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	submission.PlayerID = middleware.GetPlayerID(r.Context())

	result, err := h.actions.CompleteTask(r.Context(), taskID, submission)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
