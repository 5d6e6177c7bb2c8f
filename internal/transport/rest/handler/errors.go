package handler

import (
	"adventcal/internal/failure"
	"adventcal/internal/gateway"
	"adventcal/internal/service"
	"errors"
	"net/http"
)

// writeFailure maps a workflow error to a status and its user-facing message
func writeFailure(w http.ResponseWriter, err error) {
	status, msg := http.StatusInternalServerError, failure.MsgUnexpected

	var f *failure.Error
	switch {
	case errors.Is(err, service.ErrNoSession):
		status, msg = http.StatusUnauthorized, "no active session"
	case errors.Is(err, service.ErrInvalidSubmission):
		status, msg = http.StatusUnprocessableEntity, service.MsgIncompleteAnswer
	case errors.Is(err, service.ErrTaskRejected):
		status, msg = http.StatusUnprocessableEntity, service.MsgTaskRejected
	case errors.Is(err, service.ErrPurchaseFailed):
		status, msg = http.StatusConflict, err.Error()
	case errors.Is(err, gateway.ErrUnknownClient):
		status, msg = http.StatusNotFound, err.Error()
	case errors.As(err, &f):
		msg = f.Message
		status = statusForKind(f)
	}
	writeError(w, status, msg)
}

func statusForKind(f *failure.Error) int {
	switch f.Kind {
	case failure.KindUnauthorized:
		return http.StatusUnauthorized
	case failure.KindForbidden:
		return http.StatusForbidden
	case failure.KindNotFound:
		return http.StatusNotFound
	case failure.KindServerError:
		return http.StatusBadGateway
	}
	var se *gateway.StatusError
	if errors.As(f, &se) && se.StatusCode >= 400 && se.StatusCode < 500 {
		return se.StatusCode
	}
	return http.StatusBadGateway
}
