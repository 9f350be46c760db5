package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/chibox/chibox-server/internal/domain"
	"github.com/chibox/chibox-server/internal/logger"
	"github.com/chibox/chibox-server/internal/reward"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// bufferPool reduces allocations during JSON encoding
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

// respondJSON encodes payload before writing so an encoding failure can still become a 500
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"` + ErrMsgGenericServerError + `"}` + "\n"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError maps err to a status, logs it at a level matching the
// status and writes the user-facing message
func respondServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())

	var cfgErr *reward.ConfigurationError
	switch {
	case errors.As(err, &cfgErr):
		log.Error(LogMsgConfigError, "operation", op, "error", err)
	case status >= http.StatusInternalServerError:
		log.Error(LogMsgServiceError, "operation", op, "error", err)
	default:
		log.Debug(LogMsgServiceError, "operation", op, "error", err, "status", status)
	}
	respondError(w, status, msg)
}

// mapServiceErrorToUserMessage converts service errors to HTTP status codes and
// messages users can act upon. Unknown errors become a generic 500.
func mapServiceErrorToUserMessage(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, ErrMsgGenericServerError

	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvalidUpgradeTarget):
		return http.StatusBadRequest, ErrMsgInvalidUpgradeTarget
	case errors.Is(err, domain.ErrUnknownGame):
		return http.StatusBadRequest, ErrMsgUnknownGameError
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, ErrMsgNotEnoughMoneyError

	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, ErrMsgInvalidCredentials
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, ErrMsgUnauthorizedError

	case errors.Is(err, domain.ErrSubscriptionRequired):
		return http.StatusForbidden, ErrMsgSubscriptionRequired
	case errors.Is(err, domain.ErrItemNotOwned):
		return http.StatusForbidden, ErrMsgItemNotOwnedError

	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrCaseNotFound):
		return http.StatusNotFound, ErrMsgCaseNotFoundError
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrInventoryItemNotFound):
		return http.StatusNotFound, ErrMsgInventoryNotFoundErr

	case errors.Is(err, domain.ErrUsernameTaken):
		return http.StatusConflict, ErrMsgUsernameTakenError
	case errors.Is(err, domain.ErrItemNotActive):
		return http.StatusConflict, ErrMsgItemNotActiveError
	case errors.Is(err, domain.ErrClaimInProgress):
		return http.StatusConflict, ErrMsgClaimInProgress

	case errors.Is(err, domain.ErrAttemptsExhausted):
		return http.StatusTooManyRequests, ErrMsgAttemptsExhausted
	case errors.Is(err, domain.ErrAlreadyWonToday):
		return http.StatusTooManyRequests, ErrMsgAlreadyWonToday
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
