package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/chibox/chibox-server/internal/eventlog"
)

// HistoryReader returns a user's logged activity
type HistoryReader interface {
	History(ctx context.Context, userID string, limit int) ([]eventlog.Event, error)
}

// HistoryResponse lists recent activity, newest first
type HistoryResponse struct {
	Events []eventlog.Event `json:"events"`
}

// HistoryHandlers serves the activity history endpoint
type HistoryHandlers struct {
	history HistoryReader
}

// NewHistoryHandlers creates the history handlers
func NewHistoryHandlers(history HistoryReader) *HistoryHandlers {
	return &HistoryHandlers{history: history}
}

// HandleHistory lists the caller's recent case drops, sales, upgrades and games
// @Summary Activity history
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max events (default 50, max 200)"
// @Success 200 {object} HistoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/history [get]
func (h *HistoryHandlers) HandleHistory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidQueryParam, "limit"))
				return
			}
			limit = n
		}

		events, err := h.history.History(r.Context(), userID, limit)
		if err != nil {
			respondServiceError(w, r, "history", err)
			return
		}
		if events == nil {
			events = []eventlog.Event{}
		}
		respondJSON(w, http.StatusOK, HistoryResponse{Events: events})
	}
}
