package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chibox/chibox-server/internal/domain"
	"github.com/chibox/chibox-server/internal/reward"
)

func TestMapServiceErrorToUserMessage(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"invalid input keeps detail", fmt.Errorf("%w: bad guess", domain.ErrInvalidInput), http.StatusBadRequest, "invalid input: bad guess"},
		{"upgrade target", domain.ErrInvalidUpgradeTarget, http.StatusBadRequest, ErrMsgInvalidUpgradeTarget},
		{"unknown game", domain.ErrUnknownGame, http.StatusBadRequest, ErrMsgUnknownGameError},
		{"funds", domain.ErrInsufficientFunds, http.StatusBadRequest, ErrMsgNotEnoughMoneyError},
		{"credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, ErrMsgInvalidCredentials},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized, ErrMsgUnauthorizedError},
		{"subscription", domain.ErrSubscriptionRequired, http.StatusForbidden, ErrMsgSubscriptionRequired},
		{"not owned", domain.ErrItemNotOwned, http.StatusForbidden, ErrMsgItemNotOwnedError},
		{"user", domain.ErrUserNotFound, http.StatusNotFound, ErrMsgUserNotFoundError},
		{"case", domain.ErrCaseNotFound, http.StatusNotFound, ErrMsgCaseNotFoundError},
		{"item", domain.ErrItemNotFound, http.StatusNotFound, ErrMsgItemNotFoundError},
		{"inventory row", domain.ErrInventoryItemNotFound, http.StatusNotFound, ErrMsgInventoryNotFoundErr},
		{"username", domain.ErrUsernameTaken, http.StatusConflict, ErrMsgUsernameTakenError},
		{"inactive", domain.ErrItemNotActive, http.StatusConflict, ErrMsgItemNotActiveError},
		{"claim lock", fmt.Errorf("open: %w", domain.ErrClaimInProgress), http.StatusConflict, ErrMsgClaimInProgress},
		{"attempts", domain.ErrAttemptsExhausted, http.StatusTooManyRequests, ErrMsgAttemptsExhausted},
		{"won today", domain.ErrAlreadyWonToday, http.StatusTooManyRequests, ErrMsgAlreadyWonToday},
		{"empty pool", reward.ErrEmptyPool, http.StatusInternalServerError, ErrMsgGenericServerError},
		{"unknown", errors.New("pq: connection reset"), http.StatusInternalServerError, ErrMsgGenericServerError},
		{"nil", nil, http.StatusInternalServerError, ErrMsgGenericServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := mapServiceErrorToUserMessage(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestRespondJSON_EncodeFailure(t *testing.T) {
	w := httptest.NewRecorder()
	respondJSON(w, http.StatusOK, map[string]interface{}{"bad": make(chan int)})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"`+ErrMsgGenericServerError+`"}`, w.Body.String())
}

func TestRespondServiceError_DoesNotLeakInternals(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	respondServiceError(w, req, "test", errors.New("dial tcp 10.0.0.5:5432: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "10.0.0.5")
}
