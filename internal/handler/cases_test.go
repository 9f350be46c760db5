package handler

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/chibox/chibox-server/internal/caseopen"
	"github.com/chibox/chibox-server/internal/domain"
	"github.com/chibox/chibox-server/internal/reward"
)

func TestHandleGetCase(t *testing.T) {
	svc := &mockCaseService{}
	svc.On("GetCase", mock.Anything, "starter").Return(&caseopen.CaseDetails{
		Case:  domain.Case{ID: "starter", Name: "Starter", Price: decimal.NewFromInt(49), Active: true},
		Items: []domain.Item{{ID: "awp", Name: "AWP", Price: decimal.NewFromInt(850)}},
	}, nil)
	svc.On("GetCase", mock.Anything, "missing").Return(nil, domain.ErrCaseNotFound)
	h := NewCaseHandlers(svc)

	w := serve(http.MethodGet, "/cases/{caseID}", "/cases/starter", "", "", h.HandleGetCase())
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"awp"`)

	w = serve(http.MethodGet, "/cases/{caseID}", "/cases/missing", "", "", h.HandleGetCase())
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleOpenCase(t *testing.T) {
	tests := []struct {
		name       string
		userID     string
		setup      func(*mockCaseService)
		wantStatus int
		wantBody   string
	}{
		{
			name:   "opened",
			userID: testUserID,
			setup: func(m *mockCaseService) {
				m.On("Open", mock.Anything, testUserID, "starter").Return(&domain.CaseOpening{
					CaseID:  "starter",
					Item:    domain.Item{ID: "awp"},
					Balance: decimal.NewFromInt(51),
				}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"balance":"51"`,
		},
		{name: "anonymous", wantStatus: http.StatusUnauthorized, wantBody: ErrMsgUnauthorizedError},
		{
			name:   "broke",
			userID: testUserID,
			setup: func(m *mockCaseService) {
				m.On("Open", mock.Anything, testUserID, "starter").Return(nil, domain.ErrInsufficientFunds)
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   ErrMsgNotEnoughMoneyError,
		},
		{
			name:   "double click",
			userID: testUserID,
			setup: func(m *mockCaseService) {
				m.On("Open", mock.Anything, testUserID, "starter").Return(nil, domain.ErrClaimInProgress)
			},
			wantStatus: http.StatusConflict,
			wantBody:   ErrMsgClaimInProgress,
		},
		{
			name:   "misconfigured case",
			userID: testUserID,
			setup: func(m *mockCaseService) {
				m.On("Open", mock.Anything, testUserID, "starter").Return(nil, reward.ErrEmptyPool)
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   ErrMsgGenericServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockCaseService{}
			if tt.setup != nil {
				tt.setup(svc)
			}
			w := serve(http.MethodPost, "/cases/{caseID}/open", "/cases/starter/open", "", tt.userID, NewCaseHandlers(svc).HandleOpenCase())

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandleInventory_EmptyIsArray(t *testing.T) {
	svc := &mockCaseService{}
	svc.On("Inventory", mock.Anything, testUserID).Return(nil, nil)

	w := serve(http.MethodGet, "/inventory", "/inventory", "", testUserID, NewCaseHandlers(svc).HandleInventory())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"items":[]}`, w.Body.String())
}

func TestHandleSell(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "sold", wantStatus: http.StatusOK},
		{name: "someone else's item", err: domain.ErrInventoryItemNotFound, wantStatus: http.StatusNotFound},
		{name: "already sold", err: domain.ErrItemNotActive, wantStatus: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockCaseService{}
			if tt.err != nil {
				svc.On("Sell", mock.Anything, testUserID, "inv-1").Return(nil, tt.err)
			} else {
				svc.On("Sell", mock.Anything, testUserID, "inv-1").Return(&domain.SaleResult{
					InventoryID: "inv-1", Amount: decimal.NewFromInt(12), Balance: decimal.NewFromInt(112),
				}, nil)
			}

			w := serve(http.MethodPost, "/inventory/{inventoryID}/sell", "/inventory/inv-1/sell", "", testUserID, NewCaseHandlers(svc).HandleSell())

			assert.Equal(t, tt.wantStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}
