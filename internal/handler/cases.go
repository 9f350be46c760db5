package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chibox/chibox-server/internal/caseopen"
	"github.com/chibox/chibox-server/internal/domain"
	"github.com/chibox/chibox-server/internal/logger"
)

// InventoryResponse lists a user's active items
type InventoryResponse struct {
	Items []domain.InventoryItem `json:"items"`
}

// CaseHandlers serves case and inventory endpoints
type CaseHandlers struct {
	svc caseopen.Service
}

// NewCaseHandlers creates the case handlers
func NewCaseHandlers(svc caseopen.Service) *CaseHandlers {
	return &CaseHandlers{svc: svc}
}

// HandleGetCase returns a case and its drop pool
// @Summary Get case
// @Tags cases
// @Produce json
// @Param caseID path string true "Case id"
// @Success 200 {object} caseopen.CaseDetails
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/cases/{caseID} [get]
func (h *CaseHandlers) HandleGetCase() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		details, err := h.svc.GetCase(r.Context(), chi.URLParam(r, "caseID"))
		if err != nil {
			respondServiceError(w, r, "get_case", err)
			return
		}
		respondJSON(w, http.StatusOK, details)
	}
}

// HandleOpenCase charges the case price and grants one item
// @Summary Open case
// @Tags cases
// @Security BearerAuth
// @Produce json
// @Param caseID path string true "Case id"
// @Success 200 {object} domain.CaseOpening
// @Failure 400 {object} ErrorResponse "Not enough money"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Concurrent request"
// @Router /api/v1/cases/{caseID}/open [post]
func (h *CaseHandlers) HandleOpenCase() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}
		caseID := chi.URLParam(r, "caseID")

		opening, err := h.svc.Open(r.Context(), userID, caseID)
		if err != nil {
			respondServiceError(w, r, "open_case", err)
			return
		}

		logger.FromContext(r.Context()).Info(LogMsgCaseOpened,
			"case_id", caseID, "item_id", opening.Item.ID, "protection_waived", opening.ProtectionWaived)
		respondJSON(w, http.StatusOK, opening)
	}
}

// HandleInventory lists the caller's active items
// @Summary Inventory
// @Tags inventory
// @Security BearerAuth
// @Produce json
// @Success 200 {object} InventoryResponse
// @Router /api/v1/inventory [get]
func (h *CaseHandlers) HandleInventory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}
		items, err := h.svc.Inventory(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "inventory", err)
			return
		}
		if items == nil {
			items = []domain.InventoryItem{}
		}
		respondJSON(w, http.StatusOK, InventoryResponse{Items: items})
	}
}

// HandleSell sells an inventory item for its recorded price
// @Summary Sell item
// @Tags inventory
// @Security BearerAuth
// @Produce json
// @Param inventoryID path string true "Inventory item id"
// @Success 200 {object} domain.SaleResult
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already sold or used"
// @Router /api/v1/inventory/{inventoryID}/sell [post]
func (h *CaseHandlers) HandleSell() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}
		inventoryID := chi.URLParam(r, "inventoryID")

		sale, err := h.svc.Sell(r.Context(), userID, inventoryID)
		if err != nil {
			respondServiceError(w, r, "sell", err)
			return
		}

		logger.FromContext(r.Context()).Info(LogMsgItemSold, "inventory_id", inventoryID, "amount", sale.Amount.String())
		respondJSON(w, http.StatusOK, sale)
	}
}
