package handler

import (
	"net/http"

	"github.com/chibox/chibox-server/internal/logger"
	"github.com/chibox/chibox-server/internal/upgrade"
)

// UpgradeRequest burns SourceInventoryIDs for a chance at TargetItemID
type UpgradeRequest struct {
	SourceInventoryIDs []string `json:"source_inventory_ids" validate:"required,min=1,max=10,unique,dive,required"`
	TargetItemID       string   `json:"target_item_id" validate:"required"`
}

// UpgradeHandlers serves upgrade endpoints
type UpgradeHandlers struct {
	svc upgrade.Service
}

// NewUpgradeHandlers creates the upgrade handlers
func NewUpgradeHandlers(svc upgrade.Service) *UpgradeHandlers {
	return &UpgradeHandlers{svc: svc}
}

// HandleChance previews an upgrade without rolling
// @Summary Upgrade chance
// @Tags upgrade
// @Produce json
// @Param source_total query number true "Total price of the source items"
// @Param target_price query number true "Price of the target item"
// @Success 200 {object} upgrade.Chance
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/upgrade/chance [get]
func (h *UpgradeHandlers) HandleChance() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		source, ok := GetQueryFloat(r, w, "source_total")
		if !ok {
			return
		}
		target, ok := GetQueryFloat(r, w, "target_price")
		if !ok {
			return
		}

		chance, err := h.svc.Preview(source, target)
		if err != nil {
			respondServiceError(w, r, "upgrade_chance", err)
			return
		}
		respondJSON(w, http.StatusOK, chance)
	}
}

// HandleUpgrade rolls an upgrade
// @Summary Upgrade items
// @Description Source items are consumed whether the roll wins or not
// @Tags upgrade
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body UpgradeRequest true "Upgrade request"
// @Success 200 {object} upgrade.Result
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Item not owned"
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/upgrade [post]
func (h *UpgradeHandlers) HandleUpgrade() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}
		var req UpgradeRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Upgrade"); err != nil {
			return
		}

		res, err := h.svc.Upgrade(r.Context(), userID, req.SourceInventoryIDs, req.TargetItemID)
		if err != nil {
			respondServiceError(w, r, "upgrade", err)
			return
		}

		logger.FromContext(r.Context()).Info(LogMsgUpgradeRolled,
			"target", req.TargetItemID, "success", res.Attempt.Success, "chance", res.Attempt.FinalChance)
		respondJSON(w, http.StatusOK, res)
	}
}
