package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryStatus is the lifecycle state of an owned item
type InventoryStatus string

const (
	InventoryActive   InventoryStatus = "active"
	InventorySold     InventoryStatus = "sold"
	InventoryUpgraded InventoryStatus = "upgraded"
)

// InventorySource records how an item was obtained
type InventorySource string

const (
	SourceCase     InventorySource = "case"
	SourceUpgrade  InventorySource = "upgrade"
	SourceMinigame InventorySource = "minigame"
)

// InventoryItem is one owned copy of an item. Price is a snapshot taken at grant time.
type InventoryItem struct {
	ID        string          `json:"id" db:"inventory_id"`
	UserID    string          `json:"user_id" db:"user_id"`
	ItemID    string          `json:"item_id" db:"item_id"`
	Price     decimal.Decimal `json:"price" db:"price"`
	Status    InventoryStatus `json:"status" db:"status"`
	Source    InventorySource `json:"source" db:"source"`
	CaseID    *string         `json:"case_id,omitempty" db:"case_id"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// SaleResult is returned after selling an inventory item
type SaleResult struct {
	InventoryID string          `json:"inventory_id"`
	Amount      decimal.Decimal `json:"amount"`
	Balance     decimal.Decimal `json:"balance"`
}
