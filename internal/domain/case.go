package domain

import "github.com/shopspring/decimal"

// Case is a purchasable container whose items form the reward pool.
type Case struct {
	ID     string          `json:"id" db:"case_id"`
	Name   string          `json:"name" db:"name"`
	Price  decimal.Decimal `json:"price" db:"price"`
	Active bool            `json:"active" db:"active"`
}

// CaseOpening is the result of opening a case.
type CaseOpening struct {
	CaseID           string          `json:"case_id"`
	InventoryItem    InventoryItem   `json:"inventory_item"`
	Item             Item            `json:"item"`
	Balance          decimal.Decimal `json:"balance"`
	BonusPercent     float64         `json:"bonus_percent"`
	Roll             float64         `json:"rolled_value"`
	ProtectionWaived bool            `json:"protection_waived,omitempty"`
}
