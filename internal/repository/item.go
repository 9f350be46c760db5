package repository

import (
	"context"

	"github.com/chibox/chibox-server/internal/domain"
)

// Catalog defines read access to items and cases
type Catalog interface {
	GetItemByID(ctx context.Context, itemID string) (*domain.Item, error)
	ListItems(ctx context.Context) ([]domain.Item, error)
	ListSlotItems(ctx context.Context) ([]domain.Item, error)
	GetCase(ctx context.Context, caseID string) (*domain.Case, error)
	// GetCaseItems returns the case pool with per-case drop weights applied
	GetCaseItems(ctx context.Context, caseID string) ([]domain.Item, error)
}

// Inventory defines non-transactional inventory reads
type Inventory interface {
	ListInventory(ctx context.Context, userID string) ([]domain.InventoryItem, error)
}

// CaseEntry is one item of a case pool; a zero Weight keeps the item's drop weight
type CaseEntry struct {
	ItemID string  `json:"item_id"`
	Weight float64 `json:"weight,omitempty"`
}

// CatalogWriter loads items and cases into a store
type CatalogWriter interface {
	UpsertItem(ctx context.Context, item domain.Item) error
	UpsertCase(ctx context.Context, c domain.Case, entries []CaseEntry) error
}
