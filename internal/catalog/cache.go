// Package catalog caches item and case lookups in front of the repository.
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/chibox/chibox-server/internal/domain"
	"github.com/chibox/chibox-server/internal/logger"
	"github.com/chibox/chibox-server/internal/repository"
)

const (
	// DefaultTTL bounds how stale prices and pools may get
	DefaultTTL = 5 * time.Minute

	DefaultSize = 1024

	keyAllItems  = "items:all"
	keySlotItems = "items:slot"
	keyCasePool  = "case_pool:"
	keyCase      = "case:"
	keyItem      = "item:"

	LogMsgInvalidated = "Catalog cache invalidated"
)

// Cache is the read side of the catalog with explicit invalidation
type Cache interface {
	repository.Catalog
	// Invalidate drops every cached entry
	Invalidate(ctx context.Context)
}

// entry stores any cached value; exactly one field is set
type entry struct {
	items []domain.Item
	item  *domain.Item
	cse   *domain.Case
}

type cache struct {
	repo repository.Catalog
	lru  *expirable.LRU[string, entry]
}

// New wraps repo with an expiring LRU
func New(repo repository.Catalog, size int, ttl time.Duration) Cache {
	if size <= 0 {
		size = DefaultSize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &cache{
		repo: repo,
		lru:  expirable.NewLRU[string, entry](size, nil, ttl),
	}
}

func (c *cache) GetItemByID(ctx context.Context, itemID string) (*domain.Item, error) {
	if e, ok := c.lru.Get(keyItem + itemID); ok {
		cp := *e.item
		return &cp, nil
	}
	it, err := c.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	cp := *it
	c.lru.Add(keyItem+itemID, entry{item: &cp})
	return it, nil
}

func (c *cache) ListItems(ctx context.Context) ([]domain.Item, error) {
	return c.list(ctx, keyAllItems, c.repo.ListItems)
}

func (c *cache) ListSlotItems(ctx context.Context) ([]domain.Item, error) {
	return c.list(ctx, keySlotItems, c.repo.ListSlotItems)
}

func (c *cache) GetCase(ctx context.Context, caseID string) (*domain.Case, error) {
	if e, ok := c.lru.Get(keyCase + caseID); ok {
		cp := *e.cse
		return &cp, nil
	}
	cs, err := c.repo.GetCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	cp := *cs
	c.lru.Add(keyCase+caseID, entry{cse: &cp})
	return cs, nil
}

func (c *cache) GetCaseItems(ctx context.Context, caseID string) ([]domain.Item, error) {
	return c.list(ctx, keyCasePool+caseID, func(ctx context.Context) ([]domain.Item, error) {
		return c.repo.GetCaseItems(ctx, caseID)
	})
}

func (c *cache) Invalidate(ctx context.Context) {
	c.lru.Purge()
	logger.FromContext(ctx).Info(LogMsgInvalidated)
}

// list returns a copy so callers may reorder or mutate the slice
func (c *cache) list(ctx context.Context, key string, load func(context.Context) ([]domain.Item, error)) ([]domain.Item, error) {
	if e, ok := c.lru.Get(key); ok {
		return append([]domain.Item(nil), e.items...), nil
	}
	items, err := load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}
	c.lru.Add(key, entry{items: append([]domain.Item(nil), items...)})
	return items, nil
}
