// Package memory is an in-process implementation of the repository
// interfaces. Transactions take the store lock for their whole lifetime, which
// gives the same serialization as row locks at the cost of concurrency.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chibox/chibox-server/internal/domain"
	"github.com/chibox/chibox-server/internal/repository"
)

// CaseEntry places an item in a case pool
type CaseEntry = repository.CaseEntry

type attemptKey struct {
	userID string
	game   domain.Game
}

// Store holds all data in maps guarded by one mutex
type Store struct {
	mu sync.Mutex

	users     map[string]*domain.User
	usernames map[string]string
	items     map[string]domain.Item
	cases     map[string]domain.Case
	caseItems map[string][]CaseEntry
	inventory map[string]*domain.InventoryItem
	attempts  map[attemptKey]domain.AttemptRecord

	clock func() time.Time
}

var (
	_ repository.User      = (*Store)(nil)
	_ repository.Catalog   = (*Store)(nil)
	_ repository.Inventory = (*Store)(nil)
	_ repository.Attempts  = (*Store)(nil)
	_ repository.Economy   = (*Store)(nil)

	_ repository.CatalogWriter = (*Store)(nil)
)

// New creates an empty store
func New() *Store {
	return &Store{
		users:     make(map[string]*domain.User),
		usernames: make(map[string]string),
		items:     make(map[string]domain.Item),
		cases:     make(map[string]domain.Case),
		caseItems: make(map[string][]CaseEntry),
		inventory: make(map[string]*domain.InventoryItem),
		attempts:  make(map[attemptKey]domain.AttemptRecord),
		clock:     time.Now,
	}
}

// AddItem inserts or replaces a catalog item
func (s *Store) AddItem(items ...domain.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range items {
		s.items[it.ID] = it
	}
}

// AddCase inserts or replaces a case and its pool
func (s *Store) AddCase(c domain.Case, entries ...CaseEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cases[c.ID] = c
	s.caseItems[c.ID] = append([]CaseEntry(nil), entries...)
}

// PutUser inserts or replaces a user as-is
func (s *Store) PutUser(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := u
	s.users[u.ID] = &cp
	s.usernames[strings.ToLower(u.Username)] = u.ID
}

// PutAttempt inserts or replaces an attempt record
func (s *Store) PutAttempt(rec domain.AttemptRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts[attemptKey{rec.UserID, rec.Game}] = rec
}

// UpsertItem stores or replaces a catalog item
func (s *Store) UpsertItem(_ context.Context, item domain.Item) error {
	s.AddItem(item)
	return nil
}

// UpsertCase stores or replaces a case and its pool
func (s *Store) UpsertCase(_ context.Context, c domain.Case, entries []CaseEntry) error {
	s.AddCase(c, entries...)
	return nil
}

// PutInventoryItem inserts or replaces an inventory row
func (s *Store) PutInventoryItem(inv domain.InventoryItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := inv
	s.inventory[inv.ID] = &cp
}

// ============================================================================
// repository.User
// ============================================================================

func (s *Store) CreateUser(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(user.Username)
	if _, taken := s.usernames[key]; taken {
		return domain.ErrUsernameTaken
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = s.clock()
	cp := *user
	s.users[user.ID] = &cp
	s.usernames[key] = user.ID
	return nil
}

func (s *Store) GetUserByID(_ context.Context, userID string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userByID(userID)
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.usernames[strings.ToLower(username)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return s.userByID(id)
}

func (s *Store) userByID(userID string) (*domain.User, error) {
	u, ok := s.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

// ============================================================================
// repository.Catalog
// ============================================================================

func (s *Store) GetItemByID(_ context.Context, itemID string) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemByID(itemID)
}

func (s *Store) itemByID(itemID string) (*domain.Item, error) {
	it, ok := s.items[itemID]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	return &it, nil
}

func (s *Store) ListItems(context.Context) ([]domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedItems(func(domain.Item) bool { return true }), nil
}

func (s *Store) ListSlotItems(context.Context) ([]domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedItems(func(it domain.Item) bool { return it.SlotEligible }), nil
}

func (s *Store) sortedItems(keep func(domain.Item) bool) []domain.Item {
	out := make([]domain.Item, 0, len(s.items))
	for _, it := range s.items {
		if keep(it) {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Price.Equal(out[j].Price) {
			return out[i].Price.LessThan(out[j].Price)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *Store) GetCase(_ context.Context, caseID string) (*domain.Case, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cases[caseID]
	if !ok {
		return nil, domain.ErrCaseNotFound
	}
	return &c, nil
}

func (s *Store) GetCaseItems(_ context.Context, caseID string) ([]domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cases[caseID]; !ok {
		return nil, domain.ErrCaseNotFound
	}
	entries := s.caseItems[caseID]
	out := make([]domain.Item, 0, len(entries))
	for _, e := range entries {
		it, ok := s.items[e.ItemID]
		if !ok {
			continue
		}
		if e.Weight != 0 {
			it.DropWeight = e.Weight
		}
		out = append(out, it)
	}
	return out, nil
}

// ============================================================================
// repository.Inventory
// ============================================================================

func (s *Store) ListInventory(_ context.Context, userID string) ([]domain.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.InventoryItem
	for _, inv := range s.inventory {
		if inv.UserID == userID && inv.Status == domain.InventoryActive {
			out = append(out, *inv)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// ============================================================================
// repository.Attempts
// ============================================================================

func (s *Store) GetAttempt(_ context.Context, userID string, game domain.Game) (*domain.AttemptRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.attempts[attemptKey{userID, game}]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (s *Store) ResetAttempts(_ context.Context, dayStart time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for k, rec := range s.attempts {
		if rec.DayStart.Before(dayStart) {
			rec.DayStart = dayStart
			rec.Used = 0
			rec.WonToday = false
			s.attempts[k] = rec
			n++
		}
	}
	return n, nil
}
