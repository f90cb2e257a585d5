package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/stockroom/inventory-api/internal/core/domain"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// Accounts
// ---------------------------------------------------------------------------

// stubAccountRepo mirrors the Mongo unique indexes: the uniqueness check and
// the insert happen under one lock.
type stubAccountRepo struct {
	mu     sync.Mutex
	byID   map[string]*domain.Account
	nextID int
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{byID: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAccountRepo) Create(_ context.Context, a *domain.Account) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Email == a.Email {
			return nil, domain.ErrDuplicateEmail
		}
		if existing.Username == a.Username {
			return nil, domain.ErrDuplicateUsername
		}
	}
	r.nextID++
	stored := cloneAccount(a)
	stored.ID = fmt.Sprintf("acct-%d", r.nextID)
	r.byID[stored.ID] = stored
	return cloneAccount(stored), nil
}

func (r *stubAccountRepo) find(match func(*domain.Account) bool) *domain.Account {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.byID {
		if match(a) {
			return cloneAccount(a)
		}
	}
	return nil
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	return r.find(func(a *domain.Account) bool { return a.Email == email }), nil
}

func (r *stubAccountRepo) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	return r.find(func(a *domain.Account) bool { return a.Username == username }), nil
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	return r.find(func(a *domain.Account) bool { return a.ID == id }), nil
}

func (r *stubAccountRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

// ---------------------------------------------------------------------------
// Inventory
// ---------------------------------------------------------------------------

type stubInventoryRepo struct {
	byID      map[string]*domain.InventoryRecord
	nextID    int
	listCalls int
	createErr error
	// afterList runs once, after the next ListByOwner has read its records.
	afterList func()
}

func newStubInventoryRepo() *stubInventoryRepo {
	return &stubInventoryRepo{byID: make(map[string]*domain.InventoryRecord)}
}

func (r *stubInventoryRepo) inventoryIDTaken(inventoryID, exceptID string) bool {
	for id, rec := range r.byID {
		if id != exceptID && rec.InventoryID == inventoryID {
			return true
		}
	}
	return false
}

func (r *stubInventoryRepo) Create(_ context.Context, rec *domain.InventoryRecord) error {
	if r.createErr != nil {
		return r.createErr
	}
	if r.inventoryIDTaken(rec.InventoryID, "") {
		return domain.ErrDuplicateInventoryID
	}
	r.nextID++
	rec.ID = fmt.Sprintf("rec-%d", r.nextID)
	clone := *rec
	r.byID[rec.ID] = &clone
	return nil
}

func (r *stubInventoryRepo) FindByID(_ context.Context, id string) (*domain.InventoryRecord, error) {
	rec, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	clone := *rec
	return &clone, nil
}

func (r *stubInventoryRepo) Update(_ context.Context, rec *domain.InventoryRecord) error {
	existing, ok := r.byID[rec.ID]
	if !ok || existing.UserID != rec.UserID {
		return domain.ErrRecordNotFound
	}
	if r.inventoryIDTaken(rec.InventoryID, rec.ID) {
		return domain.ErrDuplicateInventoryID
	}
	clone := *rec
	r.byID[rec.ID] = &clone
	return nil
}

func (r *stubInventoryRepo) Delete(_ context.Context, id, ownerID string) error {
	existing, ok := r.byID[id]
	if !ok || existing.UserID != ownerID {
		return domain.ErrRecordNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubInventoryRepo) ListByOwner(_ context.Context, ownerID string) ([]*domain.InventoryRecord, error) {
	r.listCalls++
	var out []*domain.InventoryRecord
	for _, rec := range r.byID {
		if rec.UserID == ownerID {
			clone := *rec
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastUpdated.After(out[j].LastUpdated) })
	if hook := r.afterList; hook != nil {
		r.afterList = nil
		hook()
	}
	return out, nil
}

type stubStatsCache struct {
	entries     map[string]domain.InventoryStats
	generations map[string]int64
	getErr      error
	invalidated []string
}

func newStubStatsCache() *stubStatsCache {
	return &stubStatsCache{
		entries:     make(map[string]domain.InventoryStats),
		generations: make(map[string]int64),
	}
}

func (c *stubStatsCache) Get(_ context.Context, ownerID string) (*domain.InventoryStats, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	s, ok := c.entries[ownerID]
	if !ok {
		return nil, false, nil
	}
	return &s, true, nil
}

func (c *stubStatsCache) Generation(_ context.Context, ownerID string) (int64, error) {
	return c.generations[ownerID], nil
}

func (c *stubStatsCache) Set(_ context.Context, ownerID string, generation int64, stats domain.InventoryStats) (bool, error) {
	if c.generations[ownerID] != generation {
		return false, nil
	}
	c.entries[ownerID] = stats
	return true, nil
}

func (c *stubStatsCache) Invalidate(_ context.Context, ownerID string) error {
	c.generations[ownerID]++
	delete(c.entries, ownerID)
	c.invalidated = append(c.invalidated, ownerID)
	return nil
}

type stubJournal struct {
	changes []domain.InventoryChange
}

func (j *stubJournal) Record(_ context.Context, change domain.InventoryChange) {
	j.changes = append(j.changes, change)
}
