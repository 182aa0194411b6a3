package snapshot

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/meridianpay/sitescan/internal/model"
)

// MemoryStore keeps snapshots in memory, for tests and one-off scans that
// do not need history across process restarts.
type MemoryStore struct {
	mu   sync.RWMutex
	byID map[string]*model.SiteSnapshot
	// ordered append log per URL, newest last
	byURL map[string][]string
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:  make(map[string]*model.SiteSnapshot),
		byURL: make(map[string][]string),
	}
}

var _ Store = (*MemoryStore)(nil)

func (m *MemoryStore) Put(_ context.Context, snap *model.SiteSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if snap.ID == "" {
		snap.ID = uuid.New().String()
	}
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now().UTC()
	}
	cp := *snap
	m.byID[cp.ID] = &cp
	m.byURL[cp.URL] = append(m.byURL[cp.URL], cp.ID)
	return nil
}

func (m *MemoryStore) GetLatest(_ context.Context, url string) (*model.SiteSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := m.byURL[url]
	if len(ids) == 0 {
		return nil, ErrNotFound
	}
	cp := *m.byID[ids[len(ids)-1]]
	return &cp, nil
}

func (m *MemoryStore) Close() error { return nil }
