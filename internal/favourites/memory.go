package favourites

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/curalink/curalink/backend/api/internal/models"
)

// MemoryRepository is an in-memory Repository used by unit tests. The mutex
// plays the role of the unique index: check and insert happen under one lock.
type MemoryRepository struct {
	mu    sync.Mutex
	seq   int64
	rows  map[string]*models.Favourite
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{rows: make(map[string]*models.Favourite)}
}

func key(userID int64, contentType string, contentID int64) string {
	return fmt.Sprintf("%d/%s/%d", userID, contentType, contentID)
}

func (m *MemoryRepository) Insert(_ context.Context, f *models.Favourite) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := key(f.UserID, f.ContentType, f.ContentID)
	if _, ok := m.rows[k]; ok {
		return false, nil
	}
	m.seq++
	f.ID = m.seq
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}
	cp := *f
	m.rows[k] = &cp
	return true, nil
}

func (m *MemoryRepository) Delete(_ context.Context, userID int64, contentType string, contentID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := key(userID, contentType, contentID)
	if _, ok := m.rows[k]; !ok {
		return false, nil
	}
	delete(m.rows, k)
	return true, nil
}

func (m *MemoryRepository) Exists(_ context.Context, userID int64, contentType string, contentID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.rows[key(userID, contentType, contentID)]
	return ok, nil
}

func (m *MemoryRepository) ListByUser(_ context.Context, userID int64) ([]*models.Favourite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.Favourite{}
	for _, f := range m.rows {
		if f.UserID == userID {
			cp := *f
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
