package catalog

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/curalink/curalink/backend/api/internal/models"
)

// In-memory repository implementations used by unit tests.

type MemoryTrialRepository struct {
	mu    sync.RWMutex
	seq   int64
	store map[int64]*models.Trial
}

func NewMemoryTrialRepository() *MemoryTrialRepository {
	return &MemoryTrialRepository{store: make(map[int64]*models.Trial)}
}

func (m *MemoryTrialRepository) List(_ context.Context) ([]*models.Trial, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*models.Trial, 0, len(m.store))
	for _, t := range m.store {
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryTrialRepository) Create(_ context.Context, t *models.Trial) (*models.Trial, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t.ID = m.seq
	cp := *t
	m.store[t.ID] = &cp
	return t, nil
}

func (m *MemoryTrialRepository) Get(_ context.Context, id int64) (*models.Trial, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.store[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (m *MemoryTrialRepository) Update(_ context.Context, t *models.Trial) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[t.ID]; !ok {
		return ErrNotFound
	}
	cp := *t
	m.store[t.ID] = &cp
	return nil
}

func (m *MemoryTrialRepository) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return ErrNotFound
	}
	delete(m.store, id)
	return nil
}

type MemoryExpertRepository struct {
	mu    sync.RWMutex
	seq   int64
	store map[int64]*models.Expert
}

func NewMemoryExpertRepository() *MemoryExpertRepository {
	return &MemoryExpertRepository{store: make(map[int64]*models.Expert)}
}

func (m *MemoryExpertRepository) List(_ context.Context) ([]*models.Expert, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*models.Expert, 0, len(m.store))
	for _, e := range m.store {
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryExpertRepository) Create(_ context.Context, e *models.Expert) (*models.Expert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	e.ID = m.seq
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	cp := *e
	m.store[e.ID] = &cp
	return e, nil
}

func (m *MemoryExpertRepository) Get(_ context.Context, id int64) (*models.Expert, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.store[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, ErrNotFound
}

type MemoryPublicationRepository struct {
	mu    sync.RWMutex
	seq   int64
	store map[int64]*models.Publication
}

func NewMemoryPublicationRepository() *MemoryPublicationRepository {
	return &MemoryPublicationRepository{store: make(map[int64]*models.Publication)}
}

func (m *MemoryPublicationRepository) List(_ context.Context) ([]*models.Publication, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*models.Publication, 0, len(m.store))
	for _, p := range m.store {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryPublicationRepository) Create(_ context.Context, p *models.Publication) (*models.Publication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	p.ID = m.seq
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	cp := *p
	m.store[p.ID] = &cp
	return p, nil
}

func (m *MemoryPublicationRepository) Get(_ context.Context, id int64) (*models.Publication, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.store[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (m *MemoryPublicationRepository) SetPDFKey(_ context.Context, id int64, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store[id]
	if !ok {
		return ErrNotFound
	}
	p.PDFKey = key
	return nil
}
