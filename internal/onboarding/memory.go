package onboarding

import (
	"context"
	"sync"

	"github.com/curalink/curalink/backend/api/internal/models"
)

// MemoryRepository is an in-memory Repository used by unit tests.
type MemoryRepository struct {
	mu            sync.Mutex
	researcherSeq int64
	patientSeq    int64
	researchers   map[int64]*models.ResearcherProfile
	patients      map[int64]*models.PatientProfile
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		researchers: make(map[int64]*models.ResearcherProfile),
		patients:    make(map[int64]*models.PatientProfile),
	}
}

func (m *MemoryRepository) CreateResearcher(_ context.Context, p *models.ResearcherProfile) (*models.ResearcherProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.researcherSeq++
	p.ID = m.researcherSeq
	cp := *p
	m.researchers[p.ID] = &cp
	return p, nil
}

func (m *MemoryRepository) GetResearcherByUser(_ context.Context, userID int64) (*models.ResearcherProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.researchers {
		if p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryRepository) GetResearcherByID(_ context.Context, id int64) (*models.ResearcherProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.researchers[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (m *MemoryRepository) UpdateResearcher(_ context.Context, p *models.ResearcherProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.researchers[p.ID]; !ok {
		return ErrNotFound
	}
	cp := *p
	m.researchers[p.ID] = &cp
	return nil
}

func (m *MemoryRepository) CreatePatient(_ context.Context, p *models.PatientProfile) (*models.PatientProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.patientSeq++
	p.ID = m.patientSeq
	cp := *p
	m.patients[p.ID] = &cp
	return p, nil
}

func (m *MemoryRepository) GetPatientByUser(_ context.Context, userID int64) (*models.PatientProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.patients {
		if p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryRepository) GetPatientByID(_ context.Context, id int64) (*models.PatientProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.patients[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (m *MemoryRepository) UpdatePatient(_ context.Context, p *models.PatientProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.patients[p.ID]; !ok {
		return ErrNotFound
	}
	cp := *p
	m.patients[p.ID] = &cp
	return nil
}
