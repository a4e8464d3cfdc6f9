package onboarding

import (
	"context"
	"errors"

	"github.com/curalink/curalink/backend/api/internal/models"
)

// ErrNotFound reports a missing profile.
var ErrNotFound = errors.New("profile not found")

// Repository persists onboarding profiles. Each user owns at most one
// profile of each kind. Get methods fail with ErrNotFound on absence.
type Repository interface {
	CreateResearcher(ctx context.Context, p *models.ResearcherProfile) (*models.ResearcherProfile, error)
	GetResearcherByUser(ctx context.Context, userID int64) (*models.ResearcherProfile, error)
	GetResearcherByID(ctx context.Context, id int64) (*models.ResearcherProfile, error)
	UpdateResearcher(ctx context.Context, p *models.ResearcherProfile) error

	CreatePatient(ctx context.Context, p *models.PatientProfile) (*models.PatientProfile, error)
	GetPatientByUser(ctx context.Context, userID int64) (*models.PatientProfile, error)
	GetPatientByID(ctx context.Context, id int64) (*models.PatientProfile, error)
	UpdatePatient(ctx context.Context, p *models.PatientProfile) error
}
