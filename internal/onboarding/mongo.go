package onboarding

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/curalink/curalink/backend/api/internal/database"
	"github.com/curalink/curalink/backend/api/internal/models"
)

// MongoRepository implements Repository using MongoDB.
type MongoRepository struct {
	db          *mongo.Database
	researchers *mongo.Collection
	patients    *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		db:          db,
		researchers: db.Collection("researcher_profiles"),
		patients:    db.Collection("patient_profiles"),
	}
}

func (r *MongoRepository) CreateResearcher(ctx context.Context, p *models.ResearcherProfile) (*models.ResearcherProfile, error) {
	id, err := database.NextSequence(ctx, r.db, "researcher_profiles")
	if err != nil {
		return nil, err
	}
	p.ID = id
	if _, err := r.researchers.InsertOne(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *MongoRepository) GetResearcherByUser(ctx context.Context, userID int64) (*models.ResearcherProfile, error) {
	return decodeResearcher(r.researchers.FindOne(ctx, bson.M{"userId": userID}))
}

func (r *MongoRepository) GetResearcherByID(ctx context.Context, id int64) (*models.ResearcherProfile, error) {
	return decodeResearcher(r.researchers.FindOne(ctx, bson.M{"_id": id}))
}

func (r *MongoRepository) UpdateResearcher(ctx context.Context, p *models.ResearcherProfile) error {
	res, err := r.researchers.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) CreatePatient(ctx context.Context, p *models.PatientProfile) (*models.PatientProfile, error) {
	id, err := database.NextSequence(ctx, r.db, "patient_profiles")
	if err != nil {
		return nil, err
	}
	p.ID = id
	if _, err := r.patients.InsertOne(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *MongoRepository) GetPatientByUser(ctx context.Context, userID int64) (*models.PatientProfile, error) {
	return decodePatient(r.patients.FindOne(ctx, bson.M{"userId": userID}))
}

func (r *MongoRepository) GetPatientByID(ctx context.Context, id int64) (*models.PatientProfile, error) {
	return decodePatient(r.patients.FindOne(ctx, bson.M{"_id": id}))
}

func (r *MongoRepository) UpdatePatient(ctx context.Context, p *models.PatientProfile) error {
	res, err := r.patients.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func decodeResearcher(res *mongo.SingleResult) (*models.ResearcherProfile, error) {
	var p models.ResearcherProfile
	if err := res.Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func decodePatient(res *mongo.SingleResult) (*models.PatientProfile, error) {
	var p models.PatientProfile
	if err := res.Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}
