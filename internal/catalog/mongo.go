package catalog

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/curalink/curalink/backend/api/internal/database"
	"github.com/curalink/curalink/backend/api/internal/models"
)

// MongoTrialRepository implements TrialRepository using MongoDB.
type MongoTrialRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewMongoTrialRepository(db *mongo.Database) *MongoTrialRepository {
	return &MongoTrialRepository{db: db, col: db.Collection("trials")}
}

func (r *MongoTrialRepository) List(ctx context.Context) ([]*models.Trial, error) {
	return listAll[models.Trial](ctx, r.col)
}

func (r *MongoTrialRepository) Create(ctx context.Context, t *models.Trial) (*models.Trial, error) {
	id, err := database.NextSequence(ctx, r.db, "trials")
	if err != nil {
		return nil, err
	}
	t.ID = id
	if _, err := r.col.InsertOne(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *MongoTrialRepository) Get(ctx context.Context, id int64) (*models.Trial, error) {
	return getByID[models.Trial](ctx, r.col, id)
}

func (r *MongoTrialRepository) Update(ctx context.Context, t *models.Trial) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": t.ID}, t)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoTrialRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MongoExpertRepository implements ExpertRepository using MongoDB.
type MongoExpertRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewMongoExpertRepository(db *mongo.Database) *MongoExpertRepository {
	return &MongoExpertRepository{db: db, col: db.Collection("experts")}
}

func (r *MongoExpertRepository) List(ctx context.Context) ([]*models.Expert, error) {
	return listAll[models.Expert](ctx, r.col)
}

func (r *MongoExpertRepository) Create(ctx context.Context, e *models.Expert) (*models.Expert, error) {
	id, err := database.NextSequence(ctx, r.db, "experts")
	if err != nil {
		return nil, err
	}
	e.ID = id
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if _, err := r.col.InsertOne(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *MongoExpertRepository) Get(ctx context.Context, id int64) (*models.Expert, error) {
	return getByID[models.Expert](ctx, r.col, id)
}

// MongoPublicationRepository implements PublicationRepository using MongoDB.
type MongoPublicationRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewMongoPublicationRepository(db *mongo.Database) *MongoPublicationRepository {
	return &MongoPublicationRepository{db: db, col: db.Collection("publications")}
}

func (r *MongoPublicationRepository) List(ctx context.Context) ([]*models.Publication, error) {
	return listAll[models.Publication](ctx, r.col)
}

func (r *MongoPublicationRepository) Create(ctx context.Context, p *models.Publication) (*models.Publication, error) {
	id, err := database.NextSequence(ctx, r.db, "publications")
	if err != nil {
		return nil, err
	}
	p.ID = id
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if _, err := r.col.InsertOne(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *MongoPublicationRepository) Get(ctx context.Context, id int64) (*models.Publication, error) {
	return getByID[models.Publication](ctx, r.col, id)
}

func (r *MongoPublicationRepository) SetPDFKey(ctx context.Context, id int64, key string) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"pdfKey": key}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
