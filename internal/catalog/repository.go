package catalog

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/curalink/curalink/backend/api/internal/models"
)

// ErrNotFound reports a lookup or mutation against a missing listing.
var ErrNotFound = errors.New("not found")

// TrialRepository persists clinical trial listings.
type TrialRepository interface {
	List(ctx context.Context) ([]*models.Trial, error)
	Create(ctx context.Context, t *models.Trial) (*models.Trial, error)
	Get(ctx context.Context, id int64) (*models.Trial, error)
	Update(ctx context.Context, t *models.Trial) error
	Delete(ctx context.Context, id int64) error
}

// ExpertRepository persists expert listings.
type ExpertRepository interface {
	List(ctx context.Context) ([]*models.Expert, error)
	Create(ctx context.Context, e *models.Expert) (*models.Expert, error)
	Get(ctx context.Context, id int64) (*models.Expert, error)
}

// PublicationRepository persists publication listings.
type PublicationRepository interface {
	List(ctx context.Context) ([]*models.Publication, error)
	Create(ctx context.Context, p *models.Publication) (*models.Publication, error)
	Get(ctx context.Context, id int64) (*models.Publication, error)
	SetPDFKey(ctx context.Context, id int64, key string) error
}

// listAll decodes every document of a collection in id order.
func listAll[T any](ctx context.Context, col *mongo.Collection) ([]*T, error) {
	cur, err := col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*T{}
	for cur.Next(ctx) {
		var v T
		if err := cur.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, cur.Err()
}

func getByID[T any](ctx context.Context, col *mongo.Collection, id int64) (*T, error) {
	var v T
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&v); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}
