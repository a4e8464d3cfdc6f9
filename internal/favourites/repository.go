package favourites

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/curalink/curalink/backend/api/internal/database"
	"github.com/curalink/curalink/backend/api/internal/models"
)

// ErrNotFound reports a remove against a row that does not exist.
var ErrNotFound = errors.New("favourite not found")

// Repository persists favourite rows. Insert must be atomic with respect to
// the (userId, contentType, contentId) uniqueness invariant: concurrent
// inserts of the same triple yield exactly one row, with created=false for
// the losers.
type Repository interface {
	Insert(ctx context.Context, f *models.Favourite) (created bool, err error)
	Delete(ctx context.Context, userID int64, contentType string, contentID int64) (bool, error)
	Exists(ctx context.Context, userID int64, contentType string, contentID int64) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Favourite, error)
}

// MongoRepository implements Repository using MongoDB.
type MongoRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

// NewMongoRepository creates the repository and ensures the unique compound
// index that enforces one favourite per user per content item.
func NewMongoRepository(db *mongo.Database) *MongoRepository {
	col := db.Collection("favourites")
	idx := mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "contentType", Value: 1}, {Key: "contentId", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	_, _ = col.Indexes().CreateOne(context.Background(), idx)
	return &MongoRepository{db: db, col: col}
}

func (r *MongoRepository) Insert(ctx context.Context, f *models.Favourite) (bool, error) {
	id, err := database.NextSequence(ctx, r.db, "favourites")
	if err != nil {
		return false, err
	}
	f.ID = id
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}
	if _, err := r.col.InsertOne(ctx, f); err != nil {
		// the unique index turns a concurrent duplicate into a clean
		// "already favourited" rather than a second row
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *MongoRepository) Delete(ctx context.Context, userID int64, contentType string, contentID int64) (bool, error) {
	res, err := r.col.DeleteOne(ctx, tripleFilter(userID, contentType, contentID))
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *MongoRepository) Exists(ctx context.Context, userID int64, contentType string, contentID int64) (bool, error) {
	n, err := r.col.CountDocuments(ctx, tripleFilter(userID, contentType, contentID), options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *MongoRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Favourite, error) {
	cur, err := r.col.Find(ctx, bson.M{"userId": userID}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*models.Favourite{}
	for cur.Next(ctx) {
		var f models.Favourite
		if err := cur.Decode(&f); err != nil {
			return nil, err
		}
		out = append(out, &f)
	}
	return out, cur.Err()
}

func tripleFilter(userID int64, contentType string, contentID int64) bson.M {
	return bson.M{"userId": userID, "contentType": contentType, "contentId": contentID}
}
