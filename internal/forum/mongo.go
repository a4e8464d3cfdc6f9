package forum

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/curalink/curalink/backend/api/internal/database"
	"github.com/curalink/curalink/backend/api/internal/models"
)

// MongoRepository implements Repository using MongoDB.
type MongoRepository struct {
	db         *mongo.Database
	categories *mongo.Collection
	posts      *mongo.Collection
	replies    *mongo.Collection
}

// NewMongoRepository creates the repository and ensures the unique category
// name index.
func NewMongoRepository(db *mongo.Database) *MongoRepository {
	r := &MongoRepository{
		db:         db,
		categories: db.Collection("forum_categories"),
		posts:      db.Collection("forum_posts"),
		replies:    db.Collection("forum_replies"),
	}
	idx := mongo.IndexModel{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)}
	_, _ = r.categories.Indexes().CreateOne(context.Background(), idx)
	return r
}

func (r *MongoRepository) CreateCategory(ctx context.Context, name string) (*models.ForumCategory, error) {
	id, err := database.NextSequence(ctx, r.db, "forum_categories")
	if err != nil {
		return nil, err
	}
	c := &models.ForumCategory{ID: id, Name: name}
	if _, err := r.categories.InsertOne(ctx, c); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	return c, nil
}

func (r *MongoRepository) ListCategories(ctx context.Context) ([]*models.ForumCategory, error) {
	return findAll[models.ForumCategory](ctx, r.categories, bson.M{}, bson.D{{Key: "_id", Value: 1}})
}

func (r *MongoRepository) GetCategory(ctx context.Context, id int64) (*models.ForumCategory, error) {
	return findOne[models.ForumCategory](ctx, r.categories, bson.M{"_id": id})
}

func (r *MongoRepository) RenameCategory(ctx context.Context, id int64, name string) (*models.ForumCategory, error) {
	res, err := r.categories.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"name": name}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return &models.ForumCategory{ID: id, Name: name}, nil
}

func (r *MongoRepository) DeleteCategory(ctx context.Context, id int64) error {
	res, err := r.categories.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) CreatePost(ctx context.Context, p *models.ForumPost) (*models.ForumPost, error) {
	id, err := database.NextSequence(ctx, r.db, "forum_posts")
	if err != nil {
		return nil, err
	}
	p.ID = id
	if p.Timestamp.IsZero() {
		p.Timestamp = time.Now().UTC()
	}
	if _, err := r.posts.InsertOne(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *MongoRepository) ListPosts(ctx context.Context) ([]*models.ForumPost, error) {
	return findAll[models.ForumPost](ctx, r.posts, bson.M{}, bson.D{{Key: "_id", Value: 1}})
}

func (r *MongoRepository) GetPost(ctx context.Context, id int64) (*models.ForumPost, error) {
	return findOne[models.ForumPost](ctx, r.posts, bson.M{"_id": id})
}

func (r *MongoRepository) UpdatePost(ctx context.Context, p *models.ForumPost) error {
	res, err := r.posts.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) DeletePost(ctx context.Context, id int64) error {
	res, err := r.posts.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	// replies do not outlive their post
	_, _ = r.replies.DeleteMany(ctx, bson.M{"postId": id})
	return nil
}

func (r *MongoRepository) CreateReply(ctx context.Context, reply *models.ForumReply) (*models.ForumReply, error) {
	id, err := database.NextSequence(ctx, r.db, "forum_replies")
	if err != nil {
		return nil, err
	}
	reply.ID = id
	if reply.Timestamp.IsZero() {
		reply.Timestamp = time.Now().UTC()
	}
	if _, err := r.replies.InsertOne(ctx, reply); err != nil {
		return nil, err
	}
	_, err = r.posts.UpdateOne(ctx, bson.M{"_id": reply.PostID}, bson.M{"$inc": bson.M{"replies": 1}})
	if err != nil {
		return nil, err
	}
	return reply, nil
}

func (r *MongoRepository) ListReplies(ctx context.Context, postID int64) ([]*models.ForumReply, error) {
	return findAll[models.ForumReply](ctx, r.replies, bson.M{"postId": postID}, bson.D{{Key: "timestamp", Value: 1}})
}

func (r *MongoRepository) GetReply(ctx context.Context, id int64) (*models.ForumReply, error) {
	return findOne[models.ForumReply](ctx, r.replies, bson.M{"_id": id})
}

func (r *MongoRepository) UpdateReply(ctx context.Context, reply *models.ForumReply) error {
	res, err := r.replies.ReplaceOne(ctx, bson.M{"_id": reply.ID}, reply)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) DeleteReply(ctx context.Context, id int64) error {
	reply, err := r.GetReply(ctx, id)
	if err != nil {
		return err
	}
	res, err := r.replies.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	// decrement the post's reply count, never below zero
	_, _ = r.posts.UpdateOne(ctx,
		bson.M{"_id": reply.PostID, "replies": bson.M{"$gt": 0}},
		bson.M{"$inc": bson.M{"replies": -1}})
	return nil
}

func findAll[T any](ctx context.Context, col *mongo.Collection, filter bson.M, sortKeys bson.D) ([]*T, error) {
	cur, err := col.Find(ctx, filter, options.Find().SetSort(sortKeys))
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

func findOne[T any](ctx context.Context, col *mongo.Collection, filter bson.M) (*T, error) {
	var v T
	if err := col.FindOne(ctx, filter).Decode(&v); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}
