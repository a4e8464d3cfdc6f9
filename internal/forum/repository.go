package forum

import (
	"context"
	"errors"

	"github.com/curalink/curalink/backend/api/internal/models"
)

var (
	// ErrNotFound reports a missing category, post or reply.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateName reports a category create against an existing name.
	ErrDuplicateName = errors.New("category name already exists")
)

// Repository persists forum categories, posts and replies. Reply creation
// and deletion maintain the post's reply count (floored at zero).
type Repository interface {
	CreateCategory(ctx context.Context, name string) (*models.ForumCategory, error)
	ListCategories(ctx context.Context) ([]*models.ForumCategory, error)
	GetCategory(ctx context.Context, id int64) (*models.ForumCategory, error)
	RenameCategory(ctx context.Context, id int64, name string) (*models.ForumCategory, error)
	DeleteCategory(ctx context.Context, id int64) error

	CreatePost(ctx context.Context, p *models.ForumPost) (*models.ForumPost, error)
	ListPosts(ctx context.Context) ([]*models.ForumPost, error)
	GetPost(ctx context.Context, id int64) (*models.ForumPost, error)
	UpdatePost(ctx context.Context, p *models.ForumPost) error
	DeletePost(ctx context.Context, id int64) error

	CreateReply(ctx context.Context, r *models.ForumReply) (*models.ForumReply, error)
	ListReplies(ctx context.Context, postID int64) ([]*models.ForumReply, error)
	GetReply(ctx context.Context, id int64) (*models.ForumReply, error)
	UpdateReply(ctx context.Context, r *models.ForumReply) error
	DeleteReply(ctx context.Context, id int64) error
}
