package forum

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/curalink/curalink/backend/api/internal/models"
)

// MemoryRepository is an in-memory Repository used by unit tests.
type MemoryRepository struct {
	mu         sync.Mutex
	catSeq     int64
	postSeq    int64
	replySeq   int64
	categories map[int64]*models.ForumCategory
	posts      map[int64]*models.ForumPost
	replies    map[int64]*models.ForumReply
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		categories: make(map[int64]*models.ForumCategory),
		posts:      make(map[int64]*models.ForumPost),
		replies:    make(map[int64]*models.ForumReply),
	}
}

func (m *MemoryRepository) CreateCategory(_ context.Context, name string) (*models.ForumCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.categories {
		if c.Name == name {
			return nil, ErrDuplicateName
		}
	}
	m.catSeq++
	c := &models.ForumCategory{ID: m.catSeq, Name: name}
	m.categories[c.ID] = c
	cp := *c
	return &cp, nil
}

func (m *MemoryRepository) ListCategories(_ context.Context) ([]*models.ForumCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.ForumCategory, 0, len(m.categories))
	for _, c := range m.categories {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryRepository) GetCategory(_ context.Context, id int64) (*models.ForumCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.categories[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (m *MemoryRepository) RenameCategory(_ context.Context, id int64, name string) (*models.ForumCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.categories[id]
	if !ok {
		return nil, ErrNotFound
	}
	c.Name = name
	cp := *c
	return &cp, nil
}

func (m *MemoryRepository) DeleteCategory(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[id]; !ok {
		return ErrNotFound
	}
	delete(m.categories, id)
	return nil
}

func (m *MemoryRepository) CreatePost(_ context.Context, p *models.ForumPost) (*models.ForumPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.postSeq++
	p.ID = m.postSeq
	if p.Timestamp.IsZero() {
		p.Timestamp = time.Now().UTC()
	}
	cp := *p
	m.posts[p.ID] = &cp
	return p, nil
}

func (m *MemoryRepository) ListPosts(_ context.Context) ([]*models.ForumPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.ForumPost, 0, len(m.posts))
	for _, p := range m.posts {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryRepository) GetPost(_ context.Context, id int64) (*models.ForumPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.posts[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (m *MemoryRepository) UpdatePost(_ context.Context, p *models.ForumPost) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.posts[p.ID]; !ok {
		return ErrNotFound
	}
	cp := *p
	m.posts[p.ID] = &cp
	return nil
}

func (m *MemoryRepository) DeletePost(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.posts[id]; !ok {
		return ErrNotFound
	}
	delete(m.posts, id)
	for rid, r := range m.replies {
		if r.PostID == id {
			delete(m.replies, rid)
		}
	}
	return nil
}

func (m *MemoryRepository) CreateReply(_ context.Context, r *models.ForumReply) (*models.ForumReply, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replySeq++
	r.ID = m.replySeq
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now().UTC()
	}
	cp := *r
	m.replies[r.ID] = &cp
	if p, ok := m.posts[r.PostID]; ok {
		p.Replies++
	}
	return r, nil
}

func (m *MemoryRepository) ListReplies(_ context.Context, postID int64) ([]*models.ForumReply, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.ForumReply{}
	for _, r := range m.replies {
		if r.PostID == postID {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].ID < out[j].ID
		}
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}

func (m *MemoryRepository) GetReply(_ context.Context, id int64) (*models.ForumReply, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.replies[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (m *MemoryRepository) UpdateReply(_ context.Context, r *models.ForumReply) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.replies[r.ID]; !ok {
		return ErrNotFound
	}
	cp := *r
	m.replies[r.ID] = &cp
	return nil
}

func (m *MemoryRepository) DeleteReply(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.replies[id]
	if !ok {
		return ErrNotFound
	}
	delete(m.replies, id)
	if p, ok := m.posts[r.PostID]; ok && p.Replies > 0 {
		p.Replies--
	}
	return nil
}
