package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/curalink/curalink/backend/api/internal/forum"
	"github.com/curalink/curalink/backend/api/internal/models"
	"github.com/curalink/curalink/backend/api/pkg/logger"
)

type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

type PostRequest struct {
	Title      string `json:"title" binding:"required"`
	Author     string `json:"author" binding:"required"`
	Role       string `json:"role"`
	CategoryID int64  `json:"category_id"`
	Preview    string `json:"preview"`
}

type ReplyRequest struct {
	Author  string `json:"author" binding:"required"`
	Role    string `json:"role"`
	Content string `json:"content" binding:"required"`
}

// ForumHandler serves categories, posts and replies. Forum routes are open;
// authorship is client-reported, matching the platform's community pages.
type ForumHandler struct {
	repo forum.Repository
}

func NewForumHandler(repo forum.Repository) *ForumHandler {
	return &ForumHandler{repo: repo}
}

// Register routes under /forum
func (h *ForumHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/forum")

	cats := g.Group("/categories")
	cats.GET("/", h.ListCategories)
	cats.POST("/", h.CreateCategory)
	cats.PUT("/:id", h.RenameCategory)
	cats.DELETE("/:id", h.DeleteCategory)

	posts := g.Group("/posts")
	posts.GET("/", h.ListPosts)
	posts.POST("/", h.CreatePost)
	posts.GET("/:id", h.GetPost)
	posts.PUT("/:id", h.UpdatePost)
	posts.DELETE("/:id", h.DeletePost)
	posts.GET("/:id/replies", h.ListReplies)
	posts.POST("/:id/replies", h.CreateReply)
	posts.PUT("/:id/replies/:replyId", h.UpdateReply)
	posts.DELETE("/:id/replies/:replyId", h.DeleteReply)
}

func (h *ForumHandler) ListCategories(c *gin.Context) {
	list, err := h.repo.ListCategories(c.Request.Context())
	if err != nil {
		logger.Errorf("list categories failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list categories"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ForumHandler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cat, err := h.repo.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		if errors.Is(err, forum.ErrDuplicateName) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category with this name already exists"})
			return
		}
		logger.Errorf("create category failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}
	c.JSON(http.StatusCreated, cat)
}

func (h *ForumHandler) RenameCategory(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cat, err := h.repo.RenameCategory(c.Request.Context(), id, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, forum.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		case errors.Is(err, forum.ErrDuplicateName):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category with this name already exists"})
		default:
			logger.Errorf("rename category failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		}
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *ForumHandler) DeleteCategory(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}
	if err := h.repo.DeleteCategory(c.Request.Context(), id); err != nil {
		if errors.Is(err, forum.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		logger.Errorf("delete category failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

func (h *ForumHandler) ListPosts(c *gin.Context) {
	list, err := h.repo.ListPosts(c.Request.Context())
	if err != nil {
		logger.Errorf("list posts failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list posts"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ForumHandler) CreatePost(c *gin.Context) {
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p := &models.ForumPost{
		Title:      req.Title,
		Author:     req.Author,
		Role:       req.Role,
		CategoryID: req.CategoryID,
		Preview:    req.Preview,
		Timestamp:  time.Now().UTC(),
	}
	created, err := h.repo.CreatePost(c.Request.Context(), p)
	if err != nil {
		logger.Errorf("create post failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ForumHandler) GetPost(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}
	p, err := h.repo.GetPost(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, forum.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		logger.Errorf("get post failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch post"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ForumHandler) UpdatePost(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}
	existing, err := h.repo.GetPost(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, forum.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		logger.Errorf("get post failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	existing.Title = req.Title
	existing.Author = req.Author
	existing.Role = req.Role
	existing.CategoryID = req.CategoryID
	existing.Preview = req.Preview
	if err := h.repo.UpdatePost(c.Request.Context(), existing); err != nil {
		logger.Errorf("update post failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}
	c.JSON(http.StatusOK, existing)
}

func (h *ForumHandler) DeletePost(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}
	if err := h.repo.DeletePost(c.Request.Context(), id); err != nil {
		if errors.Is(err, forum.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		logger.Errorf("delete post failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Post %d deleted successfully.", id)})
}

func (h *ForumHandler) ListReplies(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}
	if _, err := h.repo.GetPost(c.Request.Context(), id); err != nil {
		if errors.Is(err, forum.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		logger.Errorf("get post failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list replies"})
		return
	}
	list, err := h.repo.ListReplies(c.Request.Context(), id)
	if err != nil {
		logger.Errorf("list replies failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list replies"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ForumHandler) CreateReply(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		return
	}
	if _, err := h.repo.GetPost(c.Request.Context(), id); err != nil {
		if errors.Is(err, forum.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		logger.Errorf("get post failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reply"})
		return
	}
	var req ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	r := &models.ForumReply{
		PostID:    id,
		Author:    req.Author,
		Role:      req.Role,
		Content:   req.Content,
		Timestamp: time.Now().UTC(),
	}
	created, err := h.repo.CreateReply(c.Request.Context(), r)
	if err != nil {
		logger.Errorf("create reply failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reply"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ForumHandler) UpdateReply(c *gin.Context) {
	postID, err := parseID(c, "id")
	if err != nil {
		return
	}
	replyID, err := parseID(c, "replyId")
	if err != nil {
		return
	}
	existing, err := h.repo.GetReply(c.Request.Context(), replyID)
	if err != nil || existing.PostID != postID {
		if err == nil || errors.Is(err, forum.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reply not found"})
			return
		}
		logger.Errorf("get reply failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reply"})
		return
	}
	var req ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	existing.Author = req.Author
	existing.Role = req.Role
	existing.Content = req.Content
	if err := h.repo.UpdateReply(c.Request.Context(), existing); err != nil {
		logger.Errorf("update reply failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reply"})
		return
	}
	c.JSON(http.StatusOK, existing)
}

func (h *ForumHandler) DeleteReply(c *gin.Context) {
	postID, err := parseID(c, "id")
	if err != nil {
		return
	}
	replyID, err := parseID(c, "replyId")
	if err != nil {
		return
	}
	existing, err := h.repo.GetReply(c.Request.Context(), replyID)
	if err != nil || existing.PostID != postID {
		if err == nil || errors.Is(err, forum.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reply not found"})
			return
		}
		logger.Errorf("get reply failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete reply"})
		return
	}
	if err := h.repo.DeleteReply(c.Request.Context(), replyID); err != nil {
		logger.Errorf("delete reply failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete reply"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reply deleted"})
}

// parseID reads an integer path parameter, writing a 400 on failure.
func parseID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, err
	}
	return id, nil
}
