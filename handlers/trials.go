package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/curalink/curalink/backend/api/internal/catalog"
	"github.com/curalink/curalink/backend/api/internal/favourites"
	"github.com/curalink/curalink/backend/api/internal/models"
	"github.com/curalink/curalink/backend/api/pkg/logger"
)

// TrialsHandler serves clinical trial listings and their favourite routes.
type TrialsHandler struct {
	repo  catalog.TrialRepository
	favs  *favourites.Service
	ident *Identity
}

func NewTrialsHandler(repo catalog.TrialRepository, favs *favourites.Service, ident *Identity) *TrialsHandler {
	return &TrialsHandler{repo: repo, favs: favs, ident: ident}
}

// Register routes under /trials
func (h *TrialsHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/trials")
	g.GET("/", h.List)
	g.POST("/", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	favouriteRoutes{
		ident:       h.ident,
		favs:        h.favs,
		contentType: models.ContentTrial,
		kindLabel:   "Trial",
		exists:      h.trialExists,
	}.mount(g)
}

func (h *TrialsHandler) trialExists(ctx context.Context, id int64) (bool, error) {
	_, err := h.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (h *TrialsHandler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context())
	if err != nil {
		logger.Errorf("list trials failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list trials"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *TrialsHandler) Create(c *gin.Context) {
	if _, ok := h.ident.Researcher(c); !ok {
		return
	}
	var t models.Trial
	if err := c.ShouldBindJSON(&t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.repo.Create(c.Request.Context(), &t)
	if err != nil {
		logger.Errorf("create trial failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create trial"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *TrialsHandler) Update(c *gin.Context) {
	if _, ok := h.ident.Researcher(c); !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}
	var t models.Trial
	if err := c.ShouldBindJSON(&t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t.ID = id
	if err := h.repo.Update(c.Request.Context(), &t); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trial not found"})
			return
		}
		logger.Errorf("update trial failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update trial"})
		return
	}
	c.JSON(http.StatusOK, &t)
}

func (h *TrialsHandler) Delete(c *gin.Context) {
	if _, ok := h.ident.Researcher(c); !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Trial not found"})
			return
		}
		logger.Errorf("delete trial failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete trial"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Trial deleted"})
}
