package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/curalink/curalink/backend/api/internal/catalog"
	"github.com/curalink/curalink/backend/api/internal/favourites"
	"github.com/curalink/curalink/backend/api/internal/models"
	"github.com/curalink/curalink/backend/api/pkg/logger"
)

// ExpertsHandler serves expert listings and their favourite routes.
type ExpertsHandler struct {
	repo  catalog.ExpertRepository
	favs  *favourites.Service
	ident *Identity
}

func NewExpertsHandler(repo catalog.ExpertRepository, favs *favourites.Service, ident *Identity) *ExpertsHandler {
	return &ExpertsHandler{repo: repo, favs: favs, ident: ident}
}

// Register routes under /experts
func (h *ExpertsHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/experts")
	g.GET("/", h.List)
	g.POST("/", h.Create)
	favouriteRoutes{
		ident:       h.ident,
		favs:        h.favs,
		contentType: models.ContentExpert,
		kindLabel:   "Expert",
		exists:      h.expertExists,
	}.mount(g)
}

func (h *ExpertsHandler) expertExists(ctx context.Context, id int64) (bool, error) {
	_, err := h.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (h *ExpertsHandler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context())
	if err != nil {
		logger.Errorf("list experts failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list experts"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ExpertsHandler) Create(c *gin.Context) {
	if _, ok := h.ident.Researcher(c); !ok {
		return
	}
	var e models.Expert
	if err := c.ShouldBindJSON(&e); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	created, err := h.repo.Create(c.Request.Context(), &e)
	if err != nil {
		logger.Errorf("create expert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create expert"})
		return
	}
	c.JSON(http.StatusCreated, created)
}
