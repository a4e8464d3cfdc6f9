package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/curalink/curalink/backend/api/internal/favourites"
	"github.com/curalink/curalink/backend/api/pkg/logger"
)

// favouriteRoutes mounts the three favourite endpoints shared by trials,
// experts and publications. All of them require the researcher role and
// resolve the caller before touching the ledger. exists reports whether
// the target listing is present; kindLabel names it in 404 messages.
type favouriteRoutes struct {
	ident       *Identity
	favs        *favourites.Service
	contentType string
	kindLabel   string
	exists      func(ctx context.Context, id int64) (bool, error)
}

func (fr favouriteRoutes) mount(g *gin.RouterGroup) {
	g.POST("/:id/favourite", fr.add)
	g.DELETE("/:id/favourite", fr.remove)
	g.GET("/:id/favourite", fr.status)
}

func (fr favouriteRoutes) add(c *gin.Context) {
	user, ok := fr.ident.Researcher(c)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}
	present, err := fr.exists(c.Request.Context(), id)
	if err != nil {
		logger.Errorf("favourite target check failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add favourite"})
		return
	}
	if !present {
		c.JSON(http.StatusNotFound, gin.H{"error": fr.kindLabel + " not found"})
		return
	}
	created, err := fr.favs.Add(c.Request.Context(), user.ID, fr.contentType, id)
	if err != nil {
		logger.Errorf("favourite add failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add favourite"})
		return
	}
	if !created {
		c.JSON(http.StatusOK, gin.H{"message": "Already favourited"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Added to favourites"})
}

func (fr favouriteRoutes) remove(c *gin.Context) {
	user, ok := fr.ident.Researcher(c)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}
	if err := fr.favs.Remove(c.Request.Context(), user.ID, fr.contentType, id); err != nil {
		if errors.Is(err, favourites.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Favourite not found"})
			return
		}
		logger.Errorf("favourite remove failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove favourite"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Removed from favourites"})
}

func (fr favouriteRoutes) status(c *gin.Context) {
	user, ok := fr.ident.Researcher(c)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}
	favourited, err := fr.favs.StatusOf(c.Request.Context(), user.ID, fr.contentType, id)
	if err != nil {
		logger.Errorf("favourite status failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check favourite"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"favourited": favourited})
}
