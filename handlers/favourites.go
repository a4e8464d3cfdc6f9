package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/curalink/curalink/backend/api/internal/favourites"
	"github.com/curalink/curalink/backend/api/pkg/logger"
)

// FavouritesHandler serves the caller's favourite list.
type FavouritesHandler struct {
	favs  *favourites.Service
	ident *Identity
}

func NewFavouritesHandler(favs *favourites.Service, ident *Identity) *FavouritesHandler {
	return &FavouritesHandler{favs: favs, ident: ident}
}

// Register routes under /favourites
func (h *FavouritesHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/favourites")
	g.GET("/", h.List)
}

func (h *FavouritesHandler) List(c *gin.Context) {
	user, ok := h.ident.Researcher(c)
	if !ok {
		return
	}
	list, err := h.favs.ListForUser(c.Request.Context(), user.ID)
	if err != nil {
		logger.Errorf("list favourites failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list favourites"})
		return
	}
	c.JSON(http.StatusOK, list)
}
