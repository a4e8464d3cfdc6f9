package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/curalink/curalink/backend/api/internal/catalog"
	"github.com/curalink/curalink/backend/api/internal/favourites"
	"github.com/curalink/curalink/backend/api/internal/models"
	"github.com/curalink/curalink/backend/api/internal/storage"
	"github.com/curalink/curalink/backend/api/pkg/logger"
)

// PublicationsHandler serves publication listings, their favourite routes
// and PDF attachments. store may be nil; the attachment routes then report
// the feature as unavailable.
type PublicationsHandler struct {
	repo  catalog.PublicationRepository
	favs  *favourites.Service
	ident *Identity
	store *storage.MinIOStorage
}

func NewPublicationsHandler(repo catalog.PublicationRepository, favs *favourites.Service, ident *Identity, store *storage.MinIOStorage) *PublicationsHandler {
	return &PublicationsHandler{repo: repo, favs: favs, ident: ident, store: store}
}

// Register routes under /publications
func (h *PublicationsHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/publications")
	g.GET("/", h.List)
	g.POST("/", h.Create)
	g.POST("/:id/pdf", h.UploadPDF)
	g.GET("/:id/pdf", h.DownloadPDF)
	favouriteRoutes{
		ident:       h.ident,
		favs:        h.favs,
		contentType: models.ContentPublication,
		kindLabel:   "Publication",
		exists:      h.publicationExists,
	}.mount(g)
}

func (h *PublicationsHandler) publicationExists(ctx context.Context, id int64) (bool, error) {
	_, err := h.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (h *PublicationsHandler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context())
	if err != nil {
		logger.Errorf("list publications failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list publications"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *PublicationsHandler) Create(c *gin.Context) {
	user, ok := h.ident.Researcher(c)
	if !ok {
		return
	}
	var p models.Publication
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p.UserID = user.ID
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	created, err := h.repo.Create(c.Request.Context(), &p)
	if err != nil {
		logger.Errorf("create publication failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create publication"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UploadPDF attaches the full text to a publication. Multipart field "file".
func (h *PublicationsHandler) UploadPDF(c *gin.Context) {
	if _, ok := h.ident.Researcher(c); !ok {
		return
	}
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Attachment storage not configured"})
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}
	if present, err := h.publicationExists(c.Request.Context(), id); err != nil || !present {
		if err != nil {
			logger.Errorf("publication check failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload attachment"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Publication not found"})
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable file"})
		return
	}
	defer f.Close()

	key := fmt.Sprintf("publications/%d.pdf", id)
	if err := h.store.UploadFile(c.Request.Context(), key, f, fh.Size, "application/pdf"); err != nil {
		logger.Errorf("attachment upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload attachment"})
		return
	}
	if err := h.repo.SetPDFKey(c.Request.Context(), id, key); err != nil {
		logger.Errorf("attachment key store failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload attachment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Attachment uploaded"})
}

func (h *PublicationsHandler) DownloadPDF(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Attachment storage not configured"})
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}
	p, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Publication not found"})
			return
		}
		logger.Errorf("publication fetch failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch attachment"})
		return
	}
	if p.PDFKey == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "No attachment"})
		return
	}
	obj, err := h.store.DownloadFile(c.Request.Context(), p.PDFKey)
	if err != nil {
		logger.Errorf("attachment download failed: %v", err)
		c.JSON(http.StatusNotFound, gin.H{"error": "No attachment"})
		return
	}
	defer obj.Close()
	c.Header("Content-Type", "application/pdf")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, obj)
}
