package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/curalink/curalink/backend/api/internal/auth"
	"github.com/curalink/curalink/backend/api/internal/config"
	"github.com/curalink/curalink/backend/api/internal/models"
	"github.com/curalink/curalink/backend/api/internal/onboarding"
	"github.com/curalink/curalink/backend/api/internal/tokens"
	"github.com/curalink/curalink/backend/api/internal/users"
	"github.com/curalink/curalink/backend/api/pkg/logger"
)

type ResearcherProfileRequest struct {
	Condition string   `json:"condition" binding:"required"`
	Location  string   `json:"location"`
	Tags      []string `json:"tags"`
}

type PatientProfileRequest struct {
	Condition string `json:"condition" binding:"required"`
	Location  string `json:"location"`
}

// OnboardingHandler serves post-registration profile routes. Unlike the
// favourite routes, identity here comes from the userId claim alone; tokens
// without it are rejected rather than resolved through other hints.
type OnboardingHandler struct {
	cfg      *config.Config
	usersSvc *users.Service
	repo     onboarding.Repository
}

func NewOnboardingHandler(cfg *config.Config, u *users.Service, repo onboarding.Repository) *OnboardingHandler {
	return &OnboardingHandler{cfg: cfg, usersSvc: u, repo: repo}
}

// Register routes under /onboarding
func (h *OnboardingHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/onboarding")
	g.GET("/status", h.Status)

	r := g.Group("/researcher")
	r.POST("/", h.CreateResearcherProfile)
	r.GET("/", h.GetOwnResearcherProfile)
	r.PUT("/", h.UpdateResearcherProfile)
	r.GET("/:id", h.GetResearcherProfile)

	p := g.Group("/patient")
	p.POST("/", h.CreatePatientProfile)
	p.GET("/", h.GetOwnPatientProfile)
	p.PUT("/", h.UpdatePatientProfile)
	p.GET("/:id", h.GetPatientProfile)
}

// currentUser loads the account behind the request's userId claim.
func (h *OnboardingHandler) currentUser(c *gin.Context) (*models.User, bool) {
	cs, err := tokens.Verify(h.cfg, auth.BearerToken(c.GetHeader("Authorization")))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return nil, false
	}
	if cs.UserID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token payload"})
		return nil, false
	}
	u, err := h.usersSvc.GetByID(c.Request.Context(), cs.UserID)
	if err != nil {
		logger.Errorf("user lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return nil, false
	}
	if u == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return nil, false
	}
	return u, true
}

func (h *OnboardingHandler) requireRole(c *gin.Context, role int) (*models.User, bool) {
	u, ok := h.currentUser(c)
	if !ok {
		return nil, false
	}
	if u.Role != role {
		if role == models.RoleResearcher {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only researchers can access this route"})
		} else {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only patients can access this route"})
		}
		return nil, false
	}
	return u, true
}

func (h *OnboardingHandler) Status(c *gin.Context) {
	u, ok := h.currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"has_onboarded": u.HasOnboarded, "role": u.Role})
}

func (h *OnboardingHandler) CreateResearcherProfile(c *gin.Context) {
	u, ok := h.requireRole(c, models.RoleResearcher)
	if !ok {
		return
	}
	var req ResearcherProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p := &models.ResearcherProfile{
		UserID:    u.ID,
		Condition: req.Condition,
		Location:  req.Location,
		Tags:      strings.Join(req.Tags, ","),
	}
	created, err := h.repo.CreateResearcher(c.Request.Context(), p)
	if err != nil {
		logger.Errorf("create researcher profile failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create profile"})
		return
	}
	if err := h.usersSvc.MarkOnboarded(c.Request.Context(), u.ID); err != nil {
		logger.Errorf("mark onboarded failed: %v", err)
	}
	c.JSON(http.StatusCreated, researcherProfileJSON(created))
}

func (h *OnboardingHandler) GetOwnResearcherProfile(c *gin.Context) {
	u, ok := h.requireRole(c, models.RoleResearcher)
	if !ok {
		return
	}
	p, err := h.repo.GetResearcherByUser(c.Request.Context(), u.ID)
	if err != nil {
		writeProfileError(c, err, "fetch researcher profile")
		return
	}
	c.JSON(http.StatusOK, researcherProfileJSON(p))
}

func (h *OnboardingHandler) UpdateResearcherProfile(c *gin.Context) {
	u, ok := h.requireRole(c, models.RoleResearcher)
	if !ok {
		return
	}
	p, err := h.repo.GetResearcherByUser(c.Request.Context(), u.ID)
	if err != nil {
		writeProfileError(c, err, "fetch researcher profile")
		return
	}
	var req ResearcherProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p.Condition = req.Condition
	p.Location = req.Location
	p.Tags = strings.Join(req.Tags, ",")
	if err := h.repo.UpdateResearcher(c.Request.Context(), p); err != nil {
		writeProfileError(c, err, "update researcher profile")
		return
	}
	c.JSON(http.StatusOK, researcherProfileJSON(p))
}

func (h *OnboardingHandler) GetResearcherProfile(c *gin.Context) {
	if _, ok := h.currentUser(c); !ok {
		return
	}
	id, err := parseID(c, "id")
	if err != nil {
		return
	}
	p, err := h.repo.GetResearcherByID(c.Request.Context(), id)
	if err != nil {
		writeProfileError(c, err, "fetch researcher profile")
		return
	}
	c.JSON(http.StatusOK, researcherProfileJSON(p))
}

func (h *OnboardingHandler) CreatePatientProfile(c *gin.Context) {
	u, ok := h.requireRole(c, models.RolePatient)
	if !ok {
		return
	}
	var req PatientProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p := &models.PatientProfile{
		UserID:    u.ID,
		Condition: req.Condition,
		Location:  req.Location,
	}
	created, err := h.repo.CreatePatient(c.Request.Context(), p)
	if err != nil {
		logger.Errorf("create patient profile failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create profile"})
		return
	}
	if err := h.usersSvc.MarkOnboarded(c.Request.Context(), u.ID); err != nil {
		logger.Errorf("mark onboarded failed: %v", err)
	}
	c.JSON(http.StatusCreated, created)
}

func (h *OnboardingHandler) GetOwnPatientProfile(c *gin.Context) {
	u, ok := h.requireRole(c, models.RolePatient)
	if !ok {
		return
	}
	p, err := h.repo.GetPatientByUser(c.Request.Context(), u.ID)
	if err != nil {
		writeProfileError(c, err, "fetch patient profile")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *OnboardingHandler) UpdatePatientProfile(c *gin.Context) {
	u, ok := h.requireRole(c, models.RolePatient)
	if !ok {
		return
	}
	p, err := h.repo.GetPatientByUser(c.Request.Context(), u.ID)
	if err != nil {
		writeProfileError(c, err, "fetch patient profile")
		return
	}
	var req PatientProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p.Condition = req.Condition
	p.Location = req.Location
	if err := h.repo.UpdatePatient(c.Request.Context(), p); err != nil {
		writeProfileError(c, err, "update patient profile")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *OnboardingHandler) GetPatientProfile(c *gin.Context) {
	if _, ok := h.currentUser(c); !ok {
		return
	}
	id, err := parseID(c, "id")
	if err != nil {
		return
	}
	p, err := h.repo.GetPatientByID(c.Request.Context(), id)
	if err != nil {
		writeProfileError(c, err, "fetch patient profile")
		return
	}
	c.JSON(http.StatusOK, p)
}

// researcherProfileJSON splits the stored comma-joined tags for the API.
func researcherProfileJSON(p *models.ResearcherProfile) gin.H {
	tags := []string{}
	if p.Tags != "" {
		tags = strings.Split(p.Tags, ",")
	}
	return gin.H{
		"id":        p.ID,
		"user_id":   p.UserID,
		"condition": p.Condition,
		"location":  p.Location,
		"tags":      tags,
	}
}

func writeProfileError(c *gin.Context, err error, op string) {
	if errors.Is(err, onboarding.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}
	logger.Errorf("%s failed: %v", op, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Profile operation failed"})
}
