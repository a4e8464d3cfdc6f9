package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/curalink/curalink/backend/api/internal/auth"
	"github.com/curalink/curalink/backend/api/internal/config"
	"github.com/curalink/curalink/backend/api/internal/models"
	"github.com/curalink/curalink/backend/api/pkg/metrics"
)

// Identity bundles the role guard and the identity resolver for handlers
// that protect actions. Every protected route goes through the same two
// steps: Authorize the bearer token, then Resolve the claims to a user.
type Identity struct {
	guard    *auth.Guard
	resolver *auth.Resolver
}

func NewIdentity(cfg *config.Config, finder auth.UserFinder) *Identity {
	return &Identity{
		guard:    auth.NewGuard(cfg),
		resolver: auth.NewResolver(finder),
	}
}

// Researcher authorizes the request for the researcher role and resolves
// the caller. On failure it writes the response and returns ok=false.
func (i *Identity) Researcher(c *gin.Context) (*models.User, bool) {
	return i.require(c, models.RoleResearcher)
}

func (i *Identity) require(c *gin.Context, role int) (*models.User, bool) {
	cs, err := i.guard.Authorize(c.GetHeader("Authorization"), role)
	if err != nil {
		writeAuthError(c, err)
		return nil, false
	}
	user, err := i.resolver.Resolve(c.Request.Context(), cs)
	if err != nil {
		writeAuthError(c, err)
		return nil, false
	}
	metrics.AuthAttempts.WithLabelValues("ok").Inc()
	return user, true
}

// writeAuthError maps authorization failures onto statuses. An identity
// that authorized but cannot be resolved to an account is still an
// authentication failure, so resolver misses map to 401, not 404.
func writeAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrForbidden):
		metrics.AuthAttempts.WithLabelValues("forbidden").Inc()
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrNotFound):
		metrics.AuthAttempts.WithLabelValues("unresolved").Inc()
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		metrics.AuthAttempts.WithLabelValues("unauthenticated").Inc()
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	}
	c.Abort()
}
