package auth

import (
	"strings"

	"github.com/curalink/curalink/backend/api/internal/config"
	"github.com/curalink/curalink/backend/api/internal/models"
	"github.com/curalink/curalink/backend/api/internal/tokens"
)

// Guard validates bearer credentials and enforces a minimum-role policy.
type Guard struct {
	cfg *config.Config
}

func NewGuard(cfg *config.Config) *Guard {
	return &Guard{cfg: cfg}
}

// Authorize takes the raw Authorization header value, verifies the bearer
// token it carries and checks the role claim against requiredRole. On
// success the full claim set is returned for identity resolution.
//
// Failure modes, in order:
//   - missing/malformed header, bad signature, expiry -> ErrUnauthenticated
//   - role claim absent                               -> ErrUnauthenticated
//   - role claim not coercible to an integer          -> ErrUnauthenticated
//   - role != requiredRole                            -> ErrForbidden
func (g *Guard) Authorize(header string, requiredRole int) (*tokens.ClaimSet, error) {
	cs, err := tokens.Verify(g.cfg, BearerToken(header))
	if err != nil {
		return nil, unauthenticated("Invalid or expired token")
	}

	role, present, err := cs.RoleValue()
	if !present {
		return nil, unauthenticated("Token missing role claim")
	}
	if err != nil {
		return nil, unauthenticated("Invalid role format in token")
	}

	if role != requiredRole {
		if requiredRole == models.RoleResearcher {
			return nil, forbidden("Only researchers can perform this action")
		}
		return nil, forbidden("Only patients can perform this action")
	}

	return cs, nil
}

// BearerToken extracts the token from an Authorization header value: the
// substring after the first space. A missing header or one with no space
// yields "", which Verify then rejects.
func BearerToken(header string) string {
	fields := strings.Split(header, " ")
	if len(fields) < 2 {
		return ""
	}
	return fields[1]
}
