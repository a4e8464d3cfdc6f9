package auth

import (
	"context"
	"strconv"
	"strings"

	"github.com/curalink/curalink/backend/api/internal/models"
	"github.com/curalink/curalink/backend/api/internal/tokens"
)

// UserFinder is the slice of the user store the resolver needs.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// Resolver maps a verified claim set back to a concrete user record.
// Tokens issued over the platform's lifetime carry identity under different
// keys (email, userId, sub), so resolution follows a fixed priority chain
// and must behave identically for every favourite call site.
type Resolver struct {
	users UserFinder
}

func NewResolver(users UserFinder) *Resolver {
	return &Resolver{users: users}
}

// Resolve picks the first present identity hint — email, then userId, then
// sub — and resolves it:
//
//   - a string hint containing '@' is looked up as an email, with no
//     fallback to the other hints on a miss; email is authoritative when
//     present
//   - otherwise the hint is coerced to an integer and looked up by id
//   - a string hint that is not an integer is looked up as an email
//
// Every miss is reported as ErrNotFound("Researcher not found"): an
// unresolvable identity on a protected action is an authentication defect,
// not a missing resource.
func (r *Resolver) Resolve(ctx context.Context, cs *tokens.ClaimSet) (*models.User, error) {
	var (
		user *models.User
		err  error
	)
	switch {
	case cs.Email != "":
		user, err = r.resolveString(ctx, cs.Email)
	case cs.UserID != 0:
		user, err = r.users.FindByID(ctx, cs.UserID)
	case cs.Sub != "":
		user, err = r.resolveString(ctx, cs.Sub)
	default:
		return nil, notFound("Researcher not found")
	}
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFound("Researcher not found")
	}
	return user, nil
}

func (r *Resolver) resolveString(ctx context.Context, hint string) (*models.User, error) {
	if strings.Contains(hint, "@") {
		return r.users.FindByEmail(ctx, hint)
	}
	if id, perr := strconv.ParseInt(hint, 10, 64); perr == nil {
		return r.users.FindByID(ctx, id)
	}
	return r.users.FindByEmail(ctx, hint)
}
