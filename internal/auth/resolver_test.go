package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/curalink/curalink/backend/api/internal/models"
	"github.com/curalink/curalink/backend/api/internal/tokens"
)

type fakeUserStore struct {
	byEmail map[string]*models.User
	byID    map[int64]*models.User
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return f.byEmail[email], nil
}

func (f *fakeUserStore) FindByID(_ context.Context, id int64) (*models.User, error) {
	return f.byID[id], nil
}

func storeWith(users ...*models.User) *fakeUserStore {
	f := &fakeUserStore{byEmail: map[string]*models.User{}, byID: map[int64]*models.User{}}
	for _, u := range users {
		f.byEmail[u.Email] = u
		f.byID[u.ID] = u
	}
	return f
}

func TestResolve_EmailClaim(t *testing.T) {
	u := &models.User{ID: 3, Email: "r@x.com", Role: models.RoleResearcher}
	r := NewResolver(storeWith(u))

	got, err := r.Resolve(context.Background(), &tokens.ClaimSet{Email: "r@x.com"})
	require.NoError(t, err)
	require.Equal(t, int64(3), got.ID)
}

// Once an '@' hint is chosen there is no fallback to userId/sub, even when
// those would resolve.
func TestResolve_EmailMissNoFallback(t *testing.T) {
	u := &models.User{ID: 3, Email: "r@x.com"}
	r := NewResolver(storeWith(u))

	_, err := r.Resolve(context.Background(), &tokens.ClaimSet{Email: "ghost@x.com", UserID: 3, Sub: "3"})
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, "Researcher not found", err.Error())
}

func TestResolve_UserIDClaim(t *testing.T) {
	u := &models.User{ID: 7, Email: "seven@x.com"}
	r := NewResolver(storeWith(u))

	got, err := r.Resolve(context.Background(), &tokens.ClaimSet{UserID: 7})
	require.NoError(t, err)
	require.Equal(t, int64(7), got.ID)
}

func TestResolve_UserIDUnknown(t *testing.T) {
	r := NewResolver(storeWith())
	_, err := r.Resolve(context.Background(), &tokens.ClaimSet{UserID: 42})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestResolve_SubNumeric(t *testing.T) {
	u := &models.User{ID: 9, Email: "nine@x.com"}
	r := NewResolver(storeWith(u))

	got, err := r.Resolve(context.Background(), &tokens.ClaimSet{Sub: "9"})
	require.NoError(t, err)
	require.Equal(t, int64(9), got.ID)
}

// A sub that is neither numeric nor an address falls back to an email
// lookup on its string form.
func TestResolve_SubNonNumericFallsBackToEmailLookup(t *testing.T) {
	u := &models.User{ID: 5, Email: "legacy-handle"}
	r := NewResolver(storeWith(u))

	got, err := r.Resolve(context.Background(), &tokens.ClaimSet{Sub: "legacy-handle"})
	require.NoError(t, err)
	require.Equal(t, int64(5), got.ID)
}

func TestResolve_NoHints(t *testing.T) {
	r := NewResolver(storeWith())
	_, err := r.Resolve(context.Background(), &tokens.ClaimSet{})
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, "Researcher not found", err.Error())
}

// email takes priority over userId, userId over sub
func TestResolve_Priority(t *testing.T) {
	byEmail := &models.User{ID: 1, Email: "first@x.com"}
	byID := &models.User{ID: 2, Email: "second@x.com"}
	r := NewResolver(storeWith(byEmail, byID))

	got, err := r.Resolve(context.Background(), &tokens.ClaimSet{Email: "first@x.com", UserID: 2})
	require.NoError(t, err)
	require.Equal(t, int64(1), got.ID)

	got, err = r.Resolve(context.Background(), &tokens.ClaimSet{UserID: 2, Sub: "1"})
	require.NoError(t, err)
	require.Equal(t, int64(2), got.ID)
}

func TestResolve_Deterministic(t *testing.T) {
	u := &models.User{ID: 3, Email: "r@x.com"}
	r := NewResolver(storeWith(u))
	cs := &tokens.ClaimSet{Email: "r@x.com"}
	for i := 0; i < 3; i++ {
		got, err := r.Resolve(context.Background(), cs)
		require.NoError(t, err)
		require.Equal(t, int64(3), got.ID)
	}
}
