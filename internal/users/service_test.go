package users

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/curalink/curalink/backend/api/internal/models"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	u, err := svc.Register(ctx, "a@b.com", "pw123456", "Alice", models.RoleResearcher)
	require.NoError(t, err)
	require.Equal(t, int64(1), u.ID)
	require.Equal(t, models.RoleResearcher, u.Role)
	require.NotEqual(t, "pw123456", u.HashedPassword)
	require.False(t, u.CreatedAt.IsZero())

	got, err := svc.Authenticate(ctx, "a@b.com", "pw123456")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@b.com", "pw123456", "", models.RolePatient)
	require.NoError(t, err)

	_, err = svc.Register(ctx, "a@b.com", "other-pw", "", models.RolePatient)
	require.ErrorIs(t, err, ErrEmailTaken)

	// no duplicate row was created
	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestAuthenticate_Failures(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@b.com", "pw123456", "", models.RolePatient)
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "a@b.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "ghost@b.com", "pw123456")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

// Passwords beyond 72 bytes are truncated identically on hash and verify.
func TestPassword_Truncation(t *testing.T) {
	long := strings.Repeat("x", 80)
	hash, err := HashPassword(long)
	require.NoError(t, err)
	require.True(t, CheckPassword(long, hash))
	require.True(t, CheckPassword(strings.Repeat("x", 72), hash))
	require.False(t, CheckPassword(strings.Repeat("x", 71), hash))
}

func TestMarkOnboarded(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	u, err := svc.Register(ctx, "a@b.com", "pw123456", "", models.RolePatient)
	require.NoError(t, err)
	require.False(t, u.HasOnboarded)

	require.NoError(t, svc.MarkOnboarded(ctx, u.ID))
	got, err := svc.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, got.HasOnboarded)
}
