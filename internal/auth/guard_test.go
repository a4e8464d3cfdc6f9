package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/curalink/curalink/backend/api/internal/config"
	"github.com/curalink/curalink/backend/api/internal/models"
	"github.com/curalink/curalink/backend/api/internal/tokens"
)

func guardConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "guard-test-secret-32-bytes-xxxxxxxx"
	cfg.JWT.Algorithm = "HS256"
	cfg.JWT.AccessTokenTTL = time.Hour
	return cfg
}

// signRaw builds a token with arbitrary claims, bypassing Issue, to mimic
// tokens from older issuers.
func signRaw(t *testing.T, cfg *config.Config, claims jwt.MapClaims) string {
	t.Helper()
	if _, ok := claims["exp"]; !ok {
		claims["exp"] = time.Now().Add(time.Hour).Unix()
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWT.Secret))
	require.NoError(t, err)
	return s
}

func TestAuthorize_MissingHeader(t *testing.T) {
	g := NewGuard(guardConfig())
	for _, header := range []string{"", "tokenwithoutspace"} {
		_, err := g.Authorize(header, models.RoleResearcher)
		require.ErrorIs(t, err, ErrUnauthenticated)
		require.Equal(t, "Invalid or expired token", err.Error())
	}
}

func TestAuthorize_InvalidToken(t *testing.T) {
	g := NewGuard(guardConfig())
	_, err := g.Authorize("Bearer not.a.jwt", models.RoleResearcher)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthorize_ExpiredToken(t *testing.T) {
	cfg := guardConfig()
	tok, err := tokens.Issue(cfg, 1, "a@x.com", 1, -time.Minute)
	require.NoError(t, err)
	_, aerr := NewGuard(cfg).Authorize("Bearer "+tok, models.RoleResearcher)
	require.ErrorIs(t, aerr, ErrUnauthenticated)
}

func TestAuthorize_MissingRoleClaim(t *testing.T) {
	cfg := guardConfig()
	tok := signRaw(t, cfg, jwt.MapClaims{"userId": 1, "email": "a@x.com"})
	_, err := NewGuard(cfg).Authorize("Bearer "+tok, models.RoleResearcher)
	require.ErrorIs(t, err, ErrUnauthenticated)
	require.Equal(t, "Token missing role claim", err.Error())
}

func TestAuthorize_InvalidRoleFormat(t *testing.T) {
	cfg := guardConfig()
	tok := signRaw(t, cfg, jwt.MapClaims{"userId": 1, "role": "researcher"})
	_, err := NewGuard(cfg).Authorize("Bearer "+tok, models.RoleResearcher)
	require.ErrorIs(t, err, ErrUnauthenticated)
	require.Equal(t, "Invalid role format in token", err.Error())
}

func TestAuthorize_NumericStringRoleAccepted(t *testing.T) {
	cfg := guardConfig()
	tok := signRaw(t, cfg, jwt.MapClaims{"userId": 1, "email": "a@x.com", "role": "1"})
	cs, err := NewGuard(cfg).Authorize("Bearer "+tok, models.RoleResearcher)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", cs.Email)
}

func TestAuthorize_WrongRoleForbidden(t *testing.T) {
	cfg := guardConfig()
	tok, err := tokens.Issue(cfg, 1, "a@x.com", models.RolePatient, 0)
	require.NoError(t, err)
	_, aerr := NewGuard(cfg).Authorize("Bearer "+tok, models.RoleResearcher)
	require.ErrorIs(t, aerr, ErrForbidden)
	require.Equal(t, "Only researchers can perform this action", aerr.Error())

	var typed *Error
	require.True(t, errors.As(aerr, &typed))
}

func TestAuthorize_Success(t *testing.T) {
	cfg := guardConfig()
	tok, err := tokens.Issue(cfg, 7, "a@x.com", models.RoleResearcher, 0)
	require.NoError(t, err)
	cs, aerr := NewGuard(cfg).Authorize("Bearer "+tok, models.RoleResearcher)
	require.NoError(t, aerr)
	require.Equal(t, int64(7), cs.UserID)
	require.Equal(t, "a@x.com", cs.Email)
}

func TestBearerToken(t *testing.T) {
	require.Equal(t, "", BearerToken(""))
	require.Equal(t, "", BearerToken("Bearer"))
	require.Equal(t, "abc", BearerToken("Bearer abc"))
	// only the segment after the first space counts
	require.Equal(t, "abc", BearerToken("Bearer abc def"))
}
