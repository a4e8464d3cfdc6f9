package tokens

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/curalink/curalink/backend/api/internal/config"
)

// ErrInvalidToken is returned by Verify for any token that does not pass
// signature and expiry checks, including malformed and empty input.
var ErrInvalidToken = errors.New("invalid or expired token")

// ClaimSet is the decoded payload of an access token. Different login code
// paths have historically populated different keys, so every field is
// optional: absent string claims are "", an absent userId is 0. Role keeps
// its raw JSON form because old issuers wrote it as either a number or a
// numeric string; RoleValue coerces it.
type ClaimSet struct {
	UserID int64
	Email  string
	Sub    string
	Role   interface{}
}

// RoleValue coerces the role claim to an integer. The second return is false
// when the claim is absent; err is non-nil when it is present but not a
// number or numeric string.
func (c *ClaimSet) RoleValue() (role int, present bool, err error) {
	if c.Role == nil {
		return 0, false, nil
	}
	switch v := c.Role.(type) {
	case float64:
		return int(v), true, nil
	case int:
		return v, true, nil
	case int64:
		return int(v), true, nil
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			return 0, true, err
		}
		return int(i), true, nil
	case string:
		n, err := jsonNumber(v)
		if err != nil {
			return 0, true, err
		}
		return n, true, nil
	default:
		return 0, true, errors.New("unsupported role claim type")
	}
}

func jsonNumber(s string) (int, error) {
	var i int64
	if err := json.Unmarshal([]byte(s), &i); err != nil {
		return 0, err
	}
	return int(i), nil
}

// Issue creates a signed HS256 access token carrying the user's identity.
// ttl <= 0 falls back to the configured default (1h).
func Issue(cfg *config.Config, userID int64, email string, role int, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = cfg.JWT.AccessTokenTTL
	}
	claims := jwt.MapClaims{
		"userId": userID,
		"email":  email,
		"role":   role,
		"exp":    time.Now().Add(ttl).Unix(),
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(cfg.JWT.Secret))
}

// Verify checks signature and expiry and returns the decoded claim set.
// Every failure mode collapses to ErrInvalidToken; Verify never panics and
// never reports why a token was rejected.
func Verify(cfg *config.Config, raw string) (*ClaimSet, error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWT.Secret), nil
	}, jwt.WithValidMethods([]string{cfg.JWT.Algorithm}))
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claimSetFrom(mc), nil
}

func claimSetFrom(mc jwt.MapClaims) *ClaimSet {
	cs := &ClaimSet{}
	if v, ok := mc["email"].(string); ok {
		cs.Email = v
	}
	if v, ok := mc["sub"].(string); ok {
		cs.Sub = v
	}
	switch v := mc["userId"].(type) {
	case float64:
		cs.UserID = int64(v)
	case int64:
		cs.UserID = v
	case json.Number:
		if i, err := v.Int64(); err == nil {
			cs.UserID = i
		}
	}
	if v, ok := mc["role"]; ok {
		cs.Role = v
	}
	return cs
}
