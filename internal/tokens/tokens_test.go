package tokens

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/curalink/curalink/backend/api/internal/config"
)

func testConfig(secret string) *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = secret
	cfg.JWT.Algorithm = "HS256"
	cfg.JWT.AccessTokenTTL = time.Hour
	return cfg
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	cfg := testConfig("test-secret-32-bytes-should-be-long-enough")

	tok, err := Issue(cfg, 7, "r@x.com", 1, 2*time.Minute)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	cs, err := Verify(cfg, tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if cs.UserID != 7 {
		t.Fatalf("unexpected userId claim: got=%d want=7", cs.UserID)
	}
	if cs.Email != "r@x.com" {
		t.Fatalf("unexpected email claim: %q", cs.Email)
	}
	role, present, err := cs.RoleValue()
	if err != nil || !present || role != 1 {
		t.Fatalf("unexpected role claim: role=%d present=%v err=%v", role, present, err)
	}
}

func TestIssue_DefaultTTL(t *testing.T) {
	cfg := testConfig("another-secret-32-bytes-longgggg")

	tok, err := Issue(cfg, 1, "a@x.com", 0, 0)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	parsed, err := jwt.Parse(tok, func(token *jwt.Token) (interface{}, error) { return []byte(cfg.JWT.Secret), nil })
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil {
		t.Fatalf("exp claim: %v", err)
	}
	want := time.Now().Add(cfg.JWT.AccessTokenTTL)
	if d := exp.Time.Sub(want); d > 5*time.Second || d < -5*time.Second {
		t.Fatalf("expiry not ~= issue time + ttl: got %v", exp.Time)
	}
}

func TestVerify_Expired(t *testing.T) {
	cfg := testConfig("expired-secret-32-bytes-xxxxxxxxx")
	tok, err := Issue(cfg, 2, "x@x", 0, -time.Minute)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if _, err := Verify(cfg, tok); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	cfg := testConfig("secret-one-32-bytes-xxxxxxxxxxxxxxxx")
	tok, err := Issue(cfg, 3, "bob@example.com", 1, 2*time.Minute)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	other := testConfig("different-secret-xxxxxxxxxxxxxxxx")
	if _, err := Verify(other, tok); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken with wrong secret, got %v", err)
	}
}

func TestVerify_MalformedAndEmpty(t *testing.T) {
	cfg := testConfig("x")
	for _, raw := range []string{"", "not.a.jwt", "garbage"} {
		if _, err := Verify(cfg, raw); err != ErrInvalidToken {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", raw, err)
		}
	}
}

// Rejected when alg=none (unsigned token)
func TestVerify_AlgNoneRejected(t *testing.T) {
	cfg := testConfig("x")
	headerEnc := (&jwt.Token{}).EncodeSegment([]byte(`{"alg":"none"}`))
	payloadEnc := (&jwt.Token{}).EncodeSegment([]byte(`{"userId":1,"exp":9999999999}`))
	tok := headerEnc + "." + payloadEnc + "."
	if _, err := Verify(cfg, tok); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for alg=none token, got %v", err)
	}
}

// Tampering with payload must fail signature verification
func TestVerify_TamperedPayload(t *testing.T) {
	cfg := testConfig("tamper-test-secret-32-bytes-xxxxxxx")
	tok, err := Issue(cfg, 4, "victim@example.com", 1, 5*time.Minute)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token parts")
	}
	payloadBytes, _ := jwt.NewParser().DecodeSegment(parts[1])
	payload := strings.Replace(string(payloadBytes), "victim", "attacker", 1)
	parts[1] = (&jwt.Token{}).EncodeSegment([]byte(payload))
	if _, err := Verify(cfg, strings.Join(parts, ".")); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for tampered token, got %v", err)
	}
}

func TestRoleValue_Coercion(t *testing.T) {
	cases := []struct {
		raw     interface{}
		role    int
		present bool
		wantErr bool
	}{
		{nil, 0, false, false},
		{float64(1), 1, true, false},
		{"1", 1, true, false},
		{"0", 0, true, false},
		{"researcher", 0, true, true},
		{true, 0, true, true},
	}
	for _, tc := range cases {
		cs := &ClaimSet{Role: tc.raw}
		role, present, err := cs.RoleValue()
		if present != tc.present || (err != nil) != tc.wantErr {
			t.Fatalf("RoleValue(%v): present=%v err=%v", tc.raw, present, err)
		}
		if err == nil && role != tc.role {
			t.Fatalf("RoleValue(%v): got %d want %d", tc.raw, role, tc.role)
		}
	}
}
