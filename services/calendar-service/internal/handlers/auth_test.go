package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestRegisterRejectsBadInput(t *testing.T) {
	h := NewAuthHandler(NewHS256Signer("test-secret"), nil, nil, time.Hour)

	cases := []struct {
		name string
		body string
	}{
		{"invalid json", "{"},
		{"missing email", `{"password":"longenough"}`},
		{"bad email", `{"email":"not-an-email","password":"longenough"}`},
		{"short password", `{"email":"a@example.com","password":"short"}`},
		{"bad timezone", `{"email":"a@example.com","password":"longenough","timezone":"Not/AZone"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			h.Register(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestRegisterMethodNotAllowed(t *testing.T) {
	h := NewAuthHandler(NewHS256Signer("test-secret"), nil, nil, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/register", nil)
	rec := httptest.NewRecorder()
	h.Register(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := hashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("hashPassword: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatalf("hash must not equal the password")
	}
	if !verifyPassword(hash, "correct horse battery staple") {
		t.Fatalf("verifyPassword rejected the right password")
	}
	if verifyPassword(hash, "wrong password") {
		t.Fatalf("verifyPassword accepted the wrong password")
	}
}

func TestIssueJWTCarriesHostClaims(t *testing.T) {
	signer := NewHS256Signer("test-secret")
	h := NewAuthHandler(signer, nil, nil, time.Hour)

	token, err := h.issueJWT("host-42")
	if err != nil {
		t.Fatalf("issueJWT: %v", err)
	}
	claims, err := signer.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Sub != "host-42" || claims.HostID != "host-42" {
		t.Fatalf("claims = %+v, want host-42 sub and host_id", claims)
	}
	if claims.Role != "host" {
		t.Fatalf("role = %q, want host", claims.Role)
	}
	if claims.Exp <= claims.Iat {
		t.Fatalf("exp %d must be after iat %d", claims.Exp, claims.Iat)
	}
}

func TestJWKSNotAvailableUnderHS256(t *testing.T) {
	h := NewAuthHandler(NewHS256Signer("test-secret"), nil, nil, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/.well-known/jwks.json", nil)
	rec := httptest.NewRecorder()
	h.JWKS(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestMeRejectsMissingToken(t *testing.T) {
	h := NewAuthHandler(NewHS256Signer("test-secret"), nil, nil, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	rec := httptest.NewRecorder()
	h.Me(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
