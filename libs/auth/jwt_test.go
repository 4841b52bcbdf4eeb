package auth

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"
)

func TestSignAndVerifyHS256(t *testing.T) {
	claims := Claims{
		Sub:    "host-123",
		HostID: "host-123",
		Role:   "host",
		Iat:    time.Now().Unix(),
		Exp:    time.Now().Add(time.Hour).Unix(),
	}

	token, err := SignHS256(claims, "test-secret")
	if err != nil {
		t.Fatalf("SignHS256: %v", err)
	}

	got, err := ParseAndVerifyHS256(token, "test-secret")
	if err != nil {
		t.Fatalf("ParseAndVerifyHS256: %v", err)
	}
	if got.Sub != claims.Sub || got.HostID != claims.HostID || got.Role != claims.Role {
		t.Fatalf("claims mismatch: got %+v want %+v", got, claims)
	}
}

func TestParseAndVerifyHS256RejectsWrongSecret(t *testing.T) {
	token, err := SignHS256(Claims{Sub: "host-1", Exp: time.Now().Add(time.Hour).Unix()}, "secret-a")
	if err != nil {
		t.Fatalf("SignHS256: %v", err)
	}
	if _, err := ParseAndVerifyHS256(token, "secret-b"); err == nil {
		t.Fatal("expected verification failure with wrong secret")
	}
}

func TestParseAndVerifyHS256RejectsExpired(t *testing.T) {
	token, err := SignHS256(Claims{Sub: "host-1", Exp: time.Now().Add(-time.Minute).Unix()}, "secret")
	if err != nil {
		t.Fatalf("SignHS256: %v", err)
	}
	if _, err := ParseAndVerifyHS256(token, "secret"); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestVerifyRS256(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}

	claims := Claims{
		Sub:    "host-9",
		HostID: "host-9",
		Role:   "host",
		Exp:    time.Now().Add(time.Hour).Unix(),
	}
	token := signRS256(t, claims, key)

	got, err := VerifyRS256(token, key.Public())
	if err != nil {
		t.Fatalf("VerifyRS256: %v", err)
	}
	if got.HostID != claims.HostID {
		t.Fatalf("host id mismatch: got %q want %q", got.HostID, claims.HostID)
	}

	other, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	if _, err := VerifyRS256(token, other.Public()); err == nil {
		t.Fatal("expected verification failure with wrong key")
	}
}

func TestParseHeader(t *testing.T) {
	token, err := SignHS256(Claims{Sub: "x", Exp: time.Now().Add(time.Hour).Unix()}, "s")
	if err != nil {
		t.Fatalf("SignHS256: %v", err)
	}
	header, err := ParseHeader(token)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if header.Alg != "HS256" {
		t.Fatalf("alg = %q, want HS256", header.Alg)
	}
}

func signRS256(t *testing.T, claims Claims, key *rsa.PrivateKey) string {
	t.Helper()
	headerJSON, err := json.Marshal(map[string]string{"alg": "RS256", "typ": "JWT", "kid": "test"})
	if err != nil {
		t.Fatalf("marshal header: %v", err)
	}
	payloadJSON, err := json.Marshal(claims)
	if err != nil {
		t.Fatalf("marshal claims: %v", err)
	}
	unsigned := base64.RawURLEncoding.EncodeToString(headerJSON) + "." + base64.RawURLEncoding.EncodeToString(payloadJSON)
	hash := sha256.Sum256([]byte(unsigned))
	sig, err := rsa.SignPKCS1v15(rand.Reader, key, crypto.SHA256, hash[:])
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return unsigned + "." + base64.RawURLEncoding.EncodeToString(sig)
}
