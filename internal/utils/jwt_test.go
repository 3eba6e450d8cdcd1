package utils

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestGenerateJWTToken_Success(t *testing.T) {
	issuer := "test-issuer"
	userID := int64(123)
	duration := time.Hour
	key := "secret-key"

	token, err := GenerateJWTToken(issuer, userID, duration, key, testNow)

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if token.SignedString == "" {
		t.Error("expected non-empty SignedString")
	}
	if token.Issuer != issuer {
		t.Errorf("expected issuer %s, got %s", issuer, token.Issuer)
	}
	if token.Subject != "123" {
		t.Errorf("expected subject '123', got %s", token.Subject)
	}
	if token.UserID != userID {
		t.Errorf("expected userID %d, got %d", userID, token.UserID)
	}
	if !token.IssuedAtTime().Equal(testNow) {
		t.Errorf("expected iat %v, got %v", testNow, token.IssuedAtTime())
	}
	if !token.ExpiresAtTime().Equal(testNow.Add(duration)) {
		t.Errorf("expected exp %v, got %v", testNow.Add(duration), token.ExpiresAtTime())
	}
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		duration time.Duration
		key      string
	}{
		{"empty issuer", "", time.Hour, "key"},
		{"zero duration", "iss", 0, "key"},
		{"negative duration", "iss", -time.Second, "key"},
		{"empty key", "iss", time.Hour, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, 1, tt.duration, tt.key, testNow)
			if err == nil {
				t.Error("expected error for invalid parameters, got nil")
			}
		})
	}
}

func TestValidateAndParseJWTToken_Success(t *testing.T) {
	issuer := "test-issuer"
	userID := int64(456)
	key := "secret-key"

	genToken, _ := GenerateJWTToken(issuer, userID, 5*time.Minute, key, testNow)

	parsedToken, err := ValidateAndParseJWTToken(genToken.SignedString, key, issuer, testNow.Add(time.Minute))

	if err != nil {
		t.Fatalf("expected token to be valid, got error: %v", err)
	}
	if parsedToken.UserID != userID {
		t.Errorf("expected userID %d, got %d", userID, parsedToken.UserID)
	}
	if !parsedToken.IssuedAtTime().Equal(testNow) {
		t.Errorf("expected iat %v, got %v", testNow, parsedToken.IssuedAtTime())
	}
	if parsedToken.SignedString != genToken.SignedString {
		t.Error("expected SignedString to be preserved")
	}
}

func TestValidateAndParseJWTToken_InvalidKey(t *testing.T) {
	genToken, _ := GenerateJWTToken("test-issuer", 1, time.Hour, "correct-key", testNow)

	_, err := ValidateAndParseJWTToken(genToken.SignedString, "wrong-key", "test-issuer", testNow)
	if !errors.Is(err, ErrTokenSignatureInvalid) {
		t.Errorf("expected ErrTokenSignatureInvalid, got %v", err)
	}
}

func TestValidateAndParseJWTToken_ExpiryBoundary(t *testing.T) {
	genToken, _ := GenerateJWTToken("iss", 1, time.Minute, "key", testNow)
	exp := testNow.Add(time.Minute)

	tests := []struct {
		name    string
		now     time.Time
		expired bool
	}{
		{"one second before exp", exp.Add(-time.Second), false},
		{"exactly at exp", exp, true},
		{"after exp", exp.Add(time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateAndParseJWTToken(genToken.SignedString, "key", "iss", tt.now)
			if tt.expired && !errors.Is(err, ErrTokenExpired) {
				t.Errorf("expected ErrTokenExpired, got %v", err)
			}
			if !tt.expired && err != nil {
				t.Errorf("expected valid token, got %v", err)
			}
		})
	}
}

func TestValidateAndParseJWTToken_WrongIssuer(t *testing.T) {
	genToken, _ := GenerateJWTToken("real-issuer", 1, time.Hour, "key", testNow)

	_, err := ValidateAndParseJWTToken(genToken.SignedString, "key", "fake-issuer", testNow)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid for issuer mismatch, got %v", err)
	}
}

func TestValidateAndParseJWTToken_Malformed(t *testing.T) {
	for _, raw := range []string{"not.a.token", "garbage", ""} {
		_, err := ValidateAndParseJWTToken(raw, "key", "iss", testNow)
		if !errors.Is(err, ErrTokenMalformed) {
			t.Errorf("%q: expected ErrTokenMalformed, got %v", raw, err)
		}
	}
}

func TestValidateAndParseJWTToken_RejectsOtherAlgorithms(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Issuer:    "iss",
		Subject:   "1",
		IssuedAt:  jwt.NewNumericDate(testNow),
		ExpiresAt: jwt.NewNumericDate(testNow.Add(time.Hour)),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("key"))
	if err != nil {
		t.Fatalf("signing: %v", err)
	}

	_, err = ValidateAndParseJWTToken(raw, "key", "iss", testNow)
	if !errors.Is(err, ErrTokenSignatureInvalid) {
		t.Errorf("expected ErrTokenSignatureInvalid for HS512 token, got %v", err)
	}
}

func TestValidateAndParseJWTToken_NonNumericSubject(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Issuer:    "iss",
		Subject:   "abc",
		IssuedAt:  jwt.NewNumericDate(testNow),
		ExpiresAt: jwt.NewNumericDate(testNow.Add(time.Hour)),
	}
	raw, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("key"))

	_, err := ValidateAndParseJWTToken(raw, "key", "iss", testNow)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestValidateAndParseJWTToken_TamperedPayload(t *testing.T) {
	genToken, _ := GenerateJWTToken("iss", 1, time.Hour, "key", testNow)
	other, _ := GenerateJWTToken("iss", 2, time.Hour, "key", testNow)

	parts := strings.Split(genToken.SignedString, ".")
	otherParts := strings.Split(other.SignedString, ".")
	forged := parts[0] + "." + otherParts[1] + "." + parts[2]

	_, err := ValidateAndParseJWTToken(forged, "key", "iss", testNow)
	if !errors.Is(err, ErrTokenSignatureInvalid) {
		t.Errorf("expected ErrTokenSignatureInvalid, got %v", err)
	}
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", true},
		{"  Bearer abc  ", "abc", true},
		{"Bearer ", "", false},
		{"Basic dXNlcjpwYXNz", "", false},
		{"abc.def.ghi", "", false},
		{"Bearer a b", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseBearerToken(tt.header)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseBearerToken(%q) = (%q, %v), want (%q, %v)", tt.header, got, ok, tt.want, tt.ok)
		}
	}
}
