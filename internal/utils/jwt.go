package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-tours/models"
	"github.com/golang-jwt/jwt/v5"
)

const bearerPrefix = "Bearer "

// GenerateJWTToken creates a signed HMAC-SHA256 JWT token with the given parameters.
//
// The token includes the following standard claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the user ID encoded as a string
//   - IssuedAt  (iat): now
//   - ExpiresAt (exp): now plus tokenDuration
//
// issuer, a positive tokenDuration and signKey are required.
//
// Example usage:
//
//	token, err := utils.GenerateJWTToken("go-tours", 42, time.Hour, "secret", time.Now())
func GenerateJWTToken(issuer string, userID int64, tokenDuration time.Duration, signKey string, now time.Time) (models.Token, error) {
	if issuer == "" || tokenDuration <= 0 || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   strconv.FormatInt(userID, 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return models.Token{RegisteredClaims: claims, SignedString: tokenString, UserID: userID}, nil
}

// ValidateAndParseJWTToken validates the given JWT token string and extracts its claims.
//
// Validation includes:
//   - algorithm pinning to HS256 and signature verification with tokenSignKey
//   - issuer (iss) claim check against tokenIssuer
//   - expiration (exp) check against now; a token is expired once now >= exp
//   - subject (sub) presence and conversion to int64 UserID
//
// The returned error always matches one of [ErrTokenMalformed],
// [ErrTokenSignatureInvalid], [ErrTokenExpired] or [ErrTokenInvalid].
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string, now time.Time) (models.Token, error) {
	token := &models.Token{}
	_, err := jwt.ParseWithClaims(tokenString, token, func(*jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return models.Token{}, classifyJWTError(err)
	}

	userID, err := token.GetUserID()
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	token.UserID = userID
	token.SignedString = tokenString
	return *token, nil
}

func classifyJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %w", ErrTokenMalformed, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %w", ErrTokenSignatureInvalid, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", ErrTokenExpired, err)
	default:
		return fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. It returns false if the header does not use the Bearer scheme
// or carries no token.
func ParseBearerToken(authorizationHeader string) (string, bool) {
	header := strings.TrimSpace(authorizationHeader)
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}

	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if token == "" || strings.Contains(token, " ") {
		return "", false
	}
	return token, true
}
