package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/campushub/campus-events-hub/internal/domain/user"
)

// ErrInvalidToken is returned for tokens that fail verification for any
// reason: bad signature, wrong method, expired, malformed subject.
var ErrInvalidToken = errors.New("auth: invalid token")

// TokenService issues and verifies HS256 bearer tokens carrying the user id
// as the subject claim.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

// NewTokenService creates a token service. ttl bounds how long an issued
// token stays valid.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: "campus-events-hub",
	}
}

// Issue signs a token for the user.
func (t *TokenService) Issue(u user.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   u.ID.String(),
		"email": u.Email,
		"iss":   t.issuer,
		"iat":   now.Unix(),
		"exp":   now.Add(t.ttl).Unix(),
	})

	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies the token and returns the user id it was issued for.
func (t *TokenService) Parse(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithIssuer(t.issuer), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return id, nil
}
