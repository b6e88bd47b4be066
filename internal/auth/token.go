// Package auth provides the password hashing and token issuing/verifying
// primitives behind the HTTP auth endpoints and middleware.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenValidity is how long an issued token authenticates requests. There is
// no refresh or revocation; a token stays valid until this expiry.
const TokenValidity = 7 * 24 * time.Hour

var (
	ErrTokenExpired          = errors.New("token has expired")
	ErrTokenMalformed        = errors.New("token is malformed")
	ErrTokenSignatureInvalid = errors.New("token signature is invalid")
)

// Identity is the caller resolved from a verified token.
type Identity struct {
	UserID   uint
	Username string
}

type Claims struct {
	UserID   uint   `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 token carrying the user's id and username.
func IssueToken(userID uint, username, secret string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenValidity)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// VerifyToken parses and validates a token string. Failures collapse into
// exactly one of ErrTokenExpired, ErrTokenMalformed, or
// ErrTokenSignatureInvalid; a token signed with a non-HMAC algorithm counts
// as a signature failure.
func VerifyToken(tokenString, secret string) (*Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed
		default:
			return nil, ErrTokenSignatureInvalid
		}
	}
	if !token.Valid {
		return nil, ErrTokenSignatureInvalid
	}
	return &Identity{UserID: claims.UserID, Username: claims.Username}, nil
}
