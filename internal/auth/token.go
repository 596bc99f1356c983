// internal/auth/token.go
package auth

import (
	"time"

	"minibank/internal/util"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims holds the standard JWT claims plus the authenticated user's ID.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"id"`
}

// GenerateToken issues an HS256 access token for the given user.
// The subject carries the username and a random jti identifies the token.
func GenerateToken(userID int64, username string, secret []byte, validity time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

// ParseToken validates a token string and returns its claims.
// Expired, malformed or badly-signed tokens yield util.ErrInvalidToken.
func ParseToken(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, util.ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, util.ErrInvalidToken
	}
	return claims, nil
}
