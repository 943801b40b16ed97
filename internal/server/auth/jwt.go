// Package auth issues and parses signed session tokens. A session is a
// stateless HS256 JWT binding the resolved user's id and email; there is no
// server-side session store.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/authkeeper/internal/common"
)

// Claims carries the session identity on top of the registered JWT claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID string
	Email  string
}

// SessionIdentity is the parsed identity of a live session.
type SessionIdentity struct {
	UserID string
	Email  string
}

func GenerateToken(userID, email string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID: userID,
		Email:  email,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func ParseToken(tokenString string, secretKey []byte) (*SessionIdentity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return &SessionIdentity{UserID: claims.UserID, Email: claims.Email}, nil
}
