// Package auth verifies the session tokens issued by the external
// identity provider and extracts the opaque user id.
package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v4"

	"aniview/pkg/models"
)

// Verifier validates HS256 tokens from the identity provider. The
// store layer trusts the user id it yields; no further authorization
// checks happen downstream.
type Verifier struct {
	secret []byte
	issuer string
}

// NewVerifier creates a token verifier
func NewVerifier(secret, issuer string) *Verifier {
	return &Verifier{secret: []byte(secret), issuer: issuer}
}

// UserID validates the token and returns its subject claim
func (v *Verifier) UserID(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return "", models.ErrInvalidToken
	}

	if v.issuer != "" && claims.Issuer != v.issuer {
		return "", models.ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", models.ErrInvalidToken
	}

	return claims.Subject, nil
}
