// Package auth verifies externally issued operator identity tokens. Token
// issuance lives in the plant's central auth service; this side only checks
// the shared-secret signature and extracts the operator identity.
package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// IdentityClaims carries the operator identity embedded in an access token.
type IdentityClaims struct {
	OperatorID uint     `json:"operator_id"`
	Name       string   `json:"name"`
	Roles      []string `json:"roles"`
	jwt.RegisteredClaims
}

// HasRole reports whether the token carries the given role.
func (c *IdentityClaims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IdentityVerifier validates operator tokens with the shared HMAC secret.
type IdentityVerifier struct {
	secret []byte
}

// NewIdentityVerifier creates a new IdentityVerifier.
func NewIdentityVerifier(secret string) *IdentityVerifier {
	return &IdentityVerifier{secret: []byte(secret)}
}

// Verify parses and validates a token, returning its identity claims.
func (v *IdentityVerifier) Verify(tokenString string) (*IdentityClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &IdentityClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*IdentityClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	if claims.OperatorID == 0 {
		return nil, fmt.Errorf("token missing operator identity")
	}

	return claims, nil
}
