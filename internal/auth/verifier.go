package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Scope constants.
const (
	ScopeView    = "console.view"
	ScopeControl = "console.control"
)

// Claims represents the parsed token claims.
type Claims struct {
	Subject string   `json:"sub"`
	Scopes  []string `json:"scopes"`
}

// HasScope reports whether the claims carry the given scope.
func (c *Claims) HasScope(scope string) bool {
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// Verifier verifies HS256 bearer tokens.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a verifier for the given shared secret.
func NewVerifier(secret string) (*Verifier, error) {
	if secret == "" {
		return nil, fmt.Errorf("auth secret must not be empty")
	}
	return &Verifier{secret: []byte(secret)}, nil
}

// VerifyToken verifies a JWT and returns its claims.
func (v *Verifier) VerifyToken(tokenString string) (*Claims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, fmt.Errorf("token cannot be empty")
	}

	token, err := jwt.ParseWithClaims(tokenString, &jwt.MapClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != "HS256" {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	mapClaims, ok := token.Claims.(*jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type")
	}

	return claimsFromMap(*mapClaims), nil
}

// IssueToken mints a token for the given subject and scopes. Used by the
// token CLI and tests; production deployments mint tokens out of band.
func (v *Verifier) IssueToken(subject string, scopes []string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":    subject,
		"scopes": scopes,
		"iat":    now.Unix(),
		"exp":    now.Add(ttl).Unix(),
	})
	return token.SignedString(v.secret)
}

func claimsFromMap(m jwt.MapClaims) *Claims {
	claims := &Claims{}

	if sub, ok := m["sub"].(string); ok {
		claims.Subject = sub
	}
	if raw, ok := m["scopes"].([]interface{}); ok {
		for _, item := range raw {
			if s, ok := item.(string); ok {
				claims.Scopes = append(claims.Scopes, s)
			}
		}
	}

	return claims
}
