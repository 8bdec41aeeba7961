package supabase

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type AccessTokenClaims struct {
	jwt.RegisteredClaims

	// Supabase adds these alongside the registered claims; we only rely on a few.
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"` // authenticated | anon | service_role
}

type VerifiedUser struct {
	UserID    string
	Email     string
	ExpiresAt time.Time
}

// VerifyAccessToken verifies a Supabase user access token (JWT, HS256) using the project JWT secret.
// The user id is the `sub` claim. Anonymous and service-role tokens are rejected.
func VerifyAccessToken(tokenString, secret, audience string, now time.Time) (*VerifiedUser, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("missing token")
	}
	if secret == "" {
		return nil, fmt.Errorf("missing jwt secret")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	}
	if audience != "" {
		opts = append(opts, jwt.WithAudience(audience))
	}
	parser := jwt.NewParser(opts...)

	claims := &AccessTokenClaims{}
	tok, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if claims.Role != "" && claims.Role != "authenticated" {
		return nil, fmt.Errorf("unsupported token role %q", claims.Role)
	}
	sub := strings.TrimSpace(claims.Subject)
	if sub == "" {
		return nil, fmt.Errorf("missing subject in token")
	}

	return &VerifiedUser{
		UserID:    sub,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
