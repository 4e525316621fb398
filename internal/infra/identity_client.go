package infra

import (
	"context"
	"fmt"

	"catering-service/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// JWTIdentity resolves caller tokens issued by the identity provider. Tokens
// are HMAC-signed with a shared secret and carry the user id plus account
// type in their claims.
type JWTIdentity struct {
	secret []byte
}

func NewJWTIdentity(secret string) *JWTIdentity {
	return &JWTIdentity{secret: []byte(secret)}
}

type identityClaims struct {
	UserID      uint64 `json:"user_id"`
	AccountType string `json:"account_type"`
	jwt.RegisteredClaims
}

func (j *JWTIdentity) Verify(ctx context.Context, token string) (*Identity, error) {
	parsed, err := jwt.ParseWithClaims(token, &identityClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := parsed.Claims.(*identityClaims)
	if !ok || !parsed.Valid || claims.UserID == 0 {
		return nil, fmt.Errorf("invalid token claims")
	}

	return &Identity{
		UserID:      claims.UserID,
		AccountType: domain.AccountType(claims.AccountType),
	}, nil
}
