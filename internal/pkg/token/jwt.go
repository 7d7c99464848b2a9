// Package token implements the signed identity assertion exchanged at login
// and presented on every protected request.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskdesk/todo-system/internal/core/domain"
)

// JWTCodec signs and verifies HS256 tokens carrying the subject username and
// user id. Validation is fully stateless: a token stays valid until its
// expiry regardless of later account changes.
type JWTCodec struct {
	secret []byte
}

func NewJWTCodec(secret string) *JWTCodec {
	return &JWTCodec{secret: []byte(secret)}
}

// Encode builds and signs the claim set {sub, id, exp}.
func (c *JWTCodec) Encode(username, userID string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": username,
		"id":  userID,
		"exp": time.Now().Add(ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Decode verifies the signature and expiry and extracts the identity.
// All failure modes collapse to domain.ErrInvalidToken so callers cannot
// distinguish a forged token from an expired one.
func (c *JWTCodec) Decode(token string) (domain.Identity, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !tkn.Valid {
		return domain.Identity{}, domain.ErrInvalidToken
	}

	username, _ := claims["sub"].(string)
	userID, _ := claims["id"].(string)
	if username == "" || userID == "" {
		return domain.Identity{}, domain.ErrInvalidToken
	}

	return domain.Identity{Username: username, UserID: userID}, nil
}
