package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenInvalid = errors.New("security: token invalid")
	ErrNoSecret     = errors.New("security: signing secret required")
)

// JWTTokenManager issues HS256 bearer tokens carrying the user id as subject.
type JWTTokenManager struct {
	Secret []byte
	Issuer string
}

func (m JWTTokenManager) Issue(userID string, ttl time.Duration) (string, error) {
	if len(m.Secret) == 0 {
		return "", ErrNoSecret
	}
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    m.issuer(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.Secret)
}

func (m JWTTokenManager) Resolve(raw string) (string, error) {
	if len(m.Secret) == 0 {
		return "", ErrNoSecret
	}
	token, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("security: unexpected signing method %v", t.Header["alg"])
		}
		return m.Secret, nil
	})
	if err != nil {
		return "", ErrTokenInvalid
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", ErrTokenInvalid
	}
	return claims.Subject, nil
}

func (m JWTTokenManager) issuer() string {
	if m.Issuer != "" {
		return m.Issuer
	}
	return "campusrent"
}
