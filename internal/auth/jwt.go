// Package auth issues and checks profile tokens. A profile token only scopes
// stored state to one shopper profile; it proves nothing about who the
// shopper is.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

const issuer = "storefront-assistant"

type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// NewProfile issues a token for a fresh profile id.
func (i *Issuer) NewProfile() (profileID, token string, err error) {
	profileID = uuid.NewString()
	token, err = i.Issue(profileID)
	return profileID, token, err
}

func (i *Issuer) Issue(profileID string) (string, error) {
	const op = "Issuer.Issue"

	now := i.now()
	claims := jwt.RegisteredClaims{
		Subject:   profileID,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return signed, nil
}

// Parse validates a token and returns its profile id.
func (i *Issuer) Parse(tokenStr string) (string, error) {
	const op = "Issuer.Parse"

	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !token.Valid {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%s: %w: no subject", op, ErrInvalidToken)
	}
	return claims.Subject, nil
}

// FromHeader extracts the token of a "Bearer <token>" Authorization header.
func FromHeader(authorization string) (string, bool) {
	token, ok := strings.CutPrefix(authorization, "Bearer ")
	token = strings.TrimSpace(token)
	return token, ok && token != ""
}
