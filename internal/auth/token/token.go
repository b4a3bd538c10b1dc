// Package token signs and verifies the short-lived access tokens handed to
// the frontend after login.
package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/liminal-studio/liminal-backend/internal/apperr"
)

const DefaultTTL = time.Hour

var (
	ErrMissingEmail = errors.New("identity payload must contain an email")
	ErrEmptySecret  = errors.New("signing secret is empty")
)

// Identity is the verified content of a token.
type Identity struct {
	Email string
	// Claims holds the payload supplied at issuance, without iat/exp.
	Claims map[string]interface{}
}

type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue signs payload as HS256 claims and adds iat and exp.
func (i *Issuer) Issue(payload map[string]interface{}) (string, error) {
	email, _ := payload["email"].(string)
	if strings.TrimSpace(email) == "" {
		return "", ErrMissingEmail
	}

	claims := jwt.MapClaims{}
	for k, v := range payload {
		claims[k] = v
	}
	now := i.now()
	claims["iat"] = jwt.NewNumericDate(now)
	claims["exp"] = jwt.NewNumericDate(now.Add(i.ttl))

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm and expiry. All failures are
// unauthorized.
func (i *Issuer) Verify(raw string) (*Identity, error) {
	if raw == "" {
		return nil, apperr.Unauthorized("Unauthorize Access", errors.New("token missing"))
	}

	claims := jwt.MapClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !tok.Valid {
		return nil, apperr.Unauthorized("Unauthorize Access", err)
	}

	email, _ := claims["email"].(string)
	if email == "" {
		return nil, apperr.Unauthorized("Unauthorize Access", ErrMissingEmail)
	}

	payload := make(map[string]interface{}, len(claims))
	for k, v := range claims {
		if k == "iat" || k == "exp" {
			continue
		}
		payload[k] = v
	}

	return &Identity{Email: email, Claims: payload}, nil
}
