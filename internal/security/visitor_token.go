package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const visitorIssuer = "littlestars"

var ErrInvalidVisitorToken = errors.New("invalid visitor token")

// VisitorTokens issues and verifies the HS256 tokens stored in the visitor
// cookie. The token subject is the visitor id.
type VisitorTokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewVisitorTokens creates a token signer
func NewVisitorTokens(secret string, ttl time.Duration) *VisitorTokens {
	return &VisitorTokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// NewVisitorID creates a random visitor id
func NewVisitorID() string {
	return uuid.New().String()
}

// Issue signs a token for the visitor and returns it with its expiry
func (v *VisitorTokens) Issue(visitorID string) (string, time.Time, error) {
	now := v.now()
	expires := now.Add(v.ttl)
	claims := jwt.RegisteredClaims{
		Issuer:    visitorIssuer,
		Subject:   visitorID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign visitor token: %w", err)
	}
	return signed, expires, nil
}

// Parse verifies a token and returns the visitor id it carries
func (v *VisitorTokens) Parse(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(visitorIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidVisitorToken, err)
	}

	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", fmt.Errorf("%w: bad subject", ErrInvalidVisitorToken)
	}
	return claims.Subject, nil
}
