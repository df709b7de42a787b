package impl

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const resetPurpose = "password_reset"

var ErrInvalidResetToken = errors.New("invalid reset token")

type resetClaims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// ResetLinkSigner builds the signed token embedded in password-reset
// links, replacing the bare email query parameter the legacy app used.
type ResetLinkSigner struct {
	secret []byte
	ttl    time.Duration
	domain string
}

func NewResetLinkSigner(secret []byte, ttl time.Duration, siteDomain string) *ResetLinkSigner {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &ResetLinkSigner{secret: secret, ttl: ttl, domain: siteDomain}
}

// Sign mints a short-lived reset token bound to the account email.
func (s *ResetLinkSigner) Sign(email string) (string, error) {
	now := time.Now().UTC()
	claims := resetClaims{
		Purpose: resetPurpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Parse validates signature, expiry and purpose, returning the email.
func (s *ResetLinkSigner) Parse(token string) (string, error) {
	claims := &resetClaims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	parsed, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidResetToken
	}
	if claims.Purpose != resetPurpose || claims.Subject == "" {
		return "", ErrInvalidResetToken
	}
	return claims.Subject, nil
}

// Link renders the full confirm URL for the reset email.
func (s *ResetLinkSigner) Link(token string) string {
	return fmt.Sprintf("http://%s/password/reset/confirm/?token=%s", s.domain, url.QueryEscape(token))
}
