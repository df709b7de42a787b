// Package otp generates the short numeric codes used for email
// verification and password resets.
package otp

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
	"time"
)

// DefaultLength matches the otp_code column width.
const DefaultLength = 6

// ExpiryWindow is how long a freshly issued code stays valid.
const ExpiryWindow = 15 * time.Minute

var ErrBadLength = errors.New("otp length must be positive")

var ten = big.NewInt(10)

// Generate returns a numeric code of the given length with uniformly
// sampled digits.
func Generate(length int) (string, error) {
	if length <= 0 {
		return "", ErrBadLength
	}
	var sb strings.Builder
	sb.Grow(length)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		sb.WriteByte(byte('0' + n.Int64()))
	}
	return sb.String(), nil
}
