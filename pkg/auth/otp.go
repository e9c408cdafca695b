package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// DefaultOTPDigits is the standard passcode length.
const DefaultOTPDigits = 6

// OTPGenerator produces fixed-length numeric one-time passcodes with an
// expiry timestamp. Codes are drawn from crypto/rand; leading zeros are
// preserved.
type OTPGenerator struct {
	digits int
	ttl    time.Duration
	now    func() time.Time
}

// OTPOption configures an OTPGenerator.
type OTPOption func(*OTPGenerator)

// WithOTPClock overrides the time source used for expiry timestamps.
func WithOTPClock(now func() time.Time) OTPOption {
	return func(g *OTPGenerator) {
		if now != nil {
			g.now = now
		}
	}
}

// NewOTPGenerator creates a generator producing codes of the given length
// valid for ttl.
func NewOTPGenerator(digits int, ttl time.Duration, opts ...OTPOption) (*OTPGenerator, error) {
	if digits <= 0 {
		digits = DefaultOTPDigits
	}
	if ttl <= 0 {
		return nil, ErrInvalidOTPTTL
	}

	g := &OTPGenerator{
		digits: digits,
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// Digits returns the configured code length.
func (g *OTPGenerator) Digits() int { return g.digits }

// TTL returns the configured code lifetime.
func (g *OTPGenerator) TTL() time.Duration { return g.ttl }

// Generate produces a new passcode and its expiry timestamp.
func (g *OTPGenerator) Generate() (string, time.Time, error) {
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(g.digits)), nil)

	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate passcode: %w", err)
	}

	code := fmt.Sprintf("%0*d", g.digits, n)
	return code, g.now().Add(g.ttl), nil
}
