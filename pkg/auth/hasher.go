package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// Hasher provides one-way digests for the two credential kinds: slow
// salted bcrypt for passwords and a fast deterministic keyed HMAC for
// one-time passcodes. The OTP digest is deterministic on purpose so that
// verification can look records up by digest equality.
type Hasher struct {
	bcryptCost int
	otpSecret  []byte
}

// HasherOption configures a Hasher.
type HasherOption func(*Hasher)

// WithBcryptCost sets the bcrypt cost for password hashing.
func WithBcryptCost(cost int) HasherOption {
	return func(h *Hasher) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			h.bcryptCost = cost
		}
	}
}

// NewHasher creates a Hasher keyed with the given OTP secret.
func NewHasher(otpSecret string, opts ...HasherOption) (*Hasher, error) {
	if otpSecret == "" {
		return nil, ErrMissingOTPSecret
	}

	h := &Hasher{
		bcryptCost: bcrypt.DefaultCost,
		otpSecret:  []byte(otpSecret),
	}
	for _, opt := range opts {
		opt(h)
	}

	return h, nil
}

// HashPassword computes a salted bcrypt digest of the plaintext. The same
// plaintext yields a different digest on every call.
func (h *Hasher) HashPassword(plaintext string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(plaintext), h.bcryptCost)
}

// VerifyPassword reports whether plaintext matches the stored digest.
// Malformed digests compare as false rather than erroring out.
func (h *Hasher) VerifyPassword(plaintext string, digest []byte) bool {
	return bcrypt.CompareHashAndPassword(digest, []byte(plaintext)) == nil
}

// HashOTP computes the deterministic keyed digest of a passcode:
// hex-encoded HMAC-SHA256 under the OTP secret.
func (h *Hasher) HashOTP(code string) string {
	mac := hmac.New(sha256.New, h.otpSecret)
	mac.Write([]byte(code))
	return hex.EncodeToString(mac.Sum(nil))
}
