package auth

import "time"

// Config holds authentication settings loaded from the environment.
// The OTP secret keys the deterministic passcode digest and must differ
// from the JWT signing secret.
type Config struct {
	OTPSecret  string        `env:"OTP_SECRET,required"`
	OTPDigits  int           `env:"OTP_DIGITS" envDefault:"6"`
	OTPTTL     time.Duration `env:"OTP_TTL" envDefault:"5m"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"10"`
}
