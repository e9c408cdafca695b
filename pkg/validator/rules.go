package validator

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

var (
	uppercaseRegex   = regexp.MustCompile(`[A-Z]`)
	lowercaseRegex   = regexp.MustCompile(`[a-z]`)
	digitRegex       = regexp.MustCompile(`[0-9]`)
	specialCharRegex = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>\/?~` + "`" + `]`)
	numericRegex     = regexp.MustCompile(`^[0-9]+$`)
)

// Required validates that a string is not empty after trimming whitespace.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s is required", field),
		},
	}
}

// ValidEmail validates that a string is a parseable email address with a
// non-empty local part and a dotted domain.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if strings.TrimSpace(value) == "" {
				return false
			}

			addr, err := mail.ParseAddress(value)
			if err != nil || addr.Address != value {
				return false
			}

			parts := strings.Split(addr.Address, "@")
			if len(parts) != 2 || parts[0] == "" {
				return false
			}

			return strings.Contains(parts[1], ".")
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be a valid email address",
		},
	}
}

// PasswordStrengthConfig describes the password policy enforced by
// StrongPassword.
type PasswordStrengthConfig struct {
	MinLength        int
	MaxLength        int
	RequireUppercase bool
	RequireLowercase bool
	RequireDigits    bool
	RequireSpecial   bool
}

// DefaultPasswordStrength returns the service policy: 8-128 characters,
// mixed case, at least one digit and one symbol.
func DefaultPasswordStrength() PasswordStrengthConfig {
	return PasswordStrengthConfig{
		MinLength:        8,
		MaxLength:        128,
		RequireUppercase: true,
		RequireLowercase: true,
		RequireDigits:    true,
		RequireSpecial:   true,
	}
}

// StrongPassword validates a password against the given policy.
func StrongPassword(field, value string, config PasswordStrengthConfig) Rule {
	return Rule{
		Check: func() bool {
			if len(value) < config.MinLength || len(value) > config.MaxLength {
				return false
			}
			if config.RequireUppercase && !uppercaseRegex.MatchString(value) {
				return false
			}
			if config.RequireLowercase && !lowercaseRegex.MatchString(value) {
				return false
			}
			if config.RequireDigits && !digitRegex.MatchString(value) {
				return false
			}
			if config.RequireSpecial && !specialCharRegex.MatchString(value) {
				return false
			}
			return true
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be %d-%d characters with upper and lower case letters, a digit and a symbol", config.MinLength, config.MaxLength),
		},
	}
}

// Matching validates that two values are equal. Used for password
// confirmation on signup.
func Matching(field, value, other string) Rule {
	return Rule{
		Check: func() bool {
			return value == other
		},
		Error: ValidationError{
			Field:   field,
			Message: "values do not match",
		},
	}
}

// NumericCode validates a fixed-length digits-only string, such as an
// email verification code.
func NumericCode(field, value string, length int) Rule {
	return Rule{
		Check: func() bool {
			return len(value) == length && numericRegex.MatchString(value)
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be a %d-digit code", length),
		},
	}
}
