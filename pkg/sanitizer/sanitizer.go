// Package sanitizer provides input normalization helpers applied at
// service entry points before validation.
package sanitizer

import "strings"

// Trim removes leading and trailing whitespace.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeEmail lowercases an email address and strips surrounding
// whitespace so that case/whitespace variants map to the same stored value.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SingleLine collapses any newline characters into spaces. Used for
// user-supplied values rendered into email subjects.
func SingleLine(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
