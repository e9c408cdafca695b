package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/gatekeeper/pkg/sanitizer"
)

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"User@Example.COM", "user@example.com"},
		{"  a@x.com ", "a@x.com"},
		{"\tMiXeD@Case.Org\n", "mixed@case.org"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizer.NormalizeEmail(tt.in))
	}
}

func TestSingleLine(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a b", sanitizer.SingleLine("a\r\nb"))
	assert.Equal(t, "plain", sanitizer.SingleLine("plain"))
}
