package whitelist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestChecker(t *testing.T) {
	c := NewChecker([]string{" Example.COM ", "@corp.org", "jane@gmail.com", ""}, zap.NewNop())

	tests := []struct {
		email string
		want  bool
	}{
		{"bob@example.com", true},
		{"BOB@EXAMPLE.COM", true},
		{"alice@corp.org", true},
		{"jane@gmail.com", true},
		{"john@gmail.com", false},
		{"bob@sub.example.com", false},
		{"example.com", false},
		{"@example.com", false},
		{"bob@", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.IsWhitelisted(tt.email), tt.email)
	}
}

func TestCheckerEmpty(t *testing.T) {
	c := NewChecker(nil, nil)
	assert.False(t, c.IsWhitelisted("bob@example.com"))
}
