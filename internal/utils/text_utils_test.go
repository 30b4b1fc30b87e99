package utils

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateText(t *testing.T) {
	tp := NewTextProcessor(nil)

	assert.Equal(t, "hello", tp.TruncateText("hello", 0))
	assert.Equal(t, "hello", tp.TruncateText("hello", 10))
	assert.Equal(t, "hel", tp.TruncateText("hello", 3))

	// "é" is two bytes; cutting through it drops the whole rune
	got := tp.TruncateText("caffé", 5)
	assert.Equal(t, "caff", got)
	assert.True(t, utf8.ValidString(got))
}

func TestSanitizeUTF8(t *testing.T) {
	tp := NewTextProcessor(nil)

	assert.Equal(t, "valid ü", tp.SanitizeUTF8("valid ü"))
	assert.Equal(t, "ab", tp.SanitizeUTF8("a\xffb"))
	assert.Equal(t, "keep �", tp.SanitizeUTF8("keep �\xfe"))
}

func TestProcessText(t *testing.T) {
	tp := NewTextProcessor(nil)
	assert.Equal(t, "abc", tp.ProcessText("a\xffbcdef", 3))
}
