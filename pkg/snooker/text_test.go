package snooker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/cases"
)

func TestFirstWord(t *testing.T) {
	tests := []struct {
		in     string
		want string
	}{
		{"Nice post!", "Nice"},
		{"  ...nice, really", "nice"},
		{"¡Hola amigo", "Hola"},
		{"123 go", "123"},
		{"word", "word"},
		{"!!! ???", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, firstWord(tt.in), "firstWord(%q)", tt.in)
	}
}

func TestCountConsonantRuns(t *testing.T) {
	tests := []struct {
		in     string
		minRun int
		want   int
	}{
		{"strengths", 5, 1},
		{"rhythm", 5, 0},
		{"xkcdqwrtzp", 5, 1},
		{"bcdfg aeiou BCDFGH", 5, 2},
		{"bcdf", 5, 0},
		{"bcdf", 4, 1},
		{"ß∂ƒ©˙∆", 5, 0},
		{"", 5, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, countConsonantRuns(tt.in, tt.minRun), "countConsonantRuns(%q, %d)", tt.in, tt.minRun)
	}
}

func TestNormalizeForCompare(t *testing.T) {
	fold := cases.Fold()
	assert.Equal(t, "hello world", normalizeForCompare(fold, "  Hello\tWORLD \n"))
	assert.Equal(t, "hello", normalizeForCompare(fold, "ＨＥＬＬＯ"))
	assert.Equal(t, normalizeForCompare(fold, "STRASSE"), normalizeForCompare(fold, "straße"))
}

func TestCollapseSpace(t *testing.T) {
	assert.Equal(t, "a b c", collapseSpace("\n a \t b  c "))
	assert.Equal(t, "", collapseSpace(" \n\t "))
}
