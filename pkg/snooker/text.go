package snooker

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// collapseSpace replaces every run of white space with a single space and
// trims both ends.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// firstWord returns the first run of letters and digits in s
func firstWord(s string) string {
	start := -1
	for i, r := range s {
		word := unicode.IsLetter(r) || unicode.IsDigit(r)
		switch {
		case word && start < 0:
			start = i
		case !word && start >= 0:
			return s[start:i]
		}
	}
	if start < 0 {
		return ""
	}
	return s[start:]
}

// isConsonant reports whether b is an ASCII consonant. Y is counted as a
// vowel.
func isConsonant(b byte) bool {
	if b >= 'A' && b <= 'Z' {
		b += 'a' - 'A'
	}
	if b < 'a' || b > 'z' {
		return false
	}
	switch b {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return false
	}
	return true
}

// countConsonantRuns counts the maximal runs of at least minRun consecutive
// consonants in s.
func countConsonantRuns(s string, minRun int) int {
	runs, run := 0, 0
	for i := 0; i < len(s); i++ {
		if !isConsonant(s[i]) {
			run = 0
			continue
		}
		run++
		if run == minRun {
			runs++
		}
	}
	return runs
}

// normalizeForCompare puts a body in the form used to detect duplicates:
// NFKC, case-folded, white space collapsed.
func normalizeForCompare(fold cases.Caser, s string) string {
	return collapseSpace(fold.String(norm.NFKC.String(s)))
}
