package snooker

import (
	"strings"

	"golang.org/x/text/cases"
)

// Default thresholds used when a Config leaves a numeric field unset
const (
	DefaultMinBodyLength      = 20
	DefaultLongURLLength      = 30
	DefaultConsonantRunLength = 5
	DefaultHistoryCap         = 5
)

// Config holds the data the rules match against. A nil list falls back to
// the default list; an empty, non-nil list disables the rules that use it.
type Config struct {
	// SpamKeywords are matched as substrings of link hrefs, anchor text
	// and the submitted URL.
	SpamKeywords []string `json:"spam_keywords" yaml:"spam_keywords"`
	// SpamPhrases are matched as substrings of the body text.
	SpamPhrases []string `json:"spam_phrases" yaml:"spam_phrases"`
	// SpamLeadingWords are compared with the first word of the body text.
	SpamLeadingWords []string `json:"spam_leading_words" yaml:"spam_leading_words"`
	// SpamTLDs are compared with the public suffix of every URL, without
	// the leading dot.
	SpamTLDs []string `json:"spam_tlds" yaml:"spam_tlds"`

	// MinBodyLength is the body length in runes at which a single link
	// earns the link_length bonus.
	MinBodyLength int `json:"min_body_length" yaml:"min_body_length"`
	// LongURLLength is the length in runes a URL must exceed to count as long.
	LongURLLength int `json:"long_url_length" yaml:"long_url_length"`
	// ConsonantRunLength is the shortest run of consonants that counts as
	// gibberish.
	ConsonantRunLength int `json:"consonant_run_length" yaml:"consonant_run_length"`
	// HistoryCap bounds the magnitude of the history delta.
	HistoryCap int `json:"history_cap" yaml:"history_cap"`
}

// DefaultConfig returns the stock rule configuration
func DefaultConfig() Config {
	return Config{
		SpamKeywords: []string{
			"free", "viagra", "cialis", "levitra", "casino", "poker",
			"porn", "xxx", "loan", "replica", "pharmacy", "pills",
		},
		SpamPhrases: []string{
			"limited time only", "act now", "click here", "buy now",
			"make money", "earn money", "work from home", "100% free",
			"cheap pills", "no prescription",
		},
		SpamLeadingWords: []string{
			"interesting", "sorry", "nice", "cool", "awesome", "wow",
		},
		SpamTLDs: []string{
			"de", "pl", "cn", "ru", "xyz", "top", "click",
		},
		MinBodyLength:      DefaultMinBodyLength,
		LongURLLength:      DefaultLongURLLength,
		ConsonantRunLength: DefaultConsonantRunLength,
		HistoryCap:         DefaultHistoryCap,
	}
}

// withDefaults fills unset fields from DefaultConfig
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.SpamKeywords == nil {
		c.SpamKeywords = d.SpamKeywords
	}
	if c.SpamPhrases == nil {
		c.SpamPhrases = d.SpamPhrases
	}
	if c.SpamLeadingWords == nil {
		c.SpamLeadingWords = d.SpamLeadingWords
	}
	if c.SpamTLDs == nil {
		c.SpamTLDs = d.SpamTLDs
	}
	if c.MinBodyLength <= 0 {
		c.MinBodyLength = d.MinBodyLength
	}
	if c.LongURLLength <= 0 {
		c.LongURLLength = d.LongURLLength
	}
	if c.ConsonantRunLength <= 0 {
		c.ConsonantRunLength = d.ConsonantRunLength
	}
	if c.HistoryCap <= 0 {
		c.HistoryCap = d.HistoryCap
	}
	return c
}

// normalizeList trims, case-folds and de-duplicates a word list while
// keeping its order. Blank entries are dropped.
func normalizeList(words []string) []string {
	fold := cases.Fold()
	seen := make(map[string]bool, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = fold.String(strings.TrimSpace(w))
		if w == "" || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}
