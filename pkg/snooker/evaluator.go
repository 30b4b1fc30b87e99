package snooker

import (
	"slices"
	"strings"

	"github.com/cloudflare/ahocorasick"
	"golang.org/x/text/cases"
)

// Evaluator applies the scoring rules to comments. It is immutable once
// built and safe for concurrent use.
type Evaluator struct {
	cfg          Config
	keywords     []string
	phrases      *ahocorasick.Matcher
	leadingWords map[string]bool
	tlds         map[string]bool
}

// NewEvaluator creates an evaluator for cfg. Unset fields take their
// defaults from DefaultConfig.
func NewEvaluator(cfg Config) *Evaluator {
	cfg = cfg.withDefaults()
	cfg.SpamKeywords = normalizeList(cfg.SpamKeywords)
	cfg.SpamPhrases = normalizeList(cfg.SpamPhrases)
	cfg.SpamLeadingWords = normalizeList(cfg.SpamLeadingWords)

	tlds := make([]string, 0, len(cfg.SpamTLDs))
	for _, t := range cfg.SpamTLDs {
		tlds = append(tlds, strings.TrimPrefix(strings.TrimSpace(t), "."))
	}
	cfg.SpamTLDs = normalizeList(tlds)

	e := &Evaluator{
		cfg:          cfg,
		keywords:     cfg.SpamKeywords,
		leadingWords: toSet(cfg.SpamLeadingWords),
		tlds:         toSet(cfg.SpamTLDs),
	}
	if len(cfg.SpamPhrases) > 0 {
		e.phrases = ahocorasick.NewStringMatcher(cfg.SpamPhrases)
	}
	return e
}

// Config returns the effective configuration, after defaults and
// normalization were applied.
func (e *Evaluator) Config() Config {
	c := e.cfg
	c.SpamKeywords = slices.Clone(c.SpamKeywords)
	c.SpamPhrases = slices.Clone(c.SpamPhrases)
	c.SpamLeadingWords = slices.Clone(c.SpamLeadingWords)
	c.SpamTLDs = slices.Clone(c.SpamTLDs)
	return c
}

// Evaluate scores c. It never fails: missing optional fields and broken
// markup simply make the rules that depend on them contribute nothing.
func (e *Evaluator) Evaluate(c Comment) ScoreResult {
	return e.evaluate(&c, rules)
}

func (e *Evaluator) evaluate(c *Comment, rs []rule) ScoreResult {
	in := e.newInput(c)
	result := ScoreResult{Breakdown: make([]RuleDelta, 0, len(rs))}
	for _, r := range rs {
		d := r.apply(in)
		result.Score += d
		result.Breakdown = append(result.Breakdown, RuleDelta{Rule: r.name, Delta: d})
	}
	return result
}

func (e *Evaluator) newInput(c *Comment) *input {
	body := parseBody(c.Body)
	urls := make([]string, 0, len(body.links)+1)
	for _, l := range body.links {
		urls = append(urls, l.Href)
	}
	if c.URL != nil {
		if u := strings.TrimSpace(*c.URL); u != "" {
			urls = append(urls, u)
		}
	}
	return &input{
		comment: c,
		body:    body,
		urls:    urls,
		// a Caser keeps state, so each evaluation gets its own
		fold: cases.Fold(),
		e:    e,
	}
}

// hasSpamTLD reports whether the host of raw ends in a configured TLD
func (e *Evaluator) hasSpamTLD(raw string) bool {
	if len(e.tlds) == 0 {
		return false
	}
	host := hostOf(raw)
	if host == "" {
		return false
	}
	for _, t := range tldCandidates(host) {
		if e.tlds[t] {
			return true
		}
	}
	return false
}

func toSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

var defaultEvaluator = NewEvaluator(DefaultConfig())

// Evaluate scores c with the default configuration
func Evaluate(c Comment) ScoreResult {
	return defaultEvaluator.Evaluate(c)
}
