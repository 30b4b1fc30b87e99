package snooker

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// input is everything a rule may look at for one evaluation. It is built
// once per Evaluate call and never shared.
type input struct {
	comment *Comment
	body    parsedBody
	// urls are the link hrefs followed by the submitted URL
	urls []string
	fold cases.Caser
	e    *Evaluator
}

// rule is one scoring heuristic. Every rule is independent of the others,
// so the order they run in never changes the total.
type rule struct {
	name  string
	apply func(in *input) int
}

// rules in canonical order
var rules = []rule{
	{"link_count", linkCount},
	{"link_length", linkLength},
	{"link_keyword", linkKeyword},
	{"body_phrase", bodyPhrase},
	{"leading_word", leadingWord},
	{"author_url", authorURL},
	{"url_keyword", urlKeyword},
	{"spam_tld", spamTLD},
	{"long_url", longURL},
	{"consonant_run", consonantRun},
	{"history", history},
	{"duplicate_body", duplicateBody},
}

// RuleNames returns the rule names in the order they are evaluated
func RuleNames() []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.name
	}
	return names
}

func linkCount(in *input) int {
	if len(in.body.links) < 2 {
		return 2
	}
	return 0
}

func linkLength(in *input) int {
	if len(in.body.links) == 1 && utf8.RuneCountInString(in.comment.Body) >= in.e.cfg.MinBodyLength {
		return 1
	}
	return 0
}

// linkKeyword costs one point per link whose href or anchor text holds a
// spam keyword.
func linkKeyword(in *input) int {
	delta := 0
	for _, l := range in.body.links {
		if in.countKeywords(l.Href) > 0 || in.countKeywords(l.Text) > 0 {
			delta--
		}
	}
	return delta
}

// bodyPhrase costs one point per distinct spam phrase in the body text
func bodyPhrase(in *input) int {
	if in.e.phrases == nil || in.body.text == "" {
		return 0
	}
	hits := in.e.phrases.MatchThreadSafe([]byte(in.fold.String(in.body.text)))
	seen := make(map[int]bool, len(hits))
	for _, h := range hits {
		seen[h] = true
	}
	return -len(seen)
}

func leadingWord(in *input) int {
	w := firstWord(in.body.text)
	if w != "" && in.e.leadingWords[in.fold.String(w)] {
		return -10
	}
	return 0
}

func authorURL(in *input) int {
	if in.comment.Author == nil {
		return 0
	}
	a := strings.ToLower(*in.comment.Author)
	if strings.Contains(a, "http://") || strings.Contains(a, "https://") {
		return -2
	}
	return 0
}

// urlKeyword costs one point per distinct spam keyword in the submitted URL
func urlKeyword(in *input) int {
	if in.comment.URL == nil {
		return 0
	}
	return -in.countKeywords(*in.comment.URL)
}

func spamTLD(in *input) int {
	delta := 0
	for _, u := range in.urls {
		if in.e.hasSpamTLD(u) {
			delta--
		}
	}
	return delta
}

func longURL(in *input) int {
	delta := 0
	for _, u := range in.urls {
		if utf8.RuneCountInString(u) > in.e.cfg.LongURLLength {
			delta--
		}
	}
	return delta
}

func consonantRun(in *input) int {
	return -countConsonantRuns(stripBareURLs(in.body.text), in.e.cfg.ConsonantRunLength)
}

// history rewards senders whose earlier comments were mostly accepted and
// penalizes those mostly rejected. The delta is the difference of the two
// counts, clamped to the configured cap.
func history(in *input) int {
	c := in.comment
	if c.PreviouslyAcceptedForEmail == nil && c.PreviouslyRejectedForEmail == nil {
		return 0
	}
	accepted, rejected := 0, 0
	if c.PreviouslyAcceptedForEmail != nil {
		accepted = max(*c.PreviouslyAcceptedForEmail, 0)
	}
	if c.PreviouslyRejectedForEmail != nil {
		rejected = max(*c.PreviouslyRejectedForEmail, 0)
	}
	limit := in.e.cfg.HistoryCap
	return min(max(accepted-rejected, -limit), limit)
}

// duplicateBody costs one point for every earlier body equal to this one
func duplicateBody(in *input) int {
	prev := in.comment.PreviousCommentBodies
	if len(prev) == 0 {
		return 0
	}
	body := normalizeForCompare(in.fold, in.comment.Body)
	delta := 0
	for _, p := range prev {
		if normalizeForCompare(in.fold, p) == body {
			delta--
		}
	}
	return delta
}

// countKeywords returns how many distinct spam keywords occur in s
func (in *input) countKeywords(s string) int {
	if s == "" {
		return 0
	}
	s = in.fold.String(s)
	n := 0
	for _, k := range in.e.keywords {
		if strings.Contains(s, k) {
			n++
		}
	}
	return n
}
