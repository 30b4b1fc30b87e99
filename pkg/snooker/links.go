package snooker

import (
	"net"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/publicsuffix"
)

// Link is a hyperlink found in a comment body. Text is the anchor text and
// is empty for bare URLs.
type Link struct {
	Href string
	Text string
}

// bareURLPattern finds URLs written as plain text
var bareURLPattern = regexp.MustCompile(`(?i)(?:\bhttps?://|\bwww\.)[^\s<>"'()\[\]{}]+`)

// parsedBody is what a single tokenizer pass extracts from a body
type parsedBody struct {
	links []Link
	// text is the text content with tags replaced by spaces and white
	// space collapsed
	text string
}

// ExtractLinks returns the anchors with an href and the bare URLs found in
// body, in document order.
func ExtractLinks(body string) []Link {
	return parseBody(body).links
}

// parseBody tokenizes body as HTML. Broken markup is never an error: the
// tokenizer recovers and whatever was not recognized as an anchor is text.
func parseBody(body string) parsedBody {
	z := html.NewTokenizer(strings.NewReader(body))

	var (
		links      []Link
		text       strings.Builder
		anchor     *Link
		anchorText strings.Builder
	)
	closeAnchor := func() {
		if anchor == nil {
			return
		}
		anchor.Text = collapseSpace(anchorText.String())
		links = append(links, *anchor)
		anchor = nil
		anchorText.Reset()
	}

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF or a tokenizer error; either way the input is done
			closeAnchor()
			return parsedBody{links: links, text: collapseSpace(text.String())}

		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			text.WriteByte(' ')
			if string(name) != "a" {
				continue
			}
			// anchors do not nest, a new one ends the previous
			closeAnchor()
			var href string
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				if string(key) == "href" {
					href = strings.TrimSpace(string(val))
				}
			}
			if href == "" {
				continue
			}
			anchor = &Link{Href: href}
			if tt == html.SelfClosingTagToken {
				closeAnchor()
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			text.WriteByte(' ')
			if string(name) == "a" {
				closeAnchor()
			}

		case html.TextToken:
			t := string(z.Text())
			text.WriteString(t)
			if anchor != nil {
				anchorText.WriteString(t)
				continue
			}
			for _, u := range findBareURLs(t) {
				links = append(links, Link{Href: u})
			}
		}
	}
}

// findBareURLs returns the plain-text URLs in s
func findBareURLs(s string) []string {
	matches := bareURLPattern.FindAllString(s, -1)
	urls := matches[:0]
	for _, m := range matches {
		m = strings.TrimRight(m, ".,;:!?")
		if m != "" {
			urls = append(urls, m)
		}
	}
	return urls
}

// stripBareURLs blanks out plain-text URLs so that they are not read as words
func stripBareURLs(s string) string {
	return bareURLPattern.ReplaceAllString(s, " ")
}

// hostOf returns the lowercase host name of a URL, or "" when it has none.
// Scheme-less URLs are read as http URLs.
func hostOf(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	switch {
	case strings.Contains(raw, "://"):
	case strings.HasPrefix(raw, "//"):
		raw = "http:" + raw
	default:
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
	// relative paths and single labels are not domains
	if !strings.Contains(host, ".") || net.ParseIP(host) != nil {
		return ""
	}
	return host
}

// tldCandidates returns the public suffix of host and, when the suffix has
// several labels, its last label as well.
func tldCandidates(host string) []string {
	suffix, _ := publicsuffix.PublicSuffix(host)
	if suffix == "" {
		return nil
	}
	if i := strings.LastIndexByte(suffix, '.'); i >= 0 {
		return []string{suffix, suffix[i+1:]}
	}
	return []string{suffix}
}
