package snooker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractLinks(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []Link
	}{
		{
			name: "anchor with text",
			body: `<p>see <a href="http://a.com/x">the   docs</a></p>`,
			want: []Link{{Href: "http://a.com/x", Text: "the docs"}},
		},
		{
			name: "bare url with trailing punctuation",
			body: "visit http://example.com/page. thanks",
			want: []Link{{Href: "http://example.com/page"}},
		},
		{
			name: "www without scheme",
			body: "go to www.spam.cn now",
			want: []Link{{Href: "www.spam.cn"}},
		},
		{
			name: "anchor without href is not a link",
			body: `<a name="top">top</a>`,
			want: nil,
		},
		{
			name: "url as anchor text counts once",
			body: `<a href="http://x.org">http://x.org</a>`,
			want: []Link{{Href: "http://x.org", Text: "http://x.org"}},
		},
		{
			name: "anchor left open at end of input",
			body: `<a href="http://x.org">click`,
			want: []Link{{Href: "http://x.org", Text: "click"}},
		},
		{
			name: "entities in href are decoded",
			body: `<a href="http://x.org/?a=1&amp;b=2">q</a>`,
			want: []Link{{Href: "http://x.org/?a=1&b=2", Text: "q"}},
		},
		{
			name: "anchors and bare urls in document order",
			body: `first https://one.net then <a HREF="https://two.net">two</a>`,
			want: []Link{{Href: "https://one.net"}, {Href: "https://two.net", Text: "two"}},
		},
		{
			name: "plain text",
			body: "Thanks, I agree",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractLinks(tt.body))
		})
	}
}

func TestParseBodyMalformedMarkup(t *testing.T) {
	bodies := []string{
		`<a href="http://x.org"`,
		`<<<>>> </a></a> <p`,
		`<a href=>`,
		"\x00<a href='http://x.org'>\xff\xfe</a>",
	}
	for _, b := range bodies {
		assert.NotPanics(t, func() {
			p := parseBody(b)
			assert.LessOrEqual(t, len(p.links), 1)
		}, b)
	}
}

func TestParseBodyText(t *testing.T) {
	p := parseBody("<p>Nice post!</p><p>Check <b>this</b>\n out</p>")
	assert.Equal(t, "Nice post! Check this out", p.text)
}

func TestHostOf(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"http://Spam.CN/path", "spam.cn"},
		{"www.shop.pl", "www.shop.pl"},
		{"//cdn.example.com/x.js", "cdn.example.com"},
		{"https://example.com.:8080/", "example.com"},
		{"/relative/path", ""},
		{"localhost", ""},
		{"http://127.0.0.1/", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, hostOf(tt.raw))
		})
	}
}

func TestTLDCandidates(t *testing.T) {
	assert.Equal(t, []string{"cn"}, tldCandidates("spam.cn"))
	assert.Equal(t, []string{"co.uk", "uk"}, tldCandidates("shop.co.uk"))
}
