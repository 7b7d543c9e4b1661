// Package links extracts hyperlinks from free-form card text.
package links

import (
	"net/url"
	"regexp"
	"sort"
	"strings"
)

// Link is a single extracted hyperlink with its display text.
type Link struct {
	URL  string `json:"url"`
	Text string `json:"text,omitempty"`
}

var (
	markdownLinkPattern = regexp.MustCompile(`\[([^\]]*)\]\(([a-zA-Z][a-zA-Z0-9+.-]*://[^)\s]+)\)`)
	bareURLPattern      = regexp.MustCompile(`[a-zA-Z][a-zA-Z0-9+.-]*://[^\s<>"')\]]+`)
)

type span struct {
	start, end int
	link       Link
}

// Extract returns all links found in text, ordered by their position in the
// string. Markdown-style links take priority: a bare URL that falls inside a
// markdown link is not reported again.
func Extract(text string) []Link {
	if text == "" {
		return nil
	}

	var spans []span

	mdMatches := markdownLinkPattern.FindAllStringSubmatchIndex(text, -1)
	for _, m := range mdMatches {
		label := text[m[2]:m[3]]
		rawURL := text[m[4]:m[5]]
		spans = append(spans, span{
			start: m[0],
			end:   m[1],
			link:  Link{URL: rawURL, Text: strings.TrimSpace(label)},
		})
	}

	bareMatches := bareURLPattern.FindAllStringIndex(text, -1)
	for _, m := range bareMatches {
		if overlapsAny(m[0], m[1], mdMatches) {
			continue
		}
		rawURL := trimTrailingPunctuation(text[m[0]:m[1]])
		spans = append(spans, span{
			start: m[0],
			end:   m[1],
			link:  Link{URL: rawURL, Text: labelFromURL(rawURL)},
		})
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	result := make([]Link, 0, len(spans))
	for _, s := range spans {
		result = append(result, s.link)
	}
	return result
}

func overlapsAny(start, end int, matches [][]int) bool {
	for _, m := range matches {
		if start < m[1] && end > m[0] {
			return true
		}
	}
	return false
}

// labelFromURL derives a display label from the URL's host, stripping a
// leading "www.". Malformed URLs fall back to the raw URL itself.
func labelFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return rawURL
	}
	return strings.TrimPrefix(parsed.Host, "www.")
}

func trimTrailingPunctuation(rawURL string) string {
	return strings.TrimRight(rawURL, ".,;:!?")
}
