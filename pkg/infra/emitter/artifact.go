package emitter

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// ArtifactPart is one piece of an artifact location cell: either a link or
// a line of plain text
type ArtifactPart struct {
	Text string
	Href string // empty for plain text
}

var (
	markupTag = regexp.MustCompile(`<[^>]+>`)
	hrefAttr  = regexp.MustCompile(`href="([^"]+)"`)
)

// splitTags splits s into alternating text and tag fragments, keeping the tags
func splitTags(s string) []string {
	var parts []string
	last := 0
	for _, loc := range markupTag.FindAllStringIndex(s, -1) {
		parts = append(parts, s[last:loc[0]], s[loc[0]:loc[1]])
		last = loc[1]
	}
	return append(parts, s[last:])
}

// ParseArtifactLocation recovers links and text lines from the raw markup
// stored for the artifact column. Line breaks and unknown tags separate
// text lines; whitespace-only fragments are dropped.
func ParseArtifactLocation(markup string) []ArtifactPart {
	var parts []ArtifactPart
	var link *ArtifactPart
	var linkText strings.Builder

	for _, frag := range splitTags(markup) {
		switch {
		case frag == "":
		case strings.HasPrefix(frag, "<a ") || frag == "<a>":
			m := hrefAttr.FindStringSubmatch(frag)
			if m == nil {
				continue
			}
			link = &ArtifactPart{Href: html.UnescapeString(m[1])}
			linkText.Reset()
		case strings.HasPrefix(frag, "</a"):
			if link != nil {
				link.Text = strings.TrimSpace(linkText.String())
				if link.Text == "" {
					link.Text = link.Href
				}
				parts = append(parts, *link)
				link = nil
			}
		case strings.HasPrefix(frag, "<"):
		default:
			text := html.UnescapeString(frag)
			if link != nil {
				linkText.WriteString(text)
				continue
			}
			if t := strings.TrimSpace(text); t != "" {
				parts = append(parts, ArtifactPart{Text: t})
			}
		}
	}

	// unterminated anchor
	if link != nil {
		link.Text = strings.TrimSpace(linkText.String())
		if link.Text == "" {
			link.Text = link.Href
		}
		parts = append(parts, *link)
	}

	return parts
}
