package usecase

import (
	"bytes"
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/net/html"

	"github.com/e-minguez/suse-edge-support-matrix/pkg/domain/interfaces"
	"github.com/e-minguez/suse-edge-support-matrix/pkg/domain/model"
)

const (
	componentsTitle   = "Components Versions"
	availabilityLabel = "Availability Date:"
)

var releaseSectionID = regexp.MustCompile(`(id-)?release(-notes)?-\d+-\d+-\d+`)

// IsReleaseSectionID reports whether id names a release section
func IsReleaseSectionID(id string) bool {
	return releaseSectionID.MatchString(id)
}

// Extractor pulls release sections and their component tables out of release-notes pages
type Extractor struct {
	source interfaces.PageSource
}

// NewExtractor creates an Extractor reading pages through source
func NewExtractor(source interfaces.PageSource) *Extractor {
	return &Extractor{source: source}
}

// ExtractReleases fetches pageURL once and returns every usable release section.
// Sections that cannot be processed are logged and skipped.
func (e *Extractor) ExtractReleases(ctx context.Context, pageURL string) ([]*model.RawRelease, error) {
	logger := ctxlog.From(ctx)

	body, err := e.source.Fetch(ctx, pageURL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch release notes", goerr.V("url", pageURL))
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse release notes",
			goerr.V("url", pageURL),
			goerr.T(model.ErrTagParse),
		)
	}

	sections := doc.Find("section[id]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return IsReleaseSectionID(s.AttrOr("id", ""))
	})
	if sections.Length() == 0 {
		return nil, goerr.New("no release sections found",
			goerr.V("url", pageURL),
			goerr.T(model.ErrTagStructure),
		)
	}

	var releases []*model.RawRelease
	sections.Each(func(_ int, section *goquery.Selection) {
		release, err := extractSection(ctx, pageURL, section)
		if err != nil {
			logger.Warn("Skipping release section",
				"url", pageURL,
				"section_id", section.AttrOr("id", ""),
				"error", err,
			)
			return
		}
		releases = append(releases, release)
	})

	logger.Info("Extracted release sections",
		"url", pageURL,
		"sections", sections.Length(),
		"releases", len(releases),
	)

	return releases, nil
}

func extractSection(ctx context.Context, pageURL string, section *goquery.Selection) (*model.RawRelease, error) {
	logger := ctxlog.From(ctx)

	title, ok := section.Attr("data-id-title")
	if !ok || title == "" {
		return nil, goerr.New("data-id-title not found in section", goerr.T(model.ErrTagStructure))
	}

	parts := strings.Fields(title)
	if len(parts) < 2 {
		return nil, goerr.New("invalid release title format",
			goerr.V("title", title),
			goerr.T(model.ErrTagStructure),
		)
	}
	version := parts[1]

	components := section.Find("section").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.AttrOr("data-id-title", "") == componentsTitle
	}).First()
	if components.Length() == 0 {
		return nil, goerr.New("no components section found",
			goerr.V("title", title),
			goerr.T(model.ErrTagStructure),
		)
	}

	componentsID := components.AttrOr("id", "")
	if componentsID == "" {
		return nil, goerr.New("components section has no id",
			goerr.V("title", title),
			goerr.T(model.ErrTagStructure),
		)
	}

	release := &model.RawRelease{
		Version:          version,
		URL:              pageURL + "#" + componentsID,
		AvailabilityDate: availabilityDateOf(section),
	}

	tables := components.Find("table")
	if tables.Length() == 0 {
		logger.Warn("No tables found in components section",
			"title", title,
			"url", pageURL,
		)
		return release, nil
	}

	tables.Each(func(_ int, table *goquery.Selection) {
		release.Records = append(release.Records, NormalizeTable(table)...)
	})

	logger.Debug("Extracted release",
		"version", version,
		"tables", tables.Length(),
		"records", len(release.Records),
	)

	return release, nil
}

// availabilityDateOf finds the first text node mentioning the availability
// label and returns the date written next to it. The search never leaves
// the release section.
func availabilityDateOf(section *goquery.Selection) *string {
	for _, root := range section.Nodes {
		label := findText(root, availabilityLabel)
		if label == nil {
			continue
		}

		if date, ok := findAvailabilityDate(label.Data); ok {
			return &date
		}

		// "<p><strong>Availability Date:</strong> 3rd June 2024</p>"
		scope := label.Parent
		if scope != nil && scope != root && within(scope.Parent, root) {
			scope = scope.Parent
		}
		if within(scope, root) {
			text := goquery.NewDocumentFromNode(scope).Text()
			if date, ok := findAvailabilityDate(text); ok {
				return &date
			}
		}
		return nil
	}
	return nil
}

// within reports whether n is root or one of its descendants
func within(n, root *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n == root {
			return true
		}
	}
	return false
}

func findText(n *html.Node, needle string) *html.Node {
	if n.Type == html.TextNode && strings.Contains(n.Data, needle) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findText(c, needle); found != nil {
			return found
		}
	}
	return nil
}
