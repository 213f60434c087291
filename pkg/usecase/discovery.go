package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/e-minguez/suse-edge-support-matrix/pkg/domain/interfaces"
	"github.com/e-minguez/suse-edge-support-matrix/pkg/domain/model"
)

// Documentation site defaults
const (
	DefaultIndexURL      = "https://documentation.suse.com/en-us/?tab=products"
	DefaultProductFamily = "SUSE Edge"
	DefaultURLTemplate   = "https://documentation.suse.com/suse-edge/{version}/html/edge/id-release-notes.html"

	// VersionPlaceholder is replaced by the product version name in the URL template
	VersionPlaceholder = "{version}"
)

// Discovery finds the release-notes pages of every supported product version
type Discovery struct {
	source        interfaces.PageSource
	productFamily string
	urlTemplate   string
}

// NewDiscovery creates a Discovery reading pages through source
func NewDiscovery(source interfaces.PageSource, productFamily, urlTemplate string) *Discovery {
	if productFamily == "" {
		productFamily = DefaultProductFamily
	}
	if urlTemplate == "" {
		urlTemplate = DefaultURLTemplate
	}
	return &Discovery{
		source:        source,
		productFamily: productFamily,
		urlTemplate:   urlTemplate,
	}
}

// Discover fetches indexURL and returns one release-notes URL per supported version
func (d *Discovery) Discover(ctx context.Context, indexURL string) ([]string, error) {
	logger := ctxlog.From(ctx)

	body, err := d.source.Fetch(ctx, indexURL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch documentation index", goerr.V("url", indexURL))
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse documentation index",
			goerr.V("url", indexURL),
			goerr.T(model.ErrTagParse),
		)
	}

	var marker *goquery.Selection
	doc.Find("div[data-product-family]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.AttrOr("data-product-family", "") == d.productFamily {
			marker = s
			return false
		}
		return true
	})
	if marker == nil {
		return nil, goerr.New("product family not found on index page",
			goerr.V("url", indexURL),
			goerr.V("product_family", d.productFamily),
			goerr.T(model.ErrTagStructure),
		)
	}

	raw, ok := marker.Attr("data-supported-versions")
	if !ok || raw == "" {
		return nil, goerr.New("data-supported-versions not found on index page",
			goerr.V("url", indexURL),
			goerr.T(model.ErrTagStructure),
		)
	}

	var versions []model.ProductVersion
	if err := json.Unmarshal([]byte(raw), &versions); err != nil {
		return nil, goerr.Wrap(err, "failed to decode supported versions",
			goerr.V("url", indexURL),
			goerr.V("payload", raw),
			goerr.T(model.ErrTagParse),
		)
	}

	urls := make([]string, 0, len(versions))
	for _, v := range versions {
		urls = append(urls, strings.ReplaceAll(d.urlTemplate, VersionPlaceholder, v.Name))
	}

	logger.Info("Discovered release-notes pages",
		"url", indexURL,
		"product_family", d.productFamily,
		"count", len(urls),
	)

	return urls, nil
}
