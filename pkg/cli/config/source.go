package config

import (
	"time"

	"github.com/urfave/cli/v3"

	"github.com/e-minguez/suse-edge-support-matrix/pkg/domain/interfaces"
	"github.com/e-minguez/suse-edge-support-matrix/pkg/infra/web"
	"github.com/e-minguez/suse-edge-support-matrix/pkg/usecase"
)

// Source holds settings for locating and fetching release-notes pages
type Source struct {
	IndexURL      string
	ProductFamily string
	URLTemplate   string
	Timeout       time.Duration
	FixtureDir    string
	Sort          bool
}

// Flags returns CLI flags for source configuration
func (c *Source) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "index-url",
			Usage:       "Documentation index page listing supported versions",
			Value:       usecase.DefaultIndexURL,
			Destination: &c.IndexURL,
			Sources:     cli.EnvVars("EDGE_MATRIX_INDEX_URL"),
		},
		&cli.StringFlag{
			Name:        "product-family",
			Usage:       "Product family looked up on the index page",
			Value:       usecase.DefaultProductFamily,
			Destination: &c.ProductFamily,
			Sources:     cli.EnvVars("EDGE_MATRIX_PRODUCT_FAMILY"),
		},
		&cli.StringFlag{
			Name:        "url-template",
			Usage:       "Release-notes URL, " + usecase.VersionPlaceholder + " is replaced by the version",
			Value:       usecase.DefaultURLTemplate,
			Destination: &c.URLTemplate,
			Sources:     cli.EnvVars("EDGE_MATRIX_URL_TEMPLATE"),
		},
		&cli.DurationFlag{
			Name:        "timeout",
			Usage:       "Timeout of a single page fetch",
			Value:       web.DefaultTimeout,
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("EDGE_MATRIX_TIMEOUT"),
		},
		&cli.StringFlag{
			Name:        "fixture-dir",
			Usage:       "Read pages from <dir>/<host>/<path> instead of the network",
			Destination: &c.FixtureDir,
			Sources:     cli.EnvVars("EDGE_MATRIX_FIXTURE_DIR"),
		},
		&cli.BoolFlag{
			Name:        "sort",
			Usage:       "Order releases newest first by semantic version",
			Destination: &c.Sort,
			Sources:     cli.EnvVars("EDGE_MATRIX_SORT"),
		},
	}
}

// Configure returns the page source: local fixtures when a fixture
// directory is set, the live site otherwise
func (c *Source) Configure() interfaces.PageSource {
	if c.FixtureDir != "" {
		return web.NewFixture(c.FixtureDir, nil)
	}
	return web.NewClient(web.WithTimeout(c.Timeout))
}

// MatrixOptions converts the settings into matrix use case options
func (c *Source) MatrixOptions() []usecase.MatrixOption {
	return []usecase.MatrixOption{
		usecase.WithIndexURL(c.IndexURL),
		usecase.WithProductFamily(c.ProductFamily),
		usecase.WithURLTemplate(c.URLTemplate),
		usecase.WithSortByVersion(c.Sort),
	}
}
