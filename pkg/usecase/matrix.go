package usecase

import (
	"context"
	"slices"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/e-minguez/suse-edge-support-matrix/pkg/domain/interfaces"
	"github.com/e-minguez/suse-edge-support-matrix/pkg/domain/model"
)

type matrixConfig struct {
	indexURL      string
	productFamily string
	urlTemplate   string
	sortByVersion bool
}

// MatrixOption is a functional option for the matrix use case
type MatrixOption func(*matrixConfig)

// WithIndexURL sets the documentation index page
func WithIndexURL(u string) MatrixOption {
	return func(c *matrixConfig) {
		c.indexURL = u
	}
}

// WithProductFamily sets the product family looked up on the index page
func WithProductFamily(family string) MatrixOption {
	return func(c *matrixConfig) {
		c.productFamily = family
	}
}

// WithURLTemplate sets the release-notes URL template
func WithURLTemplate(tmpl string) MatrixOption {
	return func(c *matrixConfig) {
		c.urlTemplate = tmpl
	}
}

// WithSortByVersion orders releases newest first by semantic version
func WithSortByVersion(enabled bool) MatrixOption {
	return func(c *matrixConfig) {
		c.sortByVersion = enabled
	}
}

type matrixUseCase struct {
	cfg       *matrixConfig
	discovery *Discovery
	extractor *Extractor
}

// NewMatrix creates a new instance of MatrixUseCase
func NewMatrix(source interfaces.PageSource, opts ...MatrixOption) interfaces.MatrixUseCase {
	cfg := &matrixConfig{
		indexURL:      DefaultIndexURL,
		productFamily: DefaultProductFamily,
		urlTemplate:   DefaultURLTemplate,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &matrixUseCase{
		cfg:       cfg,
		discovery: NewDiscovery(source, cfg.productFamily, cfg.urlTemplate),
		extractor: NewExtractor(source),
	}
}

// Collect discovers every release-notes page and returns the releases that
// carry component data. Failures on a single page are logged and skipped.
func (uc *matrixUseCase) Collect(ctx context.Context) ([]*model.Release, error) {
	logger := ctxlog.From(ctx)

	urls, err := uc.discovery.Discover(ctx, uc.cfg.indexURL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to discover release-notes pages")
	}

	var releases []*model.Release
	for _, u := range urls {
		raws, err := uc.extractor.ExtractReleases(ctx, u)
		if err != nil {
			logger.Warn("Skipping release-notes page", "url", u, "error", err)
			continue
		}

		for _, raw := range raws {
			data := KeyByName(ctx, raw.Records)
			if len(data) == 0 {
				logger.Info("Release has no component data, skipped",
					"version", raw.Version,
					"url", raw.URL,
				)
				continue
			}
			releases = append(releases, &model.Release{
				Version:          raw.Version,
				URL:              raw.URL,
				AvailabilityDate: raw.AvailabilityDate,
				Data:             data,
			})
		}
	}

	if uc.cfg.sortByVersion {
		SortReleases(releases)
	}

	logger.Info("Collected releases", "count", len(releases), "pages", len(urls))
	return releases, nil
}

// SortReleases orders releases newest first by semantic version. Releases whose
// version is not semver keep their relative order after all semver releases.
func SortReleases(releases []*model.Release) {
	slices.SortStableFunc(releases, func(a, b *model.Release) int {
		va, errA := a.SemVer()
		vb, errB := b.SemVer()
		switch {
		case errA != nil && errB != nil:
			return 0
		case errA != nil:
			return 1
		case errB != nil:
			return -1
		}
		return vb.Compare(va)
	})
}
