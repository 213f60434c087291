package web

import (
	"context"
	"errors"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/e-minguez/suse-edge-support-matrix/pkg/domain/model"
)

// Fixture serves pages from local files instead of the network.
//
// A URL maps to <dir>/<host>/<path>; a path ending in "/" maps to index.html
// inside that directory. Query strings and fragments are ignored.
type Fixture struct {
	dir   string
	pages map[string]string
}

// NewFixture creates a page source rooted at dir. Explicit pages (URL -> file
// relative to dir) take precedence over the host/path layout.
func NewFixture(dir string, pages map[string]string) *Fixture {
	if pages == nil {
		pages = map[string]string{}
	}
	return &Fixture{dir: dir, pages: pages}
}

// Fetch reads the file backing rawURL
func (f *Fixture) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	path, err := f.resolve(rawURL)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(err, "no fixture for url",
				goerr.V("url", rawURL),
				goerr.V("path", path),
				goerr.T(model.ErrTagFetch),
			)
		}
		return nil, goerr.Wrap(err, "failed to read fixture",
			goerr.V("path", path),
			goerr.T(model.ErrTagFetch),
		)
	}
	return data, nil
}

func (f *Fixture) resolve(rawURL string) (string, error) {
	if p, ok := f.pages[rawURL]; ok {
		return filepath.Join(f.dir, p), nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", goerr.Wrap(err, "invalid url",
			goerr.V("url", rawURL),
			goerr.T(model.ErrTagFetch),
		)
	}

	p := u.Path
	if p == "" || strings.HasSuffix(p, "/") {
		p += "index.html"
	}

	full := filepath.Join(f.dir, u.Host, filepath.FromSlash(p))
	rel, err := filepath.Rel(f.dir, full)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", goerr.New("fixture path escapes fixture directory",
			goerr.V("url", rawURL),
			goerr.T(model.ErrTagFetch),
		)
	}
	return full, nil
}
