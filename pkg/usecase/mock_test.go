package usecase_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/e-minguez/suse-edge-support-matrix/pkg/domain/model"
)

// MockPageSource is a mock implementation of PageSource
type MockPageSource struct {
	FetchFunc func(ctx context.Context, url string) ([]byte, error)
	calls     []string
}

func (m *MockPageSource) Fetch(ctx context.Context, url string) ([]byte, error) {
	m.calls = append(m.calls, url)
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, url)
	}
	return nil, goerr.New("mock not configured", goerr.T(model.ErrTagFetch))
}

// newPageSource serves testdata files keyed by URL
func newPageSource(t *testing.T, pages map[string]string) *MockPageSource {
	t.Helper()
	bodies := make(map[string][]byte, len(pages))
	for url, file := range pages {
		data, err := os.ReadFile(filepath.Join("testdata", file))
		gt.NoError(t, err)
		bodies[url] = data
	}

	return &MockPageSource{
		FetchFunc: func(ctx context.Context, url string) ([]byte, error) {
			body, ok := bodies[url]
			if !ok {
				return nil, goerr.New("page not found", goerr.V("url", url), goerr.T(model.ErrTagFetch))
			}
			return body, nil
		},
	}
}

func staticPage(body string) *MockPageSource {
	return &MockPageSource{
		FetchFunc: func(ctx context.Context, url string) ([]byte, error) {
			return []byte(body), nil
		},
	}
}

const (
	indexURL    = "https://documentation.suse.com/en-us/?tab=products"
	notes32URL  = "https://documentation.suse.com/suse-edge/3.2/html/edge/id-release-notes.html"
	notes31URL  = "https://documentation.suse.com/suse-edge/3.1/html/edge/id-release-notes.html"
	unknownPage = "https://documentation.suse.com/unknown.html"
)
