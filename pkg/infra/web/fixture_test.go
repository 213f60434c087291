package web_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/e-minguez/suse-edge-support-matrix/pkg/domain/model"
	"github.com/e-minguez/suse-edge-support-matrix/pkg/infra/web"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	gt.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestFixture_Fetch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "documentation.suse.com", "en-us", "index.html"), "index page")
	writeFile(t, filepath.Join(dir, "documentation.suse.com", "suse-edge", "3.2", "html", "edge", "id-release-notes.html"), "release notes")
	writeFile(t, filepath.Join(dir, "custom.html"), "custom page")

	fixture := web.NewFixture(dir, map[string]string{
		"https://example.com/anything": "custom.html",
	})
	ctx := context.Background()

	t.Run("directory url maps to index.html and ignores query", func(t *testing.T) {
		body, err := fixture.Fetch(ctx, "https://documentation.suse.com/en-us/?tab=products")
		gt.NoError(t, err)
		gt.Value(t, string(body)).Equal("index page")
	})

	t.Run("file url maps to host and path", func(t *testing.T) {
		body, err := fixture.Fetch(ctx, "https://documentation.suse.com/suse-edge/3.2/html/edge/id-release-notes.html")
		gt.NoError(t, err)
		gt.Value(t, string(body)).Equal("release notes")
	})

	t.Run("explicit page mapping wins", func(t *testing.T) {
		body, err := fixture.Fetch(ctx, "https://example.com/anything")
		gt.NoError(t, err)
		gt.Value(t, string(body)).Equal("custom page")
	})

	t.Run("missing page is a fetch error", func(t *testing.T) {
		_, err := fixture.Fetch(ctx, "https://documentation.suse.com/missing.html")
		gt.Error(t, err)
		gt.True(t, model.HasTag(err, model.ErrTagFetch))
	})
}
