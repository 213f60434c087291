package emitter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/e-minguez/suse-edge-support-matrix/pkg/domain/model"
)

// JSON writes one <Version>.json file per release
type JSON struct {
	dir string
}

// NewJSON creates a JSON emitter writing into dir
func NewJSON(dir string) *JSON {
	return &JSON{dir: dir}
}

// Name implements interfaces.Emitter
func (e *JSON) Name() string { return "json" }

// Emit writes every release; a failing file does not stop the remaining ones
func (e *JSON) Emit(ctx context.Context, releases []*model.Release) ([]string, error) {
	logger := ctxlog.From(ctx)

	var written []string
	var errs []error
	for _, release := range releases {
		path, err := e.write(release)
		if err != nil {
			logger.Error("Failed to save JSON file", "version", release.Version, "error", err)
			errs = append(errs, err)
			continue
		}
		logger.Debug("Saved JSON file", "path", path)
		written = append(written, path)
	}

	if len(errs) > 0 {
		return written, goerr.Wrap(errors.Join(errs...), "failed to save some JSON files",
			goerr.V("failed", len(errs)),
			goerr.T(model.ErrTagIO),
		)
	}
	return written, nil
}

func (e *JSON) write(release *model.Release) (string, error) {
	if release.Version == "" || strings.ContainsAny(release.Version, `/\`) || release.Version == ".." {
		return "", goerr.New("release version is not a valid file name",
			goerr.V("version", release.Version),
			goerr.T(model.ErrTagIO),
		)
	}

	data, err := MarshalRelease(release)
	if err != nil {
		return "", err
	}

	path := filepath.Join(e.dir, release.Version+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", goerr.Wrap(err, "failed to write JSON file",
			goerr.V("path", path),
			goerr.T(model.ErrTagIO),
		)
	}
	return path, nil
}

// MarshalRelease encodes a release as 2-space indented JSON. Markup in the
// artifact column is kept verbatim instead of being \u-escaped.
func MarshalRelease(release *model.Release) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(release); err != nil {
		return nil, goerr.Wrap(err, "failed to encode release",
			goerr.V("version", release.Version),
			goerr.T(model.ErrTagIO),
		)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
