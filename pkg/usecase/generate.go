package usecase

import (
	"context"
	"mime"
	"os"
	"path/filepath"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/e-minguez/suse-edge-support-matrix/pkg/domain/interfaces"
	"github.com/e-minguez/suse-edge-support-matrix/pkg/domain/model"
)

type generateUseCase struct {
	matrix   interfaces.MatrixUseCase
	emitters []interfaces.Emitter
	store    interfaces.ObjectStore
}

// NewGenerate creates a new instance of GenerateUseCase. store may be nil to
// skip publishing.
func NewGenerate(matrix interfaces.MatrixUseCase, emitters []interfaces.Emitter, store interfaces.ObjectStore) interfaces.GenerateUseCase {
	return &generateUseCase{
		matrix:   matrix,
		emitters: emitters,
		store:    store,
	}
}

// Generate collects releases and runs every emitter. Emitter failures are
// counted and logged; only a failed discovery aborts the run, so that a
// broken index page never replaces existing outputs with empty ones.
func (uc *generateUseCase) Generate(ctx context.Context) (*model.GenerateResult, error) {
	logger := ctxlog.From(ctx)

	releases, err := uc.matrix.Collect(ctx)
	if err != nil {
		return nil, err
	}

	result := &model.GenerateResult{Releases: releases}

	for _, e := range uc.emitters {
		files, err := e.Emit(ctx, releases)
		result.Files = append(result.Files, files...)
		if err != nil {
			logger.Error("Emitter failed", "emitter", e.Name(), "error", err)
			result.Failed++
		}
	}

	if uc.store != nil {
		result.Published = uc.publish(ctx, result.Files)
	}

	logger.Info("Generation completed",
		"releases", len(releases),
		"files", len(result.Files),
		"failed", result.Failed,
		"published", result.Published,
	)

	return result, nil
}

// publish uploads every written file once; failures are logged per file
func (uc *generateUseCase) publish(ctx context.Context, files []string) int {
	logger := ctxlog.From(ctx)

	published := 0
	for _, path := range files {
		if err := uc.upload(ctx, path); err != nil {
			logger.Error("Failed to publish file", "path", path, "error", err)
			continue
		}
		published++
	}
	return published
}

func (uc *generateUseCase) upload(ctx context.Context, path string) error {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return goerr.Wrap(err, "failed to open generated file",
			goerr.V("path", path),
			goerr.T(model.ErrTagIO),
		)
	}
	defer func() {
		_ = f.Close()
	}()

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return uc.store.Put(ctx, filepath.Base(path), contentType, f)
}
