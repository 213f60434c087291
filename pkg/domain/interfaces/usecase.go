package interfaces

import (
	"context"

	"github.com/e-minguez/suse-edge-support-matrix/pkg/domain/model"
)

// MatrixUseCase collects the release matrix from the documentation site
type MatrixUseCase interface {
	// Collect discovers release-notes pages and returns every release with component data
	Collect(ctx context.Context) ([]*model.Release, error)
}

// GenerateUseCase runs the full pipeline including every output sink
type GenerateUseCase interface {
	// Generate collects releases and writes all outputs
	Generate(ctx context.Context) (*model.GenerateResult, error)
}
