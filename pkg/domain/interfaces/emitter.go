package interfaces

import (
	"context"

	"github.com/e-minguez/suse-edge-support-matrix/pkg/domain/model"
)

// Emitter renders the release list into one or more output files
type Emitter interface {
	// Name identifies the emitter in logs
	Name() string

	// Emit writes its outputs and returns the paths written. A partial failure
	// returns the successful paths together with an error.
	Emit(ctx context.Context, releases []*model.Release) ([]string, error)
}
