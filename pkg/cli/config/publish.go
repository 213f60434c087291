package config

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/urfave/cli/v3"

	"github.com/e-minguez/suse-edge-support-matrix/pkg/domain/interfaces"
	"github.com/e-minguez/suse-edge-support-matrix/pkg/infra/gcs"
)

// Publish holds the optional Cloud Storage destination
type Publish struct {
	Bucket   string
	Prefix   string
	Endpoint string
}

// Flags returns CLI flags for publish configuration
func (c *Publish) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gcs-bucket",
			Usage:       "Upload generated files to this Cloud Storage bucket",
			Destination: &c.Bucket,
			Sources:     cli.EnvVars("EDGE_MATRIX_GCS_BUCKET"),
		},
		&cli.StringFlag{
			Name:        "gcs-prefix",
			Usage:       "Object name prefix inside the bucket",
			Destination: &c.Prefix,
			Sources:     cli.EnvVars("EDGE_MATRIX_GCS_PREFIX"),
		},
		&cli.StringFlag{
			Name:        "gcs-endpoint",
			Usage:       "Custom Cloud Storage endpoint (emulators)",
			Destination: &c.Endpoint,
			Sources:     cli.EnvVars("EDGE_MATRIX_GCS_ENDPOINT"),
		},
	}
}

// Configure returns the object store, or nil when no bucket is set. The
// returned close function is always safe to call.
func (c *Publish) Configure(ctx context.Context) (interfaces.ObjectStore, func(), error) {
	if c.Bucket == "" {
		return nil, func() {}, nil
	}

	client, err := gcs.NewClient(ctx, c.Bucket, c.Prefix, c.Endpoint)
	if err != nil {
		return nil, func() {}, err
	}

	closer := func() {
		if err := client.Close(); err != nil {
			ctxlog.From(ctx).Warn("Failed to close Cloud Storage client", "error", err)
		}
	}
	return client, closer, nil
}
