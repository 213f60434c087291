package gcs

import (
	"context"
	"io"
	"path"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/option"

	"github.com/e-minguez/suse-edge-support-matrix/pkg/domain/model"
)

// Client uploads generated files to a Cloud Storage bucket
type Client struct {
	storage *storage.Client
	bucket  string
	prefix  string
}

// NewClient creates a Cloud Storage object store. When endpoint is set the
// client talks to it without authentication (fake-gcs-server and friends).
func NewClient(ctx context.Context, bucket, prefix, endpoint string) (*Client, error) {
	var opts []option.ClientOption
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint), option.WithoutAuthentication())
	}

	sc, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Cloud Storage client",
			goerr.V("bucket", bucket),
			goerr.T(model.ErrTagIO),
		)
	}

	return &Client{
		storage: sc,
		bucket:  bucket,
		prefix:  prefix,
	}, nil
}

// Put uploads r as <prefix>/<name>
func (c *Client) Put(ctx context.Context, name, contentType string, r io.Reader) error {
	object := path.Join(c.prefix, name)

	w := c.storage.Bucket(c.bucket).Object(object).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return goerr.Wrap(err, "failed to upload object",
			goerr.V("bucket", c.bucket),
			goerr.V("object", object),
			goerr.T(model.ErrTagIO),
		)
	}

	if err := w.Close(); err != nil {
		return goerr.Wrap(err, "failed to finalize object",
			goerr.V("bucket", c.bucket),
			goerr.V("object", object),
			goerr.T(model.ErrTagIO),
		)
	}
	return nil
}

// Close releases the underlying client
func (c *Client) Close() error {
	return c.storage.Close()
}
