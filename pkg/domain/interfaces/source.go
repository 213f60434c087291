package interfaces

import (
	"context"
	"io"
)

// PageSource retrieves the raw body of a documentation page
type PageSource interface {
	// Fetch returns the body of url. Implementations make exactly one attempt.
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// ObjectStore stores generated files under a name
type ObjectStore interface {
	// Put uploads the content of r as object name
	Put(ctx context.Context, name, contentType string, r io.Reader) error
}
