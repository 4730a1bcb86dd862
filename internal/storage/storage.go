package storage

import (
	"context"
	"errors"
	"io"
)

var ErrObjectNotFound = errors.New("object not found")

// ObjectReader reads published model artifacts from a bucket.
type ObjectReader interface {
	Open(ctx context.Context, objectName string) (io.ReadCloser, error)
	List(ctx context.Context, prefix string) ([]string, error)
}
