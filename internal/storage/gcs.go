package storage

import (
	"context"
	"errors"
	"io"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

type GCSReader struct {
	client *gcs.Client
	bucket string
}

func NewGCSReader(ctx context.Context, bucket string) (*GCSReader, error) {
	c, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return &GCSReader{client: c, bucket: bucket}, nil
}

func (r *GCSReader) Close() error { return r.client.Close() }

func (r *GCSReader) Open(ctx context.Context, objectName string) (io.ReadCloser, error) {
	rc, err := r.client.Bucket(r.bucket).Object(objectName).NewReader(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return nil, ErrObjectNotFound
	}
	return rc, err
}

func (r *GCSReader) List(ctx context.Context, prefix string) ([]string, error) {
	it := r.client.Bucket(r.bucket).Objects(ctx, &gcs.Query{Prefix: prefix})
	var names []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			return names, nil
		}
		if err != nil {
			return nil, err
		}
		names = append(names, attrs.Name)
	}
}
