package artifacts

import (
	"context"
	"io"
	"path"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/yoockh/mora/internal/recommend"
	"github.com/yoockh/mora/internal/storage"
)

// BucketSource reads the artifacts from an object store under Prefix.
type BucketSource struct {
	Store  storage.ObjectReader
	Bucket string
	Prefix string
}

func (s BucketSource) Name() string { return "gs://" + path.Join(s.Bucket, s.Prefix) }

func (s BucketSource) object(name string) string {
	if s.Prefix == "" {
		return name
	}
	return path.Join(s.Prefix, name)
}

func (s BucketSource) Load(ctx context.Context) (*recommend.CorpusIndex, error) {
	names := []string{CoursesFile, VectorizerFile, MatrixFile}

	listed, err := s.Store.List(ctx, s.Prefix)
	if err != nil {
		return nil, &recommend.LoadError{Source: s.Name(), Reason: "list artifacts", Err: err}
	}
	present := make(map[string]bool, len(listed))
	for _, n := range listed {
		present[n] = true
	}
	var missing []string
	for _, n := range names {
		if !present[s.object(n)] {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return nil, &recommend.LoadError{Source: s.Name(), Reason: "missing " + strings.Join(missing, ", ")}
	}

	var blobs [3][]byte
	g, gctx := errgroup.WithContext(ctx)
	for i, n := range names {
		i, n := i, n
		g.Go(func() error {
			rc, err := s.Store.Open(gctx, s.object(n))
			if err != nil {
				return &recommend.LoadError{Source: s.Name(), Reason: "open " + n, Err: err}
			}
			defer rc.Close()
			b, err := io.ReadAll(rc)
			if err != nil {
				return &recommend.LoadError{Source: s.Name(), Reason: "read " + n, Err: err}
			}
			blobs[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return decodeBundle(s.Name(), blobs[0], blobs[1], blobs[2])
}
