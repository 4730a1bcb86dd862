package artifacts

import (
	"context"
	"os"
	"path/filepath"

	"github.com/yoockh/mora/internal/recommend"
)

// FileSource reads the artifacts from a local directory.
type FileSource struct {
	Dir string
}

func (s FileSource) Name() string { return "file:" + s.Dir }

func (s FileSource) Load(_ context.Context) (*recommend.CorpusIndex, error) {
	var blobs [3][]byte
	for i, name := range []string{CoursesFile, VectorizerFile, MatrixFile} {
		b, err := os.ReadFile(filepath.Join(s.Dir, name))
		if err != nil {
			return nil, &recommend.LoadError{Source: s.Name(), Reason: "read " + name, Err: err}
		}
		blobs[i] = b
	}
	return decodeBundle(s.Name(), blobs[0], blobs[1], blobs[2])
}
