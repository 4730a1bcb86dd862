package artifacts

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/yoockh/mora/internal/recommend"
	pgrepo "github.com/yoockh/mora/internal/repositories/postgres"
)

// PostgresSource reads the corpus from the catalog database.
type PostgresSource struct {
	Repo pgrepo.CorpusRepository
}

func (s PostgresSource) Name() string { return "postgres" }

func (s PostgresSource) Load(ctx context.Context) (*recommend.CorpusIndex, error) {
	fail := func(reason string, err error) error {
		return &recommend.LoadError{Source: s.Name(), Reason: reason, Err: err}
	}

	m, err := s.Repo.LatestModel(ctx)
	if err != nil {
		return nil, fail("load tfidf model", err)
	}
	var params recommend.VectorizerParams
	if len(m.Params) > 0 {
		if err := json.Unmarshal(m.Params, &params); err != nil {
			return nil, fail("decode tfidf params", err)
		}
	}
	vz, err := recommend.NewVectorizerFromTerms(m.Terms, m.IDF, params)
	if err != nil {
		return nil, fail("invalid tfidf model "+m.Version, err)
	}

	courses, err := s.Repo.ListCourses(ctx)
	if err != nil {
		return nil, fail("list courses", err)
	}
	vectors, err := s.Repo.ListVectors(ctx)
	if err != nil {
		return nil, fail("list course vectors", err)
	}

	byCourse := make(map[int][]float32, len(vectors))
	for _, v := range vectors {
		byCourse[v.CourseID] = v.Embedding.Slice()
	}

	rows := make([]recommend.Vector, len(courses))
	for i, c := range courses {
		if c.RowPosition != i {
			return nil, fail(fmt.Sprintf("course %d has row_position %d, expected %d", c.CourseID, c.RowPosition, i), nil)
		}
		emb, ok := byCourse[c.CourseID]
		if !ok {
			return nil, fail(fmt.Sprintf("course %d has no vector", c.CourseID), nil)
		}
		rows[i] = recommend.DenseVector(emb)
	}
	if len(vectors) != len(courses) {
		return nil, fail(fmt.Sprintf("%d vectors for %d courses", len(vectors), len(courses)), nil)
	}

	idx, err := recommend.NewCorpusIndex(courses, vz, rows)
	if err != nil {
		var le *recommend.LoadError
		if errors.As(err, &le) {
			le.Source = s.Name()
		}
		return nil, err
	}
	return idx, nil
}
