// Package artifacts loads the offline-trained course corpus: the course table,
// the fitted vectorizer and the document-term matrix.
package artifacts

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/yoockh/mora/internal/models"
	"github.com/yoockh/mora/internal/recommend"
)

const (
	CoursesFile    = "courses.json"
	VectorizerFile = "vectorizer.json"
	MatrixFile     = "matrix.json"
)

// Source produces a corpus index. Failures are *recommend.LoadError values.
type Source interface {
	Name() string
	Load(ctx context.Context) (*recommend.CorpusIndex, error)
}

type courseRow struct {
	CourseID     int             `json:"course_id"`
	CourseName   string          `json:"course_name"`
	LevelName    string          `json:"level_name"`
	TutorialList json.RawMessage `json:"tutorial_list"`
}

type vectorizerDoc struct {
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
	recommend.VectorizerParams
}

type matrixDoc struct {
	Shape [2]int `json:"shape"`
	Rows  []struct {
		Indices []int     `json:"indices"`
		Values  []float64 `json:"values"`
	} `json:"rows"`
}

// decodeBundle builds an index from the three JSON documents.
func decodeBundle(source string, coursesJSON, vectorizerJSON, matrixJSON []byte) (*recommend.CorpusIndex, error) {
	fail := func(reason string, err error) error {
		return &recommend.LoadError{Source: source, Reason: reason, Err: err}
	}

	var rows []courseRow
	if err := json.Unmarshal(coursesJSON, &rows); err != nil {
		return nil, fail("decode "+CoursesFile, err)
	}
	courses := make([]models.Course, len(rows))
	for i, r := range rows {
		courses[i] = models.Course{
			CourseID:     r.CourseID,
			CourseName:   r.CourseName,
			LevelName:    r.LevelName,
			TutorialList: tutorialText(r.TutorialList),
			RowPosition:  i,
		}
	}

	var vd vectorizerDoc
	if err := json.Unmarshal(vectorizerJSON, &vd); err != nil {
		return nil, fail("decode "+VectorizerFile, err)
	}
	vz, err := recommend.NewVectorizer(vd.Vocabulary, vd.IDF, vd.VectorizerParams)
	if err != nil {
		return nil, fail("invalid vectorizer", err)
	}

	var md matrixDoc
	if err := json.Unmarshal(matrixJSON, &md); err != nil {
		return nil, fail("decode "+MatrixFile, err)
	}
	if md.Shape[0] != len(md.Rows) {
		return nil, fail(fmt.Sprintf("matrix shape says %d rows, found %d", md.Shape[0], len(md.Rows)), nil)
	}
	vecs := make([]recommend.Vector, len(md.Rows))
	for i, r := range md.Rows {
		v, err := recommend.NewSparseVector(md.Shape[1], r.Indices, r.Values)
		if err != nil {
			return nil, fail(fmt.Sprintf("matrix row %d", i), err)
		}
		vecs[i] = v
	}

	idx, err := recommend.NewCorpusIndex(courses, vz, vecs)
	if err != nil {
		var le *recommend.LoadError
		if errors.As(err, &le) && le.Source == "" {
			le.Source = source
		}
		return nil, err
	}
	return idx, nil
}

// tutorialText keeps a list field in its serialized form: JSON strings are
// unquoted, anything else (arrays, null) is kept as raw JSON text.
func tutorialText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if raw[0] == '"' && json.Unmarshal(raw, &s) == nil {
		return s
	}
	return string(raw)
}
