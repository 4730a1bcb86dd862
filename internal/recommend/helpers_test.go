package recommend

import (
	"testing"

	"github.com/yoockh/mora/internal/models"
)

// dense builds a corpus row without float32 rounding.
func dense(vals ...float64) Vector {
	v := Vector{Dim: len(vals)}
	for i, x := range vals {
		if x != 0 {
			v.Indices = append(v.Indices, i)
			v.Values = append(v.Values, x)
		}
	}
	return v
}

func unitIDF(n int) []float64 {
	idf := make([]float64, n)
	for i := range idf {
		idf[i] = 1
	}
	return idf
}

func newTestVectorizer(t *testing.T, terms ...string) *Vectorizer {
	t.Helper()
	vz, err := NewVectorizerFromTerms(terms, unitIDF(len(terms)), VectorizerParams{})
	if err != nil {
		t.Fatalf("NewVectorizerFromTerms() error = %v", err)
	}
	return vz
}

func newTestIndex(t *testing.T, terms []string, courses []models.Course, rows []Vector) *CorpusIndex {
	t.Helper()
	idx, err := NewCorpusIndex(courses, newTestVectorizer(t, terms...), rows)
	if err != nil {
		t.Fatalf("NewCorpusIndex() error = %v", err)
	}
	return idx
}
