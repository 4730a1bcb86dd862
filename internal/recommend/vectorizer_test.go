package recommend

import (
	"math"
	"testing"
)

func TestNewVectorizer_Validation(t *testing.T) {
	tests := []struct {
		name  string
		vocab map[string]int
		idf   []float64
	}{
		{name: "empty vocabulary", vocab: map[string]int{}, idf: nil},
		{name: "idf length mismatch", vocab: map[string]int{"sql": 0}, idf: []float64{1, 2}},
		{name: "index out of range", vocab: map[string]int{"sql": 0, "go": 5}, idf: []float64{1, 1}},
		{name: "index reused", vocab: map[string]int{"sql": 0, "go": 0}, idf: []float64{1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewVectorizer(tt.vocab, tt.idf, VectorizerParams{}); err == nil {
				t.Error("NewVectorizer() error = nil, want error")
			}
		})
	}

	if _, err := NewVectorizerFromTerms([]string{"sql", "sql"}, []float64{1, 1}, VectorizerParams{}); err == nil {
		t.Error("NewVectorizerFromTerms() accepted duplicate terms")
	}
}

func TestVectorizer_Encode(t *testing.T) {
	vz, err := NewVectorizerFromTerms(
		[]string{"machine", "learning", "sql", "dasar"},
		[]float64{1, 2, 1.5, 1},
		VectorizerParams{},
	)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("case insensitive", func(t *testing.T) {
		a := vz.Encode("Machine LEARNING")
		b := vz.Encode("machine learning")
		if math.Abs(a.Dot(b)-1) > 1e-12 {
			t.Errorf("Dot(upper, lower) = %f, want 1", a.Dot(b))
		}
	})

	t.Run("unit length", func(t *testing.T) {
		v := vz.Encode("sql sql machine")
		if math.Abs(v.Norm()-1) > 1e-12 {
			t.Errorf("Norm() = %f, want 1", v.Norm())
		}
		if v.Dim != vz.Dim() {
			t.Errorf("Dim = %d, want %d", v.Dim, vz.Dim())
		}
	})

	t.Run("idf weighting", func(t *testing.T) {
		v := vz.Encode("machine learning")
		// machine=1, learning=2 before normalization
		want := 2 / math.Sqrt(5)
		if math.Abs(v.Values[1]-want) > 1e-12 {
			t.Errorf("learning weight = %f, want %f", v.Values[1], want)
		}
	})

	t.Run("out of vocabulary dropped", func(t *testing.T) {
		v := vz.Encode("quantum teleportation")
		if !v.IsZero() {
			t.Errorf("Encode(OOV) = %+v, want zero", v)
		}
		if v.Dim != vz.Dim() {
			t.Errorf("Dim = %d, want %d", v.Dim, vz.Dim())
		}
	})

	t.Run("single character tokens ignored", func(t *testing.T) {
		if v := vz.Encode("c r"); !v.IsZero() {
			t.Error("single-character tokens should not match")
		}
	})

	t.Run("punctuation splits tokens", func(t *testing.T) {
		v := vz.Encode("sql/dasar")
		if len(v.Indices) != 2 {
			t.Errorf("got %d terms, want 2", len(v.Indices))
		}
	})
}

func TestVectorizer_NgramsAndStopWords(t *testing.T) {
	vz, err := NewVectorizerFromTerms(
		[]string{"machine", "learning", "machine learning", "deep"},
		unitIDF(4),
		VectorizerParams{NgramRange: [2]int{1, 2}, StopWords: []string{"and"}},
	)
	if err != nil {
		t.Fatal(err)
	}

	v := vz.Encode("Machine Learning")
	if len(v.Indices) != 3 {
		t.Fatalf("got %d terms, want 3 (two unigrams and one bigram)", len(v.Indices))
	}

	// "and" is removed before bigrams are formed
	v = vz.Encode("machine and learning")
	if len(v.Indices) != 3 {
		t.Errorf("got %d terms, want 3", len(v.Indices))
	}
}

func TestVectorizer_SublinearTF(t *testing.T) {
	vz, err := NewVectorizerFromTerms([]string{"sql", "go"}, unitIDF(2), VectorizerParams{SublinearTF: true})
	if err != nil {
		t.Fatal(err)
	}
	v := vz.Encode("sql sql sql go")
	ratio := v.Values[1] / v.Values[0]
	want := 1 + math.Log(3)
	if math.Abs(ratio-want) > 1e-12 {
		t.Errorf("sql/go weight ratio = %f, want %f", ratio, want)
	}
}
