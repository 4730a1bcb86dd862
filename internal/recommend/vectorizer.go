package recommend

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
)

// tokenRE matches runs of two or more word characters, the default token rule
// of the offline trainer.
var tokenRE = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// VectorizerParams are the fitted hyper-parameters that affect encoding.
type VectorizerParams struct {
	NgramRange  [2]int   `json:"ngram_range"`
	SublinearTF bool     `json:"sublinear_tf"`
	StopWords   []string `json:"stop_words,omitempty"`
}

// Vectorizer is a fitted TF-IDF model: a vocabulary and one idf weight per term.
type Vectorizer struct {
	vocab       map[string]int
	idf         []float64
	minN, maxN  int
	sublinearTF bool
	stop        map[string]struct{}
}

func NewVectorizer(vocab map[string]int, idf []float64, p VectorizerParams) (*Vectorizer, error) {
	if len(vocab) == 0 {
		return nil, fmt.Errorf("vectorizer: empty vocabulary")
	}
	if len(idf) != len(vocab) {
		return nil, fmt.Errorf("vectorizer: %d idf weights for %d terms", len(idf), len(vocab))
	}
	seen := make([]bool, len(vocab))
	for term, i := range vocab {
		if i < 0 || i >= len(vocab) {
			return nil, fmt.Errorf("vectorizer: term %q has index %d out of range", term, i)
		}
		if seen[i] {
			return nil, fmt.Errorf("vectorizer: index %d assigned twice", i)
		}
		seen[i] = true
	}

	minN, maxN := p.NgramRange[0], p.NgramRange[1]
	if minN <= 0 {
		minN = 1
	}
	if maxN < minN {
		maxN = minN
	}

	stop := make(map[string]struct{}, len(p.StopWords))
	for _, w := range p.StopWords {
		stop[strings.ToLower(w)] = struct{}{}
	}

	return &Vectorizer{
		vocab:       vocab,
		idf:         append([]float64(nil), idf...),
		minN:        minN,
		maxN:        maxN,
		sublinearTF: p.SublinearTF,
		stop:        stop,
	}, nil
}

// NewVectorizerFromTerms builds the vocabulary from an ordered term list,
// the layout used by the database export.
func NewVectorizerFromTerms(terms []string, idf []float64, p VectorizerParams) (*Vectorizer, error) {
	vocab := make(map[string]int, len(terms))
	for i, t := range terms {
		if _, dup := vocab[t]; dup {
			return nil, fmt.Errorf("vectorizer: duplicate term %q", t)
		}
		vocab[t] = i
	}
	return NewVectorizer(vocab, idf, p)
}

// Dim is the size of the term space.
func (v *Vectorizer) Dim() int { return len(v.idf) }

func (v *Vectorizer) analyze(text string) []string {
	var toks []string
	for _, t := range tokenRE.FindAllString(text, -1) {
		if _, skip := v.stop[t]; !skip {
			toks = append(toks, t)
		}
	}
	if v.maxN == 1 {
		return toks
	}

	var terms []string
	if v.minN == 1 {
		terms = append(terms, toks...)
	}
	for n := max(v.minN, 2); n <= v.maxN; n++ {
		for i := 0; i+n <= len(toks); i++ {
			terms = append(terms, strings.Join(toks[i:i+n], " "))
		}
	}
	return terms
}

// Encode projects text into the term space. Input is lower-cased first and
// unknown terms are dropped, so an all-unknown phrase yields a zero vector.
func (v *Vectorizer) Encode(text string) Vector {
	counts := make(map[int]float64)
	for _, term := range v.analyze(strings.ToLower(text)) {
		if i, ok := v.vocab[term]; ok {
			counts[i]++
		}
	}

	out := Vector{Dim: v.Dim()}
	if len(counts) == 0 {
		return out
	}

	out.Indices = make([]int, 0, len(counts))
	for i := range counts {
		out.Indices = append(out.Indices, i)
	}
	sort.Ints(out.Indices)

	out.Values = make([]float64, len(out.Indices))
	for k, i := range out.Indices {
		tf := counts[i]
		if v.sublinearTF {
			tf = 1 + math.Log(tf)
		}
		out.Values[k] = tf * v.idf[i]
	}
	return out.normalized()
}
