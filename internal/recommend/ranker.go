package recommend

import (
	"fmt"

	"github.com/yoockh/mora/internal/models"
)

// CandidateLimit bounds how many rows survive ranking for one query.
const CandidateLimit = 15

type Candidate struct {
	Row    int
	Course models.Course
	Score  float64
}

// Rank scores query against every corpus row and keeps the best CandidateLimit,
// highest score first. Equal scores keep corpus order.
func Rank(query Vector, idx *CorpusIndex) ([]Candidate, error) {
	return rankTop(query, idx, CandidateLimit)
}

func rankTop(query Vector, idx *CorpusIndex, limit int) ([]Candidate, error) {
	if idx.Size() == 0 || limit <= 0 {
		return nil, nil
	}
	if query.Dim != idx.vz.Dim() {
		return nil, fmt.Errorf("rank: query dimension %d, corpus dimension %d", query.Dim, idx.vz.Dim())
	}

	top := make([]Candidate, 0, limit+1)
	for i, row := range idx.rows {
		s := query.Dot(row)
		if len(top) == limit && s <= top[len(top)-1].Score {
			continue
		}
		// insertion point after every entry scoring >= s
		pos := len(top)
		for pos > 0 && top[pos-1].Score < s {
			pos--
		}
		top = append(top, Candidate{})
		copy(top[pos+1:], top[pos:])
		top[pos] = Candidate{Row: i, Score: s}
		if len(top) > limit {
			top = top[:limit]
		}
	}

	for k := range top {
		top[k].Course = idx.courses[top[k].Row]
	}
	return top, nil
}
