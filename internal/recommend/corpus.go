package recommend

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"sort"

	"golang.org/x/crypto/blake2b"

	"github.com/yoockh/mora/internal/models"
)

// LoadError reports a missing or inconsistent corpus artifact.
type LoadError struct {
	Source string
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := "corpus load"
	if e.Source != "" {
		msg += " (" + e.Source + ")"
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LoadError) Unwrap() error { return e.Err }

// CorpusIndex pairs every course with its row of the document-term matrix.
// It is never mutated after NewCorpusIndex returns.
type CorpusIndex struct {
	courses     []models.Course
	rows        []Vector
	vz          *Vectorizer
	fingerprint string
}

// NewCorpusIndex validates that courses and rows are positionally aligned and
// that every row lives in the vectorizer's term space.
func NewCorpusIndex(courses []models.Course, vz *Vectorizer, rows []Vector) (*CorpusIndex, error) {
	if vz == nil {
		return nil, &LoadError{Reason: "vectorizer is missing"}
	}
	if len(courses) != len(rows) {
		return nil, &LoadError{Reason: fmt.Sprintf("%d courses but %d matrix rows", len(courses), len(rows))}
	}

	ids := make(map[int]int, len(courses))
	for i, c := range courses {
		if j, dup := ids[c.CourseID]; dup {
			return nil, &LoadError{Reason: fmt.Sprintf("course_id %d appears at rows %d and %d", c.CourseID, j, i)}
		}
		ids[c.CourseID] = i
		if rows[i].Dim != vz.Dim() {
			return nil, &LoadError{Reason: fmt.Sprintf("row %d has dimension %d, vectorizer has %d", i, rows[i].Dim, vz.Dim())}
		}
		if err := checkRow(rows[i]); err != nil {
			return nil, &LoadError{Reason: fmt.Sprintf("row %d", i), Err: err}
		}
	}

	idx := &CorpusIndex{
		courses: append([]models.Course(nil), courses...),
		rows:    append([]Vector(nil), rows...),
		vz:      vz,
	}
	idx.fingerprint = idx.computeFingerprint()
	return idx, nil
}

// checkRow enforces the invariants NewSparseVector guarantees, for rows built by hand.
func checkRow(v Vector) error {
	if len(v.Indices) != len(v.Values) {
		return fmt.Errorf("%d indices but %d values", len(v.Indices), len(v.Values))
	}
	for k, j := range v.Indices {
		if j < 0 || j >= v.Dim {
			return fmt.Errorf("index %d out of range [0,%d)", j, v.Dim)
		}
		if k > 0 && v.Indices[k-1] >= j {
			return fmt.Errorf("indices not strictly increasing at position %d", k)
		}
	}
	return nil
}

func (c *CorpusIndex) Size() int {
	if c == nil {
		return 0
	}
	return len(c.courses)
}

func (c *CorpusIndex) RowAt(i int) models.Course { return c.courses[i] }

func (c *CorpusIndex) Vector(i int) Vector { return c.rows[i] }

// VectorSpace returns the fitted model used to encode queries against this corpus.
func (c *CorpusIndex) VectorSpace() *Vectorizer { return c.vz }

// Fingerprint identifies the corpus content; it changes whenever a reload
// would change recommendations.
func (c *CorpusIndex) Fingerprint() string {
	if c == nil {
		return ""
	}
	return c.fingerprint
}

// UnknownLevels lists the distinct level names in the corpus that the table
// does not recognize. Those rows are treated as beginner.
func (c *CorpusIndex) UnknownLevels(t LevelTable) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, course := range c.courses {
		if _, ok := t.Lookup(course.LevelName); ok {
			continue
		}
		if _, dup := seen[course.LevelName]; !dup {
			seen[course.LevelName] = struct{}{}
			out = append(out, course.LevelName)
		}
	}
	sort.Strings(out)
	return out
}

func (c *CorpusIndex) computeFingerprint() string {
	h, _ := blake2b.New256(nil)
	var buf [8]byte
	writeInt := func(n int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(n))
		h.Write(buf[:])
	}
	writeInt(c.vz.Dim())
	for _, w := range c.vz.idf {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(w))
		h.Write(buf[:])
	}
	for i, course := range c.courses {
		writeInt(course.CourseID)
		h.Write([]byte(course.CourseName))
		h.Write([]byte{0})
		h.Write([]byte(course.LevelName))
		h.Write([]byte{0})
		h.Write([]byte(course.TutorialList))
		h.Write([]byte{0})
		row := c.rows[i]
		writeInt(len(row.Indices))
		for k, j := range row.Indices {
			writeInt(j)
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(row.Values[k]))
			h.Write(buf[:])
		}
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
