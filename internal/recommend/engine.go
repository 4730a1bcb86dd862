// Package recommend turns a learner's skill gaps into course recommendations.
//
// Each gap is encoded into the corpus term space, ranked against every course,
// and filtered so that no course exceeds the learner's target level or is
// offered twice. Results from all gaps are pooled and cut to a global top five.
package recommend

import (
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/yoockh/mora/internal/metrics"
	"github.com/yoockh/mora/internal/models"
)

const (
	// MinSimilarity is the absolute floor a candidate must reach.
	MinSimilarity = 0.1
	MaxResults    = 5
	MaxChapters   = 3
)

type Engine struct {
	levels LevelTable
	log    *logrus.Logger
}

func NewEngine(levels LevelTable, log *logrus.Logger) *Engine {
	if levels == nil {
		levels = DefaultLevels()
	}
	if log == nil {
		log = logrus.New()
	}
	return &Engine{levels: levels, log: log}
}

func (e *Engine) Levels() LevelTable { return e.levels }

// seenSet holds the course ids already completed or recommended within one request.
type seenSet map[int]struct{}

func newSeenSet(completed []int) seenSet {
	s := make(seenSet, len(completed))
	for _, id := range completed {
		s[id] = struct{}{}
	}
	return s
}

func (s seenSet) has(id int) bool {
	_, ok := s[id]
	return ok
}

func (s seenSet) add(id int) { s[id] = struct{}{} }

// Recommend returns at most MaxResults items sorted by match score. A nil
// index yields an empty list.
func (e *Engine) Recommend(profile models.UserProfile, idx *CorpusIndex) []models.RecommendationItem {
	out := []models.RecommendationItem{}
	if idx == nil {
		return out
	}

	seen := newSeenSet(profile.CompletedCourses)
	for _, gap := range profile.MissingSkills {
		items, err := e.recommendGap(gap, idx, seen)
		if err != nil {
			metrics.GapSkips.WithLabelValues(metrics.SkipRankError).Inc()
			e.log.WithError(err).WithField("skill", gap.SkillName).Warn("skipping skill gap")
			continue
		}
		out = append(out, items...)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].MatchScore > out[j].MatchScore })
	if len(out) > MaxResults {
		out = out[:MaxResults]
	}
	return out
}

func (e *Engine) recommendGap(gap models.SkillGap, idx *CorpusIndex, seen seenSet) ([]models.RecommendationItem, error) {
	target := e.levels.Ordinal(gap.TargetLevel)

	query := idx.VectorSpace().Encode(gap.SkillName)
	if query.IsZero() {
		metrics.GapSkips.WithLabelValues(metrics.SkipEmptyQuery).Inc()
		e.log.WithField("skill", gap.SkillName).Debug("skill has no terms in corpus vocabulary")
		return nil, nil
	}

	cands, err := Rank(query, idx)
	if err != nil {
		return nil, err
	}

	var items []models.RecommendationItem
	for _, c := range cands {
		if c.Score < MinSimilarity {
			continue
		}
		if seen.has(c.Course.CourseID) {
			continue
		}
		level := e.levels.Ordinal(c.Course.LevelName)
		if level > target {
			continue
		}

		badge := models.BadgeFoundation
		if level == target {
			badge = models.BadgeTargetMatch
		}

		chapters := ChaptersOrEmpty(c.Course.TutorialList)
		if len(chapters) > MaxChapters {
			chapters = chapters[:MaxChapters]
		}

		items = append(items, models.RecommendationItem{
			Skill:        gap.SkillName,
			CurrentLevel: gap.TargetLevel,
			CourseToTake: c.Course.CourseName,
			Chapters:     chapters,
			MatchScore:   matchScore(c.Score),
			Badge:        badge,
			CourseID:     c.Course.CourseID,
		})
		seen.add(c.Course.CourseID)
	}
	return items, nil
}

// matchScore converts a similarity to a percentage with one decimal,
// rounding half to even.
func matchScore(sim float64) float64 {
	if sim > 1 {
		sim = 1
	}
	return math.RoundToEven(sim*1000) / 10
}
