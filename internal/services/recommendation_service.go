package services

import (
	"context"
	"encoding/hex"
	"sort"
	"time"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/singleflight"

	"github.com/yoockh/mora/internal/cache"
	"github.com/yoockh/mora/internal/metrics"
	"github.com/yoockh/mora/internal/models"
	"github.com/yoockh/mora/internal/recommend"
	"github.com/yoockh/mora/internal/utils"
)

type RecommendationService interface {
	Recommend(ctx context.Context, profile models.UserProfile) ([]models.RecommendationItem, error)
	// Ready reports whether a corpus index is loaded.
	Ready() bool
	CourseCount() int
}

type RecommendationConfig struct {
	CacheTTL time.Duration
}

type recommendationService struct {
	engine *recommend.Engine
	index  *recommend.CorpusIndex
	cache  cache.Cache
	ttl    time.Duration
	log    *logrus.Logger
	group  singleflight.Group
}

// NewRecommendationService wires the engine to a loaded index. index may be
// nil, in which case every request yields an empty list. c may be nil.
func NewRecommendationService(engine *recommend.Engine, index *recommend.CorpusIndex, c cache.Cache, cfg RecommendationConfig, log *logrus.Logger) RecommendationService {
	if c == nil {
		c = cache.Nop{}
	}
	if log == nil {
		log = logrus.New()
	}
	return &recommendationService{
		engine: engine,
		index:  index,
		cache:  c,
		ttl:    cfg.CacheTTL,
		log:    log,
	}
}

func (s *recommendationService) Ready() bool { return s.index != nil }

func (s *recommendationService) CourseCount() int { return s.index.Size() }

func (s *recommendationService) Recommend(ctx context.Context, profile models.UserProfile) ([]models.RecommendationItem, error) {
	const op = "RecommendationService.Recommend"
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return nil, utils.FromContext(op, err)
	}

	if s.index == nil {
		metrics.ObserveRecommendation("unavailable", 0, time.Since(start))
		return []models.RecommendationItem{}, nil
	}

	key, err := s.cacheKey(profile)
	if err != nil {
		// a profile we cannot fingerprint is still a valid request
		s.log.WithError(err).Warn("recommendation cache key")
		items := s.engine.Recommend(profile, s.index)
		metrics.ObserveRecommendation(outcomeFor(items), len(items), time.Since(start))
		return items, nil
	}

	var cached []models.RecommendationItem
	hit, err := s.cache.GetJSON(ctx, key, &cached)
	switch {
	case err != nil:
		metrics.CacheLookups.WithLabelValues("error").Inc()
		s.log.WithError(err).WithField("key", key).Debug("recommendation cache get")
	case hit:
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		if cached == nil {
			cached = []models.RecommendationItem{}
		}
		metrics.ObserveRecommendation("cached", len(cached), time.Since(start))
		return cached, nil
	default:
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	}

	v, _, _ := s.group.Do(key, func() (any, error) {
		items := s.engine.Recommend(profile, s.index)
		if err := s.cache.SetJSON(ctx, key, items, s.ttl); err != nil {
			s.log.WithError(err).WithField("key", key).Debug("recommendation cache set")
		}
		return items, nil
	})
	items := v.([]models.RecommendationItem)

	metrics.ObserveRecommendation(outcomeFor(items), len(items), time.Since(start))
	return items, nil
}

func outcomeFor(items []models.RecommendationItem) string {
	if len(items) == 0 {
		return "empty"
	}
	return "ok"
}

// canonicalProfile holds only the fields that influence the result.
// Completed courses are a set, so order and duplicates are normalized away.
type canonicalProfile struct {
	Gaps      []models.SkillGap `json:"g"`
	Completed []int             `json:"c"`
}

func (s *recommendationService) cacheKey(p models.UserProfile) (string, error) {
	completed := make([]int, 0, len(p.CompletedCourses))
	seen := make(map[int]struct{}, len(p.CompletedCourses))
	for _, id := range p.CompletedCourses {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		completed = append(completed, id)
	}
	sort.Ints(completed)

	b, err := json.Marshal(canonicalProfile{Gaps: p.MissingSkills, Completed: completed})
	if err != nil {
		return "", err
	}
	sum := blake2b.Sum256(b)
	return s.index.Fingerprint() + ":" + hex.EncodeToString(sum[:16]), nil
}
