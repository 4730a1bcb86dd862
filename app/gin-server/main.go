package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yoockh/mora/config"
	"github.com/yoockh/mora/internal/api/handlers"
	"github.com/yoockh/mora/internal/api/middleware"
	"github.com/yoockh/mora/internal/api/routes"
	"github.com/yoockh/mora/internal/artifacts"
	"github.com/yoockh/mora/internal/cache"
	"github.com/yoockh/mora/internal/logger"
	"github.com/yoockh/mora/internal/metrics"
	"github.com/yoockh/mora/internal/recommend"
	mongorepo "github.com/yoockh/mora/internal/repositories/mongo"
	pgrepo "github.com/yoockh/mora/internal/repositories/postgres"
	"github.com/yoockh/mora/internal/services"
	"github.com/yoockh/mora/internal/storage"
)

func main() {
	cfg := config.LoadApp()
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	levels := recommend.DefaultLevels()
	if cfg.LevelVocabularyFile != "" {
		t, err := recommend.LoadLevelTable(cfg.LevelVocabularyFile)
		if err != nil {
			log.WithError(err).WithField("file", cfg.LevelVocabularyFile).Warn("level vocabulary not loaded, using defaults")
		} else {
			levels = t
		}
	}

	index, closeSource := loadCorpus(ctx, cfg, log)
	defer closeSource()
	if index != nil {
		metrics.CorpusCourses.Set(float64(index.Size()))
		for _, lvl := range index.UnknownLevels(levels) {
			log.WithField("level_name", lvl).Warn("corpus level not in vocabulary, treated as beginner")
		}
	}

	var resultCache cache.Cache = cache.Nop{}
	if rdb, err := config.InitRedis(ctx); err != nil {
		log.WithError(err).Warn("redis unavailable, recommendation cache disabled")
	} else {
		defer rdb.Close()
		resultCache = cache.NewBreakerCache(cache.NewRedisCache(rdb, "mora:rec:"), cache.BreakerSettings{Name: "redis"}, log)
		log.Info("redis connected")
	}

	recSvc := services.NewRecommendationService(
		recommend.NewEngine(levels, log),
		index,
		resultCache,
		services.RecommendationConfig{CacheTTL: cfg.CacheTTL},
		log,
	)
	skillSvc := services.NewSkillService(loadKeywords(ctx, cfg, log))

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	var limiter *middleware.RateLimiter
	if cfg.RateLimitRPS > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		go limiter.Run(10*time.Minute, ctx.Done())
	}
	if cfg.JWTSecret == "" {
		log.Warn("SUPABASE_JWT_SECRET not set, API is unauthenticated")
	}

	routes.RegisterRoutes(r, routes.Deps{
		Log:             log,
		Recommendations: handlers.NewRecommendationHandler(recSvc),
		Skills:          handlers.NewSkillHandler(skillSvc),
		Health:          handlers.NewHealthHandler(recSvc),
		CORSOrigins:     cfg.CORSOrigins,
		RateLimiter:     limiter,
		JWT: middleware.JWTConfig{
			Secret:   cfg.JWTSecret,
			Issuer:   cfg.JWTIssuer,
			Audience: cfg.JWTAudience,
		},
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.WithField("port", cfg.Port).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server error")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown")
	}
}

// loadCorpus never fails the process: on any error the service runs with a
// nil index and answers every request with an empty list.
func loadCorpus(ctx context.Context, cfg config.App, log *logrus.Logger) (*recommend.CorpusIndex, func()) {
	noop := func() {}

	var (
		src     artifacts.Source
		cleanup = noop
	)
	switch cfg.CorpusSource {
	case config.CorpusSourceGCS:
		reader, err := storage.NewGCSReader(ctx, cfg.ArtifactBucket)
		if err != nil {
			log.WithError(err).Error("gcs client init failed, continuing without corpus")
			return nil, noop
		}
		cleanup = func() { _ = reader.Close() }
		src = artifacts.BucketSource{Store: reader, Bucket: cfg.ArtifactBucket, Prefix: cfg.ArtifactPrefix}
	case config.CorpusSourcePostgres:
		db, err := config.InitPostgres()
		if err != nil {
			log.WithError(err).Error("postgres init failed, continuing without corpus")
			return nil, noop
		}
		if sqlDB, err := db.DB(); err == nil {
			cleanup = func() { _ = sqlDB.Close() }
		}
		src = artifacts.PostgresSource{Repo: pgrepo.NewCorpusRepo(db)}
	default:
		if cfg.CorpusSource != config.CorpusSourceFile {
			log.WithField("corpus_source", cfg.CorpusSource).Warn("unknown corpus source, using file")
		}
		src = artifacts.FileSource{Dir: cfg.ArtifactDir}
	}

	loadCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	start := time.Now()
	index, err := src.Load(loadCtx)
	if err != nil {
		log.WithError(err).WithField("source", src.Name()).Error("corpus not loaded, recommendations disabled")
		return nil, cleanup
	}
	log.WithFields(logrus.Fields{
		"source":      src.Name(),
		"courses":     index.Size(),
		"vocabulary":  index.VectorSpace().Dim(),
		"fingerprint": index.Fingerprint(),
		"took_ms":     time.Since(start).Milliseconds(),
	}).Info("corpus loaded")
	return index, cleanup
}

func loadKeywords(ctx context.Context, cfg config.App, log *logrus.Logger) []string {
	if os.Getenv("MONGO_URI") != "" {
		client, db, err := config.InitMongo(ctx)
		if err == nil {
			defer func() { _ = client.Disconnect(context.Background()) }()
			if err := config.EnsureMongoIndexes(ctx, db); err != nil {
				log.WithError(err).Warn("mongo index setup")
			}
			kw, err := services.LoadKeywordsFromRepo(ctx, mongorepo.NewKeywordRepo(db))
			if err == nil {
				log.WithField("count", len(kw)).Info("skill keywords loaded from mongo")
				return kw
			}
			log.WithError(err).Warn("skill keywords from mongo failed, trying csv")
		} else {
			log.WithError(err).Warn("mongo unavailable, trying csv")
		}
	}

	kw, err := services.LoadKeywordsCSV(cfg.SkillKeywordsCSV)
	if err != nil {
		log.WithError(err).WithField("file", cfg.SkillKeywordsCSV).Warn("skill keywords not loaded, detection disabled")
		return nil
	}
	log.WithField("count", len(kw)).Info("skill keywords loaded from csv")
	return kw
}
