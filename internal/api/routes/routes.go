package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/yoockh/mora/internal/api/handlers"
	"github.com/yoockh/mora/internal/api/middleware"
)

type Deps struct {
	Log             *logrus.Logger
	Recommendations *handlers.RecommendationHandler
	Skills          *handlers.SkillHandler
	Health          *handlers.HealthHandler

	CORSOrigins []string
	// nil disables rate limiting
	RateLimiter *middleware.RateLimiter
	// empty Secret leaves the API unauthenticated
	JWT middleware.JWTConfig
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.Use(middleware.RequestLogger(d.Log, "/ping", "/health", "/metrics"))
	r.Use(middleware.CORS(d.CORSOrigins))

	r.GET("/ping", handlers.Ping)
	r.GET("/health", d.Health.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/")
	if d.RateLimiter != nil {
		api.Use(middleware.RateLimit(d.RateLimiter))
	}
	if d.JWT.Secret != "" {
		api.Use(middleware.JWTAuth(d.JWT))
	}

	api.POST("/recommendations", d.Recommendations.Recommend)
	api.POST("/skills/detect", d.Skills.Detect)
}
