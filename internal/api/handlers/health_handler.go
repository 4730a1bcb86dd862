package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/mora/internal/services"
)

type HealthHandler struct {
	recs services.RecommendationService
}

func NewHealthHandler(recs services.RecommendationService) *HealthHandler {
	return &HealthHandler{recs: recs}
}

type HealthResponse struct {
	Status       string `json:"status"`
	CorpusLoaded bool   `json:"corpus_loaded"`
	Courses      int    `json:"courses"`
}

// Health stays 200 without a corpus: the service still answers, just with
// empty recommendations.
func (h *HealthHandler) Health(c *gin.Context) {
	resp := HealthResponse{Status: "ok", CorpusLoaded: h.recs.Ready(), Courses: h.recs.CourseCount()}
	if !resp.CorpusLoaded {
		resp.Status = "degraded"
	}
	c.JSON(http.StatusOK, resp)
}

func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
