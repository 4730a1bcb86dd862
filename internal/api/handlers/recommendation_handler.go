package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/mora/internal/models"
	"github.com/yoockh/mora/internal/services"
)

type RecommendationHandler struct {
	svc services.RecommendationService
}

func NewRecommendationHandler(svc services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{svc: svc}
}

// Recommend answers with a JSON array of at most five items. An empty
// array is a normal answer, including when no corpus is loaded.
func (h *RecommendationHandler) Recommend(c *gin.Context) {
	var profile models.UserProfile
	if !bindJSON(c, "RecommendationHandler.Recommend", &profile) {
		return
	}

	items, err := h.svc.Recommend(c.Request.Context(), profile)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
