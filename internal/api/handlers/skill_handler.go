package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/mora/internal/services"
)

type SkillHandler struct {
	svc services.SkillService
}

func NewSkillHandler(svc services.SkillService) *SkillHandler {
	return &SkillHandler{svc: svc}
}

type DetectSkillsRequest struct {
	Message string `json:"message" binding:"required"`
}

type DetectSkillsResponse struct {
	Skills []string `json:"skills"`
}

func (h *SkillHandler) Detect(c *gin.Context) {
	var req DetectSkillsRequest
	if !bindJSON(c, "SkillHandler.Detect", &req) {
		return
	}
	c.JSON(http.StatusOK, DetectSkillsResponse{Skills: h.svc.Detect(req.Message)})
}
