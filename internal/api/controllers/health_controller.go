package controllers

import (
	"github.com/gin-gonic/gin"
	"voya/internal/services"
	"voya/pkg/utils"
)

type HealthController struct {
	healthService services.HealthServiceInterface
}

func NewHealthController(healthService services.HealthServiceInterface) *HealthController {
	return &HealthController{healthService: healthService}
}

func (h *HealthController) Health(c *gin.Context) {
	utils.RespondSuccess(c, h.healthService.Report(), "ok")
}
