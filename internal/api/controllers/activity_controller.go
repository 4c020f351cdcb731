package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"voya/internal/models/request_models"
	"voya/internal/models/response_models"
	"voya/internal/services"
	"voya/pkg/utils"
)

type ActivityController struct {
	activityService services.ActivityServiceInterface
}

func NewActivityController(activityService services.ActivityServiceInterface) *ActivityController {
	return &ActivityController{
		activityService: activityService,
	}
}

// GenerateActivities godoc
// @Summary Generate activity suggestions
// @Description Ask the LLM for activities at a destination. Falls back to generic suggestions when the reply is unusable.
// @Tags Activities
// @Accept json
// @Produce json
// @Param request body request_models.GenerateActivitiesRequest true "Destination and optional dates"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 503 {object} utils.APIResponse
// @Router /activities [post]
func (a *ActivityController) GenerateActivities(c *gin.Context) {
	var req request_models.GenerateActivitiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Destination is required")
		return
	}

	activities, err := a.activityService.GenerateActivities(c.Request.Context(), req.Destination, req.StartDate, req.EndDate)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.ActivitiesResponse{Activities: activities}, "Activities generated successfully")
}
