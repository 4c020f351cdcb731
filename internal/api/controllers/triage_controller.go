package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"voya/internal/models/request_models"
	"voya/internal/services"
	"voya/pkg/middleware"
	"voya/pkg/utils"
)

type TriageController struct {
	triageService services.TriageServiceInterface
}

func NewTriageController(triageService services.TriageServiceInterface) *TriageController {
	return &TriageController{
		triageService: triageService,
	}
}

// StartSession godoc
// @Summary Start a triage session
// @Description Generate candidate activities for a destination and open a swipe session over them
// @Tags Triage
// @Accept json
// @Produce json
// @Param request body request_models.StartTriageRequest true "Destination and optional dates"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /triage/sessions [post]
func (t *TriageController) StartSession(c *gin.Context) {
	var req request_models.StartTriageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Destination is required")
		return
	}

	session, err := t.triageService.Start(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, session, "Triage session started")
}

// GetSession godoc
// @Summary Get a triage session
// @Tags Triage
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /triage/sessions/{id} [get]
func (t *TriageController) GetSession(c *gin.Context) {
	session, err := t.triageService.Get(middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, session, "")
}

// Decide godoc
// @Summary Decide on the current candidate
// @Description Accept or reject the current card, either explicitly or from a finished drag gesture
// @Tags Triage
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body request_models.DecisionRequest true "direction or gesture"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /triage/sessions/{id}/decisions [post]
func (t *TriageController) Decide(c *gin.Context) {
	var req request_models.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	session, err := t.triageService.Decide(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, session, "")
}

// AbandonSession godoc
// @Summary Abandon a triage session
// @Description Discard the session. Nothing is saved.
// @Tags Triage
// @Param id path string true "Session ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /triage/sessions/{id} [delete]
func (t *TriageController) AbandonSession(c *gin.Context) {
	if err := t.triageService.Abandon(middleware.CurrentUser(c), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Triage session abandoned")
}
