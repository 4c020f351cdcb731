package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"voya/internal/models/request_models"
	"voya/internal/services"
	"voya/pkg/middleware"
	"voya/pkg/utils"
)

type TripController struct {
	tripService   services.TripServiceInterface
	exportService services.ExportServiceInterface
}

func NewTripController(tripService services.TripServiceInterface, exportService services.ExportServiceInterface) *TripController {
	return &TripController{
		tripService:   tripService,
		exportService: exportService,
	}
}

// ListTrips godoc
// @Summary List trips
// @Description Fetch every trip saved by the caller, oldest first
// @Tags Trips
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /trips [get]
func (t *TripController) ListTrips(c *gin.Context) {
	trips := t.tripService.ListTrips(c.Request.Context(), middleware.CurrentUser(c))
	utils.RespondSuccess(c, trips, "Trips fetched successfully")
}

// CreateTrip godoc
// @Summary Create a trip
// @Description Save a destination with optional dates and activity lists
// @Tags Trips
// @Accept json
// @Produce json
// @Param request body request_models.CreateTripRequest true "Trip payload"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /trips [post]
func (t *TripController) CreateTrip(c *gin.Context) {
	var req request_models.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	trip, err := t.tripService.CreateTrip(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, trip, "Trip created successfully")
}

// GetTrip godoc
// @Summary Get a trip
// @Tags Trips
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /trips/{id} [get]
func (t *TripController) GetTrip(c *gin.Context) {
	trip, err := t.tripService.GetTrip(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trip, "Trip fetched successfully")
}

// UpdateTrip godoc
// @Summary Update a trip
// @Description Shallow merge of the provided fields into the stored trip
// @Tags Trips
// @Accept json
// @Produce json
// @Param id path string true "Trip ID"
// @Param request body request_models.UpdateTripRequest true "Fields to replace"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /trips/{id} [put]
func (t *TripController) UpdateTrip(c *gin.Context) {
	var req request_models.UpdateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	trip, err := t.tripService.UpdateTrip(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trip, "Trip updated successfully")
}

// MoveActivity godoc
// @Summary Move an activity
// @Description Move an activity between the liked and disliked lists or reorder it within one
// @Tags Trips
// @Accept json
// @Produce json
// @Param id path string true "Trip ID"
// @Param request body request_models.MoveActivityRequest true "Move payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /trips/{id}/move [post]
func (t *TripController) MoveActivity(c *gin.Context) {
	var req request_models.MoveActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	trip, err := t.tripService.MoveActivity(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trip, "Activity moved successfully")
}

// ExportTrip godoc
// @Summary Export a trip
// @Description Download the trip as json, csv or pdf
// @Tags Trips
// @Produce json,text/csv,application/pdf
// @Param id path string true "Trip ID"
// @Param format query string false "json, csv or pdf" default(json)
// @Success 200 {file} file
// @Failure 400 {object} utils.APIResponse
// @Router /trips/{id}/export [get]
func (t *TripController) ExportTrip(c *gin.Context) {
	file, err := t.exportService.ExportTrip(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), c.DefaultQuery("format", services.ExportJSON))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Body)
}
