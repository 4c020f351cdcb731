package controllers

import (
	"github.com/gin-gonic/gin"
	"voya/internal/services"
	"voya/pkg/utils"
)

type PlacesController struct {
	locationService services.LocationServiceInterface
}

func NewPlacesController(locationService services.LocationServiceInterface) *PlacesController {
	return &PlacesController{
		locationService: locationService,
	}
}

// Autocomplete godoc
// @Summary Suggest locations
// @Description Location suggestions for partial input
// @Tags Places
// @Produce json
// @Param input query string true "Partial location text"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Router /places/autocomplete [get]
func (p *PlacesController) Autocomplete(c *gin.Context) {
	suggestions, err := p.locationService.Suggest(c.Request.Context(), c.Query("input"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"suggestions": suggestions}, "")
}
