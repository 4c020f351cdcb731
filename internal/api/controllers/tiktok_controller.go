package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"voya/internal/models/request_models"
	"voya/internal/models/response_models"
	"voya/internal/services"
	"voya/pkg/middleware"
	"voya/pkg/utils"
)

const groupByLocation = "location"

type TikTokController struct {
	tiktokService services.TikTokServiceInterface
}

func NewTikTokController(tiktokService services.TikTokServiceInterface) *TikTokController {
	return &TikTokController{
		tiktokService: tiktokService,
	}
}

// Upload godoc
// @Summary Upload a TikTok video
// @Description Transcribe the video, extract an activity from the transcript and add it to the caller's collection
// @Tags TikTok
// @Accept multipart/form-data
// @Produce json
// @Param video formData file true "Video file"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 415 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Router /tiktok/upload [post]
func (t *TikTokController) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("video")
	if err != nil {
		respondFormFileError(c, err, "No video file provided")
		return
	}
	defer file.Close()

	activity, err := t.tiktokService.Upload(c.Request.Context(), middleware.CurrentUser(c), header.Filename, file)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, activity, "Video processed successfully")
}

// Transcribe godoc
// @Summary Transcribe a media file
// @Tags TikTok
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Audio or video file"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Router /tiktok/transcribe [post]
func (t *TikTokController) Transcribe(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		respondFormFileError(c, err, "No file provided")
		return
	}
	defer file.Close()

	text, err := t.tiktokService.Transcribe(c.Request.Context(), header.Filename, file)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.TranscriptionResponse{Transcription: text}, "")
}

// ExtractActivity godoc
// @Summary Extract an activity from a transcript
// @Tags TikTok
// @Accept json
// @Produce json
// @Param request body request_models.ExtractActivityRequest true "Transcript"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /tiktok/extract-activity [post]
func (t *TikTokController) ExtractActivity(c *gin.Context) {
	var req request_models.ExtractActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "No transcription provided")
		return
	}

	activity, err := t.tiktokService.ExtractActivity(c.Request.Context(), req.Transcription)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, activity, "")
}

// Demo godoc
// @Summary Add a demo TikTok activity
// @Tags TikTok
// @Produce json
// @Success 201 {object} utils.APIResponse
// @Router /tiktok/demo [post]
func (t *TikTokController) Demo(c *gin.Context) {
	utils.RespondCreated(c, t.tiktokService.Demo(middleware.CurrentUser(c)), "Demo activity added")
}

// ListActivities godoc
// @Summary List collected TikTok activities
// @Tags TikTok
// @Produce json
// @Param groupBy query string false "location"
// @Success 200 {object} utils.APIResponse
// @Router /tiktok/activities [get]
func (t *TikTokController) ListActivities(c *gin.Context) {
	user := middleware.CurrentUser(c)

	switch c.Query("groupBy") {
	case "":
		utils.RespondSuccess(c, t.tiktokService.ListActivities(user), "")
	case groupByLocation:
		utils.RespondSuccess(c, t.tiktokService.GroupByLocation(user), "")
	default:
		utils.RespondError(c, http.StatusBadRequest, "groupBy must be location")
	}
}

func respondFormFileError(c *gin.Context, err error, missing string) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		utils.RespondError(c, http.StatusRequestEntityTooLarge, "File is too large")
		return
	}
	utils.RespondError(c, http.StatusBadRequest, missing)
}
