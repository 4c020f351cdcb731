package response_models

import "voya/internal/models/db_models"

type ActivitiesResponse struct {
	Activities []db_models.Activity `json:"activities"`
}

type ExtractedActivity struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

type TranscriptionResponse struct {
	Transcription string `json:"transcription"`
}

type TikTokGroup struct {
	Location   string                     `json:"location"`
	Activities []db_models.TikTokActivity `json:"activities"`
}
