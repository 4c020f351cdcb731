package request_models

type ExtractActivityRequest struct {
	Transcription string `json:"transcription" binding:"required"`
}
