package db_models

import "time"

// TikTokActivity is never written to a trip store; it lives in the
// uploader's in-memory collection for the life of the process.
type TikTokActivity struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Location      string    `json:"location"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Transcription string    `json:"transcription"`
	VideoPath     string    `json:"videoPath"`
	CreatedAt     time.Time `json:"createdAt"`
}
