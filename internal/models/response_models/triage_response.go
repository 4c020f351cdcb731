package response_models

import "voya/internal/models/db_models"

const (
	TriageStatusActive   = "active"
	TriageStatusTerminal = "terminal"

	DecisionNone = "none"
)

type TriageSessionResponse struct {
	ID          string               `json:"id"`
	Destination string               `json:"destination"`
	StartDate   string               `json:"startDate,omitempty"`
	EndDate     string               `json:"endDate,omitempty"`
	Status      string               `json:"status"`
	Cursor      int                  `json:"cursor"`
	Total       int                  `json:"total"`
	Current     *db_models.Activity  `json:"current,omitempty"`
	Liked       []db_models.Activity `json:"liked"`
	Disliked    []db_models.Activity `json:"disliked"`
	Decision    string               `json:"decision,omitempty"`
	Saved       bool                 `json:"saved"`
	Trip        *db_models.Trip      `json:"trip,omitempty"`
}
