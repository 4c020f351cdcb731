package request_models

import "voya/internal/models/db_models"

type CreateTripRequest struct {
	Destination        string               `json:"destination" binding:"required"`
	StartDate          string               `json:"startDate"`
	EndDate            string               `json:"endDate"`
	LikedActivities    []db_models.Activity `json:"likedActivities"`
	DislikedActivities []db_models.Activity `json:"dislikedActivities"`
}

// UpdateTripRequest is a shallow patch: nil fields keep the stored value.
type UpdateTripRequest struct {
	Destination        *string               `json:"destination"`
	StartDate          *string               `json:"startDate"`
	EndDate            *string               `json:"endDate"`
	LikedActivities    *[]db_models.Activity `json:"likedActivities"`
	DislikedActivities *[]db_models.Activity `json:"dislikedActivities"`
}

type MoveActivityRequest struct {
	From      string `json:"from" binding:"required,oneof=liked disliked"`
	FromIndex *int   `json:"fromIndex" binding:"required"`
	To        string `json:"to" binding:"required,oneof=liked disliked"`
	ToIndex   *int   `json:"toIndex"`
}
