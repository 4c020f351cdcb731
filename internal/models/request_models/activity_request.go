package request_models

type GenerateActivitiesRequest struct {
	Destination string `json:"destination" binding:"required"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}
