package request_models

type StartTriageRequest struct {
	Destination string `json:"destination" binding:"required"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

// GestureInput is a finished drag: net horizontal displacement and the
// viewport width it was measured against, both in pixels.
type GestureInput struct {
	DeltaX        float64 `json:"deltaX"`
	ViewportWidth float64 `json:"viewportWidth"`
}

// DecisionRequest carries either an explicit direction or a raw gesture.
type DecisionRequest struct {
	Direction string        `json:"direction"`
	Gesture   *GestureInput `json:"gesture"`
}
