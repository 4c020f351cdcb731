package response_models

type Suggestion struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Type            string `json:"type"`
	FullDescription string `json:"fullDescription"`
}
