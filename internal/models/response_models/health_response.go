package response_models

type HealthResponse struct {
	Store        string `json:"store"`
	LLMProvider  string `json:"llmProvider"`
	LLM          bool   `json:"llm"`
	Transcriber  bool   `json:"transcriber"`
	Places       bool   `json:"places"`
	SuggestCache string `json:"suggestCache"`
}
