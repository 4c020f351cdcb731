package services

import (
	"voya/internal/models/response_models"
	mem "voya/pkg/memcache"
	"voya/pkg/utils"
)

type HealthServiceInterface interface {
	Report() response_models.HealthResponse
}

type HealthService struct {
	report response_models.HealthResponse
}

func NewHealthService(
	storeDriver string,
	llm utils.LLMClientInterface,
	transcriber utils.TranscriberInterface,
	places utils.PlacesClientInterface,
	cache mem.SuggestionCache,
) HealthServiceInterface {
	report := response_models.HealthResponse{
		Store:       storeDriver,
		LLM:         llm != nil,
		Transcriber: transcriber != nil,
		Places:      places != nil,
	}
	if llm != nil {
		report.LLMProvider = llm.Provider()
	}
	if cache != nil {
		report.SuggestCache = cache.Backend()
	}
	return &HealthService{report: report}
}

func (h *HealthService) Report() response_models.HealthResponse {
	return h.report
}
