package prompt_fx

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.uber.org/fx"
	"voya/internal/config"
	"voya/internal/services"
	"voya/pkg/utils"
)

var Module = fx.Provide(
	ProvideLLMClient,
	ProvideActivityService)

// ProvideLLMClient picks the chat provider from LLM_PROVIDER. A provider
// without an API key yields a nil client; generation then reports it as
// not configured.
func ProvideLLMClient(lc fx.Lifecycle, cfg *config.Config) (utils.LLMClientInterface, error) {
	switch cfg.LLMProvider {
	case config.ProviderOpenAI:
		if cfg.OpenAIKey == "" {
			log.Warn("OPENAI_API_KEY is not set, activity generation is disabled")
			return nil, nil
		}
		log.Infof("Initializing openai client with model: %s", cfg.OpenAIModel)
		return utils.NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIModel), nil

	case config.ProviderGemini:
		if cfg.GeminiKey == "" {
			log.Warn("GEMINI_API_KEY is not set, activity generation is disabled")
			return nil, nil
		}
		log.Infof("Initializing gemini client with model: %s", cfg.GeminiModel)
		client, err := utils.NewGeminiClient(context.Background(), cfg.GeminiKey, cfg.GeminiModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		lc.Append(fx.Hook{OnStop: func(context.Context) error {
			return client.Close()
		}})
		return client, nil
	}

	return nil, fmt.Errorf("unsupported LLM provider: %s. Use 'openai' or 'gemini'", cfg.LLMProvider)
}

func ProvideActivityService(llm utils.LLMClientInterface, cfg *config.Config) services.ActivityServiceInterface {
	return services.NewActivityService(llm, cfg.LLMTimeout)
}
