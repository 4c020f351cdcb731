package tiktok_fx

import (
	log "github.com/sirupsen/logrus"
	"go.uber.org/fx"
	"voya/internal/config"
	"voya/internal/infra"
	"voya/internal/services"
	mem "voya/pkg/memcache"
	"voya/pkg/utils"
)

var Module = fx.Provide(provideTranscriber, provideVideoStore, provideTikTokService)

// provideTranscriber always uses Whisper, whichever chat provider is active.
func provideTranscriber(cfg *config.Config) utils.TranscriberInterface {
	if cfg.OpenAIKey == "" {
		log.Warn("OPENAI_API_KEY is not set, transcription is disabled")
		return nil
	}
	return utils.NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIModel)
}

func provideVideoStore(cfg *config.Config) (services.VideoSaverInterface, error) {
	return infra.NewVideoStore(cfg.UploadDir)
}

func provideTikTokService(
	transcriber utils.TranscriberInterface,
	llm utils.LLMClientInterface,
	videos services.VideoSaverInterface,
	collection *mem.TikTokCollection,
	cfg *config.Config,
) services.TikTokServiceInterface {
	return services.NewTikTokService(transcriber, llm, videos, collection, cfg.LLMTimeout, cfg.TranscribeTimeout)
}
