package app

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"audio-relay/internal/app/provider"
	"audio-relay/internal/app/provider/whisper"
	"audio-relay/internal/app/scratch"
	"audio-relay/internal/config"
)

// provideScratchStore opens the scratch directory and removes transient
// files a previous process left behind.
func provideScratchStore(cfg *config.Config, logger *zap.Logger) (*scratch.Store, error) {
	store, err := scratch.NewStore(cfg.Scratch.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open scratch directory: %w", err)
	}

	if cfg.Scratch.SweepOlderThan > 0 {
		removed, err := store.Sweep(cfg.Scratch.SweepOlderThan)
		if err != nil {
			logger.Warn("scratch sweep incomplete", zap.String("dir", store.Dir()), zap.Error(err))
		} else if removed > 0 {
			logger.Info("removed orphaned transient files", zap.String("dir", store.Dir()), zap.Int("count", removed))
		}
	}
	return store, nil
}

// provideRegistry builds the registry served on /metrics.
func provideRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

func provideCollectors(registry *prometheus.Registry) *provider.Collectors {
	return provider.NewCollectors(registry)
}

// provideWhisperTranscriber with an OpenAI-compatible remote service, configured by GROQ_API_KEY and GROQ_BASE_URL
func provideWhisperTranscriber(cfg *config.Config) *whisper.Transcriber {
	return whisper.New(whisper.Config{
		Name:    cfg.Provider.Name,
		APIKey:  cfg.Provider.APIKey,
		BaseURL: cfg.Provider.BaseURL,
		Model:   cfg.Provider.Model,
	})
}

func provideTranscriber(remote *whisper.Transcriber, c *provider.Collectors) provider.Transcriber {
	return provider.NewInstrumentedTranscriber(remote, c)
}
