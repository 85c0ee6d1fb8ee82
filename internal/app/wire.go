//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"audio-relay/internal/api/server"
	"audio-relay/internal/config"
)

func InitializeServer(cfg *config.Config, logger *zap.Logger) (*server.Server, error) {
	wire.Build(
		provideScratchStore,
		provideRegistry,
		provideCollectors,
		provideWhisperTranscriber,
		provideTranscriber,
		server.NewServer,
	)
	return &server.Server{}, nil
}
