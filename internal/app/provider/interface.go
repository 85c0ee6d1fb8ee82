// Package provider defines the boundary between the relay and the external
// speech-to-text service.
package provider

import (
	"context"
)

// Transcriber turns an audio stream into text using an external provider.
// Implementations are injected into the relay handler; there is no
// package-level client.
type Transcriber interface {
	// Transcribe sends the audio to the provider and waits for the result.
	// It never retries and adds no deadline of its own.
	Transcribe(ctx context.Context, request *TranscriptionRequest) (*Transcription, error)

	// Info describes the configured provider.
	Info() ProviderInfo
}
