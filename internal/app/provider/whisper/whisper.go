// Package whisper implements provider.Transcriber against any service that
// speaks the OpenAI /audio/transcriptions API (OpenAI, Groq, local servers).
package whisper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"audio-relay/internal/app/provider"

	"github.com/sashabaranov/go-openai"
)

const (
	DefaultModel = "whisper-large-v3"
	DefaultName  = "groq"
	// fallback when the client sends no usable filename
	defaultFileName = "audio"
)

// Config represents configuration specific to the Whisper provider
type Config struct {
	Name    string `yaml:"name"`
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`

	// HTTPClient is optional. Its Timeout is left as configured; the relay
	// itself never adds one.
	HTTPClient *http.Client `yaml:"-"`
}

// Transcriber implements remote transcription using an OpenAI-compatible API.
type Transcriber struct {
	client *openai.Client
	config Config
}

// New creates a Transcriber with its own API client.
func New(config Config) *Transcriber {
	if config.Model == "" {
		config.Model = DefaultModel
	}
	if config.Name == "" {
		config.Name = DefaultName
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(config.BaseURL, "/")
	}
	clientConfig.HTTPClient = newCapturingClient(config.HTTPClient)

	return &Transcriber{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}
}

// Transcribe implements provider.Transcriber.
func (t *Transcriber) Transcribe(ctx context.Context, request *provider.TranscriptionRequest) (*provider.Transcription, error) {
	if request == nil || request.Audio == nil {
		return nil, &provider.TranscriptionError{
			Code:     "invalid_input",
			Message:  "audio stream is required",
			Provider: t.config.Name,
		}
	}

	fileName := request.FileName
	if fileName == "" {
		fileName = defaultFileName
	}

	audioRequest := openai.AudioRequest{
		Model:    t.getModel(request),
		FilePath: fileName,
		Reader:   request.Audio,
		Language: request.Language,
		Prompt:   request.Prompt,
		Format:   openai.AudioResponseFormatJSON,
	}

	body := &captureBuffer{}
	resp, err := t.client.CreateTranscription(withCapture(ctx, body), audioRequest)
	if err != nil {
		return nil, t.handleAPIError(err)
	}

	if body.Len() > 0 {
		return provider.ParseTranscription(body.Bytes())
	}
	return fromAudioResponse(resp), nil
}

// Info implements provider.Transcriber.
func (t *Transcriber) Info() provider.ProviderInfo {
	return provider.ProviderInfo{
		Name:           t.config.Name,
		DisplayName:    "OpenAI-compatible Whisper API",
		BaseURL:        t.config.BaseURL,
		DefaultModel:   t.config.Model,
		RequiresAPIKey: true,
		MaxFileSizeMB:  25,
	}
}

// getModel determines which model to use
func (t *Transcriber) getModel(request *provider.TranscriptionRequest) string {
	if request.Model != "" {
		return request.Model
	}
	return t.config.Model
}

func fromAudioResponse(resp openai.AudioResponse) *provider.Transcription {
	result := &provider.Transcription{
		Text:     resp.Text,
		Task:     resp.Task,
		Language: resp.Language,
		Duration: resp.Duration,
	}
	for _, seg := range resp.Segments {
		result.Segments = append(result.Segments, provider.Segment{
			ID:    seg.ID,
			Start: seg.Start,
			End:   seg.End,
			Text:  seg.Text,
		})
	}
	return result
}

// handleAPIError converts client errors to provider.TranscriptionError
func (t *Transcriber) handleAPIError(err error) error {
	name := t.config.Name

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &provider.TranscriptionError{
			Code:     "canceled",
			Message:  "transcription request was canceled",
			Provider: name,
			Cause:    err,
		}
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		tErr := &provider.TranscriptionError{
			Provider:   name,
			StatusCode: apiErr.HTTPStatusCode,
			Cause:      err,
		}
		switch apiErr.HTTPStatusCode {
		case http.StatusUnauthorized:
			tErr.Code = "authentication_failed"
			tErr.Message = "API key is invalid or missing"
		case http.StatusTooManyRequests:
			tErr.Code = "rate_limit_exceeded"
			tErr.Message = "API rate limit exceeded"
			tErr.Retryable = true
		case http.StatusRequestEntityTooLarge:
			tErr.Code = "file_too_large"
			tErr.Message = "audio file is too large for the provider"
		case http.StatusBadRequest:
			tErr.Code = "invalid_file"
			tErr.Message = fmt.Sprintf("provider rejected the audio: %s", apiErr.Message)
		default:
			tErr.Code = "api_error"
			tErr.Message = fmt.Sprintf("API error: %s", apiErr.Message)
			tErr.Retryable = apiErr.HTTPStatusCode >= 500
		}
		return tErr
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &provider.TranscriptionError{
			Code:       "request_failed",
			Message:    fmt.Sprintf("provider request failed with status %d", reqErr.HTTPStatusCode),
			Provider:   name,
			StatusCode: reqErr.HTTPStatusCode,
			Retryable:  reqErr.HTTPStatusCode >= 500,
			Cause:      err,
		}
	}

	return &provider.TranscriptionError{
		Code:      "connection_failed",
		Message:   fmt.Sprintf("transcription failed: %v", err),
		Provider:  name,
		Retryable: true,
		Cause:     err,
	}
}
