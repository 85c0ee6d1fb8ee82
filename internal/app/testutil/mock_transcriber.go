package testutil

import (
	"context"
	"io"
	"sync"

	"audio-relay/internal/app/provider"

	"github.com/stretchr/testify/mock"
)

// TranscriptionCall represents a single transcription call for tracking
type TranscriptionCall struct {
	FileName string
	Model    string
	Audio    []byte
}

// MockTranscriber is a testify mock of provider.Transcriber. Before the
// expectation is consulted the audio stream is drained, so tests can assert on
// exactly what the provider would have received.
type MockTranscriber struct {
	mock.Mock

	mu          sync.Mutex
	callHistory []TranscriptionCall

	// OnCall runs after the audio is read and before the expectation
	// is consulted. Tests use it to inspect the scratch directory mid-request.
	OnCall func(call TranscriptionCall)

	ProviderInfo provider.ProviderInfo
}

// NewMockTranscriber creates a MockTranscriber with a default provider identity.
func NewMockTranscriber() *MockTranscriber {
	return &MockTranscriber{
		ProviderInfo: provider.ProviderInfo{
			Name:         "mock",
			DisplayName:  "Mock Provider",
			DefaultModel: "mock-model",
		},
	}
}

// Transcribe implements provider.Transcriber.
func (m *MockTranscriber) Transcribe(ctx context.Context, request *provider.TranscriptionRequest) (*provider.Transcription, error) {
	call := TranscriptionCall{
		FileName: request.FileName,
		Model:    request.Model,
	}
	if request.Audio != nil {
		data, err := io.ReadAll(request.Audio)
		if err != nil {
			return nil, err
		}
		call.Audio = data
	}

	m.mu.Lock()
	m.callHistory = append(m.callHistory, call)
	m.mu.Unlock()

	if m.OnCall != nil {
		m.OnCall(call)
	}

	args := m.Called(ctx, request)
	var result *provider.Transcription
	if v := args.Get(0); v != nil {
		result = v.(*provider.Transcription)
	}
	return result, args.Error(1)
}

// Info implements provider.Transcriber.
func (m *MockTranscriber) Info() provider.ProviderInfo {
	return m.ProviderInfo
}

// History returns a copy of every call received so far.
func (m *MockTranscriber) History() []TranscriptionCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]TranscriptionCall, len(m.callHistory))
	copy(out, m.callHistory)
	return out
}
