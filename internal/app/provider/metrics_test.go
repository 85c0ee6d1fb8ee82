package provider_test

import (
	"bytes"
	"context"
	"testing"

	"audio-relay/internal/app/provider"
	"audio-relay/internal/app/testutil"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestInstrumentedTranscriber(t *testing.T) {
	reg := prometheus.NewRegistry()
	collectors := provider.NewCollectors(reg)

	mt := testutil.NewMockTranscriber()
	mt.On("Transcribe", mock.Anything, mock.MatchedBy(func(r *provider.TranscriptionRequest) bool {
		return r.FileName == "ok.wav"
	})).Return(&provider.Transcription{Text: "hello"}, nil)
	mt.On("Transcribe", mock.Anything, mock.MatchedBy(func(r *provider.TranscriptionRequest) bool {
		return r.FileName == "bad.wav"
	})).Return(nil, &provider.TranscriptionError{Code: "rate_limit_exceeded", Provider: "mock"})

	it := provider.NewInstrumentedTranscriber(mt, collectors)
	assert.Equal(t, "mock", it.Info().Name)

	result, err := it.Transcribe(context.Background(), &provider.TranscriptionRequest{
		Audio: bytes.NewReader([]byte("a")), FileName: "ok.wav",
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", result.Text)

	_, err = it.Transcribe(context.Background(), &provider.TranscriptionRequest{
		Audio: bytes.NewReader([]byte("b")), FileName: "bad.wav",
	})
	require.Error(t, err)

	stats := it.Stats()
	assert.Equal(t, int64(2), stats.TotalRequests)
	assert.Equal(t, int64(1), stats.SuccessfulRequests)
	assert.Equal(t, int64(1), stats.FailedRequests)
	assert.InDelta(t, 0.5, stats.SuccessRate, 0.0001)
	assert.Equal(t, int64(1), stats.ErrorBreakdown["rate_limit_exceeded"])

	// the snapshot is a copy
	stats.ErrorBreakdown["rate_limit_exceeded"] = 99
	assert.Equal(t, int64(1), it.Stats().ErrorBreakdown["rate_limit_exceeded"])

	series, err := promtestutil.GatherAndCount(reg, "relay_provider_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, series)
	mt.AssertNumberOfCalls(t, "Transcribe", 2)
}
