package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"audio-relay/internal/app/provider"
	"audio-relay/internal/app/scratch"
	"audio-relay/internal/app/testutil"
	"audio-relay/internal/config"
)

func newTestServer(t *testing.T) (*Server, *testutil.MockTranscriber) {
	cfg := config.Default()
	cfg.Environment = "test"
	cfg.Provider.APIKey = "test-key"
	cfg.Scratch.Dir = t.TempDir()

	store, err := scratch.NewStore(cfg.Scratch.Dir)
	require.NoError(t, err)

	m := testutil.NewMockTranscriber()
	registry := prometheus.NewRegistry()
	instrumented := provider.NewInstrumentedTranscriber(m, provider.NewCollectors(registry))

	return NewServer(cfg, instrumented, store, registry, zap.NewNop()), m
}

func TestServer_Routes(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
		contains       string
	}{
		{"health", http.MethodGet, "/health", http.StatusOK, `"status":"healthy"`},
		{"provider", http.MethodGet, "/api/provider", http.StatusOK, `"name":"mock"`},
		{"upload page", http.MethodGet, "/", http.StatusOK, "Audio Transcription"},
		{"swagger ui", http.MethodGet, "/swagger/index.html", http.StatusOK, "swagger"},
		{"swagger document", http.MethodGet, "/swagger/doc.json", http.StatusOK, "/transcribe"},
		{"transcribe without body", http.MethodPost, "/api/transcribe", http.StatusBadRequest, `{"error":"No file provided"}`},
		{"unknown route", http.MethodGet, "/api/unknown", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			srv.Router().ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.contains)
		})
	}
}

func TestServer_TranscribeAndMetrics(t *testing.T) {
	srv, m := newTestServer(t)
	m.On("Transcribe", mock.Anything, mock.Anything).Return(&provider.Transcription{Text: "hello world"}, nil)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "clip.wav")
	require.NoError(t, err)
	_, err = part.Write(testutil.WAVBytes(1))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/transcribe", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "hello world", result["text"])

	calls := m.History()
	require.Len(t, calls, 1)
	assert.Equal(t, config.DefaultModel, calls[0].Model)

	w = httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `relay_provider_requests_total{code="",outcome="success",provider="mock"} 1`)
	assert.Contains(t, w.Body.String(), `relay_http_requests_total{method="POST",route="/api/transcribe",status="200"} 1`)
}
