package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"audio-relay/internal/app/provider"
)

// statsSource is implemented by transcribers that keep call statistics.
type statsSource interface {
	Stats() provider.ProviderStats
}

// ProviderResponse describes the upstream provider the relay talks to
type ProviderResponse struct {
	Provider provider.ProviderInfo   `json:"provider"`
	Stats    *provider.ProviderStats `json:"stats,omitempty"`
}

// ProviderHandler exposes provider identity and usage
type ProviderHandler struct {
	transcriber provider.Transcriber
}

// NewProviderHandler creates a new provider handler
func NewProviderHandler(transcriber provider.Transcriber) *ProviderHandler {
	return &ProviderHandler{transcriber: transcriber}
}

// Get handles GET /api/provider
//
// @Summary Get provider details
// @Description Returns the configured speech-to-text provider and, when available, its call statistics
// @Tags provider
// @Produce json
// @Success 200 {object} ProviderResponse "Provider details"
// @Router /provider [get]
func (h *ProviderHandler) Get(c *gin.Context) {
	resp := ProviderResponse{Provider: h.transcriber.Info()}
	if source, ok := h.transcriber.(statsSource); ok {
		stats := source.Stats()
		resp.Stats = &stats
	}
	c.JSON(http.StatusOK, resp)
}

// Health handles GET /health
//
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} map[string]interface{} "Service is healthy"
// @Router /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	})
}
