package provider

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ProviderStats contains statistics for a specific provider
type ProviderStats struct {
	Provider           string           `json:"provider"`
	TotalRequests      int64            `json:"total_requests"`
	SuccessfulRequests int64            `json:"successful_requests"`
	FailedRequests     int64            `json:"failed_requests"`
	SuccessRate        float64          `json:"success_rate"`
	AverageLatencyMs   float64          `json:"average_latency_ms"`
	LastUsed           int64            `json:"last_used"`
	ErrorBreakdown     map[string]int64 `json:"error_breakdown,omitempty"`
}

// Collectors holds the Prometheus series recorded for provider calls.
type Collectors struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewCollectors registers the provider metrics with reg.
func NewCollectors(reg prometheus.Registerer) *Collectors {
	c := &Collectors{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "relay",
			Subsystem: "provider",
			Name:      "requests_total",
			Help:      "Transcription provider calls by outcome.",
		}, []string{"provider", "outcome", "code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "relay",
			Subsystem: "provider",
			Name:      "request_duration_seconds",
			Help:      "Latency of transcription provider calls.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60, 120},
		}, []string{"provider"}),
	}
	reg.MustRegister(c.requests, c.latency)
	return c
}

// InstrumentedTranscriber records metrics around another Transcriber.
type InstrumentedTranscriber struct {
	next       Transcriber
	collectors *Collectors

	mu    sync.RWMutex
	stats ProviderStats
}

// NewInstrumentedTranscriber wraps next.
func NewInstrumentedTranscriber(next Transcriber, collectors *Collectors) *InstrumentedTranscriber {
	return &InstrumentedTranscriber{
		next:       next,
		collectors: collectors,
		stats:      ProviderStats{Provider: next.Info().Name},
	}
}

// Transcribe implements Transcriber.
func (t *InstrumentedTranscriber) Transcribe(ctx context.Context, request *TranscriptionRequest) (*Transcription, error) {
	name := t.stats.Provider
	start := time.Now()

	result, err := t.next.Transcribe(ctx, request)

	elapsed := time.Since(start)
	t.collectors.latency.WithLabelValues(name).Observe(elapsed.Seconds())
	if err != nil {
		code := ErrorCode(err)
		t.collectors.requests.WithLabelValues(name, "failure", code).Inc()
		t.recordFailure(code)
		return nil, err
	}

	t.collectors.requests.WithLabelValues(name, "success", "").Inc()
	t.recordSuccess(elapsed.Milliseconds())
	return result, nil
}

// Info implements Transcriber.
func (t *InstrumentedTranscriber) Info() ProviderInfo {
	return t.next.Info()
}

// Stats returns a copy of the in-process counters.
func (t *InstrumentedTranscriber) Stats() ProviderStats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := t.stats
	if t.stats.ErrorBreakdown != nil {
		out.ErrorBreakdown = make(map[string]int64, len(t.stats.ErrorBreakdown))
		for k, v := range t.stats.ErrorBreakdown {
			out.ErrorBreakdown[k] = v
		}
	}
	return out
}

func (t *InstrumentedTranscriber) recordSuccess(latencyMs int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := &t.stats
	s.TotalRequests++
	s.SuccessfulRequests++
	s.LastUsed = time.Now().Unix()

	// Weighted average favoring recent results
	if s.AverageLatencyMs == 0 {
		s.AverageLatencyMs = float64(latencyMs)
	} else {
		s.AverageLatencyMs = (s.AverageLatencyMs * 0.8) + (float64(latencyMs) * 0.2)
	}
	s.SuccessRate = float64(s.SuccessfulRequests) / float64(s.TotalRequests)
}

func (t *InstrumentedTranscriber) recordFailure(code string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := &t.stats
	s.TotalRequests++
	s.FailedRequests++
	s.LastUsed = time.Now().Unix()

	if s.ErrorBreakdown == nil {
		s.ErrorBreakdown = make(map[string]int64)
	}
	s.ErrorBreakdown[code]++
	s.SuccessRate = float64(s.SuccessfulRequests) / float64(s.TotalRequests)
}
