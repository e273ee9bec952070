package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	ProviderCalls       int64
	ProviderErrors      int64
	FallbacksTriggered  int64
	FeedsServed         int64
	ArticlesShaped      int64
	DuplicatesDropped   int64
	LowSignalSuppressed int64
	TeasersGenerated    int64
	GenerationFailures  int64
	EmbeddingFailures   int64

	// Timings
	LastFetchTime    time.Duration
	AverageFetchTime time.Duration
	TotalFetchTime   time.Duration
	FetchCount       int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) IncrementProviderCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ProviderCalls++
}

func (m *Metrics) IncrementProviderErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ProviderErrors++
}

func (m *Metrics) IncrementFallbacksTriggered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FallbacksTriggered++
}

func (m *Metrics) IncrementFeedsServed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FeedsServed++
}

func (m *Metrics) IncrementArticlesShaped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesShaped++
}

func (m *Metrics) IncrementDuplicatesDropped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesDropped++
}

func (m *Metrics) IncrementLowSignalSuppressed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LowSignalSuppressed++
}

func (m *Metrics) IncrementTeasersGenerated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TeasersGenerated++
}

func (m *Metrics) IncrementGenerationFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GenerationFailures++
}

func (m *Metrics) IncrementEmbeddingFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EmbeddingFailures++
}

func (m *Metrics) RecordFetchTime(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastFetchTime = duration
	m.TotalFetchTime += duration
	m.FetchCount++

	if m.FetchCount > 0 {
		m.AverageFetchTime = m.TotalFetchTime / time.Duration(m.FetchCount)
	}
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"provider_calls":        m.ProviderCalls,
		"provider_errors":       m.ProviderErrors,
		"fallbacks_triggered":   m.FallbacksTriggered,
		"feeds_served":          m.FeedsServed,
		"articles_shaped":       m.ArticlesShaped,
		"duplicates_dropped":    m.DuplicatesDropped,
		"low_signal_suppressed": m.LowSignalSuppressed,
		"teasers_generated":     m.TeasersGenerated,
		"generation_failures":   m.GenerationFailures,
		"embedding_failures":    m.EmbeddingFailures,
		"last_fetch_time_ms":    m.LastFetchTime.Milliseconds(),
		"average_fetch_time_ms": m.AverageFetchTime.Milliseconds(),
		"last_run_time":         m.LastRunTime.Format(time.RFC3339),
		"last_error_time":       m.LastErrorTime.Format(time.RFC3339),
		"last_error":            m.LastError,
		"is_healthy":            m.IsHealthy,
	}
}
