package metrics

import (
	"sync/atomic"
	"time"
)

type Collector struct {
	totalRequests        uint64
	errorRequests        uint64
	clientErrors         uint64
	rateLimited          uint64
	totalDurationMs      uint64
	publishEpisodes      uint64
	evaluationsGenerated uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	if c == nil {
		return
	}
	atomic.AddUint64(&c.totalRequests, 1)
	switch {
	case status >= 500:
		atomic.AddUint64(&c.errorRequests, 1)
	case status == 429:
		atomic.AddUint64(&c.rateLimited, 1)
		atomic.AddUint64(&c.clientErrors, 1)
	case status >= 400:
		atomic.AddUint64(&c.clientErrors, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

// RecordPublish counts one publish or republish episode and the evaluations
// it generated.
func (c *Collector) RecordPublish(evaluations int) {
	if c == nil {
		return
	}
	atomic.AddUint64(&c.publishEpisodes, 1)
	if evaluations > 0 {
		atomic.AddUint64(&c.evaluationsGenerated, uint64(evaluations))
	}
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	clientErrs := atomic.LoadUint64(&c.clientErrors)
	limited := atomic.LoadUint64(&c.rateLimited)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":             total,
		"errorsTotal":               errs,
		"clientErrorsTotal":         clientErrs,
		"rateLimitedTotal":          limited,
		"avgDurationMs":             avg,
		"totalDurationMs":           totalMs,
		"publishEpisodesTotal":      atomic.LoadUint64(&c.publishEpisodes),
		"evaluationsGeneratedTotal": atomic.LoadUint64(&c.evaluationsGenerated),
	}
}
