package metrics

import (
	"sync/atomic"
	"time"
)

type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	rateLimited     uint64
	totalDurationMs uint64
	runsTotal       uint64
	runsFailed      uint64
	payslipsTotal   uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	if status == 429 {
		atomic.AddUint64(&c.rateLimited, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

// RecordRun counts one generation attempt and the documents it produced.
func (c *Collector) RecordRun(documents int, err error) {
	atomic.AddUint64(&c.runsTotal, 1)
	if err != nil {
		atomic.AddUint64(&c.runsFailed, 1)
		return
	}
	if documents > 0 {
		atomic.AddUint64(&c.payslipsTotal, uint64(documents))
	}
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":    total,
		"errorsTotal":      atomic.LoadUint64(&c.errorRequests),
		"rateLimitedTotal": atomic.LoadUint64(&c.rateLimited),
		"avgDurationMs":    avg,
		"totalDurationMs":  totalMs,
		"runsTotal":        atomic.LoadUint64(&c.runsTotal),
		"runsFailedTotal":  atomic.LoadUint64(&c.runsFailed),
		"payslipsTotal":    atomic.LoadUint64(&c.payslipsTotal),
	}
}
