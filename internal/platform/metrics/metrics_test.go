package metrics

import (
	"errors"
	"testing"
	"time"
)

func TestCollectorSnapshot(t *testing.T) {
	c := New()
	c.Record(200, 10*time.Millisecond)
	c.Record(500, 30*time.Millisecond)
	c.Record(429, 0)
	c.RecordRun(52, nil)
	c.RecordRun(0, errors.New("render failed"))

	snap := c.Snapshot()
	if snap["requestsTotal"] != uint64(3) || snap["errorsTotal"] != uint64(1) || snap["rateLimitedTotal"] != uint64(1) {
		t.Fatalf("unexpected request counters %v", snap)
	}
	if snap["avgDurationMs"] != float64(40)/3 {
		t.Fatalf("unexpected average %v", snap["avgDurationMs"])
	}
	if snap["runsTotal"] != uint64(2) || snap["runsFailedTotal"] != uint64(1) || snap["payslipsTotal"] != uint64(52) {
		t.Fatalf("unexpected run counters %v", snap)
	}
}
