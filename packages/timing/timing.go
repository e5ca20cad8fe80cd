// Package timing aggregates per-test durations into an HDR histogram
// and reports percentile summaries.
package timing

import (
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Collector records test durations. Not safe for concurrent use; the
// runner is single-threaded.
type Collector struct {
	histogram *hdrhistogram.Histogram
}

// Summary is a percentile view of the recorded durations.
type Summary struct {
	Count int64
	Mean  time.Duration
	P50   time.Duration
	P95   time.Duration
	P99   time.Duration
	Max   time.Duration
}

// NewCollector creates a collector covering 1us to 60s at 3
// significant digits.
func NewCollector() *Collector {
	return &Collector{
		histogram: hdrhistogram.New(1, 60_000_000, 3),
	}
}

// Record adds one test duration.
func (c *Collector) Record(d time.Duration) {
	us := d.Microseconds()
	if us < 1 {
		us = 1
	}
	if us > 60_000_000 {
		us = 60_000_000
	}
	_ = c.histogram.RecordValue(us)
}

// Summary returns the aggregate view of everything recorded so far.
func (c *Collector) Summary() Summary {
	h := c.histogram
	return Summary{
		Count: h.TotalCount(),
		Mean:  time.Duration(h.Mean()) * time.Microsecond,
		P50:   time.Duration(h.ValueAtQuantile(50)) * time.Microsecond,
		P95:   time.Duration(h.ValueAtQuantile(95)) * time.Microsecond,
		P99:   time.Duration(h.ValueAtQuantile(99)) * time.Microsecond,
		Max:   time.Duration(h.Max()) * time.Microsecond,
	}
}
