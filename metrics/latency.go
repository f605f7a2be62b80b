// Package metrics provides router observers that record round trips.
package metrics

import (
	"net/url"
	"sort"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"

	"github.com/brkyvrkn/network-kit/router"
)

// Histogram range: 1 microsecond to 1 hour, 3 significant figures.
const (
	histogramMin     = 1
	histogramMax     = 3600000000
	histogramSigFigs = 3
)

// LatencyRecorder aggregates round trip latencies in HDR histograms, overall
// and per route ("METHOD /path"). It implements router.Observer and is safe
// for concurrent use.
type LatencyRecorder struct {
	mu          sync.Mutex
	overall     *hdrhistogram.Histogram
	routes      map[string]*hdrhistogram.Histogram
	total       int64
	failed      int64
	statusCodes map[int]int64
}

var _ router.Observer = (*LatencyRecorder)(nil)

// NewLatencyRecorder creates an empty recorder.
func NewLatencyRecorder() *LatencyRecorder {
	return &LatencyRecorder{
		overall:     newHistogram(),
		routes:      make(map[string]*hdrhistogram.Histogram),
		statusCodes: make(map[int]int64),
	}
}

func newHistogram() *hdrhistogram.Histogram {
	return hdrhistogram.New(histogramMin, histogramMax, histogramSigFigs)
}

// Observe records one round trip.
func (r *LatencyRecorder) Observe(e router.Event) {
	micros := clamp(e.Duration.Microseconds())
	route := routeName(e)

	// HDR histograms are not safe for concurrent writes
	r.mu.Lock()
	defer r.mu.Unlock()

	r.overall.RecordValue(micros)

	hist, ok := r.routes[route]
	if !ok {
		hist = newHistogram()
		r.routes[route] = hist
	}
	hist.RecordValue(micros)

	r.total++
	if e.Err != nil {
		r.failed++
	}
	if e.StatusCode != 0 {
		r.statusCodes[e.StatusCode]++
	}
}

// LatencyStats summarizes a histogram.
type LatencyStats struct {
	Count int64
	Min   time.Duration
	Max   time.Duration
	Mean  time.Duration
	P50   time.Duration
	P90   time.Duration
	P95   time.Duration
	P99   time.Duration
}

// Snapshot is a point-in-time copy of the recorder state.
type Snapshot struct {
	Latency     LatencyStats
	Routes      map[string]LatencyStats
	Total       int64
	Failed      int64
	StatusCodes map[int]int64
}

// ErrorRate returns the share of failed round trips.
func (s Snapshot) ErrorRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Failed) / float64(s.Total)
}

// RouteNames returns the recorded routes in sorted order.
func (s Snapshot) RouteNames() []string {
	names := make([]string, 0, len(s.Routes))
	for name := range s.Routes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot returns the current statistics.
func (r *LatencyRecorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := Snapshot{
		Latency:     stats(r.overall),
		Routes:      make(map[string]LatencyStats, len(r.routes)),
		Total:       r.total,
		Failed:      r.failed,
		StatusCodes: make(map[int]int64, len(r.statusCodes)),
	}
	for name, hist := range r.routes {
		snap.Routes[name] = stats(hist)
	}
	for code, count := range r.statusCodes {
		snap.StatusCodes[code] = count
	}
	return snap
}

// Reset discards everything recorded so far.
func (r *LatencyRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.overall.Reset()
	r.routes = make(map[string]*hdrhistogram.Histogram)
	r.total = 0
	r.failed = 0
	r.statusCodes = make(map[int]int64)
}

func stats(hist *hdrhistogram.Histogram) LatencyStats {
	if hist.TotalCount() == 0 {
		return LatencyStats{}
	}
	return LatencyStats{
		Count: hist.TotalCount(),
		Min:   time.Duration(hist.Min()) * time.Microsecond,
		Max:   time.Duration(hist.Max()) * time.Microsecond,
		Mean:  time.Duration(hist.Mean()) * time.Microsecond,
		P50:   time.Duration(hist.ValueAtQuantile(50)) * time.Microsecond,
		P90:   time.Duration(hist.ValueAtQuantile(90)) * time.Microsecond,
		P95:   time.Duration(hist.ValueAtQuantile(95)) * time.Microsecond,
		P99:   time.Duration(hist.ValueAtQuantile(99)) * time.Microsecond,
	}
}

func clamp(micros int64) int64 {
	if micros < histogramMin {
		return histogramMin
	}
	if micros > histogramMax {
		return histogramMax
	}
	return micros
}

func routeName(e router.Event) string {
	path := e.URL
	if u, err := url.Parse(e.URL); err == nil {
		path = u.Path
		if path == "" {
			path = "/"
		}
	}
	return e.Method + " " + path
}
