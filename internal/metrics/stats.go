package metrics

import (
	"sort"
	"sync"
	"time"
)

type sample struct {
	timestamp  time.Time
	durationMs int64
}

// Snapshot is a point-in-time aggregate of latency samples for one
// analysis operation.
type Snapshot struct {
	Count int     `json:"count"`
	MinMs int64   `json:"min_ms"`
	MaxMs int64   `json:"max_ms"`
	AvgMs float64 `json:"avg_ms"`
	P50Ms float64 `json:"p50_ms"`
	P95Ms float64 `json:"p95_ms"`
	P99Ms float64 `json:"p99_ms"`
}

// Registry tracks recent analysis latencies per operation within a
// rolling window.
type Registry struct {
	mu     sync.Mutex
	ops    map[string]*opStats
	maxAge time.Duration
}

type opStats struct {
	samples []sample
}

func NewRegistry(maxAge time.Duration) *Registry {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &Registry{
		ops:    make(map[string]*opStats),
		maxAge: maxAge,
	}
}

func (r *Registry) Record(op string, d time.Duration) {
	ms := d.Milliseconds()
	if ms < 0 {
		ms = 0
	}
	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.ops[op]
	if !ok {
		st = &opStats{samples: make([]sample, 0, 64)}
		r.ops[op] = st
	}
	st.prune(now, r.maxAge)
	st.samples = append(st.samples, sample{
		timestamp:  now,
		durationMs: ms,
	})
}

// Snapshots returns the aggregate for every operation seen within the
// window. Operations whose samples all expired are dropped.
func (r *Registry) Snapshots() map[string]Snapshot {
	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]Snapshot, len(r.ops))
	for op, st := range r.ops {
		st.prune(now, r.maxAge)
		if len(st.samples) == 0 {
			delete(r.ops, op)
			continue
		}
		out[op] = st.snapshot()
	}
	return out
}

func (st *opStats) prune(now time.Time, maxAge time.Duration) {
	cutoff := now.Add(-maxAge)
	writeIdx := 0
	for _, sm := range st.samples {
		if !sm.timestamp.Before(cutoff) {
			st.samples[writeIdx] = sm
			writeIdx++
		}
	}
	st.samples = st.samples[:writeIdx]
}

func (st *opStats) snapshot() Snapshot {
	values := make([]int64, 0, len(st.samples))
	var sum int64
	for _, sm := range st.samples {
		values = append(values, sm.durationMs)
		sum += sm.durationMs
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	return Snapshot{
		Count: len(values),
		MinMs: values[0],
		MaxMs: values[len(values)-1],
		AvgMs: float64(sum) / float64(len(values)),
		P50Ms: percentile(values, 50),
		P95Ms: percentile(values, 95),
		P99Ms: percentile(values, 99),
	}
}

func percentile(sortedValues []int64, pct float64) float64 {
	if len(sortedValues) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sortedValues[0])
	}
	if pct >= 100 {
		return float64(sortedValues[len(sortedValues)-1])
	}

	index := (float64(len(sortedValues)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sortedValues) {
		return float64(sortedValues[lower])
	}
	weight := index - float64(lower)
	lo := float64(sortedValues[lower])
	hi := float64(sortedValues[upper])
	return lo + ((hi - lo) * weight)
}
