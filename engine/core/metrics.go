package core

import (
	"sync"
	"time"

	"github.com/spaghettifunk/anima-obj/engine/containers"
)

// Number of recent loads the average is computed over.
const AVG_COUNT int = 30

type LoadSample struct {
	Path      string
	ElapsedMS float64
	Failed    bool
}

type MetricsState struct {
	mu       sync.Mutex
	samples  *containers.RingQueue[LoadSample]
	loads    int64
	failures int64
}

var onceMetrics sync.Once
var metricsState *MetricsState = nil

func MetricsInitialize() error {
	onceMetrics.Do(func() {
		metricsState = &MetricsState{
			samples: containers.NewRingQueue[LoadSample](AVG_COUNT),
		}
	})
	return nil
}

// MetricsRecordLoad records one load of path.
func MetricsRecordLoad(path string, elapsed time.Duration, err error) {
	_ = MetricsInitialize()

	metricsState.mu.Lock()
	defer metricsState.mu.Unlock()

	metricsState.loads++
	if err != nil {
		metricsState.failures++
	}
	metricsState.samples.Push(LoadSample{
		Path:      path,
		ElapsedMS: float64(elapsed) / float64(time.Millisecond),
		Failed:    err != nil,
	})
}

// MetricsLoadTime is the average time in ms of the recent successful loads.
func MetricsLoadTime() float64 {
	_ = MetricsInitialize()

	metricsState.mu.Lock()
	defer metricsState.mu.Unlock()

	total, count := 0.0, 0
	for _, s := range metricsState.samples.Values() {
		if s.Failed {
			continue
		}
		total += s.ElapsedMS
		count++
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// MetricsLoads returns the number of loads and failed loads since start.
func MetricsLoads() (int64, int64) {
	_ = MetricsInitialize()

	metricsState.mu.Lock()
	defer metricsState.mu.Unlock()
	return metricsState.loads, metricsState.failures
}

// MetricsRecent returns the recent loads, oldest first.
func MetricsRecent() []LoadSample {
	_ = MetricsInitialize()

	metricsState.mu.Lock()
	defer metricsState.mu.Unlock()
	return metricsState.samples.Values()
}

// MetricsReset clears every counter.
func MetricsReset() {
	_ = MetricsInitialize()

	metricsState.mu.Lock()
	defer metricsState.mu.Unlock()
	metricsState.samples = containers.NewRingQueue[LoadSample](AVG_COUNT)
	metricsState.loads = 0
	metricsState.failures = 0
}
