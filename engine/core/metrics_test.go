package core

import (
	"errors"
	"testing"
	"time"
)

func TestMetricsRecordLoad(t *testing.T) {
	MetricsReset()
	defer MetricsReset()

	MetricsRecordLoad("a.obj", 2*time.Millisecond, nil)
	MetricsRecordLoad("b.obj", 4*time.Millisecond, nil)
	MetricsRecordLoad("c.obj", 100*time.Millisecond, errors.New("boom"))

	loads, failures := MetricsLoads()
	if loads != 3 || failures != 1 {
		t.Fatalf("MetricsLoads() = %d, %d", loads, failures)
	}
	if avg := MetricsLoadTime(); avg != 3 {
		t.Fatalf("MetricsLoadTime() = %v, want 3", avg)
	}
	recent := MetricsRecent()
	if len(recent) != 3 || recent[0].Path != "a.obj" || !recent[2].Failed {
		t.Fatalf("MetricsRecent() = %+v", recent)
	}
}

func TestMetricsWindow(t *testing.T) {
	MetricsReset()
	defer MetricsReset()

	for i := 0; i < AVG_COUNT+5; i++ {
		MetricsRecordLoad("a.obj", time.Millisecond, nil)
	}
	if got := len(MetricsRecent()); got != AVG_COUNT {
		t.Fatalf("window holds %d samples, want %d", got, AVG_COUNT)
	}
	if loads, _ := MetricsLoads(); loads != int64(AVG_COUNT+5) {
		t.Fatalf("loads = %d", loads)
	}
}
