package core

import (
	"sync"

	"github.com/spaghettifunk/tangram/engine/containers"
)

const AVG_COUNT int = 30

type MetricsState struct {
	frameTimes         *containers.RingQueue[float64]
	MSavg              float64
	Frames             int32
	AccumulatedFrameMS float64
	FPS                float64
}

var metricsMu sync.Mutex
var metricsState *MetricsState = nil

// MetricsInitialize resets the frame statistics.
func MetricsInitialize() error {
	metricsMu.Lock()
	defer metricsMu.Unlock()
	metricsState = &MetricsState{
		frameTimes: containers.NewRingQueue[float64](AVG_COUNT),
	}
	return nil
}

func MetricsUpdate(frameElapsedTime float64) {
	metricsMu.Lock()
	defer metricsMu.Unlock()
	if metricsState == nil {
		return
	}

	// Rolling average over the last AVG_COUNT frames.
	frameMS := frameElapsedTime * 1000.0
	if metricsState.frameTimes.IsFull() {
		_, _ = metricsState.frameTimes.Dequeue()
	}
	_ = metricsState.frameTimes.Enqueue(frameMS)

	sum := 0.0
	for v := range metricsState.frameTimes.All() {
		sum += v
	}
	metricsState.MSavg = sum / float64(metricsState.frameTimes.Len())

	// Calculate Frames per second.
	metricsState.AccumulatedFrameMS += frameMS
	metricsState.Frames++
	if metricsState.AccumulatedFrameMS > 1000 {
		metricsState.FPS = float64(metricsState.Frames)
		metricsState.AccumulatedFrameMS -= 1000
		metricsState.Frames = 0
	}
}

func MetricsFPS() float64 {
	fps, _ := MetricsFrame()
	return fps
}

func MetricsFrameTime() float64 {
	_, ms := MetricsFrame()
	return ms
}

// MetricsFrame returns the frames-per-second and the averaged frame time in ms.
func MetricsFrame() (float64, float64) {
	metricsMu.Lock()
	defer metricsMu.Unlock()
	if metricsState == nil {
		return 0, 0
	}
	return metricsState.FPS, metricsState.MSavg
}
