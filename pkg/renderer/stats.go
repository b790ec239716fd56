package renderer

import (
	"fmt"
	"time"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of camera rays traced
	SamplesPerPixel int           // Samples taken for every pixel
	NumWorkers      int           // Goroutines used for the render
	Elapsed         time.Duration // Wall-clock render time
}

// SamplesPerSecond returns the camera ray throughput of the render
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Elapsed.Seconds()
}

// String formats the stats as a single summary line
func (s RenderStats) String() string {
	return fmt.Sprintf("%d pixels, %d spp, %d workers, %v (%.0f samples/s)",
		s.TotalPixels, s.SamplesPerPixel, s.NumWorkers, s.Elapsed.Round(time.Millisecond), s.SamplesPerSecond())
}
