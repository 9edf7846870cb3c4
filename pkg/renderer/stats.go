package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels  int           // Total number of pixels rendered
	TotalSamples int           // Total number of camera samples traced
	TilesDone    int           // Tiles completed
	TotalTiles   int           // Tiles in the grid
	Elapsed      time.Duration // Wall time of the render
}

// Add accumulates the counters of another stats value
func (s *RenderStats) Add(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.TotalSamples += other.TotalSamples
	s.TilesDone += other.TilesDone
}

// AverageSamples returns samples per rendered pixel
func (s RenderStats) AverageSamples() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.TotalSamples) / float64(s.TotalPixels)
}
