package scene

import (
	"fmt"
	"math"

	"github.com/tlond/ray-tracing-weakend/pkg/core"
	"github.com/tlond/ray-tracing-weakend/pkg/geometry"
	"github.com/tlond/ray-tracing-weakend/pkg/material"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera         *geometry.Camera
	CameraConfig   geometry.CameraConfig
	Shapes         *geometry.ShapeList // Objects in the scene, searched linearly
	SamplingConfig SamplingConfig
}

// SamplingConfig contains the recommended rendering configuration for a scene
type SamplingConfig struct {
	Width           int // Image width
	Height          int // Image height
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns the reference settings: 50 bounces, 100 samples
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// MergeSamplingConfig returns base with every positive field of override applied
func MergeSamplingConfig(base, override SamplingConfig) SamplingConfig {
	merged := base
	if override.Width > 0 {
		merged.Width = override.Width
	}
	if override.Height > 0 {
		merged.Height = override.Height
	}
	if override.SamplesPerPixel > 0 {
		merged.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxDepth > 0 {
		merged.MaxDepth = override.MaxDepth
	}
	return merged
}

// HeightForWidth derives an image height from a width and aspect ratio, at least 1
func HeightForWidth(width int, aspectRatio float64) int {
	return max(1, int(math.Round(float64(width)/aspectRatio)))
}

// NewScene creates an empty scene. A zero camera aspect ratio is derived from the image size.
func NewScene(cameraConfig geometry.CameraConfig, samplingConfig SamplingConfig) (*Scene, error) {
	if cameraConfig.AspectRatio == 0 && samplingConfig.Height > 0 {
		cameraConfig.AspectRatio = float64(samplingConfig.Width) / float64(samplingConfig.Height)
	}
	camera, err := geometry.NewCamera(cameraConfig)
	if err != nil {
		return nil, fmt.Errorf("scene camera: %w", err)
	}

	return &Scene{
		Camera:         camera,
		CameraConfig:   camera.Config(),
		Shapes:         geometry.NewShapeList(),
		SamplingConfig: samplingConfig,
	}, nil
}

// AddSphere adds a sphere with the given material
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat material.Material) error {
	sphere, err := geometry.NewSphere(center, radius, mat)
	if err != nil {
		return err
	}
	s.Shapes.Add(sphere)
	return nil
}

// Hit returns the nearest intersection in the scene
func (s *Scene) Hit(ray core.Ray, interval core.Interval) (*material.HitRecord, bool) {
	return s.Shapes.Hit(ray, interval)
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.Shapes.Len()
}
