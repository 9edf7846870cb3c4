package scene

import (
	"math/rand"

	"github.com/tlond/ray-tracing-weakend/pkg/core"
	"github.com/tlond/ray-tracing-weakend/pkg/geometry"
	"github.com/tlond/ray-tracing-weakend/pkg/material"
)

// NewRandomSpheresScene creates the 22x22 grid of small random spheres around three large ones.
// The layout and material choices are reproducible for a given seed.
func NewRandomSpheresScene(seed int64, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	defaultCameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(13, 2, 3),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 16.0 / 9.0,
		VFov:        20.0,
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	samplingConfig := SamplingConfig{
		Width:           1200,
		SamplesPerPixel: 500,
		MaxDepth:        50,
	}
	samplingConfig.Height = HeightForWidth(samplingConfig.Width, cameraConfig.AspectRatio)

	s, err := NewScene(cameraConfig, samplingConfig)
	if err != nil {
		return nil, err
	}

	random := rand.New(rand.NewSource(seed))
	sampler := core.NewRandomSampler(random)
	randomColor := func(lo, hi float64) core.Color {
		return core.NewColor(
			core.RandomRange(sampler, lo, hi),
			core.RandomRange(sampler, lo, hi),
			core.RandomRange(sampler, lo, hi),
		)
	}

	glass, err := material.NewDielectric(1.5)
	if err != nil {
		return nil, err
	}

	b := builder{scene: s}
	b.sphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewColor(0.5, 0.5, 0.5)))

	exclusion := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for c := -11; c < 11; c++ {
			chooseMat := random.Float64()
			center := core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(c)+0.9*random.Float64())

			if center.Subtract(exclusion).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				albedo := randomColor(0, 1).MultiplyVec(randomColor(0, 1))
				b.sphere(center, 0.2, material.NewLambertian(albedo))
			case chooseMat < 0.95:
				albedo := randomColor(0.5, 1)
				fuzz := core.RandomRange(sampler, 0, 0.5)
				b.sphere(center, 0.2, material.NewMetal(albedo, fuzz))
			default:
				// Glass spheres share one material instance
				b.sphere(center, 0.2, glass)
			}
		}
	}

	b.sphere(core.NewVec3(0, 1, 0), 1.0, glass)
	b.sphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewColor(0.4, 0.2, 0.1)))
	b.sphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewColor(0.7, 0.6, 0.5), 0.0))

	return b.done()
}
