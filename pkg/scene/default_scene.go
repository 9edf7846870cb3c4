package scene

import (
	"github.com/tlond/ray-tracing-weakend/pkg/core"
	"github.com/tlond/ray-tracing-weakend/pkg/geometry"
	"github.com/tlond/ray-tracing-weakend/pkg/material"
)

// NewDefaultScene creates three spheres (diffuse, hollow glass, gold mirror) on a large ground sphere
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	defaultCameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 16.0 / 9.0,
		VFov:        90.0,
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	samplingConfig := DefaultSamplingConfig()
	samplingConfig.Height = HeightForWidth(samplingConfig.Width, cameraConfig.AspectRatio)

	s, err := NewScene(cameraConfig, samplingConfig)
	if err != nil {
		return nil, err
	}

	materialGround := material.NewLambertian(core.NewColor(0.8, 0.8, 0.0))
	materialCenter := material.NewLambertian(core.NewColor(0.1, 0.1, 0.2))
	materialRight := material.NewMetal(core.NewColor(0.8, 0.6, 0.2), 0.0)
	materialLeft, err := material.NewDielectric(1.5)
	if err != nil {
		return nil, err
	}

	b := builder{scene: s}
	b.sphere(core.NewVec3(0, -100.5, -1), 100, materialGround)
	b.sphere(core.NewVec3(0, 0, -1), 0.5, materialCenter)
	b.sphere(core.NewVec3(-1, 0, -1), 0.5, materialLeft)
	// Same glass, negative radius: a hollow bubble inside the left sphere
	b.sphere(core.NewVec3(-1, 0, -1), -0.4, materialLeft)
	b.sphere(core.NewVec3(1, 0, -1), 0.5, materialRight)

	return b.done()
}

// builder collects the first error from a sequence of AddSphere calls
type builder struct {
	scene *Scene
	err   error
}

func (b *builder) sphere(center core.Vec3, radius float64, mat material.Material) {
	if b.err != nil {
		return
	}
	b.err = b.scene.AddSphere(center, radius, mat)
}

func (b *builder) done() (*Scene, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.scene, nil
}
