package integrator

import (
	"github.com/tlond/ray-tracing-weakend/pkg/core"
	"github.com/tlond/ray-tracing-weakend/pkg/scene"
)

// hitEpsilon offsets the start of every bounce to avoid self-intersection ("shadow acne")
const hitEpsilon = 0.001

var (
	skyWhite = core.NewColor(1.0, 1.0, 1.0)
	skyBlue  = core.NewColor(0.5, 0.7, 1.0)
)

// PathTracingIntegrator implements unidirectional path tracing
type PathTracingIntegrator struct {
	config scene.SamplingConfig
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config scene.SamplingConfig) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		config: config,
	}
}

// RayColor traces a camera ray through the scene, bounded by the configured depth
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, scene *scene.Scene, sampler core.Sampler) core.Color {
	return pt.Trace(ray, scene, pt.config.MaxDepth, sampler)
}

// Trace follows a path for at most depth bounces. A miss returns the sky weighted by the
// attenuation gathered so far; absorption or running out of bounces returns black.
func (pt *PathTracingIntegrator) Trace(ray core.Ray, world World, depth int, sampler core.Sampler) core.Color {
	throughput := core.NewColor(1, 1, 1)

	for ; depth > 0; depth-- {
		hit, isHit := world.Hit(ray, core.Forward(hitEpsilon))
		if !isHit {
			return throughput.MultiplyVec(SkyColor(ray))
		}

		scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
		if !didScatter {
			return core.Color{}
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		ray = scatter.Scattered
	}

	return core.Color{}
}

// SkyColor returns the white-to-blue vertical gradient seen by rays that escape the scene
func SkyColor(r core.Ray) core.Color {
	unitDirection := r.Direction.Normalize()
	a := 0.5 * (unitDirection.Y + 1.0)
	return skyWhite.Lerp(skyBlue, a)
}
