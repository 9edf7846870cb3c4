package integrator

import (
	"github.com/tlond/ray-tracing-weakend/pkg/core"
	"github.com/tlond/ray-tracing-weakend/pkg/material"
	"github.com/tlond/ray-tracing-weakend/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the radiance arriving along a camera ray
	RayColor(ray core.Ray, scene *scene.Scene, sampler core.Sampler) core.Color
}

// World is the ray query an integrator traces against
type World interface {
	Hit(ray core.Ray, interval core.Interval) (*material.HitRecord, bool)
}
