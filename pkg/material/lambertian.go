package material

import (
	"github.com/tlond/ray-tracing-weakend/pkg/core"
)

// nearZeroEpsilon guards against a scatter direction that cancels the normal exactly
const nearZeroEpsilon = 1e-8

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo core.Color // Base color/reflectance
}

// NewLambertian creates a new lambertian material
func NewLambertian(albedo core.Color) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Scatter implements the Material interface for lambertian scattering
func (l *Lambertian) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	// normal + uniform unit vector gives a cosine-weighted lobe around the normal
	scatterDirection := hit.Normal.Add(core.RandomUnitVector(sampler))
	if scatterDirection.NearZero(nearZeroEpsilon) {
		scatterDirection = hit.Normal
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, scatterDirection),
		Attenuation: l.Albedo,
	}, true
}
