package material

import (
	"errors"
	"fmt"

	"github.com/tlond/ray-tracing-weakend/pkg/core"
)

// ErrInvalidIOR is returned for a non-positive index of refraction
var ErrInvalidIOR = errors.New("index of refraction must be positive")

// Dielectric represents a transparent material like glass.
// It always refracts: there is no total internal reflection or Fresnel reflection branch.
type Dielectric struct {
	RefractiveIndex float64 // Index of refraction (e.g., 1.5 for glass)
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float64) (*Dielectric, error) {
	if refractiveIndex <= 0 {
		return nil, fmt.Errorf("dielectric ior %g: %w", refractiveIndex, ErrInvalidIOR)
	}
	return &Dielectric{RefractiveIndex: refractiveIndex}, nil
}

// Scatter implements the Material interface for dielectric scattering
func (d *Dielectric) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	// Clear glass absorbs nothing
	attenuation := core.NewColor(1.0, 1.0, 1.0)

	var refractionRatio float64
	if hit.FrontFace {
		refractionRatio = 1.0 / d.RefractiveIndex // entering from air
	} else {
		refractionRatio = d.RefractiveIndex // exiting into air
	}

	unitDirection := rayIn.Direction.Normalize()
	refracted := core.Refract(unitDirection, hit.Normal, refractionRatio)

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, refracted),
		Attenuation: attenuation,
	}, true
}
