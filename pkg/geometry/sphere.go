package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/tlond/ray-tracing-weakend/pkg/core"
	"github.com/tlond/ray-tracing-weakend/pkg/material"
)

var (
	// ErrNilMaterial is returned when a shape is built without a material
	ErrNilMaterial = errors.New("shape has no material")
	// ErrZeroRadius is returned for a sphere whose radius is zero or not finite
	ErrZeroRadius = errors.New("sphere radius must be non-zero and finite")
)

// Sphere represents a sphere shape.
// A negative radius flips the outward normal, which turns a dielectric sphere into a hollow bubble.
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat material.Material) (*Sphere, error) {
	if mat == nil {
		return nil, fmt.Errorf("sphere at %v: %w", center, ErrNilMaterial)
	}
	if radius == 0 || math.IsNaN(radius) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("sphere at %v with radius %g: %w", center, radius, ErrZeroRadius)
	}
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}, nil
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, interval core.Interval) (*material.HitRecord, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients with b = 2*halfB
	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}
	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if !interval.Surrounds(root) {
		root = (-halfB + sqrtD) / a
		if !interval.Surrounds(root) {
			return nil, false
		}
	}

	hitRecord := &material.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}

	outwardNormal := hitRecord.Point.Subtract(s.Center).Divide(s.Radius)
	hitRecord.SetFaceNormal(ray, outwardNormal)

	return hitRecord, true
}
