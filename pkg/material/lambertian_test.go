package material

import (
	"math/rand"
	"testing"

	"github.com/tlond/ray-tracing-weakend/pkg/core"
)

// fixedSampler always returns the same values, which pins RandomUnitVector to one direction.
// Get2D X=0 maps to (0,0,1) and X=1 maps to (0,0,-1).
type fixedSampler struct {
	value1D float64
	value2D core.Vec2
}

func (f *fixedSampler) Get1D() float64   { return f.value1D }
func (f *fixedSampler) Get2D() core.Vec2 { return f.value2D }

func TestLambertian_AlwaysScatters(t *testing.T) {
	albedo := core.NewColor(0.8, 0.3, 0.1)
	lambertian := NewLambertian(albedo)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	rayIn := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		T:         1,
		FrontFace: true,
	}

	for i := 0; i < 1000; i++ {
		scatter, didScatter := lambertian.Scatter(rayIn, hit, sampler)
		if !didScatter {
			t.Fatalf("Lambertian should always scatter (iteration %d)", i)
		}
		if !scatter.Attenuation.Equals(albedo) {
			t.Fatalf("Attenuation should equal albedo: expected %v, got %v", albedo, scatter.Attenuation)
		}
		if !scatter.Scattered.Origin.Equals(hit.Point) {
			t.Fatalf("Scattered ray should start at hit point: expected %v, got %v", hit.Point, scatter.Scattered.Origin)
		}
		// normal + unit vector never points below the surface
		if scatter.Scattered.Direction.Dot(hit.Normal) < -1e-12 {
			t.Fatalf("Scattered direction %v points below the surface", scatter.Scattered.Direction)
		}
	}
}

func TestLambertian_DegenerateDirectionFallsBackToNormal(t *testing.T) {
	lambertian := NewLambertian(core.NewColor(0.5, 0.5, 0.5))

	// Random unit vector (0,0,-1) exactly cancels the normal (0,0,1)
	sampler := &fixedSampler{value2D: core.NewVec2(1, 0)}
	hit := HitRecord{
		Point:     core.NewVec3(1, 2, 3),
		Normal:    core.NewVec3(0, 0, 1),
		FrontFace: true,
	}
	rayIn := core.NewRay(core.NewVec3(1, 2, 5), core.NewVec3(0, 0, -1))

	scatter, didScatter := lambertian.Scatter(rayIn, hit, sampler)
	if !didScatter {
		t.Fatal("Lambertian should always scatter")
	}
	if !scatter.Scattered.Direction.Equals(hit.Normal) {
		t.Errorf("Expected fallback direction %v, got %v", hit.Normal, scatter.Scattered.Direction)
	}
}

func TestHitRecord_SetFaceNormal(t *testing.T) {
	outward := core.NewVec3(0, 0, 1)

	tests := []struct {
		name          string
		direction     core.Vec3
		expectedFront bool
		expected      core.Vec3
	}{
		{"Ray from outside", core.NewVec3(0, 0, -1), true, core.NewVec3(0, 0, 1)},
		{"Ray from inside", core.NewVec3(0, 0, 1), false, core.NewVec3(0, 0, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hit HitRecord
			ray := core.NewRay(core.NewVec3(0, 0, 0), tt.direction)
			hit.SetFaceNormal(ray, outward)

			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}
			if !hit.Normal.Equals(tt.expected) {
				t.Errorf("Expected normal %v, got %v", tt.expected, hit.Normal)
			}
			if hit.Normal.Dot(ray.Direction) >= 0 {
				t.Errorf("Normal %v should face against ray direction %v", hit.Normal, ray.Direction)
			}
		})
	}
}
