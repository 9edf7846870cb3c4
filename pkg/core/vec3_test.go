package core

import (
	"math"
	"testing"
)

func TestVec3_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vec3
		expected Vec3
	}{
		{
			name:     "Unit X stays unit",
			vector:   NewVec3(1, 0, 0),
			expected: NewVec3(1, 0, 0),
		},
		{
			name:     "Scaled vector",
			vector:   NewVec3(0, 3, 4),
			expected: NewVec3(0, 0.6, 0.8),
		},
		{
			name:     "Zero vector stays zero",
			vector:   NewVec3(0, 0, 0),
			expected: NewVec3(0, 0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.vector.Normalize()

			if math.IsNaN(result.X) || math.IsNaN(result.Y) || math.IsNaN(result.Z) {
				t.Fatalf("Normalize produced NaN: %v", result)
			}

			const tolerance = 1e-12
			if result.Subtract(tt.expected).Length() > tolerance {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestVec3_Cross(t *testing.T) {
	x := NewVec3(1, 0, 0)
	y := NewVec3(0, 1, 0)

	if got := x.Cross(y); !got.Equals(NewVec3(0, 0, 1)) {
		t.Errorf("Expected x cross y = (0,0,1), got %v", got)
	}
	if got := y.Cross(x); !got.Equals(NewVec3(0, 0, -1)) {
		t.Errorf("Expected y cross x = (0,0,-1), got %v", got)
	}
}

func TestVec3_NearZero(t *testing.T) {
	if !NewVec3(1e-9, -1e-9, 0).NearZero(1e-8) {
		t.Error("Expected tiny vector to be near zero")
	}
	if NewVec3(1e-9, 1e-7, 0).NearZero(1e-8) {
		t.Error("Expected vector with one large component not to be near zero")
	}
}

func TestReflect(t *testing.T) {
	v := NewVec3(1, -1, 0)
	n := NewVec3(0, 1, 0)

	got := Reflect(v, n)
	expected := NewVec3(1, 1, 0)
	if !got.ApproxEquals(expected, 1e-12) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestRefract(t *testing.T) {
	n := NewVec3(0, 1, 0)

	t.Run("Normal incidence passes straight through", func(t *testing.T) {
		got := Refract(NewVec3(0, -1, 0), n, 1.0/1.5)
		if !got.ApproxEquals(NewVec3(0, -1, 0), 1e-12) {
			t.Errorf("Expected straight refraction, got %v", got)
		}
	})

	t.Run("Snell's law holds at 45 degrees", func(t *testing.T) {
		in := NewVec3(1, -1, 0).Normalize()
		ratio := 1.0 / 1.5
		got := Refract(in, n, ratio)

		sinIn := math.Abs(in.X)
		sinOut := math.Abs(got.Normalize().X)
		if math.Abs(sinOut-ratio*sinIn) > 1e-9 {
			t.Errorf("Expected sin(out)=%f, got %f", ratio*sinIn, sinOut)
		}
		if math.Abs(got.Length()-1) > 1e-9 {
			t.Errorf("Expected unit refracted direction, got length %f", got.Length())
		}
	})
}

func TestVec3_Sqrt(t *testing.T) {
	got := NewVec3(0.25, 1, -0.5).Sqrt()
	expected := NewVec3(0.5, 1, 0)
	if !got.ApproxEquals(expected, 1e-12) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 2, 3), NewVec3(0, 0, -2))
	got := ray.At(1.5)
	expected := NewVec3(1, 2, 0)
	if !got.Equals(expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestRasterToScreen(t *testing.T) {
	tests := []struct {
		name          string
		x, y          int
		width, height int
		expected      Vec2
	}{
		{"Top-left pixel of 2x2", 0, 0, 2, 2, NewVec2(-0.5, 0.5)},
		{"Bottom-right pixel of 2x2", 1, 1, 2, 2, NewVec2(0.5, -0.5)},
		{"Center of 1x1", 0, 0, 1, 1, NewVec2(0, 0)},
		{"Non-square uses y for y", 3, 0, 4, 2, NewVec2(0.75, 0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NDCToScreen(RasterToNDC(tt.x, tt.y, tt.width, tt.height))
			if math.Abs(got.X-tt.expected.X) > 1e-12 || math.Abs(got.Y-tt.expected.Y) > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}
