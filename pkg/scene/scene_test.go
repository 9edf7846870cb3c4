package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/tlond/ray-tracing-weakend/pkg/core"
	"github.com/tlond/ray-tracing-weakend/pkg/geometry"
	"github.com/tlond/ray-tracing-weakend/pkg/material"
)

func TestNewScene_DerivesAspectRatio(t *testing.T) {
	s, err := NewScene(geometry.CameraConfig{
		Center: core.NewVec3(0, 0, 0),
		LookAt: core.NewVec3(0, 0, -1),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   60,
	}, SamplingConfig{Width: 300, Height: 150, SamplesPerPixel: 1, MaxDepth: 1})
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	if s.Camera.Config().AspectRatio != 2 {
		t.Errorf("Expected aspect ratio 2, got %f", s.Camera.Config().AspectRatio)
	}
	if s.GetPrimitiveCount() != 0 {
		t.Errorf("Expected empty scene, got %d shapes", s.GetPrimitiveCount())
	}
}

func TestNewScene_RejectsDegenerateCamera(t *testing.T) {
	_, err := NewScene(geometry.CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 5, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        60,
		AspectRatio: 1,
	}, DefaultSamplingConfig())
	if !errors.Is(err, geometry.ErrDegenerateCamera) {
		t.Errorf("Expected ErrDegenerateCamera, got %v", err)
	}
}

func TestScene_AddSphereValidates(t *testing.T) {
	s, err := NewDefaultScene()
	if err != nil {
		t.Fatalf("NewDefaultScene: %v", err)
	}
	before := s.GetPrimitiveCount()

	if err := s.AddSphere(core.NewVec3(0, 0, 0), 1, nil); !errors.Is(err, geometry.ErrNilMaterial) {
		t.Errorf("Expected ErrNilMaterial, got %v", err)
	}
	if err := s.AddSphere(core.NewVec3(0, 0, 0), 0, material.NewLambertian(core.NewColor(1, 1, 1))); !errors.Is(err, geometry.ErrZeroRadius) {
		t.Errorf("Expected ErrZeroRadius, got %v", err)
	}
	if s.GetPrimitiveCount() != before {
		t.Errorf("Rejected spheres should not be added: %d -> %d", before, s.GetPrimitiveCount())
	}
}

func TestNewDefaultScene(t *testing.T) {
	s, err := NewDefaultScene()
	if err != nil {
		t.Fatalf("NewDefaultScene: %v", err)
	}

	if s.GetPrimitiveCount() != 5 {
		t.Errorf("Expected 5 spheres, got %d", s.GetPrimitiveCount())
	}
	if s.SamplingConfig.Width != 400 || s.SamplingConfig.Height != 225 {
		t.Errorf("Expected 400x225, got %dx%d", s.SamplingConfig.Width, s.SamplingConfig.Height)
	}
	if s.SamplingConfig.MaxDepth != 50 || s.SamplingConfig.SamplesPerPixel != 100 {
		t.Errorf("Unexpected sampling config %+v", s.SamplingConfig)
	}

	// The view ray straight ahead hits the center sphere's front at t=0.5
	hit, ok := s.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), core.Forward(0.001))
	if !ok {
		t.Fatal("Expected center ray to hit")
	}
	if math.Abs(hit.T-0.5) > 1e-9 {
		t.Errorf("Expected t=0.5, got %f", hit.T)
	}
	if _, isLambertian := hit.Material.(*material.Lambertian); !isLambertian {
		t.Errorf("Expected lambertian center sphere, got %T", hit.Material)
	}
}

func TestNewDefaultScene_CameraOverride(t *testing.T) {
	s, err := NewDefaultScene(geometry.CameraConfig{VFov: 40, AspectRatio: 1})
	if err != nil {
		t.Fatalf("NewDefaultScene: %v", err)
	}
	if s.CameraConfig.VFov != 40 {
		t.Errorf("Expected VFov override 40, got %f", s.CameraConfig.VFov)
	}
	if !s.CameraConfig.LookAt.Equals(core.NewVec3(0, 0, -1)) {
		t.Errorf("Expected default LookAt preserved, got %v", s.CameraConfig.LookAt)
	}
	if s.SamplingConfig.Height != s.SamplingConfig.Width {
		t.Errorf("Expected square image for aspect 1, got %dx%d", s.SamplingConfig.Width, s.SamplingConfig.Height)
	}
}

func TestNewRandomSpheresScene_Reproducible(t *testing.T) {
	a, err := NewRandomSpheresScene(7)
	if err != nil {
		t.Fatalf("NewRandomSpheresScene: %v", err)
	}
	b, err := NewRandomSpheresScene(7)
	if err != nil {
		t.Fatalf("NewRandomSpheresScene: %v", err)
	}

	// Ground, three large spheres and at most 22x22 small ones
	count := a.GetPrimitiveCount()
	if count < 4 || count > 4+22*22 {
		t.Fatalf("Unexpected sphere count %d", count)
	}
	if b.GetPrimitiveCount() != count {
		t.Fatalf("Same seed produced %d and %d spheres", count, b.GetPrimitiveCount())
	}

	shapesA, shapesB := a.Shapes.Shapes(), b.Shapes.Shapes()
	for i := range shapesA {
		sa := shapesA[i].(*geometry.Sphere)
		sb := shapesB[i].(*geometry.Sphere)
		if !sa.Center.Equals(sb.Center) || sa.Radius != sb.Radius {
			t.Fatalf("Sphere %d differs: %v/%f vs %v/%f", i, sa.Center, sa.Radius, sb.Center, sb.Radius)
		}
	}

	if a.SamplingConfig.Width != 1200 || a.SamplingConfig.SamplesPerPixel != 500 {
		t.Errorf("Unexpected sampling config %+v", a.SamplingConfig)
	}
}

func TestNewRandomSpheresScene_KeepsClearOfFeatureSphere(t *testing.T) {
	s, err := NewRandomSpheresScene(42)
	if err != nil {
		t.Fatalf("NewRandomSpheresScene: %v", err)
	}

	exclusion := core.NewVec3(4, 0.2, 0)
	for _, shape := range s.Shapes.Shapes() {
		sphere := shape.(*geometry.Sphere)
		if sphere.Radius != 0.2 {
			continue
		}
		if sphere.Center.Subtract(exclusion).Length() <= 0.9 {
			t.Errorf("Small sphere at %v too close to %v", sphere.Center, exclusion)
		}
		if sphere.Center.Y != 0.2 {
			t.Errorf("Small sphere at %v should rest on the ground", sphere.Center)
		}
	}
}

func TestByName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr error
	}{
		{"default", nil},
		{"random", nil},
		{"cornell", ErrUnknownScene},
		{"", ErrUnknownScene},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ByName(tt.name, 1)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected error %v, got %v", tt.wantErr, err)
			}
			if tt.wantErr == nil && s == nil {
				t.Error("Expected a scene")
			}
		})
	}
}

func TestListScenes(t *testing.T) {
	scenes := ListScenes()
	if len(scenes) != 2 {
		t.Fatalf("Expected 2 scenes, got %d", len(scenes))
	}
	if scenes[0].ID != "default" || scenes[1].ID != "random" {
		t.Errorf("Expected sorted IDs [default random], got [%s %s]", scenes[0].ID, scenes[1].ID)
	}
	for _, info := range scenes {
		if info.DisplayName == "" {
			t.Errorf("Scene %s has no display name", info.ID)
		}
	}
}

func TestHeightForWidth(t *testing.T) {
	tests := []struct {
		width    int
		aspect   float64
		expected int
	}{
		{400, 16.0 / 9.0, 225},
		{1200, 16.0 / 9.0, 675},
		{100, 1, 100},
		{1, 16.0 / 9.0, 1},
	}
	for _, tt := range tests {
		if got := HeightForWidth(tt.width, tt.aspect); got != tt.expected {
			t.Errorf("HeightForWidth(%d, %f) = %d, want %d", tt.width, tt.aspect, got, tt.expected)
		}
	}
}

func TestMergeSamplingConfig(t *testing.T) {
	merged := MergeSamplingConfig(DefaultSamplingConfig(), SamplingConfig{SamplesPerPixel: 10})
	expected := SamplingConfig{Width: 400, Height: 225, SamplesPerPixel: 10, MaxDepth: 50}
	if merged != expected {
		t.Errorf("Expected %+v, got %+v", expected, merged)
	}
}
