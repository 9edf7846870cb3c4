package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tlond/ray-tracing-weakend/pkg/core"
)

// ErrDegenerateCamera is returned when a camera configuration cannot produce an orthonormal basis
// or a finite projection
var ErrDegenerateCamera = errors.New("degenerate camera configuration")

const (
	// DefaultNear is the near plane distance used when CameraConfig.Near is zero
	DefaultNear = 0.1
	// DefaultFar is the far plane distance used when CameraConfig.Far is zero
	DefaultFar = 100.0

	parallelEpsilon = 1e-9
)

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	Center      core.Vec3 // Camera position in world space
	LookAt      core.Vec3 // Point the camera looks at
	Up          core.Vec3 // Up hint, must not be parallel to the view direction
	VFov        float64   // Vertical field of view in degrees, in (0, 180)
	AspectRatio float64   // Width / height
	Near        float64   // Near plane distance (0 = DefaultNear)
	Far         float64   // Far plane distance (0 = DefaultFar)
}

// Camera turns screen-space points into rays using an inverse projection matrix and a
// camera-to-world transform
type Camera struct {
	config CameraConfig

	position core.Vec3
	right    core.Vec3
	up       core.Vec3
	forward  core.Vec3

	tanHalfFov        float64
	inverseProjection mgl64.Mat4
	worldToCamera     mgl64.Mat4
	cameraToWorld     mgl64.Mat4
}

// NewCamera creates a camera, rejecting degenerate configurations
func NewCamera(config CameraConfig) (*Camera, error) {
	if config.Near == 0 {
		config.Near = DefaultNear
	}
	if config.Far == 0 {
		config.Far = DefaultFar
	}
	if err := validateProjection(config); err != nil {
		return nil, err
	}

	c := &Camera{config: config}
	c.tanHalfFov = math.Tan(0.5 * mgl64.DegToRad(config.VFov))
	c.inverseProjection = inverseProjection(config.Near, config.Far, config.AspectRatio, c.tanHalfFov)

	if err := c.LookAt(config.Center, config.LookAt, config.Up); err != nil {
		return nil, err
	}
	return c, nil
}

func validateProjection(config CameraConfig) error {
	switch {
	case !(config.VFov > 0 && config.VFov < 180):
		return fmt.Errorf("field of view %g outside (0, 180): %w", config.VFov, ErrDegenerateCamera)
	case !(config.AspectRatio > 0) || math.IsInf(config.AspectRatio, 1):
		return fmt.Errorf("aspect ratio %g: %w", config.AspectRatio, ErrDegenerateCamera)
	case !finite(config.Near) || !finite(config.Far):
		return fmt.Errorf("clip planes %g, %g not finite: %w", config.Near, config.Far, ErrDegenerateCamera)
	case !(config.Near > 0):
		return fmt.Errorf("near plane %g: %w", config.Near, ErrDegenerateCamera)
	case !(config.Far > config.Near):
		return fmt.Errorf("far plane %g not beyond near plane %g: %w", config.Far, config.Near, ErrDegenerateCamera)
	}
	return nil
}

// inverseProjection maps a homogeneous NDC point (x, y, 0, 1) to a camera-space direction
// (before the perspective divide). n and f are positive distances.
func inverseProjection(n, f, aspect, tanHalfFov float64) mgl64.Mat4 {
	r := n * aspect * tanHalfFov
	t := n * tanHalfFov

	var m mgl64.Mat4
	m.Set(0, 0, f*r)
	m.Set(1, 1, f*t)
	m.Set(2, 3, -(f * n))
	m.Set(3, 2, (n-f)/2)
	m.Set(3, 3, (n+f)/2)
	return m
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// LookAt reorients the camera and recomputes its transforms
func (c *Camera) LookAt(eye, target, upHint core.Vec3) error {
	for _, v := range []core.Vec3{eye, target, upHint} {
		if !finite(v.X) || !finite(v.Y) || !finite(v.Z) {
			return fmt.Errorf("non-finite camera vector %v: %w", v, ErrDegenerateCamera)
		}
	}
	view := target.Subtract(eye)
	if view.NearZero(parallelEpsilon) {
		return fmt.Errorf("eye %v equals target: %w", eye, ErrDegenerateCamera)
	}
	forward := view.Normalize()

	rightRaw := upHint.Cross(forward.Negate())
	if rightRaw.Length() < parallelEpsilon*math.Max(1, upHint.Length()) {
		return fmt.Errorf("up %v parallel to view direction %v: %w", upHint, forward, ErrDegenerateCamera)
	}
	right := rightRaw.Normalize()
	up := forward.Negate().Cross(right)

	c.position = eye
	c.forward = forward
	c.right = right
	c.up = up
	c.config.Center = eye
	c.config.LookAt = target
	c.config.Up = upHint

	c.updateMatrices()
	return nil
}

func (c *Camera) updateMatrices() {
	back := c.forward.Negate()
	rotation := mgl64.Mat4FromRows(
		mgl64.Vec4{c.right.X, c.right.Y, c.right.Z, 0},
		mgl64.Vec4{c.up.X, c.up.Y, c.up.Z, 0},
		mgl64.Vec4{back.X, back.Y, back.Z, 0},
		mgl64.Vec4{0, 0, 0, 1},
	)

	p := c.position
	c.worldToCamera = rotation.Mul4(mgl64.Translate3D(-p.X, -p.Y, -p.Z))
	// The basis is orthonormal so the transpose is the inverse rotation
	c.cameraToWorld = mgl64.Translate3D(p.X, p.Y, p.Z).Mul4(rotation.Transpose())
}

// GenerateRay returns a camera-space ray through the screen point (ndcX, ndcY) in [-1,1]²
func (c *Camera) GenerateRay(ndcX, ndcY float64) core.Ray {
	v := c.inverseProjection.Mul4x1(mgl64.Vec4{ndcX, ndcY, 0, 1})
	v = v.Mul(1 / v.W())
	direction := core.NewVec3(v.X(), v.Y(), v.Z()).Normalize()
	return core.NewRay(core.NewVec3(0, 0, 0), direction)
}

// GenerateWorldRay returns a world-space ray from the camera position through a screen point
func (c *Camera) GenerateWorldRay(point core.Vec2) core.Ray {
	cameraRay := c.GenerateRay(point.X, point.Y)
	return core.NewRay(c.position, c.ToWorld(cameraRay.Direction))
}

// ToWorld rotates a camera-space direction into world space and normalizes it
func (c *Camera) ToWorld(direction core.Vec3) core.Vec3 {
	v := c.cameraToWorld.Mul4x1(mgl64.Vec4{direction.X, direction.Y, direction.Z, 0})
	return core.NewVec3(v.X(), v.Y(), v.Z()).Normalize()
}

// WorldToCamera transforms a world-space point into camera space
func (c *Camera) WorldToCamera(point core.Vec3) core.Vec3 {
	v := c.worldToCamera.Mul4x1(mgl64.Vec4{point.X, point.Y, point.Z, 1})
	return core.NewVec3(v.X(), v.Y(), v.Z())
}

// ProjectToNDC returns the screen point whose ray passes through a world-space point.
// Points at or behind the camera plane report false.
func (c *Camera) ProjectToNDC(point core.Vec3) (core.Vec2, bool) {
	q := c.WorldToCamera(point)
	depth := -q.Z
	if depth <= 0 {
		return core.Vec2{}, false
	}
	return core.NewVec2(
		q.X/depth/(c.config.AspectRatio*c.tanHalfFov),
		q.Y/depth/c.tanHalfFov,
	), true
}

// Position returns the camera position in world space
func (c *Camera) Position() core.Vec3 { return c.position }

// Forward returns the unit view direction
func (c *Camera) Forward() core.Vec3 { return c.forward }

// Right returns the unit right vector of the camera basis
func (c *Camera) Right() core.Vec3 { return c.right }

// Up returns the unit up vector of the camera basis
func (c *Camera) Up() core.Vec3 { return c.up }

// Config returns the effective configuration, defaults applied
func (c *Camera) Config() CameraConfig { return c.config }

// MergeCameraConfig returns base with every non-zero field of override applied
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	merged := base
	zero := core.Vec3{}
	if override.Center != zero {
		merged.Center = override.Center
	}
	if override.LookAt != zero {
		merged.LookAt = override.LookAt
	}
	if override.Up != zero {
		merged.Up = override.Up
	}
	if override.VFov != 0 {
		merged.VFov = override.VFov
	}
	if override.AspectRatio != 0 {
		merged.AspectRatio = override.AspectRatio
	}
	if override.Near != 0 {
		merged.Near = override.Near
	}
	if override.Far != 0 {
		merged.Far = override.Far
	}
	return merged
}
