package loaders

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tlond/ray-tracing-weakend/pkg/core"
	"github.com/tlond/ray-tracing-weakend/pkg/geometry"
	"github.com/tlond/ray-tracing-weakend/pkg/material"
	"github.com/tlond/ray-tracing-weakend/pkg/scene"
)

// ErrInvalidSceneFile is returned for scene files that parse but describe an unusable scene
var ErrInvalidSceneFile = errors.New("invalid scene file")

// Vec3Cfg is a JSON [x, y, z] triple
type Vec3Cfg [3]float64

func (v Vec3Cfg) vec3() core.Vec3 { return core.NewVec3(v[0], v[1], v[2]) }

type CameraCfg struct {
	Center      Vec3Cfg  `json:"center"`
	LookAt      Vec3Cfg  `json:"lookAt"`
	Up          *Vec3Cfg `json:"up,omitempty"` // defaults to +Y
	VFov        float64  `json:"vfov"`
	AspectRatio float64  `json:"aspectRatio,omitempty"` // defaults to width/height
	Near        float64  `json:"near,omitempty"`
	Far         float64  `json:"far,omitempty"`
}

type ImageCfg struct {
	Width           int `json:"width,omitempty"`
	Height          int `json:"height,omitempty"` // derived from width and aspect when omitted
	SamplesPerPixel int `json:"samplesPerPixel,omitempty"`
	MaxDepth        int `json:"maxDepth,omitempty"`
}

// MaterialCfg describes one named material. Type is "lambertian", "metal" or "dielectric".
type MaterialCfg struct {
	Type   string  `json:"type"`
	Albedo Vec3Cfg `json:"albedo,omitempty"`
	Fuzz   float64 `json:"fuzz,omitempty"`
	IOR    float64 `json:"ior,omitempty"`
}

type SphereCfg struct {
	Center   Vec3Cfg `json:"center"`
	Radius   float64 `json:"radius"` // negative radius flips normals inward
	Material string  `json:"material"`
}

// SceneFile is the top-level JSON scene document
type SceneFile struct {
	Camera    CameraCfg              `json:"camera"`
	Image     ImageCfg               `json:"image"`
	Materials map[string]MaterialCfg `json:"materials"`
	Spheres   []SphereCfg            `json:"spheres"`
}

func (m MaterialCfg) Build() (material.Material, error) {
	switch m.Type {
	case "lambertian":
		return material.NewLambertian(m.Albedo.vec3()), nil
	case "metal":
		return material.NewMetal(m.Albedo.vec3(), m.Fuzz), nil
	case "dielectric":
		return material.NewDielectric(m.IOR)
	default:
		return nil, fmt.Errorf("unknown material type %q: %w", m.Type, ErrInvalidSceneFile)
	}
}

// LoadJSONScene reads a scene file. Spheres naming the same material share one instance.
func LoadJSONScene(path string) (*scene.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg SceneFile
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg.Build()
}

// Build turns a parsed scene file into a scene, applying defaults
func (cfg SceneFile) Build() (*scene.Scene, error) {
	sampling := scene.MergeSamplingConfig(scene.DefaultSamplingConfig(), scene.SamplingConfig{
		Width:           cfg.Image.Width,
		SamplesPerPixel: cfg.Image.SamplesPerPixel,
		MaxDepth:        cfg.Image.MaxDepth,
	})

	camera := geometry.CameraConfig{
		Center:      cfg.Camera.Center.vec3(),
		LookAt:      cfg.Camera.LookAt.vec3(),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        cfg.Camera.VFov,
		AspectRatio: cfg.Camera.AspectRatio,
		Near:        cfg.Camera.Near,
		Far:         cfg.Camera.Far,
	}
	if cfg.Camera.Up != nil {
		camera.Up = cfg.Camera.Up.vec3()
	}

	switch {
	case cfg.Image.Height > 0:
		sampling.Height = cfg.Image.Height
	case camera.AspectRatio > 0:
		sampling.Height = scene.HeightForWidth(sampling.Width, camera.AspectRatio)
	default:
		// Neither given: 16:9 frame, aspect derived from the image size by NewScene
		sampling.Height = scene.HeightForWidth(sampling.Width, 16.0/9.0)
	}

	s, err := scene.NewScene(camera, sampling)
	if err != nil {
		return nil, err
	}

	materials := make(map[string]material.Material, len(cfg.Materials))
	for name, mc := range cfg.Materials {
		mat, err := mc.Build()
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = mat
	}

	for i, sc := range cfg.Spheres {
		mat, ok := materials[sc.Material]
		if !ok {
			return nil, fmt.Errorf("sphere %d: undefined material %q: %w", i, sc.Material, ErrInvalidSceneFile)
		}
		if err := s.AddSphere(sc.Center.vec3(), sc.Radius, mat); err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
	}

	return s, nil
}
