package scene

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownScene is returned when a scene name is not registered
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo represents a built-in scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
}

type sceneFactory func(seed int64) (*Scene, error)

type registeredScene struct {
	info    SceneInfo
	factory sceneFactory
}

var builtinScenes = map[string]registeredScene{
	"default": {
		info: SceneInfo{
			ID:          "default",
			DisplayName: "Three Spheres",
			Description: "Diffuse, hollow glass and gold spheres on a yellow ground",
		},
		factory: func(int64) (*Scene, error) { return NewDefaultScene() },
	},
	"random": {
		info: SceneInfo{
			ID:          "random",
			DisplayName: "Random Spheres",
			Description: "Several hundred small random spheres around three large ones",
		},
		factory: func(seed int64) (*Scene, error) { return NewRandomSpheresScene(seed) },
	},
}

// ListScenes returns the built-in scenes sorted by ID
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, registered := range builtinScenes {
		scenes = append(scenes, registered.info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// ByName builds a built-in scene. seed drives procedural placement where the scene has any.
func ByName(name string, seed int64) (*Scene, error) {
	registered, ok := builtinScenes[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownScene)
	}
	return registered.factory(seed)
}
