package scene

import (
	"fmt"
	"sort"

	"github.com/liamweeks/raytracer/pkg/core"
	"github.com/liamweeks/raytracer/pkg/geometry"
	"github.com/liamweeks/raytracer/pkg/renderer"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id" yaml:"id"`
	DisplayName string `json:"displayName" yaml:"display_name"`
	Description string `json:"description" yaml:"description"`
}

type sceneEntry struct {
	info  SceneInfo
	build func(sampling ...renderer.SamplingConfig) *Scene
}

var builtinScenes = map[string]sceneEntry{
	"default": {
		info: SceneInfo{
			ID:          "default",
			DisplayName: "Sphere on Ground",
			Description: "Small sphere resting on a large ground sphere under a sky gradient",
		},
		build: NewDefaultScene,
	},
	"sky": {
		info: SceneInfo{
			ID:          "sky",
			DisplayName: "Empty Sky",
			Description: "No geometry; every ray shows the background gradient",
		},
		build: NewSkyScene,
	},
	"nested": {
		info: SceneInfo{
			ID:          "nested",
			DisplayName: "Nested Lists",
			Description: "Default spheres grouped in a nested hittable list",
		},
		build: NewNestedScene,
	},
}

// ListScenes returns the built-in scenes sorted by ID
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, entry := range builtinScenes {
		scenes = append(scenes, entry.info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// NewScene builds the built-in scene with the given ID
func NewScene(id string, sampling ...renderer.SamplingConfig) (*Scene, error) {
	entry, ok := builtinScenes[id]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q", id)
	}
	return entry.build(sampling...), nil
}

// NewSkyScene creates a scene with no geometry
func NewSkyScene(sampling ...renderer.SamplingConfig) *Scene {
	s := NewDefaultScene(sampling...)
	s.World.Clear()
	return s
}

// NewNestedScene creates the default scene with the small sphere inside a sub-list
func NewNestedScene(sampling ...renderer.SamplingConfig) *Scene {
	s := NewDefaultScene(sampling...)
	s.World.Clear()

	objects := geometry.NewHittableList(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5))
	s.World.Add(objects)
	s.AddSphere(core.NewVec3(0, -100.5, -1), 100)
	return s
}
