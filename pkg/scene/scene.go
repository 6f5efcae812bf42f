package scene

import (
	"github.com/liamweeks/raytracer/pkg/core"
	"github.com/liamweeks/raytracer/pkg/geometry"
	"github.com/liamweeks/raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera         *renderer.Camera
	World          *geometry.HittableList // Objects in the scene
	SamplingConfig renderer.SamplingConfig
}

// GetCamera implements renderer.Scene
func (s *Scene) GetCamera() *renderer.Camera {
	return s.Camera
}

// GetWorld implements renderer.Scene
func (s *Scene) GetWorld() geometry.Shape {
	return s.World
}

// AddSphere adds a sphere to the scene
func (s *Scene) AddSphere(center core.Point3, radius float64) {
	s.World.Add(geometry.NewSphere(center, radius))
}

// GetPrimitiveCount returns the number of top-level objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.World.Len()
}

// ImageHeight returns the height matching width at the given aspect ratio
func ImageHeight(width int, aspectRatio float64) int {
	return int(float64(width) / aspectRatio)
}
