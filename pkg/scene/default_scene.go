package scene

import (
	"github.com/liamweeks/raytracer/pkg/core"
	"github.com/liamweeks/raytracer/pkg/geometry"
	"github.com/liamweeks/raytracer/pkg/renderer"
)

// NewDefaultScene creates the default scene: a small sphere resting on a large ground sphere.
// A sampling config, when given, is used as-is except that a zero Height is
// derived from Width at the camera aspect ratio.
func NewDefaultScene(sampling ...renderer.SamplingConfig) *Scene {
	camera := renderer.NewCamera()

	samplingConfig := renderer.DefaultSamplingConfig()
	if len(sampling) > 0 {
		samplingConfig = sampling[0]
	}
	if samplingConfig.Height == 0 {
		samplingConfig.Height = ImageHeight(samplingConfig.Width, camera.AspectRatio())
	}

	s := &Scene{
		Camera:         camera,
		World:          geometry.NewHittableList(),
		SamplingConfig: samplingConfig,
	}

	s.AddSphere(core.NewVec3(0, 0, -1), 0.5)
	s.AddSphere(core.NewVec3(0, -100.5, -1), 100)

	return s
}
