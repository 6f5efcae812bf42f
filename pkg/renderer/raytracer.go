package renderer

import (
	"fmt"
	"image"
	"math"
	"time"

	"github.com/liamweeks/raytracer/pkg/core"
	"github.com/liamweeks/raytracer/pkg/geometry"
	"github.com/liamweeks/raytracer/pkg/output"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int     // Image width
	Height          int     // Image height
	SamplesPerPixel int     // Number of rays per pixel
	MaxDepth        int     // Maximum ray bounce depth
	MinHitDistance  float64 // Lower t bound for intersections; 0 accepts hits at the ray origin
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		MinHitDistance:  0.001,
	}
}

// Validate checks that the configuration can drive a render
func (c SamplingConfig) Validate() error {
	if c.Width < 2 || c.Height < 2 {
		return fmt.Errorf("image must be at least 2x2, got %dx%d", c.Width, c.Height)
	}
	if c.SamplesPerPixel < 1 {
		return fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel)
	}
	if c.MaxDepth < 1 {
		return fmt.Errorf("max depth must be positive, got %d", c.MaxDepth)
	}
	if c.MinHitDistance < 0 {
		return fmt.Errorf("min hit distance must not be negative, got %f", c.MinHitDistance)
	}
	return nil
}

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *Camera
	GetWorld() geometry.Shape
}

var (
	skyWhite = core.NewColor(1.0, 1.0, 1.0)
	skyBlue  = core.NewColor(0.5, 0.7, 1.0)
	black    = core.NewColor(0, 0, 0)
)

// attenuation is the fraction of light kept at every diffuse bounce
const attenuation = 0.5

// Raytracer handles the rendering process
type Raytracer struct {
	scene   Scene
	config  SamplingConfig
	sampler core.Sampler
	logger  core.Logger
}

// NewRaytracer creates a new raytracer drawing random numbers from sampler
func NewRaytracer(scene Scene, config SamplingConfig, sampler core.Sampler) *Raytracer {
	return &Raytracer{
		scene:   scene,
		config:  config,
		sampler: sampler,
		logger:  core.NopLogger{},
	}
}

// SetLogger sets where progress is reported
func (rt *Raytracer) SetLogger(logger core.Logger) {
	rt.logger = logger
}

// Config returns the sampling configuration
func (rt *Raytracer) Config() SamplingConfig {
	return rt.config
}

// backgroundGradient returns a gradient color based on ray direction
func backgroundGradient(r core.Ray) core.Color {
	unitDirection := r.Direction.Normalize()

	// Use the y-component to create a gradient (map from -1,1 to 0,1)
	t := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-t)*white + t*blue
	return skyWhite.Multiply(1.0 - t).Add(skyBlue.Multiply(t))
}

// RayColor returns the color seen along r
func (rt *Raytracer) RayColor(r core.Ray) core.Color {
	return rt.rayColorRecursive(r, rt.config.MaxDepth)
}

// rayColorRecursive returns the color for a given ray, bouncing diffusely off every hit
func (rt *Raytracer) rayColorRecursive(r core.Ray, depth int) core.Color {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return black
	}

	hit, isHit := rt.scene.GetWorld().Hit(r, rt.config.MinHitDistance, math.Inf(1))
	if !isHit {
		return backgroundGradient(r)
	}

	target := hit.Point.Add(hit.Normal).Add(core.RandomInUnitSphere(rt.sampler))
	bounced := core.NewRay(hit.Point, target.Subtract(hit.Point))
	return rt.rayColorRecursive(bounced, depth-1).Multiply(attenuation)
}

// SamplePixel averages SamplesPerPixel jittered rays through pixel (i, j).
// j counts scanlines from the bottom of the image.
func (rt *Raytracer) SamplePixel(i, j int) core.Color {
	var ps PixelStats
	rt.samplePixel(i, j, &ps)
	return ps.GetColor()
}

func (rt *Raytracer) samplePixel(i, j int, ps *PixelStats) {
	camera := rt.scene.GetCamera()
	width := float64(rt.config.Width - 1)
	height := float64(rt.config.Height - 1)

	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		u := (float64(i) + rt.sampler.Get1D()) / width
		v := (float64(j) + rt.sampler.Get1D()) / height
		ps.AddSample(rt.RayColor(camera.GetRay(u, v)))
	}
}

// ToPixel converts a linear color to a displayable pixel. No gamma is applied.
func ToPixel(c core.Color) output.Pixel {
	c = c.Clamp(0.0, 0.999)
	return output.Pixel{
		R: int(256 * c.X),
		G: int(256 * c.Y),
		B: int(256 * c.Z),
	}
}

// Render writes the whole image to sink, top scanline first, and closes it
func (rt *Raytracer) Render(sink output.ImageSink) (RenderStats, error) {
	if err := rt.config.Validate(); err != nil {
		return RenderStats{}, err
	}

	start := time.Now()
	stats := newRenderStats(rt.config)

	if err := sink.WriteHeader(rt.config.Width, rt.config.Height, output.MaxChannelValue); err != nil {
		_ = sink.Close()
		return stats, err
	}

	for j := rt.config.Height - 1; j >= 0; j-- {
		rt.logger.Printf("Scanlines remaining: %d", j)
		for i := 0; i < rt.config.Width; i++ {
			var ps PixelStats
			rt.samplePixel(i, j, &ps)
			stats.addPixel(&ps)

			if err := sink.WritePixel(ToPixel(ps.GetColor())); err != nil {
				_ = sink.Close()
				return stats, fmt.Errorf("failed to write pixel (%d, %d): %w", i, j, err)
			}
		}
	}

	if err := sink.Close(); err != nil {
		return stats, err
	}

	stats.finalize(time.Since(start))
	rt.logger.Printf("Done in %v", stats.Duration)
	return stats, nil
}

// RenderImage renders into an in-memory image
func (rt *Raytracer) RenderImage() (*image.RGBA, RenderStats, error) {
	sink := output.NewRGBASink()
	stats, err := rt.Render(sink)
	if err != nil {
		return nil, stats, err
	}
	return sink.Image(), stats, nil
}
