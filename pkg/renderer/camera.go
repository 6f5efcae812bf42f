package renderer

import (
	"github.com/liamweeks/raytracer/pkg/core"
)

// CameraConfig holds the scalar parameters of a pinhole camera
type CameraConfig struct {
	AspectRatio    float64     // Viewport width / height
	ViewportHeight float64     // Height of the image plane in world units
	FocalLength    float64     // Distance from origin to the image plane along -Z
	Origin         core.Point3 // Eye position
}

// DefaultCameraConfig returns the fixed 16:9 camera at the world origin
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		AspectRatio:    16.0 / 9.0,
		ViewportHeight: 2.0,
		FocalLength:    1.0,
		Origin:         core.NewVec3(0, 0, 0),
	}
}

// Camera generates rays for rendering. Immutable after construction.
type Camera struct {
	aspectRatio     float64
	viewportHeight  float64
	viewportWidth   float64
	focalLength     float64
	origin          core.Point3
	lowerLeftCorner core.Point3
	horizontal      core.Vec3
	vertical        core.Vec3
}

// NewCamera creates the default pinhole camera
func NewCamera() *Camera {
	return NewCameraFromConfig(DefaultCameraConfig())
}

// NewCameraFromConfig creates a pinhole camera looking down -Z
func NewCameraFromConfig(config CameraConfig) *Camera {
	viewportWidth := config.AspectRatio * config.ViewportHeight

	origin := config.Origin
	horizontal := core.NewVec3(viewportWidth, 0, 0)
	vertical := core.NewVec3(0, config.ViewportHeight, 0)
	lowerLeftCorner := origin.Subtract(horizontal.Divide(2)).
		Subtract(vertical.Divide(2)).
		Subtract(core.NewVec3(0, 0, config.FocalLength))

	return &Camera{
		aspectRatio:     config.AspectRatio,
		viewportHeight:  config.ViewportHeight,
		viewportWidth:   viewportWidth,
		focalLength:     config.FocalLength,
		origin:          origin,
		horizontal:      horizontal,
		vertical:        vertical,
		lowerLeftCorner: lowerLeftCorner,
	}
}

// GetRay generates a ray for image-plane coordinates (u, v) where 0 <= u,v <= 1.
// (0,0) is the lower-left corner of the viewport, (1,1) the upper-right.
func (c *Camera) GetRay(u, v float64) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(u)).
		Add(c.vertical.Multiply(v)).
		Subtract(c.origin)

	return core.NewRay(c.origin, direction)
}

// AspectRatio returns the viewport width / height
func (c *Camera) AspectRatio() float64 {
	return c.aspectRatio
}
