package renderer

import (
	"math"
	"testing"

	"github.com/liamweeks/raytracer/pkg/core"
)

func TestNewCamera_DerivedValues(t *testing.T) {
	camera := NewCamera()

	if math.Abs(camera.AspectRatio()-16.0/9.0) > 1e-12 {
		t.Errorf("Expected 16:9 aspect ratio, got %f", camera.AspectRatio())
	}

	lowerLeft := camera.GetRay(0, 0)
	if lowerLeft.Origin != core.NewVec3(0, 0, 0) {
		t.Errorf("Expected origin at world origin, got %v", lowerLeft.Origin)
	}

	expectedCorner := core.NewVec3(-16.0/9.0, -1, -1)
	if lowerLeft.Direction.Subtract(expectedCorner).Length() > 1e-12 {
		t.Errorf("Expected lower-left corner %v, got %v", expectedCorner, lowerLeft.Direction)
	}

	viewportWidth := camera.GetRay(1, 0).Direction.Subtract(lowerLeft.Direction).Length()
	if math.Abs(viewportWidth-32.0/9.0) > 1e-12 {
		t.Errorf("Expected viewport width 32/9, got %f", viewportWidth)
	}
	viewportHeight := camera.GetRay(0, 1).Direction.Subtract(lowerLeft.Direction).Length()
	if math.Abs(viewportHeight-2.0) > 1e-12 {
		t.Errorf("Expected viewport height 2, got %f", viewportHeight)
	}
	if focalLength := -camera.GetRay(0.5, 0.5).Direction.Z; focalLength != 1.0 {
		t.Errorf("Expected focal length 1, got %f", focalLength)
	}
}

func TestCamera_GetRayCorners(t *testing.T) {
	camera := NewCamera()
	halfWidth := 16.0 / 9.0

	tests := []struct {
		name      string
		u, v      float64
		direction core.Vec3
	}{
		{"lower left", 0, 0, core.NewVec3(-halfWidth, -1, -1)},
		{"lower right", 1, 0, core.NewVec3(halfWidth, -1, -1)},
		{"upper left", 0, 1, core.NewVec3(-halfWidth, 1, -1)},
		{"upper right", 1, 1, core.NewVec3(halfWidth, 1, -1)},
		{"center", 0.5, 0.5, core.NewVec3(0, 0, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.u, tt.v)
			if ray.Origin != core.NewVec3(0, 0, 0) {
				t.Errorf("Expected ray origin at world origin, got %v", ray.Origin)
			}
			if ray.Direction.Subtract(tt.direction).Length() > 1e-12 {
				t.Errorf("Expected direction %v, got %v", tt.direction, ray.Direction)
			}
		})
	}
}

func TestCamera_CornerRaysNotParallel(t *testing.T) {
	camera := NewCamera()
	corners := []core.Ray{
		camera.GetRay(0, 0),
		camera.GetRay(1, 0),
		camera.GetRay(0, 1),
		camera.GetRay(1, 1),
	}

	for i := range corners {
		for j := i + 1; j < len(corners); j++ {
			cross := corners[i].Direction.Normalize().Cross(corners[j].Direction.Normalize())
			if cross.Length() < 1e-6 {
				t.Errorf("Corner rays %d and %d are parallel", i, j)
			}
		}
	}
}

func TestCamera_GetRayBeyondUnitRange(t *testing.T) {
	camera := NewCamera()

	// Jittered samples on the last column can land slightly past u = 1
	ray := camera.GetRay(1.002, 0.5)
	if ray.Direction.X <= 16.0/9.0 {
		t.Errorf("Expected direction past the right edge, got %v", ray.Direction)
	}
}

func TestNewCameraFromConfig(t *testing.T) {
	config := CameraConfig{
		AspectRatio:    1.0,
		ViewportHeight: 4.0,
		FocalLength:    2.0,
		Origin:         core.NewVec3(1, 2, 3),
	}
	camera := NewCameraFromConfig(config)

	center := camera.GetRay(0.5, 0.5)
	expected := core.NewVec3(0, 0, -2)
	if center.Direction.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected center direction %v, got %v", expected, center.Direction)
	}
	if center.Origin != config.Origin {
		t.Errorf("Expected origin %v, got %v", config.Origin, center.Origin)
	}

	corner := camera.GetRay(1, 1).Direction
	if corner.Subtract(core.NewVec3(2, 2, -2)).Length() > 1e-12 {
		t.Errorf("Unexpected upper-right direction %v", corner)
	}
}
