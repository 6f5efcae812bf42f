package renderer

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/liamweeks/raytracer/pkg/core"
	"github.com/liamweeks/raytracer/pkg/output"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels       int           // Total number of pixels rendered
	TotalSamples      int           // Total number of samples taken
	SamplesPerPixel   int           // Samples taken per pixel
	MeanLuminance     float64       // Mean linear luminance over all pixels
	StdDevLuminance   float64       // Standard deviation of pixel luminance
	MeanPixelVariance float64       // Mean of the per-pixel sample luminance variance
	Duration          time.Duration // Wall time of the render

	luminances []float64
	variances  []float64
}

func newRenderStats(config SamplingConfig) RenderStats {
	return RenderStats{
		SamplesPerPixel: config.SamplesPerPixel,
		luminances:      make([]float64, 0, config.Width*config.Height),
		variances:       make([]float64, 0, config.Width*config.Height),
	}
}

func (s *RenderStats) addPixel(ps *PixelStats) {
	s.TotalPixels++
	s.TotalSamples += ps.SampleCount
	s.luminances = append(s.luminances, ps.GetColor().Luminance())
	s.variances = append(s.variances, ps.Variance())
}

func (s *RenderStats) finalize(elapsed time.Duration) {
	s.Duration = elapsed
	switch {
	case len(s.luminances) > 1:
		s.MeanLuminance, s.StdDevLuminance = stat.MeanStdDev(s.luminances, nil)
	case len(s.luminances) == 1:
		s.MeanLuminance = s.luminances[0]
	}
	if len(s.variances) > 0 {
		s.MeanPixelVariance = stat.Mean(s.variances, nil)
	}
	s.luminances = nil
	s.variances = nil
}

// PixelStats tracks sampling statistics for a single pixel
type PixelStats struct {
	ColorAccum       core.Color // RGB accumulator for final result
	LuminanceAccum   float64    // Luminance accumulator for convergence
	LuminanceSqAccum float64    // Luminance squared for variance
	SampleCount      int        // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Color) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	luminance := color.Luminance()
	ps.LuminanceAccum += luminance
	ps.LuminanceSqAccum += luminance * luminance
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Color {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.ColorAccum.Divide(float64(ps.SampleCount))
}

// Variance returns the sample variance of luminance, 0 with fewer than two samples
func (ps *PixelStats) Variance() float64 {
	if ps.SampleCount < 2 {
		return 0
	}
	n := float64(ps.SampleCount)
	mean := ps.LuminanceAccum / n
	return max(0, (ps.LuminanceSqAccum-n*mean*mean)/(n-1))
}

// CalculateAverageLuminance returns the mean luminance in [0,1] of 8-bit pixels,
// weighted as core.Vec3.Luminance
func CalculateAverageLuminance(pixels []output.Pixel) float64 {
	if len(pixels) == 0 {
		return 0
	}

	values := make([]float64, len(pixels))
	for i, p := range pixels {
		c := core.NewColor(float64(p.R), float64(p.G), float64(p.B)).Divide(output.MaxChannelValue)
		values[i] = c.Luminance()
	}
	return stat.Mean(values, nil)
}

// MeanAbsoluteDifference returns the mean per-channel absolute difference
// between two images of equal size given as raster-ordered pixels
func MeanAbsoluteDifference(a, b []output.Pixel) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("pixel count mismatch: %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, nil
	}

	diffs := make([]float64, 0, 3*len(a))
	for i := range a {
		diffs = append(diffs,
			absInt(a[i].R-b[i].R),
			absInt(a[i].G-b[i].G),
			absInt(a[i].B-b[i].B))
	}
	return stat.Mean(diffs, nil), nil
}

func absInt(v int) float64 {
	if v < 0 {
		return float64(-v)
	}
	return float64(v)
}
