package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MaxChannelValue is the largest value a pixel channel may take
const MaxChannelValue = 255

// Pixel is a displayable color with integer channels in [0, MaxChannelValue]
type Pixel struct {
	R, G, B int
}

// Valid reports whether every channel is in range
func (p Pixel) Valid() bool {
	return inChannelRange(p.R) && inChannelRange(p.G) && inChannelRange(p.B)
}

func inChannelRange(v int) bool {
	return v >= 0 && v <= MaxChannelValue
}

// ImageSink receives a raster image: one header, then exactly width*height
// pixels in scanline order top-to-bottom, left-to-right.
type ImageSink interface {
	WriteHeader(width, height, maxValue int) error
	WritePixel(p Pixel) error
	Close() error
}

var (
	ErrHeaderWritten   = errors.New("header already written")
	ErrNoHeader        = errors.New("pixel written before header")
	ErrTooManyPixels   = errors.New("more pixels than declared by header")
	ErrIncompleteImage = errors.New("image closed before all pixels were written")
)

// raster tracks header and pixel-count bookkeeping shared by every sink
type raster struct {
	width, height int
	written       int
	started       bool
}

func (r *raster) begin(width, height, maxValue int) error {
	if r.started {
		return ErrHeaderWritten
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", width, height)
	}
	if maxValue != MaxChannelValue {
		return fmt.Errorf("unsupported max channel value %d", maxValue)
	}
	r.width, r.height, r.started = width, height, true
	return nil
}

// next validates p and returns its (x, y) position in the raster
func (r *raster) next(p Pixel) (x, y int, err error) {
	if !r.started {
		return 0, 0, ErrNoHeader
	}
	if r.written >= r.width*r.height {
		return 0, 0, ErrTooManyPixels
	}
	if !p.Valid() {
		return 0, 0, fmt.Errorf("pixel %v out of range [0, %d]", p, MaxChannelValue)
	}
	x, y = r.written%r.width, r.written/r.width
	r.written++
	return x, y, nil
}

func (r *raster) complete() bool {
	return r.started && r.written == r.width*r.height
}

// Create opens path and returns a sink chosen by the file extension:
// .ppm and .txt produce plain PPM, .png produces PNG.
func Create(path string) (ImageSink, error) {
	ext, err := formatOf(path)
	if err != nil {
		return nil, err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	if ext == ".png" {
		return NewPNGWriter(file), nil
	}
	return NewPPMWriter(file), nil
}

func formatOf(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".ppm", ".txt", ".png":
		return ext, nil
	}
	return "", fmt.Errorf("unsupported output format %q for %s", ext, path)
}

// CreateAll opens every path and fans out to all of them.
// Every extension is checked before any file is created; if opening a
// later path fails, the files already created are removed.
func CreateAll(paths []string) (ImageSink, error) {
	for _, path := range paths {
		if _, err := formatOf(path); err != nil {
			return nil, err
		}
	}

	sinks := make([]ImageSink, 0, len(paths))
	for _, path := range paths {
		sink, err := Create(path)
		if err != nil {
			var errs []error
			for j, s := range sinks {
				// Closing an unwritten sink always reports ErrIncompleteImage
				if cerr := s.Close(); cerr != nil && !errors.Is(cerr, ErrIncompleteImage) {
					errs = append(errs, cerr)
				}
				if rerr := os.Remove(paths[j]); rerr != nil {
					errs = append(errs, rerr)
				}
			}
			return nil, errors.Join(append([]error{err}, errs...)...)
		}
		sinks = append(sinks, sink)
	}
	return NewMultiSink(sinks...), nil
}
