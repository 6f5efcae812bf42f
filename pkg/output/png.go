package output

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
)

// RGBASink collects pixels into an in-memory image
type RGBASink struct {
	img    *image.RGBA
	raster raster
}

// NewRGBASink creates an empty in-memory sink
func NewRGBASink() *RGBASink {
	return &RGBASink{}
}

// WriteHeader allocates the image
func (s *RGBASink) WriteHeader(width, height, maxValue int) error {
	if err := s.raster.begin(width, height, maxValue); err != nil {
		return err
	}
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
	return nil
}

// WritePixel stores the next pixel in raster order
func (s *RGBASink) WritePixel(p Pixel) error {
	x, y, err := s.raster.next(p)
	if err != nil {
		return err
	}
	s.img.SetRGBA(x, y, color.RGBA{R: uint8(p.R), G: uint8(p.G), B: uint8(p.B), A: 255})
	return nil
}

// Close reports whether the image is complete
func (s *RGBASink) Close() error {
	if !s.raster.complete() {
		return ErrIncompleteImage
	}
	return nil
}

// Image returns the collected image, nil before WriteHeader
func (s *RGBASink) Image() *image.RGBA {
	return s.img
}

// PNGWriter collects pixels and encodes them as PNG on Close
type PNGWriter struct {
	RGBASink
	w io.Writer
}

// NewPNGWriter creates a PNG sink on w. If w is an io.Closer it is closed by Close.
func NewPNGWriter(w io.Writer) *PNGWriter {
	return &PNGWriter{w: w}
}

// Close encodes the image and closes the underlying writer
func (p *PNGWriter) Close() error {
	var errs []error
	if err := p.RGBASink.Close(); err != nil {
		errs = append(errs, err)
	} else if err := png.Encode(p.w, p.img); err != nil {
		errs = append(errs, fmt.Errorf("failed to encode PNG: %w", err))
	}
	if c, ok := p.w.(io.Closer); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
