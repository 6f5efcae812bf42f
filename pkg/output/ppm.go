package output

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// PPMWriter writes plain-text (P3) PPM images
type PPMWriter struct {
	w      *bufio.Writer
	closer io.Closer
	raster raster
}

// NewPPMWriter creates a PPM sink on w. If w is an io.Closer it is closed by Close.
func NewPPMWriter(w io.Writer) *PPMWriter {
	p := &PPMWriter{w: bufio.NewWriter(w)}
	if c, ok := w.(io.Closer); ok {
		p.closer = c
	}
	return p
}

// WriteHeader writes the P3 magic, the image size and the max channel value
func (p *PPMWriter) WriteHeader(width, height, maxValue int) error {
	if err := p.raster.begin(width, height, maxValue); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(p.w, "P3\n%d %d\n%d\n", width, height, maxValue); err != nil {
		return fmt.Errorf("failed to write PPM header: %w", err)
	}
	return nil
}

// WritePixel writes one "R G B" line
func (p *PPMWriter) WritePixel(px Pixel) error {
	if _, _, err := p.raster.next(px); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(p.w, "%d %d %d\n", px.R, px.G, px.B); err != nil {
		return fmt.Errorf("failed to write PPM pixel: %w", err)
	}
	return nil
}

// Close flushes buffered output and closes the underlying writer
func (p *PPMWriter) Close() error {
	var errs []error
	if !p.raster.complete() {
		errs = append(errs, ErrIncompleteImage)
	}
	if err := p.w.Flush(); err != nil {
		errs = append(errs, fmt.Errorf("failed to flush PPM output: %w", err))
	}
	if p.closer != nil {
		if err := p.closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
