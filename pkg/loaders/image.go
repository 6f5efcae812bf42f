package loaders

import (
	"bufio"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/liamweeks/raytracer/pkg/output"
)

// ImageData contains a loaded image as 8-bit pixels in raster order (top row first)
type ImageData struct {
	Width  int
	Height int
	Pixels []output.Pixel
}

// LoadImage loads a PPM (P3), PNG or JPEG image.
// Files ending in .ppm or .txt are read as plain PPM.
func LoadImage(filename string) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".ppm", ".txt":
		data, err := ReadPPM(file)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
		}
		return data, nil
	}

	// Decode image (auto-detects PNG/JPEG from file header)
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return FromImage(img), nil
}

// FromImage converts a decoded image to 8-bit pixels
func FromImage(img image.Image) *ImageData {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]output.Pixel, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535]
			pixels[y*width+x] = output.Pixel{R: int(r >> 8), G: int(g >> 8), B: int(b >> 8)}
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// ReadPPM parses a plain-text P3 image. Values are rescaled to 0..255
// when the header declares a different maximum.
func ReadPPM(r io.Reader) (*ImageData, error) {
	var tokens []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		tokens = append(tokens, strings.Fields(line)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	pos := 0
	next := func() (string, bool) {
		if pos >= len(tokens) {
			return "", false
		}
		pos++
		return tokens[pos-1], true
	}
	nextInt := func(what string) (int, error) {
		tok, ok := next()
		if !ok {
			return 0, fmt.Errorf("unexpected end of data reading %s", what)
		}
		v, err := strconv.Atoi(tok)
		if err != nil {
			return 0, fmt.Errorf("invalid %s %q", what, tok)
		}
		return v, nil
	}

	magic, ok := next()
	if !ok || magic != "P3" {
		return nil, fmt.Errorf("expected P3 header, got %q", magic)
	}

	width, err := nextInt("width")
	if err != nil {
		return nil, err
	}
	height, err := nextInt("height")
	if err != nil {
		return nil, err
	}
	maxVal, err := nextInt("max value")
	if err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 || maxVal <= 0 {
		return nil, fmt.Errorf("invalid header %dx%d max %d", width, height, maxVal)
	}
	// Written as a division so huge dimensions cannot overflow
	if width > (len(tokens)-pos)/3/height {
		return nil, fmt.Errorf("header declares %dx%d pixels but only %d values follow", width, height, len(tokens)-pos)
	}

	pixels := make([]output.Pixel, width*height)
	scale := func(v int) int {
		if maxVal == output.MaxChannelValue {
			return v
		}
		return v * output.MaxChannelValue / maxVal
	}
	for i := range pixels {
		var rgb [3]int
		for c := range rgb {
			v, err := nextInt("pixel value")
			if err != nil {
				return nil, fmt.Errorf("pixel %d: %w", i, err)
			}
			if v < 0 || v > maxVal {
				return nil, fmt.Errorf("pixel %d: value %d outside 0..%d", i, v, maxVal)
			}
			rgb[c] = scale(v)
		}
		pixels[i] = output.Pixel{R: rgb[0], G: rgb[1], B: rgb[2]}
	}

	if pos != len(tokens) {
		return nil, fmt.Errorf("%d trailing values after %d pixels", len(tokens)-pos, len(pixels))
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}, nil
}
