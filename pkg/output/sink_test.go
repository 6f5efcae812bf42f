package output

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestPPMWriter_Format(t *testing.T) {
	var buf bytes.Buffer
	w := NewPPMWriter(&buf)

	if err := w.WriteHeader(2, 1, 255); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}
	for _, p := range []Pixel{{255, 0, 10}, {0, 128, 255}} {
		if err := w.WritePixel(p); err != nil {
			t.Fatalf("WritePixel: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	expected := "P3\n2 1\n255\n255 0 10\n0 128 255\n"
	if buf.String() != expected {
		t.Errorf("Expected %q, got %q", expected, buf.String())
	}
}

func TestPPMWriter_Errors(t *testing.T) {
	tests := []struct {
		name    string
		run     func(w *PPMWriter) error
		wantErr error
	}{
		{
			name:    "pixel before header",
			run:     func(w *PPMWriter) error { return w.WritePixel(Pixel{}) },
			wantErr: ErrNoHeader,
		},
		{
			name: "header twice",
			run: func(w *PPMWriter) error {
				_ = w.WriteHeader(1, 1, 255)
				return w.WriteHeader(1, 1, 255)
			},
			wantErr: ErrHeaderWritten,
		},
		{
			name: "too many pixels",
			run: func(w *PPMWriter) error {
				_ = w.WriteHeader(1, 1, 255)
				_ = w.WritePixel(Pixel{})
				return w.WritePixel(Pixel{})
			},
			wantErr: ErrTooManyPixels,
		},
		{
			name: "incomplete image",
			run: func(w *PPMWriter) error {
				_ = w.WriteHeader(2, 2, 255)
				return w.Close()
			},
			wantErr: ErrIncompleteImage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewPPMWriter(&bytes.Buffer{})
			if err := tt.run(w); !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestPPMWriter_RejectsOutOfRangePixel(t *testing.T) {
	w := NewPPMWriter(&bytes.Buffer{})
	if err := w.WriteHeader(1, 1, 255); err != nil {
		t.Fatal(err)
	}
	if err := w.WritePixel(Pixel{R: 256}); err == nil {
		t.Error("Expected error for channel value 256")
	}
	if err := w.WritePixel(Pixel{G: -1}); err == nil {
		t.Error("Expected error for negative channel value")
	}
}

func TestRGBASink_RasterOrder(t *testing.T) {
	sink := NewRGBASink()
	if err := sink.WriteHeader(2, 2, 255); err != nil {
		t.Fatal(err)
	}
	pixels := []Pixel{{1, 0, 0}, {2, 0, 0}, {3, 0, 0}, {4, 0, 0}}
	for _, p := range pixels {
		if err := sink.WritePixel(p); err != nil {
			t.Fatal(err)
		}
	}
	if err := sink.Close(); err != nil {
		t.Fatal(err)
	}

	img := sink.Image()
	expected := [][]uint8{{1, 2}, {3, 4}}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if got := img.RGBAAt(x, y).R; got != expected[y][x] {
				t.Errorf("Pixel (%d,%d): expected R=%d, got %d", x, y, expected[y][x], got)
			}
		}
	}
}

func TestPNGWriter_Encodes(t *testing.T) {
	var buf bytes.Buffer
	w := NewPNGWriter(&buf)
	if err := w.WriteHeader(1, 1, 255); err != nil {
		t.Fatal(err)
	}
	if err := w.WritePixel(Pixel{10, 20, 30}); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Failed to decode PNG: %v", err)
	}
	r, g, b, _ := img.At(0, 0).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Errorf("Unexpected pixel %d %d %d", r>>8, g>>8, b>>8)
	}
}

func TestMultiSink_FansOut(t *testing.T) {
	var a, b bytes.Buffer
	sink := NewMultiSink(NewPPMWriter(&a), NewPPMWriter(&b))

	if err := sink.WriteHeader(1, 1, 255); err != nil {
		t.Fatal(err)
	}
	if err := sink.WritePixel(Pixel{7, 8, 9}); err != nil {
		t.Fatal(err)
	}
	if err := sink.Close(); err != nil {
		t.Fatal(err)
	}

	if a.String() != b.String() || a.Len() == 0 {
		t.Errorf("Expected identical non-empty outputs, got %q and %q", a.String(), b.String())
	}
}

func TestCreate(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"ppm", filepath.Join(dir, "out.ppm"), false},
		{"txt", filepath.Join(dir, "out.txt"), false},
		{"png in new dir", filepath.Join(dir, "nested", "out.png"), false},
		{"unknown extension", filepath.Join(dir, "out.jpg"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink, err := Create(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for %s", tt.path)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if err := sink.WriteHeader(1, 1, 255); err != nil {
				t.Fatal(err)
			}
			if err := sink.WritePixel(Pixel{1, 2, 3}); err != nil {
				t.Fatal(err)
			}
			if err := sink.Close(); err != nil {
				t.Fatal(err)
			}
			if info, err := os.Stat(tt.path); err != nil || info.Size() == 0 {
				t.Errorf("Expected non-empty file at %s", tt.path)
			}
		})
	}
}

func TestCreateAll_LeavesNoFilesOnError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		paths []string
	}{
		{"unsupported extension", []string{filepath.Join(dir, "a.ppm"), filepath.Join(dir, "b.bmp")}},
		{"unwritable directory", []string{filepath.Join(dir, "c.ppm"), filepath.Join(blocker, "d.ppm")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := CreateAll(tt.paths); err == nil {
				t.Fatal("Expected error")
			}
			if _, err := os.Stat(tt.paths[0]); !errors.Is(err, os.ErrNotExist) {
				t.Errorf("Expected %s to be absent, stat returned %v", tt.paths[0], err)
			}
		})
	}
}
