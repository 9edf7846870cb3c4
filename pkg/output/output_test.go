package output

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/tlond/ray-tracing-weakend/pkg/renderer"
)

// gradientFramebuffer fills red by column and green by row
func gradientFramebuffer(width, height int) *renderer.Framebuffer {
	fb := renderer.NewFramebuffer(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			fb.SetRGB(x, y, [3]byte{byte(x * 255 / max(1, width-1)), byte(y * 255 / max(1, height-1)), 128})
		}
	}
	return fb
}

func TestWritePPM(t *testing.T) {
	fb := renderer.NewFramebuffer(2, 1)
	fb.SetRGB(0, 0, [3]byte{255, 0, 0})
	fb.SetRGB(1, 0, [3]byte{0, 0, 255})

	var buf bytes.Buffer
	if err := WritePPM(&buf, fb); err != nil {
		t.Fatalf("WritePPM: %v", err)
	}

	expected := append([]byte("P6\n2 1\n255\n"), 255, 0, 0, 0, 0, 255)
	if !bytes.Equal(buf.Bytes(), expected) {
		t.Errorf("Expected %q, got %q", expected, buf.Bytes())
	}
}

func TestWritePPM_RejectsMalformed(t *testing.T) {
	fb := &renderer.Framebuffer{Width: 2, Height: 2, Pix: make([]byte, 5)}
	if err := WritePPM(&bytes.Buffer{}, fb); !errors.Is(err, ErrMalformedFramebuffer) {
		t.Errorf("Expected ErrMalformedFramebuffer, got %v", err)
	}
}

func TestFormatFromFilename(t *testing.T) {
	tests := []struct {
		path     string
		expected Format
		wantErr  bool
	}{
		{"out.ppm", FormatPPM, false},
		{"OUT.PPM", FormatPPM, false},
		{"render.png", FormatPNG, false},
		{"render.jpg", FormatJPEG, false},
		{"render.jpeg", FormatJPEG, false},
		{"render.xyz", "", true},
		{"render", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			format, err := FormatFromFilename(tt.path)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FormatFromFilename: %v", err)
			}
			if format != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, format)
			}
		})
	}
}

func TestSave_PPM(t *testing.T) {
	fb := gradientFramebuffer(4, 3)
	path := filepath.Join(t.TempDir(), "image.ppm")

	if err := Save(path, fb); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	header := []byte("P6\n4 3\n255\n")
	if !bytes.HasPrefix(data, header) {
		t.Fatalf("Missing PPM header, got %q", data[:min(len(data), len(header))])
	}
	if !bytes.Equal(data[len(header):], fb.Pix) {
		t.Error("PPM body should be the raw framebuffer bytes")
	}
}

func TestSave_PNGRoundTrip(t *testing.T) {
	fb := gradientFramebuffer(5, 4)
	path := filepath.Join(t.TempDir(), "image.png")

	if err := Save(path, fb); err != nil {
		t.Fatalf("Save: %v", err)
	}

	img, err := imaging.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if img.Bounds().Dx() != 5 || img.Bounds().Dy() != 4 {
		t.Fatalf("Expected 5x4, got %v", img.Bounds())
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 5; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			want := fb.RGB(x, y)
			if byte(r>>8) != want[0] || byte(g>>8) != want[1] || byte(b>>8) != want[2] {
				t.Fatalf("Pixel (%d,%d) = %d,%d,%d, want %v", x, y, r>>8, g>>8, b>>8, want)
			}
		}
	}
}

func TestSave_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.xyz")
	if err := Save(path, gradientFramebuffer(2, 2)); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("No file should be created for an unsupported format")
	}
}

func TestEncode_PNG(t *testing.T) {
	fb := gradientFramebuffer(3, 3)
	var buf bytes.Buffer
	if err := Encode(&buf, fb, FormatPNG); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if img.Bounds().Dx() != 3 {
		t.Errorf("Expected width 3, got %d", img.Bounds().Dx())
	}

	if err := Encode(&buf, fb, Format("webp")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestThumbnail(t *testing.T) {
	fb := gradientFramebuffer(40, 20)
	thumb := Thumbnail(fb, 10)

	if thumb.Width != 10 || thumb.Height != 5 {
		t.Fatalf("Expected 10x5 thumbnail, got %dx%d", thumb.Width, thumb.Height)
	}
	if len(thumb.Pix) != 10*5*3 {
		t.Fatalf("Expected %d bytes, got %d", 150, len(thumb.Pix))
	}

	// The red gradient survives resampling
	left, right := thumb.RGB(0, 2), thumb.RGB(9, 2)
	if left[0] >= right[0] {
		t.Errorf("Expected red to increase left to right, got %d and %d", left[0], right[0])
	}
}
