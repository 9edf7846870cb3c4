package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/tlond/ray-tracing-weakend/pkg/renderer"
)

var (
	// ErrMalformedFramebuffer is returned when the pixel slice does not match the dimensions
	ErrMalformedFramebuffer = errors.New("malformed framebuffer")
	// ErrUnsupportedFormat is returned for file extensions with no encoder
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// Format names an output encoding
type Format string

const (
	FormatPPM  Format = "ppm"
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
)

// FormatFromFilename picks the encoding from a file extension
func FormatFromFilename(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".ppm" {
		return FormatPPM, nil
	}
	f, err := imaging.FormatFromFilename(path)
	if err != nil {
		return "", fmt.Errorf("%q: %w", ext, ErrUnsupportedFormat)
	}
	return Format(strings.ToLower(f.String())), nil
}

// Encode writes the framebuffer in the given format
func Encode(w io.Writer, fb *renderer.Framebuffer, format Format) error {
	switch format {
	case FormatPPM:
		return WritePPM(w, fb)
	case FormatPNG:
		return imaging.Encode(w, fb, imaging.PNG)
	case FormatJPEG:
		return imaging.Encode(w, fb, imaging.JPEG, imaging.JPEGQuality(95))
	default:
		return fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
	}
}

// Save writes the framebuffer to path, choosing the encoding by extension.
// .ppm is written directly; other extensions go through imaging.
func Save(path string, fb *renderer.Framebuffer) error {
	format, err := FormatFromFilename(path)
	if err != nil {
		return err
	}
	if format != FormatPPM {
		if len(fb.Pix) != fb.Width*fb.Height*3 {
			return fmt.Errorf("framebuffer %dx%d holds %d bytes: %w", fb.Width, fb.Height, len(fb.Pix), ErrMalformedFramebuffer)
		}
		return imaging.Save(fb, path, imaging.JPEGQuality(95))
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := WritePPM(file, fb); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Thumbnail returns a resized copy of the framebuffer, width pixels wide with the aspect ratio kept
func Thumbnail(fb *renderer.Framebuffer, width int) *renderer.Framebuffer {
	resized := imaging.Resize(fb, width, 0, imaging.Lanczos)
	bounds := resized.Bounds()

	thumb := renderer.NewFramebuffer(bounds.Dx(), bounds.Dy())
	for y := 0; y < thumb.Height; y++ {
		for x := 0; x < thumb.Width; x++ {
			i := resized.PixOffset(x, y)
			thumb.SetRGB(x, y, [3]byte{resized.Pix[i], resized.Pix[i+1], resized.Pix[i+2]})
		}
	}
	return thumb
}
