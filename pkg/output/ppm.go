package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/tlond/ray-tracing-weakend/pkg/renderer"
)

// WritePPM writes the framebuffer as a binary PPM (P6) image
func WritePPM(w io.Writer, fb *renderer.Framebuffer) error {
	if len(fb.Pix) != fb.Width*fb.Height*3 {
		return fmt.Errorf("framebuffer %dx%d holds %d bytes: %w", fb.Width, fb.Height, len(fb.Pix), ErrMalformedFramebuffer)
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", fb.Width, fb.Height); err != nil {
		return err
	}
	if _, err := bw.Write(fb.Pix); err != nil {
		return err
	}
	return bw.Flush()
}
