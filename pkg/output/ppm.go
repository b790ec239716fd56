package output

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/JMS55/raytracing-in-one-weekend/pkg/renderer"
)

// WritePPM writes the image to w as binary PPM (P6)
func WritePPM(w io.Writer, img *renderer.Image) error {
	if _, err := fmt.Fprintf(w, "P6\n%d %d 255\n", img.Width, img.Height); err != nil {
		return fmt.Errorf("failed to write PPM header: %w", err)
	}
	if _, err := w.Write(img.Pix); err != nil {
		return fmt.Errorf("failed to write PPM pixels: %w", err)
	}
	return nil
}

// SavePPM writes the image to path as binary PPM (P6)
func SavePPM(img *renderer.Image, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if err := WritePPM(w, img); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return file.Close()
}
