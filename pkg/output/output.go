// Package output writes rendered images to disk and to HTTP responses.
package output

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/JMS55/raytracing-in-one-weekend/pkg/renderer"
)

// ErrUnsupportedFormat is returned by Save for file extensions other than .png and .ppm
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Save writes the image to path in the format given by its extension.
// The annotation is only drawn into PNG output.
func Save(img *renderer.Image, path string, annotation string) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return SavePNG(img, path, annotation)
	case ".ppm":
		return SavePPM(img, path)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}
