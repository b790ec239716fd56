package output

import (
	"fmt"
	"io"

	"github.com/fogleman/gg"

	"github.com/JMS55/raytracing-in-one-weekend/pkg/renderer"
)

// annotationHeight is the height in pixels of the caption strip
const annotationHeight = 18

// newContext wraps the rendered bytes in a drawing context, adding the caption strip
// when annotation is not empty
func newContext(img *renderer.Image, annotation string) *gg.Context {
	dc := gg.NewContextForRGBA(img.RGBA())
	if annotation == "" {
		return dc
	}

	w := float64(dc.Width())
	h := float64(dc.Height())

	dc.SetRGBA(0, 0, 0, 0.6)
	dc.DrawRectangle(0, h-annotationHeight, w, annotationHeight)
	dc.Fill()

	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(annotation, 4, h-annotationHeight/2, 0, 0.5)
	return dc
}

// SavePNG writes the image to path as PNG, with an optional caption along the bottom edge
func SavePNG(img *renderer.Image, path string, annotation string) error {
	if err := newContext(img, annotation).SavePNG(path); err != nil {
		return fmt.Errorf("failed to save PNG %s: %w", path, err)
	}
	return nil
}

// EncodePNG writes the image to w as PNG, with an optional caption along the bottom edge
func EncodePNG(w io.Writer, img *renderer.Image, annotation string) error {
	if err := newContext(img, annotation).EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}
