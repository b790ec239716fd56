package renderer

import (
	"image"
	"image/color"
)

// Image holds 8-bit RGB triples in row-major order, row 0 first
type Image struct {
	Width  int
	Height int
	Pix    []uint8 // len = Width*Height*3
}

// NewImage allocates a black image
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*3),
	}
}

// Row returns the slice of Pix backing row y
func (img *Image) Row(y int) []uint8 {
	stride := img.Width * 3
	return img.Pix[y*stride : (y+1)*stride]
}

// At returns the RGB bytes of pixel (x, y)
func (img *Image) At(x, y int) [3]uint8 {
	i := (y*img.Width + x) * 3
	return [3]uint8{img.Pix[i], img.Pix[i+1], img.Pix[i+2]}
}

// RGBA converts the image into an opaque *image.RGBA for encoding
func (img *Image) RGBA() *image.RGBA {
	rgba := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			p := img.At(x, y)
			rgba.SetRGBA(x, y, color.RGBA{R: p[0], G: p[1], B: p[2], A: 255})
		}
	}
	return rgba
}
