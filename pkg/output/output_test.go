package output

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/JMS55/raytracing-in-one-weekend/pkg/renderer"
)

// createTestImage creates a gradient image with distinct bytes per pixel
func createTestImage(width, height int) *renderer.Image {
	img := renderer.NewImage(width, height)
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 7)
	}
	return img
}

func TestEncodePNG_RoundTrip(t *testing.T) {
	img := createTestImage(5, 3)

	var buf bytes.Buffer
	if err := EncodePNG(&buf, img, ""); err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}

	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Failed to decode PNG: %v", err)
	}
	if decoded.Bounds().Dx() != 5 || decoded.Bounds().Dy() != 3 {
		t.Fatalf("Unexpected bounds %v", decoded.Bounds())
	}

	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			r, g, b, a := decoded.At(x, y).RGBA()
			want := img.At(x, y)
			got := [3]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
			if got != want || a != 0xffff {
				t.Errorf("Pixel (%d, %d): got %v alpha %d, want %v opaque", x, y, got, a, want)
			}
		}
	}
}

func TestEncodePNG_Annotation(t *testing.T) {
	img := renderer.NewImage(120, 40)

	var plain, annotated bytes.Buffer
	if err := EncodePNG(&plain, img, ""); err != nil {
		t.Fatal(err)
	}
	if err := EncodePNG(&annotated, img, "100 spp"); err != nil {
		t.Fatal(err)
	}

	decoded, err := png.Decode(&annotated)
	if err != nil {
		t.Fatal(err)
	}

	// White caption text on a black image lights up some pixels in the bottom strip
	lit := 0
	for y := 40 - annotationHeight; y < 40; y++ {
		for x := 0; x < 120; x++ {
			if r, _, _, _ := decoded.At(x, y).RGBA(); r > 0x8000 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("Expected caption pixels in the annotated image")
	}

	// The top of the image is untouched
	if r, g, b, _ := decoded.At(10, 2).RGBA(); r|g|b != 0 {
		t.Error("Annotation should not draw outside the caption strip")
	}

	// The source image is not modified
	for _, p := range img.Pix {
		if p != 0 {
			t.Fatal("Encoding should not modify the rendered image")
		}
	}
}

func TestWritePPM(t *testing.T) {
	img := createTestImage(2, 2)

	var buf bytes.Buffer
	if err := WritePPM(&buf, img); err != nil {
		t.Fatalf("WritePPM failed: %v", err)
	}

	header := []byte("P6\n2 2 255\n")
	if !bytes.HasPrefix(buf.Bytes(), header) {
		t.Fatalf("Unexpected header %q", buf.Bytes()[:len(header)])
	}
	if !bytes.Equal(buf.Bytes()[len(header):], img.Pix) {
		t.Error("PPM body should be the raw pixel bytes")
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	img := createTestImage(4, 2)

	tests := []struct {
		name    string
		file    string
		wantErr error
	}{
		{"png", "out.png", nil},
		{"ppm", "out.ppm", nil},
		{"upper case extension", "OUT.PNG", nil},
		{"unsupported", "out.jpg", ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			err := Save(img, path, "")

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			info, err := os.Stat(path)
			if err != nil {
				t.Fatalf("Output file missing: %v", err)
			}
			if info.Size() == 0 {
				t.Error("Output file is empty")
			}
		})
	}
}

func TestSavePPM_BadPath(t *testing.T) {
	err := SavePPM(createTestImage(1, 1), filepath.Join(t.TempDir(), "missing", "out.ppm"))
	if err == nil {
		t.Error("Expected error for unwritable path")
	}
}
