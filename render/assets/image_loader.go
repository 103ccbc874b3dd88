// Package assets loads image files into the tightly packed RGBA8 form the
// texture registry uploads.
package assets

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
)

// LoadImage decodes a PNG or JPEG file into tightly packed RGBA8 pixels
// (row-major, top-left origin, stride == 4*w).
func LoadImage(path string) (pixels []byte, w, h int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	pixels, w, h, err = DecodeImage(f)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("decode %q: %w", path, err)
	}
	return pixels, w, h, nil
}

// DecodeImage decodes any registered image format from r.
func DecodeImage(r io.Reader) (pixels []byte, w, h int, err error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, 0, 0, err
	}

	rgba := imageToRGBA(img)
	w, h = rgba.Bounds().Dx(), rgba.Bounds().Dy()

	// Repack in tight rows (stride == 4*w)
	out := make([]byte, 4*w*h)
	for y := 0; y < h; y++ {
		copy(out[y*w*4:(y+1)*w*4], rgba.Pix[y*rgba.Stride:y*rgba.Stride+w*4])
	}
	return out, w, h, nil
}

func imageToRGBA(img image.Image) *image.RGBA {
	if m, ok := img.(*image.RGBA); ok && m.Stride == m.Rect.Dx()*4 {
		return m
	}
	dst := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst
}
