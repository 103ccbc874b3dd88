package assets

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	src.Set(0, 0, color.NRGBA{R: 255, A: 255})
	src.Set(2, 1, color.NRGBA{B: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	pix, w, h, err := DecodeImage(&buf)
	require.NoError(t, err)
	assert.Equal(t, 3, w)
	assert.Equal(t, 2, h)
	require.Len(t, pix, 4*3*2)

	assert.Equal(t, []byte{255, 0, 0, 255}, pix[:4])
	assert.Equal(t, []byte{0, 0, 255, 255}, pix[len(pix)-4:])
}

func TestDecodeImageBadData(t *testing.T) {
	_, _, _, err := DecodeImage(bytes.NewReader([]byte("not an image")))
	assert.Error(t, err)
}

func TestLoadImageMissingFile(t *testing.T) {
	_, _, _, err := LoadImage("does/not/exist.png")
	assert.Error(t, err)
}
