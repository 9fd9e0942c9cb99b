package image

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func testImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 8), G: uint8(y * 8), B: 128, A: 255})
		}
	}
	return img
}

func TestInspect_PNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage(32, 16)))

	info, err := Inspect(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, "png", info.Format)
	require.Equal(t, 32, info.Width)
	require.Equal(t, 16, info.Height)
	require.NotEmpty(t, info.BlurHash)
}

func TestInspect_BMP(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, testImage(8, 8)))

	info, err := Inspect(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, "bmp", info.Format)
	require.Equal(t, 8, info.Width)
}

func TestInspect_Invalid(t *testing.T) {
	_, err := Inspect(nil)
	require.Error(t, err)

	_, err = Inspect([]byte("not an image"))
	require.Error(t, err)
}
