package image

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format

	"github.com/buckket/go-blurhash"
	_ "golang.org/x/image/bmp"  // Register BMP format
	_ "golang.org/x/image/tiff" // Register TIFF format
	_ "golang.org/x/image/webp" // Register WebP format
)

const (
	componentsX = 4
	componentsY = 4
)

// Info describes an image submitted for moderation. Moderation itself treats
// content as opaque bytes; Info is reported alongside the verdict.
type Info struct {
	Format   string `json:"format"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	BlurHash string `json:"blur_hash,omitempty"`
}

// Inspect decodes imageData and returns its format, dimensions and BlurHash.
func Inspect(imageData []byte) (*Info, error) {
	if len(imageData) == 0 {
		return nil, fmt.Errorf("image data is empty")
	}

	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	info := &Info{
		Format: format,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}

	hash, err := blurhash.Encode(componentsX, componentsY, img)
	if err != nil {
		return nil, fmt.Errorf("failed to encode blurhash: %w", err)
	}
	info.BlurHash = hash

	return info, nil
}
