package preprocess

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"

	"github.com/Hitesh-Bhor28/bloomai-backend/internal/entity"
)

// Preprocessor converts uploaded image bytes into the tensor shape the
// classifier expects: [1, size, size, 3], NHWC, raw 0..255 intensities.
// The model embeds a Rescaling(1/255) layer, so dividing here would
// double-normalize and degrade predictions.
type Preprocessor struct {
	targetSize int
}

func NewPreprocessor(targetSize int) *Preprocessor {
	return &Preprocessor{targetSize: targetSize}
}

// Decode parses raw upload bytes into an image, wrapping decode failures
// as entity.ErrInvalidImage so the transport layer can answer 400.
func Decode(raw []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidImage, err)
	}
	return img, nil
}

func (p *Preprocessor) Preprocess(raw []byte) (entity.PixelTensor, error) {
	img, err := Decode(raw)
	if err != nil {
		return entity.PixelTensor{}, err
	}
	return p.FromImage(img), nil
}

// FromImage resizes to the exact target dimensions and flattens into
// NHWC order. imaging.Resize always yields NRGBA, which forces a
// 3-channel interpretation of grayscale and palette sources.
func (p *Preprocessor) FromImage(img image.Image) entity.PixelTensor {
	resized := imaging.Resize(img, p.targetSize, p.targetSize, imaging.Lanczos)

	data := make([]float32, p.targetSize*p.targetSize*3)
	i := 0
	for y := 0; y < p.targetSize; y++ {
		for x := 0; x < p.targetSize; x++ {
			c := resized.NRGBAAt(x, y)
			data[i] = float32(c.R)
			data[i+1] = float32(c.G)
			data[i+2] = float32(c.B)
			i += 3
		}
	}

	return entity.PixelTensor{Data: data, Height: p.targetSize, Width: p.targetSize}
}

// EncodeJPEG re-encodes a decoded image for the outbound detection tiers.
func EncodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
