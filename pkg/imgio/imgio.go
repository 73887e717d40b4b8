// Package imgio converts between image files and the normalized
// [0, 1] sample matrices the pyramid pipeline operates on.
package imgio

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/mat"

	"pyramidblend/internal/models"
)

// Rec. 709 luma weights used for grayscale conversion.
const (
	lumaR = 0.2125
	lumaG = 0.7154
	lumaB = 0.0721
)

// Load decodes an image file. JPEG and PNG are supported.
func Load(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

// LoadGray decodes an image file into a grayscale matrix of [0, 1]
// samples, converting color input via the Rec. 709 luma weights.
func LoadGray(path string) (*mat.Dense, error) {
	img, err := Load(path)
	if err != nil {
		return nil, err
	}
	return GrayFloat(img), nil
}

// LoadRGB decodes an image file into a three-channel matrix image of
// [0, 1] samples.
func LoadRGB(path string) (*models.RGBImage, error) {
	img, err := Load(path)
	if err != nil {
		return nil, err
	}
	return RGBFloat(img), nil
}

// LoadMask decodes an image file into a binary mask: the grayscale
// value of each pixel is thresholded at 0.5. See ThresholdMask.
func LoadMask(path string) (*mat.Dense, error) {
	gray, err := LoadGray(path)
	if err != nil {
		return nil, err
	}
	return ThresholdMask(gray), nil
}

// GrayFloat converts an image to a matrix of [0, 1] luma samples.
func GrayFloat(img image.Image) *mat.Dense {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	out := mat.NewDense(height, width, nil)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			luma := lumaR*float64(r) + lumaG*float64(g) + lumaB*float64(b)
			out.Set(y, x, luma/65535.0)
		}
	}

	return out
}

// GrayFromRGB collapses a three-channel matrix image to a single luma
// matrix using the Rec. 709 weights.
func GrayFromRGB(im *models.RGBImage) *mat.Dense {
	rows, cols := im.Dims()
	out := mat.NewDense(rows, cols, nil)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			out.Set(y, x, lumaR*im.R.At(y, x)+lumaG*im.G.At(y, x)+lumaB*im.B.At(y, x))
		}
	}
	return out
}

// RGBFloat converts an image to per-channel matrices of [0, 1] samples.
func RGBFloat(img image.Image) *models.RGBImage {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	out := &models.RGBImage{
		R: mat.NewDense(height, width, nil),
		G: mat.NewDense(height, width, nil),
		B: mat.NewDense(height, width, nil),
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			out.R.Set(y, x, float64(r)/65535.0)
			out.G.Set(y, x, float64(g)/65535.0)
			out.B.Set(y, x, float64(b)/65535.0)
		}
	}

	return out
}

// ThresholdMask snaps every sample to {0, 1}, thresholding at 0.5.
// A sample of exactly 0.5 counts as mask-on; the source material is
// ambiguous there, so the policy is fixed here rather than left to
// float rounding.
func ThresholdMask(m *mat.Dense) *mat.Dense {
	rows, cols := m.Dims()
	out := mat.NewDense(rows, cols, nil)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if m.At(y, x) >= 0.5 {
				out.Set(y, x, 1)
			}
		}
	}
	return out
}

// ToGray converts a matrix of [0, 1] samples to a 16-bit grayscale
// image, clamping values outside the range.
func ToGray(m *mat.Dense) *image.Gray16 {
	rows, cols := m.Dims()
	img := image.NewGray16(image.Rect(0, 0, cols, rows))
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			img.SetGray16(x, y, color.Gray16{Y: toUint16(m.At(y, x))})
		}
	}
	return img
}

// ToRGB converts a three-channel matrix image to a 16-bit RGBA image,
// clamping values outside [0, 1].
func ToRGB(im *models.RGBImage) *image.RGBA64 {
	rows, cols := im.Dims()
	img := image.NewRGBA64(image.Rect(0, 0, cols, rows))
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			img.SetRGBA64(x, y, color.RGBA64{
				R: toUint16(im.R.At(y, x)),
				G: toUint16(im.G.At(y, x)),
				B: toUint16(im.B.At(y, x)),
				A: 65535,
			})
		}
	}
	return img
}

// Save writes an image to path, choosing the encoder from the file
// extension: .png for PNG, anything else for JPEG.
func Save(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if strings.EqualFold(filepath.Ext(path), ".png") {
		return png.Encode(file, img)
	}
	return jpeg.Encode(file, img, &jpeg.Options{Quality: 90})
}

func toUint16(v float64) uint16 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return uint16(v * 65535.0)
}
