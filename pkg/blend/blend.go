// Package blend composes two images under a spatial mask by mixing
// their Laplacian pyramids level by level against the mask's Gaussian
// pyramid, then reconstructing. Blending in the pyramid domain hides
// the seam: coarse bands transition over a wide area while fine detail
// switches over sharply.
package blend

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"pyramidblend/internal/models"
	"pyramidblend/pkg/pyramid"
)

// Blend composes two grayscale images under the mask. Where the mask
// is 1 the output follows im1, where it is 0 it follows im2, and
// fractional mask values mix proportionally. All three inputs must
// have the same dimensions. The result is clipped to [0, 1].
//
// filterSizeImage sizes the blur kernel for the two image pyramids,
// filterSizeMask the one for the mask pyramid; both must be odd.
func Blend(im1, im2, mask *mat.Dense, maxLevels, filterSizeImage, filterSizeMask int) (*mat.Dense, error) {
	if err := checkSameDims(im1, im2, mask); err != nil {
		return nil, err
	}

	l1, kernel, err := pyramid.BuildLaplacian(im1, maxLevels, filterSizeImage)
	if err != nil {
		return nil, err
	}
	l2, _, err := pyramid.BuildLaplacian(im2, maxLevels, filterSizeImage)
	if err != nil {
		return nil, err
	}
	gm, _, err := pyramid.BuildGaussian(mask, maxLevels, filterSizeMask)
	if err != nil {
		return nil, err
	}

	// The stopping rule depends only on spatial dimensions, which the
	// three inputs share, so the pyramids always have equal length.
	out := make(models.Pyramid, len(l1))
	for i := range out {
		rows, cols := l1[i].Dims()
		level := mat.NewDense(rows, cols, nil)
		for y := 0; y < rows; y++ {
			for x := 0; x < cols; x++ {
				w := gm[i].At(y, x)
				level.Set(y, x, w*l1[i].At(y, x)+(1-w)*l2[i].At(y, x))
			}
		}
		out[i] = level
	}

	coeff := make([]float64, len(out))
	for i := range coeff {
		coeff[i] = 1
	}
	blended, err := pyramid.Reconstruct(out, kernel, coeff)
	if err != nil {
		return nil, err
	}

	clip(blended)
	return blended, nil
}

// BlendRGB blends a pair of RGB images under a shared mask. The three
// channels are independent and are blended concurrently, one
// goroutine per channel.
func BlendRGB(im1, im2 *models.RGBImage, mask *mat.Dense, maxLevels, filterSizeImage, filterSizeMask int) (*models.RGBImage, error) {
	type channelResult struct {
		channel models.Channel
		im      *mat.Dense
		err     error
	}
	results := make(chan channelResult, len(models.Channels()))

	for _, ch := range models.Channels() {
		go func(ch models.Channel) {
			blended, err := Blend(im1.Channel(ch), im2.Channel(ch), mask,
				maxLevels, filterSizeImage, filterSizeMask)
			results <- channelResult{channel: ch, im: blended, err: err}
		}(ch)
	}

	out := &models.RGBImage{}
	var firstErr error
	for range models.Channels() {
		res := <-results
		if res.err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("blending %s channel: %w", res.channel, res.err)
			}
			continue
		}
		out.SetChannel(res.channel, res.im)
	}
	if firstErr != nil {
		return nil, firstErr
	}

	return out, nil
}

// clip bounds every sample of m to [0, 1] in place. Only called on
// matrices this package allocated.
func clip(m *mat.Dense) {
	rows, cols := m.Dims()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			v := m.At(y, x)
			if v < 0 {
				m.Set(y, x, 0)
			} else if v > 1 {
				m.Set(y, x, 1)
			}
		}
	}
}

func checkSameDims(ims ...*mat.Dense) error {
	rows, cols := ims[0].Dims()
	for _, im := range ims[1:] {
		r, c := im.Dims()
		if r != rows || c != cols {
			return fmt.Errorf("%w: inputs are %dx%d and %dx%d",
				pyramid.ErrDimensionMismatch, rows, cols, r, c)
		}
	}
	return nil
}
