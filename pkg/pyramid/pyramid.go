package pyramid

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"pyramidblend/internal/models"
)

// MinLevelSize is the smallest height or width a pyramid level may
// have. Construction stops reducing once the coarsest level reaches
// this size in either dimension.
const MinLevelSize = 16

// BuildGaussian builds a Gaussian pyramid for the image: level 0 is
// the image itself and each following level is a blurred and halved
// copy of the previous one. The pyramid holds at most maxLevels
// levels and stops early once a level's height or width is at most
// MinLevelSize. It returns the pyramid together with the blur kernel
// used to build it.
//
// maxLevels = 1 always returns a single-level pyramid holding the
// input unchanged.
func BuildGaussian(im *mat.Dense, maxLevels, filterSize int) (models.Pyramid, []float64, error) {
	if maxLevels < 1 {
		return nil, nil, fmt.Errorf("%w: max levels must be >= 1, got %d",
			ErrInvalidParameter, maxLevels)
	}

	kernel, err := Kernel(filterSize)
	if err != nil {
		return nil, nil, err
	}

	pyr := models.Pyramid{im}
	for len(pyr) < maxLevels {
		rows, cols := pyr[len(pyr)-1].Dims()
		if rows <= MinLevelSize || cols <= MinLevelSize {
			break
		}
		pyr = append(pyr, Reduce(pyr[len(pyr)-1], kernel))
	}

	return pyr, kernel, nil
}

// BuildLaplacian builds a Laplacian pyramid for the image: each level
// holds the detail lost between consecutive Gaussian levels,
// G[i] - Expand(G[i+1]), and the final level is the coarsest Gaussian
// level unchanged (the base band). It returns the pyramid together
// with the blur kernel used to build it.
func BuildLaplacian(im *mat.Dense, maxLevels, filterSize int) (models.Pyramid, []float64, error) {
	gauss, kernel, err := BuildGaussian(im, maxLevels, filterSize)
	if err != nil {
		return nil, nil, err
	}

	lap := make(models.Pyramid, len(gauss))
	for i := 0; i < len(gauss)-1; i++ {
		rows, cols := gauss[i].Dims()
		expanded := cropTo(Expand(gauss[i+1], kernel), rows, cols)
		level := mat.NewDense(rows, cols, nil)
		level.Sub(gauss[i], expanded)
		lap[i] = level
	}
	lap[len(lap)-1] = gauss[len(gauss)-1]

	return lap, kernel, nil
}

// Reconstruct collapses a Laplacian pyramid back into an image,
// weighting each level by its coefficient. Reconstructing with all
// coefficients set to 1 recovers the original image.
//
// The accumulation runs iteratively from the base band up to level 0
// so that arbitrarily deep pyramids cannot exhaust the stack.
func Reconstruct(lap models.Pyramid, kernel []float64, coeff []float64) (*mat.Dense, error) {
	if len(lap) == 0 {
		return nil, fmt.Errorf("%w: empty pyramid", ErrInvalidParameter)
	}
	if len(coeff) != len(lap) {
		return nil, fmt.Errorf("%w: %d coefficients for a %d-level pyramid",
			ErrDimensionMismatch, len(coeff), len(lap))
	}

	n := len(lap)
	acc := &mat.Dense{}
	acc.Scale(coeff[n-1], lap[n-1])
	for i := n - 2; i >= 0; i-- {
		rows, cols := lap[i].Dims()
		expanded := cropTo(Expand(acc, kernel), rows, cols)
		next := mat.NewDense(rows, cols, nil)
		next.Scale(coeff[i], lap[i])
		next.Add(next, expanded)
		acc = next
	}

	return acc, nil
}

// cropTo returns the top-left rows x cols submatrix of m, or m itself
// when it already has that shape. Expanding a ceiling-halved level
// doubles it back past an odd source dimension by one; cropping is
// what keeps shapes consistent across levels.
func cropTo(m *mat.Dense, rows, cols int) *mat.Dense {
	r, c := m.Dims()
	if r == rows && c == cols {
		return m
	}
	return mat.DenseCopyOf(m.Slice(0, rows, 0, cols))
}
