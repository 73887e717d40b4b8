package blend

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// RMSE computes the root mean square error between two images of equal
// dimensions. Mismatched or empty inputs yield 0.
func RMSE(a, b *mat.Dense) float64 {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br || ac != bc || ar*ac == 0 {
		return 0
	}

	var mse float64
	for y := 0; y < ar; y++ {
		for x := 0; x < ac; x++ {
			diff := a.At(y, x) - b.At(y, x)
			mse += diff * diff
		}
	}
	mse /= float64(ar * ac)

	return math.Sqrt(mse)
}

// SSIM computes the Structural Similarity Index between two images of
// equal dimensions, over the full image as a single window. Values
// range from -1 to 1, with 1 meaning identical images. Mismatched or
// empty inputs yield 0.
func SSIM(a, b *mat.Dense) float64 {
	// Standard SSIM stabilization constants for a dynamic range of 1.
	const (
		l  = 1.0
		k1 = 0.01
		k2 = 0.03
	)
	c1 := (k1 * l) * (k1 * l)
	c2 := (k2 * l) * (k2 * l)

	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br || ac != bc || ar*ac == 0 {
		return 0
	}

	x := flatten(a)
	y := flatten(b)

	muX := stat.Mean(x, nil)
	muY := stat.Mean(y, nil)
	sigmaX := stat.Variance(x, nil)
	sigmaY := stat.Variance(y, nil)
	sigmaXY := stat.Covariance(x, y, nil)

	num := (2*muX*muY + c1) * (2*sigmaXY + c2)
	den := (muX*muX + muY*muY + c1) * (sigmaX + sigmaY + c2)
	if den == 0 {
		return 0
	}
	return num / den
}

func flatten(m *mat.Dense) []float64 {
	rows, cols := m.Dims()
	out := make([]float64, 0, rows*cols)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			out = append(out, m.At(y, x))
		}
	}
	return out
}
