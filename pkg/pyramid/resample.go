package pyramid

import (
	"gonum.org/v1/gonum/mat"
)

// Reduce blurs the image with the kernel and subsamples every second
// row and column starting at index 0. An H x W input produces a
// ceil(H/2) x ceil(W/2) output.
func Reduce(im *mat.Dense, kernel []float64) *mat.Dense {
	blurred := blur(im, kernel)

	rows, cols := im.Dims()
	outRows := (rows + 1) / 2
	outCols := (cols + 1) / 2
	out := mat.NewDense(outRows, outCols, nil)
	for y := 0; y < outRows; y++ {
		for x := 0; x < outCols; x++ {
			out.Set(y, x, blurred.At(2*y, 2*x))
		}
	}

	return out
}

// Expand upsamples the image by a factor of two: samples are copied
// into the even rows and columns of a zero-filled 2H x 2W buffer,
// which is then blurred with the kernel at twice its gain to make up
// for the energy lost to the inserted zeros. The output is exactly
// 2H x 2W; when the caller's target dimension was odd this overshoots
// by one and the caller crops (see BuildLaplacian).
func Expand(im *mat.Dense, kernel []float64) *mat.Dense {
	rows, cols := im.Dims()
	sparse := mat.NewDense(2*rows, 2*cols, nil)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			sparse.Set(2*y, 2*x, im.At(y, x))
		}
	}

	doubled := make([]float64, len(kernel))
	for i, v := range kernel {
		doubled[i] = 2 * v
	}

	return blur(sparse, doubled)
}
