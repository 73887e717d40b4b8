// Package pyramid implements Gaussian and Laplacian image pyramids
// over matrices of [0, 1] samples: separable binomial blurring,
// reduce/expand resampling, pyramid construction and reconstruction.
//
// All operations are pure: inputs are read-only and every result is a
// newly allocated matrix, so kernels and pyramids can be shared across
// goroutines once built.
package pyramid

import (
	"fmt"
)

// Kernel derives the normalized 1D blur kernel of the given odd
// length. Starting from [1], the two-tap kernel [1, 1] is convolved in
// filterSize-1 times and the result is divided by its sum, yielding a
// row of binomial coefficients that approximates a Gaussian.
// filterSize = 1 yields [1].
func Kernel(filterSize int) ([]float64, error) {
	if filterSize < 1 || filterSize%2 == 0 {
		return nil, fmt.Errorf("%w: filter size must be an odd integer >= 1, got %d",
			ErrInvalidParameter, filterSize)
	}

	kernel := []float64{1}
	for i := 0; i < filterSize-1; i++ {
		kernel = convolveFull(kernel, []float64{1, 1})
	}

	var sum float64
	for _, v := range kernel {
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}

	return kernel, nil
}

// convolveFull computes the full 1D convolution of a and b, without
// truncation: the result has len(a)+len(b)-1 taps.
func convolveFull(a, b []float64) []float64 {
	out := make([]float64, len(a)+len(b)-1)
	for i, av := range a {
		for j, bv := range b {
			out[i+j] += av * bv
		}
	}
	return out
}
