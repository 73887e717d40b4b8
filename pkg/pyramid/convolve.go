package pyramid

import (
	"runtime"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// reflectIndex maps a sample index back into [0, n) by mirroring about
// the array edges with the edge sample duplicated:
// (... v1, v0 | v0, v1, ... vn-1 | vn-1, vn-2 ...).
// The reduce/expand round trip depends on both operations using this
// same boundary treatment.
func reflectIndex(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i - 1
		}
		if i >= n {
			i = 2*n - i - 1
		}
	}
	return i
}

// convolveRows convolves every row of src with the kernel. The kernel
// must have odd length; it is symmetric by construction, so the
// convolution is written as a centered correlation.
func convolveRows(src *mat.Dense, kernel []float64) *mat.Dense {
	rows, cols := src.Dims()
	radius := len(kernel) / 2
	dst := mat.NewDense(rows, cols, nil)

	parallelChunks(rows, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < cols; x++ {
				var sum float64
				for t, w := range kernel {
					sum += w * src.At(y, reflectIndex(x+t-radius, cols))
				}
				dst.Set(y, x, sum)
			}
		}
	})

	return dst
}

// convolveCols convolves every column of src with the kernel.
func convolveCols(src *mat.Dense, kernel []float64) *mat.Dense {
	rows, cols := src.Dims()
	radius := len(kernel) / 2
	dst := mat.NewDense(rows, cols, nil)

	parallelChunks(cols, func(start, end int) {
		for x := start; x < end; x++ {
			for y := 0; y < rows; y++ {
				var sum float64
				for t, w := range kernel {
					sum += w * src.At(reflectIndex(y+t-radius, rows), x)
				}
				dst.Set(y, x, sum)
			}
		}
	})

	return dst
}

// blur applies the separable 2D convolution: every row with the
// kernel, then every column of that result. The row pass must complete
// before the column pass starts; each pass is parallel internally.
func blur(src *mat.Dense, kernel []float64) *mat.Dense {
	return convolveCols(convolveRows(src, kernel), kernel)
}

// parallelChunks divides [0, n) into one contiguous chunk per worker
// and runs fn on each chunk in its own goroutine. Chunks are disjoint,
// so the result is identical to the sequential order.
func parallelChunks(n int, fn func(start, end int)) {
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(start, end)
	}
	wg.Wait()
}
