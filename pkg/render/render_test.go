package render

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/mat"

	"pyramidblend/internal/models"
	"pyramidblend/pkg/pyramid"
)

// TestMosaicEmpty verifies that fewer than one level yields an empty
// matrix rather than an error
func TestMosaicEmpty(t *testing.T) {
	pyr := buildTestPyramid(t, 64, 64, 3)

	for _, levels := range []int{0, -1} {
		mosaic := Mosaic(pyr, levels)
		if r, c := mosaic.Dims(); r != 0 || c != 0 {
			t.Errorf("Mosaic with %d levels: expected empty matrix, got %dx%d", levels, r, c)
		}
	}

	mosaic := Mosaic(models.Pyramid{}, 3)
	if r, c := mosaic.Dims(); r != 0 || c != 0 {
		t.Errorf("Mosaic of empty pyramid: expected empty matrix, got %dx%d", r, c)
	}
}

// TestMosaicShape verifies the side-by-side layout: level-0 height,
// width the sum of the rendered level widths
func TestMosaicShape(t *testing.T) {
	pyr := buildTestPyramid(t, 64, 48, 3)
	if pyr.Levels() != 3 {
		t.Fatalf("Expected 3 levels, got %d", pyr.Levels())
	}

	mosaic := Mosaic(pyr, 3)
	rows, cols := mosaic.Dims()
	if rows != 64 || cols != 48+24+12 {
		t.Errorf("Expected 64x84 mosaic, got %dx%d", rows, cols)
	}

	// Asking for more levels than the pyramid has renders all of them.
	mosaic = Mosaic(pyr, 10)
	if _, c := mosaic.Dims(); c != 48+24+12 {
		t.Errorf("Expected width 84, got %d", c)
	}

	// A single level renders just the stretched base.
	mosaic = Mosaic(pyr, 1)
	rows, cols = mosaic.Dims()
	if rows != 64 || cols != 48 {
		t.Errorf("Expected 64x48 mosaic, got %dx%d", rows, cols)
	}
}

// TestMosaicStretchesLevels verifies per-level contrast stretching and
// the zero padding below shorter levels
func TestMosaicStretchesLevels(t *testing.T) {
	pyr := buildTestPyramid(t, 64, 64, 2)
	mosaic := Mosaic(pyr, 2)

	// Every sample must land in [0, 1] and each rendered level must
	// use the full range somewhere.
	rows, cols := mosaic.Dims()
	min0, max0 := 1.0, 0.0
	for y := 0; y < rows; y++ {
		for x := 0; x < 64; x++ {
			v := mosaic.At(y, x)
			if v < 0 || v > 1 {
				t.Fatalf("At(%d, %d): %f outside [0, 1]", y, x, v)
			}
			min0 = math.Min(min0, v)
			max0 = math.Max(max0, v)
		}
	}
	if min0 > 1e-9 || max0 < 1-1e-9 {
		t.Errorf("Level 0 not stretched to [0, 1]: min %f, max %f", min0, max0)
	}

	// The second level is 32 rows tall; everything below it is padding.
	for y := 32; y < rows; y++ {
		for x := 64; x < cols; x++ {
			if mosaic.At(y, x) != 0 {
				t.Fatalf("At(%d, %d): expected zero padding, got %f", y, x, mosaic.At(y, x))
			}
		}
	}
}

// TestMosaicConstantLevel verifies that a constant level renders as
// zeros instead of dividing by a zero range
func TestMosaicConstantLevel(t *testing.T) {
	level := mat.NewDense(8, 8, nil)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			level.Set(y, x, 0.5)
		}
	}

	mosaic := Mosaic(models.Pyramid{level}, 1)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if mosaic.At(y, x) != 0 {
				t.Fatalf("At(%d, %d): expected 0, got %f", y, x, mosaic.At(y, x))
			}
		}
	}
}

// TestSaveMosaic verifies writing a mosaic image to disk and the
// explicit no-op for empty renders
func TestSaveMosaic(t *testing.T) {
	dir := t.TempDir()
	pyr := buildTestPyramid(t, 64, 64, 3)

	path := filepath.Join(dir, "mosaic.png")
	if err := SaveMosaic(pyr, 3, path); err != nil {
		t.Fatalf("SaveMosaic failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected mosaic file to exist: %v", err)
	}

	empty := filepath.Join(dir, "empty.png")
	if err := SaveMosaic(pyr, 0, empty); err != nil {
		t.Fatalf("SaveMosaic with 0 levels failed: %v", err)
	}
	if _, err := os.Stat(empty); !os.IsNotExist(err) {
		t.Error("Empty mosaic should not create a file")
	}
}

// buildTestPyramid builds a Gaussian pyramid of a gradient image
func buildTestPyramid(t *testing.T, rows, cols, levels int) models.Pyramid {
	t.Helper()

	im := mat.NewDense(rows, cols, nil)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			im.Set(y, x, float64(y+x)/float64(rows+cols-2))
		}
	}

	pyr, _, err := pyramid.BuildGaussian(im, levels, 3)
	if err != nil {
		t.Fatalf("BuildGaussian failed: %v", err)
	}
	return pyr
}
