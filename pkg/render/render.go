// Package render lays the levels of a pyramid out as a single mosaic
// image for inspection, the levels side by side from fine to coarse.
package render

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"pyramidblend/internal/models"
	"pyramidblend/pkg/imgio"
)

// Mosaic renders up to the given number of pyramid levels into one
// matrix. Each level is contrast-stretched to [0, 1] on its own
// (Laplacian levels are mostly near zero and would otherwise be
// invisible), placed left to right, and padded below with zeros to the
// height of level 0.
//
// Asking for fewer than one level is not an error: the result is an
// empty matrix.
func Mosaic(pyr models.Pyramid, levels int) *mat.Dense {
	if levels < 1 || pyr.Levels() == 0 {
		return &mat.Dense{}
	}
	if levels > pyr.Levels() {
		levels = pyr.Levels()
	}

	baseRows, _ := pyr.BaseDims()
	totalCols := 0
	for i := 0; i < levels; i++ {
		_, c := pyr[i].Dims()
		totalCols += c
	}

	out := mat.NewDense(baseRows, totalCols, nil)
	xOffset := 0
	for i := 0; i < levels; i++ {
		level := stretch(pyr[i])
		rows, cols := level.Dims()
		for y := 0; y < rows; y++ {
			for x := 0; x < cols; x++ {
				out.Set(y, xOffset+x, level.At(y, x))
			}
		}
		xOffset += cols
	}

	return out
}

// SaveMosaic renders the pyramid and writes the mosaic to path in the
// format implied by its extension. An empty mosaic writes nothing.
func SaveMosaic(pyr models.Pyramid, levels int, path string) error {
	mosaic := Mosaic(pyr, levels)
	if r, _ := mosaic.Dims(); r == 0 {
		return nil
	}
	if err := imgio.Save(path, imgio.ToGray(mosaic)); err != nil {
		return fmt.Errorf("saving pyramid mosaic: %w", err)
	}
	return nil
}

// stretch linearly maps the samples of m onto [0, 1]. A constant
// matrix maps to all zeros.
func stretch(m *mat.Dense) *mat.Dense {
	rows, cols := m.Dims()
	min, max := m.At(0, 0), m.At(0, 0)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			v := m.At(y, x)
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}

	out := mat.NewDense(rows, cols, nil)
	if max <= min {
		return out
	}
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			out.Set(y, x, (m.At(y, x)-min)/(max-min))
		}
	}
	return out
}
