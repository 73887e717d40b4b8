package models

import (
	"gonum.org/v1/gonum/mat"
)

// Pyramid is an ordered multi-resolution stack of images. Level 0 is
// the full-resolution image and every following level is a reduced
// copy of the previous one. Pyramids are immutable once built and may
// be shared freely across goroutines.
type Pyramid []*mat.Dense

// Levels returns the number of levels in the pyramid.
func (p Pyramid) Levels() int {
	return len(p)
}

// BaseDims returns the dimensions of the full-resolution level, or
// (0, 0) for an empty pyramid.
func (p Pyramid) BaseDims() (rows, cols int) {
	if len(p) == 0 {
		return 0, 0
	}
	return p[0].Dims()
}

// Channel identifies one color channel of an RGB image.
type Channel int

const (
	Red Channel = iota
	Green
	Blue
)

// Channels returns all channels in their conventional order.
func Channels() []Channel {
	return []Channel{Red, Green, Blue}
}

// String returns the channel name
func (c Channel) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	}
	return "unknown"
}

// RGBImage holds one matrix of [0, 1] samples per color channel.
// All three channels have identical dimensions.
type RGBImage struct {
	// R, G, B are the per-channel sample matrices
	R, G, B *mat.Dense
}

// Channel returns the matrix backing the given channel.
func (im *RGBImage) Channel(c Channel) *mat.Dense {
	switch c {
	case Red:
		return im.R
	case Green:
		return im.G
	case Blue:
		return im.B
	}
	return nil
}

// SetChannel replaces the matrix backing the given channel.
func (im *RGBImage) SetChannel(c Channel, m *mat.Dense) {
	switch c {
	case Red:
		im.R = m
	case Green:
		im.G = m
	case Blue:
		im.B = m
	}
}

// Dims returns the spatial dimensions shared by the three channels.
func (im *RGBImage) Dims() (rows, cols int) {
	if im.R == nil {
		return 0, 0
	}
	return im.R.Dims()
}
