// Package covimage provides covariance-matrix image data structures for
// multi-look polarimetric SAR data.
package covimage

import (
	"errors"
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// Dim is the covariance matrix dimension, fixed by the three polarimetric
// channels (HH, HV, VV).
const Dim = 3

var (
	// ErrShapeMismatch indicates covariance images with different pixel grids.
	ErrShapeMismatch = errors.New("covariance images have different shapes")
	// ErrSizeMismatch indicates a mask whose length differs from the pixel count.
	ErrSizeMismatch = errors.New("mask size does not match pixel count")
)

// Image is a covariance image: one 3x3 Hermitian positive-definite covariance
// matrix per pixel. The matrix entries are stored as six per-pixel channels,
// the real diagonal and the complex upper triangle:
//
//	| HHHH  HHHV  HHVV |
//	| .     HVHV  HVVV |
//	| .     .     VVVV |
//
// The lower triangle is implied by Hermitian symmetry. A mask-restricted
// image keeps its pixels as a 1 x n grid.
type Image struct {
	Width, Height int

	HHHH, HVHV, VVVV []float64
	HHHV, HHVV, HVVV []complex128
}

// New creates a zero covariance image with the given pixel grid.
func New(width, height int) *Image {
	n := width * height
	return &Image{
		Width:  width,
		Height: height,
		HHHH:   make([]float64, n),
		HVHV:   make([]float64, n),
		VVVV:   make([]float64, n),
		HHHV:   make([]complex128, n),
		HHVV:   make([]complex128, n),
		HVVV:   make([]complex128, n),
	}
}

// NewConstant creates an image holding the same covariance matrix at every
// pixel. Only the Hermitian part of m is used.
func NewConstant(width, height int, m *mat.CDense) *Image {
	im := New(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			im.SetMatrix(x, y, m)
		}
	}
	return im
}

// Len returns the number of pixels.
func (im *Image) Len() int {
	return im.Width * im.Height
}

// Shape returns the pixel grid dimensions.
func (im *Image) Shape() (width, height int) {
	return im.Width, im.Height
}

func (im *Image) index(x, y int) int {
	return y*im.Width + x
}

// Matrix returns the covariance matrix at pixel (x, y) as a dense complex
// matrix. The returned matrix is a copy.
func (im *Image) Matrix(x, y int) *mat.CDense {
	i := im.index(x, y)
	data := []complex128{
		complex(im.HHHH[i], 0), im.HHHV[i], im.HHVV[i],
		cmplx.Conj(im.HHHV[i]), complex(im.HVHV[i], 0), im.HVVV[i],
		cmplx.Conj(im.HHVV[i]), cmplx.Conj(im.HVVV[i]), complex(im.VVVV[i], 0),
	}
	return mat.NewCDense(Dim, Dim, data)
}

// SetMatrix stores the Hermitian part of m as the covariance matrix at
// pixel (x, y). The imaginary parts of the diagonal are discarded.
func (im *Image) SetMatrix(x, y int, m *mat.CDense) {
	i := im.index(x, y)
	im.HHHH[i] = real(m.At(0, 0))
	im.HVHV[i] = real(m.At(1, 1))
	im.VVVV[i] = real(m.At(2, 2))
	im.HHHV[i] = m.At(0, 1)
	im.HHVV[i] = m.At(0, 2)
	im.HVVV[i] = m.At(1, 2)
}

// Determinant computes the per-pixel determinant of the covariance matrices.
// The determinant of a Hermitian matrix is real; for valid covariance data
// it is positive.
func (im *Image) Determinant() []float64 {
	det := make([]float64, im.Len())
	for i := range det {
		a, b, c := im.HHHH[i], im.HVHV[i], im.VVVV[i]
		d, e, f := im.HHHV[i], im.HHVV[i], im.HVVV[i]
		det[i] = a*b*c + 2*real(d*f*cmplx.Conj(e)) - a*abs2(f) - b*abs2(e) - c*abs2(d)
	}
	return det
}

func abs2(z complex128) float64 {
	return real(z)*real(z) + imag(z)*imag(z)
}

// Clone creates a copy of the covariance image.
func (im *Image) Clone() *Image {
	dst := New(im.Width, im.Height)
	copy(dst.HHHH, im.HHHH)
	copy(dst.HVHV, im.HVHV)
	copy(dst.VVVV, im.VVVV)
	copy(dst.HHHV, im.HHHV)
	copy(dst.HHVV, im.HHVV)
	copy(dst.HVVV, im.HVVV)
	return dst
}

// Plus computes the pixelwise matrix sum of two covariance images.
// Memory is allocated for the result.
func (im *Image) Plus(other *Image) (*Image, error) {
	if other.Width != im.Width || other.Height != im.Height {
		return nil, fmt.Errorf("%w: %dx%d and %dx%d",
			ErrShapeMismatch, im.Width, im.Height, other.Width, other.Height)
	}
	dst := im.Clone()
	dst.add(other)
	return dst, nil
}

// add accumulates other into im. Shapes must already match.
func (im *Image) add(other *Image) {
	for i := range im.HHHH {
		im.HHHH[i] += other.HHHH[i]
		im.HVHV[i] += other.HVHV[i]
		im.VVVV[i] += other.VVVV[i]
		im.HHHV[i] += other.HHHV[i]
		im.HHVV[i] += other.HHVV[i]
		im.HVVV[i] += other.HVVV[i]
	}
}

// Scale multiplies every covariance matrix by a constant.
// Memory is allocated for the result.
func (im *Image) Scale(alpha float64) *Image {
	dst := New(im.Width, im.Height)
	ca := complex(alpha, 0)
	for i := range im.HHHH {
		dst.HHHH[i] = alpha * im.HHHH[i]
		dst.HVHV[i] = alpha * im.HVHV[i]
		dst.VVVV[i] = alpha * im.VVVV[i]
		dst.HHHV[i] = ca * im.HHHV[i]
		dst.HHVV[i] = ca * im.HHVV[i]
		dst.HVVV[i] = ca * im.HVVV[i]
	}
	return dst
}

// MaskedRegion extracts the pixels selected by mask into a new, flattened
// image of shape 1 x n, preserving pixel order.
func (im *Image) MaskedRegion(mask []bool) (*Image, error) {
	if len(mask) != im.Len() {
		return nil, fmt.Errorf("%w: mask has %d entries, image has %d pixels",
			ErrSizeMismatch, len(mask), im.Len())
	}
	n := 0
	for _, m := range mask {
		if m {
			n++
		}
	}
	dst := New(n, 1)
	j := 0
	for i, m := range mask {
		if !m {
			continue
		}
		dst.HHHH[j] = im.HHHH[i]
		dst.HVHV[j] = im.HVHV[i]
		dst.VVVV[j] = im.VVVV[i]
		dst.HHHV[j] = im.HHHV[i]
		dst.HHVV[j] = im.HHVV[i]
		dst.HVVV[j] = im.HVVV[i]
		j++
	}
	return dst, nil
}
