package covimage

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Series is an ordered sequence of covariance images, one per observation
// date, all sharing the same pixel grid.
type Series []*Image

// Shape returns the pixel grid dimensions of the images in the series.
func (s Series) Shape() (width, height int) {
	if len(s) == 0 {
		return 0, 0
	}
	return s[0].Shape()
}

// Validate checks that the series is non-empty and all images share one shape.
func (s Series) Validate() error {
	if len(s) == 0 {
		return errors.New("empty covariance series")
	}
	w, h := s[0].Shape()
	for i, im := range s[1:] {
		iw, ih := im.Shape()
		if iw != w || ih != h {
			return fmt.Errorf("%w: image 0 is %dx%d, image %d is %dx%d",
				ErrShapeMismatch, w, h, i+1, iw, ih)
		}
	}
	return nil
}

// Sum computes the pixelwise matrix sum of all images in the series.
func (s Series) Sum() (*Image, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	dst := s[0].Clone()
	for _, im := range s[1:] {
		floats.Add(dst.HHHH, im.HHHH)
		floats.Add(dst.HVHV, im.HVHV)
		floats.Add(dst.VVVV, im.VVVV)
		for i := range dst.HHHV {
			dst.HHHV[i] += im.HHHV[i]
			dst.HHVV[i] += im.HHVV[i]
			dst.HVVV[i] += im.HVVV[i]
		}
	}
	return dst, nil
}

// MaskedRegion restricts every image in the series to the pixels selected
// by mask.
func (s Series) MaskedRegion(mask []bool) (Series, error) {
	dst := make(Series, len(s))
	for i, im := range s {
		sub, err := im.MaskedRegion(mask)
		if err != nil {
			return nil, fmt.Errorf("image %d: %w", i, err)
		}
		dst[i] = sub
	}
	return dst, nil
}
