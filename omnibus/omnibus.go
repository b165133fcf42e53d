// Package omnibus implements the Omnibus likelihood-ratio change-detection
// test over a temporal series of polarimetric covariance images.
package omnibus

import (
	"errors"
	"fmt"
	"math"

	"github.com/sartorproj/gochange/covimage"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// matrixDim is the covariance matrix dimension, fixed by the three
// polarimetric channels.
const matrixDim = covimage.Dim

var (
	// ErrInvalidInput indicates inputs violating a construction invariant.
	ErrInvalidInput = errors.New("invalid input")
	// ErrSizeMismatch indicates a mask whose length differs from the pixel count.
	ErrSizeMismatch = errors.New("size mismatch")
	// ErrNotImplemented marks rendering modes that are named but not available.
	ErrNotImplemented = errors.New("not implemented")
)

// Test is the Omnibus test of the hypothesis that all covariance images in a
// series share one common covariance matrix per pixel, against the
// alternative that each date has its own. It stores the asymptotic
// distribution parameters and the per-pixel log-likelihood-ratio statistic.
//
// The asymptotic distribution of -2*Rho*LnQ is a chi-squared with F degrees
// of freedom plus a second-order correction weighted by W2 (Box's
// approximation).
type Test struct {
	// Series is the covariance series the test was built from, or its
	// restriction for a masked sub-test.
	Series covimage.Series
	// ENL is the equivalent number of looks, common to all images.
	ENL float64
	// K is the number of images in the series.
	K int
	// F is the degrees of freedom of the leading chi-squared term,
	// (K-1)*p*p.
	F int
	// Rho and W2 are the asymptotic correction parameters. They depend
	// only on (K, ENL, p), never on pixel data.
	Rho, W2 float64
	// LnQ is the per-pixel log-likelihood-ratio statistic, <= 0 everywhere.
	// A restricted test keeps it flattened in mask order.
	LnQ []float64
}

// New constructs the Omnibus test from a series of k >= 2 covariance images
// with a common equivalent number of looks. It validates eagerly: a returned
// Test is always usable.
func New(series covimage.Series, enl float64) (*Test, error) {
	k := len(series)
	if k < 2 {
		return nil, fmt.Errorf("%w: test needs at least 2 images, got %d", ErrInvalidInput, k)
	}
	if enl <= 0 {
		return nil, fmt.Errorf("%w: equivalent number of looks must be positive, got %g", ErrInvalidInput, enl)
	}
	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	npix := series[0].Len()
	if npix == 0 {
		return nil, fmt.Errorf("%w: images have no pixels", ErrInvalidInput)
	}

	p := float64(matrixDim)
	kf := float64(k)
	n := enl

	f := (k - 1) * matrixDim * matrixDim
	rho := 1 - (2*p*p-1)/(6*p*(kf-1))*(kf/n-1/(n*kf))
	w2 := p*p*(p*p-1)/(24*rho*rho)*(kf/(n*n)-1/((n*kf)*(n*kf))) -
		p*p*(kf-1)/4*(1-1/rho)*(1-1/rho)

	// Sum of per-image log determinants, per pixel.
	sumLogDet := make([]float64, npix)
	logDet := make([]float64, npix)
	for i, im := range series {
		det := im.Determinant()
		for j, d := range det {
			if d <= 0 {
				return nil, fmt.Errorf("%w: non-positive determinant %g at pixel %d of image %d",
					ErrInvalidInput, d, j, i)
			}
			logDet[j] = math.Log(d)
		}
		floats.Add(sumLogDet, logDet)
	}

	combined, err := series.Sum()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	detSum := combined.Determinant()

	logK := math.Log(kf)
	lnq := make([]float64, npix)
	for j := range lnq {
		if detSum[j] <= 0 {
			return nil, fmt.Errorf("%w: non-positive combined determinant %g at pixel %d",
				ErrInvalidInput, detSum[j], j)
		}
		lnq[j] = n * (p*kf*logK + sumLogDet[j] - kf*math.Log(detSum[j]))
	}

	return &Test{
		Series: series,
		ENL:    enl,
		K:      k,
		F:      f,
		Rho:    rho,
		W2:     w2,
		LnQ:    lnq,
	}, nil
}

// PValue returns the spatial average, over all pixels, of the probability of
// observing a statistic at least as large under the no-change hypothesis.
//
// Over a homogeneous no-change reference region this is the average
// acceptance probability of the test; over a heterogeneous region it is a
// descriptive spatial summary, not a calibrated single-hypothesis p-value.
func (t *Test) PValue() float64 {
	lead := distuv.ChiSquared{K: float64(t.F)}
	tail := distuv.ChiSquared{K: float64(t.F + 4)}
	probs := make([]float64, len(t.LnQ))
	for i, lnq := range t.LnQ {
		z := -2 * t.Rho * lnq
		cdf := lead.CDF(z)
		probs[i] = 1 - (cdf + t.W2*(tail.CDF(z)-cdf))
	}
	return stat.Mean(probs, nil)
}

// ImageBinary marks the pixels whose statistic exceeds the chi-squared
// critical value at significance level percent, reshaped to the series'
// pixel grid as rows of {0, 1}.
//
// The threshold uses only the leading chi-squared term; the W2 correction is
// deliberately ignored here, matching the test's original formulation.
func (t *Test) ImageBinary(percent float64) ([][]uint8, error) {
	if percent <= 0 || percent >= 1 {
		return nil, fmt.Errorf("%w: significance level %g outside (0, 1)", ErrInvalidInput, percent)
	}
	threshold := distuv.ChiSquared{K: float64(t.F)}.Quantile(1 - percent)
	w, h := t.Series.Shape()
	im := make([][]uint8, h)
	for y := range im {
		row := make([]uint8, w)
		for x := range row {
			if -2*t.LnQ[y*w+x] > threshold {
				row[x] = 1
			}
		}
		im[y] = row
	}
	return im, nil
}

// MaskedRegion restricts the test to the pixels selected by mask. The
// restricted test shares the distribution parameters (ENL, F, Rho, W2)
// unchanged and keeps the original statistic values at the selected pixels:
// nothing is recomputed from the restricted covariance data, so restricting
// and then querying is exactly consistent with querying the full test at
// those pixels.
func (t *Test) MaskedRegion(mask []bool) (*Test, error) {
	if len(mask) != len(t.LnQ) {
		return nil, fmt.Errorf("%w: mask has %d entries, test has %d pixels",
			ErrSizeMismatch, len(mask), len(t.LnQ))
	}
	sub, err := t.Series.MaskedRegion(mask)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSizeMismatch, err)
	}
	lnq := make([]float64, 0, len(t.LnQ))
	for i, selected := range mask {
		if selected {
			lnq = append(lnq, t.LnQ[i])
		}
	}
	return t.restricted(sub, lnq), nil
}

// restricted builds a sub-test from already-derived parameters, a restricted
// series and a restricted statistic. It is the only constructor that bypasses
// the statistic computation.
func (t *Test) restricted(series covimage.Series, lnq []float64) *Test {
	return &Test{
		Series: series,
		ENL:    t.ENL,
		K:      t.K,
		F:      t.F,
		Rho:    t.Rho,
		W2:     t.W2,
		LnQ:    lnq,
	}
}

// ImageAutoThresholds is reserved for automatic threshold selection.
func (t *Test) ImageAutoThresholds() ([][]uint8, error) {
	return nil, fmt.Errorf("%w: automatic threshold selection", ErrNotImplemented)
}

// ImageLinear is reserved for rendering a linear blend between two
// significance thresholds.
func (t *Test) ImageLinear(p1, p2 float64) ([][]float64, error) {
	return nil, fmt.Errorf("%w: linear threshold blending", ErrNotImplemented)
}

// ConsecutivePValues runs a pairwise Omnibus test over each adjacent pair of
// dates in the series and returns the k-1 p-values.
func ConsecutivePValues(series covimage.Series, enl float64) ([]float64, error) {
	if len(series) < 2 {
		return nil, fmt.Errorf("%w: pairwise tests need at least 2 images, got %d",
			ErrInvalidInput, len(series))
	}
	out := make([]float64, 0, len(series)-1)
	for i := 0; i+1 < len(series); i++ {
		pair, err := New(covimage.Series{series[i], series[i+1]}, enl)
		if err != nil {
			return nil, fmt.Errorf("pair %d-%d: %w", i, i+1, err)
		}
		out = append(out, pair.PValue())
	}
	return out, nil
}
