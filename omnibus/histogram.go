package omnibus

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// HistogramData summarizes the empirical distribution of the statistic
// -2*LnQ for external plotting, together with the leading chi-squared
// density sampled over the same range.
type HistogramData struct {
	// Counts are per-bin densities, normalized so the histogram
	// integrates to one.
	Counts []float64
	// Edges are the bin boundaries, len(Counts)+1 increasing values.
	Edges []float64
	// PDFX and PDFY sample the chi-squared(F) density over the
	// histogram range, for overlaying on the counts.
	PDFX, PDFY []float64
}

// pdfSamples is the number of points used to sample the overlay density.
const pdfSamples = 200

// Histogram bins the statistic -2*LnQ over the tested region. Over a
// no-change region the result should track the chi-squared(F) overlay.
func (t *Test) Histogram(bins int) (*HistogramData, error) {
	if bins < 1 {
		return nil, fmt.Errorf("%w: bins must be positive, got %d", ErrInvalidInput, bins)
	}

	z := make([]float64, len(t.LnQ))
	for i, lnq := range t.LnQ {
		z[i] = -2 * lnq
	}
	sort.Float64s(z)

	lo := z[0]
	hi := z[len(z)-1]
	if lo == hi {
		hi = lo + 1
	}
	// Keep the largest sample strictly inside the final bin.
	hi = math.Nextafter(hi, math.Inf(1))

	edges := make([]float64, bins+1)
	floats.Span(edges, lo, hi)
	counts := stat.Histogram(nil, edges, z, nil)

	// Normalize to a density.
	total := float64(len(z))
	for i := range counts {
		width := edges[i+1] - edges[i]
		counts[i] /= total * width
	}

	chi2 := distuv.ChiSquared{K: float64(t.F)}
	pdfX := make([]float64, pdfSamples)
	pdfY := make([]float64, pdfSamples)
	floats.Span(pdfX, lo, hi)
	for i, x := range pdfX {
		pdfY[i] = chi2.Prob(x)
	}

	return &HistogramData{
		Counts: counts,
		Edges:  edges,
		PDFX:   pdfX,
		PDFY:   pdfY,
	}, nil
}
