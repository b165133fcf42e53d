package omnibus

import (
	"errors"
	"math"
	"testing"

	"github.com/sartorproj/gochange/covimage"
)

func TestHistogram(t *testing.T) {
	test, err := New(changedSeries(10, 8), 13)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	bins := 20
	hist, err := test.Histogram(bins)
	if err != nil {
		t.Fatalf("Histogram returned error: %v", err)
	}

	if len(hist.Counts) != bins {
		t.Errorf("got %d bins, want %d", len(hist.Counts), bins)
	}
	if len(hist.Edges) != bins+1 {
		t.Errorf("got %d edges, want %d", len(hist.Edges), bins+1)
	}
	if len(hist.PDFX) != len(hist.PDFY) {
		t.Errorf("pdf sample lengths differ: %d vs %d", len(hist.PDFX), len(hist.PDFY))
	}

	// The normalized histogram integrates to one.
	integral := 0.0
	for i, c := range hist.Counts {
		integral += c * (hist.Edges[i+1] - hist.Edges[i])
	}
	if math.Abs(integral-1) > 1e-9 {
		t.Errorf("histogram integrates to %f, want 1", integral)
	}

	for i := 1; i < len(hist.Edges); i++ {
		if hist.Edges[i] <= hist.Edges[i-1] {
			t.Fatalf("edges not increasing at %d: %f then %f", i, hist.Edges[i-1], hist.Edges[i])
		}
	}
}

func TestHistogramDegenerate(t *testing.T) {
	// Identical images give a statistic of zero everywhere; the histogram
	// must still bin it rather than fail on an empty range.
	im := variedImage(4, 4, 0)
	test, err := New(covimage.Series{im, im.Clone(), im.Clone()}, 13)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	hist, err := test.Histogram(10)
	if err != nil {
		t.Fatalf("Histogram returned error: %v", err)
	}
	total := 0.0
	for i, c := range hist.Counts {
		total += c * (hist.Edges[i+1] - hist.Edges[i])
	}
	if math.Abs(total-1) > 1e-9 {
		t.Errorf("histogram integrates to %f, want 1", total)
	}
}

func TestHistogramInvalidBins(t *testing.T) {
	test, err := New(changedSeries(4, 4), 13)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := test.Histogram(0); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}
