package covimage

import (
	"errors"
	"math"
	"testing"
)

func TestSeriesSum(t *testing.T) {
	a := NewConstant(2, 2, testMatrix())
	b := a.Scale(2)
	c := a.Scale(3)

	sum, err := Series{a, b, c}.Sum()
	if err != nil {
		t.Fatalf("Sum returned error: %v", err)
	}

	// a + 2a + 3a = 6a, so det = 216 * det(a) = 216 * 6.
	det := sum.Determinant()
	for i, d := range det {
		if math.Abs(d-216*6) > 1e-9 {
			t.Errorf("det of sum at pixel %d = %f, want %f", i, d, 216*6.0)
		}
	}
}

func TestSeriesSumDoesNotMutate(t *testing.T) {
	a := NewConstant(1, 1, testMatrix())
	b := NewConstant(1, 1, testMatrix())

	if _, err := (Series{a, b}).Sum(); err != nil {
		t.Fatalf("Sum returned error: %v", err)
	}
	if math.Abs(a.Determinant()[0]-6) > 1e-12 {
		t.Errorf("Sum mutated its first input: det = %f, want 6", a.Determinant()[0])
	}
}

func TestSeriesSumEmpty(t *testing.T) {
	if _, err := (Series{}).Sum(); err == nil {
		t.Error("Sum over empty series should fail")
	}
}

func TestSeriesValidateShapeMismatch(t *testing.T) {
	s := Series{New(2, 2), New(3, 2)}
	if err := s.Validate(); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("err = %v, want ErrShapeMismatch", err)
	}
}

func TestSeriesMaskedRegion(t *testing.T) {
	a := NewConstant(2, 2, testMatrix())
	b := a.Scale(2)
	mask := []bool{true, false, true, false}

	sub, err := Series{a, b}.MaskedRegion(mask)
	if err != nil {
		t.Fatalf("MaskedRegion returned error: %v", err)
	}
	if len(sub) != 2 {
		t.Fatalf("restricted series has %d images, want 2", len(sub))
	}
	for i, im := range sub {
		if im.Len() != 2 {
			t.Errorf("image %d has %d pixels, want 2", i, im.Len())
		}
	}

	if _, err := (Series{a, b}).MaskedRegion(make([]bool, 3)); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("err = %v, want ErrSizeMismatch", err)
	}
}
