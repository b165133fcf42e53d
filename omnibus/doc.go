// Package omnibus implements the Omnibus likelihood-ratio test for change
// detection in time series of multi-look polarimetric covariance images.
//
// The test asks, per pixel, whether all k covariance images of a series share
// one common covariance matrix (no change) or not. Its log-likelihood-ratio
// statistic is
//
//	lnQ = n * (p*k*ln k + sum_i ln det(X_i) - k*ln det(sum_i X_i))
//
// with p = 3 the matrix dimension and n the equivalent number of looks.
// Under the no-change hypothesis, -2*rho*lnQ asymptotically follows a
// chi-squared distribution with f = (k-1)*p*p degrees of freedom, refined by
// a second-order correction term with f+4 degrees of freedom weighted by w2
// (Box's approximation).
//
// # Quick start
//
// Build a test and query it:
//
//	test, err := omnibus.New(series, 13)
//	if err != nil {
//	    // invalid series or looks
//	}
//	p := test.PValue()                  // average no-change probability
//	im, _ := test.ImageBinary(0.01)     // change mask at the 1% level
//
// Restrict to a region without recomputing the statistic:
//
//	forest, _ := test.MaskedRegion(forestMask)
//	p := forest.PValue()
//
// The restricted test reuses the parent's statistic values and distribution
// parameters, so its answers are exactly consistent with the full test.
//
// # Pairwise tests
//
// ConsecutivePValues tests each adjacent pair of dates, useful for locating
// which transition in a changed series caused the rejection:
//
//	ps, _ := omnibus.ConsecutivePValues(series, 13)
package omnibus
