// Package gochange provides change detection for polarimetric SAR time series.
//
// GoChange is a Go package for detecting changes across a temporal stack of
// multi-look polarimetric covariance-matrix images using likelihood-ratio
// tests. It implements the Omnibus test of the equality of k complex Wishart
// distributions, with Box's chi-squared approximation of the test statistic's
// distribution.
//
// # Features
//
//   - Omnibus likelihood-ratio test over k >= 2 covariance images
//   - Asymptotic p-values with second-order chi-squared correction
//   - Thresholded binary change masks at a chosen significance level
//   - Cheap restriction of a test to a region of interest
//   - Pairwise tests between consecutive dates
//   - Covariance image data structures with per-pixel Hermitian matrices
//
// # Quick Start
//
// Run the Omnibus test over a series of covariance images:
//
//	test, err := omnibus.New(series, 13) // 13 equivalent looks
//	fmt.Printf("average no-change probability: %.4f\n", test.PValue())
//
//	changed, _ := test.ImageBinary(0.01) // change mask at the 1% level
//
// Restrict the same test to a reference region without recomputation:
//
//	noChange, _ := test.MaskedRegion(mask)
//	fmt.Printf("reference region: %.4f\n", noChange.PValue())
//
// # Packages
//
// The library is organized into the following packages:
//
//   - omnibus: the Omnibus test statistic, p-values, masks and restrictions
//   - covimage: covariance-matrix images and series operations
//
// # References
//
//   - Conradsen, K., Nielsen, A. A., Schou, J., & Skriver, H. (2003). A test
//     statistic in the complex Wishart distribution and its application to
//     change detection in polarimetric SAR data
//   - Conradsen, K., Nielsen, A. A., & Skriver, H. (2016). Determining the
//     points of change in time series of polarimetric SAR data
package gochange
