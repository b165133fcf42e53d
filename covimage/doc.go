// Package covimage provides covariance-matrix images for multi-look
// polarimetric SAR data.
//
// Each pixel of an Image holds a 3x3 Hermitian positive-definite covariance
// matrix summarizing the backscatter statistics of the three polarimetric
// channels. A Series is a date-ordered sequence of such images over a common
// pixel grid.
//
// # Building images
//
// Images can be filled per pixel from gonum complex matrices:
//
//	im := covimage.New(width, height)
//	m := mat.NewCDense(3, 3, entries)
//	im.SetMatrix(x, y, m)
//
// or created with one matrix everywhere:
//
//	im := covimage.NewConstant(width, height, m)
//
// # Series operations
//
// The operations consumed by the change-detection tests:
//
//	det := im.Determinant()          // per-pixel determinant
//	sum, _ := series.Sum()           // pixelwise matrix sum
//	sub, _ := im.MaskedRegion(mask)  // restrict to selected pixels
//
// A masked region is flattened to a 1 x n grid, preserving pixel order.
package covimage
