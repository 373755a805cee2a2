package lane

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// FitPolynomial fits x = A*y^2 + B*y + C to the pixel set by least squares
// using a QR factorization of the Vandermonde system. It fails when the set
// holds fewer than 3 points or fewer than 3 distinct y-values, since the
// fit is undefined in that case.
func FitPolynomial(points PixelSet) (PolynomialFit, error) {
	if points.Empty() {
		return PolynomialFit{}, ErrEmptyPixelSet
	}
	n := points.Len()
	if n < 3 || distinctCount(points.Ys) < 3 {
		return PolynomialFit{}, errors.Wrapf(ErrInsufficientData, "got %d points with %d distinct y-values", n, distinctCount(points.Ys))
	}

	vandermonde := mat.NewDense(n, 3, nil)
	observed := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		y := points.Ys[i]
		vandermonde.Set(i, 0, y*y)
		vandermonde.Set(i, 1, y)
		vandermonde.Set(i, 2, 1.0)
		observed.Set(i, 0, points.Xs[i])
	}

	var qr mat.QR
	qr.Factorize(vandermonde)
	var solution mat.Dense
	if err := qr.SolveTo(&solution, false, observed); err != nil {
		return PolynomialFit{}, errors.Wrap(err, "can't solve least squares system")
	}
	return PolynomialFit{
		A: solution.At(0, 0),
		B: solution.At(1, 0),
		C: solution.At(2, 0),
	}, nil
}

// FitPolynomialMetric fits the same polynomial after converting the pixel set
// to meters with the given scale. The resulting coefficients describe the lane
// boundary in real-world space and feed the curvature estimate.
func FitPolynomialMetric(points PixelSet, scale PixelScale) (PolynomialFit, error) {
	scaled := PixelSet{
		Xs: make([]float64, points.Len()),
		Ys: make([]float64, points.Len()),
	}
	for i := 0; i < points.Len(); i++ {
		scaled.Xs[i] = points.Xs[i] * scale.XmPerPix
		scaled.Ys[i] = points.Ys[i] * scale.YmPerPix
	}
	return FitPolynomial(scaled)
}
