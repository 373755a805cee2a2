package lane

import "math"

// MaxRadius is the saturation cap for the curvature radius in meters.
// A straight lane has infinite radius; the cap keeps downstream math
// free of Inf and NaN.
const MaxRadius = 10000.0

// degenerate leading coefficient threshold
const minLeadingCoeff = 1e-12

// RadiusOfCurvature computes the radius of the osculating circle to the fit
// at yEval, both in meters. A near-zero leading coefficient (straight line)
// saturates to MaxRadius instead of diverging.
func RadiusOfCurvature(fit PolynomialFit, yEval float64) float64 {
	denominator := math.Abs(2.0 * fit.A)
	if denominator < minLeadingCoeff {
		return MaxRadius
	}
	slope := 2.0*fit.A*yEval + fit.B
	radius := math.Pow(1.0+slope*slope, 1.5) / denominator
	if radius > MaxRadius || math.IsNaN(radius) {
		return MaxRadius
	}
	return radius
}

// reportedRadius is the curvature published per frame: the floor of the
// average of the left and right radii evaluated at the same y.
func reportedRadius(left, right PolynomialFit, yEval float64) float64 {
	return math.Floor((RadiusOfCurvature(left, yEval) + RadiusOfCurvature(right, yEval)) / 2.0)
}
