package lane

// PixelScale holds conversion factors between top-down pixel space and
// real-world meters. Values must match the upstream perspective transform.
type PixelScale struct {
	// Meters per pixel along the y (driving) direction
	YmPerPix float64
	// Meters per pixel along the x (lateral) direction
	XmPerPix float64
}

// DefaultPixelScale returns the scale for a 1280x720 top-down warp where
// the visible stretch of road is about 30 meters long and a lane is 3.7 meters wide over ~700 pixels.
func DefaultPixelScale() PixelScale {
	return PixelScale{
		YmPerPix: 30.0 / 720.0,
		XmPerPix: 3.7 / 700.0,
	}
}

// PolynomialFit is a second-order polynomial x = A*y^2 + B*y + C.
// Lane boundaries are nearly vertical in top-down space, so x is fitted as a function of y.
type PolynomialFit struct {
	A float64
	B float64
	C float64
}

// Eval evaluates the polynomial at the given y
func (fit PolynomialFit) Eval(y float64) float64 {
	return fit.A*y*y + fit.B*y + fit.C
}

// EvalSequence evaluates the polynomial at every y in ys
func (fit PolynomialFit) EvalSequence(ys []float64) []float64 {
	xs := make([]float64, len(ys))
	for i, y := range ys {
		xs[i] = fit.Eval(y)
	}
	return xs
}

// PlotRange returns height equally spaced y samples spanning [0, height-1],
// top of the frame first. Used to build plottable lane boundary sequences.
func PlotRange(height int) []float64 {
	ys := make([]float64, height)
	for i := range ys {
		ys[i] = float64(i)
	}
	return ys
}
