package lane

// PixelSet holds the coordinates of pixels attributed to one lane side.
// Xs and Ys always have equal length. An empty set is a valid state, not an error.
type PixelSet struct {
	Xs []float64
	Ys []float64
}

// Len returns the number of pixels in the set
func (points PixelSet) Len() int {
	return len(points.Xs)
}

// Empty reports whether the set contains no pixels
func (points PixelSet) Empty() bool {
	return len(points.Xs) == 0
}

func (points *PixelSet) add(x, y int) {
	points.Xs = append(points.Xs, float64(x))
	points.Ys = append(points.Ys, float64(y))
}

// SearchConfig holds tuning parameters for both search modes
type SearchConfig struct {
	// Number of sliding windows stacked over the frame height. Default 9
	NWindows int
	// Half-width of a sliding window in pixels (cold-start). Default 80
	Margin int
	// Half-width of the neighborhood around the prior fit in pixels (warm-start). Default 60
	WarmMargin int
	// Minimum number of pixels inside a window required to recenter it. Default 30
	MinPix int
}

// DefaultSearchConfig creates default search parameters
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		NWindows:   9,
		Margin:     80,
		WarmMargin: 60,
		MinPix:     30,
	}
}

// SlidingWindowSearch extracts left/right lane pixels with no prior knowledge.
// A column histogram of the bottom half seeds one x-center per half of the
// frame, then a stack of windows walks from the bottom up, recentering on the
// mean x of the pixels it collects whenever enough of them are found.
func SlidingWindowSearch(frame *BinaryFrame, config SearchConfig) (PixelSet, PixelSet) {
	histogram := frame.HalfHistogram()
	midpoint := len(histogram) / 2

	leftCenter := argmaxInt(histogram[:midpoint])
	rightCenter := midpoint + argmaxInt(histogram[midpoint:])

	if config.NWindows < 1 {
		config.NWindows = 1
	}
	windowHeight := frame.Height() / config.NWindows

	var leftPixels, rightPixels PixelSet
	for window := 0; window < config.NWindows; window++ {
		yHigh := frame.Height() - window*windowHeight
		yLow := yHigh - windowHeight

		leftCenter = collectWindow(frame, &leftPixels, leftCenter, yLow, yHigh, config)
		rightCenter = collectWindow(frame, &rightPixels, rightCenter, yLow, yHigh, config)
	}
	return leftPixels, rightPixels
}

// collectWindow gathers "on" pixels inside one window and returns the x-center
// for the next (upper) window. The center moves to the mean x of the collected
// pixels only when at least MinPix of them were found.
func collectWindow(frame *BinaryFrame, points *PixelSet, center, yLow, yHigh int, config SearchConfig) int {
	xLow := maxInt(center-config.Margin, 0)
	xHigh := minInt(center+config.Margin, frame.Width())

	found := 0
	sumX := 0
	for y := maxInt(yLow, 0); y < yHigh; y++ {
		for x := xLow; x < xHigh; x++ {
			if frame.At(x, y) {
				points.add(x, y)
				sumX += x
				found++
			}
		}
	}
	if found >= config.MinPix {
		return sumX / found
	}
	return center
}

// PolynomialSearch extracts left/right lane pixels around the previous frame's
// fitted curves. Every "on" pixel whose x lies within WarmMargin of a side's
// predicted x at that row is attributed to that side. A pixel may satisfy both
// sides when the curves overlap; no further resolution is performed.
func PolynomialSearch(frame *BinaryFrame, leftFit, rightFit PolynomialFit, config SearchConfig) (PixelSet, PixelSet) {
	margin := float64(config.WarmMargin)

	var leftPixels, rightPixels PixelSet
	for y := 0; y < frame.Height(); y++ {
		yf := float64(y)
		leftPredicted := leftFit.Eval(yf)
		rightPredicted := rightFit.Eval(yf)
		for x := 0; x < frame.Width(); x++ {
			if !frame.At(x, y) {
				continue
			}
			xf := float64(x)
			if xf > leftPredicted-margin && xf < leftPredicted+margin {
				leftPixels.add(x, y)
			}
			if xf > rightPredicted-margin && xf < rightPredicted+margin {
				rightPixels.add(x, y)
			}
		}
	}
	return leftPixels, rightPixels
}
