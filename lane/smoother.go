package lane

import (
	kalman_filter "github.com/LdDl/kalman-filter"
	"github.com/pkg/errors"
)

// baseSmoother smooths the pair of lane base x-positions (bottom-of-frame
// intercepts) across frames with a 2D Kalman filter, treating the pair
// (leftBaseX, rightBaseX) as one tracked point. Only the reported offset is
// refined by it; plot sequences stay raw so rendering matches the search.
type baseSmoother struct {
	dt     float64
	filter *kalman_filter.Kalman2D
}

func newBaseSmoother(dt float64) *baseSmoother {
	return &baseSmoother{dt: dt}
}

// smooth feeds one measurement pair and returns the filtered pair. The first
// measurement initializes the filter state and passes through unchanged.
func (smoother *baseSmoother) smooth(leftBase, rightBase float64) (float64, float64, error) {
	if smoother.filter == nil {
		ux := 1.0
		uy := 1.0
		stdDevA := 2.0
		stdDevMx := 0.1
		stdDevMy := 0.1
		smoother.filter = kalman_filter.NewKalman2D(smoother.dt, ux, uy, stdDevA, stdDevMx, stdDevMy,
			kalman_filter.WithState2D(leftBase, rightBase))
		return leftBase, rightBase, nil
	}
	smoother.filter.Predict()
	if err := smoother.filter.Update(leftBase, rightBase); err != nil {
		return leftBase, rightBase, errors.Wrap(err, "can't update base smoother")
	}
	smoothedLeft, smoothedRight := smoother.filter.GetState()
	return smoothedLeft, smoothedRight, nil
}

// reset drops the filter state so the next sequence starts fresh
func (smoother *baseSmoother) reset() {
	smoother.filter = nil
}
