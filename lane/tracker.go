package lane

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// LaneGeometry is the per-frame result consumed by the rendering pipeline.
// Curvature and offset are in meters; the plot sequences are in pixel space,
// aligned to PlotY, ready for the inverse perspective warp.
type LaneGeometry struct {
	// Radius of the lane curvature in meters, floor of the left/right average,
	// saturated at MaxRadius for straight lanes
	RadiusMeters float64
	// Signed lateral offset of the vehicle from lane center in meters.
	// Positive means the vehicle is right of center, negative left of it.
	OffsetMeters float64
	// PlotY spans [0, Height-1], one sample per row
	PlotY []float64
	// Evaluated boundary x per row, pixel space
	LeftPlotX  []float64
	RightPlotX []float64
	// Pixel-space fits the geometry was built from
	LeftFit  PolynomialFit
	RightFit PolynomialFit
	// Number of pixels attributed to each side (0 when reusing a prior fit)
	LeftPixels  int
	RightPixels int
	// Unfit marks a frame whose own pixels could not be fitted, so the
	// geometry reuses the previous valid fit
	Unfit bool
}

// LaneTracker is the single per-frame entry point of the engine. It owns one
// TrackingState and must process frames of one video sequence sequentially;
// parallel pipelines need one tracker each.
type LaneTracker struct {
	sessionID uuid.UUID
	config    SearchConfig
	scale     PixelScale
	state     *TrackingState
	smoother  *baseSmoother
}

// Option configures a LaneTracker
type Option func(*LaneTracker)

// WithSearchConfig overrides the default search parameters
func WithSearchConfig(config SearchConfig) Option {
	return func(tracker *LaneTracker) {
		tracker.config = config
	}
}

// WithPixelScale overrides the default pixel-to-metric conversion factors
func WithPixelScale(scale PixelScale) Option {
	return func(tracker *LaneTracker) {
		tracker.scale = scale
	}
}

// WithBaseSmoothing enables Kalman smoothing of the lane base positions
// across frames. dt is the frame interval in seconds (e.g. 1.0/25.0 for 25
// fps). Smoothing refines the reported offset only.
func WithBaseSmoothing(dt float64) Option {
	return func(tracker *LaneTracker) {
		tracker.smoother = newBaseSmoother(dt)
	}
}

// NewLaneTracker creates a tracker with default parameters, optionally
// adjusted by options
func NewLaneTracker(options ...Option) *LaneTracker {
	tracker := &LaneTracker{
		sessionID: uuid.New(),
		config:    DefaultSearchConfig(),
		scale:     DefaultPixelScale(),
		state:     NewTrackingState(),
	}
	for _, option := range options {
		option(tracker)
	}
	return tracker
}

// SessionID returns the identifier of the current tracking session
func (tracker *LaneTracker) SessionID() uuid.UUID {
	return tracker.sessionID
}

// State exposes the tracking state for inspection
func (tracker *LaneTracker) State() *TrackingState {
	return tracker.state
}

// Reset starts a new, unrelated tracking session: prior fits and smoother
// state are dropped and a fresh session identifier is assigned.
func (tracker *LaneTracker) Reset() {
	tracker.state.Reset()
	if tracker.smoother != nil {
		tracker.smoother.reset()
	}
	tracker.sessionID = uuid.New()
}

// Process runs one frame through the engine: mode selection, pixel search,
// pixel and metric fits, curvature and offset. On success the state is
// updated and warm mode engaged for the next frame. When either side fails
// to fit, the previous valid fit is reused with Unfit set and the state is
// demoted to cold; on the very first frame there is nothing to fall back on
// and the error is returned instead.
func (tracker *LaneTracker) Process(frame *BinaryFrame) (LaneGeometry, error) {
	var leftPixels, rightPixels PixelSet
	if tracker.state.HasPriorFit() {
		priorLeft, priorRight, _ := tracker.state.PriorFit()
		leftPixels, rightPixels = PolynomialSearch(frame, priorLeft, priorRight, tracker.config)
	} else {
		leftPixels, rightPixels = SlidingWindowSearch(frame, tracker.config)
	}

	pixel, metric, err := tracker.fitSides(leftPixels, rightPixels)
	if err != nil {
		return tracker.recoverFrame(frame, err)
	}

	geometry := tracker.buildGeometry(frame, pixel, metric, true)
	geometry.LeftPixels = leftPixels.Len()
	geometry.RightPixels = rightPixels.Len()
	tracker.state.Update(pixel, metric)
	return geometry, nil
}

// fitSides fits both boundaries in pixel and metric space. The frame counts
// as fitted only when all four fits succeed.
func (tracker *LaneTracker) fitSides(leftPixels, rightPixels PixelSet) (fitPair, fitPair, error) {
	var pixel, metric fitPair
	var err error

	if pixel.left, err = FitPolynomial(leftPixels); err != nil {
		return pixel, metric, errors.Wrapf(err, "can't fit %s lane", LeftSide)
	}
	if pixel.right, err = FitPolynomial(rightPixels); err != nil {
		return pixel, metric, errors.Wrapf(err, "can't fit %s lane", RightSide)
	}
	if metric.left, err = FitPolynomialMetric(leftPixels, tracker.scale); err != nil {
		return pixel, metric, errors.Wrapf(err, "can't fit %s lane in metric space", LeftSide)
	}
	if metric.right, err = FitPolynomialMetric(rightPixels, tracker.scale); err != nil {
		return pixel, metric, errors.Wrapf(err, "can't fit %s lane in metric space", RightSide)
	}
	return pixel, metric, nil
}

// recoverFrame handles a frame whose pixels could not be fitted. With a prior
// valid fit the geometry is rebuilt from it and flagged Unfit while the state
// drops to cold mode; without one the failure is surfaced to the caller.
func (tracker *LaneTracker) recoverFrame(frame *BinaryFrame, cause error) (LaneGeometry, error) {
	priorLeft, priorRight, ok := tracker.state.PriorFit()
	if !ok {
		return LaneGeometry{}, cause
	}
	metricLeft, metricRight, _ := tracker.state.PriorMetricFit()
	tracker.state.Demote()

	geometry := tracker.buildGeometry(frame,
		fitPair{left: priorLeft, right: priorRight},
		fitPair{left: metricLeft, right: metricRight},
		false)
	geometry.Unfit = true
	return geometry, nil
}

// buildGeometry derives curvature, offset and plottable sequences from a fit
// pair. fresh marks geometry built from this frame's own pixels; only fresh
// base positions feed the optional smoother.
func (tracker *LaneTracker) buildGeometry(frame *BinaryFrame, pixel, metric fitPair, fresh bool) LaneGeometry {
	plotY := PlotRange(frame.Height())
	yBottom := float64(frame.Height() - 1)

	leftBase := pixel.left.Eval(yBottom)
	rightBase := pixel.right.Eval(yBottom)
	if fresh && tracker.smoother != nil {
		// Smoothing errors leave the raw pair in place, nothing to surface
		leftBase, rightBase, _ = tracker.smoother.smooth(leftBase, rightBase)
	}

	return LaneGeometry{
		RadiusMeters: reportedRadius(metric.left, metric.right, yBottom*tracker.scale.YmPerPix),
		OffsetMeters: lateralOffset(float64(frame.Width()), leftBase, rightBase, tracker.scale),
		PlotY:        plotY,
		LeftPlotX:    pixel.left.EvalSequence(plotY),
		RightPlotX:   pixel.right.EvalSequence(plotY),
		LeftFit:      pixel.left,
		RightFit:     pixel.right,
	}
}

// lateralOffset computes the signed distance in meters between the frame
// center (assumed vehicle position) and the midpoint of the two lane bases.
func lateralOffset(frameWidth, leftBase, rightBase float64, scale PixelScale) float64 {
	laneCenter := (leftBase + rightBase) / 2.0
	return (frameWidth/2.0 - laneCenter) * scale.XmPerPix
}
