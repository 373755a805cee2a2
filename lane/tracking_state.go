package lane

// fitPair bundles the two boundary fits of one frame
type fitPair struct {
	left  PolynomialFit
	right PolynomialFit
}

// TrackingState holds the most recent valid fit pair and drives the
// cold/warm search mode selection. It is a two-state machine: cold until the
// first successful fit, warm afterwards, back to cold on fit failure or reset.
// A demotion to cold keeps the last valid fits around so an unfit frame can
// still be visualized; only Reset forgets them.
//
// Ownership: exactly one LaneTracker per state, never shared across
// independent video sequences and never mutated concurrently.
type TrackingState struct {
	warm   bool
	hasFit bool
	pixel  fitPair
	metric fitPair
}

// NewTrackingState creates a state with no prior fit (cold mode)
func NewTrackingState() *TrackingState {
	return &TrackingState{}
}

// HasPriorFit reports whether the next search may reuse the previous frame's
// curves (warm mode)
func (state *TrackingState) HasPriorFit() bool {
	return state.warm
}

// PriorFit returns the last valid pixel-space fit pair. ok is false before
// the first successful fit and after Reset. The fits survive a Demote so a
// failed frame can fall back on them.
func (state *TrackingState) PriorFit() (left, right PolynomialFit, ok bool) {
	return state.pixel.left, state.pixel.right, state.hasFit
}

// PriorMetricFit returns the last valid metric-space fit pair
func (state *TrackingState) PriorMetricFit() (left, right PolynomialFit, ok bool) {
	return state.metric.left, state.metric.right, state.hasFit
}

// Update stores a successful frame's fits and switches to warm mode
func (state *TrackingState) Update(pixel, metric fitPair) {
	state.pixel = pixel
	state.metric = metric
	state.hasFit = true
	state.warm = true
}

// Demote switches back to cold mode after a fit failure. The stored fits are
// kept for visualization fallback.
func (state *TrackingState) Demote() {
	state.warm = false
}

// Reset clears everything. Must be called when a new, unrelated video
// sequence begins.
func (state *TrackingState) Reset() {
	*state = TrackingState{}
}
