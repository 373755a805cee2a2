package lane

import (
	"math"
	"testing"

	"github.com/pkg/errors"
)

func TestProcessFirstFrameAllZero(t *testing.T) {
	tracker := NewLaneTracker()
	frame := NewBinaryFrame(1280, 720)

	_, err := tracker.Process(frame)
	if err == nil {
		t.Error("first frame without lane pixels should fail")
		return
	}
	if errors.Cause(err) != ErrEmptyPixelSet {
		t.Errorf("Wrong error: %v, correct error: %v", err, ErrEmptyPixelSet)
	}
	if tracker.State().HasPriorFit() {
		t.Error("state should stay cold after a failed first frame")
	}
}

func TestProcessCenteredLane(t *testing.T) {
	tracker := NewLaneTracker()
	// Lane bases at 500 and 780 on a 1280 px wide frame: lane center matches
	// frame center exactly
	frame := stripeFrame(1280, 720, 2, 500, 780)

	geometry, err := tracker.Process(frame)
	if err != nil {
		t.Error(err)
		return
	}
	if geometry.Unfit {
		t.Error("frame with clean pixels should not be flagged unfit")
	}
	if math.Abs(geometry.OffsetMeters) > eps {
		t.Errorf("Wrong offset: %v, correct offset: %v", geometry.OffsetMeters, 0.0)
	}
	if geometry.RadiusMeters != MaxRadius {
		t.Errorf("Straight lane should saturate curvature: %v, cap: %v", geometry.RadiusMeters, MaxRadius)
	}
	if len(geometry.PlotY) != 720 || len(geometry.LeftPlotX) != 720 || len(geometry.RightPlotX) != 720 {
		t.Error("plot sequences should hold one sample per row")
	}
	if geometry.LeftPixels == 0 || geometry.RightPixels == 0 {
		t.Error("pixel counts should be reported for a fresh fit")
	}
	if !tracker.State().HasPriorFit() {
		t.Error("state should be warm after a successful frame")
	}
}

func TestLateralOffsetSign(t *testing.T) {
	scale := DefaultPixelScale()
	answer := lateralOffset(1280.0, 500.0, 780.0, scale)
	if answer != 0.0 {
		t.Errorf("Wrong offset: %v, correct offset: %v", answer, 0.0)
	}

	// Lane shifted 50 px right: vehicle is now left of lane center
	shifted := lateralOffset(1280.0, 550.0, 830.0, scale)
	correctAnswer := -50.0 * scale.XmPerPix
	if math.Abs(shifted-correctAnswer) > eps {
		t.Errorf("Wrong offset: %v, correct offset: %v", shifted, correctAnswer)
	}
	if shifted >= 0.0 {
		t.Errorf("Offset should be negative (vehicle left of center): %v", shifted)
	}
}

func TestProcessSequentialReuse(t *testing.T) {
	tracker := NewLaneTracker()
	clean := stripeFrame(1280, 720, 2, 400, 900)

	first, err := tracker.Process(clean)
	if err != nil {
		t.Error(err)
		return
	}
	if !tracker.State().HasPriorFit() {
		t.Error("state should be warm after the first successful frame")
	}

	// All-zero frame must reuse the previous fit instead of failing
	second, err := tracker.Process(NewBinaryFrame(1280, 720))
	if err != nil {
		t.Error(err)
		return
	}
	if !second.Unfit {
		t.Error("frame without pixels should be flagged unfit")
	}
	if second.LeftFit != first.LeftFit || second.RightFit != first.RightFit {
		t.Error("unfit frame should reuse the previous valid fit")
	}
	if tracker.State().HasPriorFit() {
		t.Error("fit failure should demote the state to cold")
	}

	// Cold-start search must recover on the next clean frame
	third, err := tracker.Process(clean)
	if err != nil {
		t.Error(err)
		return
	}
	if third.Unfit {
		t.Error("clean frame after recovery should not be flagged unfit")
	}
	if !tracker.State().HasPriorFit() {
		t.Error("state should be warm again after recovery")
	}
}

func TestProcessWarmStartFollowsLane(t *testing.T) {
	tracker := NewLaneTracker()
	if _, err := tracker.Process(stripeFrame(1280, 720, 2, 400, 900)); err != nil {
		t.Error(err)
		return
	}

	// Lane moved 5 px between frames, well inside the warm margin
	geometry, err := tracker.Process(stripeFrame(1280, 720, 2, 405, 905))
	if err != nil {
		t.Error(err)
		return
	}
	if geometry.Unfit {
		t.Error("warm-start frame should fit")
	}
	leftBase := geometry.LeftFit.Eval(719.0)
	if math.Abs(leftBase-405.0) > 0.001 {
		t.Errorf("Wrong left base: %v, correct base: %v", leftBase, 405.0)
	}
}

func TestReset(t *testing.T) {
	tracker := NewLaneTracker()
	if _, err := tracker.Process(stripeFrame(1280, 720, 2, 400, 900)); err != nil {
		t.Error(err)
		return
	}
	oldSession := tracker.SessionID()

	tracker.Reset()
	if tracker.State().HasPriorFit() {
		t.Error("state should be cold after reset")
	}
	if _, _, ok := tracker.State().PriorFit(); ok {
		t.Error("prior fits should be gone after reset")
	}
	if tracker.SessionID() == oldSession {
		t.Error("reset should assign a new session identifier")
	}

	// A fresh sequence starting with an empty frame fails again, as on the
	// very first call
	if _, err := tracker.Process(NewBinaryFrame(1280, 720)); err == nil {
		t.Error("empty frame after reset should fail")
	}
}

func TestProcessWithBaseSmoothing(t *testing.T) {
	tracker := NewLaneTracker(WithBaseSmoothing(1.0 / 25.0))
	frame := stripeFrame(1280, 720, 2, 500, 780)

	var offsets []float64
	for i := 0; i < 5; i++ {
		geometry, err := tracker.Process(frame)
		if err != nil {
			t.Error(err)
			return
		}
		if math.IsNaN(geometry.OffsetMeters) {
			t.Error("smoothed offset should never be NaN")
			return
		}
		offsets = append(offsets, geometry.OffsetMeters)
	}
	// Constant measurements keep the filtered offset near the raw one
	for i, offset := range offsets {
		if math.Abs(offset-offsets[0]) > 0.1 {
			t.Errorf("Smoothed offset drifted at frame %d: %v vs %v", i, offset, offsets[0])
		}
	}
}
