package lane

import "github.com/pkg/errors"

var (
	// ErrEmptyPixelSet indicates that pixel search yielded zero points for a lane side
	ErrEmptyPixelSet = errors.New("pixel search yielded no points")
	// ErrInsufficientData indicates that a pixel set has fewer than 3 points or fewer than 3 distinct y-values
	ErrInsufficientData = errors.New("need at least 3 points with 3 distinct y-values")
)

// Side identifies one of the two tracked lane boundaries
type Side uint8

const (
	// LeftSide is the lane boundary left of the vehicle
	LeftSide Side = iota
	// RightSide is the lane boundary right of the vehicle
	RightSide
)

func (side Side) String() string {
	if side == LeftSide {
		return "left"
	}
	return "right"
}
