package lane

import "image"

// BinaryFrame is a W x H grid of 0/1 values in top-down (bird's-eye) space.
// It is produced by external preprocessing (undistort, threshold, warp)
// and treated as immutable by the tracking engine.
type BinaryFrame struct {
	width  int
	height int
	pixels []uint8
}

// NewBinaryFrame creates an all-zero frame of the given dimensions
func NewBinaryFrame(width, height int) *BinaryFrame {
	return &BinaryFrame{
		width:  width,
		height: height,
		pixels: make([]uint8, width*height),
	}
}

// NewBinaryFrameFromGray converts a thresholded grayscale image to a binary
// frame. Any nonzero luminance counts as an "on" pixel.
func NewBinaryFrameFromGray(img *image.Gray) *BinaryFrame {
	bounds := img.Bounds()
	frame := NewBinaryFrame(bounds.Dx(), bounds.Dy())
	for y := 0; y < frame.height; y++ {
		for x := 0; x < frame.width; x++ {
			if img.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y != 0 {
				frame.Set(x, y)
			}
		}
	}
	return frame
}

// Width returns frame's width in pixels
func (frame *BinaryFrame) Width() int {
	return frame.width
}

// Height returns frame's height in pixels
func (frame *BinaryFrame) Height() int {
	return frame.height
}

// Set marks the pixel at (x, y) as "on". Out of range coordinates are ignored.
func (frame *BinaryFrame) Set(x, y int) {
	if x < 0 || x >= frame.width || y < 0 || y >= frame.height {
		return
	}
	frame.pixels[y*frame.width+x] = 1
}

// At reports whether the pixel at (x, y) is "on". Out of range coordinates read as "off".
func (frame *BinaryFrame) At(x, y int) bool {
	if x < 0 || x >= frame.width || y < 0 || y >= frame.height {
		return false
	}
	return frame.pixels[y*frame.width+x] != 0
}

// HalfHistogram sums pixel values column-wise over the bottom half of the
// frame. The two peaks of the histogram seed the cold-start search.
func (frame *BinaryFrame) HalfHistogram() []int {
	histogram := make([]int, frame.width)
	for y := frame.height / 2; y < frame.height; y++ {
		row := frame.pixels[y*frame.width : (y+1)*frame.width]
		for x, v := range row {
			histogram[x] += int(v)
		}
	}
	return histogram
}
