package ocr

import (
	"fmt"
	"image"
)

// Region is an axis-aligned rectangle in pixels of the page raster at the
// extractor DPI. Left/Top are inclusive, Right/Bottom exclusive.
type Region struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// RegionFromSlice builds a Region from [left, top, right, bottom]. An empty
// slice means the full page and yields nil.
func RegionFromSlice(v []int) (*Region, error) {
	if len(v) == 0 {
		return nil, nil
	}
	if len(v) != 4 {
		return nil, fmt.Errorf("region needs 4 values, got %d", len(v))
	}
	r := &Region{Left: v[0], Top: v[1], Right: v[2], Bottom: v[3]}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r Region) Validate() error {
	if r.Left < 0 || r.Top < 0 || r.Right < 0 || r.Bottom < 0 {
		return fmt.Errorf("region %s: coordinates must not be negative", r)
	}
	if r.Right <= r.Left {
		return fmt.Errorf("region %s: right must be greater than left", r)
	}
	if r.Bottom <= r.Top {
		return fmt.Errorf("region %s: bottom must be greater than top", r)
	}
	return nil
}

func (r Region) Width() int  { return r.Right - r.Left }
func (r Region) Height() int { return r.Bottom - r.Top }

func (r Region) Rect() image.Rectangle {
	return image.Rect(r.Left, r.Top, r.Right, r.Bottom)
}

// ContainsPoint reports whether the raster point (x, y) lies inside r.
func (r Region) ContainsPoint(x, y float64) bool {
	return x >= float64(r.Left) && x < float64(r.Right) &&
		y >= float64(r.Top) && y < float64(r.Bottom)
}

func (r Region) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.Left, r.Top, r.Right, r.Bottom)
}
