package render

import (
	"math"

	"github.com/gogpu/charts"
)

// Crisp alignment snaps logical coordinates to device pixel boundaries
// so 1px lines render without anti-aliasing blur on any display density.
//
// A 1px stroke is crisp when its center sits on a half-pixel boundary
// (10.5, not 10.0); a filled rectangle is crisp when its edges sit on
// whole pixel boundaries.

// CrispCoord aligns a coordinate to a device pixel boundary for crisp
// 1px lines. dpr is the device pixel ratio (1.0 standard, 2.0 retina).
// The +0.5 device pixel offset centers the stroke on the boundary.
//
// CrispCoord is idempotent: applying it twice yields the same result.
func CrispCoord(coord, dpr float64) float64 {
	return math.Floor(coord*dpr)/dpr + 0.5/dpr
}

// CrispPoint aligns both coordinates of a point.
func CrispPoint(p charts.Point, dpr float64) charts.Point {
	return charts.Pt(CrispCoord(p.X, dpr), CrispCoord(p.Y, dpr))
}

// CrispLine aligns line endpoints for crisp rendering. Horizontal lines
// get their Y snapped to a half-pixel boundary and their X extent
// widened to whole pixels; vertical lines the transpose; diagonal lines
// have both endpoints snapped.
func CrispLine(from, to charts.Point, dpr float64) (charts.Point, charts.Point) {
	const axisEps = 0.001
	switch {
	case math.Abs(to.Y-from.Y) < axisEps:
		y := CrispCoord(from.Y, dpr)
		return charts.Pt(math.Floor(from.X*dpr)/dpr, y),
			charts.Pt(math.Ceil(to.X*dpr)/dpr, y)
	case math.Abs(to.X-from.X) < axisEps:
		x := CrispCoord(from.X, dpr)
		return charts.Pt(x, math.Floor(from.Y*dpr)/dpr),
			charts.Pt(x, math.Ceil(to.Y*dpr)/dpr)
	default:
		return CrispPoint(from, dpr), CrispPoint(to, dpr)
	}
}

// CrispRect aligns a rectangle's corners to whole device pixels
// independently, then enforces a minimum size of one device pixel so
// thin shapes never vanish.
func CrispRect(r charts.Rect, dpr float64) charts.Rect {
	x1 := math.Floor(r.X*dpr) / dpr
	y1 := math.Floor(r.Y*dpr) / dpr
	x2 := math.Floor(r.Right()*dpr) / dpr
	y2 := math.Floor(r.Bottom()*dpr) / dpr

	w := math.Max(x2-x1, 1/dpr)
	h := math.Max(y2-y1, 1/dpr)
	return charts.NewRect(x1, y1, w, h)
}

// CrispBarWidth snaps a bar width to a whole number of device pixels,
// minimum one. Used for candlestick bodies and histogram bars so all
// bars in a series render the same width.
func CrispBarWidth(baseWidth, dpr float64) float64 {
	pixels := math.Round(baseWidth * dpr)
	return math.Max(pixels/dpr, 1/dpr)
}

// StrokeOffset returns the offset that centers a hairline stroke on a
// pixel boundary: half a device pixel for strokes up to one device
// pixel wide, zero otherwise.
func StrokeOffset(strokeWidth, dpr float64) float64 {
	if strokeWidth <= 1/dpr {
		return 0.5 / dpr
	}
	return 0
}
