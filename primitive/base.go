package primitive

import (
	"fmt"

	"github.com/gogpu/charts"
	"github.com/gogpu/charts/render"
)

// Base carries the shared state and behavior of a primitive. Concrete
// tools embed it and implement TypeID, DisplayName, Kind, Render and
// Clone themselves.
type Base struct {
	D Data

	// minPoints and maxPoints bound the accepted anchor count.
	// maxPoints of 0 means unbounded (brushes, polylines).
	minPoints int
	maxPoints int
}

// NewBase creates shared state for a tool that accepts between min and
// max anchor points. Pass max 0 for unbounded tools. Callers may pass
// fewer than min points (a tool being placed click by click); the
// missing anchors are synthesized a fixed bar offset past the last
// supplied point so the tool renders immediately.
func NewBase(typeID, stroke string, points []Point, min, max int) Base {
	pts := clonePoints(points)
	for len(pts) < min {
		var last Point
		if len(pts) > 0 {
			last = pts[len(pts)-1]
		}
		pts = append(pts, Point{Bar: last.Bar + defaultPointOffset, Price: last.Price})
	}
	return Base{
		D:         NewData(typeID, stroke, pts),
		minPoints: min,
		maxPoints: max,
	}
}

// defaultPointOffset is the bar distance between a supplied anchor and
// a synthesized one.
const defaultPointOffset = 10

// Data implements Primitive.
func (b *Base) Data() *Data {
	return &b.D
}

// Points implements Primitive. The returned slice is a copy.
func (b *Base) Points() []Point {
	return clonePoints(b.D.Points)
}

// SetPoints implements Primitive, enforcing the tool's point count.
func (b *Base) SetPoints(points []Point) error {
	if len(points) < b.minPoints {
		return fmt.Errorf("%s needs at least %d points, got %d",
			b.D.TypeID, b.minPoints, len(points))
	}
	if b.maxPoints > 0 && len(points) > b.maxPoints {
		return fmt.Errorf("%s accepts at most %d points, got %d",
			b.D.TypeID, b.maxPoints, len(points))
	}
	b.D.Points = clonePoints(points)
	return nil
}

// Translate implements Primitive.
func (b *Base) Translate(barDelta, priceDelta float64) {
	for i := range b.D.Points {
		b.D.Points[i].Bar += barDelta
		b.D.Points[i].Price += priceDelta
	}
}

// TextAnchor implements Primitive; tools with labels override it.
func (b *Base) TextAnchor(ctx render.Context) (TextAnchor, bool) {
	return TextAnchor{}, false
}

// LevelConfigs implements Primitive; level tools override it.
func (b *Base) LevelConfigs() []LevelConfig {
	return nil
}

// SetLevelConfigs implements Primitive.
func (b *Base) SetLevelConfigs(configs []LevelConfig) bool {
	return false
}

// screenPoints converts the anchors to pixel coordinates.
func (b *Base) screenPoints(ctx render.Context) []charts.Point {
	out := make([]charts.Point, len(b.D.Points))
	for i, p := range b.D.Points {
		out[i] = charts.Pt(ctx.BarToX(p.Bar), ctx.PriceToY(p.Price))
	}
	return out
}

// anchorAbove returns a text anchor centered above the pixel midpoint
// of two screen points.
func (b *Base) anchorAbove(a, c charts.Point) (TextAnchor, bool) {
	if b.D.Text == nil || b.D.Text.Content == "" {
		return TextAnchor{}, false
	}
	mid := a.Lerp(c, 0.5)
	return TextAnchor{
		Pos:           charts.Pt(mid.X, mid.Y-10),
		FallbackColor: b.D.Color.Stroke,
	}, true
}

// cloneBase deep-copies the embedded state.
func (b *Base) cloneBase() Base {
	out := *b
	out.D.Points = clonePoints(b.D.Points)
	if b.D.Text != nil {
		t := *b.D.Text
		out.D.Text = &t
	}
	return out
}

func clonePoints(points []Point) []Point {
	if points == nil {
		return nil
	}
	out := make([]Point, len(points))
	copy(out, points)
	return out
}

// selectionHandles draws the editing handles on the anchor points.
func selectionHandles(ctx render.Context, points []charts.Point, stroke charts.Color) {
	for _, p := range points {
		ctx.FillCircle(p, 4, charts.ColorWhite)
		ctx.StrokeCircle(p, 4, render.SolidLine(stroke, 1))
	}
}
