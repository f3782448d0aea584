package render

import (
	"math"

	"github.com/gogpu/charts"
	"github.com/gogpu/charts/coords"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Recorder is a Context that records drawing operations into a Batch
// instead of rasterizing them. Hairline strokes and filled rectangles
// are snapped to device pixel boundaries as they are recorded, so every
// backend replays already-crisp geometry.
//
// Degenerate geometry (empty text, polylines with fewer than two
// points, non-positive radii) is skipped with a debug log rather than
// recorded.
type Recorder struct {
	batch *Batch
	space CoordinateSpace

	width  float64
	height float64
	dpr    float64

	// face measures text; nil falls back to a size-based estimate.
	face font.Face
}

// CoordinateSpace is the slice of the viewport a recorder needs:
// chart-space to pixel-space conversion.
type CoordinateSpace interface {
	BarToX(bar float64) float64
	PriceToY(price float64) float64
}

// NewRecorder creates a recorder over a viewport at the given device
// pixel ratio. dpr values below 1 are treated as 1.
func NewRecorder(vp *coords.Viewport, dpr float64) *Recorder {
	return NewRecorderSize(vp, vp.Width, vp.Height, dpr)
}

// NewRecorderSize creates a recorder with an explicit coordinate space
// and size. Useful when rendering into a sub-region of the canvas.
func NewRecorderSize(space CoordinateSpace, width, height, dpr float64) *Recorder {
	if dpr < 1 {
		dpr = 1
	}
	return &Recorder{
		batch:  NewBatch(),
		space:  space,
		width:  width,
		height: height,
		dpr:    dpr,
	}
}

// SetLayer sets the z-order layer of the batch being recorded.
func (r *Recorder) SetLayer(layer uint32) {
	r.batch.Layer = layer
}

// SetName labels the batch for debugging.
func (r *Recorder) SetName(name string) {
	r.batch.Name = name
}

// SetFace sets the font face used for text measurement.
func (r *Recorder) SetFace(face font.Face) {
	r.face = face
}

// Finish returns the recorded batch and starts a fresh one, so the
// recorder can be reused for the next frame.
func (r *Recorder) Finish() *Batch {
	b := r.batch
	r.batch = NewBatch()
	return b
}

// ChartWidth implements Context.
func (r *Recorder) ChartWidth() float64 { return r.width }

// ChartHeight implements Context.
func (r *Recorder) ChartHeight() float64 { return r.height }

// BarToX implements Context.
func (r *Recorder) BarToX(bar float64) float64 { return r.space.BarToX(bar) }

// PriceToY implements Context.
func (r *Recorder) PriceToY(price float64) float64 { return r.space.PriceToY(price) }

// DPR implements Context.
func (r *Recorder) DPR() float64 { return r.dpr }

// Line records a single line. Hairline strokes are snapped to device
// pixel boundaries.
func (r *Recorder) Line(from, to charts.Point, style LineStyle) {
	if from == to {
		return
	}
	if style.Width <= 1 {
		from, to = CrispLine(from, to, r.dpr)
	}
	r.batch.Push(LineCommand{From: from, To: to, Style: style})
}

// Polyline records connected line segments. Fewer than two points is a
// no-op.
func (r *Recorder) Polyline(points []charts.Point, style LineStyle) {
	if len(points) < 2 {
		charts.Logger().Debug("skipping degenerate polyline", "points", len(points))
		return
	}
	r.batch.Push(PolylineCommand{Points: points, Style: style})
}

// QuadraticCurve records a quadratic bezier stroke.
func (r *Recorder) QuadraticCurve(start, control, end charts.Point, style LineStyle) {
	r.batch.Push(QuadraticCurveCommand{Start: start, Control: control, End: end, Style: style})
}

// CubicCurve records a cubic bezier stroke.
func (r *Recorder) CubicCurve(start, control1, control2, end charts.Point, style LineStyle) {
	r.batch.Push(CubicCurveCommand{
		Start: start, Control1: control1, Control2: control2, End: end, Style: style,
	})
}

// FillRect records a filled rectangle snapped to whole device pixels.
func (r *Recorder) FillRect(rect charts.Rect, color charts.Color) {
	if rect.Empty() {
		return
	}
	r.batch.Push(FillRectCommand{Rect: CrispRect(rect, r.dpr), Color: color})
}

// StrokeRect records a stroked rectangle.
func (r *Recorder) StrokeRect(rect charts.Rect, style LineStyle) {
	if rect.Empty() {
		return
	}
	if style.Width <= 1 {
		off := StrokeOffset(style.Width, r.dpr)
		rect = charts.NewRect(
			math.Floor(rect.X*r.dpr)/r.dpr+off,
			math.Floor(rect.Y*r.dpr)/r.dpr+off,
			rect.W, rect.H,
		)
	}
	r.batch.Push(StrokeRectCommand{Rect: rect, Style: style})
}

// FillRoundedRect records a filled rounded rectangle.
func (r *Recorder) FillRoundedRect(rect charts.Rect, radius float64, color charts.Color) {
	if rect.Empty() {
		return
	}
	r.batch.Push(FillRoundedRectCommand{Rect: rect, Radius: radius, Color: color})
}

// StrokeRoundedRect records a stroked rounded rectangle.
func (r *Recorder) StrokeRoundedRect(rect charts.Rect, radius float64, style LineStyle) {
	if rect.Empty() {
		return
	}
	r.batch.Push(StrokeRoundedRectCommand{Rect: rect, Radius: radius, Style: style})
}

// FillCircle records a filled circle. Non-positive radii are skipped.
func (r *Recorder) FillCircle(center charts.Point, radius float64, color charts.Color) {
	if radius <= 0 {
		return
	}
	r.batch.Push(FillCircleCommand{Center: center, Radius: radius, Color: color})
}

// StrokeCircle records a stroked circle.
func (r *Recorder) StrokeCircle(center charts.Point, radius float64, style LineStyle) {
	if radius <= 0 {
		return
	}
	r.batch.Push(StrokeCircleCommand{Center: center, Radius: radius, Style: style})
}

// StrokeArc records a circular arc stroke.
func (r *Recorder) StrokeArc(center charts.Point, radius, startAngle, endAngle float64, style LineStyle) {
	if radius <= 0 {
		return
	}
	r.batch.Push(StrokeArcCommand{
		Center: center, Radius: radius,
		StartAngle: startAngle, EndAngle: endAngle, Style: style,
	})
}

// FillArc records a filled pie slice.
func (r *Recorder) FillArc(center charts.Point, radius, startAngle, endAngle float64, color charts.Color) {
	if radius <= 0 {
		return
	}
	r.batch.Push(FillArcCommand{
		Center: center, Radius: radius,
		StartAngle: startAngle, EndAngle: endAngle, Color: color,
	})
}

// FillPolygon records a filled polygon. Fewer than three points is a
// no-op.
func (r *Recorder) FillPolygon(points []charts.Point, color charts.Color) {
	if len(points) < 3 {
		charts.Logger().Debug("skipping degenerate polygon", "points", len(points))
		return
	}
	r.batch.Push(FillPolygonCommand{Points: points, Color: color})
}

// StrokePolygon records a stroked polygon outline.
func (r *Recorder) StrokePolygon(points []charts.Point, style LineStyle) {
	if len(points) < 3 {
		charts.Logger().Debug("skipping degenerate polygon", "points", len(points))
		return
	}
	r.batch.Push(StrokePolygonCommand{Points: points, Style: style})
}

// FillText records a text draw. Empty text is a no-op.
func (r *Recorder) FillText(text string, pos charts.Point, style TextStyle) {
	if text == "" {
		return
	}
	r.batch.Push(TextCommand{Text: text, Pos: pos, Style: style})
}

// FillTextRotated records rotated text; near-zero angles degrade to a
// plain text draw.
func (r *Recorder) FillTextRotated(text string, pos charts.Point, angle float64, style TextStyle) {
	if text == "" {
		return
	}
	if math.Abs(angle) < 0.001 {
		r.batch.Push(TextCommand{Text: text, Pos: pos, Style: style})
		return
	}
	r.batch.Push(TextRotatedCommand{Text: text, Pos: pos, Angle: angle, Style: style})
}

// FillTextWithBackground records text over a filled background.
func (r *Recorder) FillTextWithBackground(text string, pos charts.Point, style TextStyle, background charts.Color, padding float64) {
	if text == "" {
		return
	}
	r.batch.Push(TextWithBackgroundCommand{
		Text: text, Pos: pos, Style: style,
		Background: background, Padding: padding,
	})
}

// MeasureText returns the rendered text width using the configured font
// face, or a size-based estimate when no face is set.
func (r *Recorder) MeasureText(text string, style TextStyle) float64 {
	if r.face != nil {
		return float64(font.MeasureString(r.face, text)) / 64
	}
	size := style.Size
	if size <= 0 {
		size = 12
	}
	return float64(len(text)) * size * 0.6
}

// DrawImage records an image draw into the destination rectangle.
func (r *Recorder) DrawImage(id string, dst charts.Rect) {
	if id == "" || dst.Empty() {
		return
	}
	r.batch.Push(ImageCommand{ID: id, Dst: dst})
}

// Candlestick records a candlestick with its body width snapped to
// whole device pixels so all candles in a series match.
func (r *Recorder) Candlestick(cmd CandlestickCommand) {
	cmd.Width = CrispBarWidth(cmd.Width, r.dpr)
	cmd.X = CrispCoord(cmd.X, r.dpr)
	r.batch.Push(cmd)
}

// HistogramBar records a histogram bar with a crisp width.
func (r *Recorder) HistogramBar(cmd HistogramBarCommand) {
	cmd.Width = CrispBarWidth(cmd.Width, r.dpr)
	r.batch.Push(cmd)
}

// GridLine records a grid line snapped to a half-pixel boundary.
func (r *Recorder) GridLine(cmd GridLineCommand) {
	cmd.Pos = CrispCoord(cmd.Pos, r.dpr)
	r.batch.Push(cmd)
}

// Save records a state save.
func (r *Recorder) Save() {
	r.batch.Push(SaveCommand{})
}

// Restore records a state restore.
func (r *Recorder) Restore() {
	r.batch.Push(RestoreCommand{})
}

// PushClip records a clip push.
func (r *Recorder) PushClip(rect charts.Rect) {
	r.batch.Push(PushClipCommand{Rect: rect})
}

// PopClip records a clip pop.
func (r *Recorder) PopClip() {
	r.batch.Push(PopClipCommand{})
}

// SetAlpha records a global alpha change, clamped to [0, 1].
func (r *Recorder) SetAlpha(alpha float64) {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	r.batch.Push(SetAlphaCommand{Alpha: alpha})
}

var _ Context = (*Recorder)(nil)

// FaceMeasurer adapts a font face into a label measure function for
// tick layout.
func FaceMeasurer(face font.Face) coords.MeasureFunc {
	return func(s string) float64 {
		return float64(font.MeasureString(face, s)) / 64
	}
}

// DefaultMeasurer returns a measure function backed by the built-in
// 7x13 bitmap face. Good enough for tick collision layout when no real
// font is loaded.
func DefaultMeasurer() coords.MeasureFunc {
	return FaceMeasurer(basicfont.Face7x13)
}
