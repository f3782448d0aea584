package render

import "github.com/gogpu/charts"

// Context is the drawing interface primitives render through. It pairs
// the chart's coordinate transforms with structured drawing operations,
// keeping primitives independent of the backend (GPU, SVG, canvas).
//
// All geometry is in logical pixels; implementations handle device
// pixel alignment themselves.
type Context interface {
	// Chart dimensions in logical pixels.
	ChartWidth() float64
	ChartHeight() float64

	// Coordinate conversion from chart space to pixel space.
	BarToX(bar float64) float64
	PriceToY(price float64) float64

	// DPR is the device pixel ratio (1.0 standard, 2.0 retina).
	DPR() float64

	// Lines and curves.
	Line(from, to charts.Point, style LineStyle)
	Polyline(points []charts.Point, style LineStyle)
	QuadraticCurve(start, control, end charts.Point, style LineStyle)
	CubicCurve(start, control1, control2, end charts.Point, style LineStyle)

	// Rectangles.
	FillRect(r charts.Rect, color charts.Color)
	StrokeRect(r charts.Rect, style LineStyle)
	FillRoundedRect(r charts.Rect, radius float64, color charts.Color)
	StrokeRoundedRect(r charts.Rect, radius float64, style LineStyle)

	// Circles and arcs.
	FillCircle(center charts.Point, radius float64, color charts.Color)
	StrokeCircle(center charts.Point, radius float64, style LineStyle)
	StrokeArc(center charts.Point, radius, startAngle, endAngle float64, style LineStyle)
	FillArc(center charts.Point, radius, startAngle, endAngle float64, color charts.Color)

	// Polygons.
	FillPolygon(points []charts.Point, color charts.Color)
	StrokePolygon(points []charts.Point, style LineStyle)

	// Text. MeasureText returns the rendered width in logical pixels.
	FillText(text string, pos charts.Point, style TextStyle)
	FillTextRotated(text string, pos charts.Point, angle float64, style TextStyle)
	FillTextWithBackground(text string, pos charts.Point, style TextStyle, background charts.Color, padding float64)
	MeasureText(text string, style TextStyle) float64

	// Images, identified by URL or cache key.
	DrawImage(id string, dst charts.Rect)

	// Chart series shortcuts.
	Candlestick(cmd CandlestickCommand)
	HistogramBar(cmd HistogramBarCommand)
	GridLine(cmd GridLineCommand)

	// State.
	Save()
	Restore()
	PushClip(r charts.Rect)
	PopClip()
	SetAlpha(alpha float64)
}
