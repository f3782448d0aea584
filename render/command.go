// Package render implements the command-buffer rendering pipeline.
//
// Drawing operations are captured as typed command structures instead of
// immediate rasterization. Commands are pushed into a Batch, which tracks
// the bounding box of its draw commands incrementally, can cull commands
// against a viewport and is replayed by a backend.
//
// # Architecture
//
//   - Command: one atomic drawing operation (line, rect, text, candlestick)
//   - Batch: an ordered command list with incremental bounds
//   - Queue: layered batches drawn back-to-front
//   - Context: the drawing interface primitives render through
//   - Recorder: a Context that records into a Batch with crisp alignment
//
// # Example
//
//	rec := render.NewRecorder(vp, 2.0)
//	rec.Line(charts.Pt(10, 10), charts.Pt(90, 40), style)
//	batch := rec.Finish()
//	batch.Cull(charts.NewRect(0, 0, 800, 600))
package render

import "github.com/gogpu/charts"

// CommandType identifies the type of a command.
type CommandType uint8

const (
	// State commands
	CmdSave     CommandType = iota // Save transform, clip and alpha
	CmdRestore                     // Restore previous state
	CmdPushClip                    // Push a clip rectangle
	CmdPopClip                     // Pop the current clip
	CmdSetAlpha                    // Set global alpha

	// Drawing commands
	CmdLine
	CmdPolyline
	CmdFillRect
	CmdStrokeRect
	CmdFillRoundedRect
	CmdStrokeRoundedRect
	CmdFillCircle
	CmdStrokeCircle
	CmdStrokeArc
	CmdFillArc
	CmdFillPolygon
	CmdStrokePolygon
	CmdQuadraticCurve
	CmdCubicCurve
	CmdText
	CmdTextRotated
	CmdTextWithBackground
	CmdImage

	// Composite chart commands
	CmdCandlestick
	CmdHistogramBar
	CmdGridLine
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdSave:               "Save",
	CmdRestore:            "Restore",
	CmdPushClip:           "PushClip",
	CmdPopClip:            "PopClip",
	CmdSetAlpha:           "SetAlpha",
	CmdLine:               "Line",
	CmdPolyline:           "Polyline",
	CmdFillRect:           "FillRect",
	CmdStrokeRect:         "StrokeRect",
	CmdFillRoundedRect:    "FillRoundedRect",
	CmdStrokeRoundedRect:  "StrokeRoundedRect",
	CmdFillCircle:         "FillCircle",
	CmdStrokeCircle:       "StrokeCircle",
	CmdStrokeArc:          "StrokeArc",
	CmdFillArc:            "FillArc",
	CmdFillPolygon:        "FillPolygon",
	CmdStrokePolygon:      "StrokePolygon",
	CmdQuadraticCurve:     "QuadraticCurve",
	CmdCubicCurve:         "CubicCurve",
	CmdText:               "Text",
	CmdTextRotated:        "TextRotated",
	CmdTextWithBackground: "TextWithBackground",
	CmdImage:              "Image",
	CmdCandlestick:        "Candlestick",
	CmdHistogramBar:       "HistogramBar",
	CmdGridLine:           "GridLine",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all command types.
// Commands are self-contained: executing one needs no state beyond the
// batch it sits in.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
	// Bounds returns the command's bounding rectangle in logical pixels.
	// State commands return false: they have no spatial extent.
	Bounds() (charts.Rect, bool)
	// IsState reports whether this command mutates renderer state
	// rather than drawing. State commands survive culling.
	IsState() bool
}

// --------------------------------------------------------------------------
// Styles
// --------------------------------------------------------------------------

// LineStyle describes how strokes are drawn.
type LineStyle struct {
	Color charts.Color
	// Width is the stroke width in logical pixels.
	Width float64
	// Dash is the dash pattern (alternating dash and gap lengths).
	// Nil or empty means solid.
	Dash []float64
}

// SolidLine creates a solid line style.
func SolidLine(color charts.Color, width float64) LineStyle {
	return LineStyle{Color: color, Width: width}
}

// DashedLine creates a dashed line style.
func DashedLine(color charts.Color, width float64, dash []float64) LineStyle {
	return LineStyle{Color: color, Width: width, Dash: dash}
}

// FillStyle describes how shapes are filled.
type FillStyle struct {
	Color charts.Color
}

// TextAlign is the horizontal text alignment relative to the anchor.
type TextAlign uint8

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// TextBaseline is the vertical text alignment relative to the anchor.
type TextBaseline uint8

const (
	BaselineAlphabetic TextBaseline = iota
	BaselineTop
	BaselineMiddle
	BaselineBottom
)

// TextStyle describes how text is drawn.
type TextStyle struct {
	Color    charts.Color
	Size     float64
	Family   string
	Bold     bool
	Align    TextAlign
	Baseline TextBaseline
}

// --------------------------------------------------------------------------
// State Commands
// --------------------------------------------------------------------------

// SaveCommand saves the current transform, clip and alpha.
type SaveCommand struct{}

func (SaveCommand) Type() CommandType { return CmdSave }
func (SaveCommand) Bounds() (charts.Rect, bool) { return charts.Rect{}, false }
func (SaveCommand) IsState() bool { return true }

// RestoreCommand restores the previously saved state.
type RestoreCommand struct{}

func (RestoreCommand) Type() CommandType { return CmdRestore }
func (RestoreCommand) Bounds() (charts.Rect, bool) { return charts.Rect{}, false }
func (RestoreCommand) IsState() bool { return true }

// PushClipCommand pushes a clip rectangle.
type PushClipCommand struct {
	Rect charts.Rect
}

func (PushClipCommand) Type() CommandType { return CmdPushClip }
func (c PushClipCommand) Bounds() (charts.Rect, bool) { return charts.Rect{}, false }
func (PushClipCommand) IsState() bool { return true }

// PopClipCommand restores the previous clip.
type PopClipCommand struct{}

func (PopClipCommand) Type() CommandType { return CmdPopClip }
func (PopClipCommand) Bounds() (charts.Rect, bool) { return charts.Rect{}, false }
func (PopClipCommand) IsState() bool { return true }

// SetAlphaCommand sets the global alpha applied to subsequent commands.
type SetAlphaCommand struct {
	Alpha float64
}

func (SetAlphaCommand) Type() CommandType { return CmdSetAlpha }
func (SetAlphaCommand) Bounds() (charts.Rect, bool) { return charts.Rect{}, false }
func (SetAlphaCommand) IsState() bool { return true }

// --------------------------------------------------------------------------
// Drawing Commands
// --------------------------------------------------------------------------

// LineCommand draws a single straight line.
type LineCommand struct {
	From  charts.Point
	To    charts.Point
	Style LineStyle
}

func (LineCommand) Type() CommandType { return CmdLine }
func (c LineCommand) Bounds() (charts.Rect, bool) {
	return charts.RectFromPoints(c.From, c.To).Expand(c.Style.Width / 2), true
}
func (LineCommand) IsState() bool { return false }

// PolylineCommand draws connected line segments.
type PolylineCommand struct {
	Points []charts.Point
	Style  LineStyle
}

func (PolylineCommand) Type() CommandType { return CmdPolyline }
func (c PolylineCommand) Bounds() (charts.Rect, bool) {
	r, ok := pointsBounds(c.Points)
	if !ok {
		return charts.Rect{}, false
	}
	return r.Expand(c.Style.Width / 2), true
}
func (PolylineCommand) IsState() bool { return false }

// FillRectCommand fills an axis-aligned rectangle.
type FillRectCommand struct {
	Rect  charts.Rect
	Color charts.Color
}

func (FillRectCommand) Type() CommandType { return CmdFillRect }
func (c FillRectCommand) Bounds() (charts.Rect, bool) { return c.Rect, true }
func (FillRectCommand) IsState() bool { return false }

// StrokeRectCommand strokes an axis-aligned rectangle.
type StrokeRectCommand struct {
	Rect  charts.Rect
	Style LineStyle
}

func (StrokeRectCommand) Type() CommandType { return CmdStrokeRect }
func (c StrokeRectCommand) Bounds() (charts.Rect, bool) {
	return c.Rect.Expand(c.Style.Width / 2), true
}
func (StrokeRectCommand) IsState() bool { return false }

// FillRoundedRectCommand fills a rounded rectangle.
type FillRoundedRectCommand struct {
	Rect   charts.Rect
	Radius float64
	Color  charts.Color
}

func (FillRoundedRectCommand) Type() CommandType { return CmdFillRoundedRect }
func (c FillRoundedRectCommand) Bounds() (charts.Rect, bool) { return c.Rect, true }
func (FillRoundedRectCommand) IsState() bool { return false }

// StrokeRoundedRectCommand strokes a rounded rectangle.
type StrokeRoundedRectCommand struct {
	Rect   charts.Rect
	Radius float64
	Style  LineStyle
}

func (StrokeRoundedRectCommand) Type() CommandType { return CmdStrokeRoundedRect }
func (c StrokeRoundedRectCommand) Bounds() (charts.Rect, bool) {
	return c.Rect.Expand(c.Style.Width / 2), true
}
func (StrokeRoundedRectCommand) IsState() bool { return false }

// FillCircleCommand fills a circle.
type FillCircleCommand struct {
	Center charts.Point
	Radius float64
	Color  charts.Color
}

func (FillCircleCommand) Type() CommandType { return CmdFillCircle }
func (c FillCircleCommand) Bounds() (charts.Rect, bool) {
	return circleBounds(c.Center, c.Radius), true
}
func (FillCircleCommand) IsState() bool { return false }

// StrokeCircleCommand strokes a circle.
type StrokeCircleCommand struct {
	Center charts.Point
	Radius float64
	Style  LineStyle
}

func (StrokeCircleCommand) Type() CommandType { return CmdStrokeCircle }
func (c StrokeCircleCommand) Bounds() (charts.Rect, bool) {
	return circleBounds(c.Center, c.Radius).Expand(c.Style.Width / 2), true
}
func (StrokeCircleCommand) IsState() bool { return false }

// StrokeArcCommand strokes a circular arc between two angles in radians.
type StrokeArcCommand struct {
	Center     charts.Point
	Radius     float64
	StartAngle float64
	EndAngle   float64
	Style      LineStyle
}

func (StrokeArcCommand) Type() CommandType { return CmdStrokeArc }
func (c StrokeArcCommand) Bounds() (charts.Rect, bool) {
	return circleBounds(c.Center, c.Radius).Expand(c.Style.Width / 2), true
}
func (StrokeArcCommand) IsState() bool { return false }

// FillArcCommand fills a pie slice.
type FillArcCommand struct {
	Center     charts.Point
	Radius     float64
	StartAngle float64
	EndAngle   float64
	Color      charts.Color
}

func (FillArcCommand) Type() CommandType { return CmdFillArc }
func (c FillArcCommand) Bounds() (charts.Rect, bool) {
	return circleBounds(c.Center, c.Radius), true
}
func (FillArcCommand) IsState() bool { return false }

// FillPolygonCommand fills a closed polygon.
type FillPolygonCommand struct {
	Points []charts.Point
	Color  charts.Color
}

func (FillPolygonCommand) Type() CommandType { return CmdFillPolygon }
func (c FillPolygonCommand) Bounds() (charts.Rect, bool) {
	return pointsBounds(c.Points)
}
func (FillPolygonCommand) IsState() bool { return false }

// StrokePolygonCommand strokes a closed polygon.
type StrokePolygonCommand struct {
	Points []charts.Point
	Style  LineStyle
}

func (StrokePolygonCommand) Type() CommandType { return CmdStrokePolygon }
func (c StrokePolygonCommand) Bounds() (charts.Rect, bool) {
	r, ok := pointsBounds(c.Points)
	if !ok {
		return charts.Rect{}, false
	}
	return r.Expand(c.Style.Width / 2), true
}
func (StrokePolygonCommand) IsState() bool { return false }

// QuadraticCurveCommand strokes a quadratic bezier curve.
// Bounds use the control polygon, which always contains the curve.
type QuadraticCurveCommand struct {
	Start   charts.Point
	Control charts.Point
	End     charts.Point
	Style   LineStyle
}

func (QuadraticCurveCommand) Type() CommandType { return CmdQuadraticCurve }
func (c QuadraticCurveCommand) Bounds() (charts.Rect, bool) {
	r, _ := pointsBounds([]charts.Point{c.Start, c.Control, c.End})
	return r.Expand(c.Style.Width / 2), true
}
func (QuadraticCurveCommand) IsState() bool { return false }

// CubicCurveCommand strokes a cubic bezier curve.
type CubicCurveCommand struct {
	Start    charts.Point
	Control1 charts.Point
	Control2 charts.Point
	End      charts.Point
	Style    LineStyle
}

func (CubicCurveCommand) Type() CommandType { return CmdCubicCurve }
func (c CubicCurveCommand) Bounds() (charts.Rect, bool) {
	r, _ := pointsBounds([]charts.Point{c.Start, c.Control1, c.Control2, c.End})
	return r.Expand(c.Style.Width / 2), true
}
func (CubicCurveCommand) IsState() bool { return false }

// TextCommand draws text at a position.
type TextCommand struct {
	Text  string
	Pos   charts.Point
	Style TextStyle
}

func (TextCommand) Type() CommandType { return CmdText }
func (c TextCommand) Bounds() (charts.Rect, bool) {
	return textBounds(c.Text, c.Pos, c.Style), true
}
func (TextCommand) IsState() bool { return false }

// TextRotatedCommand draws text rotated around its anchor.
type TextRotatedCommand struct {
	Text  string
	Pos   charts.Point
	Angle float64
	Style TextStyle
}

func (TextRotatedCommand) Type() CommandType { return CmdTextRotated }
func (c TextRotatedCommand) Bounds() (charts.Rect, bool) {
	// Conservative: the rotated box fits in a square of the text's
	// diagonal around the anchor.
	r := textBounds(c.Text, c.Pos, c.Style)
	d := charts.Pt(r.W, r.H).Length()
	return charts.NewRect(c.Pos.X-d/2, c.Pos.Y-d/2, d, d), true
}
func (TextRotatedCommand) IsState() bool { return false }

// TextWithBackgroundCommand draws text over a filled background pill.
type TextWithBackgroundCommand struct {
	Text       string
	Pos        charts.Point
	Style      TextStyle
	Background charts.Color
	Padding    float64
}

func (TextWithBackgroundCommand) Type() CommandType { return CmdTextWithBackground }
func (c TextWithBackgroundCommand) Bounds() (charts.Rect, bool) {
	return textBounds(c.Text, c.Pos, c.Style).Expand(c.Padding), true
}
func (TextWithBackgroundCommand) IsState() bool { return false }

// ImageCommand draws an image identified by a cache key or URL.
type ImageCommand struct {
	// ID identifies the image (URL, data URL or cache key).
	ID string
	// Src is the source rectangle in image coordinates; the zero rect
	// means the full image.
	Src charts.Rect
	// Dst is the destination rectangle on the canvas.
	Dst charts.Rect
}

func (ImageCommand) Type() CommandType { return CmdImage }
func (c ImageCommand) Bounds() (charts.Rect, bool) { return c.Dst, true }
func (ImageCommand) IsState() bool { return false }

// --------------------------------------------------------------------------
// Composite Chart Commands
// --------------------------------------------------------------------------

// CandlestickCommand draws one OHLC candlestick: a body between the open
// and close Y coordinates and a wick between high and low.
type CandlestickCommand struct {
	X         float64
	OpenY     float64
	HighY     float64
	LowY      float64
	CloseY    float64
	Width     float64
	BodyColor charts.Color
	WickColor charts.Color
}

func (CandlestickCommand) Type() CommandType { return CmdCandlestick }
func (c CandlestickCommand) Bounds() (charts.Rect, bool) {
	return charts.NewRect(c.X-c.Width/2, c.HighY, c.Width, c.LowY-c.HighY), true
}
func (CandlestickCommand) IsState() bool { return false }

// HistogramBarCommand draws one volume or indicator histogram bar.
type HistogramBarCommand struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
	Color  charts.Color
}

func (HistogramBarCommand) Type() CommandType { return CmdHistogramBar }
func (c HistogramBarCommand) Bounds() (charts.Rect, bool) {
	return charts.NewRect(c.X, c.Y, c.Width, c.Height), true
}
func (HistogramBarCommand) IsState() bool { return false }

// GridLineCommand draws a full-width or full-height grid line.
type GridLineCommand struct {
	// Horizontal selects the orientation; Pos is then the Y (or X)
	// coordinate and Start/End span the other axis.
	Horizontal bool
	Pos        float64
	Start      float64
	End        float64
	Color      charts.Color
}

func (GridLineCommand) Type() CommandType { return CmdGridLine }
func (c GridLineCommand) Bounds() (charts.Rect, bool) {
	if c.Horizontal {
		return charts.NewRect(c.Start, c.Pos, c.End-c.Start, 1), true
	}
	return charts.NewRect(c.Pos, c.Start, 1, c.End-c.Start), true
}
func (GridLineCommand) IsState() bool { return false }

// HGridLine creates a horizontal grid line command.
func HGridLine(y, xStart, xEnd float64, color charts.Color) GridLineCommand {
	return GridLineCommand{Horizontal: true, Pos: y, Start: xStart, End: xEnd, Color: color}
}

// VGridLine creates a vertical grid line command.
func VGridLine(x, yStart, yEnd float64, color charts.Color) GridLineCommand {
	return GridLineCommand{Horizontal: false, Pos: x, Start: yStart, End: yEnd, Color: color}
}

// --------------------------------------------------------------------------
// Bounds helpers
// --------------------------------------------------------------------------

func pointsBounds(points []charts.Point) (charts.Rect, bool) {
	if len(points) == 0 {
		return charts.Rect{}, false
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return charts.NewRect(minX, minY, maxX-minX, maxY-minY), true
}

func circleBounds(center charts.Point, radius float64) charts.Rect {
	return charts.NewRect(center.X-radius, center.Y-radius, radius*2, radius*2)
}

// textBounds estimates a text bounding box from the style's font size
// without a font face; exact measurement is the backend's business.
func textBounds(text string, pos charts.Point, style TextStyle) charts.Rect {
	size := style.Size
	if size <= 0 {
		size = 12
	}
	w := float64(len(text)) * size * 0.6
	h := size * 1.2

	x := pos.X
	switch style.Align {
	case AlignCenter:
		x -= w / 2
	case AlignRight:
		x -= w
	}
	y := pos.Y
	switch style.Baseline {
	case BaselineTop:
		// anchor is the top edge
	case BaselineMiddle:
		y -= h / 2
	case BaselineBottom:
		y -= h
	default:
		y -= size // alphabetic baseline sits near the bottom
	}
	return charts.NewRect(x, y, w, h)
}
