// Package primitive implements chart drawing tools: trend lines,
// channels, shapes, Fibonacci tools, annotations and the rest of the
// drawing catalog. Every tool implements the Primitive interface and is
// created through the string-keyed Registry, so the drawing manager
// never needs to know concrete types.
package primitive

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/gogpu/charts"
	"github.com/gogpu/charts/render"
)

// Kind is the primitive category, used for toolbar organization.
type Kind uint8

const (
	KindLine        Kind = iota // trend line, horizontal, vertical, ray
	KindChannel                 // parallel channel, regression trend
	KindShape                   // rectangle, ellipse, triangle, polyline
	KindFibonacci               // retracement, extension, fan, circles
	KindGann                    // fan, box
	KindPattern                 // head & shoulders, elliott wave, harmonic
	KindAnnotation              // text, note, callout, price label
	KindMeasurement             // price range, date range
	KindTrading                 // long/short position
	KindSignal                  // strategy buy/sell markers
)

var kindNames = [...]string{
	KindLine:        "line",
	KindChannel:     "channel",
	KindShape:       "shape",
	KindFibonacci:   "fibonacci",
	KindGann:        "gann",
	KindPattern:     "pattern",
	KindAnnotation:  "annotation",
	KindMeasurement: "measurement",
	KindTrading:     "trading",
	KindSignal:      "signal",
}

// String returns the kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Point is a position in chart space: a fractional bar index and a
// price. Primitives store chart-space points so they follow the data
// through pans and zooms.
type Point struct {
	Bar   float64 `json:"bar"`
	Price float64 `json:"price"`
}

// LineStyle selects the dash pattern of a stroked line.
type LineStyle uint8

const (
	StyleSolid LineStyle = iota
	StyleDashed
	StyleDotted
	StyleLargeDashed
	StyleSparseDotted
)

var lineStyleNames = [...]string{
	StyleSolid:        "solid",
	StyleDashed:       "dashed",
	StyleDotted:       "dotted",
	StyleLargeDashed:  "large_dashed",
	StyleSparseDotted: "sparse_dotted",
}

// String returns the style name used in serialized configs.
func (s LineStyle) String() string {
	if int(s) < len(lineStyleNames) {
		return lineStyleNames[s]
	}
	return "solid"
}

// ParseLineStyle parses a style name; unknown names mean solid.
func ParseLineStyle(s string) LineStyle {
	for i, name := range lineStyleNames {
		if name == s {
			return LineStyle(i)
		}
	}
	return StyleSolid
}

// Dash returns the dash pattern for the style. Solid returns nil.
func (s LineStyle) Dash() []float64 {
	switch s {
	case StyleDashed:
		return []float64{8, 4}
	case StyleDotted:
		return []float64{2, 2}
	case StyleLargeDashed:
		return []float64{12, 6}
	case StyleSparseDotted:
		return []float64{2, 8}
	default:
		return nil
	}
}

// ColorConfig holds the stroke and optional fill color of a primitive,
// as CSS color strings.
type ColorConfig struct {
	Stroke string `json:"stroke"`
	// Fill is empty when the primitive has no fill.
	Fill string `json:"fill,omitempty"`
}

// DefaultColor is the stroke used when a caller passes no color.
const DefaultColor = "#2196F3"

// StrokeColor parses the stroke as a charts.Color.
func (c ColorConfig) StrokeColor() charts.Color {
	return charts.ParseColor(c.Stroke)
}

// FillColor parses the fill; ok is false when no fill is configured.
func (c ColorConfig) FillColor() (charts.Color, bool) {
	if c.Fill == "" {
		return charts.Color{}, false
	}
	return charts.ParseColor(c.Fill), true
}

// WithAlphaFill derives a translucent fill from a stroke color.
func WithAlphaFill(stroke string, alpha uint8) ColorConfig {
	return ColorConfig{Stroke: stroke, Fill: fmt.Sprintf("%s%02x", stroke, alpha)}
}

// Align is text alignment relative to the anchor.
type Align uint8

const (
	AlignStart Align = iota // left / top
	AlignCenter
	AlignEnd // right / bottom
)

// Text is the label configuration of a primitive.
type Text struct {
	Content  string  `json:"content"`
	FontSize float64 `json:"font_size"`
	// Color overrides the stroke color when non-empty.
	Color  string `json:"color,omitempty"`
	Bold   bool   `json:"bold,omitempty"`
	Italic bool   `json:"italic,omitempty"`
	HAlign Align  `json:"h_align,omitempty"`
	VAlign Align  `json:"v_align,omitempty"`
}

// NewText creates a label with the default 14px font, centered.
func NewText(content string) *Text {
	return &Text{Content: content, FontSize: 14, HAlign: AlignCenter}
}

// TextAnchor tells the drawing manager where to render a primitive's
// label. Text is drawn centrally after Render so labels always sit on
// top of geometry.
type TextAnchor struct {
	// Pos in pixel coordinates.
	Pos charts.Point
	// FallbackColor is used when the text has no color of its own.
	FallbackColor string
	// Background fills a pill behind the text when non-empty.
	Background string
	// Padding around the text, used with Background.
	Padding float64
	// Rotation in radians, for labels along angled lines.
	Rotation float64
}

// NormalizeTextRotation flips angles beyond ±90° by 180° so text along
// a line never renders upside-down. Returns the readable angle and
// whether it was flipped.
func NormalizeTextRotation(raw float64) (angle float64, flipped bool) {
	switch {
	case raw > math.Pi/2:
		return raw - math.Pi, true
	case raw < -math.Pi/2:
		return raw + math.Pi, true
	default:
		return raw, false
	}
}

// LevelConfig is one configurable level of a Fibonacci or Gann tool,
// as a ratio of the anchor range.
type LevelConfig struct {
	Level   float64 `json:"level"`
	Color   string  `json:"color,omitempty"`
	Visible bool    `json:"visible"`
}

// Data is the state every primitive shares. Concrete primitives embed
// it via Base; tool-specific state (levels, extension mode) lives in
// the concrete types.
type Data struct {
	// ID uniquely identifies the primitive instance.
	ID string `json:"id"`
	// TypeID is the registry key, e.g. "trend_line".
	TypeID string `json:"type_id"`
	// Points are the anchor points in chart space.
	Points []Point `json:"points"`
	// Color holds stroke and optional fill.
	Color ColorConfig `json:"color"`
	// Width is the stroke width in pixels.
	Width float64 `json:"width"`
	// Style is the dash style.
	Style LineStyle `json:"style"`
	// Text is the optional label.
	Text *Text `json:"text,omitempty"`
	// Locked primitives cannot be edited.
	Locked bool `json:"locked,omitempty"`
	// Visible toggles rendering.
	Visible bool `json:"visible"`
	// ZOrder orders primitives within the primitives layer.
	ZOrder int `json:"z_order,omitempty"`
}

// NewData creates shared data with a fresh ID and the given type and
// stroke color.
func NewData(typeID, stroke string, points []Point) Data {
	return Data{
		ID:      uuid.NewString(),
		TypeID:  typeID,
		Points:  points,
		Color:   ColorConfig{Stroke: stroke},
		Width:   2,
		Visible: true,
	}
}

// StrokeStyle returns the primitive's stroke as a render line style.
func (d *Data) StrokeStyle() render.LineStyle {
	return render.LineStyle{
		Color: d.Color.StrokeColor(),
		Width: d.Width,
		Dash:  d.Style.Dash(),
	}
}

// Primitive is the interface all drawing tools implement. The drawing
// manager works exclusively through this interface and the Registry.
type Primitive interface {
	// TypeID returns the registry key, e.g. "trend_line".
	TypeID() string
	// DisplayName returns the human-readable tool name.
	DisplayName() string
	// Kind returns the category for toolbar organization.
	Kind() Kind

	// Data returns the shared state. The pointer is live: mutating it
	// mutates the primitive.
	Data() *Data

	// Points returns the anchor points in chart space.
	Points() []Point
	// SetPoints replaces the anchor points. It fails when the count
	// does not fit the tool (a trend line needs exactly two).
	SetPoints(points []Point) error
	// Translate moves every anchor by the given chart-space delta.
	Translate(barDelta, priceDelta float64)

	// Render draws the primitive through the context. Implementations
	// convert chart-space points with ctx.BarToX/ctx.PriceToY.
	Render(ctx render.Context, selected bool)

	// TextAnchor reports where the label should be drawn; ok is false
	// when the primitive has no text to show.
	TextAnchor(ctx render.Context) (TextAnchor, bool)

	// LevelConfigs returns the configurable levels, or nil for tools
	// without levels. SetLevelConfigs reports whether levels apply.
	LevelConfigs() []LevelConfig
	SetLevelConfigs(configs []LevelConfig) bool

	// Clone returns a deep copy.
	Clone() Primitive
}

// PointToSegmentDistance returns the distance from p to the segment
// [a, b] in pixel space. Used for hit-testing.
func PointToSegmentDistance(p, a, b charts.Point) float64 {
	d := b.Sub(a)
	lenSq := d.X*d.X + d.Y*d.Y
	if lenSq < 1e-4 {
		return p.Distance(a)
	}
	t := ((p.X-a.X)*d.X + (p.Y-a.Y)*d.Y) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return p.Distance(a.Add(d.Mul(t)))
}
