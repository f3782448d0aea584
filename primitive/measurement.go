package primitive

import (
	"fmt"
	"math"

	"github.com/gogpu/charts"
	"github.com/gogpu/charts/render"
)

func init() {
	Register(Metadata{
		TypeID:      "price_range",
		DisplayName: "Price Range",
		Kind:        KindMeasurement,
		New: func(points []Point, color string) Primitive {
			return &PriceRange{Base: NewBase("price_range", color, points, 2, 2)}
		},
	})
	Register(Metadata{
		TypeID:      "date_range",
		DisplayName: "Date Range",
		Kind:        KindMeasurement,
		New: func(points []Point, color string) Primitive {
			return &DateRange{Base: NewBase("date_range", color, points, 2, 2)}
		},
	})
	Register(Metadata{
		TypeID:      "price_date_range",
		DisplayName: "Date and Price Range",
		Kind:        KindMeasurement,
		New: func(points []Point, color string) Primitive {
			return &DatePriceRange{Base: NewBase("price_date_range", color, points, 2, 2)}
		},
	})
}

// measureLabel draws the measurement text in a pill centered at pos.
func measureLabel(ctx render.Context, text string, pos charts.Point, stroke charts.Color) {
	ctx.FillTextWithBackground(text, pos, render.TextStyle{
		Color:    charts.ColorWhite,
		Size:     11,
		Align:    render.AlignCenter,
		Baseline: render.BaselineMiddle,
	}, stroke, 5)
}

// priceDelta formats an absolute and percent price change.
func priceDelta(from, to float64) string {
	delta := to - from
	if from == 0 {
		return fmt.Sprintf("%+.2f", delta)
	}
	return fmt.Sprintf("%+.2f (%+.2f%%)", delta, delta/from*100)
}

// PriceRange measures the vertical move between two anchors: a shaded
// band with a vertical arrow and the price delta.
type PriceRange struct {
	Base
}

func (m *PriceRange) TypeID() string      { return m.D.TypeID }
func (m *PriceRange) DisplayName() string { return "Price Range" }
func (m *PriceRange) Kind() Kind          { return KindMeasurement }

func (m *PriceRange) Render(ctx render.Context, selected bool) {
	pts := m.screenPoints(ctx)
	if len(pts) < 2 {
		return
	}
	rect := charts.RectFromPoints(pts[0], pts[1])
	stroke := m.D.Color.StrokeColor()

	ctx.FillRect(rect, stroke.WithAlpha(0.1))

	midX := rect.Center().X
	from := charts.Pt(midX, pts[0].Y)
	to := charts.Pt(midX, pts[1].Y)
	ctx.Line(from, to, render.SolidLine(stroke, 1))
	if dir := to.Sub(from); dir.Length() > 1e-9 {
		ctx.FillPolygon(arrowHead(to, dir.Normalize(), 8), stroke)
	}

	label := priceDelta(m.D.Points[0].Price, m.D.Points[1].Price)
	measureLabel(ctx, label, charts.Pt(midX, rect.Y-14), stroke)

	if selected {
		selectionHandles(ctx, pts, stroke)
	}
}

func (m *PriceRange) Clone() Primitive {
	out := *m
	out.Base = m.cloneBase()
	return &out
}

// DateRange measures the horizontal span between two anchors in bars.
type DateRange struct {
	Base
}

func (m *DateRange) TypeID() string      { return m.D.TypeID }
func (m *DateRange) DisplayName() string { return "Date Range" }
func (m *DateRange) Kind() Kind          { return KindMeasurement }

func (m *DateRange) Render(ctx render.Context, selected bool) {
	pts := m.screenPoints(ctx)
	if len(pts) < 2 {
		return
	}
	rect := charts.RectFromPoints(pts[0], pts[1])
	stroke := m.D.Color.StrokeColor()

	ctx.FillRect(rect, stroke.WithAlpha(0.1))

	midY := rect.Center().Y
	from := charts.Pt(pts[0].X, midY)
	to := charts.Pt(pts[1].X, midY)
	ctx.Line(from, to, render.SolidLine(stroke, 1))
	if dir := to.Sub(from); dir.Length() > 1e-9 {
		ctx.FillPolygon(arrowHead(to, dir.Normalize(), 8), stroke)
	}

	bars := int(math.Round(m.D.Points[1].Bar - m.D.Points[0].Bar))
	measureLabel(ctx, fmt.Sprintf("%d bars", bars), charts.Pt(rect.Center().X, rect.Bottom()+14), stroke)

	if selected {
		selectionHandles(ctx, pts, stroke)
	}
}

func (m *DateRange) Clone() Primitive {
	out := *m
	out.Base = m.cloneBase()
	return &out
}

// DatePriceRange measures both spans at once: a shaded box with a
// diagonal arrow and a combined bars plus price-delta label.
type DatePriceRange struct {
	Base
}

func (m *DatePriceRange) TypeID() string      { return m.D.TypeID }
func (m *DatePriceRange) DisplayName() string { return "Date and Price Range" }
func (m *DatePriceRange) Kind() Kind          { return KindMeasurement }

func (m *DatePriceRange) Render(ctx render.Context, selected bool) {
	pts := m.screenPoints(ctx)
	if len(pts) < 2 {
		return
	}
	rect := charts.RectFromPoints(pts[0], pts[1])
	stroke := m.D.Color.StrokeColor()

	ctx.FillRect(rect, stroke.WithAlpha(0.1))
	ctx.StrokeRect(rect, render.SolidLine(stroke.WithAlpha(0.6), 1))

	from, to := pts[0], pts[1]
	ctx.Line(from, to, render.SolidLine(stroke, 1))
	if dir := to.Sub(from); dir.Length() > 1e-9 {
		ctx.FillPolygon(arrowHead(to, dir.Normalize(), 8), stroke)
	}

	bars := int(math.Round(m.D.Points[1].Bar - m.D.Points[0].Bar))
	label := fmt.Sprintf("%d bars, %s", bars, priceDelta(m.D.Points[0].Price, m.D.Points[1].Price))
	measureLabel(ctx, label, charts.Pt(rect.Center().X, rect.Y-14), stroke)

	if selected {
		selectionHandles(ctx, pts, stroke)
	}
}

func (m *DatePriceRange) Clone() Primitive {
	out := *m
	out.Base = m.cloneBase()
	return &out
}
