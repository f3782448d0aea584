package primitive

import (
	"math"

	"github.com/gogpu/charts"
	"github.com/gogpu/charts/render"
)

// ExtendMode controls how a trend line extends past its anchors.
type ExtendMode uint8

const (
	ExtendNone  ExtendMode = iota
	ExtendRight            // ray
	ExtendLeft
	ExtendBoth // extended line
)

func init() {
	Register(Metadata{
		TypeID:      "trend_line",
		DisplayName: "Trend Line",
		Kind:        KindLine,
		New: func(points []Point, color string) Primitive {
			return newTrendLine("trend_line", "Trend Line", ExtendNone, points, color)
		},
		SupportsText: true,
	})
	Register(Metadata{
		TypeID:      "ray",
		DisplayName: "Ray",
		Kind:        KindLine,
		New: func(points []Point, color string) Primitive {
			return newTrendLine("ray", "Ray", ExtendRight, points, color)
		},
		SupportsText: true,
	})
	Register(Metadata{
		TypeID:      "extended_line",
		DisplayName: "Extended Line",
		Kind:        KindLine,
		New: func(points []Point, color string) Primitive {
			return newTrendLine("extended_line", "Extended Line", ExtendBoth, points, color)
		},
		SupportsText: true,
	})
	Register(Metadata{
		TypeID:      "horizontal_line",
		DisplayName: "Horizontal Line",
		Kind:        KindLine,
		New: func(points []Point, color string) Primitive {
			return &HorizontalLine{Base: NewBase("horizontal_line", color, points, 1, 1)}
		},
		SupportsText: true,
	})
	Register(Metadata{
		TypeID:      "horizontal_ray",
		DisplayName: "Horizontal Ray",
		Kind:        KindLine,
		New: func(points []Point, color string) Primitive {
			return &HorizontalLine{
				Base: NewBase("horizontal_ray", color, points, 1, 1),
				ray:  true,
			}
		},
		SupportsText: true,
	})
	Register(Metadata{
		TypeID:      "vertical_line",
		DisplayName: "Vertical Line",
		Kind:        KindLine,
		New: func(points []Point, color string) Primitive {
			return &VerticalLine{Base: NewBase("vertical_line", color, points, 1, 1)}
		},
		SupportsText: true,
	})
	Register(Metadata{
		TypeID:      "cross_line",
		DisplayName: "Cross Line",
		Kind:        KindLine,
		New: func(points []Point, color string) Primitive {
			return &CrossLine{Base: NewBase("cross_line", color, points, 1, 1)}
		},
	})
}

// TrendLine is a two-point line, optionally extended past its anchors
// as a ray or in both directions.
type TrendLine struct {
	Base
	name   string
	extend ExtendMode
}

func newTrendLine(typeID, name string, extend ExtendMode, points []Point, color string) *TrendLine {
	return &TrendLine{
		Base:   NewBase(typeID, color, points, 2, 2),
		name:   name,
		extend: extend,
	}
}

func (t *TrendLine) TypeID() string      { return t.D.TypeID }
func (t *TrendLine) DisplayName() string { return t.name }
func (t *TrendLine) Kind() Kind          { return KindLine }

func (t *TrendLine) Render(ctx render.Context, selected bool) {
	pts := t.screenPoints(ctx)
	if len(pts) < 2 {
		return
	}
	a, b := extendSegment(pts[0], pts[1], t.extend, ctx.ChartWidth(), ctx.ChartHeight())
	ctx.Line(a, b, t.D.StrokeStyle())
	if selected {
		selectionHandles(ctx, pts, t.D.Color.StrokeColor())
	}
}

func (t *TrendLine) TextAnchor(ctx render.Context) (TextAnchor, bool) {
	if t.D.Text == nil || t.D.Text.Content == "" || len(t.D.Points) < 2 {
		return TextAnchor{}, false
	}
	pts := t.screenPoints(ctx)
	mid := pts[0].Lerp(pts[1], 0.5)
	raw := math.Atan2(pts[1].Y-pts[0].Y, pts[1].X-pts[0].X)
	angle, _ := NormalizeTextRotation(raw)
	return TextAnchor{
		Pos:           charts.Pt(mid.X, mid.Y-10),
		FallbackColor: t.D.Color.Stroke,
		Rotation:      angle,
	}, true
}

func (t *TrendLine) Clone() Primitive {
	out := *t
	out.Base = t.cloneBase()
	return &out
}

// extendSegment stretches a segment to the chart edges per the extend
// mode. Vertical segments extend along Y.
func extendSegment(a, b charts.Point, mode ExtendMode, w, h float64) (charts.Point, charts.Point) {
	if mode == ExtendNone || a == b {
		return a, b
	}
	dx := b.X - a.X
	dy := b.Y - a.Y

	atX := func(x float64) charts.Point {
		return charts.Pt(x, a.Y+dy*(x-a.X)/dx)
	}

	if math.Abs(dx) < 1e-9 {
		// Vertical: extend along Y.
		top := charts.Pt(a.X, 0)
		bottom := charts.Pt(a.X, h)
		switch mode {
		case ExtendBoth:
			return top, bottom
		case ExtendRight: // forward along the a->b direction
			if dy > 0 {
				return a, bottom
			}
			return a, top
		default: // ExtendLeft: backward
			if dy > 0 {
				return top, b
			}
			return bottom, b
		}
	}

	left, right := atX(0), atX(w)
	switch mode {
	case ExtendBoth:
		return left, right
	case ExtendRight:
		if dx > 0 {
			return a, right
		}
		return a, left
	default: // ExtendLeft
		if dx > 0 {
			return left, b
		}
		return right, b
	}
}

// HorizontalLine is a price level drawn across the full chart width,
// or from its anchor to the right edge when configured as a ray.
type HorizontalLine struct {
	Base
	ray bool
}

func (l *HorizontalLine) TypeID() string { return l.D.TypeID }
func (l *HorizontalLine) DisplayName() string {
	if l.ray {
		return "Horizontal Ray"
	}
	return "Horizontal Line"
}
func (l *HorizontalLine) Kind() Kind { return KindLine }

func (l *HorizontalLine) Render(ctx render.Context, selected bool) {
	if len(l.D.Points) == 0 {
		return
	}
	p := l.D.Points[0]
	y := ctx.PriceToY(p.Price)
	x0 := 0.0
	if l.ray {
		x0 = ctx.BarToX(p.Bar)
	}
	ctx.Line(charts.Pt(x0, y), charts.Pt(ctx.ChartWidth(), y), l.D.StrokeStyle())
	if selected {
		selectionHandles(ctx, []charts.Point{{X: ctx.BarToX(p.Bar), Y: y}}, l.D.Color.StrokeColor())
	}
}

func (l *HorizontalLine) TextAnchor(ctx render.Context) (TextAnchor, bool) {
	if l.D.Text == nil || l.D.Text.Content == "" || len(l.D.Points) == 0 {
		return TextAnchor{}, false
	}
	y := ctx.PriceToY(l.D.Points[0].Price)
	return TextAnchor{
		Pos:           charts.Pt(ctx.ChartWidth()-60, y-10),
		FallbackColor: l.D.Color.Stroke,
	}, true
}

func (l *HorizontalLine) Clone() Primitive {
	out := *l
	out.Base = l.cloneBase()
	return &out
}

// VerticalLine marks a bar position across the full chart height.
type VerticalLine struct {
	Base
}

func (l *VerticalLine) TypeID() string      { return l.D.TypeID }
func (l *VerticalLine) DisplayName() string { return "Vertical Line" }
func (l *VerticalLine) Kind() Kind          { return KindLine }

func (l *VerticalLine) Render(ctx render.Context, selected bool) {
	if len(l.D.Points) == 0 {
		return
	}
	x := ctx.BarToX(l.D.Points[0].Bar)
	ctx.Line(charts.Pt(x, 0), charts.Pt(x, ctx.ChartHeight()), l.D.StrokeStyle())
	if selected {
		y := ctx.PriceToY(l.D.Points[0].Price)
		selectionHandles(ctx, []charts.Point{{X: x, Y: y}}, l.D.Color.StrokeColor())
	}
}

func (l *VerticalLine) TextAnchor(ctx render.Context) (TextAnchor, bool) {
	if l.D.Text == nil || l.D.Text.Content == "" || len(l.D.Points) == 0 {
		return TextAnchor{}, false
	}
	x := ctx.BarToX(l.D.Points[0].Bar)
	return TextAnchor{
		Pos:           charts.Pt(x, 14),
		FallbackColor: l.D.Color.Stroke,
		Rotation:      -math.Pi / 2,
	}, true
}

func (l *VerticalLine) Clone() Primitive {
	out := *l
	out.Base = l.cloneBase()
	return &out
}

// CrossLine draws a full-width and full-height line through one point.
type CrossLine struct {
	Base
}

func (l *CrossLine) TypeID() string      { return l.D.TypeID }
func (l *CrossLine) DisplayName() string { return "Cross Line" }
func (l *CrossLine) Kind() Kind          { return KindLine }

func (l *CrossLine) Render(ctx render.Context, selected bool) {
	if len(l.D.Points) == 0 {
		return
	}
	p := l.D.Points[0]
	x := ctx.BarToX(p.Bar)
	y := ctx.PriceToY(p.Price)
	style := l.D.StrokeStyle()
	ctx.Line(charts.Pt(0, y), charts.Pt(ctx.ChartWidth(), y), style)
	ctx.Line(charts.Pt(x, 0), charts.Pt(x, ctx.ChartHeight()), style)
	if selected {
		selectionHandles(ctx, []charts.Point{{X: x, Y: y}}, l.D.Color.StrokeColor())
	}
}

func (l *CrossLine) Clone() Primitive {
	out := *l
	out.Base = l.cloneBase()
	return &out
}
