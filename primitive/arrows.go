package primitive

import (
	"math"

	"github.com/gogpu/charts"
	"github.com/gogpu/charts/render"
)

func init() {
	Register(Metadata{
		TypeID:      "arrow_line",
		DisplayName: "Arrow",
		Kind:        KindLine,
		New: func(points []Point, color string) Primitive {
			return &ArrowLine{Base: NewBase("arrow_line", color, points, 2, 2)}
		},
		SupportsText: true,
	})
	Register(Metadata{
		TypeID:      "arrow_marker",
		DisplayName: "Arrow Marker",
		Kind:        KindAnnotation,
		New: func(points []Point, color string) Primitive {
			return &ArrowLine{
				Base:   NewBase("arrow_marker", color, points, 2, 2),
				marker: true,
			}
		},
	})
	Register(Metadata{
		TypeID:      "arrow_up",
		DisplayName: "Arrow Up",
		Kind:        KindAnnotation,
		New: func(points []Point, color string) Primitive {
			return &ArrowGlyph{Base: NewBase("arrow_up", color, points, 1, 1), up: true}
		},
	})
	Register(Metadata{
		TypeID:      "arrow_down",
		DisplayName: "Arrow Down",
		Kind:        KindAnnotation,
		New: func(points []Point, color string) Primitive {
			return &ArrowGlyph{Base: NewBase("arrow_down", color, points, 1, 1)}
		},
	})
}

// ArrowLine is a segment with a filled arrowhead at its second anchor.
// In marker form the shaft is thicker and the head larger.
type ArrowLine struct {
	Base
	marker bool
}

func (a *ArrowLine) TypeID() string { return a.D.TypeID }
func (a *ArrowLine) DisplayName() string {
	if a.marker {
		return "Arrow Marker"
	}
	return "Arrow"
}
func (a *ArrowLine) Kind() Kind {
	if a.marker {
		return KindAnnotation
	}
	return KindLine
}

func (a *ArrowLine) Render(ctx render.Context, selected bool) {
	pts := a.screenPoints(ctx)
	if len(pts) < 2 {
		return
	}
	from, to := pts[0], pts[1]
	stroke := a.D.Color.StrokeColor()
	style := a.D.StrokeStyle()
	headLen := 4 + 3*style.Width
	if a.marker {
		style.Width += 1
		headLen += 4
	}

	dir := to.Sub(from)
	if dir.Length() < 1e-9 {
		return
	}
	dir = dir.Normalize()

	// Stop the shaft short so it does not poke through the head.
	shaftEnd := to.Sub(dir.Mul(headLen * 0.8))
	ctx.Line(from, shaftEnd, style)
	ctx.FillPolygon(arrowHead(to, dir, headLen), stroke)

	if selected {
		selectionHandles(ctx, pts, stroke)
	}
}

// arrowHead builds the triangle for a head at tip pointing along dir.
func arrowHead(tip, dir charts.Point, size float64) []charts.Point {
	back := tip.Sub(dir.Mul(size))
	perp := charts.Pt(-dir.Y, dir.X).Mul(size * 0.4)
	return []charts.Point{tip, back.Add(perp), back.Sub(perp)}
}

func (a *ArrowLine) TextAnchor(ctx render.Context) (TextAnchor, bool) {
	if a.D.Text == nil || a.D.Text.Content == "" || len(a.D.Points) < 2 {
		return TextAnchor{}, false
	}
	pts := a.screenPoints(ctx)
	mid := pts[0].Lerp(pts[1], 0.5)
	raw := math.Atan2(pts[1].Y-pts[0].Y, pts[1].X-pts[0].X)
	angle, _ := NormalizeTextRotation(raw)
	return TextAnchor{
		Pos:           charts.Pt(mid.X, mid.Y-10),
		FallbackColor: a.D.Color.Stroke,
		Rotation:      angle,
	}, true
}

func (a *ArrowLine) Clone() Primitive {
	out := *a
	out.Base = a.cloneBase()
	return &out
}

// ArrowGlyph is a fixed-size up or down arrow at a single anchor,
// pointing at the anchor from below (up) or above (down).
type ArrowGlyph struct {
	Base
	up bool
}

func (a *ArrowGlyph) TypeID() string { return a.D.TypeID }
func (a *ArrowGlyph) DisplayName() string {
	if a.up {
		return "Arrow Up"
	}
	return "Arrow Down"
}
func (a *ArrowGlyph) Kind() Kind { return KindAnnotation }

func (a *ArrowGlyph) Render(ctx render.Context, selected bool) {
	pts := a.screenPoints(ctx)
	if len(pts) == 0 {
		return
	}
	p := pts[0]
	stroke := a.D.Color.StrokeColor()

	const (
		headH  = 8.0
		headW  = 6.0
		shaftH = 8.0
		shaftW = 2.5
	)
	dir := 1.0 // glyph grows downward from the anchor
	if !a.up {
		dir = -1
	}
	base := p.Y + dir*headH
	ctx.FillPolygon([]charts.Point{
		p,
		charts.Pt(p.X-headW, base),
		charts.Pt(p.X+headW, base),
	}, stroke)
	shaft := charts.RectFromPoints(
		charts.Pt(p.X-shaftW, base),
		charts.Pt(p.X+shaftW, base+dir*shaftH),
	)
	ctx.FillRect(shaft, stroke)

	if selected {
		selectionHandles(ctx, pts, stroke)
	}
}

func (a *ArrowGlyph) Clone() Primitive {
	out := *a
	out.Base = a.cloneBase()
	return &out
}
