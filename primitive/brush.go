package primitive

import (
	"github.com/gogpu/charts"
	"github.com/gogpu/charts/render"
)

func init() {
	Register(Metadata{
		TypeID:      "brush",
		DisplayName: "Brush",
		Kind:        KindShape,
		New: func(points []Point, color string) Primitive {
			return &Brush{Base: NewBase("brush", color, points, 2, 0)}
		},
	})
	Register(Metadata{
		TypeID:      "highlighter",
		DisplayName: "Highlighter",
		Kind:        KindShape,
		New: func(points []Point, color string) Primitive {
			return &Brush{
				Base:        NewBase("highlighter", color, points, 2, 0),
				highlighter: true,
			}
		},
	})
}

// Brush is a freehand stroke through an unbounded anchor list. The
// highlighter variant draws wide and translucent.
type Brush struct {
	Base
	highlighter bool
}

func (b *Brush) TypeID() string { return b.D.TypeID }
func (b *Brush) DisplayName() string {
	if b.highlighter {
		return "Highlighter"
	}
	return "Brush"
}
func (b *Brush) Kind() Kind { return KindShape }

func (b *Brush) Render(ctx render.Context, selected bool) {
	pts := b.screenPoints(ctx)
	if len(pts) < 2 {
		return
	}
	style := b.D.StrokeStyle()
	if b.highlighter {
		style.Color = style.Color.WithAlpha(0.35)
		style.Width *= 6
	}
	ctx.Polyline(pts, style)

	if selected {
		// Freehand strokes have too many anchors for per-point handles;
		// mark the endpoints only.
		ends := []charts.Point{pts[0], pts[len(pts)-1]}
		selectionHandles(ctx, ends, b.D.Color.StrokeColor())
	}
}

func (b *Brush) Clone() Primitive {
	out := *b
	out.Base = b.cloneBase()
	return &out
}
