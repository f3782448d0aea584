package primitive

import (
	"fmt"
	"math"

	"github.com/gogpu/charts"
	"github.com/gogpu/charts/render"
)

func init() {
	Register(Metadata{
		TypeID:      "text",
		DisplayName: "Text",
		Kind:        KindAnnotation,
		New: func(points []Point, color string) Primitive {
			t := &TextNote{Base: NewBase("text", color, points, 1, 1)}
			t.D.Text = NewText("Text")
			return t
		},
		SupportsText: true,
	})
	Register(Metadata{
		TypeID:      "note",
		DisplayName: "Note",
		Kind:        KindAnnotation,
		New: func(points []Point, color string) Primitive {
			n := &Note{Base: NewBase("note", color, points, 1, 1)}
			n.D.Text = NewText("Note")
			return n
		},
		SupportsText: true,
	})
	Register(Metadata{
		TypeID:      "callout",
		DisplayName: "Callout",
		Kind:        KindAnnotation,
		New: func(points []Point, color string) Primitive {
			c := &Callout{Base: NewBase("callout", color, points, 2, 2)}
			c.D.Text = NewText("Callout")
			return c
		},
		SupportsText: true,
	})
	Register(Metadata{
		TypeID:      "price_label",
		DisplayName: "Price Label",
		Kind:        KindAnnotation,
		New: func(points []Point, color string) Primitive {
			return &PriceLabel{Base: NewBase("price_label", color, points, 1, 1)}
		},
	})
	Register(Metadata{
		TypeID:      "flag",
		DisplayName: "Flag",
		Kind:        KindAnnotation,
		New: func(points []Point, color string) Primitive {
			return &Flag{Base: NewBase("flag", color, points, 1, 1)}
		},
	})
	Register(Metadata{
		TypeID:      "image",
		DisplayName: "Image",
		Kind:        KindAnnotation,
		New: func(points []Point, color string) Primitive {
			return &Image{Base: NewBase("image", color, points, 2, 2)}
		},
	})
}

// TextNote is a free-floating label at a single anchor.
type TextNote struct {
	Base
}

func (a *TextNote) TypeID() string      { return a.D.TypeID }
func (a *TextNote) DisplayName() string { return "Text" }
func (a *TextNote) Kind() Kind          { return KindAnnotation }

// Render draws nothing itself; the label comes from TextAnchor so the
// drawing manager handles it like every other primitive label.
func (a *TextNote) Render(ctx render.Context, selected bool) {
	if selected {
		selectionHandles(ctx, a.screenPoints(ctx), a.D.Color.StrokeColor())
	}
}

func (a *TextNote) TextAnchor(ctx render.Context) (TextAnchor, bool) {
	if a.D.Text == nil || a.D.Text.Content == "" || len(a.D.Points) == 0 {
		return TextAnchor{}, false
	}
	pts := a.screenPoints(ctx)
	return TextAnchor{Pos: pts[0], FallbackColor: a.D.Color.Stroke}, true
}

func (a *TextNote) Clone() Primitive {
	out := *a
	out.Base = a.cloneBase()
	return &out
}

// Note is a label in a rounded pill with a small stem down to its
// anchor point.
type Note struct {
	Base
}

func (a *Note) TypeID() string      { return a.D.TypeID }
func (a *Note) DisplayName() string { return "Note" }
func (a *Note) Kind() Kind          { return KindAnnotation }

const noteStem = 18

func (a *Note) Render(ctx render.Context, selected bool) {
	pts := a.screenPoints(ctx)
	if len(pts) == 0 {
		return
	}
	p := pts[0]
	stroke := a.D.Color.StrokeColor()
	ctx.Line(p, charts.Pt(p.X, p.Y-noteStem), render.SolidLine(stroke, 1))
	ctx.FillCircle(p, 2.5, stroke)

	if selected {
		selectionHandles(ctx, pts, stroke)
	}
}

func (a *Note) TextAnchor(ctx render.Context) (TextAnchor, bool) {
	if a.D.Text == nil || a.D.Text.Content == "" || len(a.D.Points) == 0 {
		return TextAnchor{}, false
	}
	pts := a.screenPoints(ctx)
	return TextAnchor{
		Pos:           charts.Pt(pts[0].X, pts[0].Y-noteStem-10),
		FallbackColor: "#FFFFFF",
		Background:    a.D.Color.Stroke,
		Padding:       5,
	}, true
}

func (a *Note) Clone() Primitive {
	out := *a
	out.Base = a.cloneBase()
	return &out
}

// Callout points from its first anchor to a text box at the second.
type Callout struct {
	Base
}

func (a *Callout) TypeID() string      { return a.D.TypeID }
func (a *Callout) DisplayName() string { return "Callout" }
func (a *Callout) Kind() Kind          { return KindAnnotation }

func (a *Callout) Render(ctx render.Context, selected bool) {
	pts := a.screenPoints(ctx)
	if len(pts) < 2 {
		return
	}
	target, box := pts[0], pts[1]
	stroke := a.D.Color.StrokeColor()
	ctx.Line(target, box, render.SolidLine(stroke, 1))
	ctx.FillCircle(target, 2.5, stroke)

	if selected {
		selectionHandles(ctx, pts, stroke)
	}
}

func (a *Callout) TextAnchor(ctx render.Context) (TextAnchor, bool) {
	if a.D.Text == nil || a.D.Text.Content == "" || len(a.D.Points) < 2 {
		return TextAnchor{}, false
	}
	pts := a.screenPoints(ctx)
	return TextAnchor{
		Pos:           pts[1],
		FallbackColor: "#FFFFFF",
		Background:    a.D.Color.Stroke,
		Padding:       6,
	}, true
}

func (a *Callout) Clone() Primitive {
	out := *a
	out.Base = a.cloneBase()
	return &out
}

// PriceLabel is a price tag with a pointer notch at its anchor.
type PriceLabel struct {
	Base
	// Format renders the anchor price; defaults to two decimals.
	Format func(price float64) string
}

func (a *PriceLabel) TypeID() string      { return a.D.TypeID }
func (a *PriceLabel) DisplayName() string { return "Price Label" }
func (a *PriceLabel) Kind() Kind          { return KindAnnotation }

func (a *PriceLabel) label() string {
	price := a.D.Points[0].Price
	if a.Format != nil {
		return a.Format(price)
	}
	return formatPrice2(price)
}

func (a *PriceLabel) Render(ctx render.Context, selected bool) {
	pts := a.screenPoints(ctx)
	if len(pts) == 0 {
		return
	}
	p := pts[0]
	stroke := a.D.Color.StrokeColor()
	label := a.label()

	style := render.TextStyle{Size: 11, Align: render.AlignLeft, Baseline: render.BaselineMiddle}
	w := ctx.MeasureText(label, style)
	h := style.Size + 8

	// Pointer notch then the tag body to its right.
	notch := 6.0
	body := charts.NewRect(p.X+notch, p.Y-h/2, w+10, h)
	ctx.FillPolygon([]charts.Point{
		p,
		charts.Pt(body.X, p.Y-notch),
		charts.Pt(body.X, p.Y+notch),
	}, stroke)
	ctx.FillRoundedRect(body, 2, stroke)

	style.Color = charts.ColorWhite
	ctx.FillText(label, charts.Pt(body.X+5, p.Y), style)

	if selected {
		selectionHandles(ctx, pts, stroke)
	}
}

func (a *PriceLabel) Clone() Primitive {
	out := *a
	out.Base = a.cloneBase()
	return &out
}

// Flag is a flag-on-a-pole marker at a single anchor.
type Flag struct {
	Base
}

func (a *Flag) TypeID() string      { return a.D.TypeID }
func (a *Flag) DisplayName() string { return "Flag" }
func (a *Flag) Kind() Kind          { return KindAnnotation }

func (a *Flag) Render(ctx render.Context, selected bool) {
	pts := a.screenPoints(ctx)
	if len(pts) == 0 {
		return
	}
	p := pts[0]
	stroke := a.D.Color.StrokeColor()

	const pole = 22.0
	top := charts.Pt(p.X, p.Y-pole)
	ctx.Line(p, top, render.SolidLine(stroke, 2))
	ctx.FillPolygon([]charts.Point{
		top,
		charts.Pt(top.X+14, top.Y+4.5),
		charts.Pt(top.X, top.Y+9),
	}, stroke)

	if selected {
		selectionHandles(ctx, pts, stroke)
	}
}

func (a *Flag) Clone() Primitive {
	out := *a
	out.Base = a.cloneBase()
	return &out
}

// Image places a registered image between two corner anchors. The
// image itself is resolved by ID at paint time; the primitive only
// records placement.
type Image struct {
	Base
	// ImageID names the image in the backend's image store.
	ImageID string
	// Opacity in [0, 1]; zero means fully opaque (unset).
	Opacity float64
}

func (a *Image) TypeID() string      { return a.D.TypeID }
func (a *Image) DisplayName() string { return "Image" }
func (a *Image) Kind() Kind          { return KindAnnotation }

func (a *Image) Render(ctx render.Context, selected bool) {
	pts := a.screenPoints(ctx)
	if len(pts) < 2 {
		return
	}
	rect := charts.RectFromPoints(pts[0], pts[1])

	if a.ImageID == "" {
		// Placeholder frame until an image is assigned.
		ctx.StrokeRect(rect, render.DashedLine(a.D.Color.StrokeColor(), 1, StyleDashed.Dash()))
		ctx.Line(charts.Pt(rect.X, rect.Y), charts.Pt(rect.Right(), rect.Bottom()),
			render.SolidLine(a.D.Color.StrokeColor().WithAlpha(0.4), 1))
		ctx.Line(charts.Pt(rect.X, rect.Bottom()), charts.Pt(rect.Right(), rect.Y),
			render.SolidLine(a.D.Color.StrokeColor().WithAlpha(0.4), 1))
	} else {
		if a.Opacity > 0 && a.Opacity < 1 {
			ctx.Save()
			ctx.SetAlpha(a.Opacity)
			ctx.DrawImage(a.ImageID, rect)
			ctx.Restore()
		} else {
			ctx.DrawImage(a.ImageID, rect)
		}
	}

	if selected {
		selectionHandles(ctx, pts, a.D.Color.StrokeColor())
	}
}

func (a *Image) Clone() Primitive {
	out := *a
	out.Base = a.cloneBase()
	return &out
}

// formatPrice2 is a minimal two-decimal price formatter for labels
// that have no scale context.
func formatPrice2(price float64) string {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return "--"
	}
	return fmt.Sprintf("%.2f", price)
}
