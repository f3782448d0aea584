package primitive

import (
	"github.com/gogpu/charts"
	"github.com/gogpu/charts/render"
)

func init() {
	Register(Metadata{
		TypeID:      "xabcd_pattern",
		DisplayName: "XABCD Pattern",
		Kind:        KindPattern,
		New: func(points []Point, color string) Primitive {
			return &LabeledPattern{
				Base:   NewBase("xabcd_pattern", color, points, 5, 5),
				name:   "XABCD Pattern",
				labels: []string{"X", "A", "B", "C", "D"},
				fills:  [][3]int{{0, 1, 2}, {2, 3, 4}},
			}
		},
		HasPointsConfig: true,
	})
	Register(Metadata{
		TypeID:      "abcd_pattern",
		DisplayName: "ABCD Pattern",
		Kind:        KindPattern,
		New: func(points []Point, color string) Primitive {
			return &LabeledPattern{
				Base:   NewBase("abcd_pattern", color, points, 4, 4),
				name:   "ABCD Pattern",
				labels: []string{"A", "B", "C", "D"},
			}
		},
		HasPointsConfig: true,
	})
	Register(Metadata{
		TypeID:      "head_shoulders",
		DisplayName: "Head and Shoulders",
		Kind:        KindPattern,
		New: func(points []Point, color string) Primitive {
			return &HeadShoulders{Base: NewBase("head_shoulders", color, points, 7, 7)}
		},
		HasPointsConfig: true,
	})
	Register(Metadata{
		TypeID:      "elliott_impulse",
		DisplayName: "Elliott Impulse Wave",
		Kind:        KindPattern,
		New: func(points []Point, color string) Primitive {
			return &LabeledPattern{
				Base:   NewBase("elliott_impulse", color, points, 6, 6),
				name:   "Elliott Impulse Wave",
				labels: []string{"0", "1", "2", "3", "4", "5"},
			}
		},
		HasPointsConfig: true,
	})
	Register(Metadata{
		TypeID:      "elliott_correction",
		DisplayName: "Elliott Correction Wave",
		Kind:        KindPattern,
		New: func(points []Point, color string) Primitive {
			return &LabeledPattern{
				Base:   NewBase("elliott_correction", color, points, 4, 4),
				name:   "Elliott Correction Wave",
				labels: []string{"0", "A", "B", "C"},
			}
		},
		HasPointsConfig: true,
	})
}

// LabeledPattern is a polyline through a fixed number of anchors with
// one letter label per anchor. Fill triples, when set, shade triangles
// between the named anchor indices, as harmonic patterns do.
type LabeledPattern struct {
	Base
	name   string
	labels []string
	fills  [][3]int
}

func (p *LabeledPattern) TypeID() string      { return p.D.TypeID }
func (p *LabeledPattern) DisplayName() string { return p.name }
func (p *LabeledPattern) Kind() Kind          { return KindPattern }

func (p *LabeledPattern) Render(ctx render.Context, selected bool) {
	pts := p.screenPoints(ctx)
	if len(pts) < 2 {
		return
	}
	stroke := p.D.Color.StrokeColor()

	for _, tri := range p.fills {
		if tri[0] < len(pts) && tri[1] < len(pts) && tri[2] < len(pts) {
			ctx.FillPolygon([]charts.Point{pts[tri[0]], pts[tri[1]], pts[tri[2]]},
				stroke.WithAlpha(0.08))
		}
	}

	ctx.Polyline(pts, p.D.StrokeStyle())

	labelStyle := render.TextStyle{
		Color:    stroke,
		Size:     12,
		Bold:     true,
		Align:    render.AlignCenter,
		Baseline: render.BaselineBottom,
	}
	for i, pt := range pts {
		if i >= len(p.labels) {
			break
		}
		ctx.FillText(p.labels[i], charts.Pt(pt.X, pt.Y-6), labelStyle)
	}

	if selected {
		selectionHandles(ctx, pts, stroke)
	}
}

func (p *LabeledPattern) Clone() Primitive {
	out := *p
	out.Base = p.cloneBase()
	return &out
}

// HeadShoulders is a seven-anchor reversal pattern: start, left
// shoulder, trough, head, trough, right shoulder, end. The neckline
// runs through the two troughs, extended across the pattern span.
type HeadShoulders struct {
	Base
}

func (p *HeadShoulders) TypeID() string      { return p.D.TypeID }
func (p *HeadShoulders) DisplayName() string { return "Head and Shoulders" }
func (p *HeadShoulders) Kind() Kind          { return KindPattern }

func (p *HeadShoulders) Render(ctx render.Context, selected bool) {
	pts := p.screenPoints(ctx)
	if len(pts) < 7 {
		return
	}
	stroke := p.D.Color.StrokeColor()

	ctx.Polyline(pts[:7], p.D.StrokeStyle())

	// Neckline through the troughs, stretched to the outer anchors.
	t1, t2 := pts[2], pts[4]
	if dx := t2.X - t1.X; dx != 0 {
		slope := (t2.Y - t1.Y) / dx
		n1 := charts.Pt(pts[0].X, t1.Y+slope*(pts[0].X-t1.X))
		n2 := charts.Pt(pts[6].X, t1.Y+slope*(pts[6].X-t1.X))
		ctx.Line(n1, n2, render.DashedLine(stroke, 1, StyleDashed.Dash()))
	}

	labelStyle := render.TextStyle{
		Color:    stroke,
		Size:     11,
		Align:    render.AlignCenter,
		Baseline: render.BaselineBottom,
	}
	ctx.FillText("LS", charts.Pt(pts[1].X, pts[1].Y-6), labelStyle)
	ctx.FillText("H", charts.Pt(pts[3].X, pts[3].Y-6), labelStyle)
	ctx.FillText("RS", charts.Pt(pts[5].X, pts[5].Y-6), labelStyle)

	if selected {
		selectionHandles(ctx, pts, stroke)
	}
}

func (p *HeadShoulders) Clone() Primitive {
	out := *p
	out.Base = p.cloneBase()
	return &out
}
