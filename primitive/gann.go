package primitive

import (
	"github.com/gogpu/charts"
	"github.com/gogpu/charts/render"
)

// gannRatios are the classic fan slopes as price/time multiples.
var gannRatios = []float64{8, 4, 3, 2, 1, 0.5, 1.0 / 3, 0.25, 0.125}

func init() {
	Register(Metadata{
		TypeID:      "gann_fan",
		DisplayName: "Gann Fan",
		Kind:        KindGann,
		New: func(points []Point, color string) Primitive {
			return &GannFan{
				Base:   NewBase("gann_fan", color, points, 2, 2),
				Levels: defaultGannLevels(),
			}
		},
		HasLevels: true,
	})
	Register(Metadata{
		TypeID:      "gann_box",
		DisplayName: "Gann Box",
		Kind:        KindGann,
		New: func(points []Point, color string) Primitive {
			return &GannBox{Base: NewBase("gann_box", color, points, 2, 2)}
		},
	})
}

func defaultGannLevels() []LevelConfig {
	out := make([]LevelConfig, len(gannRatios))
	for i, r := range gannRatios {
		out[i] = LevelConfig{Level: r, Visible: true}
	}
	return out
}

// GannFan draws rays from the first anchor at the classic Gann slopes.
// The 1x1 line runs through the second anchor; the other ratios scale
// its slope.
type GannFan struct {
	Base
	Levels []LevelConfig
}

func (g *GannFan) TypeID() string      { return g.D.TypeID }
func (g *GannFan) DisplayName() string { return "Gann Fan" }
func (g *GannFan) Kind() Kind          { return KindGann }

func (g *GannFan) LevelConfigs() []LevelConfig { return cloneLevels(g.Levels) }
func (g *GannFan) SetLevelConfigs(configs []LevelConfig) bool {
	g.Levels = cloneLevels(configs)
	return true
}

func (g *GannFan) Render(ctx render.Context, selected bool) {
	pts := g.screenPoints(ctx)
	if len(pts) < 2 {
		return
	}
	origin, unit := pts[0], pts[1]
	dx := unit.X - origin.X
	dy := unit.Y - origin.Y

	style := g.D.StrokeStyle()
	for _, lc := range g.Levels {
		if !lc.Visible || lc.Level <= 0 {
			continue
		}
		through := charts.Pt(origin.X+dx, origin.Y+dy*lc.Level)
		a, b := extendSegment(origin, through, ExtendRight, ctx.ChartWidth(), ctx.ChartHeight())
		s := style
		if lc.Color != "" {
			s.Color = charts.ParseColor(lc.Color)
		}
		if lc.Level != 1 {
			s.Width = 1
		}
		ctx.Line(a, b, s)
	}

	if selected {
		selectionHandles(ctx, pts, g.D.Color.StrokeColor())
	}
}

func (g *GannFan) Clone() Primitive {
	out := *g
	out.Base = g.cloneBase()
	out.Levels = cloneLevels(g.Levels)
	return &out
}

// GannBox is a box between two anchors subdivided at the quarter marks
// in both time and price.
type GannBox struct {
	Base
}

func (g *GannBox) TypeID() string      { return g.D.TypeID }
func (g *GannBox) DisplayName() string { return "Gann Box" }
func (g *GannBox) Kind() Kind          { return KindGann }

func (g *GannBox) Render(ctx render.Context, selected bool) {
	pts := g.screenPoints(ctx)
	if len(pts) < 2 {
		return
	}
	rect := charts.RectFromPoints(pts[0], pts[1])
	style := g.D.StrokeStyle()

	ctx.FillRect(rect, g.D.Color.StrokeColor().WithAlpha(0.06))
	ctx.StrokeRect(rect, style)

	inner := render.SolidLine(style.Color.WithAlpha(0.5), 1)
	for _, f := range []float64{0.25, 0.5, 0.75} {
		y := rect.Y + rect.H*f
		ctx.Line(charts.Pt(rect.X, y), charts.Pt(rect.Right(), y), inner)
		x := rect.X + rect.W*f
		ctx.Line(charts.Pt(x, rect.Y), charts.Pt(x, rect.Bottom()), inner)
	}

	// Diagonals.
	ctx.Line(charts.Pt(rect.X, rect.Y), charts.Pt(rect.Right(), rect.Bottom()), inner)
	ctx.Line(charts.Pt(rect.X, rect.Bottom()), charts.Pt(rect.Right(), rect.Y), inner)

	if selected {
		selectionHandles(ctx, pts, g.D.Color.StrokeColor())
	}
}

func (g *GannBox) Clone() Primitive {
	out := *g
	out.Base = g.cloneBase()
	return &out
}
