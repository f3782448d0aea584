package primitive

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/gogpu/charts"
	"github.com/gogpu/charts/render"
)

func init() {
	Register(Metadata{
		TypeID:      "parallel_channel",
		DisplayName: "Parallel Channel",
		Kind:        KindChannel,
		New: func(points []Point, color string) Primitive {
			return &ParallelChannel{Base: NewBase("parallel_channel", color, points, 3, 3)}
		},
		SupportsText: true,
	})
	Register(Metadata{
		TypeID:      "flat_top_bottom",
		DisplayName: "Flat Top/Bottom",
		Kind:        KindChannel,
		New: func(points []Point, color string) Primitive {
			return &FlatTopBottom{Base: NewBase("flat_top_bottom", color, points, 3, 3)}
		},
	})
	Register(Metadata{
		TypeID:      "disjoint_channel",
		DisplayName: "Disjoint Channel",
		Kind:        KindChannel,
		New: func(points []Point, color string) Primitive {
			return &DisjointChannel{Base: NewBase("disjoint_channel", color, points, 4, 4)}
		},
	})
	Register(Metadata{
		TypeID:      "regression_trend",
		DisplayName: "Regression Trend",
		Kind:        KindChannel,
		New: func(points []Point, color string) Primitive {
			return &RegressionTrend{
				Base:       NewBase("regression_trend", color, points, 2, 2),
				Deviations: 2,
			}
		},
	})
}

// ParallelChannel is two parallel lines through three anchors: the
// first two define the base line, the third sets the channel offset.
// The area between the lines is filled with a translucent wash of the
// stroke color.
type ParallelChannel struct {
	Base
}

func (c *ParallelChannel) TypeID() string      { return c.D.TypeID }
func (c *ParallelChannel) DisplayName() string { return "Parallel Channel" }
func (c *ParallelChannel) Kind() Kind          { return KindChannel }

func (c *ParallelChannel) Render(ctx render.Context, selected bool) {
	pts := c.screenPoints(ctx)
	if len(pts) < 3 {
		return
	}
	a, b, off := pts[0], pts[1], pts[2]

	// Perpendicular offset of the third anchor from the base line,
	// measured vertically: channels shift in price, not in bar.
	dy := off.Y - a.Lerp(b, projectT(a, b, off)).Y
	a2 := charts.Pt(a.X, a.Y+dy)
	b2 := charts.Pt(b.X, b.Y+dy)

	fill, ok := c.D.Color.FillColor()
	if !ok {
		fill = c.D.Color.StrokeColor().WithAlpha(0.1)
	}
	ctx.FillPolygon([]charts.Point{a, b, b2, a2}, fill)

	style := c.D.StrokeStyle()
	ctx.Line(a, b, style)
	ctx.Line(a2, b2, style)

	if selected {
		selectionHandles(ctx, pts, c.D.Color.StrokeColor())
	}
}

func (c *ParallelChannel) TextAnchor(ctx render.Context) (TextAnchor, bool) {
	pts := c.screenPoints(ctx)
	if len(pts) < 2 {
		return TextAnchor{}, false
	}
	return c.anchorAbove(pts[0], pts[1])
}

func (c *ParallelChannel) Clone() Primitive {
	out := *c
	out.Base = c.cloneBase()
	return &out
}

// projectT returns the parameter of p projected onto segment [a, b].
func projectT(a, b, p charts.Point) float64 {
	d := b.Sub(a)
	lenSq := d.X*d.X + d.Y*d.Y
	if lenSq < 1e-9 {
		return 0
	}
	return ((p.X-a.X)*d.X + (p.Y-a.Y)*d.Y) / lenSq
}

// FlatTopBottom is a channel with one sloped and one horizontal edge.
// The first two anchors form the sloped line; the third sets the flat
// level.
type FlatTopBottom struct {
	Base
}

func (c *FlatTopBottom) TypeID() string      { return c.D.TypeID }
func (c *FlatTopBottom) DisplayName() string { return "Flat Top/Bottom" }
func (c *FlatTopBottom) Kind() Kind          { return KindChannel }

func (c *FlatTopBottom) Render(ctx render.Context, selected bool) {
	pts := c.screenPoints(ctx)
	if len(pts) < 3 {
		return
	}
	a, b, flat := pts[0], pts[1], pts[2]
	fa := charts.Pt(a.X, flat.Y)
	fb := charts.Pt(b.X, flat.Y)

	fill, ok := c.D.Color.FillColor()
	if !ok {
		fill = c.D.Color.StrokeColor().WithAlpha(0.1)
	}
	ctx.FillPolygon([]charts.Point{a, b, fb, fa}, fill)

	style := c.D.StrokeStyle()
	ctx.Line(a, b, style)
	ctx.Line(fa, fb, style)

	if selected {
		selectionHandles(ctx, pts, c.D.Color.StrokeColor())
	}
}

func (c *FlatTopBottom) Clone() Primitive {
	out := *c
	out.Base = c.cloneBase()
	return &out
}

// DisjointChannel is two independent lines through four anchors, with
// the quad between them filled.
type DisjointChannel struct {
	Base
}

func (c *DisjointChannel) TypeID() string      { return c.D.TypeID }
func (c *DisjointChannel) DisplayName() string { return "Disjoint Channel" }
func (c *DisjointChannel) Kind() Kind          { return KindChannel }

func (c *DisjointChannel) Render(ctx render.Context, selected bool) {
	pts := c.screenPoints(ctx)
	if len(pts) < 4 {
		return
	}
	fill, ok := c.D.Color.FillColor()
	if !ok {
		fill = c.D.Color.StrokeColor().WithAlpha(0.1)
	}
	ctx.FillPolygon([]charts.Point{pts[0], pts[1], pts[3], pts[2]}, fill)

	style := c.D.StrokeStyle()
	ctx.Line(pts[0], pts[1], style)
	ctx.Line(pts[2], pts[3], style)

	if selected {
		selectionHandles(ctx, pts, c.D.Color.StrokeColor())
	}
}

func (c *DisjointChannel) Clone() Primitive {
	out := *c
	out.Base = c.cloneBase()
	return &out
}

// RegressionTrend fits a least-squares line through the closes between
// its two anchor bars and draws the fit with parallel deviation bands.
// Fit must be called with the bar data before rendering; an unfitted
// trend renders nothing.
type RegressionTrend struct {
	Base
	// Deviations is the band distance in standard deviations.
	Deviations float64

	fitted    bool
	alpha     float64 // intercept at the first anchor bar
	beta      float64 // slope per bar
	deviation float64 // price standard deviation around the fit
}

func (r *RegressionTrend) TypeID() string      { return r.D.TypeID }
func (r *RegressionTrend) DisplayName() string { return "Regression Trend" }
func (r *RegressionTrend) Kind() Kind          { return KindChannel }

// Fit computes the regression over the closes between the anchor bars.
// Out-of-range anchors are clamped to the data.
func (r *RegressionTrend) Fit(bars []charts.Bar) {
	r.fitted = false
	if len(r.D.Points) < 2 || len(bars) == 0 {
		return
	}
	start := int(math.Min(r.D.Points[0].Bar, r.D.Points[1].Bar))
	end := int(math.Max(r.D.Points[0].Bar, r.D.Points[1].Bar))
	if start < 0 {
		start = 0
	}
	if end >= len(bars) {
		end = len(bars) - 1
	}
	if end-start < 1 {
		return
	}

	xs := make([]float64, 0, end-start+1)
	ys := make([]float64, 0, end-start+1)
	for i := start; i <= end; i++ {
		xs = append(xs, float64(i-start))
		ys = append(ys, bars[i].Close)
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)

	// Deviation of the residuals around the fit.
	residuals := make([]float64, len(xs))
	for i := range xs {
		residuals[i] = ys[i] - (alpha + beta*xs[i])
	}
	r.alpha = alpha
	r.beta = beta
	r.deviation = stat.StdDev(residuals, nil)
	r.fitted = true
}

// Fitted reports whether Fit has produced usable coefficients.
func (r *RegressionTrend) Fitted() bool {
	return r.fitted
}

func (r *RegressionTrend) Render(ctx render.Context, selected bool) {
	if !r.fitted || len(r.D.Points) < 2 {
		return
	}
	startBar := math.Min(r.D.Points[0].Bar, r.D.Points[1].Bar)
	endBar := math.Max(r.D.Points[0].Bar, r.D.Points[1].Bar)

	lineAt := func(offset float64) (charts.Point, charts.Point) {
		p0 := charts.Pt(ctx.BarToX(startBar), ctx.PriceToY(r.alpha+offset))
		p1 := charts.Pt(ctx.BarToX(endBar), ctx.PriceToY(r.alpha+r.beta*(endBar-startBar)+offset))
		return p0, p1
	}

	band := r.Deviations * r.deviation
	u0, u1 := lineAt(band)
	l0, l1 := lineAt(-band)

	fill, ok := r.D.Color.FillColor()
	if !ok {
		fill = r.D.Color.StrokeColor().WithAlpha(0.08)
	}
	ctx.FillPolygon([]charts.Point{u0, u1, l1, l0}, fill)

	style := r.D.StrokeStyle()
	mid0, mid1 := lineAt(0)
	ctx.Line(mid0, mid1, style)

	bandStyle := render.DashedLine(style.Color, style.Width, StyleDashed.Dash())
	ctx.Line(u0, u1, bandStyle)
	ctx.Line(l0, l1, bandStyle)

	if selected {
		selectionHandles(ctx, r.screenPoints(ctx), r.D.Color.StrokeColor())
	}
}

func (r *RegressionTrend) Clone() Primitive {
	out := *r
	out.Base = r.cloneBase()
	return &out
}
