package primitive

import (
	"fmt"
	"math"

	"github.com/gogpu/charts"
	"github.com/gogpu/charts/render"
)

// DefaultFibLevels are the standard retracement ratios.
var DefaultFibLevels = []float64{0, 0.236, 0.382, 0.5, 0.618, 0.786, 1.0}

// fibPalette assigns a conventional color per default level.
var fibPalette = []string{
	"#787B86", "#F23645", "#FF9800", "#4CAF50", "#089981", "#00BCD4", "#787B86",
}

// defaultLevelConfigs builds the standard level set.
func defaultLevelConfigs() []LevelConfig {
	out := make([]LevelConfig, len(DefaultFibLevels))
	for i, lvl := range DefaultFibLevels {
		out[i] = LevelConfig{
			Level:   lvl,
			Color:   fibPalette[i%len(fibPalette)],
			Visible: true,
		}
	}
	return out
}

func cloneLevels(levels []LevelConfig) []LevelConfig {
	if levels == nil {
		return nil
	}
	out := make([]LevelConfig, len(levels))
	copy(out, levels)
	return out
}

func init() {
	Register(Metadata{
		TypeID:      "fib_retracement",
		DisplayName: "Fib Retracement",
		Kind:        KindFibonacci,
		New: func(points []Point, color string) Primitive {
			return &FibRetracement{
				Base:   NewBase("fib_retracement", color, points, 2, 2),
				Levels: defaultLevelConfigs(),
			}
		},
		HasLevels: true,
	})
	Register(Metadata{
		TypeID:      "fib_extension",
		DisplayName: "Fib Extension",
		Kind:        KindFibonacci,
		New: func(points []Point, color string) Primitive {
			return &FibExtension{
				Base:   NewBase("fib_extension", color, points, 3, 3),
				Levels: defaultLevelConfigs(),
			}
		},
		HasLevels: true,
	})
	Register(Metadata{
		TypeID:      "fib_fan",
		DisplayName: "Fib Fan",
		Kind:        KindFibonacci,
		New: func(points []Point, color string) Primitive {
			return &FibFan{
				Base:   NewBase("fib_fan", color, points, 2, 2),
				Levels: defaultLevelConfigs(),
			}
		},
		HasLevels: true,
	})
	Register(Metadata{
		TypeID:      "fib_time_zones",
		DisplayName: "Fib Time Zones",
		Kind:        KindFibonacci,
		New: func(points []Point, color string) Primitive {
			return &FibTimeZones{Base: NewBase("fib_time_zones", color, points, 2, 2)}
		},
	})
	Register(Metadata{
		TypeID:      "fib_circles",
		DisplayName: "Fib Circles",
		Kind:        KindFibonacci,
		New: func(points []Point, color string) Primitive {
			return &FibCircles{
				Base:   NewBase("fib_circles", color, points, 2, 2),
				Levels: defaultLevelConfigs(),
			}
		},
		HasLevels: true,
	})
}

// FibRetracement draws horizontal levels across the price range of its
// two anchors, with a translucent fill between adjacent levels.
type FibRetracement struct {
	Base
	Levels []LevelConfig
}

func (f *FibRetracement) TypeID() string      { return f.D.TypeID }
func (f *FibRetracement) DisplayName() string { return "Fib Retracement" }
func (f *FibRetracement) Kind() Kind          { return KindFibonacci }

func (f *FibRetracement) LevelConfigs() []LevelConfig { return cloneLevels(f.Levels) }
func (f *FibRetracement) SetLevelConfigs(configs []LevelConfig) bool {
	f.Levels = cloneLevels(configs)
	return true
}

// levelPrice interpolates a level ratio into the anchor price range.
// Level 0 sits at the second anchor, level 1 at the first, matching
// retracement convention: 0% is the end of the move.
func (f *FibRetracement) levelPrice(level float64) float64 {
	p1 := f.D.Points[0].Price
	p2 := f.D.Points[1].Price
	return p2 + (p1-p2)*level
}

func (f *FibRetracement) Render(ctx render.Context, selected bool) {
	if len(f.D.Points) < 2 {
		return
	}
	x1 := ctx.BarToX(f.D.Points[0].Bar)
	x2 := ctx.BarToX(f.D.Points[1].Bar)
	left, right := math.Min(x1, x2), math.Max(x1, x2)

	// Fill between adjacent visible levels.
	var prevY float64
	var prevColor charts.Color
	havePrev := false
	for _, lc := range f.Levels {
		if !lc.Visible {
			continue
		}
		y := ctx.PriceToY(f.levelPrice(lc.Level))
		color := charts.ParseColor(lc.Color)
		if havePrev {
			rect := charts.RectFromPoints(charts.Pt(left, prevY), charts.Pt(right, y))
			ctx.FillRect(rect, prevColor.WithAlpha(0.08))
		}
		prevY, prevColor, havePrev = y, color, true
	}

	for _, lc := range f.Levels {
		if !lc.Visible {
			continue
		}
		price := f.levelPrice(lc.Level)
		y := ctx.PriceToY(price)
		color := charts.ParseColor(lc.Color)
		ctx.Line(charts.Pt(left, y), charts.Pt(right, y),
			render.LineStyle{Color: color, Width: f.D.Width, Dash: f.D.Style.Dash()})

		label := fmt.Sprintf("%.3g (%.2f)", lc.Level, price)
		ctx.FillText(label, charts.Pt(left-6, y), render.TextStyle{
			Color:    color,
			Size:     11,
			Align:    render.AlignRight,
			Baseline: render.BaselineMiddle,
		})
	}

	if selected {
		selectionHandles(ctx, f.screenPoints(ctx), f.D.Color.StrokeColor())
	}
}

func (f *FibRetracement) Clone() Primitive {
	out := *f
	out.Base = f.cloneBase()
	out.Levels = cloneLevels(f.Levels)
	return &out
}

// FibExtension projects levels beyond a three-point trend move: the
// first two anchors define the move, the third the retracement start.
type FibExtension struct {
	Base
	Levels []LevelConfig
}

func (f *FibExtension) TypeID() string      { return f.D.TypeID }
func (f *FibExtension) DisplayName() string { return "Fib Extension" }
func (f *FibExtension) Kind() Kind          { return KindFibonacci }

func (f *FibExtension) LevelConfigs() []LevelConfig { return cloneLevels(f.Levels) }
func (f *FibExtension) SetLevelConfigs(configs []LevelConfig) bool {
	f.Levels = cloneLevels(configs)
	return true
}

func (f *FibExtension) Render(ctx render.Context, selected bool) {
	if len(f.D.Points) < 3 {
		return
	}
	move := f.D.Points[1].Price - f.D.Points[0].Price
	base := f.D.Points[2]

	x1 := ctx.BarToX(base.Bar)
	x2 := x1 + (ctx.BarToX(f.D.Points[1].Bar) - ctx.BarToX(f.D.Points[0].Bar))
	left, right := math.Min(x1, x2), math.Max(x1, x2)

	for _, lc := range f.Levels {
		if !lc.Visible {
			continue
		}
		price := base.Price + move*lc.Level
		y := ctx.PriceToY(price)
		color := charts.ParseColor(lc.Color)
		ctx.Line(charts.Pt(left, y), charts.Pt(right, y),
			render.LineStyle{Color: color, Width: f.D.Width, Dash: f.D.Style.Dash()})
		ctx.FillText(fmt.Sprintf("%.3g (%.2f)", lc.Level, price), charts.Pt(left-6, y),
			render.TextStyle{Color: color, Size: 11, Align: render.AlignRight, Baseline: render.BaselineMiddle})
	}

	if selected {
		selectionHandles(ctx, f.screenPoints(ctx), f.D.Color.StrokeColor())
	}
}

func (f *FibExtension) Clone() Primitive {
	out := *f
	out.Base = f.cloneBase()
	out.Levels = cloneLevels(f.Levels)
	return &out
}

// FibFan draws rays from the first anchor through the level fractions
// of the vertical range at the second anchor's bar.
type FibFan struct {
	Base
	Levels []LevelConfig
}

func (f *FibFan) TypeID() string      { return f.D.TypeID }
func (f *FibFan) DisplayName() string { return "Fib Fan" }
func (f *FibFan) Kind() Kind          { return KindFibonacci }

func (f *FibFan) LevelConfigs() []LevelConfig { return cloneLevels(f.Levels) }
func (f *FibFan) SetLevelConfigs(configs []LevelConfig) bool {
	f.Levels = cloneLevels(configs)
	return true
}

func (f *FibFan) Render(ctx render.Context, selected bool) {
	pts := f.screenPoints(ctx)
	if len(pts) < 2 {
		return
	}
	origin, target := pts[0], pts[1]

	for _, lc := range f.Levels {
		if !lc.Visible || lc.Level == 0 {
			continue
		}
		through := charts.Pt(target.X, origin.Y+(target.Y-origin.Y)*lc.Level)
		a, b := extendSegment(origin, through, ExtendRight, ctx.ChartWidth(), ctx.ChartHeight())
		color := charts.ParseColor(lc.Color)
		ctx.Line(a, b, render.LineStyle{Color: color, Width: f.D.Width, Dash: f.D.Style.Dash()})
	}

	if selected {
		selectionHandles(ctx, pts, f.D.Color.StrokeColor())
	}
}

func (f *FibFan) Clone() Primitive {
	out := *f
	out.Base = f.cloneBase()
	out.Levels = cloneLevels(f.Levels)
	return &out
}

// fibSequence are the bar multiples used by the time-zone tool.
var fibSequence = []float64{0, 1, 2, 3, 5, 8, 13, 21, 34, 55}

// FibTimeZones draws vertical lines at Fibonacci multiples of the bar
// distance between its two anchors.
type FibTimeZones struct {
	Base
}

func (f *FibTimeZones) TypeID() string      { return f.D.TypeID }
func (f *FibTimeZones) DisplayName() string { return "Fib Time Zones" }
func (f *FibTimeZones) Kind() Kind          { return KindFibonacci }

func (f *FibTimeZones) Render(ctx render.Context, selected bool) {
	if len(f.D.Points) < 2 {
		return
	}
	origin := f.D.Points[0].Bar
	unit := f.D.Points[1].Bar - origin
	if unit == 0 {
		return
	}
	style := f.D.StrokeStyle()
	h := ctx.ChartHeight()
	labelStyle := render.TextStyle{
		Color:    style.Color,
		Size:     10,
		Align:    render.AlignCenter,
		Baseline: render.BaselineBottom,
	}
	for _, n := range fibSequence {
		x := ctx.BarToX(origin + unit*n)
		if x < 0 || x > ctx.ChartWidth() {
			continue
		}
		ctx.Line(charts.Pt(x, 0), charts.Pt(x, h), style)
		ctx.FillText(fmt.Sprintf("%g", n), charts.Pt(x, h-4), labelStyle)
	}

	if selected {
		selectionHandles(ctx, f.screenPoints(ctx), f.D.Color.StrokeColor())
	}
}

func (f *FibTimeZones) Clone() Primitive {
	out := *f
	out.Base = f.cloneBase()
	return &out
}

// FibCircles draws concentric circles around the first anchor with
// radii at level fractions of the anchor distance.
type FibCircles struct {
	Base
	Levels []LevelConfig
}

func (f *FibCircles) TypeID() string      { return f.D.TypeID }
func (f *FibCircles) DisplayName() string { return "Fib Circles" }
func (f *FibCircles) Kind() Kind          { return KindFibonacci }

func (f *FibCircles) LevelConfigs() []LevelConfig { return cloneLevels(f.Levels) }
func (f *FibCircles) SetLevelConfigs(configs []LevelConfig) bool {
	f.Levels = cloneLevels(configs)
	return true
}

func (f *FibCircles) Render(ctx render.Context, selected bool) {
	pts := f.screenPoints(ctx)
	if len(pts) < 2 {
		return
	}
	center := pts[0]
	base := center.Distance(pts[1])
	if base <= 0 {
		return
	}

	for _, lc := range f.Levels {
		if !lc.Visible || lc.Level == 0 {
			continue
		}
		color := charts.ParseColor(lc.Color)
		ctx.StrokeCircle(center, base*lc.Level,
			render.LineStyle{Color: color, Width: f.D.Width, Dash: f.D.Style.Dash()})
	}

	if selected {
		selectionHandles(ctx, pts, f.D.Color.StrokeColor())
	}
}

func (f *FibCircles) Clone() Primitive {
	out := *f
	out.Base = f.cloneBase()
	out.Levels = cloneLevels(f.Levels)
	return &out
}
