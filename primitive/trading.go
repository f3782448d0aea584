package primitive

import (
	"fmt"

	"github.com/gogpu/charts"
	"github.com/gogpu/charts/render"
)

// Long/short position colors follow the usual profit/loss convention.
var (
	profitColor = charts.RGB(8, 153, 129)   // #089981
	lossColor   = charts.RGB(242, 54, 69)   // #F23645
	entryColor  = charts.RGB(120, 123, 134) // #787B86
)

func init() {
	Register(Metadata{
		TypeID:      "long_position",
		DisplayName: "Long Position",
		Kind:        KindTrading,
		New: func(points []Point, color string) Primitive {
			return &Position{Base: NewBase("long_position", color, points, 3, 3), long: true}
		},
	})
	Register(Metadata{
		TypeID:      "short_position",
		DisplayName: "Short Position",
		Kind:        KindTrading,
		New: func(points []Point, color string) Primitive {
			return &Position{Base: NewBase("short_position", color, points, 3, 3)}
		},
	})
}

// Position projects a trade: the first anchor is the entry (its bar
// span to the second anchor sets the width), the second the target and
// the third the stop. Profit and loss zones are shaded from the entry
// line, and the risk/reward ratio is labeled at the entry.
type Position struct {
	Base
	long bool
}

func (p *Position) TypeID() string { return p.D.TypeID }
func (p *Position) DisplayName() string {
	if p.long {
		return "Long Position"
	}
	return "Short Position"
}
func (p *Position) Kind() Kind { return KindTrading }

func (p *Position) Render(ctx render.Context, selected bool) {
	pts := p.screenPoints(ctx)
	if len(pts) < 3 {
		return
	}
	entry, target, stop := pts[0], pts[1], pts[2]
	left := entry.X
	right := target.X
	if right < left {
		left, right = right, left
	}
	if right-left < 1 {
		right = left + 1
	}

	profit := charts.RectFromPoints(charts.Pt(left, entry.Y), charts.Pt(right, target.Y))
	loss := charts.RectFromPoints(charts.Pt(left, entry.Y), charts.Pt(right, stop.Y))
	ctx.FillRect(profit, profitColor.WithAlpha(0.12))
	ctx.FillRect(loss, lossColor.WithAlpha(0.12))

	ctx.Line(charts.Pt(left, entry.Y), charts.Pt(right, entry.Y), render.SolidLine(entryColor, 1))
	ctx.Line(charts.Pt(left, target.Y), charts.Pt(right, target.Y), render.SolidLine(profitColor, 1))
	ctx.Line(charts.Pt(left, stop.Y), charts.Pt(right, stop.Y), render.SolidLine(lossColor, 1))

	if label, ok := p.riskReward(); ok {
		ctx.FillTextWithBackground(label, charts.Pt((left+right)/2, entry.Y), render.TextStyle{
			Color:    charts.ColorWhite,
			Size:     11,
			Align:    render.AlignCenter,
			Baseline: render.BaselineMiddle,
		}, entryColor, 4)
	}

	if selected {
		selectionHandles(ctx, pts, p.D.Color.StrokeColor())
	}
}

// riskReward formats the reward-to-risk ratio of the projected trade.
func (p *Position) riskReward() (string, bool) {
	entry := p.D.Points[0].Price
	target := p.D.Points[1].Price
	stop := p.D.Points[2].Price

	risk := entry - stop
	reward := target - entry
	if !p.long {
		risk, reward = -risk, -reward
	}
	if risk <= 0 {
		return "", false
	}
	return fmt.Sprintf("R/R: %.2f", reward/risk), true
}

func (p *Position) Clone() Primitive {
	out := *p
	out.Base = p.cloneBase()
	return &out
}
