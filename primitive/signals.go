package primitive

import (
	"github.com/gogpu/charts"
	"github.com/gogpu/charts/render"
)

func init() {
	Register(Metadata{
		TypeID:      "buy_signal",
		DisplayName: "Buy Signal",
		Kind:        KindSignal,
		New: func(points []Point, color string) Primitive {
			s := &Signal{Base: NewBase("buy_signal", color, points, 1, 1), buy: true}
			if color == "" {
				s.D.Color.Stroke = "#089981"
			}
			return s
		},
		SupportsText: true,
	})
	Register(Metadata{
		TypeID:      "sell_signal",
		DisplayName: "Sell Signal",
		Kind:        KindSignal,
		New: func(points []Point, color string) Primitive {
			s := &Signal{Base: NewBase("sell_signal", color, points, 1, 1)}
			if color == "" {
				s.D.Color.Stroke = "#F23645"
			}
			return s
		},
		SupportsText: true,
	})
}

// Signal is a strategy marker at one anchor: a triangle pointing up at
// the price for buys, down for sells, with an optional label beyond
// the glyph.
type Signal struct {
	Base
	buy bool
}

func (s *Signal) TypeID() string { return s.D.TypeID }
func (s *Signal) DisplayName() string {
	if s.buy {
		return "Buy Signal"
	}
	return "Sell Signal"
}
func (s *Signal) Kind() Kind { return KindSignal }

const (
	signalSize = 6.0
	signalGap  = 4.0
)

func (s *Signal) Render(ctx render.Context, selected bool) {
	pts := s.screenPoints(ctx)
	if len(pts) == 0 {
		return
	}
	p := pts[0]
	stroke := s.D.Color.StrokeColor()

	// Buys sit below the price pointing up, sells above pointing down.
	dir := 1.0
	if !s.buy {
		dir = -1
	}
	tip := charts.Pt(p.X, p.Y+dir*signalGap)
	base := tip.Y + dir*signalSize
	ctx.FillPolygon([]charts.Point{
		tip,
		charts.Pt(p.X-signalSize, base),
		charts.Pt(p.X+signalSize, base),
	}, stroke)

	if selected {
		selectionHandles(ctx, pts, stroke)
	}
}

func (s *Signal) TextAnchor(ctx render.Context) (TextAnchor, bool) {
	if s.D.Text == nil || s.D.Text.Content == "" || len(s.D.Points) == 0 {
		return TextAnchor{}, false
	}
	pts := s.screenPoints(ctx)
	dir := 1.0
	if !s.buy {
		dir = -1
	}
	return TextAnchor{
		Pos:           charts.Pt(pts[0].X, pts[0].Y+dir*(signalGap+signalSize+10)),
		FallbackColor: s.D.Color.Stroke,
	}, true
}

func (s *Signal) Clone() Primitive {
	out := *s
	out.Base = s.cloneBase()
	return &out
}
