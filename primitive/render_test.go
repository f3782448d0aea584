package primitive

import (
	"testing"

	"github.com/gogpu/charts"
	"github.com/gogpu/charts/render"
)

type flatSpace struct{}

func (flatSpace) BarToX(bar float64) float64     { return bar * 8 }
func (flatSpace) PriceToY(price float64) float64 { return 600 - price*2 }

func newTestRecorder() *render.Recorder {
	return render.NewRecorderSize(flatSpace{}, 800, 600, 1)
}

// Every registered type must render without panicking, both plain and
// selected, including with fewer points than it was designed for.
func TestRenderEveryType(t *testing.T) {
	for _, id := range Types() {
		t.Run(id, func(t *testing.T) {
			for _, n := range []int{0, 1, 2, 7} {
				p := Create(id, testPoints(n), "")
				rec := newTestRecorder()
				p.Render(rec, false)
				p.Render(rec, true)
				rec.Finish()
			}
		})
	}
}

func TestTrendLineEmitsCommands(t *testing.T) {
	p := Create("trend_line", []Point{{Bar: 10, Price: 100}, {Bar: 50, Price: 200}}, "")
	rec := newTestRecorder()
	p.Render(rec, false)
	batch := rec.Finish()
	if batch.Len() == 0 {
		t.Fatal("trend line rendered no commands")
	}
}

func TestRenderSelectedAddsHandles(t *testing.T) {
	p := Create("trend_line", []Point{{Bar: 10, Price: 100}, {Bar: 50, Price: 200}}, "")

	rec := newTestRecorder()
	p.Render(rec, false)
	plain := rec.Finish().Len()

	rec = newTestRecorder()
	p.Render(rec, true)
	selected := rec.Finish().Len()

	if selected <= plain {
		t.Errorf("selected render = %d commands, plain = %d, want handles added", selected, plain)
	}
}

func TestTextAnchorRequiresText(t *testing.T) {
	p := Create("trend_line", []Point{{Bar: 10, Price: 100}, {Bar: 50, Price: 200}}, "")
	rec := newTestRecorder()
	if _, ok := p.TextAnchor(rec); ok {
		t.Error("TextAnchor = ok without a label")
	}

	p.Data().Text = NewText("hello")
	anchor, ok := p.TextAnchor(rec)
	if !ok {
		t.Fatal("TextAnchor = !ok with a label set")
	}
	// Midpoint of the two screen points, nudged up.
	wantX := (10*8 + 50*8) / 2.0
	if anchor.Pos.X != wantX {
		t.Errorf("anchor X = %v, want %v", anchor.Pos.X, wantX)
	}
}

func TestVerticalLineLabelRotated(t *testing.T) {
	p := Create("vertical_line", []Point{{Bar: 20, Price: 100}}, "")
	p.Data().Text = NewText("event")
	rec := newTestRecorder()
	anchor, ok := p.TextAnchor(rec)
	if !ok {
		t.Fatal("TextAnchor = !ok")
	}
	if anchor.Rotation == 0 {
		t.Error("vertical line label not rotated")
	}
}

func TestRegressionTrendRendersOnlyWhenFitted(t *testing.T) {
	r := Create("regression_trend", []Point{{Bar: 0, Price: 0}, {Bar: 10, Price: 0}}, "").(*RegressionTrend)

	rec := newTestRecorder()
	r.Render(rec, false)
	if n := rec.Finish().Len(); n != 0 {
		t.Errorf("unfitted trend rendered %d commands, want 0", n)
	}

	bars := make([]charts.Bar, 20)
	for i := range bars {
		bars[i].Close = 100 + float64(i)
	}
	r.Fit(bars)
	rec = newTestRecorder()
	r.Render(rec, false)
	if rec.Finish().Len() == 0 {
		t.Error("fitted trend rendered nothing")
	}
}
