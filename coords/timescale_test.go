package coords

import (
	"math"
	"testing"
	"time"

	"github.com/gogpu/charts"
)

func TestBarToX(t *testing.T) {
	ts := NewTimeScale(800)
	ts.BarSpacing = 10
	ts.ViewStart = 0

	tests := []struct {
		name string
		bar  float64
		want float64
	}{
		{"first bar center", 0, 5},
		{"third bar center", 2, 25},
		{"fractional bar", 1.5, 20},
		{"negative bar", -1, -5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ts.BarToX(tt.bar); got != tt.want {
				t.Errorf("BarToX(%v) = %v, want %v", tt.bar, got, tt.want)
			}
		})
	}
}

func TestXToBarRoundTrip(t *testing.T) {
	ts := NewTimeScale(800)
	ts.BarSpacing = 7.3
	ts.ViewStart = 12.5

	for _, bar := range []float64{0, 1, 12.5, 99.25, -3} {
		x := ts.BarToX(bar)
		got := ts.XToBar(x)
		if math.Abs(got-bar) > 1e-9 {
			t.Errorf("XToBar(BarToX(%v)) = %v, want %v", bar, got, bar)
		}
	}
}

func TestXToBarIndex(t *testing.T) {
	ts := NewTimeScale(800)
	ts.BarSpacing = 8
	ts.BarCount = 50

	tests := []struct {
		name   string
		x      float64
		want   int
		wantOK bool
	}{
		{"first bar", 0, 0, true},
		{"second bar", 8, 1, true},
		{"mid bar", 12, 1, true},
		{"outside chart", 900, 0, false},
		{"negative x", -1, 0, false},
		{"past data", 420, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ts.XToBarIndex(tt.x)
			if ok != tt.wantOK || (ok && got != tt.want) {
				t.Errorf("XToBarIndex(%v) = (%v, %v), want (%v, %v)",
					tt.x, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestSetBarSpacingClamped(t *testing.T) {
	ts := NewTimeScale(800)

	ts.SetBarSpacing(0.5)
	if ts.BarSpacing != MinBarSpacing {
		t.Errorf("spacing below min: got %v, want %v", ts.BarSpacing, MinBarSpacing)
	}
	ts.SetBarSpacing(500)
	if ts.BarSpacing != MaxBarSpacing {
		t.Errorf("spacing above max: got %v, want %v", ts.BarSpacing, MaxBarSpacing)
	}
}

func TestScrollToEnd(t *testing.T) {
	ts := NewTimeScale(800)
	ts.BarSpacing = 8
	ts.SetBarCount(500)
	ts.ScrollToEnd()

	// 100 bars visible, so the view starts at bar 400.
	if ts.ViewStart != 400 {
		t.Fatalf("ViewStart = %v, want 400", ts.ViewStart)
	}
	// The last bar must land within one bar spacing of the right edge.
	x := ts.BarToX(499)
	if x < ts.ChartWidth-ts.BarSpacing || x > ts.ChartWidth {
		t.Errorf("last bar at x=%v, want within [%v, %v]",
			x, ts.ChartWidth-ts.BarSpacing, ts.ChartWidth)
	}
}

func TestSetBarCountStickyEnd(t *testing.T) {
	ts := NewTimeScale(800)
	ts.BarSpacing = 8
	ts.SetBarCount(500)
	ts.ScrollToEnd()

	// Scrolled to the end: new bars keep the view pinned there.
	ts.SetBarCount(510)
	if ts.ViewStart != 410 {
		t.Errorf("ViewStart after append at end = %v, want 410", ts.ViewStart)
	}

	// Scrolled into history: new bars must not move the view.
	ts.ViewStart = 100
	ts.SetBarCount(520)
	if ts.ViewStart != 100 {
		t.Errorf("ViewStart after append in history = %v, want 100", ts.ViewStart)
	}
}

func TestFitAll(t *testing.T) {
	ts := NewTimeScale(800)
	ts.SetBarCount(400)
	ts.FitAll(MinBarSpacing, MaxBarSpacing)

	if ts.ViewStart != 0 {
		t.Errorf("ViewStart = %v, want 0", ts.ViewStart)
	}
	if ts.BarSpacing != 2 {
		t.Errorf("BarSpacing = %v, want 2", ts.BarSpacing)
	}
	// All bars must now fit.
	if ts.VisibleBars() < 400 {
		t.Errorf("VisibleBars = %d, want >= 400", ts.VisibleBars())
	}
}

func TestZoomKeepsAnchor(t *testing.T) {
	ts := NewTimeScale(800)
	ts.BarSpacing = 8
	ts.SetBarCount(500)
	ts.ScrollToEnd()

	anchorX := 400.0
	before := ts.XToBar(anchorX)
	ts.Zoom(1.25, anchorX)
	after := ts.XToBar(anchorX)

	if math.Abs(before-after) > 1.0 {
		t.Errorf("anchor bar moved from %v to %v", before, after)
	}
	if ts.BarSpacing != 10 {
		t.Errorf("BarSpacing = %v, want 10", ts.BarSpacing)
	}
}

func TestWeightFor(t *testing.T) {
	day := func(y int, m time.Month, d, hh, mm int) int64 {
		return time.Date(y, m, d, hh, mm, 0, 0, time.UTC).Unix()
	}

	tests := []struct {
		name string
		ts   int64
		prev int64
		want TickWeight
	}{
		{"year boundary", day(2024, 1, 1, 0, 0), day(2023, 12, 31, 0, 0), WeightYear},
		{"month boundary", day(2024, 3, 1, 0, 0), day(2024, 2, 29, 0, 0), WeightMonth},
		{"day boundary", day(2024, 3, 5, 0, 0), day(2024, 3, 4, 0, 0), WeightDay},
		{"4h boundary", day(2024, 3, 5, 8, 0), day(2024, 3, 5, 7, 0), WeightHour4},
		{"hour boundary", day(2024, 3, 5, 10, 0), day(2024, 3, 5, 9, 30), WeightHour},
		{"30m boundary", day(2024, 3, 5, 10, 30), day(2024, 3, 5, 10, 15), WeightMinute30},
		{"5m boundary", day(2024, 3, 5, 10, 5), day(2024, 3, 5, 10, 4), WeightMinute5},
		{"minute boundary", day(2024, 3, 5, 10, 2), day(2024, 3, 5, 10, 1), WeightMinute},
		{"same minute", day(2024, 3, 5, 10, 1), day(2024, 3, 5, 10, 1), WeightSecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeightFor(tt.ts, tt.prev); got != tt.want {
				t.Errorf("WeightFor = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatTimeTick(t *testing.T) {
	ts := time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC).Unix()

	tests := []struct {
		weight TickWeight
		want   string
	}{
		{WeightYear, "2024"},
		{WeightMonth, "Mar"},
		{WeightDay, "5 Mar"},
		{WeightWeek, "5 Mar"},
		{WeightHour, "14:30"},
		{WeightMinute, "14:30"},
	}
	for _, tt := range tests {
		if got := FormatTimeTick(ts, tt.weight); got != tt.want {
			t.Errorf("FormatTimeTick(weight=%d) = %q, want %q", tt.weight, got, tt.want)
		}
	}
}

func TestTicksLayout(t *testing.T) {
	bars := makeDailyBars(200)
	ts := NewTimeScale(800)
	ts.BarSpacing = 8
	ts.SetBarCount(len(bars))

	ticks := ts.Ticks(bars, nil)
	if len(ticks) == 0 {
		t.Fatal("no ticks generated for 100 visible daily bars")
	}
	for i, tick := range ticks {
		if tick.Label == "" {
			t.Errorf("tick %d has empty label", i)
		}
		if tick.X < 30 || tick.X > ts.ChartWidth-30 {
			t.Errorf("tick %d at x=%v outside margins", i, tick.X)
		}
		if i > 0 && tick.X <= ticks[i-1].X {
			t.Errorf("ticks not sorted by x: %v <= %v", tick.X, ticks[i-1].X)
		}
	}
}

func TestTicksEmptyData(t *testing.T) {
	ts := NewTimeScale(800)
	if ticks := ts.Ticks(nil, nil); ticks != nil {
		t.Errorf("Ticks on empty data = %v, want nil", ticks)
	}
}

// makeDailyBars builds n daily bars starting 2024-01-01 with a gentle
// price wave around 100.
func makeDailyBars(n int) []charts.Bar {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Unix()
	bars := make([]charts.Bar, n)
	for i := range bars {
		mid := 100 + 10*math.Sin(float64(i)/20)
		bars[i] = charts.Bar{
			Timestamp: base + int64(i)*86400,
			Open:      mid - 0.5,
			High:      mid + 1,
			Low:       mid - 1,
			Close:     mid + 0.5,
			Volume:    1000,
		}
	}
	return bars
}
