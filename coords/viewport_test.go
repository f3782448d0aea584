package coords

import (
	"math"
	"testing"
)

func TestViewportScrollToEnd(t *testing.T) {
	vp := NewViewport(800, 600)
	vp.SetBars(makeDailyBars(500))
	vp.ScrollToEnd()

	// The last bar lands near the right edge.
	x := vp.BarToX(499)
	if x < 800-vp.Time.BarSpacing || x > 800 {
		t.Errorf("last bar at x=%v, want near right edge", x)
	}

	// The price range covers the visible bars with padding.
	start, end := vp.Time.VisibleRange()
	for i := start; i < end; i++ {
		b := vp.Bars()[i]
		if b.Low < vp.Price.MinPrice || b.High > vp.Price.MaxPrice {
			t.Errorf("bar %d [%v, %v] outside fitted range [%v, %v]",
				i, b.Low, b.High, vp.Price.MinPrice, vp.Price.MaxPrice)
		}
	}
}

func TestViewportRoundTrip(t *testing.T) {
	vp := NewViewport(800, 600)
	vp.SetBars(makeDailyBars(500))
	vp.ScrollToEnd()

	bar, price := 450.0, 102.5
	gotBar := vp.XToBar(vp.BarToX(bar))
	gotPrice := vp.YToPrice(vp.PriceToY(price))

	if math.Abs(gotBar-bar) > 1e-9 {
		t.Errorf("bar round trip: got %v, want %v", gotBar, bar)
	}
	if math.Abs(gotPrice-price) > 1e-9 {
		t.Errorf("price round trip: got %v, want %v", gotPrice, price)
	}
}

func TestViewportPanRefits(t *testing.T) {
	vp := NewViewport(800, 600)
	vp.SetBars(makeDailyBars(500))
	vp.ScrollToEnd()

	before := vp.Time.ViewStart
	vp.Pan(80) // pan right by 10 bars of pixels
	if got := before - vp.Time.ViewStart; math.Abs(got-10) > 1e-9 {
		t.Errorf("pan moved view by %v bars, want 10", got)
	}

	// Auto-scale follows the pan.
	start, end := vp.Time.VisibleRange()
	low, high := math.Inf(1), math.Inf(-1)
	for i := start; i < end; i++ {
		low = math.Min(low, vp.Bars()[i].Low)
		high = math.Max(high, vp.Bars()[i].High)
	}
	if vp.Price.MinPrice > low || vp.Price.MaxPrice < high {
		t.Errorf("price range [%v, %v] does not cover visible [%v, %v]",
			vp.Price.MinPrice, vp.Price.MaxPrice, low, high)
	}
}

func TestViewportManualRangePinned(t *testing.T) {
	vp := NewViewport(800, 600)
	vp.SetBars(makeDailyBars(500))

	vp.SetPriceRange(50, 200)
	vp.Pan(100)
	if vp.Price.MinPrice != 50 || vp.Price.MaxPrice != 200 {
		t.Errorf("manual range moved to [%v, %v]", vp.Price.MinPrice, vp.Price.MaxPrice)
	}

	// Re-enabling auto-scale re-fits immediately.
	vp.SetAutoScale(true)
	if vp.Price.MinPrice == 50 && vp.Price.MaxPrice == 200 {
		t.Error("auto-scale did not re-fit the range")
	}
}

func TestViewportPercentRebase(t *testing.T) {
	vp := NewViewport(800, 600)
	vp.SetBars(makeDailyBars(500))
	vp.SetScaleMode(ModePercent)
	vp.ScrollToEnd()

	start, _ := vp.Time.VisibleRange()
	if vp.Price.BasePrice != vp.Bars()[start].Close {
		t.Errorf("BasePrice = %v, want first visible close %v",
			vp.Price.BasePrice, vp.Bars()[start].Close)
	}
}

func TestViewportResize(t *testing.T) {
	vp := NewViewport(800, 600)
	vp.SetBars(makeDailyBars(100))
	vp.SetSize(1200, 900)

	if vp.Time.ChartWidth != 1200 || vp.Price.ChartHeight != 900 {
		t.Errorf("scales not resized: width=%v height=%v",
			vp.Time.ChartWidth, vp.Price.ChartHeight)
	}
}

func TestViewportEmptyData(t *testing.T) {
	vp := NewViewport(800, 600)
	vp.SetBars(nil)
	vp.ScrollToEnd()
	vp.FitAll()

	if got := vp.VisibleBars(); got != nil {
		t.Errorf("VisibleBars on empty data = %v, want nil", got)
	}
	// Coordinate math still returns finite values.
	if y := vp.PriceToY(100); math.IsNaN(y) || math.IsInf(y, 0) {
		t.Errorf("PriceToY on empty data = %v", y)
	}
}
