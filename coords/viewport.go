package coords

import (
	"github.com/gogpu/charts"
)

// Viewport composes a TimeScale and a PriceScale into the complete
// coordinate system for one chart. It owns the bar data reference and
// keeps both scales consistent across data updates, resizes and
// navigation.
type Viewport struct {
	Time  *TimeScale
	Price *PriceScale

	// Width and Height of the drawable area in pixels.
	Width  float64
	Height float64

	bars []charts.Bar
}

// NewViewport creates a viewport for the given pixel size.
func NewViewport(width, height float64) *Viewport {
	return &Viewport{
		Time:   NewTimeScale(width),
		Price:  NewPriceScale(height),
		Width:  width,
		Height: height,
	}
}

// SetBars replaces the bar data. The time scale keeps its end-pinned
// position when it was scrolled to the end; percent mode re-anchors to
// the first visible close; the price range re-fits when auto-scaling.
func (vp *Viewport) SetBars(bars []charts.Bar) {
	vp.bars = bars
	vp.Time.SetBarCount(len(bars))
	vp.refit()
}

// Bars returns the current bar data.
func (vp *Viewport) Bars() []charts.Bar {
	return vp.bars
}

// SetSize resizes the viewport and re-fits the price range.
func (vp *Viewport) SetSize(width, height float64) {
	vp.Width = width
	vp.Height = height
	vp.Time.SetChartWidth(width)
	vp.Price.SetChartHeight(height)
	vp.refit()
}

// BarToX converts a fractional bar index to an X pixel.
func (vp *Viewport) BarToX(bar float64) float64 {
	return vp.Time.BarToX(bar)
}

// XToBar converts an X pixel to a fractional bar index.
func (vp *Viewport) XToBar(x float64) float64 {
	return vp.Time.XToBar(x)
}

// PriceToY converts a price to a Y pixel.
func (vp *Viewport) PriceToY(price float64) float64 {
	return vp.Price.PriceToY(price)
}

// YToPrice converts a Y pixel to a price.
func (vp *Viewport) YToPrice(y float64) float64 {
	return vp.Price.YToPrice(y)
}

// Pan shifts the view horizontally by a pixel delta and re-fits the
// price range to the newly visible bars.
func (vp *Viewport) Pan(pixelDelta float64) {
	vp.Time.Pan(pixelDelta / vp.Time.BarSpacing)
	vp.refit()
}

// Zoom scales bar spacing around an anchor X position.
func (vp *Viewport) Zoom(factor, anchorX float64) {
	vp.Time.Zoom(factor, anchorX)
	vp.refit()
}

// ScrollToEnd jumps to the latest bars.
func (vp *Viewport) ScrollToEnd() {
	vp.Time.ScrollToEnd()
	vp.refit()
}

// ScrollToStart jumps to the first bars.
func (vp *Viewport) ScrollToStart() {
	vp.Time.ScrollToStart()
	vp.refit()
}

// FitAll zooms out so every bar is visible.
func (vp *Viewport) FitAll() {
	vp.Time.FitAll(MinBarSpacing, MaxBarSpacing)
	vp.refit()
}

// SetPriceRange pins the price axis to an explicit range, disabling
// auto-scaling until SetAutoScale(true).
func (vp *Viewport) SetPriceRange(min, max float64) {
	vp.Price.SetRange(min, max)
}

// SetAutoScale toggles price auto-scaling; enabling re-fits immediately.
func (vp *Viewport) SetAutoScale(auto bool) {
	vp.Price.AutoScale = auto
	vp.refit()
}

// SetScaleMode switches the price mapping mode and re-fits.
func (vp *Viewport) SetScaleMode(mode ScaleMode) {
	vp.Price.Mode = mode
	vp.refit()
}

// AutoFitWithOverlays re-fits the price range including overlay series
// so indicator lines are never clipped.
func (vp *Viewport) AutoFitWithOverlays(overlays [][]float64) {
	start, end := vp.Time.VisibleRange()
	vp.rebase(start)
	vp.Price.AutoFitWithOverlays(vp.bars, start, end, overlays)
}

// VisibleBars returns the visible slice of the bar data.
func (vp *Viewport) VisibleBars() []charts.Bar {
	start, end := vp.Time.VisibleRange()
	if start >= end {
		return nil
	}
	return vp.bars[start:end]
}

func (vp *Viewport) refit() {
	start, end := vp.Time.VisibleRange()
	vp.rebase(start)
	vp.Price.AutoFit(vp.bars, start, end)
}

// rebase anchors percent mode to the first visible bar's close.
func (vp *Viewport) rebase(start int) {
	if vp.Price.Mode != ModePercent {
		return
	}
	if start >= 0 && start < len(vp.bars) {
		vp.Price.BasePrice = vp.bars[start].Close
	}
}
