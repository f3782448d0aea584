// Package coords implements the chart coordinate system: TimeScale maps
// bar indices to X pixels, PriceScale maps prices to Y pixels, and
// Viewport composes the two for one chart session.
//
// Both scales are pure math with no rendering dependency. Neither is
// safe for concurrent mutation; a chart session owns its Viewport.
package coords

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/gogpu/charts"
)

// Bar spacing bounds in pixels. Spacing is clamped so bars never
// collapse to zero width or explode off-screen.
const (
	MinBarSpacing = 2.0
	MaxBarSpacing = 100.0
)

// TickWeight ranks time tick marks by boundary importance.
// Higher weight = more important = rendered larger/brighter.
type TickWeight uint8

const (
	WeightSecond   TickWeight = 0
	WeightMinute   TickWeight = 10
	WeightMinute5  TickWeight = 15
	WeightMinute30 TickWeight = 20
	WeightHour     TickWeight = 30
	WeightHour4    TickWeight = 35
	WeightWeek     TickWeight = 40
	WeightDay      TickWeight = 50
	WeightMonth    TickWeight = 60
	WeightYear     TickWeight = 70
)

// Major reports whether this is a year or month boundary.
func (w TickWeight) Major() bool {
	return w == WeightYear || w == WeightMonth
}

// WeightFor classifies the boundary a timestamp crosses relative to the
// previous bar's timestamp. Timestamps are Unix seconds, evaluated in UTC.
func WeightFor(ts, prev int64) TickWeight {
	t := time.Unix(ts, 0).UTC()
	p := time.Unix(prev, 0).UTC()

	switch {
	case t.Year() != p.Year():
		return WeightYear
	case t.Month() != p.Month():
		return WeightMonth
	case isoWeek(t) != isoWeek(p):
		return WeightWeek
	case t.YearDay() != p.YearDay():
		return WeightDay
	case t.Hour()/4 != p.Hour()/4:
		return WeightHour4
	case t.Hour() != p.Hour():
		return WeightHour
	case t.Minute()/30 != p.Minute()/30:
		return WeightMinute30
	case t.Minute()/5 != p.Minute()/5:
		return WeightMinute5
	case t.Minute() != p.Minute():
		return WeightMinute
	default:
		return WeightSecond
	}
}

func isoWeek(t time.Time) int {
	_, week := t.ISOWeek()
	return week
}

// TimeTick is one labeled tick mark on the time axis.
type TimeTick struct {
	// BarIndex of the bar the tick sits on.
	BarIndex int
	// X pixel coordinate (bar center).
	X float64
	// Weight for styling.
	Weight TickWeight
	// Label, formatted per weight.
	Label string
}

// MeasureFunc estimates the pixel width of a rendered label. Tick
// generation uses it for collision rejection. See render.FaceMeasurer
// for a font-backed implementation.
type MeasureFunc func(s string) float64

// estimateWidth is the fallback measurer: ~7px per character at the
// default axis font size.
func estimateWidth(s string) float64 {
	return float64(len(s)) * 7
}

// TimeScale is the X-axis coordinate system: bar positioning,
// navigation (pan/zoom/scroll) and time tick generation.
type TimeScale struct {
	// ViewStart is the bar index at the left chart edge. Fractional for
	// smooth panning.
	ViewStart float64
	// BarSpacing is pixels per bar (the zoom level).
	BarSpacing float64
	// BarWidthRatio is the bar body width as a fraction of spacing.
	BarWidthRatio float64
	// ChartWidth is the drawable width in pixels.
	ChartWidth float64
	// BarCount is the total number of bars in the data.
	BarCount int
}

// NewTimeScale creates a time scale for the given chart width.
func NewTimeScale(chartWidth float64) *TimeScale {
	return &TimeScale{
		BarSpacing:    8,
		BarWidthRatio: 0.8,
		ChartWidth:    chartWidth,
	}
}

// SetBarCount updates the total bar count. If the view was scrolled to
// the end it stays pinned to the new end, so incoming live bars do not
// require an explicit re-scroll.
func (ts *TimeScale) SetBarCount(count int) {
	if count < 0 {
		count = 0
	}
	atEnd := ts.BarCount > 0 && ts.ViewStart >= float64(ts.BarCount-ts.VisibleBars())
	ts.BarCount = count
	if atEnd {
		ts.ScrollToEnd()
	}
}

// SetChartWidth resizes the scale, keeping ViewStart.
func (ts *TimeScale) SetChartWidth(width float64) {
	ts.ChartWidth = width
}

// SetBarSpacing sets pixels per bar, clamped to [MinBarSpacing, MaxBarSpacing].
func (ts *TimeScale) SetBarSpacing(spacing float64) {
	ts.BarSpacing = clamp(spacing, MinBarSpacing, MaxBarSpacing)
}

// SetBarWidthRatio sets the body width fraction, clamped to [0.1, 1].
func (ts *TimeScale) SetBarWidthRatio(ratio float64) {
	ts.BarWidthRatio = clamp(ratio, 0.1, 1)
}

// VisibleBars returns how many bars fit in the chart width.
func (ts *TimeScale) VisibleBars() int {
	n := int(ts.ChartWidth / ts.BarSpacing)
	if n < 1 {
		return 1
	}
	return n
}

// VisibleRange returns the visible bar index range [start, end).
// Indices are clamped to the data; end includes one bar of overshoot so
// partially visible bars at the right edge are rendered.
func (ts *TimeScale) VisibleRange() (start, end int) {
	start = int(ts.ViewStart)
	if start < 0 {
		start = 0
	}
	if start > ts.BarCount-1 {
		start = ts.BarCount - 1
		if start < 0 {
			start = 0
		}
	}
	end = int(math.Ceil(ts.ViewStart+float64(ts.VisibleBars()))) + 1
	if end > ts.BarCount {
		end = ts.BarCount
	}
	return start, end
}

// BarToX converts a fractional bar index to the X pixel at the bar's
// center. Exact inverse of XToBar.
func (ts *TimeScale) BarToX(bar float64) float64 {
	return (bar-ts.ViewStart)*ts.BarSpacing + ts.BarSpacing/2
}

// XToBar converts an X pixel back to a fractional bar index.
// Exact inverse of BarToX.
func (ts *TimeScale) XToBar(x float64) float64 {
	return ts.ViewStart + (x-ts.BarSpacing/2)/ts.BarSpacing
}

// XToBarIndex converts an X pixel to a whole bar index for hit-testing.
// The second result is false when x falls outside the chart or the data.
func (ts *TimeScale) XToBarIndex(x float64) (int, bool) {
	if x < 0 || x > ts.ChartWidth {
		return 0, false
	}
	idx := int(ts.ViewStart + x/ts.BarSpacing)
	if idx < 0 || idx >= ts.BarCount {
		return 0, false
	}
	return idx, true
}

// BarWidth returns the bar body width in pixels.
func (ts *TimeScale) BarWidth() float64 {
	return ts.BarSpacing * ts.BarWidthRatio
}

// Pan shifts the view by a bar delta; positive pans toward newer bars.
func (ts *TimeScale) Pan(barDelta float64) {
	ts.ViewStart -= barDelta
}

// ScrollToEnd aligns the view with the latest bars.
func (ts *TimeScale) ScrollToEnd() {
	start := ts.BarCount - ts.VisibleBars()
	if start < 0 {
		start = 0
	}
	ts.ViewStart = float64(start)
}

// ScrollToStart aligns the view with the first bars.
func (ts *TimeScale) ScrollToStart() {
	ts.ViewStart = 0
}

// FitAll adjusts spacing so every bar fits in the view, within the
// given spacing bounds.
func (ts *TimeScale) FitAll(minSpacing, maxSpacing float64) {
	if ts.BarCount == 0 {
		return
	}
	ts.BarSpacing = clamp(ts.ChartWidth/float64(ts.BarCount), minSpacing, maxSpacing)
	ts.ViewStart = 0
}

// SetVisibleRange fits the view to the bar index range [start, end).
func (ts *TimeScale) SetVisibleRange(start, end float64) {
	count := end - start
	if count <= 0 {
		return
	}
	ts.ViewStart = start
	ts.BarSpacing = ts.ChartWidth / count
}

// Zoom scales bar spacing around an anchor X position so the bar under
// the cursor stays put. factor > 1 zooms in.
func (ts *TimeScale) Zoom(factor, anchorX float64) {
	if factor <= 0 || factor == 1 {
		return
	}
	anchorBar := ts.XToBar(anchorX)
	ts.BarSpacing = clamp(ts.BarSpacing*factor, MinBarSpacing, MaxBarSpacing)

	// Keep the anchor bar at the same fraction of the chart width.
	anchorRatio := anchorX / ts.ChartWidth
	ts.ViewStart = anchorBar - float64(ts.VisibleBars())*anchorRatio
}

// Ticks generates labeled time ticks for the visible range.
//
// Candidates are bars whose timestamp crosses at least an hour boundary;
// they are admitted by descending weight, rejecting any that would
// crowd an already placed label (by bar distance and by measured pixel
// overlap). The result is sorted by X. measure may be nil, in which
// case a character-count estimate is used.
func (ts *TimeScale) Ticks(bars []charts.Bar, measure MeasureFunc) []TimeTick {
	if measure == nil {
		measure = estimateWidth
	}
	start, end := ts.VisibleRange()
	if start >= end || len(bars) == 0 {
		return nil
	}

	// Minimum bar distance between labels for a typical label width.
	const typicalLabelWidth = 50.0
	minSpacingBars := int(math.Ceil(typicalLabelWidth / ts.BarSpacing))
	if minSpacingBars < 1 {
		minSpacingBars = 1
	}

	type candidate struct {
		barIdx int
		x      float64
		weight TickWeight
		ts     int64
	}
	var candidates []candidate
	var prev int64

	for i := start; i < end && i < len(bars); i++ {
		t := bars[i].Timestamp
		x := ts.BarToX(float64(i))
		if x < -100 || x > ts.ChartWidth+100 {
			prev = t
			continue
		}
		w := WeightFor(t, prev)
		if w >= WeightHour {
			candidates = append(candidates, candidate{barIdx: i, x: x, weight: w, ts: t})
		}
		prev = t
	}
	if len(candidates) == 0 {
		return nil
	}

	// Heavier boundaries first; earlier bars break ties.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].weight != candidates[j].weight {
			return candidates[i].weight > candidates[j].weight
		}
		return candidates[i].barIdx < candidates[j].barIdx
	})

	var ticks []TimeTick
	var selected []int
	type placed struct{ x, halfWidth float64 }
	var used []placed

	for _, c := range candidates {
		// Keep labels clear of the chart edges.
		if c.x < 30 || c.x > ts.ChartWidth-30 {
			continue
		}
		tooClose := false
		for _, sel := range selected {
			if abs(c.barIdx-sel) < minSpacingBars {
				tooClose = true
				break
			}
		}
		if tooClose {
			continue
		}

		label := FormatTimeTick(c.ts, c.weight)
		halfWidth := measure(label)/2 + 5

		collides := false
		for _, u := range used {
			if math.Abs(c.x-u.x) < halfWidth+u.halfWidth+8 {
				collides = true
				break
			}
		}
		if collides {
			continue
		}

		ticks = append(ticks, TimeTick{BarIndex: c.barIdx, X: c.x, Weight: c.weight, Label: label})
		selected = append(selected, c.barIdx)
		used = append(used, placed{x: c.x, halfWidth: halfWidth})
	}

	sort.Slice(ticks, func(i, j int) bool { return ticks[i].X < ticks[j].X })
	return ticks
}

// FormatTimeTick formats a tick label for its boundary weight: years as
// "2024", months as "Mar", days and weeks as "5 Mar", finer boundaries
// as "15:04".
func FormatTimeTick(ts int64, weight TickWeight) string {
	t := time.Unix(ts, 0).UTC()
	switch weight {
	case WeightYear:
		return t.Format("2006")
	case WeightMonth:
		return t.Format("Jan")
	case WeightWeek, WeightDay:
		return fmt.Sprintf("%d %s", t.Day(), t.Format("Jan"))
	default:
		return t.Format("15:04")
	}
}

// FormatTimeFull formats a full timestamp for crosshair display.
func FormatTimeFull(ts int64) string {
	return time.Unix(ts, 0).UTC().Format("02.01 15:04")
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
