package coords

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/gogpu/charts"
)

// ScaleMode selects the price-to-Y mapping.
type ScaleMode uint8

const (
	// ModeNormal maps prices linearly.
	ModeNormal ScaleMode = iota
	// ModePercent maps prices as percent change from a base price
	// (the first visible bar's close).
	ModePercent
	// ModeLog maps prices logarithmically. Non-positive prices are
	// clamped to a small epsilon before taking the log.
	ModeLog
)

// String returns the mode name.
func (m ScaleMode) String() string {
	switch m {
	case ModePercent:
		return "percent"
	case ModeLog:
		return "log"
	default:
		return "normal"
	}
}

// logEpsilon is the floor applied to prices in log mode; log of zero or
// a negative price is undefined.
const logEpsilon = 0.0001

// Default fraction of the visible price range added above and below
// when auto-fitting.
const defaultPadding = 0.08

// PriceScale is the Y-axis coordinate system. Y grows downward, so the
// maximum price maps to the top of the chart.
type PriceScale struct {
	// MinPrice and MaxPrice bound the visible price range.
	MinPrice float64
	MaxPrice float64
	// ChartHeight is the drawable height in pixels.
	ChartHeight float64
	// AutoScale re-fits the range to visible data when true.
	AutoScale bool
	// Mode selects linear, percent or logarithmic mapping.
	Mode ScaleMode
	// BasePrice anchors percent mode; set from the first visible bar.
	BasePrice float64
	// PaddingTop and PaddingBottom are the auto-fit margins as a
	// fraction of the visible range.
	PaddingTop    float64
	PaddingBottom float64
}

// NewPriceScale creates an auto-scaling linear price scale.
func NewPriceScale(chartHeight float64) *PriceScale {
	return &PriceScale{
		MinPrice:      0,
		MaxPrice:      100,
		ChartHeight:   chartHeight,
		AutoScale:     true,
		PaddingTop:    defaultPadding,
		PaddingBottom: defaultPadding,
	}
}

// SetChartHeight resizes the scale.
func (ps *PriceScale) SetChartHeight(height float64) {
	ps.ChartHeight = height
}

// SetRange pins the scale to an explicit price range and disables
// auto-scaling. The bounds are swapped if given in reverse order; a
// degenerate range is left untouched.
func (ps *PriceScale) SetRange(min, max float64) {
	if min > max {
		min, max = max, min
	}
	if max-min <= 0 {
		return
	}
	ps.MinPrice = min
	ps.MaxPrice = max
	ps.AutoScale = false
}

// Range returns the visible price range.
func (ps *PriceScale) Range() float64 {
	return ps.MaxPrice - ps.MinPrice
}

// PriceToY converts a price to a Y pixel coordinate. Higher prices map
// to smaller Y. A degenerate range maps everything to mid-height.
func (ps *PriceScale) PriceToY(price float64) float64 {
	switch ps.Mode {
	case ModeLog:
		return ps.logToY(price)
	case ModePercent:
		return ps.percentToY(price)
	default:
		r := ps.Range()
		if r <= 0 {
			return ps.ChartHeight / 2
		}
		return ps.ChartHeight * (1 - (price-ps.MinPrice)/r)
	}
}

// YToPrice converts a Y pixel coordinate back to a price. Inverse of
// PriceToY for a non-degenerate range.
func (ps *PriceScale) YToPrice(y float64) float64 {
	switch ps.Mode {
	case ModeLog:
		return ps.yToLog(y)
	case ModePercent:
		return ps.yToPercent(y)
	default:
		if ps.ChartHeight <= 0 {
			return ps.MinPrice
		}
		return ps.MinPrice + ps.Range()*(1-y/ps.ChartHeight)
	}
}

func (ps *PriceScale) logToY(price float64) float64 {
	logMin := math.Log(math.Max(ps.MinPrice, logEpsilon))
	logMax := math.Log(math.Max(ps.MaxPrice, logEpsilon))
	logRange := logMax - logMin
	if logRange <= 0 {
		return ps.ChartHeight / 2
	}
	logPrice := math.Log(math.Max(price, logEpsilon))
	return ps.ChartHeight * (1 - (logPrice-logMin)/logRange)
}

func (ps *PriceScale) yToLog(y float64) float64 {
	if ps.ChartHeight <= 0 {
		return ps.MinPrice
	}
	logMin := math.Log(math.Max(ps.MinPrice, logEpsilon))
	logMax := math.Log(math.Max(ps.MaxPrice, logEpsilon))
	return math.Exp(logMin + (logMax-logMin)*(1-y/ps.ChartHeight))
}

func (ps *PriceScale) percentToY(price float64) float64 {
	if ps.BasePrice <= 0 {
		return ps.ChartHeight / 2
	}
	pct := (price/ps.BasePrice - 1) * 100
	minPct := (ps.MinPrice/ps.BasePrice - 1) * 100
	maxPct := (ps.MaxPrice/ps.BasePrice - 1) * 100
	r := maxPct - minPct
	if r <= 0 {
		return ps.ChartHeight / 2
	}
	return ps.ChartHeight * (1 - (pct-minPct)/r)
}

func (ps *PriceScale) yToPercent(y float64) float64 {
	if ps.BasePrice <= 0 || ps.ChartHeight <= 0 {
		return ps.MinPrice
	}
	minPct := (ps.MinPrice/ps.BasePrice - 1) * 100
	maxPct := (ps.MaxPrice/ps.BasePrice - 1) * 100
	pct := minPct + (maxPct-minPct)*(1-y/ps.ChartHeight)
	return ps.BasePrice * (1 + pct/100)
}

// AutoFit fits the range to the given bars within the visible index
// range [start, end), with the configured padding above and below.
// No-op when auto-scaling is off or the range is empty.
func (ps *PriceScale) AutoFit(bars []charts.Bar, start, end int) {
	if !ps.AutoScale {
		return
	}
	ps.fit(bars, start, end, nil)
}

// AutoFitWithOverlays fits the range like AutoFit but also includes
// overlay series values (indicator lines) so overlays are never
// clipped. NaN overlay values are skipped.
func (ps *PriceScale) AutoFitWithOverlays(bars []charts.Bar, start, end int, overlays [][]float64) {
	if !ps.AutoScale {
		return
	}
	ps.fit(bars, start, end, overlays)
}

func (ps *PriceScale) fit(bars []charts.Bar, start, end int, overlays [][]float64) {
	if start < 0 {
		start = 0
	}
	if end > len(bars) {
		end = len(bars)
	}
	if start >= end {
		return
	}

	low := math.Inf(1)
	high := math.Inf(-1)
	for i := start; i < end; i++ {
		low = math.Min(low, bars[i].Low)
		high = math.Max(high, bars[i].High)
	}
	for _, series := range overlays {
		for i := start; i < end && i < len(series); i++ {
			v := series[i]
			if math.IsNaN(v) {
				continue
			}
			low = math.Min(low, v)
			high = math.Max(high, v)
		}
	}
	if math.IsInf(low, 1) || math.IsInf(high, -1) {
		return
	}

	r := high - low
	if r <= 0 {
		// Flat data still needs a visible band.
		r = math.Max(math.Abs(high)*0.01, 1)
	}
	ps.MinPrice = low - r*ps.PaddingBottom
	ps.MaxPrice = high + r*ps.PaddingTop
}

// NiceNumber rounds a value to the nearest "nice" step: 1, 2, 2.5 or 5
// times a power of ten. Values <= 0 return 1.
func NiceNumber(value float64) float64 {
	if value <= 0 {
		return 1
	}
	exponent := math.Floor(math.Log10(value))
	power := math.Pow(10, exponent)
	fraction := value / power

	nice := []float64{1, 2, 2.5, 5, 10}
	best := nice[0]
	bestDist := math.Abs(fraction - nice[0])
	for _, n := range nice[1:] {
		if d := math.Abs(fraction - n); d < bestDist {
			best = n
			bestDist = d
		}
	}
	return best * power
}

// TargetTickCount returns how many price labels fit comfortably in the
// given chart height, clamped to [4, 8].
func TargetTickCount(chartHeight float64) int {
	n := int(chartHeight / 80)
	if n < 4 {
		return 4
	}
	if n > 8 {
		return 8
	}
	return n
}

// Step returns the nice tick step for the current range and height.
func (ps *PriceScale) Step() float64 {
	r := ps.Range()
	if r <= 0 {
		return 1
	}
	return NiceNumber(r / float64(TargetTickCount(ps.ChartHeight)))
}

// Precision derives the number of decimal places needed to display a
// tick step without truncation, capped at 5.
func Precision(step float64) int {
	switch {
	case step <= 0:
		return 2
	case step >= 1:
		return 0
	case step >= 0.1:
		return 1
	case step >= 0.01:
		return 2
	case step >= 0.001:
		return 3
	case step >= 0.0001:
		return 4
	default:
		return 5
	}
}

// PriceTick is one labeled tick on the price axis.
type PriceTick struct {
	Price float64
	Y     float64
	Label string
}

// Ticks generates price axis ticks for the current range. Ticks land
// on multiples of the nice step in the active mode's space: price
// multiples in normal mode, percent multiples in percent mode and
// log-space multiples in log mode.
func (ps *PriceScale) Ticks() []PriceTick {
	switch ps.Mode {
	case ModePercent:
		return ps.percentTicks()
	case ModeLog:
		return ps.logTicks()
	default:
		return ps.linearTicks()
	}
}

func (ps *PriceScale) linearTicks() []PriceTick {
	r := ps.Range()
	if r <= 0 || ps.ChartHeight <= 0 {
		return nil
	}
	step := ps.Step()
	precision := Precision(step)

	var ticks []PriceTick
	price := math.Ceil(ps.MinPrice/step) * step
	for price <= ps.MaxPrice {
		ticks = append(ticks, PriceTick{
			Price: price,
			Y:     ps.PriceToY(price),
			Label: FormatPrice(price, precision),
		})
		price += step
	}
	return ticks
}

func (ps *PriceScale) percentTicks() []PriceTick {
	if ps.BasePrice <= 0 || ps.ChartHeight <= 0 {
		return nil
	}
	minPct := (ps.MinPrice/ps.BasePrice - 1) * 100
	maxPct := (ps.MaxPrice/ps.BasePrice - 1) * 100
	r := maxPct - minPct
	if r <= 0 {
		return nil
	}
	step := NiceNumber(r / float64(TargetTickCount(ps.ChartHeight)))
	precision := Precision(step)

	var ticks []PriceTick
	pct := math.Ceil(minPct/step) * step
	for pct <= maxPct {
		price := ps.BasePrice * (1 + pct/100)
		ticks = append(ticks, PriceTick{
			Price: price,
			Y:     ps.PriceToY(price),
			Label: FormatPercent(pct, precision),
		})
		pct += step
	}
	return ticks
}

func (ps *PriceScale) logTicks() []PriceTick {
	if ps.ChartHeight <= 0 {
		return nil
	}
	logMin := math.Log(math.Max(ps.MinPrice, logEpsilon))
	logMax := math.Log(math.Max(ps.MaxPrice, logEpsilon))
	r := logMax - logMin
	if r <= 0 {
		return nil
	}
	count := TargetTickCount(ps.ChartHeight)
	step := r / float64(count)

	var ticks []PriceTick
	for i := 0; i <= count; i++ {
		price := math.Exp(logMin + step*float64(i))
		// Precision from the local price distance between ticks.
		local := price * (math.Exp(step) - 1)
		ticks = append(ticks, PriceTick{
			Price: price,
			Y:     ps.PriceToY(price),
			Label: FormatPrice(price, Precision(NiceNumber(local))),
		})
	}
	return ticks
}

// FormatLabel formats a price for the axis in the scale's active mode.
func (ps *PriceScale) FormatLabel(price float64, precision int) string {
	if ps.Mode == ModePercent && ps.BasePrice > 0 {
		return FormatPercent((price/ps.BasePrice-1)*100, precision)
	}
	return FormatPrice(price, precision)
}

// FormatPrice formats a price with a fixed number of decimals.
func FormatPrice(price float64, precision int) string {
	return fmt.Sprintf("%.*f", precision, price)
}

// FormatPercent formats a percent-change value with an explicit sign.
func FormatPercent(pct float64, precision int) string {
	return fmt.Sprintf("%+.*f%%", precision, pct)
}

var groupedPrinter = message.NewPrinter(language.English)

// FormatPriceGrouped formats a price with thousands separators, for
// crosshair and legend labels where larger values are common.
func FormatPriceGrouped(price float64, precision int) string {
	return groupedPrinter.Sprintf("%v", number.Decimal(price,
		number.MinFractionDigits(precision),
		number.MaxFractionDigits(precision)))
}

// LabelFontSize picks the axis label font size for the chart height,
// stepping from 9px on tiny charts up to 13px on tall ones.
func LabelFontSize(chartHeight float64) float64 {
	switch {
	case chartHeight < 200:
		return 9
	case chartHeight < 350:
		return 10
	case chartHeight < 500:
		return 11
	case chartHeight < 700:
		return 12
	default:
		return 13
	}
}
