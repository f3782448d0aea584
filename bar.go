package charts

// Bar is a single OHLCV sample.
//
// Bars are immutable once constructed and are supplied by the caller in
// ascending-timestamp order; the core does not validate ordering.
type Bar struct {
	// Timestamp is the bar open time in Unix seconds.
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	// Volume defaults to 0 when the feed carries no volume.
	Volume float64 `json:"volume"`
}

// NewBar creates a bar without volume.
func NewBar(timestamp int64, open, high, low, close float64) Bar {
	return Bar{Timestamp: timestamp, Open: open, High: high, Low: low, Close: close}
}

// Bullish reports whether the bar closed at or above its open.
func (b Bar) Bullish() bool {
	return b.Close >= b.Open
}

// Range returns high minus low.
func (b Bar) Range() float64 {
	return b.High - b.Low
}

// Body returns the absolute open-close distance.
func (b Bar) Body() float64 {
	if b.Close >= b.Open {
		return b.Close - b.Open
	}
	return b.Open - b.Close
}
