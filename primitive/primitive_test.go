package primitive

import (
	"math"
	"testing"

	"github.com/gogpu/charts"
)

func TestNormalizeTextRotation(t *testing.T) {
	tests := []struct {
		name    string
		raw     float64
		want    float64
		flipped bool
	}{
		{"level", 0, 0, false},
		{"shallow up", math.Pi / 4, math.Pi / 4, false},
		{"shallow down", -math.Pi / 4, -math.Pi / 4, false},
		{"steep left up", 3 * math.Pi / 4, 3*math.Pi/4 - math.Pi, true},
		{"steep left down", -3 * math.Pi / 4, -3*math.Pi/4 + math.Pi, true},
		{"exactly vertical", math.Pi / 2, math.Pi / 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, flipped := NormalizeTextRotation(tt.raw)
			if math.Abs(got-tt.want) > 1e-12 || flipped != tt.flipped {
				t.Errorf("NormalizeTextRotation(%v) = (%v, %v), want (%v, %v)",
					tt.raw, got, flipped, tt.want, tt.flipped)
			}
		})
	}
}

func TestLineStyleDash(t *testing.T) {
	tests := []struct {
		style LineStyle
		want  []float64
	}{
		{StyleSolid, nil},
		{StyleDashed, []float64{8, 4}},
		{StyleDotted, []float64{2, 2}},
		{StyleLargeDashed, []float64{12, 6}},
		{StyleSparseDotted, []float64{2, 8}},
	}
	for _, tt := range tests {
		got := tt.style.Dash()
		if len(got) != len(tt.want) {
			t.Errorf("%v.Dash() = %v, want %v", tt.style, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%v.Dash() = %v, want %v", tt.style, got, tt.want)
				break
			}
		}
	}
}

func TestParseLineStyleRoundTrip(t *testing.T) {
	for _, s := range []LineStyle{StyleSolid, StyleDashed, StyleDotted, StyleLargeDashed, StyleSparseDotted} {
		if got := ParseLineStyle(s.String()); got != s {
			t.Errorf("ParseLineStyle(%q) = %v, want %v", s.String(), got, s)
		}
	}
	if got := ParseLineStyle("wavy"); got != StyleSolid {
		t.Errorf("ParseLineStyle(unknown) = %v, want solid", got)
	}
}

func TestPointToSegmentDistance(t *testing.T) {
	a := charts.Pt(0, 0)
	b := charts.Pt(10, 0)
	tests := []struct {
		name string
		p    charts.Point
		want float64
	}{
		{"on segment", charts.Pt(5, 0), 0},
		{"above middle", charts.Pt(5, 3), 3},
		{"beyond end", charts.Pt(13, 4), 5},
		{"before start", charts.Pt(-3, -4), 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointToSegmentDistance(tt.p, a, b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("distance = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtendSegment(t *testing.T) {
	a := charts.Pt(100, 100)
	b := charts.Pt(200, 200)
	const w, h = 800.0, 600.0

	t.Run("none", func(t *testing.T) {
		ea, eb := extendSegment(a, b, ExtendNone, w, h)
		if ea != a || eb != b {
			t.Errorf("ExtendNone moved the segment: %v %v", ea, eb)
		}
	})
	t.Run("right reaches the edge", func(t *testing.T) {
		ea, eb := extendSegment(a, b, ExtendRight, w, h)
		if ea != a {
			t.Errorf("start moved to %v", ea)
		}
		if eb.X != w || math.Abs(eb.Y-800) > 1e-9 {
			t.Errorf("end = %v, want (800, 800) on the y=x line", eb)
		}
	})
	t.Run("both spans the width", func(t *testing.T) {
		ea, eb := extendSegment(a, b, ExtendBoth, w, h)
		if ea.X != 0 || math.Abs(ea.Y-0) > 1e-9 {
			t.Errorf("left end = %v, want (0, 0)", ea)
		}
		if eb.X != w {
			t.Errorf("right end = %v, want x=%v", eb, w)
		}
	})
	t.Run("vertical extends along y", func(t *testing.T) {
		va := charts.Pt(50, 100)
		vb := charts.Pt(50, 200)
		ea, eb := extendSegment(va, vb, ExtendBoth, w, h)
		if ea != charts.Pt(50, 0) || eb != charts.Pt(50, h) {
			t.Errorf("vertical extend = %v %v", ea, eb)
		}
	})
}

func TestFibLevelPrice(t *testing.T) {
	f := Create("fib_retracement", []Point{{Bar: 0, Price: 200}, {Bar: 10, Price: 100}}, "").(*FibRetracement)
	tests := []struct {
		level float64
		want  float64
	}{
		{0, 100},   // level 0 at the second anchor
		{1, 200},   // level 1 at the first
		{0.5, 150},
		{0.618, 161.8},
	}
	for _, tt := range tests {
		if got := f.levelPrice(tt.level); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("levelPrice(%v) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestDefaultLevelConfigs(t *testing.T) {
	levels := defaultLevelConfigs()
	if len(levels) != len(DefaultFibLevels) {
		t.Fatalf("len = %d, want %d", len(levels), len(DefaultFibLevels))
	}
	for i, lc := range levels {
		if lc.Level != DefaultFibLevels[i] {
			t.Errorf("level %d = %v, want %v", i, lc.Level, DefaultFibLevels[i])
		}
		if !lc.Visible || lc.Color == "" {
			t.Errorf("level %d: visible=%v color=%q", i, lc.Visible, lc.Color)
		}
	}
}

func TestSetLevelConfigs(t *testing.T) {
	f := Create("fib_retracement", testPoints(2), "")
	custom := []LevelConfig{{Level: 0.25, Color: "#111111", Visible: true}}
	if !f.SetLevelConfigs(custom) {
		t.Fatal("SetLevelConfigs = false on a levels tool")
	}
	got := f.LevelConfigs()
	if len(got) != 1 || got[0].Level != 0.25 {
		t.Errorf("LevelConfigs = %+v, want the custom set", got)
	}

	// Tools without levels reject the call.
	line := Create("trend_line", testPoints(2), "")
	if line.SetLevelConfigs(custom) {
		t.Error("SetLevelConfigs = true on a plain line")
	}
	if line.LevelConfigs() != nil {
		t.Error("plain line reports level configs")
	}
}

func TestRegressionTrendFit(t *testing.T) {
	// Closes on an exact line: close(i) = 100 + 2i.
	bars := make([]charts.Bar, 20)
	for i := range bars {
		bars[i].Close = 100 + 2*float64(i)
	}
	r := Create("regression_trend", []Point{{Bar: 2, Price: 0}, {Bar: 12, Price: 0}}, "").(*RegressionTrend)

	r.Fit(bars)
	if !r.Fitted() {
		t.Fatal("Fitted() = false after Fit with valid data")
	}
	if math.Abs(r.alpha-104) > 1e-9 {
		t.Errorf("alpha = %v, want 104 (close at bar 2)", r.alpha)
	}
	if math.Abs(r.beta-2) > 1e-9 {
		t.Errorf("beta = %v, want 2", r.beta)
	}
	if r.deviation > 1e-9 {
		t.Errorf("deviation = %v, want 0 for exact line", r.deviation)
	}
}

func TestRegressionTrendFitDegenerate(t *testing.T) {
	r := Create("regression_trend", []Point{{Bar: 5, Price: 0}, {Bar: 5, Price: 0}}, "").(*RegressionTrend)
	r.Fit(make([]charts.Bar, 10))
	if r.Fitted() {
		t.Error("Fitted() = true for a zero-width anchor range")
	}

	r2 := Create("regression_trend", []Point{{Bar: 0, Price: 0}, {Bar: 10, Price: 0}}, "").(*RegressionTrend)
	r2.Fit(nil)
	if r2.Fitted() {
		t.Error("Fitted() = true with no data")
	}
}

func TestPositionRiskReward(t *testing.T) {
	tests := []struct {
		name   string
		typeID string
		entry  float64
		target float64
		stop   float64
		want   string
		ok     bool
	}{
		{"long 2R", "long_position", 100, 120, 90, "R/R: 2.00", true},
		{"short 2R", "short_position", 100, 80, 110, "R/R: 2.00", true},
		{"long inverted stop", "long_position", 100, 120, 110, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Create(tt.typeID, []Point{
				{Bar: 0, Price: tt.entry},
				{Bar: 10, Price: tt.target},
				{Bar: 10, Price: tt.stop},
			}, "").(*Position)
			got, ok := p.riskReward()
			if ok != tt.ok || got != tt.want {
				t.Errorf("riskReward() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}
