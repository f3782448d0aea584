package render

import (
	"math"
	"testing"

	"github.com/gogpu/charts"
)

func TestCrispCoord(t *testing.T) {
	tests := []struct {
		name  string
		coord float64
		dpr   float64
		want  float64
	}{
		{"whole pixel standard", 10.0, 1.0, 10.5},
		{"fractional standard", 10.3, 1.0, 10.5},
		{"high fractional standard", 10.7, 1.0, 10.5},
		{"retina", 10.3, 2.0, 10.25},
		{"zero", 0, 1.0, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CrispCoord(tt.coord, tt.dpr); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CrispCoord(%v, %v) = %v, want %v", tt.coord, tt.dpr, got, tt.want)
			}
		})
	}
}

func TestCrispCoordIdempotent(t *testing.T) {
	for _, dpr := range []float64{1, 1.5, 2, 3} {
		for _, x := range []float64{0, 0.5, 10.3, 123.456, -7.2} {
			once := CrispCoord(x, dpr)
			twice := CrispCoord(once, dpr)
			if math.Abs(once-twice) > 1e-9 {
				t.Errorf("CrispCoord not idempotent: x=%v dpr=%v once=%v twice=%v",
					x, dpr, once, twice)
			}
		}
	}
}

func TestCrispLine(t *testing.T) {
	t.Run("horizontal", func(t *testing.T) {
		from, to := CrispLine(charts.Pt(10.3, 50.0), charts.Pt(90.7, 50.0), 1.0)
		if from.Y != 50.5 || to.Y != 50.5 {
			t.Errorf("horizontal line Y not aligned: %v, %v", from.Y, to.Y)
		}
		if from.X != 10 || to.X != 91 {
			t.Errorf("horizontal line X extent = [%v, %v], want [10, 91]", from.X, to.X)
		}
	})
	t.Run("vertical", func(t *testing.T) {
		from, to := CrispLine(charts.Pt(50.0, 10.3), charts.Pt(50.0, 90.7), 1.0)
		if from.X != 50.5 || to.X != 50.5 {
			t.Errorf("vertical line X not aligned: %v, %v", from.X, to.X)
		}
	})
	t.Run("diagonal", func(t *testing.T) {
		from, to := CrispLine(charts.Pt(10.3, 20.3), charts.Pt(90.7, 80.7), 1.0)
		if from != charts.Pt(10.5, 20.5) || to != charts.Pt(90.5, 80.5) {
			t.Errorf("diagonal endpoints = %v, %v", from, to)
		}
	})
}

func TestCrispRect(t *testing.T) {
	got := CrispRect(charts.NewRect(10.3, 20.7, 50.5, 30.2), 1.0)
	want := charts.NewRect(10, 20, 50, 30)
	if got != want {
		t.Errorf("CrispRect = %+v, want %+v", got, want)
	}
}

func TestCrispRectMinimumSize(t *testing.T) {
	got := CrispRect(charts.NewRect(10, 10, 0.1, 0.1), 1.0)
	if got.W != 1 || got.H != 1 {
		t.Errorf("tiny rect = %vx%v, want 1x1", got.W, got.H)
	}

	// On retina the minimum is one device pixel, half a logical pixel.
	got = CrispRect(charts.NewRect(10, 10, 0.1, 0.1), 2.0)
	if got.W != 0.5 || got.H != 0.5 {
		t.Errorf("tiny retina rect = %vx%v, want 0.5x0.5", got.W, got.H)
	}
}

func TestCrispBarWidth(t *testing.T) {
	tests := []struct {
		width float64
		dpr   float64
		want  float64
	}{
		{5.3, 1.0, 5},
		{5.7, 1.0, 6},
		{0.3, 1.0, 1},
		{5.3, 2.0, 5.5},
		{0.1, 2.0, 0.5},
	}
	for _, tt := range tests {
		if got := CrispBarWidth(tt.width, tt.dpr); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("CrispBarWidth(%v, %v) = %v, want %v", tt.width, tt.dpr, got, tt.want)
		}
	}
}

func TestStrokeOffset(t *testing.T) {
	if got := StrokeOffset(1, 1); got != 0.5 {
		t.Errorf("hairline offset = %v, want 0.5", got)
	}
	if got := StrokeOffset(2, 1); got != 0 {
		t.Errorf("thick stroke offset = %v, want 0", got)
	}
	if got := StrokeOffset(0.5, 2); got != 0.25 {
		t.Errorf("retina hairline offset = %v, want 0.25", got)
	}
}
