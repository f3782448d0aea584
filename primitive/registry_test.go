package primitive

import (
	"testing"
)

func testPoints(n int) []Point {
	pts := make([]Point, n)
	for i := range pts {
		pts[i] = Point{Bar: float64(10 + i*5), Price: 100 + float64(i%3)*10}
	}
	return pts
}

func TestCreateEveryRegisteredType(t *testing.T) {
	ids := Types()
	if len(ids) < 40 {
		t.Fatalf("Types() = %d registered types, want at least 40", len(ids))
	}
	for _, id := range ids {
		t.Run(id, func(t *testing.T) {
			p := Create(id, testPoints(7), "")
			if p == nil {
				t.Fatalf("Create(%q) = nil", id)
			}
			if got := p.TypeID(); got != id {
				t.Errorf("TypeID() = %q, want %q", got, id)
			}
			if p.DisplayName() == "" {
				t.Error("DisplayName() is empty")
			}
			meta, ok := Lookup(id)
			if !ok {
				t.Fatalf("Lookup(%q) not found after Create", id)
			}
			if got := p.Kind(); got != meta.Kind {
				t.Errorf("Kind() = %v, want %v", got, meta.Kind)
			}
			if p.Data().ID == "" {
				t.Error("Data().ID is empty, want a generated id")
			}
		})
	}
}

func TestCreateUnknownType(t *testing.T) {
	if p := Create("no_such_tool", testPoints(2), ""); p != nil {
		t.Errorf("Create(unknown) = %T, want nil", p)
	}
}

func TestCreateDefaultColor(t *testing.T) {
	p := Create("trend_line", testPoints(2), "")
	if got := p.Data().Color.Stroke; got != DefaultColor {
		t.Errorf("Stroke = %q, want %q", got, DefaultColor)
	}
	p = Create("trend_line", testPoints(2), "#FF0000")
	if got := p.Data().Color.Stroke; got != "#FF0000" {
		t.Errorf("Stroke = %q, want explicit color", got)
	}
}

func TestCreateSynthesizesMissingPoints(t *testing.T) {
	p := Create("trend_line", []Point{{Bar: 10, Price: 100}}, "")
	pts := p.Points()
	if len(pts) != 2 {
		t.Fatalf("Points() = %d anchors, want 2", len(pts))
	}
	want := Point{Bar: 20, Price: 100}
	if pts[1] != want {
		t.Errorf("synthesized anchor = %+v, want %+v", pts[1], want)
	}

	rec := newTestRecorder()
	p.Render(rec, false)
	if rec.Finish().Len() == 0 {
		t.Error("one-point trend line rendered no commands")
	}

	// Multi-point tools fill in every missing anchor.
	pos := Create("long_position", []Point{{Bar: 5, Price: 50}}, "")
	if got := len(pos.Points()); got != 3 {
		t.Errorf("long_position Points() = %d anchors, want 3", got)
	}
}

func TestByKindSortedAndComplete(t *testing.T) {
	total := 0
	for k := KindLine; k <= KindSignal; k++ {
		ids := ByKind(k)
		for i := 1; i < len(ids); i++ {
			if ids[i-1] >= ids[i] {
				t.Errorf("ByKind(%v) not sorted: %q before %q", k, ids[i-1], ids[i])
			}
		}
		for _, id := range ids {
			meta, ok := Lookup(id)
			if !ok || meta.Kind != k {
				t.Errorf("ByKind(%v) lists %q with kind %v", k, id, meta.Kind)
			}
		}
		total += len(ids)
	}
	if got := len(Types()); total != got {
		t.Errorf("kinds cover %d types, registry has %d", total, got)
	}
}

func TestMetadataFlags(t *testing.T) {
	tests := []struct {
		typeID string
		text   bool
		levels bool
	}{
		{"trend_line", true, false},
		{"fib_retracement", false, true},
		{"gann_fan", false, true},
		{"rectangle", true, false},
		{"cross_line", false, false},
	}
	for _, tt := range tests {
		if got := SupportsText(tt.typeID); got != tt.text {
			t.Errorf("SupportsText(%q) = %v, want %v", tt.typeID, got, tt.text)
		}
		if got := HasLevels(tt.typeID); got != tt.levels {
			t.Errorf("HasLevels(%q) = %v, want %v", tt.typeID, got, tt.levels)
		}
	}
}

// Type ids are persisted in saved documents and must never drift.
func TestPersistedTypeIDsStable(t *testing.T) {
	for _, id := range []string{"fib_time_zones", "price_date_range"} {
		if _, ok := Lookup(id); !ok {
			t.Errorf("Lookup(%q) not found, saved documents use this id", id)
		}
	}
}

func TestRegisterPanics(t *testing.T) {
	t.Run("nil factory", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("Register with nil factory did not panic")
			}
		}()
		Register(Metadata{TypeID: "bad_tool"})
	})
	t.Run("duplicate", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("duplicate Register did not panic")
			}
		}()
		Register(Metadata{
			TypeID: "trend_line",
			New:    func(points []Point, color string) Primitive { return nil },
		})
	})
}

func TestSetPointsValidation(t *testing.T) {
	p := Create("trend_line", testPoints(2), "")
	if err := p.SetPoints(testPoints(3)); err == nil {
		t.Error("SetPoints(3) on a two-point tool, want error")
	}
	if err := p.SetPoints(testPoints(1)); err == nil {
		t.Error("SetPoints(1) on a two-point tool, want error")
	}
	if err := p.SetPoints(testPoints(2)); err != nil {
		t.Errorf("SetPoints(2) = %v, want nil", err)
	}

	// Unbounded tools accept any count at or above the minimum.
	brush := Create("brush", testPoints(2), "")
	if err := brush.SetPoints(testPoints(50)); err != nil {
		t.Errorf("brush SetPoints(50) = %v, want nil", err)
	}
	if err := brush.SetPoints(testPoints(1)); err == nil {
		t.Error("brush SetPoints(1), want error")
	}
}

func TestTranslate(t *testing.T) {
	p := Create("trend_line", []Point{{Bar: 10, Price: 100}, {Bar: 20, Price: 110}}, "")
	p.Translate(5, -2.5)
	got := p.Points()
	want := []Point{{Bar: 15, Price: 97.5}, {Bar: 25, Price: 107.5}}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestCloneIndependence(t *testing.T) {
	p := Create("fib_retracement", []Point{{Bar: 0, Price: 100}, {Bar: 10, Price: 200}}, "")
	c := p.Clone()

	p.Translate(5, 0)
	if c.Points()[0].Bar != 0 {
		t.Error("clone points moved with the original")
	}

	custom := c.LevelConfigs()
	custom[0].Visible = false
	c.SetLevelConfigs(custom)
	if !p.LevelConfigs()[0].Visible {
		t.Error("reconfiguring the clone's levels reached the original")
	}

	if c.Data().ID != p.Data().ID {
		t.Error("clone changed the primitive ID")
	}
}

func TestPointsReturnsCopy(t *testing.T) {
	p := Create("trend_line", []Point{{Bar: 1, Price: 2}, {Bar: 3, Price: 4}}, "")
	pts := p.Points()
	pts[0].Bar = 999
	if p.Points()[0].Bar == 999 {
		t.Error("Points() exposed internal storage")
	}
}
