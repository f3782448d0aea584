package primitive

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	orig := Create("trend_line", []Point{{Bar: 10, Price: 100.5}, {Bar: 42, Price: 97.25}}, "#FF5500")
	orig.Data().Width = 3
	orig.Data().Style = StyleDashed
	orig.Data().Text = NewText("breakout")
	orig.Data().Locked = true

	b, err := Marshal(orig)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	got, err := Unmarshal(b)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.TypeID() != "trend_line" {
		t.Errorf("TypeID = %q", got.TypeID())
	}
	d := got.Data()
	if d.ID != orig.Data().ID {
		t.Errorf("ID = %q, want %q preserved", d.ID, orig.Data().ID)
	}
	if d.Color.Stroke != "#FF5500" || d.Width != 3 || d.Style != StyleDashed || !d.Locked {
		t.Errorf("data = %+v, want fields preserved", d)
	}
	if d.Text == nil || d.Text.Content != "breakout" {
		t.Errorf("text = %+v, want label preserved", d.Text)
	}
	pts := got.Points()
	if len(pts) != 2 || pts[1] != (Point{Bar: 42, Price: 97.25}) {
		t.Errorf("points = %+v", pts)
	}
}

func TestMarshalIncludesLevels(t *testing.T) {
	f := Create("fib_retracement", testPoints(2), "")
	f.SetLevelConfigs([]LevelConfig{{Level: 0.42, Color: "#123456", Visible: true}})

	b, err := Marshal(f)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	got, err := Unmarshal(b)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	levels := got.LevelConfigs()
	if len(levels) != 1 || levels[0].Level != 0.42 || levels[0].Color != "#123456" {
		t.Errorf("levels = %+v, want the custom level restored", levels)
	}
}

func TestUnmarshalUnknownType(t *testing.T) {
	_, err := Unmarshal([]byte(`{"type_id":"flux_capacitor","data":{"points":[]}}`))
	if err == nil || !strings.Contains(err.Error(), "flux_capacitor") {
		t.Errorf("Unmarshal(unknown) = %v, want error naming the type", err)
	}
}

func TestUnmarshalLegacyTextString(t *testing.T) {
	doc := `{
		"type_id": "horizontal_line",
		"data": {
			"id": "abc",
			"type_id": "horizontal_line",
			"points": [{"bar": 5, "price": 101.5}],
			"color": {"stroke": "#00AA00"},
			"width": 1,
			"style": "dotted",
			"text": "support",
			"visible": true
		}
	}`
	p, err := Unmarshal([]byte(doc))
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	d := p.Data()
	if d.Text == nil || d.Text.Content != "support" {
		t.Fatalf("text = %+v, want legacy string promoted to a label", d.Text)
	}
	if d.Text.FontSize != 14 {
		t.Errorf("FontSize = %v, want default 14", d.Text.FontSize)
	}
	if d.Style != StyleDotted {
		t.Errorf("style = %v, want dotted", d.Style)
	}
	if d.ID != "abc" {
		t.Errorf("ID = %q, want preserved", d.ID)
	}
}

func TestUnmarshalDefaultsOmittedFields(t *testing.T) {
	// Older documents may carry neither "visible" nor a usable "width";
	// both default instead of loading the drawing hidden or invisible.
	doc := `{
		"type_id": "trend_line",
		"data": {
			"id": "abc",
			"type_id": "trend_line",
			"points": [{"bar": 1, "price": 10}, {"bar": 5, "price": 20}],
			"color": {"stroke": "#2196F3"}
		}
	}`
	p, err := Unmarshal([]byte(doc))
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !p.Data().Visible {
		t.Error("Visible = false for a document without the field, want true")
	}
	if p.Data().Width != 2 {
		t.Errorf("Width = %v, want default 2", p.Data().Width)
	}

	// An explicit false still means hidden.
	hidden := `{"type_id":"trend_line","data":{"points":[{"bar":0,"price":1},{"bar":1,"price":2}],"color":{"stroke":"#fff"},"visible":false}}`
	p, err = Unmarshal([]byte(hidden))
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if p.Data().Visible {
		t.Error(`Visible = true for an explicit "visible": false`)
	}
}

func TestLineStyleJSONNames(t *testing.T) {
	b, err := json.Marshal(StyleLargeDashed)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(b) != `"large_dashed"` {
		t.Errorf("Marshal = %s, want the style name", b)
	}

	var s LineStyle
	if err := json.Unmarshal([]byte(`"sparse_dotted"`), &s); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if s != StyleSparseDotted {
		t.Errorf("Unmarshal = %v, want sparse_dotted", s)
	}

	// Numeric form written by older versions.
	if err := json.Unmarshal([]byte(`1`), &s); err != nil {
		t.Fatalf("Unmarshal numeric: %v", err)
	}
	if s != StyleDashed {
		t.Errorf("Unmarshal(1) = %v, want dashed", s)
	}
}

func TestMarshalListSkipsNil(t *testing.T) {
	list := []Primitive{
		Create("trend_line", testPoints(2), ""),
		nil,
		Create("rectangle", testPoints(2), ""),
	}
	b, err := MarshalList(list)
	if err != nil {
		t.Fatalf("MarshalList: %v", err)
	}
	got, err := UnmarshalList(b)
	if err != nil {
		t.Fatalf("UnmarshalList: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].TypeID() != "trend_line" || got[1].TypeID() != "rectangle" {
		t.Errorf("types = %q, %q", got[0].TypeID(), got[1].TypeID())
	}
}

func TestUnmarshalListSkipsUnknownTypes(t *testing.T) {
	doc := `[
		{"type_id":"trend_line","data":{"points":[{"bar":0,"price":1},{"bar":1,"price":2}],"color":{"stroke":"#fff"},"width":2,"style":"solid","visible":true}},
		{"type_id":"gone_tool","data":{"points":[]}}
	]`
	got, err := UnmarshalList([]byte(doc))
	if err != nil {
		t.Fatalf("UnmarshalList: %v", err)
	}
	if len(got) != 1 || got[0].TypeID() != "trend_line" {
		t.Errorf("got %d primitives, want the known one only", len(got))
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	list := []Primitive{
		Create("trend_line", []Point{{Bar: 1, Price: 10}, {Bar: 9, Price: 20}}, "#FF0000"),
		Create("fib_retracement", []Point{{Bar: 0, Price: 100}, {Bar: 50, Price: 200}}, ""),
		Create("long_position", []Point{{Bar: 5, Price: 100}, {Bar: 20, Price: 130}, {Bar: 20, Price: 90}}, ""),
	}
	list[0].Data().Text = NewText("entry")

	b, err := EncodeSnapshot(list)
	if err != nil {
		t.Fatalf("EncodeSnapshot: %v", err)
	}

	got, err := DecodeSnapshot(b)
	if err != nil {
		t.Fatalf("DecodeSnapshot: %v", err)
	}
	if len(got) != len(list) {
		t.Fatalf("len = %d, want %d", len(got), len(list))
	}
	for i := range list {
		if got[i].TypeID() != list[i].TypeID() {
			t.Errorf("type %d = %q, want %q", i, got[i].TypeID(), list[i].TypeID())
		}
		if got[i].Data().ID != list[i].Data().ID {
			t.Errorf("id %d changed across the snapshot", i)
		}
	}
	if text := got[0].Data().Text; text == nil || text.Content != "entry" {
		t.Errorf("text = %+v, want label preserved", text)
	}
	if levels := got[1].LevelConfigs(); len(levels) != len(DefaultFibLevels) {
		t.Errorf("levels = %d, want default set restored", len(levels))
	}
}

func TestDecodeSnapshotRejectsNewerVersion(t *testing.T) {
	b, err := EncodeSnapshot(nil)
	if err != nil {
		t.Fatalf("EncodeSnapshot: %v", err)
	}
	if _, err := DecodeSnapshot(b); err != nil {
		t.Errorf("DecodeSnapshot(empty) = %v, want nil", err)
	}
	if _, err := DecodeSnapshot([]byte{0xc1}); err == nil {
		t.Error("DecodeSnapshot(garbage), want error")
	}
}
