package primitive

import (
	"encoding/json"
	"fmt"

	"github.com/gogpu/charts"
)

// envelope is the persisted form of a primitive. Tool-specific state
// beyond levels is reconstructed from the type ID by the factory.
type envelope struct {
	TypeID string        `json:"type_id"`
	Data   document      `json:"data"`
	Levels []LevelConfig `json:"levels,omitempty"`
}

// document mirrors Data for persistence. Visible is a pointer so a
// document that omits the field loads as visible instead of picking up
// the zero value and hiding the drawing.
type document struct {
	ID      string      `json:"id"`
	TypeID  string      `json:"type_id"`
	Points  []Point     `json:"points"`
	Color   ColorConfig `json:"color"`
	Width   float64     `json:"width"`
	Style   LineStyle   `json:"style"`
	Text    *Text       `json:"text,omitempty"`
	Locked  bool        `json:"locked,omitempty"`
	Visible *bool       `json:"visible"`
	ZOrder  int         `json:"z_order,omitempty"`
}

func toDocument(d Data) document {
	v := d.Visible
	return document{
		ID:      d.ID,
		TypeID:  d.TypeID,
		Points:  d.Points,
		Color:   d.Color,
		Width:   d.Width,
		Style:   d.Style,
		Text:    d.Text,
		Locked:  d.Locked,
		Visible: &v,
		ZOrder:  d.ZOrder,
	}
}

// data converts back to live state, defaulting fields the document
// omits or holds out of range.
func (doc document) data() Data {
	d := Data{
		ID:      doc.ID,
		TypeID:  doc.TypeID,
		Points:  doc.Points,
		Color:   doc.Color,
		Width:   doc.Width,
		Style:   doc.Style,
		Text:    doc.Text,
		Locked:  doc.Locked,
		Visible: doc.Visible == nil || *doc.Visible,
		ZOrder:  doc.ZOrder,
	}
	if d.Width <= 0 {
		d.Width = 2
	}
	return d
}

// Marshal serializes a primitive to its JSON envelope.
func Marshal(p Primitive) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("primitive: marshal nil primitive")
	}
	env := envelope{
		TypeID: p.TypeID(),
		Data:   toDocument(*p.Data()),
		Levels: p.LevelConfigs(),
	}
	return json.Marshal(env)
}

// Unmarshal reconstructs a primitive from its JSON envelope. The type
// must be registered; unknown types are an error so callers can skip
// or report individual documents without losing the rest.
func Unmarshal(b []byte) (Primitive, error) {
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("primitive: decode envelope: %w", err)
	}
	return restore(env)
}

// MarshalJSON writes the style by name so documents stay readable.
func (s LineStyle) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts the style name, or the numeric form written by
// older versions.
func (s *LineStyle) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] != '"' {
		var n uint8
		if err := json.Unmarshal(b, &n); err != nil {
			return err
		}
		*s = LineStyle(n)
		return nil
	}
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}
	*s = ParseLineStyle(name)
	return nil
}

// UnmarshalJSON accepts both the current object form and the legacy
// plain-string form of a label.
func (t *Text) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var content string
		if err := json.Unmarshal(b, &content); err != nil {
			return err
		}
		*t = *NewText(content)
		return nil
	}
	type plain Text
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*t = Text(p)
	if t.FontSize <= 0 {
		t.FontSize = 14
	}
	return nil
}

// MarshalList serializes a drawing list, skipping nil entries.
func MarshalList(ps []Primitive) ([]byte, error) {
	raw := make([]json.RawMessage, 0, len(ps))
	for _, p := range ps {
		if p == nil {
			continue
		}
		b, err := Marshal(p)
		if err != nil {
			return nil, err
		}
		raw = append(raw, b)
	}
	return json.Marshal(raw)
}

// UnmarshalList reconstructs a drawing list. Entries of unknown type
// are skipped with a warning rather than failing the whole document.
func UnmarshalList(b []byte) ([]Primitive, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("primitive: decode list: %w", err)
	}
	out := make([]Primitive, 0, len(raw))
	for _, entry := range raw {
		p, err := Unmarshal(entry)
		if err != nil {
			charts.Logger().Warn("skipping drawing", "err", err)
			continue
		}
		out = append(out, p)
	}
	return out, nil
}
