// Package theme holds chart color schemes, loadable from YAML so
// deployments can restyle charts without recompiling.
package theme

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/charts"
)

// Theme is a complete chart color scheme. All fields are CSS color
// strings; malformed values fall back to white at parse time.
type Theme struct {
	Name string `yaml:"name"`

	Background string `yaml:"background"`
	Grid       string `yaml:"grid"`

	CandleUp       string `yaml:"candle_up"`
	CandleDown     string `yaml:"candle_down"`
	CandleWickUp   string `yaml:"candle_wick_up,omitempty"`
	CandleWickDown string `yaml:"candle_wick_down,omitempty"`

	AxisText  string `yaml:"axis_text"`
	AxisLine  string `yaml:"axis_line"`
	Crosshair string `yaml:"crosshair"`

	Volume string `yaml:"volume,omitempty"`
}

// Dark is the default theme.
func Dark() Theme {
	return Theme{
		Name:       "dark",
		Background: "#131722",
		Grid:       "#1E222D",
		CandleUp:   "#089981",
		CandleDown: "#F23645",
		AxisText:   "#B2B5BE",
		AxisLine:   "#2A2E39",
		Crosshair:  "#758696",
		Volume:     "#2A2E39",
	}
}

// Light mirrors Dark on a white background.
func Light() Theme {
	return Theme{
		Name:       "light",
		Background: "#FFFFFF",
		Grid:       "#F0F3FA",
		CandleUp:   "#089981",
		CandleDown: "#F23645",
		AxisText:   "#131722",
		AxisLine:   "#E0E3EB",
		Crosshair:  "#9598A1",
		Volume:     "#E0E3EB",
	}
}

// CandleColor returns the parsed body color for a bar direction.
func (t Theme) CandleColor(bullish bool) charts.Color {
	if bullish {
		return charts.ParseColor(t.CandleUp)
	}
	return charts.ParseColor(t.CandleDown)
}

// WickColor returns the wick color, falling back to the body color
// when no dedicated wick color is configured.
func (t Theme) WickColor(bullish bool) charts.Color {
	s := t.CandleWickUp
	if !bullish {
		s = t.CandleWickDown
	}
	if s == "" {
		return t.CandleColor(bullish)
	}
	return charts.ParseColor(s)
}

// BackgroundColor returns the parsed background.
func (t Theme) BackgroundColor() charts.Color { return charts.ParseColor(t.Background) }

// GridColor returns the parsed grid line color.
func (t Theme) GridColor() charts.Color { return charts.ParseColor(t.Grid) }

// Load reads a theme from YAML. Fields absent from the document keep
// the Dark defaults, so partial themes only override what they name.
func Load(r io.Reader) (Theme, error) {
	t := Dark()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		return Theme{}, fmt.Errorf("theme: decode: %w", err)
	}
	return t, nil
}

// LoadFile reads a theme from a YAML file.
func LoadFile(path string) (Theme, error) {
	f, err := os.Open(path)
	if err != nil {
		return Theme{}, fmt.Errorf("theme: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Save writes the theme as YAML.
func (t Theme) Save(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("theme: encode: %w", err)
	}
	return enc.Close()
}

// SaveFile writes the theme to a YAML file.
func (t Theme) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("theme: %w", err)
	}
	if err := t.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
