package render

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Style controls the appearance of the rendered daily log grid. It maps
// directly to an optional YAML file; values not set there keep the defaults.
type Style struct {
	Font struct {
		Family string `yaml:"family"`
		Size   int    `yaml:"size"`
	} `yaml:"font"`
	Colors struct {
		Background string `yaml:"background"`
		Grid       string `yaml:"grid"`
		Line       string `yaml:"line"`
		Text       string `yaml:"text"`
	} `yaml:"colors"`
	Layout struct {
		Width        float64 `yaml:"width"`
		MarginTop    float64 `yaml:"margin_top"`
		MarginBottom float64 `yaml:"margin_bottom"`
		MarginLeft   float64 `yaml:"margin_left"`
		MarginRight  float64 `yaml:"margin_right"`
		RowHeight    float64 `yaml:"row_height"`
		LineWidth    float64 `yaml:"line_width"`
	} `yaml:"layout"`
	// FilledBlocks switches segment rendering from the paper-log center-line
	// style to filled row blocks.
	FilledBlocks bool `yaml:"filled_blocks"`
}

// DefaultStyle returns the stock paper-log appearance.
func DefaultStyle() Style {
	var s Style
	s.Font.Family = "Helvetica, Arial, sans-serif"
	s.Font.Size = 12
	s.Colors.Background = "#ffffff"
	s.Colors.Grid = "#bbbbbb"
	s.Colors.Line = "#1a1a1a"
	s.Colors.Text = "#333333"
	s.Layout.Width = 1200
	s.Layout.MarginTop = 40
	s.Layout.MarginBottom = 30
	s.Layout.MarginLeft = 110
	s.Layout.MarginRight = 80
	s.Layout.RowHeight = 36
	s.Layout.LineWidth = 2
	return s
}

// LoadStyle reads a YAML style file over the defaults. A missing path is not
// an error; the defaults are returned unchanged.
func LoadStyle(path string) (Style, error) {
	style := DefaultStyle()
	if path == "" {
		return style, nil
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return style, nil
	}
	if err != nil {
		return Style{}, fmt.Errorf("load render style: read %q: %w", path, err)
	}

	if err := yaml.Unmarshal(raw, &style); err != nil {
		return Style{}, fmt.Errorf("load render style: parse %q: %w", path, err)
	}
	return style, nil
}
