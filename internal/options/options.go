// Package options holds the typed option records a chart is declared with and
// the default cascades that turn partial user input into fully specified records.
package options

import (
	"errors"
	"fmt"

	"chartspec/internal/ir"
	"chartspec/internal/names"
	"chartspec/internal/theme"

	"gopkg.in/yaml.v3"
)

// ErrUnknownMarkType marks a declared mark type that no builder handles.
var ErrUnknownMarkType = errors.New("unknown mark type")

// MarkType discriminates the mark list.
type MarkType string

const (
	TypeBar     MarkType = "bar"
	TypeLine    MarkType = "line"
	TypeArea    MarkType = "area"
	TypeScatter MarkType = "scatter"
	TypeDonut   MarkType = "donut"
	TypeCombo   MarkType = "combo"
	TypeLegend  MarkType = "legend"
	TypeAxis    MarkType = "axis"
)

// Mark is one declared chart child.
type Mark interface {
	MarkType() MarkType
}

// UnknownMark keeps the declared type of a mark nobody can build, so that it
// can be reported and skipped.
type UnknownMark struct {
	Type MarkType `yaml:"markType"`
}

func (m UnknownMark) MarkType() MarkType { return m.Type }

// MarkList decodes a list of marks tagged by markType.
type MarkList []Mark

func (l *MarkList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("marks: expected a list, got yaml kind %d", node.Kind)
	}
	out := make(MarkList, 0, len(node.Content))
	for _, item := range node.Content {
		var tag struct {
			MarkType MarkType `yaml:"markType"`
		}
		if err := item.Decode(&tag); err != nil {
			return err
		}
		m, err := decodeMark(tag.MarkType, item)
		if err != nil {
			return fmt.Errorf("marks[%d] (%s): %w", len(out), tag.MarkType, err)
		}
		out = append(out, m)
	}
	*l = out
	return nil
}

func decodeMark(t MarkType, node *yaml.Node) (Mark, error) {
	var err error
	switch t {
	case TypeBar:
		var m BarOptions
		err = node.Decode(&m)
		return m, err
	case TypeLine:
		var m LineOptions
		err = node.Decode(&m)
		return m, err
	case TypeArea:
		var m AreaOptions
		err = node.Decode(&m)
		return m, err
	case TypeScatter:
		var m ScatterOptions
		err = node.Decode(&m)
		return m, err
	case TypeDonut:
		var m DonutOptions
		err = node.Decode(&m)
		return m, err
	case TypeCombo:
		var m ComboOptions
		err = node.Decode(&m)
		return m, err
	case TypeLegend:
		var m LegendOptions
		err = node.Decode(&m)
		return m, err
	case TypeAxis:
		var m AxisOptions
		err = node.Decode(&m)
		return m, err
	}
	return UnknownMark{Type: t}, nil
}

// ColorFamilies is a palette: each family holds one or more shades. It decodes
// from a palette name, a flat color list, or a list of shade lists.
type ColorFamilies [][]string

func (c *ColorFamilies) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		p, ok := theme.Palette(node.Value)
		if !ok {
			return fmt.Errorf("colors: unknown palette %q", node.Value)
		}
		*c = Families(p)
		return nil
	case yaml.SequenceNode:
		var flat []string
		if err := node.Decode(&flat); err == nil {
			*c = Families(flat)
			return nil
		}
		var nested [][]string
		if err := node.Decode(&nested); err != nil {
			return err
		}
		*c = nested
		return nil
	}
	return fmt.Errorf("colors: unsupported yaml node kind %d", node.Kind)
}

// Families turns a flat palette into single-shade families.
func Families(colors []string) ColorFamilies {
	out := make(ColorFamilies, len(colors))
	for i, c := range colors {
		out[i] = []string{c}
	}
	return out
}

// Primary returns the first shade of every family.
func (c ColorFamilies) Primary() []string {
	out := make([]string, 0, len(c))
	for _, f := range c {
		if len(f) > 0 {
			out = append(out, f[0])
		}
	}
	return out
}

// ChartOptions are the chart-level options plus the ordered mark list.
type ChartOptions struct {
	Name              string        `yaml:"name"`
	Description       string        `yaml:"description"`
	Title             string        `yaml:"title"`
	Colors            ColorFamilies `yaml:"colors"`
	ColorScheme       theme.Scheme  `yaml:"colorScheme"`
	LineTypes         []string      `yaml:"lineTypes"`
	Opacities         []float64     `yaml:"opacities"`
	SymbolShapes      []string      `yaml:"symbolShapes"`
	BackgroundColor   string        `yaml:"backgroundColor"`
	Locale            string        `yaml:"locale"`
	IDKey             string        `yaml:"idKey"`
	HiddenSeries      []string      `yaml:"hiddenSeries"`
	HighlightedSeries string        `yaml:"highlightedSeries"`
	Values            []ir.Row      `yaml:"data"`
	Marks             MarkList      `yaml:"marks"`
	Strict            bool          `yaml:"strict"`
}

// WithDefaults fills chart-level defaults. It is idempotent.
func (c ChartOptions) WithDefaults() ChartOptions {
	if len(c.Colors) == 0 {
		c.Colors = Families(theme.Categorical12)
	}
	if c.ColorScheme == "" {
		c.ColorScheme = theme.Light
	}
	if len(c.LineTypes) == 0 {
		c.LineTypes = append([]string{}, theme.LineTypes...)
	}
	if len(c.Opacities) == 0 {
		c.Opacities = []float64{1}
	}
	if len(c.SymbolShapes) == 0 {
		c.SymbolShapes = []string{"rounded-square"}
	}
	if c.BackgroundColor == "" {
		c.BackgroundColor = "transparent"
	}
	if c.IDKey == "" {
		c.IDKey = names.MarkID
	}
	c.Locale = theme.Locale(c.Locale)
	return c
}

// Decode parses a chart option document.
func Decode(b []byte) (ChartOptions, error) {
	var c ChartOptions
	if err := yaml.Unmarshal(b, &c); err != nil {
		return ChartOptions{}, fmt.Errorf("decode chart options: %w", err)
	}
	return c, nil
}

// Orientation of a mark's dimension axis.
type Orientation string

const (
	Vertical   Orientation = "vertical"
	Horizontal Orientation = "horizontal"
)
