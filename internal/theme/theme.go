// Package theme holds the lookup tables the compiler treats as external
// collaborators: color tokens, line dashes, widths, symbol sizes, number formats.
package theme

import (
	"math"
	"strings"

	"golang.org/x/text/language"
)

// Scheme is the chart color scheme.
type Scheme string

const (
	Light Scheme = "light"
	Dark  Scheme = "dark"
)

var lightColors = map[string]string{
	"categorical-100":  "rgb(15, 181, 174)",
	"categorical-200":  "rgb(64, 70, 202)",
	"categorical-300":  "rgb(246, 133, 17)",
	"categorical-400":  "rgb(222, 61, 130)",
	"categorical-500":  "rgb(126, 132, 250)",
	"categorical-600":  "rgb(114, 224, 106)",
	"categorical-700":  "rgb(20, 122, 243)",
	"categorical-800":  "rgb(115, 38, 211)",
	"categorical-900":  "rgb(232, 198, 0)",
	"categorical-1000": "rgb(203, 93, 0)",
	"categorical-1100": "rgb(0, 143, 93)",
	"categorical-1200": "rgb(188, 233, 49)",
	"categorical-1300": "rgb(51, 128, 255)",
	"categorical-1400": "rgb(173, 54, 194)",
	"categorical-1500": "rgb(233, 92, 54)",
	"categorical-1600": "rgb(17, 181, 110)",
	"gray-50":          "rgb(255, 255, 255)",
	"gray-75":          "rgb(253, 253, 253)",
	"gray-100":         "rgb(248, 248, 248)",
	"gray-200":         "rgb(230, 230, 230)",
	"gray-300":         "rgb(213, 213, 213)",
	"gray-400":         "rgb(177, 177, 177)",
	"gray-500":         "rgb(144, 144, 144)",
	"gray-600":         "rgb(109, 109, 109)",
	"gray-700":         "rgb(70, 70, 70)",
	"gray-800":         "rgb(34, 34, 34)",
	"gray-900":         "rgb(0, 0, 0)",
	"blue-400":         "rgb(120, 187, 250)",
	"blue-900":         "rgb(2, 101, 220)",
	"static-blue":      "rgb(20, 115, 230)",
	"transparent":      "transparent",
}

var darkColors = map[string]string{
	"categorical-100":  "rgb(15, 181, 174)",
	"categorical-200":  "rgb(88, 94, 232)",
	"categorical-300":  "rgb(246, 133, 17)",
	"categorical-400":  "rgb(222, 61, 130)",
	"categorical-500":  "rgb(126, 132, 250)",
	"categorical-600":  "rgb(114, 224, 106)",
	"categorical-700":  "rgb(20, 122, 243)",
	"categorical-800":  "rgb(140, 70, 230)",
	"categorical-900":  "rgb(232, 198, 0)",
	"categorical-1000": "rgb(203, 93, 0)",
	"categorical-1100": "rgb(0, 143, 93)",
	"categorical-1200": "rgb(188, 233, 49)",
	"categorical-1300": "rgb(51, 128, 255)",
	"categorical-1400": "rgb(173, 54, 194)",
	"categorical-1500": "rgb(233, 92, 54)",
	"categorical-1600": "rgb(17, 181, 110)",
	"gray-50":          "rgb(8, 8, 8)",
	"gray-75":          "rgb(26, 26, 26)",
	"gray-100":         "rgb(29, 29, 29)",
	"gray-200":         "rgb(48, 48, 48)",
	"gray-300":         "rgb(75, 75, 75)",
	"gray-400":         "rgb(106, 106, 106)",
	"gray-500":         "rgb(141, 141, 141)",
	"gray-600":         "rgb(176, 176, 176)",
	"gray-700":         "rgb(208, 208, 208)",
	"gray-800":         "rgb(235, 235, 235)",
	"gray-900":         "rgb(255, 255, 255)",
	"blue-400":         "rgb(2, 101, 220)",
	"blue-900":         "rgb(120, 187, 250)",
	"static-blue":      "rgb(20, 115, 230)",
	"transparent":      "transparent",
}

// ColorNameToRGB resolves a color token for the scheme. Literal colors and
// unknown tokens are returned unchanged.
func ColorNameToRGB(name string, scheme Scheme) string {
	table := lightColors
	if scheme == Dark {
		table = darkColors
	}
	if c, ok := table[name]; ok {
		return c
	}
	return name
}

// Categorical12 is the default categorical palette.
var Categorical12 = []string{
	"categorical-100", "categorical-200", "categorical-300", "categorical-400",
	"categorical-500", "categorical-600", "categorical-700", "categorical-800",
	"categorical-900", "categorical-1000", "categorical-1100", "categorical-1200",
}

var palettes = map[string][]string{
	"categorical12": Categorical12,
	"categorical16": append(append([]string{}, Categorical12...),
		"categorical-1300", "categorical-1400", "categorical-1500", "categorical-1600"),
}

// Palette returns the named palette's color tokens.
func Palette(name string) ([]string, bool) {
	p, ok := palettes[name]
	return p, ok
}

// ResolveColors resolves every color token of a palette.
func ResolveColors(colors []string, scheme Scheme) []string {
	out := make([]string, len(colors))
	for i, c := range colors {
		out[i] = ColorNameToRGB(c, scheme)
	}
	return out
}

// TwoDimensionalColors wraps each color family into its own row; a flat
// palette yields one shade per family.
func TwoDimensionalColors(families [][]string, scheme Scheme) [][]string {
	out := make([][]string, len(families))
	for i, f := range families {
		out[i] = ResolveColors(f, scheme)
	}
	return out
}

// Line types, in default cycling order.
var LineTypes = []string{"solid", "dashed", "dotted", "dotDash", "longDash", "twoDash"}

var lineDashes = map[string][]float64{
	"solid":     {},
	"dashed":    {7, 4},
	"dotted":    {2, 3},
	"dotDash":   {2, 3, 7, 4},
	"shortDash": {3, 4},
	"longDash":  {11, 4},
	"twoDash":   {5, 2, 11, 2},
}

// LineTypeDash returns the stroke dash array of a line type. Unknown names are
// treated as solid.
func LineTypeDash(name string) []float64 {
	if d, ok := lineDashes[name]; ok {
		return append([]float64{}, d...)
	}
	return []float64{}
}

var lineWidths = map[string]float64{"XS": 1, "S": 1.5, "M": 2, "L": 3, "XL": 4}

// LineWidthPixels converts a named or numeric line width to pixels.
func LineWidthPixels(w any) float64 {
	switch v := w.(type) {
	case string:
		if px, ok := lineWidths[v]; ok {
			return px
		}
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

var symbolWidths = map[string]float64{"XS": 6, "S": 8, "M": 10, "L": 12, "XL": 16}

// SymbolWidth converts a named or numeric symbol width to pixels.
func SymbolWidth(w any) float64 {
	switch v := w.(type) {
	case string:
		return symbolWidths[v]
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

// SymbolSizeArea converts a named or numeric symbol width to the engine's area units.
func SymbolSizeArea(w any) float64 {
	return math.Pow(SymbolWidth(w), 2)
}

var numberFormats = map[string]string{
	"currency":       "$,.2f",
	"shortCurrency":  "$.3~s",
	"shortNumber":    ".3~s",
	"standardNumber": ",",
	"percentage":     "~%",
}

// NumberFormatSpecifier maps a named number format to a d3-format specifier.
// Anything else is assumed to already be a specifier.
func NumberFormatSpecifier(format string) string {
	if s, ok := numberFormats[format]; ok {
		return s
	}
	return format
}

// Locale canonicalizes a BCP-47 tag; invalid or empty tags fall back to en-US.
func Locale(tag string) string {
	if strings.TrimSpace(tag) == "" {
		return "en-US"
	}
	t, err := language.Parse(tag)
	if err != nil {
		return "en-US"
	}
	return t.String()
}
