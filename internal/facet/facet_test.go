package facet

import (
	"encoding/json"
	"testing"

	"chartspec/internal/ir"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRefKinds(t *testing.T) {
	assert.Equal(t, KindNone, Ref{}.Kind())
	assert.Equal(t, KindValue, Value("solid").Kind())
	assert.Equal(t, KindField, Field("series").Kind())
	assert.Equal(t, KindDual, Dual("series", "sub").Kind())

	assert.Nil(t, Value(1.0).Fields())
	assert.Equal(t, []string{"series", "sub"}, Dual("series", "sub").Fields())

	assert.Equal(t, Field("a"), Ref{}.Or(Field("a")))
	assert.Equal(t, Value(0.5), Value(0.5).Or(Field("a")))
}

func TestRefDecoding(t *testing.T) {
	var doc struct {
		A Ref `yaml:"a"`
		B Ref `yaml:"b"`
		C Ref `yaml:"c"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("a: series\nb: [series, sub]\nc: {value: 0.5}\n"), &doc))
	assert.Equal(t, Field("series"), doc.A)
	assert.Equal(t, Dual("series", "sub"), doc.B)
	assert.Equal(t, Value(0.5), doc.C)

	var r Ref
	assert.Error(t, yaml.Unmarshal([]byte("[a, b, c]"), &r))

	require.NoError(t, json.Unmarshal([]byte(`["x","y"]`), &r))
	assert.Equal(t, Dual("x", "y"), r)
	require.NoError(t, json.Unmarshal([]byte(`"x"`), &r))
	assert.Equal(t, Field("x"), r)
	require.NoError(t, json.Unmarshal([]byte(`{"value":"dashed"}`), &r))
	assert.Equal(t, Value("dashed"), r)
}

func TestResolve(t *testing.T) {
	res := Resolve(Assignments{
		Color:    Dual("series", "sub"),
		LineType: Field("series"),
		Opacity:  Value(1.0),
		Size:     Field("weight"),
	})
	assert.Equal(t, []string{"series", "weight"}, res.PrimaryFields)
	assert.Equal(t, []string{"sub"}, res.SecondaryFields)

	assert.True(t, IsDodgedAndStacked(Assignments{Opacity: Dual("a", "b")}))
	assert.False(t, IsDodgedAndStacked(Assignments{Color: Field("a")}))
}

func TestFromScales(t *testing.T) {
	scales := []ir.Scale{
		{Name: "color", Type: "ordinal", Domain: &ir.Domain{Data: "table", Fields: []string{"series"}}},
		{Name: "lineType", Type: "ordinal", Domain: &ir.Domain{Data: "table"}},
		{Name: "symbolSize", Type: "linear", Domain: &ir.Domain{Data: "table", Fields: []string{"weight"}}},
		{Name: "xBand", Type: "band", Domain: &ir.Domain{Data: "table", Fields: []string{"category"}}},
		{Name: "opacity", Type: "point"},
	}
	ordinal, continuous := FromScales(scales)
	assert.Equal(t, []Facet{{Type: TypeColor, Field: "series"}}, ordinal)
	assert.Equal(t, []Facet{{Type: TypeSymbolSize, Field: "weight"}}, continuous)

	assert.True(t, IsFacetScale("secondaryColor"))
	assert.False(t, IsFacetScale("xBand"))
	assert.Equal(t, []string{"a", "b"}, Fields([]Facet{{Field: "a"}, {Field: "b"}, {Field: "a"}}))
}
