package trendline

import (
	"testing"

	"chartspec/internal/dataset"
	"chartspec/internal/facet"
	"chartspec/internal/ir"
	"chartspec/internal/options"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parent() Parent {
	return Parent{
		Name:           "line0",
		Dimension:      "datetime",
		Metric:         "value",
		Facets:         facet.Assignments{Color: facet.Field("series"), LineType: facet.Value("solid")},
		DimensionScale: "xTime",
		MetricScale:    "yLinear",
	}
}

func TestParseMethod(t *testing.T) {
	cases := []struct {
		in   string
		want Method
	}{
		{"average", Method{Kind: KindAggregate, Op: "mean"}},
		{"median", Method{Kind: KindAggregate, Op: "median"}},
		{"linear", Method{Kind: KindRegression, Op: "linear"}},
		{"quadratic", Method{Kind: KindRegression, Op: "quad"}},
		{"polynomial-3", Method{Kind: KindRegression, Op: "poly", Order: 3}},
		{"exponential", Method{Kind: KindRegression, Op: "exp"}},
		{"logarithmic", Method{Kind: KindRegression, Op: "log"}},
		{"power", Method{Kind: KindRegression, Op: "pow"}},
		{"movingAverage-7", Method{Kind: KindWindow, Op: "mean", Frame: 7}},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := ParseMethod(c.in)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}

	for _, bad := range []string{"", "spline", "polynomial-0", "movingAverage-x", "cubic-3"} {
		_, err := ParseMethod(bad)
		assert.ErrorIs(t, err, ErrUnknownMethod, bad)
	}
}

func TestTransforms(t *testing.T) {
	p := parent()

	t.Run("regression", func(t *testing.T) {
		tl := options.TrendlineOptions{Method: "polynomial-2", DimensionExtent: []float64{0, 10}}
		m, _ := ParseMethod(tl.Method)
		assert.Equal(t, []ir.Transform{ir.RegressionTransform{
			Type: "regression", Method: "poly", Order: 2,
			Groupby: []string{"series"},
			X:       "datetime", Y: "value",
			Extent: []float64{0, 10},
			As:     []string{"datetime", "trendlineValue"},
		}}, Transforms(p, tl, m))
	})

	t.Run("moving average", func(t *testing.T) {
		tl := options.TrendlineOptions{Method: "movingAverage-3", ExcludeDataKeys: []string{"excluded"}}
		m, _ := ParseMethod(tl.Method)
		ts := Transforms(p, tl, m)
		require.Len(t, ts, 3)
		assert.Equal(t, ir.Filter("!datum.excluded"), ts[0])
		w := ts[1].(ir.WindowTransform)
		assert.Equal(t, []int{-2, 0}, w.Frame)
		assert.Equal(t, []string{"trendlineValue"}, w.As)
		assert.Equal(t, "collect", ts[2].TransformType())
	})

	t.Run("average keeps every row", func(t *testing.T) {
		m, _ := ParseMethod("average")
		ts := Transforms(p, options.TrendlineOptions{}, m)
		assert.Equal(t, "joinaggregate", ts[0].TransformType())
	})
}

func TestAddDataSkipsUnknownMethods(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartspec.trendline")
	defer teardown()

	ts := []options.TrendlineOptions{
		{Method: "linear", Name: "line0Trendline0"},
		{Method: "spline", Name: "line0Trendline1"},
	}
	data := AddData(dataset.Initialize(nil, ""), parent(), ts)
	require.Len(t, data, 3)
	assert.Equal(t, "line0Trendline0_data", data[2].Name)
	assert.Equal(t, "filteredTable", data[2].Source)
	assert.NoError(t, dataset.CheckClosure(data))

	marks := Marks(parent(), ts)
	require.Len(t, marks, 1)
	assert.Equal(t, "line0Trendline0_group", marks[0].Name)
}

func TestMarks(t *testing.T) {
	p := parent()
	ts := []options.TrendlineOptions{{
		Method: "linear", Name: "line0Trendline0", LineType: "dashed", LineWidth: "M", Opacity: 1,
		DisplayOnHover: true,
		Tooltips:       []options.TooltipOptions{{}},
	}}
	marks := Marks(p, ts)
	require.Len(t, marks, 1)
	group := marks[0]
	assert.Equal(t, &ir.Facet{Name: "line0Trendline0_facet", Data: "line0Trendline0_data", Groupby: []string{"series"}}, group.From.Facet)

	line := group.Marks[0]
	assert.Equal(t, "line", line.Type)
	assert.Nil(t, line.Interactive)
	assert.Equal(t, ir.Production{{Scale: "yLinear", Field: "trendlineValue"}}, line.Encode.Enter["y"])
	assert.Equal(t, ir.Production{{Scale: "color", Field: "series"}}, line.Encode.Enter["stroke"])
	assert.Equal(t, ir.Production{{Value: 2.0}}, line.Encode.Enter["strokeWidth"])
	assert.Equal(t, ir.Production{
		{Test: "isValid(highlightedSeries) && highlightedSeries === datum.series", Value: 1.0},
		{Value: 0},
	}, line.Encode.Update["strokeOpacity"])

	signals := AddSignals(nil, p, ts)
	require.Len(t, signals, 1)
	assert.Equal(t, "highlightedSeries", signals[0].Name)
	assert.Equal(t, "@line0Trendline0:mouseover", signals[0].On[0].Events)
}
