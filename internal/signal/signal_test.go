package signal

import (
	"testing"

	"chartspec/internal/ir"
	"chartspec/internal/names"
	"chartspec/internal/options"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertKeepsExisting(t *testing.T) {
	signals, i := Upsert(nil, names.PaddingInner, func() ir.Signal { return Value("", 0.4) })
	require.Equal(t, 0, i)
	assert.Equal(t, []ir.Signal{{Name: names.PaddingInner, Value: 0.4}}, signals)

	again, j := Upsert(signals, names.PaddingInner, func() ir.Signal { return Value("", 0.9) })
	assert.Equal(t, 0, j)
	assert.Equal(t, signals, again)
}

func TestHoverAppendsNotReplaces(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartspec.signal")
	defer teardown()

	h := Hover{Target: "bar0", Depth: 1, IDKey: names.MarkID}
	signals := AddHover(nil, "bar0", h)
	before := signals
	signals = AddHover(signals, "bar0", Hover{Target: "bar0_background", Depth: 2, IDKey: names.MarkID})

	require.Len(t, signals, 1)
	assert.Equal(t, "bar0_hoveredItem", signals[0].Name)
	assert.Len(t, signals[0].On, 4)
	assert.Len(t, before[0].On, 2, "input list must not change")
	assert.Equal(t, []ir.Handler{
		{Events: "@bar0:mouseover", Update: "datum.rscMarkId"},
		{Events: "@bar0:mouseout", Update: "null"},
		{Events: "@bar0_background:mouseover", Update: "datum.datum.rscMarkId"},
		{Events: "@bar0_background:mouseout", Update: "null"},
	}, signals[0].On)
}

func TestHoverExcludeKeys(t *testing.T) {
	h := Hover{Target: "line0_point", Depth: 2, IDKey: "id", ExcludeKeys: []string{"excludeFromTooltip", "isTrendline"}}
	assert.Equal(t, "(datum.datum.excludeFromTooltip || datum.datum.isTrendline) ? null : datum.datum.id", h.IDExpr())
}

func TestHighlightEvents(t *testing.T) {
	signals := AddHighlightedSeriesEvents(nil, "line0_voronoi", 2, "series")
	signals = AddHighlightedGroupEvents(signals, "bar0")
	signals = AddHighlightedItemEvents(signals, Hover{Target: "bar0", Depth: 1, IDKey: names.MarkID})

	require.Len(t, signals, 3)
	assert.Equal(t, "datum.datum.series", signals[0].On[0].Update)
	assert.Equal(t, "datum.bar0_highlightGroupId", signals[1].On[0].Update)
	assert.Equal(t, names.HighlightedItem, signals[2].Name)
}

func TestDualAxisSeries(t *testing.T) {
	signals := AddDualAxisSeries(nil)
	signals = AddDualAxisSeries(signals)
	assert.Equal(t, []ir.Signal{
		{Name: "firstRscSeriesId", Update: "domain('color')[0]"},
		{Name: "lastRscSeriesId", Update: "peek(domain('color'))"},
	}, signals)
}

func TestDefaults(t *testing.T) {
	signals := Defaults(options.ChartOptions{HighlightedSeries: "A", HiddenSeries: []string{"B"}})
	byName := map[string]ir.Signal{}
	for _, s := range signals {
		byName[s.Name] = s
	}
	assert.Equal(t, "transparent", byName[names.BackgroundColor].Value)
	assert.Equal(t, "A", byName[names.HighlightedSeries].Value)
	assert.Equal(t, []string{"B"}, byName[names.HiddenSeries].Value)
	assert.Equal(t, []float64{7, 4}, byName[names.LineTypes].Value.([][]float64)[1])
	colors := byName[names.Colors].Value.([][]string)
	assert.Len(t, colors, 12)
	assert.Equal(t, "rgb(15, 181, 174)", colors[0][0])
}
