package dataset

import (
	"fmt"

	"chartspec/internal/ir"
	"chartspec/internal/names"
)

// stackIDSeparator joins group fields into a stack id.
const stackIDSeparator = ","

// timeUnits lists the truncation units for each granularity, coarsest first.
var timeUnits = map[string][]string{
	"year":    {"year"},
	"quarter": {"year", "quarter"},
	"month":   {"year", "month"},
	"week":    {"year", "week"},
	"day":     {"year", "month", "date"},
	"hour":    {"year", "month", "date", "hours"},
	"minute":  {"year", "month", "date", "hours", "minutes"},
	"second":  {"year", "month", "date", "hours", "minutes", "seconds"},
}

// TimeUnits returns the units a granularity truncates to; unknown
// granularities fall back to day.
func TimeUnits(granularity string) []string {
	if u, ok := timeUnits[granularity]; ok {
		return append([]string(nil), u...)
	}
	return append([]string(nil), timeUnits["day"]...)
}

// TimeTransforms coerce dimension to a date and bucket it into dimension
// (bucket start) and dimension1 (bucket end).
func TimeTransforms(dimension, granularity string) []ir.Transform {
	return []ir.Transform{
		ir.Formula(fmt.Sprintf("toDate(datum[\"%s\"])", dimension), dimension),
		ir.TimeUnit(dimension, TimeUnits(granularity), []string{dimension, dimension + "1"}),
	}
}

// AddTimeTransform appends the time bucketing transforms to table unless a
// timeunit for the same field is already present.
func AddTimeTransform(data []ir.Data, dimension, granularity string) []ir.Data {
	exists := HasTransform(data, names.Table, func(t ir.Transform) bool {
		tu, ok := t.(ir.TimeUnitTransform)
		return ok && tu.Field == dimension
	})
	if exists {
		return data
	}
	out, _ := Append(data, names.Table, TimeTransforms(dimension, granularity)...)
	return out
}

// StackID is the formula that tags a row with the id of the stack it belongs to.
func StackID(groupby []string) ir.FormulaTransform {
	return ir.Formula(names.JoinFields(groupby, stackIDSeparator), names.StackID)
}

// Stack returns the stack transform over metric followed by the stack id
// formula. order, when set, sorts the segments within a stack.
func Stack(groupby []string, metric, order string) []ir.Transform {
	st := ir.StackTransform{
		Type:    "stack",
		Groupby: append([]string(nil), groupby...),
		Field:   metric,
		As:      []string{metric + "0", metric + "1"},
	}
	if order != "" {
		st.Sort = &ir.Compare{Field: order}
	}
	return []ir.Transform{st, StackID(groupby)}
}

// StacksNode aggregates the extent of each stack so that segments can find out
// whether they sit at the end of their stack: data('{mark}_stacks').
func StacksNode(markName string, groupby []string, metric string) ir.Data {
	end := metric + "1"
	return ir.Data{
		Name:   names.Of(markName, names.Stacks),
		Source: names.FilteredTable,
		Transform: []ir.Transform{
			ir.AggregateTransform{
				Type:    "aggregate",
				Groupby: append([]string(nil), groupby...),
				Fields:  []string{end, end},
				Ops:     []string{"min", "max"},
			},
			StackID(groupby),
		},
	}
}

// DodgeGroup tags each row with the sub-band it is dodged into.
func DodgeGroup(markName string, fields []string) ir.FormulaTransform {
	return ir.Formula(names.JoinFields(fields, stackIDSeparator), names.Of(markName, names.DodgeGroup))
}

// GroupIDExpr computes the key rows are highlighted or selected together by.
// item groups by row id, dimension by the dimension value, series by the
// series field and keys by the listed fields.
func GroupIDExpr(mode string, keys []string, idKey, dimension, series string) string {
	switch mode {
	case "dimension":
		return "datum." + dimension
	case "series":
		return "datum." + series
	case "keys":
		return names.JoinFields(keys, " | ")
	}
	return "datum." + idKey
}

// AddGroupID appends the formula computing {mark}{suffix} to filteredTable.
// It is added once per output field, however many interactions ask for it.
func AddGroupID(data []ir.Data, markName, suffix, expr string) []ir.Data {
	return AppendOnce(data, names.FilteredTable, ir.Formula(expr, names.Of(markName, suffix)))
}

// SelectedNode filters filteredTable down to the currently selected rows:
// the selected item, or the rows of the selected group.
func SelectedNode(markName, idKey string, byGroup bool) ir.Data {
	expr := fmt.Sprintf("%s === datum.%s", names.SelectedItem, idKey)
	if byGroup {
		expr = fmt.Sprintf("%s === datum.%s", names.SelectedGroup, names.Of(markName, names.SelectedGroupID))
	}
	return ir.Data{
		Name:      names.Of(markName, names.SelectedData),
		Source:    names.FilteredTable,
		Transform: []ir.Transform{ir.Filter(expr)},
	}
}

// HiddenSeriesFilter drops rows of series the user toggled off. A series
// spanning several fields is identified by their values joined with " | ".
func HiddenSeriesFilter(fields ...string) ir.FilterTransform {
	return ir.Filter(fmt.Sprintf("indexof(%s, %s) === -1", names.HiddenSeries, names.JoinFields(fields, " | ")))
}

// SeriesMetricNodes split filteredTable for a dual metric axis: the last
// series of the color domain goes to the secondary axis, every other one to
// the primary axis.
func SeriesMetricNodes(markName, colorField string) []ir.Data {
	return []ir.Data{
		{
			Name:      names.Of(markName, names.PrimaryMetric),
			Source:    names.FilteredTable,
			Transform: []ir.Transform{ir.Filter(fmt.Sprintf("datum.%s !== %s", colorField, names.LastSeries))},
		},
		{
			Name:      names.Of(markName, names.SecondaryMetric),
			Source:    names.FilteredTable,
			Transform: []ir.Transform{ir.Filter(fmt.Sprintf("datum.%s === %s", colorField, names.LastSeries))},
		},
	}
}
