package ir

// Transform is one step of a data node's pipeline. Every concrete transform
// carries its engine type tag in Type so that it serializes as-is.
type Transform interface {
	TransformType() string
}

// Compare is a sort criterion.
type Compare struct {
	Field string `json:"field"`
	Order string `json:"order,omitempty"`
}

type IdentifierTransform struct {
	Type string `json:"type"`
	As   string `json:"as"`
}

func (t IdentifierTransform) TransformType() string { return t.Type }

// Identifier tags each row with a unique id stored in field as.
func Identifier(as string) IdentifierTransform {
	return IdentifierTransform{Type: "identifier", As: as}
}

type FormulaTransform struct {
	Type string `json:"type"`
	Expr string `json:"expr"`
	As   string `json:"as"`
}

func (t FormulaTransform) TransformType() string { return t.Type }

func Formula(expr, as string) FormulaTransform {
	return FormulaTransform{Type: "formula", Expr: expr, As: as}
}

type TimeUnitTransform struct {
	Type  string   `json:"type"`
	Field string   `json:"field"`
	Units []string `json:"units"`
	As    []string `json:"as"`
}

func (t TimeUnitTransform) TransformType() string { return t.Type }

func TimeUnit(field string, units []string, as []string) TimeUnitTransform {
	return TimeUnitTransform{Type: "timeunit", Field: field, Units: units, As: as}
}

type StackTransform struct {
	Type    string   `json:"type"`
	Groupby []string `json:"groupby"`
	Field   string   `json:"field"`
	Sort    *Compare `json:"sort,omitempty"`
	Offset  string   `json:"offset,omitempty"`
	As      []string `json:"as"`
}

func (t StackTransform) TransformType() string { return t.Type }

type AggregateTransform struct {
	Type    string   `json:"type"`
	Groupby []string `json:"groupby,omitempty"`
	Fields  []string `json:"fields,omitempty"`
	Ops     []string `json:"ops,omitempty"`
	As      []string `json:"as,omitempty"`
}

func (t AggregateTransform) TransformType() string { return t.Type }

// JoinAggregateTransform has the aggregate shape but keeps every input row.
type JoinAggregateTransform struct {
	Type    string   `json:"type"`
	Groupby []string `json:"groupby,omitempty"`
	Fields  []string `json:"fields"`
	Ops     []string `json:"ops"`
	As      []string `json:"as,omitempty"`
}

func (t JoinAggregateTransform) TransformType() string { return t.Type }

type FilterTransform struct {
	Type string `json:"type"`
	Expr string `json:"expr"`
}

func (t FilterTransform) TransformType() string { return t.Type }

func Filter(expr string) FilterTransform {
	return FilterTransform{Type: "filter", Expr: expr}
}

type WindowTransform struct {
	Type    string   `json:"type"`
	Groupby []string `json:"groupby,omitempty"`
	Sort    *Compare `json:"sort,omitempty"`
	Ops     []string `json:"ops"`
	Fields  []string `json:"fields"`
	As      []string `json:"as"`
	Frame   []int    `json:"frame,omitempty"`
}

func (t WindowTransform) TransformType() string { return t.Type }

type RegressionTransform struct {
	Type    string    `json:"type"`
	Method  string    `json:"method"`
	Order   int       `json:"order,omitempty"`
	Groupby []string  `json:"groupby,omitempty"`
	X       string    `json:"x"`
	Y       string    `json:"y"`
	Extent  []float64 `json:"extent,omitempty"`
	As      []string  `json:"as"`
}

func (t RegressionTransform) TransformType() string { return t.Type }

type PieTransform struct {
	Type       string  `json:"type"`
	Field      string  `json:"field"`
	StartAngle float64 `json:"startAngle,omitempty"`
	EndAngle   float64 `json:"endAngle,omitempty"`
	Sort       bool    `json:"sort,omitempty"`
}

func (t PieTransform) TransformType() string { return t.Type }

type ExtentTransform struct {
	Type   string `json:"type"`
	Field  string `json:"field"`
	Signal string `json:"signal"`
}

func (t ExtentTransform) TransformType() string { return t.Type }

type CollectTransform struct {
	Type string   `json:"type"`
	Sort *Compare `json:"sort"`
}

func (t CollectTransform) TransformType() string { return t.Type }
