package ir

// Spec is the declarative visualization document handed to the rendering engine.
// Field order mirrors the engine's top-level keys.
type Spec struct {
	Schema      string         `json:"$schema,omitempty"`
	Description string         `json:"description,omitempty"`
	Data        []Data         `json:"data,omitempty"`
	Signals     []Signal       `json:"signals,omitempty"`
	Scales      []Scale        `json:"scales,omitempty"`
	Marks       []Mark         `json:"marks,omitempty"`
	Legends     []Legend       `json:"legends,omitempty"`
	Axes        []Axis         `json:"axes,omitempty"`
	Title       *Title         `json:"title,omitempty"`
	Usermeta    map[string]any `json:"usermeta,omitempty"`
}

// Row is one record of literal data.
type Row = map[string]any

// Data is a named node of the data DAG. A node with Source set derives from an
// earlier node; a node without Source owns its Values.
type Data struct {
	Name      string      `json:"name"`
	Source    string      `json:"source,omitempty"`
	Values    []Row       `json:"values,omitempty"`
	Transform []Transform `json:"transform,omitempty"`
}

// IsSource reports whether the node derives from another node.
func (d Data) IsSource() bool { return d.Source != "" }

// Scale maps a data domain to a visual range.
type Scale struct {
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Domain       *Domain  `json:"domain,omitempty"`
	Range        any      `json:"range,omitempty"`
	Padding      *float64 `json:"padding,omitempty"`
	PaddingInner *float64 `json:"paddingInner,omitempty"`
	PaddingOuter *float64 `json:"paddingOuter,omitempty"`
	Nice         any      `json:"nice,omitempty"`
	Zero         *bool    `json:"zero,omitempty"`
}

// Domain references the data a scale is fitted to.
type Domain struct {
	Data   string   `json:"data,omitempty"`
	Field  string   `json:"field,omitempty"`
	Fields []string `json:"fields,omitempty"`
	Signal string   `json:"signal,omitempty"`
}

// IsEmpty reports whether no mark ever contributed a field to the domain.
func (d *Domain) IsEmpty() bool {
	if d == nil {
		return false
	}
	return d.Signal == "" && d.Field == "" && len(d.Fields) == 0
}

// SignalRef points a range or property at a signal.
type SignalRef struct {
	Signal string `json:"signal"`
}

// Signal is a reactive state cell.
type Signal struct {
	Name   string    `json:"name"`
	Value  any       `json:"value,omitempty"`
	Update string    `json:"update,omitempty"`
	On     []Handler `json:"on,omitempty"`
}

// Handler updates a signal when its event selector fires.
type Handler struct {
	Events string `json:"events"`
	Update string `json:"update"`
}

// Mark is a renderable primitive. Group marks own child marks and may carry
// their own scales, signals and facet.
type Mark struct {
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Type        string   `json:"type"`
	From        *From    `json:"from,omitempty"`
	Interactive *bool    `json:"interactive,omitempty"`
	ZIndex      int      `json:"zindex,omitempty"`
	Encode      *Encode  `json:"encode,omitempty"`
	Signals     []Signal `json:"signals,omitempty"`
	Scales      []Scale  `json:"scales,omitempty"`
	Marks       []Mark   `json:"marks,omitempty"`
}

// From selects the data a mark is drawn from.
type From struct {
	Data  string `json:"data,omitempty"`
	Facet *Facet `json:"facet,omitempty"`
}

// Facet partitions data into one group instance per distinct groupby value.
type Facet struct {
	Name    string   `json:"name"`
	Data    string   `json:"data"`
	Groupby []string `json:"groupby,omitempty"`
}

// Encode holds the encode sets of a mark.
type Encode struct {
	Enter  EncodeEntry `json:"enter,omitempty"`
	Update EncodeEntry `json:"update,omitempty"`
}

// EncodeEntry maps a visual channel to its production rule.
type EncodeEntry map[string]Production

// Production is an ordered rule list; the first entry whose test passes (or
// that has no test) wins.
type Production []ValueRef

// ValueRef is one entry of a production rule.
type ValueRef struct {
	Test   string  `json:"test,omitempty"`
	Value  any     `json:"value,omitempty"`
	Signal string  `json:"signal,omitempty"`
	Field  string  `json:"field,omitempty"`
	Scale  string  `json:"scale,omitempty"`
	Band   float64 `json:"band,omitempty"`
	Mult   float64 `json:"mult,omitempty"`
	Offset any     `json:"offset,omitempty"`
}

// GuideEncode customizes one part (labels, symbols, entries...) of a legend or axis.
type GuideEncode struct {
	Name        string      `json:"name,omitempty"`
	Interactive *bool       `json:"interactive,omitempty"`
	Enter       EncodeEntry `json:"enter,omitempty"`
	Update      EncodeEntry `json:"update,omitempty"`
}

// Legend describes a legend guide. Fill/Stroke/... name the scales it reads.
type Legend struct {
	Type       string                 `json:"type,omitempty"`
	Fill       string                 `json:"fill,omitempty"`
	Stroke     string                 `json:"stroke,omitempty"`
	Shape      string                 `json:"shape,omitempty"`
	Size       string                 `json:"size,omitempty"`
	Opacity    string                 `json:"opacity,omitempty"`
	StrokeDash string                 `json:"strokeDash,omitempty"`
	Title      string                 `json:"title,omitempty"`
	Orient     string                 `json:"orient,omitempty"`
	Direction  string                 `json:"direction,omitempty"`
	Columns    int                    `json:"columns,omitempty"`
	LabelLimit int                    `json:"labelLimit,omitempty"`
	SymbolType string                 `json:"symbolType,omitempty"`
	Encode     map[string]GuideEncode `json:"encode,omitempty"`
}

// Axis describes an axis guide.
type Axis struct {
	Scale      string                 `json:"scale"`
	Orient     string                 `json:"orient"`
	Title      string                 `json:"title,omitempty"`
	Grid       bool                   `json:"grid,omitempty"`
	Ticks      *bool                  `json:"ticks,omitempty"`
	Domain     *bool                  `json:"domain,omitempty"`
	Format     string                 `json:"format,omitempty"`
	FormatType string                 `json:"formatType,omitempty"`
	LabelAngle float64                `json:"labelAngle,omitempty"`
	LabelLimit int                    `json:"labelLimit,omitempty"`
	TickCount  any                    `json:"tickCount,omitempty"`
	ZIndex     int                    `json:"zindex,omitempty"`
	Encode     map[string]GuideEncode `json:"encode,omitempty"`
}

// Title is the chart title.
type Title struct {
	Text   string `json:"text"`
	Anchor string `json:"anchor,omitempty"`
	Frame  string `json:"frame,omitempty"`
}

// Bool returns a pointer to b, for optional flags.
func Bool(b bool) *bool { return &b }

// Float returns a pointer to f, for optional numeric properties.
func Float(f float64) *float64 { return &f }
