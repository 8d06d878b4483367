package graph

import (
	"fmt"
	"regexp"
	"strings"

	"chartspec/internal/ir"
)

var (
	exprRef  = regexp.MustCompile(`\b(scale|domain|bandwidth|data)\('([^']+)'`)
	eventRef = regexp.MustCompile(`@([A-Za-z0-9_]+):`)
)

// FromSpec converts a compiled spec into its reference graph, links it and
// returns it.
func FromSpec(spec ir.Spec) *Graph {
	g := NewGraph()
	b := builder{g: g}

	// 1. Data DAG
	for i, d := range spec.Data {
		id := g.AddNode(KindData, d.Name, i)
		if d.Source != "" {
			g.Refer(id, KindData, d.Source, RelationSource)
		}
		for _, t := range d.Transform {
			raw, err := ir.Marshal(t, false)
			if err == nil {
				b.expressions(id, string(raw))
			}
		}
	}

	// 2. Scales and signals
	b.scales(spec.Scales)
	b.signals(spec.Signals)

	// 3. Mark tree
	b.marks("", spec.Marks)

	// 4. Guides
	for i, l := range spec.Legends {
		id := g.AddNode(KindLegend, fmt.Sprintf("legend#%d", i), i)
		for _, s := range []string{l.Fill, l.Stroke, l.Shape, l.Size, l.Opacity, l.StrokeDash} {
			if s != "" {
				g.Refer(id, KindScale, s, RelationGuide)
			}
		}
		b.guideEncode(id, l.Encode)
	}
	for i, a := range spec.Axes {
		id := g.AddNode(KindAxis, fmt.Sprintf("axis#%d", i), i)
		g.Refer(id, KindScale, a.Scale, RelationGuide)
		b.guideEncode(id, a.Encode)
	}

	g.LinkRelations()
	return g
}

type builder struct {
	g     *Graph
	count int
}

func (b *builder) scales(scales []ir.Scale) {
	for i, s := range scales {
		id := b.g.AddNode(KindScale, s.Name, i)
		if s.Domain != nil {
			if s.Domain.Data != "" {
				b.g.Refer(id, KindData, s.Domain.Data, RelationDomain)
			}
			b.expressions(id, s.Domain.Signal)
		}
	}
}

func (b *builder) signals(signals []ir.Signal) {
	for i, s := range signals {
		id := b.g.AddNode(KindSignal, s.Name, i)
		b.expressions(id, s.Update)
		for _, h := range s.On {
			for _, m := range eventRef.FindAllStringSubmatch(h.Events, -1) {
				b.g.Refer(id, KindMark, m[1], RelationEvent)
			}
			b.expressions(id, h.Update)
		}
	}
}

func (b *builder) marks(parent string, marks []ir.Mark) {
	for _, m := range marks {
		b.count++
		name := m.Name
		if name == "" {
			name = fmt.Sprintf("%s#%d", m.Type, b.count)
		}
		id := b.g.AddNode(KindMark, name, b.count)
		if parent != "" {
			b.g.Refer(parent, KindMark, name, RelationChild)
		}
		if m.From != nil {
			if m.From.Facet != nil {
				// the facet is a data node visible to the group's children
				b.g.AddNode(KindData, m.From.Facet.Name, len(b.g.Nodes))
				b.g.Refer(id, KindData, m.From.Facet.Data, RelationFacet)
			} else if m.From.Data != "" {
				b.g.Refer(id, KindData, m.From.Data, RelationFrom)
			}
		}
		b.scales(m.Scales)
		b.signals(m.Signals)
		if m.Encode != nil {
			b.encode(id, m.Encode.Enter)
			b.encode(id, m.Encode.Update)
		}
		b.marks(id, m.Marks)
	}
}

func (b *builder) guideEncode(id string, enc map[string]ir.GuideEncode) {
	for _, ge := range enc {
		if ge.Name != "" {
			b.g.AddNode(KindMark, ge.Name, len(b.g.Nodes))
		}
		b.encode(id, ge.Enter)
		b.encode(id, ge.Update)
	}
}

func (b *builder) encode(id string, e ir.EncodeEntry) {
	for _, p := range e {
		for _, ref := range p {
			if ref.Scale != "" {
				b.g.Refer(id, KindScale, ref.Scale, RelationEncode)
			}
			b.expressions(id, ref.Signal)
			b.expressions(id, ref.Test)
		}
	}
}

func (b *builder) expressions(id, expr string) {
	if !strings.Contains(expr, "('") {
		return
	}
	for _, m := range exprRef.FindAllStringSubmatch(expr, -1) {
		kind := KindScale
		if m[1] == "data" {
			kind = KindData
		}
		b.g.Refer(id, kind, m[2], RelationExpression)
	}
}
