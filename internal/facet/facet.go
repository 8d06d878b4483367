// Package facet resolves which data fields partition a mark's rows into series.
package facet

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Kind distinguishes the three shapes a facet assignment can take.
type Kind int

const (
	KindNone Kind = iota
	// KindValue is a literal style value; it partitions nothing.
	KindValue
	// KindField is a single field reference.
	KindField
	// KindDual is a [primary, secondary] field pair.
	KindDual
)

// Ref is a facet assignment: a static value, a field, or a field pair.
type Ref struct {
	Value     any    `json:"value,omitempty"`
	Field     string `json:"field,omitempty"`
	Secondary string `json:"secondary,omitempty"`
}

func Value(v any) Ref                 { return Ref{Value: v} }
func Field(f string) Ref              { return Ref{Field: f} }
func Dual(primary, second string) Ref { return Ref{Field: primary, Secondary: second} }

func (r Ref) Kind() Kind {
	switch {
	case r.Field != "" && r.Secondary != "":
		return KindDual
	case r.Field != "":
		return KindField
	case r.Value != nil:
		return KindValue
	}
	return KindNone
}

// IsZero reports whether nothing was assigned.
func (r Ref) IsZero() bool { return r.Kind() == KindNone }

// Fields returns the referenced fields, primary first.
func (r Ref) Fields() []string {
	switch r.Kind() {
	case KindDual:
		return []string{r.Field, r.Secondary}
	case KindField:
		return []string{r.Field}
	}
	return nil
}

// Or returns r, or def when r is unassigned.
func (r Ref) Or(def Ref) Ref {
	if r.IsZero() {
		return def
	}
	return r
}

// UnmarshalYAML accepts `field`, `[primary, secondary]` and `{value: v}`.
func (r *Ref) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		*r = Field(s)
		return nil
	case yaml.SequenceNode:
		var pair []string
		if err := node.Decode(&pair); err != nil {
			return err
		}
		return r.setPair(pair)
	case yaml.MappingNode:
		var m struct {
			Value any `yaml:"value"`
		}
		if err := node.Decode(&m); err != nil {
			return err
		}
		*r = Value(m.Value)
		return nil
	}
	return fmt.Errorf("facet: unsupported yaml node kind %d", node.Kind)
}

// UnmarshalJSON accepts the same three shapes as UnmarshalYAML.
func (r *Ref) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*r = Field(s)
		return nil
	}
	var pair []string
	if err := json.Unmarshal(b, &pair); err == nil {
		return r.setPair(pair)
	}
	var m struct {
		Value     any    `json:"value"`
		Field     string `json:"field"`
		Secondary string `json:"secondary"`
	}
	if err := json.Unmarshal(b, &m); err != nil {
		return fmt.Errorf("facet: %w", err)
	}
	*r = Ref{Value: m.Value, Field: m.Field, Secondary: m.Secondary}
	return nil
}

func (r *Ref) setPair(pair []string) error {
	if len(pair) != 2 {
		return fmt.Errorf("facet: field pair needs 2 entries, got %d", len(pair))
	}
	*r = Dual(pair[0], pair[1])
	return nil
}

// Assignments are the facet channels of one mark.
type Assignments struct {
	Color    Ref
	LineType Ref
	Opacity  Ref
	Size     Ref
}

func (a Assignments) all() []Ref {
	return []Ref{a.Color, a.LineType, a.Opacity, a.Size}
}

// Resolved lists the fields that partition a mark's rows.
type Resolved struct {
	PrimaryFields   []string
	SecondaryFields []string
}

// Resolve splits the assignments into primary and secondary fields,
// deduplicated in first-seen order. Static values contribute nothing.
func Resolve(a Assignments) Resolved {
	var res Resolved
	seenPrimary := map[string]bool{}
	seenSecondary := map[string]bool{}
	for _, ref := range a.all() {
		switch ref.Kind() {
		case KindField, KindDual:
			if !seenPrimary[ref.Field] {
				seenPrimary[ref.Field] = true
				res.PrimaryFields = append(res.PrimaryFields, ref.Field)
			}
			if ref.Kind() == KindDual && !seenSecondary[ref.Secondary] {
				seenSecondary[ref.Secondary] = true
				res.SecondaryFields = append(res.SecondaryFields, ref.Secondary)
			}
		}
	}
	return res
}

// IsDodgedAndStacked reports whether any assignment is a field pair.
func IsDodgedAndStacked(a Assignments) bool {
	for _, ref := range a.all() {
		if ref.Kind() == KindDual {
			return true
		}
	}
	return false
}
