package graph

import (
	"fmt"
	"regexp"
	"strings"
)

var nonIdent = regexp.MustCompile(`[^A-Za-z0-9_]`)

var shapes = map[NodeKind][2]string{
	KindData:   {"[(", ")]"},
	KindScale:  {"{{", "}}"},
	KindSignal: {"([", "])"},
	KindMark:   {"[", "]"},
	KindLegend: {"[/", "/]"},
	KindAxis:   {"[/", "/]"},
}

// Mermaid renders the graph as a mermaid flowchart, one subgraph per kind.
// Unresolved references are drawn as dashed edges to a placeholder.
func Mermaid(g *Graph, fenced bool) string {
	var sb strings.Builder
	if fenced {
		sb.WriteString("```mermaid\n")
	}
	sb.WriteString("graph LR\n")

	var kind NodeKind
	open := false
	for _, n := range g.SortedNodes() {
		if n.Kind != kind {
			if open {
				sb.WriteString("    end\n")
			}
			kind = n.Kind
			sb.WriteString(fmt.Sprintf("    subgraph %s\n", kind))
			open = true
		}
		shape := shapes[n.Kind]
		sb.WriteString(fmt.Sprintf("        %s%s\"%s\"%s\n", mermaidID(n.ID), shape[0], n.Name, shape[1]))
	}
	if open {
		sb.WriteString("    end\n")
	}

	for _, e := range g.Edges {
		sb.WriteString(fmt.Sprintf("    %s -->|%s| %s\n", mermaidID(e.From), e.Kind, mermaidID(e.To)))
	}
	for _, u := range g.Unresolved {
		sb.WriteString(fmt.Sprintf("    %s -.->|%s| %s[\"? %s\"]\n", mermaidID(u.From), u.Reason, mermaidID("missing:"+u.Target), u.Target))
	}

	if fenced {
		sb.WriteString("```\n")
	}
	return sb.String()
}

func mermaidID(id string) string {
	return nonIdent.ReplaceAllString(id, "_")
}
