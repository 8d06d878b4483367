package graph

func (g *Graph) UnresolvedReasonCounts() map[UnresolvedReason]int {
	counts := make(map[UnresolvedReason]int)
	if g == nil {
		return counts
	}
	for _, u := range g.Unresolved {
		reason := u.Reason
		if reason == "" {
			reason = ReasonNoCandidate
		}
		counts[reason]++
	}
	return counts
}

// KindCounts counts the nodes of every kind.
func (g *Graph) KindCounts() map[NodeKind]int {
	counts := make(map[NodeKind]int)
	if g == nil {
		return counts
	}
	for _, n := range g.Nodes {
		counts[n.Kind]++
	}
	return counts
}
