package application

import "github.com/flowgrade/flowgrade/analyzer/domain"

// ToGraph converts a validated record into the typed graph entity. It fails
// with a StructuralError when an edge references a node id that is not in
// the record: the validator repairs missing fields, not dangling references,
// so this is the one place the pipeline can still fail on a cache hit.
func ToGraph(rec domain.GraphRecord) (domain.Graph, error) {
	known := make(map[string]struct{}, len(rec.Nodes))
	nodes := make([]domain.Node, 0, len(rec.Nodes))
	for _, n := range rec.Nodes {
		known[n.ID] = struct{}{}
		nodes = append(nodes, domain.Node{
			ID:          n.ID,
			Type:        domain.NodeType(n.Type),
			Label:       n.Label,
			NextNodeIDs: n.NextNodeIDs,
			Condition:   n.Condition,
		})
	}

	edges := make([]domain.Edge, 0, len(rec.Edges))
	for _, e := range rec.Edges {
		if _, ok := known[e.From]; !ok {
			return domain.Graph{}, &domain.StructuralError{From: e.From, To: e.To, MissingID: e.From}
		}
		if _, ok := known[e.To]; !ok {
			return domain.Graph{}, &domain.StructuralError{From: e.From, To: e.To, MissingID: e.To}
		}
		edges = append(edges, domain.Edge{From: e.From, To: e.To, Label: e.Label})
	}

	return domain.Graph{
		Nodes:        nodes,
		Edges:        edges,
		Complexity:   rec.Complexity,
		NumPaths:     rec.NumPaths,
		NestingDepth: rec.NestingDepth,
	}, nil
}

// ToRecord is the inverse of ToGraph: assembling a validated record and
// re-serializing it reproduces the same field values.
func ToRecord(g domain.Graph) domain.GraphRecord {
	nodes := make([]domain.NodeRecord, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		next := n.NextNodeIDs
		if next == nil {
			next = []string{}
		}
		nodes = append(nodes, domain.NodeRecord{
			ID:          n.ID,
			Type:        string(n.Type),
			Label:       n.Label,
			NextNodeIDs: next,
			Condition:   n.Condition,
		})
	}
	edges := make([]domain.EdgeRecord, 0, len(g.Edges))
	for _, e := range g.Edges {
		edges = append(edges, domain.EdgeRecord{From: e.From, To: e.To, Label: e.Label})
	}
	return domain.GraphRecord{
		Nodes:        nodes,
		Edges:        edges,
		Complexity:   g.Complexity,
		NumPaths:     g.NumPaths,
		NestingDepth: g.NestingDepth,
	}
}
