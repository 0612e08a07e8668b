// Package application implements the graph validation, assembly and
// cache-or-compute pipeline around the inference provider.
package application

import (
	"fmt"

	"github.com/flowgrade/flowgrade/analyzer/domain"
)

// Validate repairs a raw graph record into one satisfying the schema
// invariants. It is total: whatever shape arrived from the model or the
// cache, the result has every field populated. It runs identically on the
// fresh-response path and the cache-hit path so both converge to the same
// assembled graph.
func Validate(raw domain.RawGraphRecord) domain.GraphRecord {
	rec := domain.GraphRecord{
		Nodes:        make([]domain.NodeRecord, 0, len(raw.Nodes)),
		Edges:        make([]domain.EdgeRecord, 0, len(raw.Edges)),
		Complexity:   1,
		NumPaths:     1,
		NestingDepth: 0,
	}
	if raw.Complexity != nil {
		rec.Complexity = *raw.Complexity
	}
	if raw.NumPaths != nil {
		rec.NumPaths = *raw.NumPaths
	}
	if raw.NestingDepth != nil {
		rec.NestingDepth = *raw.NestingDepth
	}

	for i, n := range raw.Nodes {
		node := domain.NodeRecord{
			// Defaults keyed on position: insertion order is significant.
			ID:          fmt.Sprintf("node%d", i+1),
			Type:        string(domain.NodeProcess),
			Label:       fmt.Sprintf("Node %d", i+1),
			NextNodeIDs: []string{},
		}
		if n.ID != nil {
			node.ID = *n.ID
		}
		if n.Type != nil {
			node.Type = *n.Type
		}
		if n.Label != nil {
			node.Label = *n.Label
		}
		if n.NextNodeIDs != nil {
			node.NextNodeIDs = *n.NextNodeIDs
		}
		// Condition stays nil when absent: nil means "not a decision",
		// which is distinct from an empty condition string.
		node.Condition = n.Condition
		rec.Nodes = append(rec.Nodes, node)
	}

	for _, e := range raw.Edges {
		var edge domain.EdgeRecord
		if e.From != nil {
			edge.From = *e.From
		}
		if e.To != nil {
			edge.To = *e.To
		}
		if e.Label != nil {
			edge.Label = *e.Label
		}
		// An edge with an unknown endpoint carries no information; drop it
		// rather than invent one.
		if edge.From == "" || edge.To == "" {
			continue
		}
		rec.Edges = append(rec.Edges, edge)
	}

	return rec
}
