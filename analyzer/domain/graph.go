// Package domain holds the control-flow-graph entities and the contracts
// between the analysis pipeline, the cache store and the inference provider.
package domain

// NodeType classifies a node in a control-flow graph.
type NodeType string

const (
	NodeStart        NodeType = "START"
	NodeEnd          NodeType = "END"
	NodeProcess      NodeType = "PROCESS"
	NodeDecision     NodeType = "DECISION"
	NodeLoop         NodeType = "LOOP"
	NodeFunctionCall NodeType = "FUNCTION_CALL"
	NodeReturn       NodeType = "RETURN"
)

// Node is a single statement or decision point in a control-flow graph.
// Condition is nil for anything that is not a decision.
type Node struct {
	ID          string   `json:"id"`
	Type        NodeType `json:"type"`
	Label       string   `json:"label"`
	NextNodeIDs []string `json:"next_nodes"`
	Condition   *string  `json:"condition"`
}

// Edge is a possible execution transition between two nodes. An empty label
// marks an unconditional fall-through.
type Edge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label"`
}

// Graph is the assembled control-flow graph of one solution together with
// its summary metrics. The metrics are supplied by the model, not derived
// from the node and edge sets.
type Graph struct {
	Nodes        []Node `json:"nodes"`
	Edges        []Edge `json:"edges"`
	Complexity   int    `json:"complexity"`
	NumPaths     int    `json:"num_paths"`
	NestingDepth int    `json:"nesting_depth"`
}
