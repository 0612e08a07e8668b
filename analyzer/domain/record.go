package domain

// RawGraphRecord is the wire shape of a graph as the model or the cache
// handed it over. Every field may be absent; pointers distinguish a missing
// field from an explicitly empty one. The validator is the only component
// that turns this shape into a GraphRecord.
type RawGraphRecord struct {
	Nodes        []RawNodeRecord `json:"nodes"`
	Edges        []RawEdgeRecord `json:"edges"`
	Complexity   *int            `json:"complexity"`
	NumPaths     *int            `json:"num_paths"`
	NestingDepth *int            `json:"nesting_depth"`
}

type RawNodeRecord struct {
	ID          *string   `json:"id"`
	Type        *string   `json:"type"`
	Label       *string   `json:"label"`
	NextNodeIDs *[]string `json:"next_nodes"`
	Condition   *string   `json:"condition"`
}

type RawEdgeRecord struct {
	From  *string `json:"from"`
	To    *string `json:"to"`
	Label *string `json:"label"`
}

// GraphRecord is the validated, fully populated serialization of a graph.
// This is the form stored in the cache and the input to the assembler.
type GraphRecord struct {
	Nodes        []NodeRecord `json:"nodes"`
	Edges        []EdgeRecord `json:"edges"`
	Complexity   int          `json:"complexity"`
	NumPaths     int          `json:"num_paths"`
	NestingDepth int          `json:"nesting_depth"`
}

type NodeRecord struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Label       string   `json:"label"`
	NextNodeIDs []string `json:"next_nodes"`
	Condition   *string  `json:"condition"`
}

type EdgeRecord struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label"`
}
