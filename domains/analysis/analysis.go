package analysis

import (
	"context"
	"encoding/json"

	cfg "github.com/flowgrade/flowgrade/analyzer/domain"
)

type AnalyzePseudocodeRequest struct {
	Pseudocode string `json:"pseudocode"`
}

type AnalyzeFlowchartRequest struct {
	ImageBase64 string `json:"image_base64"`
}

type AnalyzeProblemRequest struct {
	Statement string `json:"statement"`
}

type CompareRequest struct {
	First    cfg.GraphRecord `json:"cfg1"`
	Second   cfg.GraphRecord `json:"cfg2"`
	Analysis json.RawMessage `json:"problem_analysis"`
}

type IAnalysisUsecase interface {
	// PseudocodeToCFG converts pseudocode into a control-flow graph,
	// serving repeated requests for trivially different inputs from cache.
	PseudocodeToCFG(ctx context.Context, request AnalyzePseudocodeRequest) (cfg.Graph, error)

	// FlowchartToCFG converts a base64-encoded flowchart image into a
	// control-flow graph.
	FlowchartToCFG(ctx context.Context, request AnalyzeFlowchartRequest) (cfg.Graph, error)

	// AnalyzeProblem extracts requirements and expected structure from a
	// problem statement.
	AnalyzeProblem(ctx context.Context, request AnalyzeProblemRequest) (json.RawMessage, error)

	// CompareCFGs scores two solution graphs against each other in the
	// context of a problem analysis.
	CompareCFGs(ctx context.Context, request CompareRequest) (json.RawMessage, error)
}
