package usecase

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/flowgrade/flowgrade/analyzer/application"
	cfg "github.com/flowgrade/flowgrade/analyzer/domain"
	domainAnalysis "github.com/flowgrade/flowgrade/domains/analysis"
	"github.com/flowgrade/flowgrade/pkg/cachekey"
	"github.com/flowgrade/flowgrade/pkg/normalize"
	"github.com/flowgrade/flowgrade/validations"
)

const (
	callTypePseudocode = "pseudocode_to_cfg"
	callTypeFlowchart  = "flowchart_to_cfg"
	callTypeProblem    = "analyze_problem"
	callTypeCompare    = "compare_cfgs"
)

type analysisService struct {
	pipeline *application.Pipeline
	provider cfg.InferenceProvider
}

func NewAnalysisService(store cfg.ResponseCacheStore, provider cfg.InferenceProvider) domainAnalysis.IAnalysisUsecase {
	return &analysisService{
		pipeline: application.NewPipeline(store),
		provider: provider,
	}
}

func (s *analysisService) PseudocodeToCFG(ctx context.Context, request domainAnalysis.AnalyzePseudocodeRequest) (cfg.Graph, error) {
	if err := validations.ValidateAnalyzePseudocode(ctx, request); err != nil {
		return cfg.Graph{}, err
	}

	// Normalization makes trivially different inputs share one cache key.
	parts := []string{normalize.Code(request.Pseudocode)}
	return s.pipeline.GetOrCompute(ctx, callTypePseudocode, parts, "Error parsing pseudocode", func(ctx context.Context) (string, error) {
		prompt := application.PromptPseudocodeToCFG + "\n\nPseudocode:\n" + request.Pseudocode
		return s.provider.Generate(ctx, prompt, nil)
	})
}

func (s *analysisService) FlowchartToCFG(ctx context.Context, request domainAnalysis.AnalyzeFlowchartRequest) (cfg.Graph, error) {
	if err := validations.ValidateAnalyzeFlowchart(ctx, request); err != nil {
		return cfg.Graph{}, err
	}

	parts := []string{request.ImageBase64}
	return s.pipeline.GetOrCompute(ctx, callTypeFlowchart, parts, "Error parsing flowchart", func(ctx context.Context) (string, error) {
		image, err := decodeInlineImage(request.ImageBase64)
		if err != nil {
			return "", err
		}
		return s.provider.Generate(ctx, application.PromptFlowchartToCFG, image)
	})
}

func (s *analysisService) AnalyzeProblem(ctx context.Context, request domainAnalysis.AnalyzeProblemRequest) (json.RawMessage, error) {
	if err := validations.ValidateAnalyzeProblem(ctx, request); err != nil {
		return nil, err
	}

	parts := []string{request.Statement}
	return s.pipeline.GetOrComputeRaw(ctx, callTypeProblem, parts, func(ctx context.Context) (string, error) {
		prompt := application.PromptAnalyzeProblem + "\n\nProblem Statement:\n" + request.Statement
		return s.provider.Generate(ctx, prompt, nil)
	})
}

func (s *analysisService) CompareCFGs(ctx context.Context, request domainAnalysis.CompareRequest) (json.RawMessage, error) {
	if err := validations.ValidateCompare(ctx, request); err != nil {
		return nil, err
	}

	// Canonical serializations keep semantically identical structures on the
	// same cache key regardless of field or map ordering in the request.
	firstJSON, err := cachekey.CanonicalJSON(request.First)
	if err != nil {
		return nil, err
	}
	secondJSON, err := cachekey.CanonicalJSON(request.Second)
	if err != nil {
		return nil, err
	}
	analysisJSON, err := cachekey.CanonicalJSON(request.Analysis)
	if err != nil {
		return nil, err
	}

	parts := []string{firstJSON, secondJSON, analysisJSON}
	return s.pipeline.GetOrComputeRaw(ctx, callTypeCompare, parts, func(ctx context.Context) (string, error) {
		prompt, err := buildComparePrompt(request)
		if err != nil {
			return "", err
		}
		return s.provider.Generate(ctx, prompt, nil)
	})
}

// structuralMetrics are computed locally and handed to the model alongside
// the graphs so the comparison is grounded in real counts.
type structuralMetrics struct {
	NumNodes     int `json:"num_nodes"`
	NumEdges     int `json:"num_edges"`
	Complexity   int `json:"complexity"`
	NumPaths     int `json:"num_paths"`
	NestingDepth int `json:"nesting_depth"`
}

func metricsFor(rec cfg.GraphRecord) structuralMetrics {
	return structuralMetrics{
		NumNodes:     len(rec.Nodes),
		NumEdges:     len(rec.Edges),
		Complexity:   rec.Complexity,
		NumPaths:     rec.NumPaths,
		NestingDepth: rec.NestingDepth,
	}
}

func buildComparePrompt(request domainAnalysis.CompareRequest) (string, error) {
	first, err := json.MarshalIndent(request.First, "", "  ")
	if err != nil {
		return "", err
	}
	second, err := json.MarshalIndent(request.Second, "", "  ")
	if err != nil {
		return "", err
	}
	metrics, err := json.MarshalIndent(map[string]structuralMetrics{
		"cfg1": metricsFor(request.First),
		"cfg2": metricsFor(request.Second),
	}, "", "  ")
	if err != nil {
		return "", err
	}

	analysis := "{}"
	if len(request.Analysis) > 0 {
		pretty, err := json.MarshalIndent(request.Analysis, "", "  ")
		if err != nil {
			return "", err
		}
		analysis = string(pretty)
	}

	return fmt.Sprintf(`%s

Problem Analysis:
%s

Solution 1 CFG:
%s

Solution 2 CFG:
%s

Structural Metrics:
%s

Compare these solutions and determine which is better.`,
		application.PromptCompareCFGs, analysis, first, second, metrics), nil
}

// decodeInlineImage strips an optional data-URI prefix, decodes the base64
// payload and sniffs the content type for the vision call.
func decodeInlineImage(imageBase64 string) (*cfg.InlineImage, error) {
	payload := imageBase64
	if i := strings.Index(payload, ","); i >= 0 {
		payload = payload[i+1:]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 image payload: %w", err)
	}
	return &cfg.InlineImage{
		MIMEType: http.DetectContentType(data),
		Data:     data,
	}, nil
}
