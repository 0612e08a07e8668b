package usecase

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	cfg "github.com/flowgrade/flowgrade/analyzer/domain"
	domainAnalysis "github.com/flowgrade/flowgrade/domains/analysis"
	pkgError "github.com/flowgrade/flowgrade/pkg/error"
)

// fakeStore is an in-memory cfg.ResponseCacheStore.
type fakeStore struct {
	entries map[string]json.RawMessage
}

func newFakeStore() *fakeStore {
	return &fakeStore{entries: map[string]json.RawMessage{}}
}

func (f *fakeStore) Get(_ context.Context, callType, contentHash string) (json.RawMessage, bool) {
	v, ok := f.entries[callType+"|"+contentHash]
	return v, ok
}

func (f *fakeStore) Set(_ context.Context, callType, contentHash string, response json.RawMessage) {
	f.entries[callType+"|"+contentHash] = response
}

func (f *fakeStore) Stats(context.Context) (cfg.CacheStats, error) { return cfg.CacheStats{}, nil }

func (f *fakeStore) Sweep(context.Context) (int64, error) { return 0, nil }

// fakeProvider returns a canned response and records what it was asked.
type fakeProvider struct {
	response string
	err      error
	calls    int
	prompts  []string
	images   []*cfg.InlineImage
}

func (f *fakeProvider) Generate(_ context.Context, prompt string, image *cfg.InlineImage) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	f.images = append(f.images, image)
	return f.response, f.err
}

const graphResponse = `{
	"nodes": [
		{"id": "start", "type": "START", "label": "Start", "next_nodes": ["end"]},
		{"id": "end", "type": "END", "label": "End", "next_nodes": []}
	],
	"edges": [{"from": "start", "to": "end", "label": ""}],
	"complexity": 1, "num_paths": 1, "nesting_depth": 0
}`

func TestPseudocodeToCFG_HappyPath(t *testing.T) {
	provider := &fakeProvider{response: graphResponse}
	svc := NewAnalysisService(newFakeStore(), provider)

	g, err := svc.PseudocodeToCFG(context.Background(), domainAnalysis.AnalyzePseudocodeRequest{Pseudocode: "return x"})
	if err != nil {
		t.Fatalf("PseudocodeToCFG: %v", err)
	}
	if len(g.Nodes) != 2 || len(g.Edges) != 1 {
		t.Fatalf("graph shape = %d nodes, %d edges", len(g.Nodes), len(g.Edges))
	}
	if provider.calls != 1 {
		t.Fatalf("provider called %d times", provider.calls)
	}
	if !strings.Contains(provider.prompts[0], "return x") {
		t.Fatalf("prompt missing the pseudocode: %q", provider.prompts[0])
	}
}

func TestPseudocodeToCFG_NormalizedVariantsShareCacheEntry(t *testing.T) {
	provider := &fakeProvider{response: graphResponse}
	svc := NewAnalysisService(newFakeStore(), provider)
	ctx := context.Background()

	variants := []string{
		"return x",
		"RETURN X;",
		"return   x  // obvious",
		"# lead-in comment\nreturn x",
	}
	for _, v := range variants {
		if _, err := svc.PseudocodeToCFG(ctx, domainAnalysis.AnalyzePseudocodeRequest{Pseudocode: v}); err != nil {
			t.Fatalf("PseudocodeToCFG(%q): %v", v, err)
		}
	}

	if provider.calls != 1 {
		t.Fatalf("provider called %d times, want 1 across all variants", provider.calls)
	}
}

func TestPseudocodeToCFG_EmptyInputRejectedBeforeInference(t *testing.T) {
	provider := &fakeProvider{response: graphResponse}
	svc := NewAnalysisService(newFakeStore(), provider)

	_, err := svc.PseudocodeToCFG(context.Background(), domainAnalysis.AnalyzePseudocodeRequest{})
	var verr pkgError.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if provider.calls != 0 {
		t.Fatalf("provider reached on invalid input")
	}
}

func TestPseudocodeToCFG_ProviderFailureIsTransportError(t *testing.T) {
	provider := &fakeProvider{err: errors.New("service unavailable")}
	svc := NewAnalysisService(newFakeStore(), provider)

	_, err := svc.PseudocodeToCFG(context.Background(), domainAnalysis.AnalyzePseudocodeRequest{Pseudocode: "return x"})
	var terr *cfg.TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("err = %v, want TransportError", err)
	}
}

func TestPseudocodeToCFG_ChattyResponseFallsBack(t *testing.T) {
	provider := &fakeProvider{response: "I am unable to produce a graph for this input."}
	store := newFakeStore()
	svc := NewAnalysisService(store, provider)

	g, err := svc.PseudocodeToCFG(context.Background(), domainAnalysis.AnalyzePseudocodeRequest{Pseudocode: "return x"})
	if err != nil {
		t.Fatalf("fallback path must not error: %v", err)
	}
	if len(g.Nodes) != 3 || g.Nodes[1].Label != "Error parsing pseudocode" {
		t.Fatalf("fallback graph = %#v", g)
	}
	if len(store.entries) != 0 {
		t.Fatalf("fallback was cached")
	}
}

func TestFlowchartToCFG_DecodesImageForVisionCall(t *testing.T) {
	provider := &fakeProvider{response: graphResponse}
	svc := NewAnalysisService(newFakeStore(), provider)

	// Minimal PNG signature so content sniffing resolves to image/png.
	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}
	payload := "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)

	g, err := svc.FlowchartToCFG(context.Background(), domainAnalysis.AnalyzeFlowchartRequest{ImageBase64: payload})
	if err != nil {
		t.Fatalf("FlowchartToCFG: %v", err)
	}
	if len(g.Nodes) != 2 {
		t.Fatalf("graph = %#v", g)
	}
	if provider.images[0] == nil || provider.images[0].MIMEType != "image/png" {
		t.Fatalf("image = %#v", provider.images[0])
	}
}

func TestFlowchartToCFG_InvalidBase64IsTransportError(t *testing.T) {
	provider := &fakeProvider{response: graphResponse}
	svc := NewAnalysisService(newFakeStore(), provider)

	_, err := svc.FlowchartToCFG(context.Background(), domainAnalysis.AnalyzeFlowchartRequest{ImageBase64: "%%% not base64 %%%"})
	var terr *cfg.TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("err = %v, want TransportError", err)
	}
	if provider.calls != 0 {
		t.Fatalf("provider reached with an undecodable image")
	}
}

func TestAnalyzeProblem_CachesRawAnalysis(t *testing.T) {
	provider := &fakeProvider{response: `{"difficulty": "medium", "data_structures": ["array"]}`}
	svc := NewAnalysisService(newFakeStore(), provider)
	ctx := context.Background()
	req := domainAnalysis.AnalyzeProblemRequest{Statement: "Find two numbers that sum to a target."}

	first, err := svc.AnalyzeProblem(ctx, req)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := svc.AnalyzeProblem(ctx, req)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if provider.calls != 1 {
		t.Fatalf("provider called %d times, want 1", provider.calls)
	}
	if string(first) != string(second) {
		t.Fatalf("cached payload drifted: %q vs %q", first, second)
	}
}

func TestAnalyzeProblem_NonJSONResponseIsMalformed(t *testing.T) {
	provider := &fakeProvider{response: "The difficulty is medium."}
	svc := NewAnalysisService(newFakeStore(), provider)

	_, err := svc.AnalyzeProblem(context.Background(), domainAnalysis.AnalyzeProblemRequest{Statement: "two sum"})
	var merr *cfg.MalformedResponseError
	if !errors.As(err, &merr) {
		t.Fatalf("err = %v, want MalformedResponseError", err)
	}
}

func compareRequest() domainAnalysis.CompareRequest {
	node := func(id string) cfg.NodeRecord {
		return cfg.NodeRecord{ID: id, Type: "PROCESS", Label: id, NextNodeIDs: []string{}}
	}
	return domainAnalysis.CompareRequest{
		First:    cfg.GraphRecord{Nodes: []cfg.NodeRecord{node("a")}, Edges: []cfg.EdgeRecord{}, Complexity: 1, NumPaths: 1},
		Second:   cfg.GraphRecord{Nodes: []cfg.NodeRecord{node("b")}, Edges: []cfg.EdgeRecord{}, Complexity: 2, NumPaths: 2},
		Analysis: json.RawMessage(`{"difficulty": "easy"}`),
	}
}

func TestCompareCFGs_PromptCarriesMetricsAndCaches(t *testing.T) {
	provider := &fakeProvider{response: `{"winner": "cfg2", "reason": "fewer branches"}`}
	svc := NewAnalysisService(newFakeStore(), provider)
	ctx := context.Background()
	req := compareRequest()

	verdict, err := svc.CompareCFGs(ctx, req)
	if err != nil {
		t.Fatalf("CompareCFGs: %v", err)
	}
	if !strings.Contains(string(verdict), "cfg2") {
		t.Fatalf("verdict = %s", verdict)
	}
	if !strings.Contains(provider.prompts[0], "Structural Metrics") || !strings.Contains(provider.prompts[0], `"num_nodes": 1`) {
		t.Fatalf("prompt missing metrics: %q", provider.prompts[0])
	}

	if _, err := svc.CompareCFGs(ctx, req); err != nil {
		t.Fatalf("second compare: %v", err)
	}
	if provider.calls != 1 {
		t.Fatalf("provider called %d times, want 1", provider.calls)
	}
}

func TestCompareCFGs_RejectsEmptyGraphs(t *testing.T) {
	provider := &fakeProvider{response: "{}"}
	svc := NewAnalysisService(newFakeStore(), provider)

	req := compareRequest()
	req.First.Nodes = nil
	_, err := svc.CompareCFGs(context.Background(), req)
	var verr pkgError.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if provider.calls != 0 {
		t.Fatalf("provider reached with an empty graph")
	}
}
