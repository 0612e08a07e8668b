package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/flowgrade/flowgrade/analyzer/domain"
	"github.com/flowgrade/flowgrade/pkg/cachekey"
	"github.com/sirupsen/logrus"
)

// ComputeFunc produces the raw model response text for a cache miss.
type ComputeFunc func(ctx context.Context) (string, error)

// Pipeline combines key derivation, cache lookup, fallback computation,
// validation, assembly and the cache write-back. There is deliberately no
// single-flight guarantee: two requests missing on the same key both invoke
// their compute functions and the last Set wins.
type Pipeline struct {
	store domain.ResponseCacheStore
}

func NewPipeline(store domain.ResponseCacheStore) *Pipeline {
	return &Pipeline{store: store}
}

// GetOrCompute returns the assembled graph for the given call type and
// canonical content parts, consulting the cache before invoking compute.
// Unparsable model output yields the fallback graph labelled with
// fallbackLabel instead of an error; the fallback is never cached.
func (p *Pipeline) GetOrCompute(ctx context.Context, callType string, parts []string, fallbackLabel string, compute ComputeFunc) (domain.Graph, error) {
	key := cachekey.Key(callType, parts...)

	if cached, ok := p.store.Get(ctx, callType, key); ok {
		var raw domain.RawGraphRecord
		if err := json.Unmarshal(cached, &raw); err == nil {
			return ToGraph(Validate(raw))
		}
		// A stored record that no longer decodes is treated as a miss.
		logrus.WithField("call_type", callType).Warn("[PIPELINE] Cached record unreadable, recomputing")
	}

	text, err := compute(ctx)
	if err != nil {
		return domain.Graph{}, &domain.TransportError{Err: err}
	}

	var raw domain.RawGraphRecord
	if err := json.Unmarshal([]byte(stripFences(text)), &raw); err != nil {
		logrus.WithError(err).WithField("call_type", callType).Warn("[PIPELINE] Unparsable model response, substituting fallback graph")
		return ToGraph(Validate(FallbackRecord(fallbackLabel)))
	}

	validated := Validate(raw)
	graph, err := ToGraph(validated)
	if err != nil {
		// A structurally inconsistent record would fail identically on every
		// hit, so it is not written back.
		return domain.Graph{}, err
	}

	if payload, merr := json.Marshal(validated); merr == nil {
		p.store.Set(ctx, callType, key, payload)
	}
	return graph, nil
}

// GetOrComputeRaw is the free-form variant for operations whose result is an
// arbitrary JSON record rather than a graph (problem analysis, comparison).
func (p *Pipeline) GetOrComputeRaw(ctx context.Context, callType string, parts []string, compute ComputeFunc) (json.RawMessage, error) {
	key := cachekey.Key(callType, parts...)

	if cached, ok := p.store.Get(ctx, callType, key); ok {
		return cached, nil
	}

	text, err := compute(ctx)
	if err != nil {
		return nil, &domain.TransportError{Err: err}
	}

	cleaned := stripFences(text)
	if !json.Valid([]byte(cleaned)) {
		return nil, &domain.MalformedResponseError{Err: errors.New("invalid JSON document")}
	}

	payload := json.RawMessage(cleaned)
	p.store.Set(ctx, callType, key, payload)
	return payload, nil
}

// stripFences removes a surrounding markdown code fence that models tend to
// wrap JSON output in.
func stripFences(text string) string {
	out := strings.TrimSpace(text)
	if !strings.HasPrefix(out, "```") {
		return out
	}
	out = strings.TrimPrefix(out, "```json")
	out = strings.TrimPrefix(out, "```")
	if i := strings.LastIndex(out, "```"); i >= 0 {
		out = out[:i]
	}
	return strings.TrimSpace(out)
}

// FallbackRecord is the minimal valid graph substituted when the model
// response cannot be parsed: START, an error-marker PROCESS node and END,
// chained by two unconditional edges.
func FallbackRecord(label string) domain.RawGraphRecord {
	strPtr := func(s string) *string { return &s }
	empty := []string{}
	return domain.RawGraphRecord{
		Nodes: []domain.RawNodeRecord{
			{ID: strPtr("node1"), Type: strPtr(string(domain.NodeStart)), Label: strPtr("Start"), NextNodeIDs: &[]string{"node2"}},
			{ID: strPtr("node2"), Type: strPtr(string(domain.NodeProcess)), Label: strPtr(label), NextNodeIDs: &[]string{"node3"}},
			{ID: strPtr("node3"), Type: strPtr(string(domain.NodeEnd)), Label: strPtr("End"), NextNodeIDs: &empty},
		},
		Edges: []domain.RawEdgeRecord{
			{From: strPtr("node1"), To: strPtr("node2"), Label: strPtr("")},
			{From: strPtr("node2"), To: strPtr("node3"), Label: strPtr("")},
		},
	}
}
