// Package providers contains the adapters for external generative-model APIs.
package providers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/flowgrade/flowgrade/analyzer/domain"
	"github.com/flowgrade/flowgrade/core/config"
	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// GeminiProvider is the adapter for the Google Gemini API.
type GeminiProvider struct {
	apiKey      string
	model       string
	visionModel string
}

func NewGeminiProvider(cfg config.AIConfig) *GeminiProvider {
	return &GeminiProvider{
		apiKey:      cfg.GeminiAPIKey,
		model:       cfg.Model,
		visionModel: cfg.VisionModel,
	}
}

// Generate sends the prompt (plus an optional inline image) to Gemini and
// returns the raw response text. Failures are returned as-is; the pipeline
// classifies them as transport errors.
func (p *GeminiProvider) Generate(ctx context.Context, prompt string, image *domain.InlineImage) (string, error) {
	if p.apiKey == "" {
		return "", fmt.Errorf("gemini provider has no API key")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  p.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", err
	}

	parts := []*genai.Part{{Text: prompt}}
	model := p.model
	if image != nil {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{MIMEType: image.MIMEType, Data: image.Data},
		})
		model = p.visionModel
	}

	contents := []*genai.Content{{Role: genai.RoleUser, Parts: parts}}
	cfg := &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}

	result, err := p.generateContentWithRetry(ctx, client, model, contents, cfg)
	if err != nil {
		return "", err
	}
	if result == nil || len(result.Candidates) == 0 {
		return "", fmt.Errorf("no response from gemini")
	}

	// Extract the text from the candidate parts directly; more robust than
	// result.Text() when the model mixes part kinds.
	var fullText strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			fullText.WriteString(part.Text)
		}
	}

	if result.UsageMetadata != nil {
		logrus.WithFields(logrus.Fields{
			"model":         model,
			"input_tokens":  result.UsageMetadata.PromptTokenCount,
			"output_tokens": result.UsageMetadata.CandidatesTokenCount,
		}).Debug("[GEMINI] Token usage recorded")
	}

	return fullText.String(), nil
}

func (p *GeminiProvider) generateContentWithRetry(ctx context.Context, client *genai.Client, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	for i := 0; i < 3; i++ {
		result, err := client.Models.GenerateContent(ctx, model, contents, cfg)
		if err == nil {
			return result, nil
		}
		if strings.Contains(err.Error(), "503") {
			time.Sleep(time.Duration(1<<uint(i)) * time.Second)
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("max retries exceeded")
}
