package domain

import "context"

// InlineImage is a binary attachment sent alongside a prompt.
type InlineImage struct {
	MIMEType string
	Data     []byte
}

// InferenceProvider is the generative-model collaborator. Implementations
// return the raw response text; parsing and repair happen downstream.
type InferenceProvider interface {
	Generate(ctx context.Context, prompt string, image *InlineImage) (string, error)
}
