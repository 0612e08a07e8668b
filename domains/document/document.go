package document

import "context"

type ExtractRequest struct {
	FileBase64 string `json:"file_base64"`
	FileType   string `json:"file_type"`
}

type ExtractResult struct {
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata"`
}

// IDocumentUsecase extracts plain text from uploaded solution files. Only
// plain-text files are handled here; office and PDF extraction live behind
// the same contract in an external collaborator.
type IDocumentUsecase interface {
	ExtractText(ctx context.Context, request ExtractRequest) (ExtractResult, error)
}
