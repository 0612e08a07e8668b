package usecase

import (
	"context"
	"encoding/base64"
	"strings"

	domainDocument "github.com/flowgrade/flowgrade/domains/document"
	pkgError "github.com/flowgrade/flowgrade/pkg/error"
	"github.com/flowgrade/flowgrade/validations"
)

type documentService struct{}

func NewDocumentService() domainDocument.IDocumentUsecase {
	return &documentService{}
}

// ExtractText decodes an uploaded file and returns its plain-text content.
// Office and PDF formats are handled by an external extraction collaborator;
// this service covers the plain-text path.
func (s *documentService) ExtractText(ctx context.Context, request domainDocument.ExtractRequest) (domainDocument.ExtractResult, error) {
	if err := validations.ValidateExtract(ctx, request); err != nil {
		return domainDocument.ExtractResult{}, err
	}

	payload := request.FileBase64
	if i := strings.Index(payload, ","); i >= 0 {
		payload = payload[i+1:]
	}
	content, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return domainDocument.ExtractResult{}, pkgError.ValidationError("file_base64: invalid base64 payload.")
	}

	switch strings.ToLower(request.FileType) {
	case ".txt", "txt":
		text := string(content)
		return domainDocument.ExtractResult{
			Text: text,
			Metadata: map[string]any{
				"type":       ".txt",
				"paragraphs": len(strings.Split(text, "\n\n")),
			},
		}, nil
	default:
		return domainDocument.ExtractResult{}, pkgError.ValidationError("file_type: unsupported file type " + request.FileType + ".")
	}
}
