package validations

import (
	"context"

	domainAnalysis "github.com/flowgrade/flowgrade/domains/analysis"
	domainDocument "github.com/flowgrade/flowgrade/domains/document"
	pkgError "github.com/flowgrade/flowgrade/pkg/error"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

func ValidateAnalyzePseudocode(ctx context.Context, request domainAnalysis.AnalyzePseudocodeRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Pseudocode, validation.Required),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}

func ValidateAnalyzeFlowchart(ctx context.Context, request domainAnalysis.AnalyzeFlowchartRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.ImageBase64, validation.Required),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}

func ValidateAnalyzeProblem(ctx context.Context, request domainAnalysis.AnalyzeProblemRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.Statement, validation.Required),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}

func ValidateCompare(ctx context.Context, request domainAnalysis.CompareRequest) error {
	if len(request.First.Nodes) == 0 {
		return pkgError.ValidationError("cfg1: must contain at least one node.")
	}
	if len(request.Second.Nodes) == 0 {
		return pkgError.ValidationError("cfg2: must contain at least one node.")
	}
	return nil
}

func ValidateExtract(ctx context.Context, request domainDocument.ExtractRequest) error {
	err := validation.ValidateStructWithContext(ctx, &request,
		validation.Field(&request.FileBase64, validation.Required),
		validation.Field(&request.FileType, validation.Required),
	)

	if err != nil {
		return pkgError.ValidationError(err.Error())
	}

	return nil
}
