package rest

import (
	"errors"

	cfg "github.com/flowgrade/flowgrade/analyzer/domain"
	domainAnalysis "github.com/flowgrade/flowgrade/domains/analysis"
	pkgError "github.com/flowgrade/flowgrade/pkg/error"
	"github.com/flowgrade/flowgrade/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type Analysis struct {
	Service domainAnalysis.IAnalysisUsecase
}

func InitRestAnalysis(app fiber.Router, service domainAnalysis.IAnalysisUsecase) Analysis {
	rest := Analysis{Service: service}
	app.Post("/analyze/pseudocode", rest.AnalyzePseudocode)
	app.Post("/analyze/flowchart", rest.AnalyzeFlowchart)
	app.Post("/analyze/problem", rest.AnalyzeProblem)
	app.Post("/analyze/compare", rest.Compare)

	return rest
}

func (handler *Analysis) AnalyzePseudocode(c *fiber.Ctx) error {
	var request domainAnalysis.AnalyzePseudocodeRequest
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, err)
	}

	graph, err := handler.Service.PseudocodeToCFG(c.UserContext(), request)
	if err != nil {
		return renderAnalysisError(c, err)
	}

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Pseudocode converted to control flow graph",
		Results: graph,
	})
}

func (handler *Analysis) AnalyzeFlowchart(c *fiber.Ctx) error {
	var request domainAnalysis.AnalyzeFlowchartRequest
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, err)
	}

	graph, err := handler.Service.FlowchartToCFG(c.UserContext(), request)
	if err != nil {
		return renderAnalysisError(c, err)
	}

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Flowchart converted to control flow graph",
		Results: graph,
	})
}

func (handler *Analysis) AnalyzeProblem(c *fiber.Ctx) error {
	var request domainAnalysis.AnalyzeProblemRequest
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, err)
	}

	result, err := handler.Service.AnalyzeProblem(c.UserContext(), request)
	if err != nil {
		return renderAnalysisError(c, err)
	}

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Problem statement analyzed",
		Results: result,
	})
}

func (handler *Analysis) Compare(c *fiber.Ctx) error {
	var request domainAnalysis.CompareRequest
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, err)
	}

	result, err := handler.Service.CompareCFGs(c.UserContext(), request)
	if err != nil {
		return renderAnalysisError(c, err)
	}

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Solutions compared",
		Results: result,
	})
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(400).JSON(utils.ResponseData{
		Status:  400,
		Code:    "BAD_REQUEST",
		Message: err.Error(),
	})
}

// renderAnalysisError maps the two surfaced pipeline error kinds to their
// HTTP shape; everything else panics into the recovery middleware.
func renderAnalysisError(c *fiber.Ctx, err error) error {
	var structural *cfg.StructuralError
	if errors.As(err, &structural) {
		return c.Status(422).JSON(utils.ResponseData{
			Status:  422,
			Code:    "STRUCTURAL_ERROR",
			Message: structural.Error(),
		})
	}

	var transport *cfg.TransportError
	if errors.As(err, &transport) {
		return c.Status(502).JSON(utils.ResponseData{
			Status:  502,
			Code:    "UPSTREAM_ERROR",
			Message: transport.Error(),
		})
	}

	var malformed *cfg.MalformedResponseError
	if errors.As(err, &malformed) {
		return c.Status(502).JSON(utils.ResponseData{
			Status:  502,
			Code:    "MALFORMED_RESPONSE",
			Message: malformed.Error(),
		})
	}

	var generic pkgError.GenericError
	if errors.As(err, &generic) {
		return c.Status(generic.StatusCode()).JSON(utils.ResponseData{
			Status:  generic.StatusCode(),
			Code:    generic.ErrCode(),
			Message: generic.Error(),
		})
	}

	utils.PanicIfNeeded(err)
	return nil
}
