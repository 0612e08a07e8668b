package rest

import (
	domainDocument "github.com/flowgrade/flowgrade/domains/document"
	"github.com/flowgrade/flowgrade/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type Document struct {
	Service domainDocument.IDocumentUsecase
}

func InitRestDocument(app fiber.Router, service domainDocument.IDocumentUsecase) Document {
	rest := Document{Service: service}
	app.Post("/documents/extract", rest.Extract)

	return rest
}

func (handler *Document) Extract(c *fiber.Ctx) error {
	var request domainDocument.ExtractRequest
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, err)
	}

	result, err := handler.Service.ExtractText(c.UserContext(), request)
	if err != nil {
		return renderAnalysisError(c, err)
	}

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Document text extracted",
		Results: result,
	})
}
