package controller

import (
	"hcp-interaction-be/internal/dto"
	"hcp-interaction-be/internal/pkg/serverutils"
	"hcp-interaction-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ILogController interface {
	RegisterRoutes(r fiber.Router)
	LogStructured(ctx *fiber.Ctx) error
}

type logController struct {
	service service.ILogService
}

func NewLogController(service service.ILogService) ILogController {
	return &logController{service: service}
}

// RegisterRoutes mounts the structured-log endpoint at the root so the
// path matches the contract existing submitters already use.
func (c *logController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/interactions")
	h.Post("/log_structured", c.LogStructured)
}

func (c *logController) LogStructured(ctx *fiber.Ctx) error {
	var req dto.LogStructuredRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.LogStructured(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
