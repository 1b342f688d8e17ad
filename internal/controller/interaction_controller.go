package controller

import (
	"hcp-interaction-be/internal/dto"
	"hcp-interaction-be/internal/pkg/serverutils"
	"hcp-interaction-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IInteractionController interface {
	RegisterRoutes(r fiber.Router)
	SendCycle(ctx *fiber.Ctx) error
	Workspace(ctx *fiber.Ctx) error
	SetField(ctx *fiber.Ctx) error
	AddMaterial(ctx *fiber.Ctx) error
	AddSample(ctx *fiber.Ctx) error
	ResetForm(ctx *fiber.Ctx) error
	ClearChat(ctx *fiber.Ctx) error
}

type interactionController struct {
	service service.IInteractionService
}

func NewInteractionController(service service.IInteractionService) IInteractionController {
	return &interactionController{service: service}
}

func (c *interactionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/interaction/v1")
	h.Post("/chat/send", c.SendCycle)
	h.Post("/chat/clear", c.ClearChat)
	h.Get("/workspace/:client_id", c.Workspace)
	h.Put("/form/field", c.SetField)
	h.Post("/form/materials", c.AddMaterial)
	h.Post("/form/samples", c.AddSample)
	h.Post("/form/reset", c.ResetForm)
}

func (c *interactionController) SendCycle(ctx *fiber.Ctx) error {
	var req dto.SendCycleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SendCycle(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send cycle", res))
}

func (c *interactionController) Workspace(ctx *fiber.Ctx) error {
	clientId := ctx.Params("client_id")
	if clientId == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Client ID is required"))
	}

	res, err := c.service.Workspace(ctx.Context(), clientId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get workspace", res))
}

func (c *interactionController) SetField(ctx *fiber.Ctx) error {
	var req dto.SetFieldRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SetField(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success set field", res))
}

func (c *interactionController) AddMaterial(ctx *fiber.Ctx) error {
	var req dto.AddItemRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.AddMaterial(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success add material", res))
}

func (c *interactionController) AddSample(ctx *fiber.Ctx) error {
	var req dto.AddItemRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.AddSample(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success add sample", res))
}

func (c *interactionController) ResetForm(ctx *fiber.Ctx) error {
	var req dto.ClientRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.ResetForm(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success reset form", res))
}

func (c *interactionController) ClearChat(ctx *fiber.Ctx) error {
	var req dto.ClientRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.ClearChat(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success clear chat", res))
}
