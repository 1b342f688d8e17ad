package serverutils

import (
	"errors"

	"hcp-interaction-be/internal/dto"
	"hcp-interaction-be/pkg/assistant"
	"hcp-interaction-be/pkg/persistence"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts domain errors into the {"detail": ...}
// error body the clients of this service expect.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var detailErr *dto.DetailError
		if errors.As(err, &detailErr) {
			return ctx.Status(detailErr.Status).JSON(fiber.Map{"detail": detailErr.Detail})
		}

		var emptyErr *dto.EmptySubmitError
		if errors.As(err, &emptyErr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": emptyErr.Error()})
		}

		var busyErr *dto.CycleBusyError
		if errors.As(err, &busyErr) {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
				"detail": busyErr.Error(),
				"phase":  busyErr.Phase,
			})
		}

		var callErr *assistant.CallError
		if errors.As(err, &callErr) {
			return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{"detail": callErr.Error()})
		}

		var validationErr *persistence.ValidationError
		if errors.As(err, &validationErr) {
			status := validationErr.StatusCode
			if status < 400 {
				status = fiber.StatusBadGateway
			}
			return ctx.Status(status).JSON(fiber.Map{"detail": validationErr.Detail})
		}

		var networkErr *persistence.NetworkError
		if errors.As(err, &networkErr) {
			return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{"detail": networkErr.Error()})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(fiber.Map{"detail": fiberErr.Message})
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "internal server error"})
	}
}
