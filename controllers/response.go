package controllers

import (
	"printstock/services"

	"github.com/gofiber/fiber/v2"
)

// serviceError maps a service error kind onto an HTTP status and the
// standard JSON envelope. Only the presentation layer renders these.
func serviceError(ctx *fiber.Ctx, err error) error {
	kind := services.ErrKind(err)

	status := fiber.StatusInternalServerError
	switch kind {
	case services.KindValidation:
		status = fiber.StatusBadRequest
	case services.KindNotFound:
		status = fiber.StatusNotFound
	case services.KindInsufficientStock, services.KindAdjustmentUnderflow, services.KindApprovalConflict:
		status = fiber.StatusConflict
	}

	return ctx.Status(status).JSON(fiber.Map{
		"success": false,
		"kind":    kind,
		"message": err.Error(),
	})
}

func actorID(ctx *fiber.Ctx) int {
	userID, _ := ctx.Locals("userID").(float64)
	return int(userID)
}
