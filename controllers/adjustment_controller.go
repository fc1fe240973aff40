package controllers

import (
	"printstock/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AdjustmentController struct {
	DB       *gorm.DB
	Approval *services.ApprovalService
}

func NewAdjustmentController(DB *gorm.DB, approval *services.ApprovalService) *AdjustmentController {
	return &AdjustmentController{DB: DB, Approval: approval}
}

func (c *AdjustmentController) RequestAdjustment(ctx *fiber.Ctx) error {
	var input services.RequestAdjustmentInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	input.ActorID = actorID(ctx)

	request, err := c.Approval.Request(input)
	if err != nil {
		return serviceError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Adjustment requested", "data": request})
}

func (c *AdjustmentController) ApproveAdjustment(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	request, err := c.Approval.Approve(uint(id), actorID(ctx))
	if err != nil {
		return serviceError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Adjustment approved", "data": request})
}

func (c *AdjustmentController) RejectAdjustment(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	request, err := c.Approval.Reject(uint(id), actorID(ctx))
	if err != nil {
		return serviceError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Adjustment rejected", "data": request})
}

func (c *AdjustmentController) GetPending(ctx *fiber.Ctx) error {
	requests, err := c.Approval.Pending()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": requests})
}

func (c *AdjustmentController) GetHistory(ctx *fiber.Ctx) error {
	requests, err := c.Approval.History()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": requests})
}
