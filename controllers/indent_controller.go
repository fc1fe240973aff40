package controllers

import (
	"printstock/models"
	"printstock/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type IndentController struct {
	DB     *gorm.DB
	Indent *services.IndentService
}

func NewIndentController(DB *gorm.DB, indent *services.IndentService) *IndentController {
	return &IndentController{DB: DB, Indent: indent}
}

func (c *IndentController) AutoGenerate(ctx *fiber.Ctx) error {
	created, err := c.Indent.AutoGenerate(actorID(ctx))
	if err != nil {
		return serviceError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Auto-generation finished",
		"data":    fiber.Map{"created": created},
	})
}

func (c *IndentController) CreateIndent(ctx *fiber.Ctx) error {
	var input services.CreateIndentInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	input.ActorID = actorID(ctx)

	request, err := c.Indent.Create(input)
	if err != nil {
		return serviceError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Indent created", "data": request})
}

func (c *IndentController) MarkOrdered(ctx *fiber.Ctx) error {
	return c.transition(ctx, models.IndentOrdered)
}

func (c *IndentController) MarkReceived(ctx *fiber.Ctx) error {
	return c.transition(ctx, models.IndentReceived)
}

func (c *IndentController) transition(ctx *fiber.Ctx, status string) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	request, err := c.Indent.Transition(uint(id), status, actorID(ctx))
	if err != nil {
		return serviceError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Indent updated", "data": request})
}

func (c *IndentController) GetIndents(ctx *fiber.Ctx) error {
	requests, err := c.Indent.List(ctx.Query("status"))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": requests})
}
