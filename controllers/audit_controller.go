package controllers

import (
	"printstock/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AuditController struct {
	DB    *gorm.DB
	Audit *services.AuditService
}

func NewAuditController(DB *gorm.DB, audit *services.AuditService) *AuditController {
	return &AuditController{DB: DB, Audit: audit}
}

func (c *AuditController) StartAudit(ctx *fiber.Ctx) error {
	var input struct {
		ItemIDs []uint `json:"item_ids"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	audit, err := c.Audit.Start(input.ItemIDs, actorID(ctx))
	if err != nil {
		return serviceError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Audit started", "data": audit})
}

func (c *AuditController) RecordCount(ctx *fiber.Ctx) error {
	code := ctx.Params("code")

	var input struct {
		ItemID      uint   `json:"item_id"`
		PhysicalQty int    `json:"physical_qty"`
		Notes       string `json:"notes"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	finding, err := c.Audit.RecordCount(code, input.ItemID, input.PhysicalQty, input.Notes, actorID(ctx))
	if err != nil {
		return serviceError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Count recorded", "data": finding})
}

func (c *AuditController) ReviewAudit(ctx *fiber.Ctx) error {
	lines, err := c.Audit.Review(ctx.Params("code"))
	if err != nil {
		return serviceError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"variances": lines}})
}

func (c *AuditController) ConfirmAudit(ctx *fiber.Ctx) error {
	corrections, err := c.Audit.Confirm(ctx.Params("code"), actorID(ctx))
	if err != nil {
		return serviceError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Audit confirmed",
		"data":    fiber.Map{"corrections": corrections},
	})
}

func (c *AuditController) GetAllAudits(ctx *fiber.Ctx) error {
	audits, err := c.Audit.List()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": audits})
}

func (c *AuditController) GetAuditDetail(ctx *fiber.Ctx) error {
	audit, err := c.Audit.Get(ctx.Params("code"))
	if err != nil {
		return serviceError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": audit})
}
