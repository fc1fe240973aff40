package controllers

import (
	"printstock/models"
	"printstock/repositories"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ReportController struct {
	DB *gorm.DB
}

func NewReportController(DB *gorm.DB) *ReportController {
	return &ReportController{DB: DB}
}

func (c *ReportController) GetStockValuation(ctx *fiber.Ctx) error {
	repo := repositories.NewCatalogRepository(c.DB)
	rows, total, err := repo.GetStockValuation()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"items":       rows,
			"total_value": total,
		},
	})
}

func (c *ReportController) GetScrapSummary(ctx *fiber.Ctx) error {
	repo := repositories.NewCatalogRepository(c.DB)
	rows, err := repo.GetScrapSummary()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": rows})
}

func (c *ReportController) GetScrapReports(ctx *fiber.Ctx) error {
	var reports []models.ScrapReport
	q := c.DB.Order("id desc").Limit(200)
	if itemID := ctx.QueryInt("item_id"); itemID > 0 {
		q = q.Where("item_id = ?", itemID)
	}
	if err := q.Find(&reports).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": reports})
}
