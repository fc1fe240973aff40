package controllers

import (
	"fmt"
	"net/http"

	"printstock/repositories"
	"printstock/services"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// StockController exposes the stock processor's command operations and the
// movement ledger reads. All validation beyond basic parsing lives in the
// services; the services never trust this boundary.
type StockController struct {
	DB    *gorm.DB
	Stock *services.StockService
}

func NewStockController(DB *gorm.DB, stock *services.StockService) *StockController {
	return &StockController{DB: DB, Stock: stock}
}

func (c *StockController) Transfer(ctx *fiber.Ctx) error {
	var input services.TransferInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	input.ActorID = actorID(ctx)

	movement, err := c.Stock.Transfer(input)
	if err != nil {
		return serviceError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Stock transferred", "data": movement})
}

func (c *StockController) ReceiveGoods(ctx *fiber.Ctx) error {
	var input services.ReceiveInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	input.ActorID = actorID(ctx)

	movement, err := c.Stock.ReceiveGoods(input)
	if err != nil {
		return serviceError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Goods received", "data": movement})
}

func (c *StockController) IssueMaterial(ctx *fiber.Ctx) error {
	var input services.IssueInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	input.ActorID = actorID(ctx)

	movement, err := c.Stock.IssueMaterial(input)
	if err != nil {
		return serviceError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Material issued", "data": movement})
}

func (c *StockController) ReturnMaterial(ctx *fiber.Ctx) error {
	var input services.ReturnInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	input.ActorID = actorID(ctx)

	movement, err := c.Stock.ReturnMaterial(input)
	if err != nil {
		return serviceError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Material returned", "data": movement})
}

func (c *StockController) GetMovements(ctx *fiber.Ctx) error {
	filter := repositories.MovementFilter{
		ItemID: uint(ctx.QueryInt("item_id")),
		Type:   ctx.Query("type"),
		Limit:  ctx.QueryInt("limit", 200),
	}

	repo := repositories.NewCatalogRepository(c.DB)
	movements, err := repo.GetMovements(filter)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"movements": movements}})
}

// ExportMovements streams the ledger as an Excel file.
func (c *StockController) ExportMovements(ctx *fiber.Ctx) error {
	repo := repositories.NewCatalogRepository(c.DB)
	movements, err := repo.GetMovements(repositories.MovementFilter{})
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	f := excelize.NewFile()
	sheet := "Sheet1"

	f.SetCellValue(sheet, "A1", "Item Code")
	f.SetCellValue(sheet, "B1", "Item Name")
	f.SetCellValue(sheet, "C1", "Type")
	f.SetCellValue(sheet, "D1", "Quantity")
	f.SetCellValue(sheet, "E1", "From")
	f.SetCellValue(sheet, "F1", "To")
	f.SetCellValue(sheet, "G1", "Ref No")
	f.SetCellValue(sheet, "H1", "Reason")
	f.SetCellValue(sheet, "I1", "Date")

	for i, m := range movements {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), m.ItemCode)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), m.ItemName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), m.Type)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), m.Quantity)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), m.FromLocation)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), m.ToLocation)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), m.RefNo)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), m.Reason)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), m.CreatedAt)
	}

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", `attachment; filename="movements.xlsx"`)

	if err := f.Write(ctx.Response().BodyWriter()); err != nil {
		return ctx.Status(http.StatusInternalServerError).SendString("Failed to generate Excel")
	}

	return nil
}
