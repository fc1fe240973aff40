package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"printstock/models"
	"printstock/repositories"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type ItemController struct {
	DB *gorm.DB
}

func NewItemController(DB *gorm.DB) *ItemController {
	return &ItemController{DB: DB}
}

var itemInput struct {
	ID              uint   `json:"id"`
	ItemCode        string `json:"item_code" validate:"required,min=3"`
	ItemName        string `json:"item_name" validate:"required"`
	Category        string `json:"category" validate:"required"`
	BaseUnit        string `json:"base_unit" validate:"required"`
	PurchaseUnit    string `json:"purchase_unit" validate:"required"`
	ConversionRatio int    `json:"conversion_ratio" validate:"required,min=1"`
	MinLevel        int    `json:"min_level" validate:"min=0"`
	BinLocation     string `json:"bin_location"`
	PurchasePrice   int    `json:"purchase_price" validate:"min=0"`
	SellingPrice    int    `json:"selling_price" validate:"min=0"`
}

func (c *ItemController) CreateItem(ctx *fiber.Ctx) error {
	if err := ctx.BodyParser(&itemInput); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(itemInput); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if !models.ValidCategory(itemInput.Category) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid category"})
	}

	var existing models.InventoryItem
	if err := c.DB.First(&existing, "item_code = ?", itemInput.ItemCode).Error; err == nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Item code already exists"})
	}

	item := models.InventoryItem{
		ItemCode:        itemInput.ItemCode,
		ItemName:        itemInput.ItemName,
		Category:        itemInput.Category,
		BaseUnit:        itemInput.BaseUnit,
		PurchaseUnit:    itemInput.PurchaseUnit,
		ConversionRatio: itemInput.ConversionRatio,
		MinLevel:        itemInput.MinLevel,
		BinLocation:     itemInput.BinLocation,
		PurchasePrice:   itemInput.PurchasePrice,
		SellingPrice:    itemInput.SellingPrice,
		CreatedBy:       actorID(ctx),
	}

	if err := c.DB.Create(&item).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Item created successfully", "data": item})
}

// UpdateItem changes catalog master fields only. Stock levels are never
// written here; those belong to the stock service.
func (c *ItemController) UpdateItem(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	if err := ctx.BodyParser(&itemInput); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(itemInput); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var item models.InventoryItem
	if err := c.DB.First(&item, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
	}

	item.ItemName = itemInput.ItemName
	item.Category = itemInput.Category
	item.BaseUnit = itemInput.BaseUnit
	item.PurchaseUnit = itemInput.PurchaseUnit
	item.ConversionRatio = itemInput.ConversionRatio
	item.MinLevel = itemInput.MinLevel
	item.BinLocation = itemInput.BinLocation
	item.SellingPrice = itemInput.SellingPrice
	item.UpdatedBy = actorID(ctx)

	if err := c.DB.Save(&item).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Item updated successfully", "data": item})
}

func (c *ItemController) GetAllItems(ctx *fiber.Ctx) error {
	repo := repositories.NewCatalogRepository(c.DB)
	items, err := repo.GetItems()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"items": items}})
}

func (c *ItemController) GetItemByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	repo := repositories.NewCatalogRepository(c.DB)
	item, err := repo.GetItemByID(uint(id))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if item == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": item})
}

func (c *ItemController) GetLowStock(ctx *fiber.Ctx) error {
	repo := repositories.NewCatalogRepository(c.DB)
	items, err := repo.GetLowStockItems()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": items})
}

// ExportExcel streams the current stock position as an Excel file.
func (c *ItemController) ExportExcel(ctx *fiber.Ctx) error {
	repo := repositories.NewCatalogRepository(c.DB)
	items, err := repo.GetItems()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	f := excelize.NewFile()
	sheet := "Sheet1"

	headers := []string{"Item Code", "Item Name", "Category", "Godown Qty", "Shop Qty", "Base Unit", "Min Level", "Avg Cost", "Last Supplier"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, item := range items {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), item.ItemCode)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), item.ItemName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), item.Category)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), item.GodownQty)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), item.ShopQty)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), item.BaseUnit)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), item.MinLevel)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), item.PurchasePrice)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), item.LastSupplier)
	}

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", `attachment; filename="stock.xlsx"`)

	if err := f.Write(ctx.Response().BodyWriter()); err != nil {
		return ctx.Status(http.StatusInternalServerError).SendString("Failed to generate Excel")
	}

	return nil
}

// ImportExcel bulk-creates catalog items from an uploaded workbook.
// Columns: code, name, category, base unit, purchase unit, ratio, min
// level, bin location, price. Existing codes are skipped.
func (c *ItemController) ImportExcel(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing file upload"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid Excel file"})
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	imported := 0
	skipped := 0
	for i, row := range rows {
		if i == 0 || len(row) < 6 {
			continue
		}

		code := row[0]
		if code == "" {
			continue
		}

		var existing models.InventoryItem
		if err := c.DB.First(&existing, "item_code = ?", code).Error; err == nil {
			skipped++
			continue
		}

		ratio, _ := strconv.Atoi(row[5])
		if ratio < 1 {
			ratio = 1
		}
		minLevel := 0
		if len(row) > 6 {
			minLevel, _ = strconv.Atoi(row[6])
		}
		binLocation := ""
		if len(row) > 7 {
			binLocation = row[7]
		}
		price := 0
		if len(row) > 8 {
			price, _ = strconv.Atoi(row[8])
		}

		category := row[2]
		if !models.ValidCategory(category) {
			category = models.CategorySpares
		}

		item := models.InventoryItem{
			ItemCode:        code,
			ItemName:        row[1],
			Category:        category,
			BaseUnit:        row[3],
			PurchaseUnit:    row[4],
			ConversionRatio: ratio,
			MinLevel:        minLevel,
			BinLocation:     binLocation,
			PurchasePrice:   price,
			CreatedBy:       actorID(ctx),
		}
		if err := c.DB.Create(&item).Error; err != nil {
			skipped++
			continue
		}
		imported++
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Imported %d item(s), skipped %d", imported, skipped),
	})
}
