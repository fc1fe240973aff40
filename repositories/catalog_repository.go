package repositories

import (
	"errors"

	"printstock/models"
	"printstock/services"

	"gorm.io/gorm"
)

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db}
}

func (r *CatalogRepository) GetItems() ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := r.db.Order("item_code asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *CatalogRepository) GetItemByID(id uint) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *CatalogRepository) GetItemByCode(code string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.First(&item, "item_code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

type lowStockItem struct {
	ID       uint   `json:"id"`
	ItemCode string `json:"item_code"`
	ItemName string `json:"item_name"`
	Category string `json:"category"`
	TotalQty int    `json:"total_qty"`
	MinLevel int    `json:"min_level"`
	BaseUnit string `json:"base_unit"`
}

func (r *CatalogRepository) GetLowStockItems() ([]lowStockItem, error) {

	sqlLowStock := `select id, item_code, item_name, category,
	godown_qty + shop_qty as total_qty, min_level, base_unit
	from inventory_items
	where deleted_at is null and min_level > 0
	and godown_qty + shop_qty < min_level
	order by item_code
	`

	var items []lowStockItem
	if err := r.db.Raw(sqlLowStock).Scan(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}

type movementRow struct {
	ID           int64  `json:"id,string"`
	ItemID       uint   `json:"item_id"`
	ItemCode     string `json:"item_code"`
	ItemName     string `json:"item_name"`
	Type         string `json:"type"`
	Quantity     int    `json:"quantity"`
	FromLocation string `json:"from_location"`
	ToLocation   string `json:"to_location"`
	RefNo        string `json:"ref_no"`
	UnitCost     int    `json:"unit_cost"`
	Reason       string `json:"reason"`
	Notes        string `json:"notes"`
	PerformedBy  int    `json:"performed_by"`
	CreatedAt    string `json:"created_at"`
}

type MovementFilter struct {
	ItemID uint   `json:"item_id"`
	Type   string `json:"type"`
	Limit  int    `json:"limit"`
}

// GetMovements reads the ledger joined with the catalog so display fields
// come by lookup instead of being duplicated at write time.
func (r *CatalogRepository) GetMovements(filter MovementFilter) ([]movementRow, error) {

	q := r.db.Table("stock_movements a").
		Select(`a.id, a.item_id, b.item_code, b.item_name, a.type, a.quantity,
			a.from_location, a.to_location, a.ref_no, a.unit_cost, a.reason, a.notes,
			a.performed_by, a.created_at`).
		Joins("inner join inventory_items b on a.item_id = b.id").
		Order("a.id desc")

	if filter.ItemID != 0 {
		q = q.Where("a.item_id = ?", filter.ItemID)
	}
	if filter.Type != "" {
		q = q.Where("a.type = ?", filter.Type)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var rows []movementRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

type valuationRow struct {
	ID            uint   `json:"id"`
	ItemCode      string `json:"item_code"`
	ItemName      string `json:"item_name"`
	Category      string `json:"category"`
	GodownQty     int    `json:"godown_qty"`
	ShopQty       int    `json:"shop_qty"`
	PurchasePrice int    `json:"purchase_price"`
	StockValue    int    `json:"stock_value"`
}

// GetStockValuation prices every item's total stock at its current
// weighted-average cost.
func (r *CatalogRepository) GetStockValuation() ([]valuationRow, int, error) {
	items, err := r.GetItems()
	if err != nil {
		return nil, 0, err
	}

	rows := make([]valuationRow, 0, len(items))
	total := 0
	for _, item := range items {
		value := services.ValueOfBaseQty(item.TotalQty(), item.ConversionRatio, item.PurchasePrice)
		rows = append(rows, valuationRow{
			ID:            item.ID,
			ItemCode:      item.ItemCode,
			ItemName:      item.ItemName,
			Category:      item.Category,
			GodownQty:     item.GodownQty,
			ShopQty:       item.ShopQty,
			PurchasePrice: item.PurchasePrice,
			StockValue:    value,
		})
		total += value
	}

	return rows, total, nil
}

type scrapSummaryRow struct {
	Reason    string `json:"reason"`
	Entries   int    `json:"entries"`
	TotalQty  int    `json:"total_qty"`
	TotalCost int    `json:"total_cost"`
}

func (r *CatalogRepository) GetScrapSummary() ([]scrapSummaryRow, error) {

	sqlScrap := `select reason, count(*) as entries,
	sum(quantity) as total_qty, sum(cost_of_waste) as total_cost
	from scrap_reports
	where deleted_at is null
	group by reason
	order by total_cost desc
	`

	var rows []scrapSummaryRow
	if err := r.db.Raw(sqlScrap).Scan(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}
