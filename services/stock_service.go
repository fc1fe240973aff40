package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"printstock/controllers/idgen"
	"printstock/models"
	"printstock/types"

	"gorm.io/gorm"
)

// StockService is the transfer & adjustment processor: the only component
// that mutates stock levels. Every entry point runs inside a per-item
// critical section and a database transaction, so the stock check, the
// level mutation and the ledger append are one atomic step. On any
// validation failure nothing is written.
type StockService struct {
	db       *gorm.DB
	notifier *Notifier
	locks    sync.Map // item ID -> *sync.Mutex
}

func NewStockService(db *gorm.DB, notifier *Notifier) *StockService {
	return &StockService{db: db, notifier: notifier}
}

func (s *StockService) lockFor(itemID uint) *sync.Mutex {
	v, _ := s.locks.LoadOrStore(itemID, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// toBaseQty converts a boundary quantity to base units. The conversion
// happens here and nowhere else.
func toBaseQty(item *models.InventoryItem, qty int, unit string) (int, error) {
	switch unit {
	case "", models.UnitBase:
		return qty, nil
	case models.UnitPurchase:
		return qty * item.ConversionRatio, nil
	}
	return 0, opErr(KindValidation, "unknown quantity unit %q", unit)
}

func applyDelta(item *models.InventoryItem, location string, delta int) {
	if location == models.LocationShop {
		item.ShopQty += delta
	} else {
		item.GodownQty += delta
	}
}

func (s *StockService) loadItem(tx *gorm.DB, itemID uint) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := tx.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, opErr(KindNotFound, "item %d not found", itemID)
		}
		return nil, err
	}
	return &item, nil
}

func newMovement(item *models.InventoryItem, movType string, qty int, actorID int) models.StockMovement {
	return models.StockMovement{
		ID:          types.SnowflakeID(idgen.GenerateID()),
		ItemID:      item.ID,
		Type:        movType,
		Quantity:    qty,
		PerformedBy: actorID,
		CreatedAt:   time.Now(),
	}
}

// lowStockCheck emits a warning once an item has fallen below its minimum
// level. Called after commit only.
func (s *StockService) lowStockCheck(item *models.InventoryItem) {
	if item.MinLevel > 0 && item.TotalQty() < item.MinLevel {
		s.notifier.Emit(
			"Low stock: "+item.ItemName,
			fmt.Sprintf("%s is down to %d %s (minimum %d)", item.ItemName, item.TotalQty(), item.BaseUnit, item.MinLevel),
			models.SeverityWarning,
			models.RoleAdmin,
		)
	}
}

type TransferInput struct {
	ItemID  uint   `json:"item_id"`
	From    string `json:"from"`
	To      string `json:"to"`
	Qty     int    `json:"qty"`
	Unit    string `json:"unit"`
	Notes   string `json:"notes"`
	ActorID int    `json:"-"`
}

// Transfer moves stock between the two locations of one item. One critical
// section, not two independent level writes.
func (s *StockService) Transfer(in TransferInput) (*models.StockMovement, error) {
	if in.Qty <= 0 {
		return nil, opErr(KindValidation, "quantity must be positive")
	}
	if !models.ValidLocation(in.From) || !models.ValidLocation(in.To) {
		return nil, opErr(KindValidation, "invalid location")
	}
	if in.From == in.To {
		return nil, opErr(KindValidation, "source and destination location are the same")
	}

	mu := s.lockFor(in.ItemID)
	mu.Lock()
	defer mu.Unlock()

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	item, err := s.loadItem(tx, in.ItemID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	baseQty, err := toBaseQty(item, in.Qty, in.Unit)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if item.QtyAt(in.From) < baseQty {
		tx.Rollback()
		return nil, opErr(KindInsufficientStock, "only %d %s available at %s", item.QtyAt(in.From), item.BaseUnit, in.From)
	}

	now := time.Now()
	applyDelta(item, in.From, -baseQty)
	applyDelta(item, in.To, baseQty)
	item.LastMovedAt = &now
	item.UpdatedBy = in.ActorID

	if err := tx.Save(item).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	movement := newMovement(item, models.MovementTransfer, baseQty, in.ActorID)
	movement.FromLocation = in.From
	movement.ToLocation = in.To
	movement.Notes = in.Notes

	if err := tx.Create(&movement).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &movement, nil
}

type ReceiveInput struct {
	ItemID     uint   `json:"item_id"`
	Qty        int    `json:"qty"`
	Unit       string `json:"unit"`
	Supplier   string `json:"supplier"`
	InvoiceRef string `json:"invoice_ref"`
	UnitCost   int    `json:"unit_cost"`
	Location   string `json:"location"`
	ActorID    int    `json:"-"`
}

// ReceiveGoods books an inward receipt, re-blending the weighted-average
// purchase cost against the pre-receipt stock.
func (s *StockService) ReceiveGoods(in ReceiveInput) (*models.StockMovement, error) {
	if in.Qty <= 0 {
		return nil, opErr(KindValidation, "quantity must be positive")
	}
	if in.UnitCost < 0 {
		return nil, opErr(KindValidation, "unit cost cannot be negative")
	}
	if !models.ValidLocation(in.Location) {
		return nil, opErr(KindValidation, "invalid location")
	}

	mu := s.lockFor(in.ItemID)
	mu.Lock()
	defer mu.Unlock()

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	item, err := s.loadItem(tx, in.ItemID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	baseQty, err := toBaseQty(item, in.Qty, in.Unit)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	now := time.Now()
	item.PurchasePrice = NextAverageCost(item.TotalQty(), item.ConversionRatio, baseQty, item.PurchasePrice, in.UnitCost)
	applyDelta(item, in.Location, baseQty)
	item.LastCost = in.UnitCost
	if in.Supplier != "" {
		item.LastSupplier = in.Supplier
	}
	item.LastMovedAt = &now
	item.UpdatedBy = in.ActorID

	if err := tx.Save(item).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	movement := newMovement(item, models.MovementInward, baseQty, in.ActorID)
	movement.ToLocation = in.Location
	movement.RefNo = in.InvoiceRef
	movement.UnitCost = in.UnitCost
	movement.Notes = "Received from " + in.Supplier

	if err := tx.Create(&movement).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &movement, nil
}

type IssueInput struct {
	ItemID      uint   `json:"item_id"`
	Qty         int    `json:"qty"`
	Unit        string `json:"unit"`
	Destination string `json:"destination"`
	IssueType   string `json:"issue_type"`
	Reason      string `json:"reason"`
	Location    string `json:"location"`
	ActorID     int    `json:"-"`
}

// IssueMaterial takes stock out for production or books it as wastage.
// Wastage requires a reason; this is enforced here, not only at the API.
func (s *StockService) IssueMaterial(in IssueInput) (*models.StockMovement, error) {
	if in.Qty <= 0 {
		return nil, opErr(KindValidation, "quantity must be positive")
	}
	if !models.ValidLocation(in.Location) {
		return nil, opErr(KindValidation, "invalid location")
	}
	if in.IssueType != models.IssueProduction && in.IssueType != models.IssueWastage {
		return nil, opErr(KindValidation, "invalid issue type %q", in.IssueType)
	}
	if in.IssueType == models.IssueWastage && in.Reason == "" {
		return nil, opErr(KindValidation, "a reason is required for wastage")
	}

	mu := s.lockFor(in.ItemID)
	mu.Lock()
	defer mu.Unlock()

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	item, err := s.loadItem(tx, in.ItemID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	baseQty, err := toBaseQty(item, in.Qty, in.Unit)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if item.QtyAt(in.Location) < baseQty {
		tx.Rollback()
		return nil, opErr(KindInsufficientStock, "only %d %s available at %s", item.QtyAt(in.Location), item.BaseUnit, in.Location)
	}

	now := time.Now()
	applyDelta(item, in.Location, -baseQty)
	item.LastMovedAt = &now
	item.UpdatedBy = in.ActorID

	if err := tx.Save(item).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	movType := models.MovementOutward
	if in.IssueType == models.IssueWastage {
		movType = models.MovementDamageLoss
	}
	movement := newMovement(item, movType, baseQty, in.ActorID)
	movement.FromLocation = in.Location
	movement.Reason = in.Reason
	movement.Notes = in.Destination

	if err := tx.Create(&movement).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.lowStockCheck(item)

	return &movement, nil
}

type ReturnInput struct {
	ItemID   uint   `json:"item_id"`
	Qty      int    `json:"qty"`
	Unit     string `json:"unit"`
	Origin   string `json:"origin"`
	Location string `json:"location"`
	ActorID  int    `json:"-"`
}

// ReturnMaterial books material coming back from production as an inward
// movement tagged as a return.
func (s *StockService) ReturnMaterial(in ReturnInput) (*models.StockMovement, error) {
	if in.Qty <= 0 {
		return nil, opErr(KindValidation, "quantity must be positive")
	}
	if !models.ValidLocation(in.Location) {
		return nil, opErr(KindValidation, "invalid location")
	}

	mu := s.lockFor(in.ItemID)
	mu.Lock()
	defer mu.Unlock()

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	item, err := s.loadItem(tx, in.ItemID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	baseQty, err := toBaseQty(item, in.Qty, in.Unit)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	now := time.Now()
	applyDelta(item, in.Location, baseQty)
	item.LastMovedAt = &now
	item.UpdatedBy = in.ActorID

	if err := tx.Save(item).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	movement := newMovement(item, models.MovementInward, baseQty, in.ActorID)
	movement.ToLocation = in.Location
	movement.RefNo = "RETURN"
	movement.Notes = "Returned from " + in.Origin

	if err := tx.Create(&movement).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return &movement, nil
}

type AdjustInput struct {
	ItemID    uint   `json:"item_id"`
	Location  string `json:"location"`
	Type      string `json:"type"`
	Qty       int    `json:"qty"`
	Unit      string `json:"unit"`
	Reason    string `json:"reason"`
	RefNo     string `json:"ref_no"`
	FromAudit bool   `json:"-"`
	ActorID   int    `json:"-"`
}

// Adjust applies a stock correction. ADD books inward; REMOVE books a loss
// and files a scrap report valued at the current weighted-average cost.
// Audit corrections come through here too, tagged with the audit code.
func (s *StockService) Adjust(in AdjustInput) (*models.StockMovement, error) {
	if in.Qty <= 0 {
		return nil, opErr(KindValidation, "quantity must be positive")
	}
	if !models.ValidLocation(in.Location) {
		return nil, opErr(KindValidation, "invalid location")
	}
	if in.Type != models.AdjustmentAdd && in.Type != models.AdjustmentRemove {
		return nil, opErr(KindValidation, "invalid adjustment type %q", in.Type)
	}

	mu := s.lockFor(in.ItemID)
	mu.Lock()
	defer mu.Unlock()

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	item, err := s.loadItem(tx, in.ItemID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	baseQty, err := toBaseQty(item, in.Qty, in.Unit)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if in.Type == models.AdjustmentRemove && item.QtyAt(in.Location) < baseQty {
		tx.Rollback()
		return nil, opErr(KindAdjustmentUnderflow, "removing %d would drive %s below zero", baseQty, in.Location)
	}

	now := time.Now()
	movType := models.MovementInward
	delta := baseQty
	if in.Type == models.AdjustmentRemove {
		movType = models.MovementDamageLoss
		delta = -baseQty
	}
	if in.FromAudit {
		movType = models.MovementAuditAdjustment
	}

	applyDelta(item, in.Location, delta)
	item.LastMovedAt = &now
	item.UpdatedBy = in.ActorID

	if err := tx.Save(item).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	movement := newMovement(item, movType, baseQty, in.ActorID)
	movement.Reason = in.Reason
	movement.RefNo = in.RefNo
	if in.Type == models.AdjustmentAdd {
		movement.ToLocation = in.Location
	} else {
		movement.FromLocation = in.Location
	}

	if err := tx.Create(&movement).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if in.Type == models.AdjustmentRemove {
		reason := models.ScrapOther
		if models.ValidScrapReason(in.Reason) {
			reason = in.Reason
		}
		scrap := models.ScrapReport{
			ItemID:      item.ID,
			Quantity:    baseQty,
			Reason:      reason,
			CostOfWaste: ValueOfBaseQty(baseQty, item.ConversionRatio, item.PurchasePrice),
			ReportedBy:  in.ActorID,
		}
		if err := tx.Create(&scrap).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	if in.Type == models.AdjustmentRemove {
		s.lowStockCheck(item)
	}

	return &movement, nil
}
