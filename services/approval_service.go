package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"printstock/models"

	"gorm.io/gorm"
)

// ApprovalService queues adjustment requests and gates their execution
// through the stock service. Resolved requests keep their terminal status
// instead of being deleted. Approve and reject are serialized so a request
// resolved by one actor is a safe no-op for everyone else.
type ApprovalService struct {
	db       *gorm.DB
	stock    *StockService
	notifier *Notifier
	mu       sync.Mutex
}

func NewApprovalService(db *gorm.DB, stock *StockService, notifier *Notifier) *ApprovalService {
	return &ApprovalService{db: db, stock: stock, notifier: notifier}
}

type RequestAdjustmentInput struct {
	ItemID   uint   `json:"item_id"`
	Qty      int    `json:"qty"`
	Unit     string `json:"unit"`
	Type     string `json:"type"`
	Location string `json:"location"`
	Reason   string `json:"reason"`
	ActorID  int    `json:"-"`
}

// Request enqueues a pending adjustment, pricing it at the current
// weighted-average cost, and notifies the admins.
func (a *ApprovalService) Request(in RequestAdjustmentInput) (*models.PendingAdjustment, error) {
	if in.Qty <= 0 {
		return nil, opErr(KindValidation, "quantity must be positive")
	}
	if in.Type != models.AdjustmentAdd && in.Type != models.AdjustmentRemove {
		return nil, opErr(KindValidation, "invalid adjustment type %q", in.Type)
	}
	if !models.ValidLocation(in.Location) {
		return nil, opErr(KindValidation, "invalid location")
	}

	var item models.InventoryItem
	if err := a.db.First(&item, in.ItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, opErr(KindNotFound, "item %d not found", in.ItemID)
		}
		return nil, err
	}

	baseQty, err := toBaseQty(&item, in.Qty, in.Unit)
	if err != nil {
		return nil, err
	}

	request := models.PendingAdjustment{
		ItemID:      item.ID,
		Qty:         in.Qty,
		Unit:        in.Unit,
		Type:        in.Type,
		Location:    in.Location,
		Reason:      in.Reason,
		Cost:        ValueOfBaseQty(baseQty, item.ConversionRatio, item.PurchasePrice),
		Status:      models.AdjustmentPending,
		RequestedBy: in.ActorID,
	}
	if request.Unit == "" {
		request.Unit = models.UnitBase
	}

	if err := a.db.Create(&request).Error; err != nil {
		return nil, err
	}

	a.notifier.Emit(
		"Adjustment approval needed",
		fmt.Sprintf("%s %d x %s for %s requested: %s", in.Type, in.Qty, item.ItemName, in.Location, in.Reason),
		models.SeverityInfo,
		models.RoleAdmin,
	)

	return &request, nil
}

func (a *ApprovalService) loadPending(id uint) (*models.PendingAdjustment, error) {
	var request models.PendingAdjustment
	if err := a.db.First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, opErr(KindNotFound, "adjustment request %d not found", id)
		}
		return nil, err
	}
	if request.Status != models.AdjustmentPending {
		return nil, opErr(KindApprovalConflict, "adjustment request %d already %s", id, request.Status)
	}
	return &request, nil
}

// Approve executes the stored adjustment through the stock service. Only
// on success is the request marked APPROVED. If stock moved since the
// request and the adjustment now fails, the request stays PENDING and the
// admins get a warning with the failure reason.
func (a *ApprovalService) Approve(id uint, actorID int) (*models.PendingAdjustment, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	request, err := a.loadPending(id)
	if err != nil {
		return nil, err
	}

	_, err = a.stock.Adjust(AdjustInput{
		ItemID:   request.ItemID,
		Location: request.Location,
		Type:     request.Type,
		Qty:      request.Qty,
		Unit:     request.Unit,
		Reason:   request.Reason,
		RefNo:    fmt.Sprintf("ADJ-%d", request.ID),
		ActorID:  actorID,
	})
	if err != nil {
		a.notifier.Emit(
			"Approved adjustment could not be executed",
			fmt.Sprintf("Request %d stays pending: %s", request.ID, err.Error()),
			models.SeverityWarning,
			models.RoleAdmin,
		)
		return nil, err
	}

	now := time.Now()
	request.Status = models.AdjustmentApproved
	request.ResolvedBy = actorID
	request.ResolvedAt = &now
	if err := a.db.Save(request).Error; err != nil {
		return nil, err
	}

	a.notifier.Emit(
		"Adjustment approved",
		fmt.Sprintf("Request %d (%s %d) was approved and applied", request.ID, request.Type, request.Qty),
		models.SeveritySuccess,
		models.RoleStockKeeper,
	)

	return request, nil
}

// Reject resolves the request without touching stock.
func (a *ApprovalService) Reject(id uint, actorID int) (*models.PendingAdjustment, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	request, err := a.loadPending(id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	request.Status = models.AdjustmentRejected
	request.ResolvedBy = actorID
	request.ResolvedAt = &now
	if err := a.db.Save(request).Error; err != nil {
		return nil, err
	}

	a.notifier.Emit(
		"Adjustment rejected",
		fmt.Sprintf("Request %d (%s %d) was rejected", request.ID, request.Type, request.Qty),
		models.SeverityInfo,
		models.RoleStockKeeper,
	)

	return request, nil
}

// Pending lists unresolved requests, oldest first.
func (a *ApprovalService) Pending() ([]models.PendingAdjustment, error) {
	var requests []models.PendingAdjustment
	if err := a.db.Where("status = ?", models.AdjustmentPending).Order("id asc").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// History lists resolved requests, newest first.
func (a *ApprovalService) History() ([]models.PendingAdjustment, error) {
	var requests []models.PendingAdjustment
	if err := a.db.Where("status <> ?", models.AdjustmentPending).Order("resolved_at desc").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}
