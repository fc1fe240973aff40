package services

import (
	"errors"
	"fmt"
	"sync"

	"printstock/models"

	"gorm.io/gorm"
)

// IndentService raises purchase indents. Auto-generation reads ledger
// state only; it never mutates stock.
type IndentService struct {
	db       *gorm.DB
	notifier *Notifier
	mu       sync.Mutex
}

func NewIndentService(db *gorm.DB, notifier *Notifier) *IndentService {
	return &IndentService{db: db, notifier: notifier}
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return a
	}
	return (a + b - 1) / b
}

// replenishmentQty targets a buffer of twice the minimum level, rounded up
// to whole purchase units so the requested quantity is always an exact
// multiple of the conversion ratio.
func replenishmentQty(item *models.InventoryItem) int {
	target := item.MinLevel * 2
	units := ceilDiv(target, item.ConversionRatio)
	return units * item.ConversionRatio
}

// AutoGenerate raises one HIGH-urgency PENDING indent for every item whose
// total stock sits below its minimum level. Items that already have a
// pending indent are skipped, so repeated runs never duplicate.
func (s *IndentService) AutoGenerate(actorID int) ([]models.PurchaseRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var items []models.InventoryItem
	if err := s.db.Find(&items).Error; err != nil {
		return nil, err
	}

	var created []models.PurchaseRequest
	for i := range items {
		item := &items[i]
		if item.MinLevel <= 0 || item.TotalQty() >= item.MinLevel {
			continue
		}

		var pending int64
		if err := s.db.Model(&models.PurchaseRequest{}).
			Where("item_id = ? AND status = ?", item.ID, models.IndentPending).
			Count(&pending).Error; err != nil {
			return nil, err
		}
		if pending > 0 {
			continue
		}

		request := models.PurchaseRequest{
			ItemID:       item.ID,
			CurrentStock: item.TotalQty(),
			RequestedQty: replenishmentQty(item),
			Status:       models.IndentPending,
			Supplier:     item.LastSupplier,
			Urgency:      models.UrgencyHigh,
			AutoCreated:  true,
			CreatedBy:    actorID,
		}
		if err := s.db.Create(&request).Error; err != nil {
			return nil, err
		}
		created = append(created, request)
	}

	if len(created) > 0 {
		s.notifier.Emit(
			"Purchase indents raised",
			fmt.Sprintf("%d item(s) fell below minimum level; indents were generated", len(created)),
			models.SeverityInfo,
			models.RoleAdmin,
		)
	}

	return created, nil
}

type CreateIndentInput struct {
	ItemID   uint   `json:"item_id"`
	Qty      int    `json:"qty"`
	Unit     string `json:"unit"`
	Supplier string `json:"supplier"`
	Urgency  string `json:"urgency"`
	ActorID  int    `json:"-"`
}

// Create raises a manual indent.
func (s *IndentService) Create(in CreateIndentInput) (*models.PurchaseRequest, error) {
	if in.Qty <= 0 {
		return nil, opErr(KindValidation, "quantity must be positive")
	}
	switch in.Urgency {
	case "":
		in.Urgency = models.UrgencyMedium
	case models.UrgencyLow, models.UrgencyMedium, models.UrgencyHigh:
	default:
		return nil, opErr(KindValidation, "invalid urgency %q", in.Urgency)
	}

	var item models.InventoryItem
	if err := s.db.First(&item, in.ItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, opErr(KindNotFound, "item %d not found", in.ItemID)
		}
		return nil, err
	}

	baseQty, err := toBaseQty(&item, in.Qty, in.Unit)
	if err != nil {
		return nil, err
	}

	supplier := in.Supplier
	if supplier == "" {
		supplier = item.LastSupplier
	}

	request := models.PurchaseRequest{
		ItemID:       item.ID,
		CurrentStock: item.TotalQty(),
		RequestedQty: baseQty,
		Status:       models.IndentPending,
		Supplier:     supplier,
		Urgency:      in.Urgency,
		CreatedBy:    in.ActorID,
	}
	if err := s.db.Create(&request).Error; err != nil {
		return nil, err
	}

	return &request, nil
}

// Transition moves an indent one step along PENDING -> ORDERED -> RECEIVED.
// Any other jump is rejected.
func (s *IndentService) Transition(id uint, status string, actorID int) (*models.PurchaseRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var request models.PurchaseRequest
	if err := s.db.First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, opErr(KindNotFound, "purchase request %d not found", id)
		}
		return nil, err
	}

	valid := (request.Status == models.IndentPending && status == models.IndentOrdered) ||
		(request.Status == models.IndentOrdered && status == models.IndentReceived)
	if !valid {
		return nil, opErr(KindValidation, "cannot move indent from %s to %s", request.Status, status)
	}

	request.Status = status
	request.UpdatedBy = actorID
	if err := s.db.Save(&request).Error; err != nil {
		return nil, err
	}

	return &request, nil
}

// List returns indents, newest first, optionally filtered by status.
func (s *IndentService) List(status string) ([]models.PurchaseRequest, error) {
	q := s.db.Order("id desc")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var requests []models.PurchaseRequest
	if err := q.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}
