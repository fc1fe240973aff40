package services

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"printstock/models"

	"gorm.io/gorm"
)

// AuditService runs the two-phase stock audit: counts are collected
// without touching stock, variances are reviewed, and on confirmation each
// nonzero variance is posted as exactly one corrective adjustment through
// the stock service.
type AuditService struct {
	db       *gorm.DB
	stock    *StockService
	notifier *Notifier
	mu       sync.Mutex
}

func NewAuditService(db *gorm.DB, stock *StockService, notifier *Notifier) *AuditService {
	return &AuditService{db: db, stock: stock, notifier: notifier}
}

func (s *AuditService) generateAuditCode() (string, error) {
	var lastAudit models.StockAudit

	if err := s.db.Last(&lastAudit).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	currentYear := time.Now().Format("2006")
	currentMonth := time.Now().Format("01")
	currentDay := time.Now().Format("02")

	var code string
	if lastAudit.Code != "" && len(lastAudit.Code) >= 13 && currentDay == lastAudit.Code[9:11] {
		lastSeq, _ := strconv.Atoi(lastAudit.Code[len(lastAudit.Code)-4:])
		code = fmt.Sprintf("AUD%s%s%s%04d", currentYear, currentMonth, currentDay, lastSeq+1)
	} else {
		code = fmt.Sprintf("AUD%s%s%s%04d", currentYear, currentMonth, currentDay, 1)
	}

	return code, nil
}

// Start opens an audit over the given items (all items when none are
// given), snapshotting the system quantity per item. Nothing is mutated.
func (s *AuditService) Start(itemIDs []uint, actorID int) (*models.StockAudit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var items []models.InventoryItem
	q := s.db
	if len(itemIDs) > 0 {
		q = q.Where("id IN ?", itemIDs)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, opErr(KindValidation, "no items to audit")
	}

	code, err := s.generateAuditCode()
	if err != nil {
		return nil, err
	}

	audit := models.StockAudit{
		Code:      code,
		Status:    models.AuditInProgress,
		CreatedBy: actorID,
	}
	if err := s.db.Create(&audit).Error; err != nil {
		return nil, err
	}

	findings := make([]models.StockAuditFinding, 0, len(items))
	for _, item := range items {
		findings = append(findings, models.StockAuditFinding{
			StockAuditID: audit.ID,
			ItemID:       item.ID,
			SystemQty:    item.TotalQty(),
		})
	}
	if err := s.db.Create(&findings).Error; err != nil {
		return nil, err
	}
	audit.Findings = findings

	return &audit, nil
}

func (s *AuditService) loadOpenAudit(code string) (*models.StockAudit, error) {
	var audit models.StockAudit
	if err := s.db.Preload("Findings").First(&audit, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, opErr(KindNotFound, "audit %s not found", code)
		}
		return nil, err
	}
	if audit.Status != models.AuditInProgress {
		return nil, opErr(KindApprovalConflict, "audit %s is already %s", code, audit.Status)
	}
	return &audit, nil
}

// RecordCount stores the physical count for one item of an open audit.
// Re-counting overwrites the previous count.
func (s *AuditService) RecordCount(code string, itemID uint, physicalQty int, notes string, actorID int) (*models.StockAuditFinding, error) {
	if physicalQty < 0 {
		return nil, opErr(KindValidation, "physical quantity cannot be negative")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	audit, err := s.loadOpenAudit(code)
	if err != nil {
		return nil, err
	}

	var finding models.StockAuditFinding
	if err := s.db.First(&finding, "stock_audit_id = ? AND item_id = ?", audit.ID, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, opErr(KindNotFound, "item %d is not part of audit %s", itemID, code)
		}
		return nil, err
	}

	finding.PhysicalQty = physicalQty
	finding.Counted = true
	finding.Variance = physicalQty - finding.SystemQty
	finding.Notes = notes
	finding.CountedBy = actorID
	if err := s.db.Save(&finding).Error; err != nil {
		return nil, err
	}

	return &finding, nil
}

type VarianceLine struct {
	ItemID        uint   `json:"item_id"`
	ItemCode      string `json:"item_code"`
	ItemName      string `json:"item_name"`
	SystemQty     int    `json:"system_qty"`
	PhysicalQty   int    `json:"physical_qty"`
	Variance      int    `json:"variance"`
	EstimatedLoss int    `json:"estimated_loss"`
}

// Review lists the nonzero variances of an audit. Negative variances carry
// an estimated monetary loss at the item's weighted-average cost. Pure
// read; running it twice over unchanged counts yields identical lines.
func (s *AuditService) Review(code string) ([]VarianceLine, error) {
	var audit models.StockAudit
	if err := s.db.Preload("Findings").First(&audit, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, opErr(KindNotFound, "audit %s not found", code)
		}
		return nil, err
	}

	lines := []VarianceLine{}
	for _, finding := range audit.Findings {
		if !finding.Counted || finding.Variance == 0 {
			continue
		}

		var item models.InventoryItem
		if err := s.db.First(&item, finding.ItemID).Error; err != nil {
			return nil, err
		}

		line := VarianceLine{
			ItemID:      item.ID,
			ItemCode:    item.ItemCode,
			ItemName:    item.ItemName,
			SystemQty:   finding.SystemQty,
			PhysicalQty: finding.PhysicalQty,
			Variance:    finding.Variance,
		}
		if finding.Variance < 0 {
			line.EstimatedLoss = ValueOfBaseQty(-finding.Variance, item.ConversionRatio, item.PurchasePrice)
		}
		lines = append(lines, line)
	}

	return lines, nil
}

type AuditCorrection struct {
	ItemID   uint   `json:"item_id"`
	Variance int    `json:"variance"`
	Posted   bool   `json:"posted"`
	Error    string `json:"error,omitempty"`
}

// Confirm posts one corrective adjustment per counted nonzero variance and
// completes the audit. Corrections are independent item-level mutations:
// a failing item does not roll back the others. An all-zero audit is still
// a valid, recorded event; it completes with zero adjustments.
func (s *AuditService) Confirm(code string, actorID int) ([]AuditCorrection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	audit, err := s.loadOpenAudit(code)
	if err != nil {
		return nil, err
	}

	corrections := []AuditCorrection{}
	for _, finding := range audit.Findings {
		if !finding.Counted || finding.Variance == 0 {
			continue
		}

		adjType := models.AdjustmentAdd
		qty := finding.Variance
		location := models.LocationGodown
		if finding.Variance < 0 {
			adjType = models.AdjustmentRemove
			qty = -finding.Variance

			// Shortages are taken from the godown unless only the shop
			// floor can absorb them.
			var item models.InventoryItem
			if err := s.db.First(&item, finding.ItemID).Error; err == nil && item.GodownQty < qty && item.ShopQty >= qty {
				location = models.LocationShop
			}
		}

		correction := AuditCorrection{ItemID: finding.ItemID, Variance: finding.Variance}
		_, err := s.stock.Adjust(AdjustInput{
			ItemID:    finding.ItemID,
			Location:  location,
			Type:      adjType,
			Qty:       qty,
			Unit:      models.UnitBase,
			Reason:    "Audit Correction",
			RefNo:     audit.Code,
			FromAudit: true,
			ActorID:   actorID,
		})
		if err != nil {
			correction.Error = err.Error()
		} else {
			correction.Posted = true
		}
		corrections = append(corrections, correction)
	}

	if err := s.db.Model(&models.StockAudit{}).Where("id = ?", audit.ID).
		Updates(map[string]interface{}{"status": models.AuditCompleted, "updated_by": actorID}).Error; err != nil {
		return nil, err
	}

	s.notifier.Emit(
		"Stock audit completed",
		fmt.Sprintf("Audit %s completed with %d correction(s)", audit.Code, len(corrections)),
		models.SeverityInfo,
		models.RoleAdmin,
	)

	return corrections, nil
}

// Get returns an audit with its findings.
func (s *AuditService) Get(code string) (*models.StockAudit, error) {
	var audit models.StockAudit
	if err := s.db.Preload("Findings").First(&audit, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, opErr(KindNotFound, "audit %s not found", code)
		}
		return nil, err
	}
	return &audit, nil
}

// List returns all audits, newest first.
func (s *AuditService) List() ([]models.StockAudit, error) {
	var audits []models.StockAudit
	if err := s.db.Order("id desc").Find(&audits).Error; err != nil {
		return nil, err
	}
	return audits, nil
}
