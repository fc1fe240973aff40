package services

import (
	"fmt"
	"testing"
	"time"

	"printstock/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuditService(t *testing.T) (*gorm.DB, *AuditService) {
	t.Helper()
	db, stock := newStockService(t)
	return db, NewAuditService(db, stock, NewNotifier(db))
}

func TestStartAuditSnapshotsSystemQty(t *testing.T) {
	db, audits := newAuditService(t)
	paper := createTestItem(t, db)
	ink := createTestItem(t, db, func(i *models.InventoryItem) {
		i.ItemCode = "INK-TEST"
		i.ItemName = "Test Ink"
		i.Category = models.CategoryInk
		i.GodownQty = 30
		i.ShopQty = 5
	})

	audit, err := audits.Start(nil, 1)
	require.NoError(t, err)

	assert.Equal(t, models.AuditInProgress, audit.Status)
	assert.Contains(t, audit.Code, "AUD"+time.Now().Format("20060102"))
	require.Len(t, audit.Findings, 2)

	byItem := map[uint]models.StockAuditFinding{}
	for _, f := range audit.Findings {
		byItem[f.ItemID] = f
	}
	assert.Equal(t, 100, byItem[paper.ID].SystemQty)
	assert.Equal(t, 35, byItem[ink.ID].SystemQty)
	assert.False(t, byItem[paper.ID].Counted)
}

func TestStartAuditWithItemSubset(t *testing.T) {
	db, audits := newAuditService(t)
	paper := createTestItem(t, db)
	createTestItem(t, db, func(i *models.InventoryItem) {
		i.ItemCode = "INK-TEST"
	})

	audit, err := audits.Start([]uint{paper.ID}, 1)
	require.NoError(t, err)
	require.Len(t, audit.Findings, 1)
	assert.Equal(t, paper.ID, audit.Findings[0].ItemID)

	_, err = audits.Start([]uint{9999}, 1)
	assert.True(t, IsKind(err, KindValidation))
}

func TestAuditCodesIncrementWithinDay(t *testing.T) {
	db, audits := newAuditService(t)
	item := createTestItem(t, db)

	first, err := audits.Start([]uint{item.ID}, 1)
	require.NoError(t, err)
	second, err := audits.Start([]uint{item.ID}, 1)
	require.NoError(t, err)

	prefix := "AUD" + time.Now().Format("20060102")
	assert.Equal(t, prefix+"0001", first.Code)
	assert.Equal(t, prefix+"0002", second.Code)
}

func TestRecordCountOverwrites(t *testing.T) {
	db, audits := newAuditService(t)
	item := createTestItem(t, db)

	audit, err := audits.Start([]uint{item.ID}, 1)
	require.NoError(t, err)

	finding, err := audits.RecordCount(audit.Code, item.ID, 90, "first pass", 2)
	require.NoError(t, err)
	assert.True(t, finding.Counted)
	assert.Equal(t, -10, finding.Variance)

	// A re-count replaces the earlier one.
	finding, err = audits.RecordCount(audit.Code, item.ID, 105, "recounted", 2)
	require.NoError(t, err)
	assert.Equal(t, 5, finding.Variance)

	var stored []models.StockAuditFinding
	require.NoError(t, db.Find(&stored, "stock_audit_id = ?", audit.ID).Error)
	require.Len(t, stored, 1)
	assert.Equal(t, 105, stored[0].PhysicalQty)

	_, err = audits.RecordCount(audit.Code, item.ID, -1, "", 2)
	assert.True(t, IsKind(err, KindValidation))

	_, err = audits.RecordCount(audit.Code, 9999, 10, "", 2)
	assert.True(t, IsKind(err, KindNotFound))

	_, err = audits.RecordCount("AUD00000000", item.ID, 10, "", 2)
	assert.True(t, IsKind(err, KindNotFound))
}

func TestReviewListsNonzeroVariances(t *testing.T) {
	db, audits := newAuditService(t)
	short := createTestItem(t, db)
	exact := createTestItem(t, db, func(i *models.InventoryItem) {
		i.ItemCode = "PPR-EXACT"
	})
	over := createTestItem(t, db, func(i *models.InventoryItem) {
		i.ItemCode = "PPR-OVER"
	})

	audit, err := audits.Start(nil, 1)
	require.NoError(t, err)

	_, err = audits.RecordCount(audit.Code, short.ID, 80, "", 2)
	require.NoError(t, err)
	_, err = audits.RecordCount(audit.Code, exact.ID, 100, "", 2)
	require.NoError(t, err)
	_, err = audits.RecordCount(audit.Code, over.ID, 103, "", 2)
	require.NoError(t, err)

	lines, err := audits.Review(audit.Code)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	byItem := map[uint]VarianceLine{}
	for _, line := range lines {
		byItem[line.ItemID] = line
	}

	shortLine := byItem[short.ID]
	assert.Equal(t, -20, shortLine.Variance)
	// 20 sheets missing at ratio 10 and avg cost 100 per ream.
	assert.Equal(t, 200, shortLine.EstimatedLoss)

	overLine := byItem[over.ID]
	assert.Equal(t, 3, overLine.Variance)
	assert.Equal(t, 0, overLine.EstimatedLoss)

	// Review is read-only and repeatable.
	again, err := audits.Review(audit.Code)
	require.NoError(t, err)
	assert.Equal(t, lines, again)
	assert.Equal(t, 100, reloadItem(t, db, short.ID).GodownQty)
}

func TestConfirmPostsOneCorrectionPerVariance(t *testing.T) {
	db, audits := newAuditService(t)
	short := createTestItem(t, db)
	over := createTestItem(t, db, func(i *models.InventoryItem) {
		i.ItemCode = "PPR-OVER"
	})

	audit, err := audits.Start(nil, 1)
	require.NoError(t, err)

	_, err = audits.RecordCount(audit.Code, short.ID, 85, "", 2)
	require.NoError(t, err)
	_, err = audits.RecordCount(audit.Code, over.ID, 110, "", 2)
	require.NoError(t, err)

	corrections, err := audits.Confirm(audit.Code, 1)
	require.NoError(t, err)
	require.Len(t, corrections, 2)
	for _, c := range corrections {
		assert.True(t, c.Posted, "correction for item %d", c.ItemID)
	}

	assert.Equal(t, 85, reloadItem(t, db, short.ID).GodownQty)
	assert.Equal(t, 110, reloadItem(t, db, over.ID).GodownQty)

	// One ledger entry per corrected item, tagged with the audit code.
	var movements []models.StockMovement
	require.NoError(t, db.Find(&movements, "ref_no = ?", audit.Code).Error)
	require.Len(t, movements, 2)
	for _, m := range movements {
		assert.Equal(t, models.MovementAuditAdjustment, m.Type)
		assert.Equal(t, "Audit Correction", m.Reason)
	}

	stored, err := audits.Get(audit.Code)
	require.NoError(t, err)
	assert.Equal(t, models.AuditCompleted, stored.Status)
}

func TestConfirmShortageFallsBackToShop(t *testing.T) {
	db, audits := newAuditService(t)
	item := createTestItem(t, db, func(i *models.InventoryItem) {
		i.GodownQty = 5
		i.ShopQty = 95
	})

	audit, err := audits.Start([]uint{item.ID}, 1)
	require.NoError(t, err)

	// 60 short; the godown only holds 5, the shop floor absorbs it.
	_, err = audits.RecordCount(audit.Code, item.ID, 40, "", 2)
	require.NoError(t, err)

	corrections, err := audits.Confirm(audit.Code, 1)
	require.NoError(t, err)
	require.Len(t, corrections, 1)
	assert.True(t, corrections[0].Posted)

	got := reloadItem(t, db, item.ID)
	assert.Equal(t, 5, got.GodownQty)
	assert.Equal(t, 35, got.ShopQty)
	assert.Equal(t, 40, got.TotalQty())
}

func TestConfirmAllZeroAuditCompletesCleanly(t *testing.T) {
	db, audits := newAuditService(t)
	item := createTestItem(t, db)

	audit, err := audits.Start([]uint{item.ID}, 1)
	require.NoError(t, err)

	_, err = audits.RecordCount(audit.Code, item.ID, 100, "", 2)
	require.NoError(t, err)

	corrections, err := audits.Confirm(audit.Code, 1)
	require.NoError(t, err)
	assert.Empty(t, corrections)

	stored, err := audits.Get(audit.Code)
	require.NoError(t, err)
	assert.Equal(t, models.AuditCompleted, stored.Status)
	assert.EqualValues(t, 0, countMovements(t, db, item.ID))
}

func TestConfirmTwiceConflicts(t *testing.T) {
	db, audits := newAuditService(t)
	item := createTestItem(t, db)

	audit, err := audits.Start([]uint{item.ID}, 1)
	require.NoError(t, err)

	_, err = audits.Confirm(audit.Code, 1)
	require.NoError(t, err)

	_, err = audits.Confirm(audit.Code, 1)
	assert.True(t, IsKind(err, KindApprovalConflict))

	_, err = audits.RecordCount(audit.Code, item.ID, 90, "", 2)
	assert.True(t, IsKind(err, KindApprovalConflict))
}

func TestConfirmFailedCorrectionIsReported(t *testing.T) {
	db, audits := newAuditService(t)
	item := createTestItem(t, db, func(i *models.InventoryItem) {
		i.GodownQty = 10
		i.ShopQty = 0
	})

	audit, err := audits.Start([]uint{item.ID}, 1)
	require.NoError(t, err)

	_, err = audits.RecordCount(audit.Code, item.ID, 0, "shelf empty", 2)
	require.NoError(t, err)

	// Stock drains after the count was taken; the removal can no longer
	// be applied in full.
	require.NoError(t, db.Model(&models.InventoryItem{}).Where("id = ?", item.ID).
		Update("godown_qty", 4).Error)

	corrections, err := audits.Confirm(audit.Code, 1)
	require.NoError(t, err)
	require.Len(t, corrections, 1)
	assert.False(t, corrections[0].Posted)
	assert.NotEmpty(t, corrections[0].Error)

	// The audit still completes; the failed line is surfaced, not retried.
	stored, err := audits.Get(audit.Code)
	require.NoError(t, err)
	assert.Equal(t, models.AuditCompleted, stored.Status)
}

func TestListAudits(t *testing.T) {
	db, audits := newAuditService(t)
	item := createTestItem(t, db)

	for i := 0; i < 3; i++ {
		_, err := audits.Start([]uint{item.ID}, 1)
		require.NoError(t, err)
	}

	all, err := audits.List()
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i := 0; i < len(all)-1; i++ {
		assert.Greater(t, all[i].ID, all[i+1].ID, fmt.Sprintf("audits not newest first at %d", i))
	}
}
