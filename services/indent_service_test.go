package services

import (
	"testing"

	"printstock/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplenishmentQtyRoundsToPurchaseUnits(t *testing.T) {
	cases := []struct {
		name     string
		minLevel int
		ratio    int
		want     int
	}{
		{"exact multiple", 50, 10, 100},
		{"rounds up", 55, 10, 110},
		{"ratio one", 30, 1, 60},
		{"small min large ratio", 3, 500, 500},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			item := &models.InventoryItem{MinLevel: tc.minLevel, ConversionRatio: tc.ratio}
			assert.Equal(t, tc.want, replenishmentQty(item))
		})
	}
}

func TestAutoGenerateRaisesIndentForLowStock(t *testing.T) {
	db := newTestDB(t)
	indents := NewIndentService(db, NewNotifier(db))

	low := createTestItem(t, db, func(i *models.InventoryItem) {
		i.ItemCode = "PPR-LOW"
		i.GodownQty = 20
		i.LastSupplier = "Sharma Paper Mart"
	})
	createTestItem(t, db, func(i *models.InventoryItem) {
		i.ItemCode = "PPR-OK"
	})
	createTestItem(t, db, func(i *models.InventoryItem) {
		i.ItemCode = "PPR-NOMIN"
		i.GodownQty = 0
		i.MinLevel = 0
	})

	created, err := indents.AutoGenerate(1)
	require.NoError(t, err)
	require.Len(t, created, 1)

	request := created[0]
	assert.Equal(t, low.ID, request.ItemID)
	assert.Equal(t, 20, request.CurrentStock)
	// Target is twice the minimum level of 50, in whole reams of 10.
	assert.Equal(t, 100, request.RequestedQty)
	assert.Equal(t, models.UrgencyHigh, request.Urgency)
	assert.Equal(t, "Sharma Paper Mart", request.Supplier)
	assert.True(t, request.AutoCreated)
	assert.Equal(t, models.IndentPending, request.Status)
}

func TestAutoGenerateIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	indents := NewIndentService(db, NewNotifier(db))

	createTestItem(t, db, func(i *models.InventoryItem) {
		i.GodownQty = 10
	})

	first, err := indents.AutoGenerate(1)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := indents.AutoGenerate(1)
	require.NoError(t, err)
	assert.Empty(t, second)

	var total int64
	require.NoError(t, db.Model(&models.PurchaseRequest{}).Count(&total).Error)
	assert.EqualValues(t, 1, total)
}

func TestAutoGenerateAgainAfterIndentOrdered(t *testing.T) {
	db := newTestDB(t)
	indents := NewIndentService(db, NewNotifier(db))

	createTestItem(t, db, func(i *models.InventoryItem) {
		i.GodownQty = 10
	})

	first, err := indents.AutoGenerate(1)
	require.NoError(t, err)
	require.Len(t, first, 1)

	_, err = indents.Transition(first[0].ID, models.IndentOrdered, 1)
	require.NoError(t, err)

	// The pending guard only counts PENDING indents, so a new one is raised.
	second, err := indents.AutoGenerate(1)
	require.NoError(t, err)
	assert.Len(t, second, 1)
}

func TestCreateManualIndent(t *testing.T) {
	db := newTestDB(t)
	indents := NewIndentService(db, NewNotifier(db))
	item := createTestItem(t, db, func(i *models.InventoryItem) {
		i.LastSupplier = "Sharma Paper Mart"
	})

	request, err := indents.Create(CreateIndentInput{
		ItemID:  item.ID,
		Qty:     5,
		Unit:    models.UnitPurchase,
		ActorID: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, 50, request.RequestedQty)
	assert.Equal(t, models.UrgencyMedium, request.Urgency)
	assert.Equal(t, "Sharma Paper Mart", request.Supplier)
	assert.False(t, request.AutoCreated)

	_, err = indents.Create(CreateIndentInput{ItemID: item.ID, Qty: 0})
	assert.True(t, IsKind(err, KindValidation))

	_, err = indents.Create(CreateIndentInput{ItemID: item.ID, Qty: 5, Urgency: "PANIC"})
	assert.True(t, IsKind(err, KindValidation))

	_, err = indents.Create(CreateIndentInput{ItemID: 9999, Qty: 5})
	assert.True(t, IsKind(err, KindNotFound))
}

func TestIndentTransitions(t *testing.T) {
	db := newTestDB(t)
	indents := NewIndentService(db, NewNotifier(db))
	item := createTestItem(t, db)

	request, err := indents.Create(CreateIndentInput{ItemID: item.ID, Qty: 10, ActorID: 2})
	require.NoError(t, err)

	// PENDING cannot jump straight to RECEIVED.
	_, err = indents.Transition(request.ID, models.IndentReceived, 1)
	assert.True(t, IsKind(err, KindValidation))

	ordered, err := indents.Transition(request.ID, models.IndentOrdered, 1)
	require.NoError(t, err)
	assert.Equal(t, models.IndentOrdered, ordered.Status)

	received, err := indents.Transition(request.ID, models.IndentReceived, 1)
	require.NoError(t, err)
	assert.Equal(t, models.IndentReceived, received.Status)

	_, err = indents.Transition(request.ID, models.IndentOrdered, 1)
	assert.True(t, IsKind(err, KindValidation))

	_, err = indents.Transition(9999, models.IndentOrdered, 1)
	assert.True(t, IsKind(err, KindNotFound))
}

func TestListIndentsByStatus(t *testing.T) {
	db := newTestDB(t)
	indents := NewIndentService(db, NewNotifier(db))
	item := createTestItem(t, db)

	a, err := indents.Create(CreateIndentInput{ItemID: item.ID, Qty: 10, ActorID: 2})
	require.NoError(t, err)
	b, err := indents.Create(CreateIndentInput{ItemID: item.ID, Qty: 20, ActorID: 2})
	require.NoError(t, err)

	_, err = indents.Transition(a.ID, models.IndentOrdered, 1)
	require.NoError(t, err)

	pending, err := indents.List(models.IndentPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, b.ID, pending[0].ID)

	all, err := indents.List("")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
