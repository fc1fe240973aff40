package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextAverageCost(t *testing.T) {
	tests := []struct {
		name            string
		priorBaseQty    int
		conversionRatio int
		receiptBaseQty  int
		currentPrice    int
		receiptUnitCost int
		want            int
	}{
		{
			// 10 units at 100 (value 1000) + 5 units at 130 (value 650)
			// over 15 units = 110.
			name:            "blends across batches",
			priorBaseQty:    100,
			conversionRatio: 10,
			receiptBaseQty:  50,
			currentPrice:    100,
			receiptUnitCost: 130,
			want:            110,
		},
		{
			name:            "ratio one behaves like plain units",
			priorBaseQty:    10,
			conversionRatio: 1,
			receiptBaseQty:  5,
			currentPrice:    100,
			receiptUnitCost: 130,
			want:            110,
		},
		{
			name:            "zero prior stock collapses to receipt cost",
			priorBaseQty:    0,
			conversionRatio: 10,
			receiptBaseQty:  50,
			currentPrice:    100,
			receiptUnitCost: 130,
			want:            130,
		},
		{
			name:            "half rounds away from zero",
			priorBaseQty:    10,
			conversionRatio: 10,
			receiptBaseQty:  10,
			currentPrice:    100,
			receiptUnitCost: 101,
			want:            101,
		},
		{
			name:            "rounds down below half",
			priorBaseQty:    20,
			conversionRatio: 10,
			receiptBaseQty:  10,
			currentPrice:    100,
			receiptUnitCost: 101,
			want:            100,
		},
		{
			name:            "zero receipt keeps current price",
			priorBaseQty:    100,
			conversionRatio: 10,
			receiptBaseQty:  0,
			currentPrice:    100,
			receiptUnitCost: 999,
			want:            100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextAverageCost(tt.priorBaseQty, tt.conversionRatio, tt.receiptBaseQty, tt.currentPrice, tt.receiptUnitCost)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValueOfBaseQty(t *testing.T) {
	assert.Equal(t, 800, ValueOfBaseQty(80, 10, 100))
	assert.Equal(t, 0, ValueOfBaseQty(0, 10, 100))
	// 5 base units at ratio 10 is half a purchase unit: 50.
	assert.Equal(t, 50, ValueOfBaseQty(5, 10, 100))
	// 55 base units at ratio 10 and price 101 is 555.5, rounded up.
	assert.Equal(t, 556, ValueOfBaseQty(55, 10, 101))
	// Negative quantities are valued by magnitude.
	assert.Equal(t, 800, ValueOfBaseQty(-80, 10, 100))
}
