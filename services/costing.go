package services

import (
	"github.com/shopspring/decimal"
)

// NextAverageCost blends the current weighted-average purchase-unit cost
// with a new receipt. All stock quantities are in base units; prices are
// integer currency per purchase unit. The result is rounded to the nearest
// integer currency unit (half away from zero). When prior stock is zero the
// average collapses exactly to the receipt cost.
func NextAverageCost(priorBaseQty, conversionRatio, receiptBaseQty, currentPrice, receiptUnitCost int) int {
	if conversionRatio < 1 {
		conversionRatio = 1
	}
	if receiptBaseQty <= 0 {
		return currentPrice
	}

	ratio := decimal.NewFromInt(int64(conversionRatio))

	priorUnits := decimal.NewFromInt(int64(priorBaseQty)).Div(ratio)
	priorValue := priorUnits.Mul(decimal.NewFromInt(int64(currentPrice)))

	addedUnits := decimal.NewFromInt(int64(receiptBaseQty)).Div(ratio)
	addedValue := addedUnits.Mul(decimal.NewFromInt(int64(receiptUnitCost)))

	newUnits := decimal.NewFromInt(int64(priorBaseQty + receiptBaseQty)).Div(ratio)
	if newUnits.IsZero() {
		return receiptUnitCost
	}

	avg := priorValue.Add(addedValue).Div(newUnits)
	return int(avg.Round(0).IntPart())
}

// ValueOfBaseQty prices a base-unit quantity at a purchase-unit cost,
// rounded to the nearest integer currency unit. Used for scrap valuation
// and audit variance estimation.
func ValueOfBaseQty(baseQty, conversionRatio, purchasePrice int) int {
	if conversionRatio < 1 {
		conversionRatio = 1
	}
	if baseQty < 0 {
		baseQty = -baseQty
	}
	value := decimal.NewFromInt(int64(baseQty)).
		Div(decimal.NewFromInt(int64(conversionRatio))).
		Mul(decimal.NewFromInt(int64(purchasePrice)))
	return int(value.Round(0).IntPart())
}
