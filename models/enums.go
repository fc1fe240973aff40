package models

// Item categories for the print shop catalog.
const (
	CategoryPaper    = "PAPER"
	CategoryInk      = "INK"
	CategoryHardware = "HARDWARE"
	CategorySpares   = "SPARES"
)

// Stock locations. Every level mutation targets exactly one of these.
const (
	LocationGodown = "GODOWN"
	LocationShop   = "SHOP"
)

// Movement types on the stock ledger.
const (
	MovementInward          = "INWARD"
	MovementTransfer        = "TRANSFER"
	MovementOutward         = "OUTWARD"
	MovementDamageLoss      = "DAMAGE_LOSS"
	MovementAuditAdjustment = "AUDIT_ADJUSTMENT"
)

// Adjustment direction and request lifecycle.
const (
	AdjustmentAdd    = "ADD"
	AdjustmentRemove = "REMOVE"

	AdjustmentPending  = "PENDING"
	AdjustmentApproved = "APPROVED"
	AdjustmentRejected = "REJECTED"
)

// Issue types for material going out of stock.
const (
	IssueProduction = "PRODUCTION"
	IssueWastage    = "WASTAGE"
)

// Scrap reasons.
const (
	ScrapProductionError  = "PRODUCTION_ERROR"
	ScrapMaterialDefect   = "MATERIAL_DEFECT"
	ScrapExpired          = "EXPIRED"
	ScrapMountingBreakage = "MOUNTING_BREAKAGE"
	ScrapOther            = "OTHER"
)

// Purchase request (indent) lifecycle and urgency.
const (
	IndentPending  = "PENDING"
	IndentOrdered  = "ORDERED"
	IndentReceived = "RECEIVED"

	UrgencyLow    = "LOW"
	UrgencyMedium = "MEDIUM"
	UrgencyHigh   = "HIGH"
)

// Audit lifecycle.
const (
	AuditInProgress = "IN_PROGRESS"
	AuditCompleted  = "COMPLETED"
)

// User roles.
const (
	RoleAdmin       = "ADMIN"
	RoleStockKeeper = "STOCK_KEEPER"
	RoleOperator    = "OPERATOR"
)

// Notification severities.
const (
	SeverityInfo    = "INFO"
	SeveritySuccess = "SUCCESS"
	SeverityWarning = "WARNING"
	SeverityError   = "ERROR"
)

// Quantity units accepted at the API boundary.
const (
	UnitBase     = "BASE"
	UnitPurchase = "PURCHASE"
)

func ValidLocation(loc string) bool {
	return loc == LocationGodown || loc == LocationShop
}

func ValidCategory(cat string) bool {
	switch cat {
	case CategoryPaper, CategoryInk, CategoryHardware, CategorySpares:
		return true
	}
	return false
}

func ValidScrapReason(reason string) bool {
	switch reason {
	case ScrapProductionError, ScrapMaterialDefect, ScrapExpired, ScrapMountingBreakage, ScrapOther:
		return true
	}
	return false
}
