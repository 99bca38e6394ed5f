package entity

import "github.com/shopspring/decimal"

// InventoryReport proyección por material. Se recalcula siempre desde el estado actual; no se persiste.
type InventoryReport struct {
	ItemName          string
	ItemCode          string
	TotalReceived     decimal.Decimal
	TotalConsumed     decimal.Decimal
	CurrentStock      decimal.Decimal
	CurrentValue      decimal.Decimal
	UnitOfMeasurement string
}
