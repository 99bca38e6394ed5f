package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockItem representa un material de obra (SKU) identificado por su código.
// CurrentQuantity nunca es negativo; Rate es el costo unitario de la última entrada.
type StockItem struct {
	ItemCode          string
	ItemName          string
	CurrentQuantity   decimal.Decimal
	UnitOfMeasurement string // Kg, Bags, m3...
	Rate              decimal.Decimal
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Value devuelve la valorización actual del material (cantidad × tarifa).
func (i StockItem) Value() decimal.Decimal {
	return i.CurrentQuantity.Mul(i.Rate)
}
