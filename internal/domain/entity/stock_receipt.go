package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockReceipt registra material recibido en obra. Inmutable una vez creado.
type StockReceipt struct {
	ID                string
	ItemCode          string
	ItemName          string // snapshot al momento de la entrada
	QuantityReceived  decimal.Decimal
	RatePerUnit       decimal.Decimal
	UnitOfMeasurement string
	TotalValue        decimal.Decimal // QuantityReceived * RatePerUnit
	SupplierName      string
	DeliveryDate      time.Time // fecha de negocio (sin hora)
	ReceivedBy        string
	CreatedAt         time.Time
	CreatedBy         string
	EditedAt          *time.Time
	EditedBy          string
}
