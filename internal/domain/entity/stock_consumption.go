package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockConsumption registra material usado por una cuadrilla contra un código de actividad.
// RatePerUnit es la tarifa del material al momento del consumo, no la enviada por el cliente.
type StockConsumption struct {
	ID                  string
	ItemCode            string
	ItemName            string
	QuantityUsed        decimal.Decimal
	PurposeActivityCode string
	UsedBy              string
	Date                time.Time // fecha de uso, distinta de CreatedAt
	Remarks             string
	UnitOfMeasurement   string
	RatePerUnit         decimal.Decimal
	TotalValue          decimal.Decimal // QuantityUsed * RatePerUnit
	CreatedAt           time.Time
	CreatedBy           string
	EditedAt            *time.Time
	EditedBy            string
}
