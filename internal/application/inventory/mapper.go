package inventory

import (
	"fmt"
	"time"

	"github.com/jhoicas/inventario-obra/internal/application/dto"
	"github.com/jhoicas/inventario-obra/internal/domain/entity"
	"github.com/jhoicas/inventario-obra/internal/domain/inventory"
)

var monthNames = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// DateLabel fecha en español para encabezados: "15 de octubre de 2026".
func DateLabel(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), monthNames[t.Month()-1], t.Year())
}

// ToItemResponse convierte un material a su DTO.
func ToItemResponse(it entity.StockItem) dto.ItemResponse {
	return dto.ItemResponse{
		ItemCode:          it.ItemCode,
		ItemName:          it.ItemName,
		CurrentQuantity:   it.CurrentQuantity,
		UnitOfMeasurement: it.UnitOfMeasurement,
		Rate:              it.Rate,
		Value:             it.Value(),
		CreatedAt:         it.CreatedAt,
		UpdatedAt:         it.UpdatedAt,
	}
}

// ToReceiptResponse convierte una entrada a su DTO.
func ToReceiptResponse(r entity.StockReceipt) dto.ReceiptResponse {
	return dto.ReceiptResponse{
		ID:                r.ID,
		ItemCode:          r.ItemCode,
		ItemName:          r.ItemName,
		QuantityReceived:  r.QuantityReceived,
		RatePerUnit:       r.RatePerUnit,
		UnitOfMeasurement: r.UnitOfMeasurement,
		TotalValue:        r.TotalValue,
		SupplierName:      r.SupplierName,
		DeliveryDate:      r.DeliveryDate.Format(DateLayout),
		ReceivedBy:        r.ReceivedBy,
		CreatedAt:         r.CreatedAt,
		CreatedBy:         r.CreatedBy,
	}
}

// ToConsumptionResponse convierte un consumo a su DTO.
func ToConsumptionResponse(c entity.StockConsumption) dto.ConsumptionResponse {
	return dto.ConsumptionResponse{
		ID:                  c.ID,
		ItemCode:            c.ItemCode,
		ItemName:            c.ItemName,
		QuantityUsed:        c.QuantityUsed,
		PurposeActivityCode: c.PurposeActivityCode,
		UsedBy:              c.UsedBy,
		Date:                c.Date.Format(DateLayout),
		Remarks:             c.Remarks,
		UnitOfMeasurement:   c.UnitOfMeasurement,
		RatePerUnit:         c.RatePerUnit,
		TotalValue:          c.TotalValue,
		CreatedAt:           c.CreatedAt,
		CreatedBy:           c.CreatedBy,
	}
}

func toTotals(t inventory.Totals) dto.TotalsResponse {
	return dto.TotalsResponse{Count: t.Count, TotalValue: t.TotalValue}
}
