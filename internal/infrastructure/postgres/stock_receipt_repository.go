package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-obra/internal/domain/entity"
	"github.com/jhoicas/inventario-obra/internal/domain/repository"
)

var _ repository.StockReceiptRepository = (*StockReceiptRepo)(nil)

const stockReceiptColumns = `id, item_code, item_name, quantity_received, rate_per_unit, unit_of_measurement,
	total_value, supplier_name, delivery_date, received_by, created_at, created_by, edited_at, edited_by`

// StockReceiptRepo implementación sobre PostgreSQL (usable con pool o tx).
type StockReceiptRepo struct {
	q Querier
}

// NewStockReceiptRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockReceiptRepository(q Querier) *StockReceiptRepo {
	return &StockReceiptRepo{q: q}
}

// Create persiste una entrada de material.
func (r *StockReceiptRepo) Create(ctx context.Context, rec *entity.StockReceipt) error {
	query := `INSERT INTO stock_receipts (` + stockReceiptColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		rec.ID, rec.ItemCode, rec.ItemName, rec.QuantityReceived, rec.RatePerUnit, rec.UnitOfMeasurement,
		rec.TotalValue, rec.SupplierName, rec.DeliveryDate, rec.ReceivedBy, rec.CreatedAt, rec.CreatedBy,
		rec.EditedAt, nullable(rec.EditedBy),
	)
	if err != nil {
		return fmt.Errorf("insert stock receipt: %w", err)
	}
	return nil
}

// List devuelve todas las entradas en orden de registro.
func (r *StockReceiptRepo) List(ctx context.Context) ([]entity.StockReceipt, error) {
	rows, err := r.q.Query(ctx, `SELECT `+stockReceiptColumns+` FROM stock_receipts ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list stock receipts: %w", err)
	}
	defer rows.Close()
	var list []entity.StockReceipt
	for rows.Next() {
		var rec entity.StockReceipt
		var editedBy *string
		if err := rows.Scan(&rec.ID, &rec.ItemCode, &rec.ItemName, &rec.QuantityReceived, &rec.RatePerUnit,
			&rec.UnitOfMeasurement, &rec.TotalValue, &rec.SupplierName, &rec.DeliveryDate, &rec.ReceivedBy,
			&rec.CreatedAt, &rec.CreatedBy, &rec.EditedAt, &editedBy); err != nil {
			return nil, fmt.Errorf("scan stock receipt: %w", err)
		}
		rec.EditedBy = deref(editedBy)
		list = append(list, rec)
	}
	return list, rows.Err()
}
