package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-obra/internal/domain/entity"
	"github.com/jhoicas/inventario-obra/internal/domain/repository"
)

var _ repository.StockConsumptionRepository = (*StockConsumptionRepo)(nil)

const stockConsumptionColumns = `id, item_code, item_name, quantity_used, purpose_activity_code, used_by, date,
	remarks, unit_of_measurement, rate_per_unit, total_value, created_at, created_by, edited_at, edited_by`

// StockConsumptionRepo implementación sobre PostgreSQL (usable con pool o tx).
type StockConsumptionRepo struct {
	q Querier
}

// NewStockConsumptionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockConsumptionRepository(q Querier) *StockConsumptionRepo {
	return &StockConsumptionRepo{q: q}
}

// Create persiste un consumo.
func (r *StockConsumptionRepo) Create(ctx context.Context, c *entity.StockConsumption) error {
	query := `INSERT INTO stock_consumption (` + stockConsumptionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.ItemCode, c.ItemName, c.QuantityUsed, c.PurposeActivityCode, c.UsedBy, c.Date,
		nullable(c.Remarks), c.UnitOfMeasurement, c.RatePerUnit, c.TotalValue, c.CreatedAt, c.CreatedBy,
		c.EditedAt, nullable(c.EditedBy),
	)
	if err != nil {
		return fmt.Errorf("insert stock consumption: %w", err)
	}
	return nil
}

// List devuelve todos los consumos en orden de registro.
func (r *StockConsumptionRepo) List(ctx context.Context) ([]entity.StockConsumption, error) {
	rows, err := r.q.Query(ctx, `SELECT `+stockConsumptionColumns+` FROM stock_consumption ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list stock consumption: %w", err)
	}
	defer rows.Close()
	var list []entity.StockConsumption
	for rows.Next() {
		var c entity.StockConsumption
		var remarks, editedBy *string
		if err := rows.Scan(&c.ID, &c.ItemCode, &c.ItemName, &c.QuantityUsed, &c.PurposeActivityCode,
			&c.UsedBy, &c.Date, &remarks, &c.UnitOfMeasurement, &c.RatePerUnit, &c.TotalValue,
			&c.CreatedAt, &c.CreatedBy, &c.EditedAt, &editedBy); err != nil {
			return nil, fmt.Errorf("scan stock consumption: %w", err)
		}
		c.Remarks = deref(remarks)
		c.EditedBy = deref(editedBy)
		list = append(list, c)
	}
	return list, rows.Err()
}
